package input

import (
	"math"
	"sync"
	"time"

	"vpad/emu/log"
)

// TickPeriod is the default sampling period, one 60Hz frame.
const TickPeriod = time.Second / 60

// A Scheduler calls back fn every period, until cancel is called.
type Scheduler interface {
	Schedule(period time.Duration, fn func()) (cancel func())
}

// Router samples every device bound in the settings table and routes inputs
// to the virtual controller state. The state is read by the emulated machine
// from any goroutine.
type Router struct {
	kbd   *KeyboardDevice
	touch touchState

	// mu guards everything below, up to stateMu.
	mu      sync.Mutex
	cfg     Config
	devices []Device
	table   map[Binding][]Target
	db      debouncer
	period  time.Duration
	cancel  func()
	onTick  func()

	stateMu sync.RWMutex
	pad     uint32
	stickX  int16
	stickY  int16
}

// NewRouter returns a router using the given settings. No device is opened
// before Init or Rebuild.
func NewRouter(cfg Config) *Router {
	cfg.Check()
	return &Router{
		kbd:    NewKeyboard(0),
		cfg:    cfg,
		table:  make(map[Binding][]Target),
		period: TickPeriod,
	}
}

// SetTickPeriod sets the period used by the next call to Init.
func (r *Router) SetTickPeriod(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d > 0 {
		r.period = d
	}
}

// OnTick registers fn, called after each tick once the new state has been
// published.
func (r *Router) OnTick(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onTick = fn
}

// Keyboard returns the main keyboard, which the window feeds with key events.
func (r *Router) Keyboard() *KeyboardDevice { return r.kbd }

// Config returns the settings currently in use.
func (r *Router) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Init builds the device set from the settings and starts sampling them
// periodically with sched.
func (r *Router) Init(sched Scheduler) {
	r.mu.Lock()
	r.rebuild()
	period := r.period
	// Schedule never calls Tick synchronously, and holding mu until cancel is
	// stored keeps a concurrent Shutdown from missing it.
	r.cancel = sched.Schedule(period, r.Tick)
	r.mu.Unlock()

	log.ModInput.InfoZ("input router started").Duration("period", period).End()
}

// ReloadSettings applies new settings, reopening devices as needed. It does
// nothing if the router isn't running.
func (r *Router) ReloadSettings(cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.devices) == 0 {
		log.ModInput.DebugZ("no live device, settings reload skipped").End()
		return
	}
	cfg.Check()
	r.cfg = cfg
	r.rebuild()
}

// Shutdown stops sampling and closes all devices.
func (r *Router) Shutdown() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	// cancel waits for an in-flight tick, which needs mu.
	if cancel != nil {
		cancel()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeDevices()
	clear(r.table)
	log.ModInput.InfoZ("input router stopped").End()
}

// Rebuild reopens the devices referenced by the settings and rebuilds the
// binding table.
func (r *Router) Rebuild() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rebuild()
}

func (r *Router) closeDevices() {
	for _, dev := range r.devices {
		if dev == Device(r.kbd) {
			r.kbd.Clear()
			continue
		}
		dev.Close()
	}
	r.devices = nil
}

// rebuild must be called with mu held.
func (r *Router) rebuild() {
	r.closeDevices()

	seen := make(map[Binding]bool)
	for _, b := range r.cfg.referenced() {
		id := b.Device()
		if seen[id] {
			continue
		}
		seen[id] = true

		if id.Kind == Keyboard && id.Index != r.kbd.Identity().Index {
			log.ModInput.WarnZ("only one keyboard is supported").Stringer("binding", b).End()
			continue
		}
		dev := newDevice(id.Kind, r.kbd)
		if dev == nil || !dev.Init(id.Index) {
			log.ModInput.WarnZ("device unavailable, its bindings are ignored").
				Stringer("device", id).
				End()
			continue
		}
		r.devices = append(r.devices, dev)
	}

	r.table = make(map[Binding][]Target)
	for t, b := range r.cfg.Bindings {
		if b.IsSet() {
			r.table[b] = append(r.table[b], Target(t))
		}
	}

	// Without debounce history, a release couldn't clear a bit set before.
	r.db = debouncer{}
	r.stateMu.Lock()
	r.pad = 0
	r.stickX, r.stickY = 0, 0
	r.stateMu.Unlock()

	log.ModInput.DebugZ("devices rebuilt").
		Int("devices", len(r.devices)).
		Int("bindings", len(r.table)).
		End()
}

// Tick samples all devices once and publishes the new controller state.
func (r *Router) Tick() {
	r.mu.Lock()
	samples := make([]map[Binding]float32, len(r.devices))
	for i, dev := range r.devices {
		samples[i] = dev.Sample()
	}

	r.stateMu.Lock()
	r.updateStick(samples)
	r.updatePad(samples)
	r.stateMu.Unlock()

	hook := r.onTick
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// updateStick must be called with mu and stateMu held.
func (r *Router) updateStick(samples []map[Binding]float32) {
	var x, y float32
	scale := float32(1)
	for _, s := range samples {
		for _, b := range sortedBindings(s) {
			strength := s[b]
			if strength != 0 {
				for _, t := range r.table[b] {
					switch t {
					case TargetCircleUp:
						y = -strength
					case TargetCircleDown:
						y = strength
					case TargetCircleLeft:
						x = -strength
					case TargetCircleRight:
						x = strength
					}
				}
			}
			if EqualsKey(b, r.cfg.StickModifier) {
				if strength > DigitalThreshold {
					scale = r.cfg.StickModifierScale
				} else {
					scale = 1
				}
			}
		}
	}

	x, y = StickDeadzone(x, y, r.cfg.StickDeadzone)
	r.stickX = stickPos(x * MaxStickPos * scale)
	r.stickY = stickPos(-y * MaxStickPos * scale)
}

// stickPos converts v, saturating at the int16 bounds.
func stickPos(v float32) int16 {
	return int16(min(max(v, math.MinInt16), math.MaxInt16))
}

// updatePad must be called with mu and stateMu held.
func (r *Router) updatePad(samples []map[Binding]float32) {
	for _, s := range samples {
		for _, b := range sortedBindings(s) {
			strength := float32(math.Abs(float64(s[b])))
			for _, t := range r.table[b] {
				if t.IsStick() {
					continue
				}
				switch r.db.update(t, strength) {
				case risingEdge:
					r.pad |= t.Bit()
				case fallingEdge:
					r.pad &^= t.Bit()
				}
			}
		}
	}
}

// StickDeadzone applies a radial deadzone to (x, y): inside the circle of
// radius deadzone the stick is centered, outside the magnitude is rescaled
// so that it goes from 0 at the deadzone to 1 at full deflection.
func StickDeadzone(x, y, deadzone float32) (float32, float32) {
	mag := float32(math.Hypot(float64(x), float64(y)))
	if mag == 0 || mag < deadzone {
		return 0, 0
	}
	scaled := (mag - deadzone) / (1 - deadzone)
	return x / mag * scaled, y / mag * scaled
}

type edge uint8

const (
	noEdge edge = iota
	risingEdge
	fallingEdge
)

// debouncer tracks whether each digital target is held, so that the pad
// bits only change on transitions.
type debouncer [NumTargets]bool

func (d *debouncer) update(t Target, strength float32) edge {
	switch {
	case strength >= DigitalThreshold && !d[t]:
		d[t] = true
		return risingEdge
	case strength < DigitalThreshold && d[t]:
		d[t] = false
		return fallingEdge
	}
	return noEdge
}

// ControllerState returns the pad state bits.
func (r *Router) ControllerState() uint32 {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	return r.pad
}

// SetControllerState overwrites the pad state bits, until the next edge of
// each target.
func (r *Router) SetControllerState(pad uint32) {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	r.pad = pad
}

// Stick returns the circle pad position, y pointing up. A full deflection
// along an axis gives MaxStickPos; diagonals and modifier scales above 1 can
// go past it, up to the int16 bounds.
func (r *Router) Stick() (x, y int16) {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	return r.stickX, r.stickY
}

func (r *Router) numDevices() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.devices)
}
