package input

import (
	"testing"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

// fakeBackend replaces SDL. Device i is a gamepad if pads[i] is set, a
// joystick if joys[i] is set.
type fakeBackend struct {
	pads map[int]*fakePad
	joys map[int]*fakeJoy

	ndevs   int
	opened  map[int]int // index -> number of opens
	updates int
}

func newFakeBackend(ndevs int) *fakeBackend {
	return &fakeBackend{
		pads:   make(map[int]*fakePad),
		joys:   make(map[int]*fakeJoy),
		ndevs:  ndevs,
		opened: make(map[int]int),
	}
}

func (fb *fakeBackend) init() error     { return nil }
func (fb *fakeBackend) numDevices() int { return fb.ndevs }
func (fb *fakeBackend) update()         { fb.updates++ }

func (fb *fakeBackend) isGamepad(index int) bool {
	_, ok := fb.pads[index]
	return ok
}

func (fb *fakeBackend) openGamepad(index int) gamepadHandle {
	pad, ok := fb.pads[index]
	if !ok {
		return nil
	}
	fb.opened[index]++
	pad.closed = false
	return pad
}

func (fb *fakeBackend) openJoystick(index int) joystickHandle {
	js, ok := fb.joys[index]
	if !ok {
		return nil
	}
	fb.opened[index]++
	js.closed = false
	return js
}

type fakePad struct {
	buttons [sdl.CONTROLLER_BUTTON_MAX]bool
	axes    [sdl.CONTROLLER_AXIS_MAX]int16
	closed  bool
}

func (p *fakePad) button(btn sdl.GameControllerButton) bool { return p.buttons[btn] }
func (p *fakePad) axis(axis sdl.GameControllerAxis) int16   { return p.axes[axis] }
func (p *fakePad) name() string                             { return "Fake Pad" }
func (p *fakePad) close()                                   { p.closed = true }

type fakeJoy struct {
	buttons []bool
	hats    []uint8
	axes    []int16
	closed  bool
}

func (j *fakeJoy) numButtons() int     { return len(j.buttons) }
func (j *fakeJoy) numHats() int        { return len(j.hats) }
func (j *fakeJoy) numAxes() int        { return len(j.axes) }
func (j *fakeJoy) button(idx int) bool { return j.buttons[idx] }
func (j *fakeJoy) hat(idx int) uint8   { return j.hats[idx] }
func (j *fakeJoy) axis(idx int) int16  { return j.axes[idx] }
func (j *fakeJoy) name() string        { return "Fake Joystick" }
func (j *fakeJoy) close()              { j.closed = true }

// useBackend installs fb for the duration of the test.
func useBackend(t *testing.T, fb *fakeBackend) {
	t.Helper()
	prev := sys
	sys = fb
	t.Cleanup(func() { sys = prev })
}

// emptyConfig returns a config with no binding at all.
func emptyConfig() Config {
	cfg := Config{StickModifier: Unbound, StickModifierScale: 1}
	for i := range cfg.Bindings {
		cfg.Bindings[i] = Unbound
	}
	return cfg
}

func kbdKey(key int) Binding {
	return Binding{Backend: SDL, Index: 0, Kind: Keyboard, Key: key}
}

func padKey(index int, gi GamepadInput) Binding {
	return Binding{Backend: SDL, Index: index, Kind: Gamepad, Key: int(gi)}
}

// manualScheduler never ticks on its own.
type manualScheduler struct {
	period    time.Duration
	fn        func()
	cancelled bool
}

func (ms *manualScheduler) Schedule(period time.Duration, fn func()) func() {
	ms.period = period
	ms.fn = fn
	return func() { ms.cancelled = true }
}
