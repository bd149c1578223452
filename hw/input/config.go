package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"vpad/emu/log"
)

const (
	// DigitalThreshold is the strength above which an input is considered
	// pressed when driving a digital target or the stick modifier.
	DigitalThreshold = 0.45

	// CaptureThreshold is the strength an input must exceed to be picked
	// during a capture.
	CaptureThreshold = 0.5

	// MaxStickPos is the value reported by the stick at full deflection.
	MaxStickPos = 0x9C
)

// Config is the input settings table.
type Config struct {
	Bindings           [NumTargets]Binding `toml:"bindings"`
	StickModifier      Binding             `toml:"stick_modifier"`
	StickModifierScale float32             `toml:"stick_modifier_scale"`
	StickDeadzone      float32             `toml:"stick_deadzone"`
}

func keyBinding(sc sdl.Scancode) Binding {
	b := Unbound
	b.Key = int(sc)
	return b
}

// DefaultConfig returns the default keyboard layout.
func DefaultConfig() Config {
	return Config{
		Bindings: [NumTargets]Binding{
			TargetA:           keyBinding(sdl.SCANCODE_A),
			TargetB:           keyBinding(sdl.SCANCODE_S),
			TargetX:           keyBinding(sdl.SCANCODE_Z),
			TargetY:           keyBinding(sdl.SCANCODE_X),
			TargetL:           keyBinding(sdl.SCANCODE_Q),
			TargetR:           keyBinding(sdl.SCANCODE_W),
			TargetZL:          keyBinding(sdl.SCANCODE_1),
			TargetZR:          keyBinding(sdl.SCANCODE_2),
			TargetStart:       keyBinding(sdl.SCANCODE_M),
			TargetSelect:      keyBinding(sdl.SCANCODE_N),
			TargetHome:        keyBinding(sdl.SCANCODE_B),
			TargetDUp:         keyBinding(sdl.SCANCODE_T),
			TargetDDown:       keyBinding(sdl.SCANCODE_G),
			TargetDLeft:       keyBinding(sdl.SCANCODE_F),
			TargetDRight:      keyBinding(sdl.SCANCODE_H),
			TargetCUp:         keyBinding(sdl.SCANCODE_I),
			TargetCDown:       keyBinding(sdl.SCANCODE_K),
			TargetCLeft:       keyBinding(sdl.SCANCODE_J),
			TargetCRight:      keyBinding(sdl.SCANCODE_L),
			TargetCircleUp:    keyBinding(sdl.SCANCODE_UP),
			TargetCircleDown:  keyBinding(sdl.SCANCODE_DOWN),
			TargetCircleLeft:  keyBinding(sdl.SCANCODE_LEFT),
			TargetCircleRight: keyBinding(sdl.SCANCODE_RIGHT),
		},
		StickModifier:      keyBinding(sdl.SCANCODE_D),
		StickModifierScale: 0.5,
		StickDeadzone:      0.1,
	}
}

// Check fixes out of range values.
func (cfg *Config) Check() {
	if cfg.StickDeadzone < 0 || cfg.StickDeadzone >= 1 {
		log.ModConfig.WarnZ("invalid stick deadzone, clamped").
			Float("deadzone", float64(cfg.StickDeadzone)).
			End()
		cfg.StickDeadzone = min(max(cfg.StickDeadzone, 0), 0.99)
	}
	if cfg.StickModifierScale <= 0 {
		log.ModConfig.WarnZ("invalid stick modifier scale, reset to 1").
			Float("scale", float64(cfg.StickModifierScale)).
			End()
		cfg.StickModifierScale = 1
	}
}

// Get returns the binding at slot s.
func (cfg *Config) Get(s Slot) Binding {
	if s == ModifierSlot {
		return cfg.StickModifier
	}
	return cfg.Bindings[s]
}

func (cfg *Config) set(s Slot, b Binding) {
	if s == ModifierSlot {
		cfg.StickModifier = b
		return
	}
	cfg.Bindings[s] = b
}

// Assign binds the result of a capture to slot s. Any other slot bound to the
// very same input is unbound. Unset bindings and the Escape key leave the
// table untouched, Assign then returns false.
func (cfg *Config) Assign(s Slot, b Binding) bool {
	if !b.IsSet() || b.IsEscape() {
		return false
	}

	cfg.set(s, b)
	for other := range Slot(NumSlots) {
		if other == s {
			continue
		}
		if EqualsKey(cfg.Get(other), b) {
			log.ModConfig.DebugZ("removed duplicate binding").
				Stringer("slot", other).
				Stringer("binding", b).
				End()
			cfg.set(other, Unbound)
		}
	}
	return true
}

// referenced returns every set binding of the table, in slot order.
func (cfg *Config) referenced() []Binding {
	var all []Binding
	for s := range Slot(NumSlots) {
		if b := cfg.Get(s); b.IsSet() {
			all = append(all, b)
		}
	}
	return all
}
