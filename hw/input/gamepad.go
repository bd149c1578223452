package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"vpad/emu/log"
)

// A GamepadInput identifies a button, or one direction of an axis, of a game
// controller. It's the key of gamepad bindings.
type GamepadInput int

const (
	ButtonA GamepadInput = iota
	ButtonB
	ButtonX
	ButtonY
	LeftShoulder
	RightShoulder
	Start
	Back
	DPadUp
	DPadDown
	DPadLeft
	DPadRight
	L3
	R3
	LeftTrigger
	RightTrigger

	// The minus direction of an axis always directly follows the plus one.
	LeftYPlus
	LeftYMinus
	LeftXPlus
	LeftXMinus
	RightYPlus
	RightYMinus
	RightXPlus
	RightXMinus

	NumGamepadInputs
)

var gamepadInputNames = [NumGamepadInputs]string{
	"A", "B", "X", "Y",
	"LB", "RB", "Start", "Back",
	"Up", "Down", "Left", "Right",
	"L3", "R3", "LT", "RT",
	"LY+", "LY-", "LX+", "LX-",
	"RY+", "RY-", "RX+", "RX-",
}

func (gi GamepadInput) String() string {
	if gi < 0 || gi >= NumGamepadInputs {
		return "?"
	}
	return gamepadInputNames[gi]
}

// maps SDL button and axis names to gamepad inputs.
var gamepadInputByName = map[string]GamepadInput{
	"a":             ButtonA,
	"b":             ButtonB,
	"x":             ButtonX,
	"y":             ButtonY,
	"leftshoulder":  LeftShoulder,
	"rightshoulder": RightShoulder,
	"start":         Start,
	"back":          Back,
	"dpup":          DPadUp,
	"dpdown":        DPadDown,
	"dpleft":        DPadLeft,
	"dpright":       DPadRight,
	"leftstick":     L3,
	"rightstick":    R3,
	"lefttrigger":   LeftTrigger,
	"righttrigger":  RightTrigger,
	"lefty":         LeftYPlus,
	"leftx":         LeftXPlus,
	"righty":        RightYPlus,
	"rightx":        RightXPlus,
}

// numStickAxes is the number of bidirectional axes, the following ones are
// triggers.
const numStickAxes = 4

// GamepadDevice is a game controller known by SDL, that is a controller with
// a standard layout.
type GamepadDevice struct {
	id  Binding
	pad gamepadHandle
}

func (gp *GamepadDevice) Init(index int) bool {
	gp.id = Binding{Backend: SDL, Index: index, Kind: Gamepad, Key: NoKey}
	if err := sys.init(); err != nil {
		return false
	}
	if !sys.isGamepad(index) {
		log.ModDevice.DebugZ("not a game controller").Int("index", index).End()
		return false
	}

	gp.pad = sys.openGamepad(index)
	if gp.pad == nil {
		log.ModDevice.WarnZ("failed to open game controller").Int("index", index).End()
		return false
	}

	log.ModDevice.InfoZ("opened game controller").
		Int("index", index).
		String("name", gp.pad.name()).
		End()
	return true
}

func (gp *GamepadDevice) Sample() map[Binding]float32 {
	samples := make(map[Binding]float32)
	if gp.pad == nil {
		return samples
	}
	sys.update()

	b := gp.id
	for btn := sdl.GameControllerButton(0); btn < sdl.CONTROLLER_BUTTON_MAX; btn++ {
		gi, ok := gamepadInputByName[sdl.GameControllerGetStringForButton(btn)]
		if !ok {
			continue
		}
		b.Key = int(gi)
		if gp.pad.button(btn) {
			samples[b] = 1
		} else {
			samples[b] = 0
		}
	}

	for axis := sdl.GameControllerAxis(0); axis < sdl.CONTROLLER_AXIS_MAX; axis++ {
		gi, ok := gamepadInputByName[sdl.GameControllerGetStringForAxis(axis)]
		if !ok {
			continue
		}
		splitAxis(samples, b, gi, axis < numStickAxes, gp.pad.axis(axis))
	}
	return samples
}

// splitAxis splits an axis into 2 virtual buttons, plus and minus. Both are
// always reported for stick axes, triggers only have the plus one.
func splitAxis(samples map[Binding]float32, b Binding, plus GamepadInput, stick bool, raw int16) {
	strength := min(max(float32(raw)/32767, -1), 1)

	if !stick {
		b.Key = int(plus)
		samples[b] = max(strength, 0)
		return
	}

	b.Key = int(plus)
	samples[b] = max(strength, 0)
	b.Key = int(plus + 1)
	samples[b] = max(-strength, 0)
}

func (gp *GamepadDevice) Close() bool {
	if gp.pad != nil {
		gp.pad.close()
		gp.pad = nil
	}
	return true
}

func (gp *GamepadDevice) Clear() {}

func (gp *GamepadDevice) FirstActive(threshold float32) Binding {
	if gp.pad == nil {
		return Unbound
	}
	return firstActive(gp.Sample(), threshold)
}

func (gp *GamepadDevice) Identity() Binding { return gp.id }

func (gp *GamepadDevice) Name() string {
	if gp.pad == nil {
		return "Gamepad (not connected)"
	}
	return gp.pad.name()
}
