package input

import (
	"fmt"
	"sync"

	"github.com/veandco/go-sdl2/sdl"

	"vpad/emu/log"
)

// a backend gives access to the game controllers and joysticks of the system.
type backend interface {
	// init initializes the backend, it's safe to call it more than once.
	init() error
	numDevices() int
	isGamepad(index int) bool
	openGamepad(index int) gamepadHandle   // nil on failure
	openJoystick(index int) joystickHandle // nil on failure

	// update refreshes the state of all opened devices.
	update()
}

type gamepadHandle interface {
	button(btn sdl.GameControllerButton) bool
	axis(axis sdl.GameControllerAxis) int16
	name() string
	close()
}

type joystickHandle interface {
	numButtons() int
	numHats() int
	numAxes() int
	button(idx int) bool
	hat(idx int) uint8
	axis(idx int) int16
	name() string
	close()
}

var sys backend = &sdlBackend{}

type sdlBackend struct {
	once sync.Once
	err  error
}

func (sb *sdlBackend) init() error {
	sb.once.Do(func() {
		if err := sdl.InitSubSystem(sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER); err != nil {
			sb.err = fmt.Errorf("failed to initialize SDL game controllers: %w", err)
			log.ModDevice.ErrorZ("SDL init failed").Error("err", sb.err).End()
			return
		}

		// Devices are polled at each tick, we don't need their events.
		sdl.GameControllerEventState(sdl.IGNORE)
		sdl.JoystickEventState(sdl.IGNORE)

		n := loadControllerDB()
		log.ModDevice.InfoZ("SDL game controllers initialized").
			Int("db_mappings", n).
			Int("joysticks", sdl.NumJoysticks()).
			End()
	})
	return sb.err
}

func (sb *sdlBackend) numDevices() int          { return sdl.NumJoysticks() }
func (sb *sdlBackend) isGamepad(index int) bool { return sdl.IsGameController(index) }

func (sb *sdlBackend) update() {
	sdl.GameControllerUpdate()
	sdl.JoystickUpdate()
}

func (sb *sdlBackend) openGamepad(index int) gamepadHandle {
	c := sdl.GameControllerOpen(index)
	if c == nil {
		return nil
	}
	return sdlGamepad{c}
}

func (sb *sdlBackend) openJoystick(index int) joystickHandle {
	js := sdl.JoystickOpen(index)
	if js == nil {
		return nil
	}
	return sdlJoystick{js}
}

type sdlGamepad struct {
	*sdl.GameController
}

func (g sdlGamepad) button(btn sdl.GameControllerButton) bool {
	return g.GameController.Button(btn) != 0
}

func (g sdlGamepad) axis(axis sdl.GameControllerAxis) int16 { return g.GameController.Axis(axis) }
func (g sdlGamepad) name() string                           { return g.GameController.Name() }
func (g sdlGamepad) close()                                 { g.GameController.Close() }

type sdlJoystick struct {
	*sdl.Joystick
}

func (j sdlJoystick) numButtons() int     { return j.Joystick.NumButtons() }
func (j sdlJoystick) numHats() int        { return j.Joystick.NumHats() }
func (j sdlJoystick) numAxes() int        { return j.Joystick.NumAxes() }
func (j sdlJoystick) button(idx int) bool { return j.Joystick.Button(idx) != 0 }
func (j sdlJoystick) hat(idx int) uint8   { return uint8(j.Joystick.Hat(idx)) }
func (j sdlJoystick) axis(idx int) int16  { return j.Joystick.Axis(idx) }
func (j sdlJoystick) name() string        { return j.Joystick.Name() }
func (j sdlJoystick) close()              { j.Joystick.Close() }
