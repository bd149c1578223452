package input

import (
	"time"

	"vpad/emu/log"
)

// capturePollInterval bounds the rate at which devices are polled during a
// capture.
const capturePollInterval = time.Millisecond

// AllDevices opens every connected game controller and joystick, in index
// order, and returns them followed by the main keyboard.
func (r *Router) AllDevices() []Device {
	var devs []Device
	if err := sys.init(); err == nil {
		for i := range sys.numDevices() {
			var dev Device = &JoystickDevice{}
			if sys.isGamepad(i) {
				dev = &GamepadDevice{}
			}
			if dev.Init(i) {
				devs = append(devs, dev)
			}
		}
	}
	return append(devs, r.kbd)
}

// DetectInput waits for any input of any device to be pressed and returns
// it. pump is called repeatedly while waiting, so that the window keeps
// processing events. DetectInput returns Unbound if nothing is pressed
// within maxTime.
//
// DetectInput must not be called from the tick goroutine.
func (r *Router) DetectInput(maxTime time.Duration, pump func()) Binding {
	devs := r.AllDevices()
	defer func() {
		for _, dev := range devs {
			if dev != Device(r.kbd) {
				dev.Close()
			}
		}
	}()

	return detectInput(devs, maxTime, pump)
}

func detectInput(devs []Device, maxTime time.Duration, pump func()) Binding {
	// Forget inputs held before the capture started.
	for _, dev := range devs {
		dev.Clear()
	}

	start := time.Now()
	for {
		if pump != nil {
			pump()
		}
		if time.Since(start) >= maxTime {
			log.ModCapture.DebugZ("capture timed out").Duration("max", maxTime).End()
			return Unbound
		}
		for _, dev := range devs {
			if b := dev.FirstActive(CaptureThreshold); b.IsSet() {
				log.ModCapture.DebugZ("input captured").
					Stringer("binding", b).
					Duration("after", time.Since(start)).
					End()
				return b
			}
		}
		time.Sleep(capturePollInterval)
	}
}
