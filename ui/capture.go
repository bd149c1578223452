package ui

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"vpad/emu/log"
	"vpad/hw/input"
)

// A Detector finds the first input the user presses.
type Detector interface {
	Keyboard() *input.KeyboardDevice
	DetectInput(maxTime time.Duration, pump func()) input.Binding
}

var (
	captureBackground = sdl.Color{R: 0, G: 0, B: 0, A: 255}
	captureProgress   = sdl.Color{R: 80, G: 160, B: 255, A: 255}
)

// Capture shows a small window asking the user to press an input for slot,
// and returns it. Unbound is returned if the user pressed Escape, closed the
// window or didn't press anything before timeout. Must be called on the SDL
// main thread.
func Capture(det Detector, slot input.Slot, timeout time.Duration) (input.Binding, error) {
	title := fmt.Sprintf("Press an input for %q (Escape to cancel)", slot)
	win, err := NewWindow(title, 400, 120, sdl.WINDOW_SHOWN, det.Keyboard(), nil)
	if err != nil {
		return input.Unbound, err
	}
	defer win.Close()

	// Keep all keyboard input for ourselves.
	win.win.SetGrab(true)
	win.win.Raise()

	// Forget events generated before the window showed up, such as the
	// release of the key which started the capture.
	drainEvents(200 * time.Millisecond)

	start := time.Now()
	pump := func() {
		if !win.Pump() {
			// Closing the window cancels, as Escape does.
			det.Keyboard().Press(int(sdl.SCANCODE_ESCAPE))
		}
		win.drawProgress(time.Since(start), timeout)
	}

	b := det.DetectInput(timeout, pump)
	det.Keyboard().Clear()

	if b.IsEscape() {
		log.ModCapture.DebugZ("capture cancelled").Stringer("slot", slot).End()
		return input.Unbound, nil
	}
	return b, nil
}

// drawProgress shows the time left before the capture times out.
func (w *Window) drawProgress(elapsed, timeout time.Duration) {
	if w.rend == nil || timeout <= 0 {
		return
	}
	left := 1 - min(float64(elapsed)/float64(timeout), 1)

	w.rend.SetDrawColor(captureBackground.R, captureBackground.G, captureBackground.B, captureBackground.A)
	w.rend.Clear()
	w.rend.SetDrawColor(captureProgress.R, captureProgress.G, captureProgress.B, captureProgress.A)
	w.rend.FillRect(&sdl.Rect{
		X: 10,
		Y: w.h/2 - 10,
		W: int32(float64(w.w-20) * left),
		H: 20,
	})
	w.rend.Present()
}

// drainEvents empties the event queue. Noisy joystick axes may keep it
// filled forever, so give up after maxwait.
func drainEvents(maxwait time.Duration) {
	deadline := time.Now().Add(maxwait)
	for {
		if event := sdl.PollEvent(); event == nil {
			break
		}
		if time.Now().After(deadline) {
			break
		}
	}
}
