package ui

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"vpad/emu/log"
)

// Touch screen resolution.
const (
	TouchWidth  = 320
	TouchHeight = 240
)

// A KeySink receives the keyboard events of the window.
type KeySink interface {
	Press(key int)
	Release(key int)
}

// A TouchSink receives the touch screen state, emulated with the mouse.
type TouchSink interface {
	SetTouch(x, y uint16, pressed bool)
}

// Window is the SDL window in which the user types and clicks. Window
// methods must be called from the SDL main thread.
type Window struct {
	win   *sdl.Window
	rend  *sdl.Renderer
	keys  KeySink
	touch TouchSink

	w, h     int32
	touching bool
	quit     bool
}

const DefaultWindowFlags = sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE

// NewWindow creates a window forwarding its keyboard events to keys and its
// mouse events to touch.
func NewWindow(title string, w, h int32, flags uint32, keys KeySink, touch TouchSink) (*Window, error) {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL video: %s", err)
	}

	win, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, w, h, flags)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %s", err)
	}

	rend, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to create renderer: %s", err)
	}

	log.ModUI.DebugZ("window created").String("title", title).End()
	return newWindow(win, rend, w, h, keys, touch), nil
}

func newWindow(win *sdl.Window, rend *sdl.Renderer, w, h int32, keys KeySink, touch TouchSink) *Window {
	return &Window{
		win:   win,
		rend:  rend,
		keys:  keys,
		touch: touch,
		w:     w,
		h:     h,
	}
}

// Pump processes all pending window events. It returns false once the user
// has asked to close the window.
func (w *Window) Pump() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		w.handle(ev)
	}
	return !w.quit
}

func (w *Window) handle(ev sdl.Event) {
	switch e := ev.(type) {
	case sdl.QuitEvent:
		w.quit = true

	case sdl.KeyboardEvent:
		// Auto-repeat doesn't change the state of a key.
		if e.Repeat != 0 {
			return
		}
		key := int(e.Keysym.Scancode)
		if e.State == sdl.PRESSED {
			w.keys.Press(key)
		} else {
			w.keys.Release(key)
		}

	case sdl.MouseButtonEvent:
		if e.Button != sdl.BUTTON_LEFT || w.touch == nil {
			return
		}
		w.touching = e.State == sdl.PRESSED
		x, y := w.toTouch(e.X, e.Y)
		w.touch.SetTouch(x, y, w.touching)

	case sdl.MouseMotionEvent:
		if !w.touching || w.touch == nil {
			return
		}
		x, y := w.toTouch(e.X, e.Y)
		w.touch.SetTouch(x, y, true)

	case sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			w.w, w.h = e.Data1, e.Data2
		case sdl.WINDOWEVENT_FOCUS_LOST:
			// Key releases happening while unfocused are never received.
			if c, ok := w.keys.(interface{ Clear() }); ok {
				c.Clear()
			}
		}
	}
}

// toTouch converts window coordinates into touch screen coordinates.
func (w *Window) toTouch(x, y int32) (uint16, uint16) {
	if w.w <= 0 || w.h <= 0 {
		return 0, 0
	}
	tx := int64(x) * TouchWidth / int64(w.w)
	ty := int64(y) * TouchHeight / int64(w.h)
	return uint16(min(max(tx, 0), TouchWidth-1)), uint16(min(max(ty, 0), TouchHeight-1))
}

// Draw clears the window with the given color.
func (w *Window) Draw(c sdl.Color) {
	if w.rend == nil {
		return
	}
	w.rend.SetDrawColor(c.R, c.G, c.B, c.A)
	w.rend.Clear()
	w.rend.Present()
}

func (w *Window) Close() {
	if w.rend != nil {
		w.rend.Destroy()
	}
	if w.win != nil {
		w.win.Destroy()
	}
}
