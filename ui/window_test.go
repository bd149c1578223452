package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/veandco/go-sdl2/sdl"
)

type keyLog struct {
	events  []string
	cleared bool
}

func (kl *keyLog) Press(key int)   { kl.events = append(kl.events, "down "+sdl.GetScancodeName(sdl.Scancode(key))) }
func (kl *keyLog) Release(key int) { kl.events = append(kl.events, "up "+sdl.GetScancodeName(sdl.Scancode(key))) }
func (kl *keyLog) Clear()          { kl.cleared = true }

type touchPoint struct {
	X, Y    uint16
	Pressed bool
}

type touchLog []touchPoint

func (tl *touchLog) SetTouch(x, y uint16, pressed bool) {
	*tl = append(*tl, touchPoint{x, y, pressed})
}

func keyEvent(sc sdl.Scancode, state uint8, repeat uint8) sdl.KeyboardEvent {
	return sdl.KeyboardEvent{
		State:  state,
		Repeat: repeat,
		Keysym: sdl.Keysym{Scancode: sc},
	}
}

func TestWindowKeys(t *testing.T) {
	var keys keyLog
	var touch touchLog
	w := newWindow(nil, nil, 640, 480, &keys, &touch)

	events := []sdl.Event{
		keyEvent(sdl.SCANCODE_A, sdl.PRESSED, 0),
		keyEvent(sdl.SCANCODE_A, sdl.PRESSED, 1),
		keyEvent(sdl.SCANCODE_A, sdl.PRESSED, 1),
		keyEvent(sdl.SCANCODE_UP, sdl.PRESSED, 0),
		keyEvent(sdl.SCANCODE_A, sdl.RELEASED, 0),
	}
	for _, ev := range events {
		w.handle(ev)
	}

	want := []string{"down A", "down Up", "up A"}
	if diff := cmp.Diff(want, keys.events); diff != "" {
		t.Errorf("key events mismatch (-want +got):\n%s", diff)
	}

	w.handle(sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_LOST})
	if !keys.cleared {
		t.Errorf("keys not cleared on focus loss")
	}

	if w.quit {
		t.Errorf("quit before QuitEvent")
	}
	w.handle(sdl.QuitEvent{})
	if !w.quit {
		t.Errorf("quit not recorded")
	}
}

func TestWindowTouch(t *testing.T) {
	var keys keyLog
	var touch touchLog
	w := newWindow(nil, nil, 640, 480, &keys, &touch)

	events := []sdl.Event{
		// Moving without pressing isn't touching.
		sdl.MouseMotionEvent{X: 10, Y: 10},
		sdl.MouseButtonEvent{Button: sdl.BUTTON_RIGHT, State: sdl.PRESSED, X: 10, Y: 10},
		sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.PRESSED, X: 100, Y: 50},
		sdl.MouseMotionEvent{X: 2000, Y: -5},
		sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.RELEASED, X: 640, Y: 480},
		sdl.MouseMotionEvent{X: 10, Y: 10},
	}
	for _, ev := range events {
		w.handle(ev)
	}

	want := touchLog{
		{X: 50, Y: 25, Pressed: true},
		{X: TouchWidth - 1, Y: 0, Pressed: true},
		{X: TouchWidth - 1, Y: TouchHeight - 1, Pressed: false},
	}
	if diff := cmp.Diff(want, touch); diff != "" {
		t.Errorf("touch events mismatch (-want +got):\n%s", diff)
	}

	// Resizing changes the scale.
	w.handle(sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 320, Data2: 240})
	touch = nil
	w.handle(sdl.MouseButtonEvent{Button: sdl.BUTTON_LEFT, State: sdl.PRESSED, X: 100, Y: 50})
	if diff := cmp.Diff(touchLog{{X: 100, Y: 50, Pressed: true}}, touch); diff != "" {
		t.Errorf("touch after resize mismatch (-want +got):\n%s", diff)
	}
}
