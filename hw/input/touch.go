package input

import "sync"

type touchState struct {
	mu      sync.Mutex
	x, y    uint16
	pressed bool
}

// Touch returns the touch screen state.
func (r *Router) Touch() (x, y uint16, pressed bool) {
	r.touch.mu.Lock()
	defer r.touch.mu.Unlock()
	return r.touch.x, r.touch.y, r.touch.pressed
}

// SetTouch updates the touch screen state.
func (r *Router) SetTouch(x, y uint16, pressed bool) {
	r.touch.mu.Lock()
	defer r.touch.mu.Unlock()
	r.touch.x, r.touch.y, r.touch.pressed = x, y, pressed
}
