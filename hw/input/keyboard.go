package input

import (
	"sync"
)

// KeyboardDevice is fed with key events by the window, and sampled by the
// router.
type KeyboardDevice struct {
	id Binding

	mu      sync.Mutex
	pressed map[int]bool // key -> down
}

// NewKeyboard returns the keyboard with the given device index.
func NewKeyboard(index int) *KeyboardDevice {
	kbd := &KeyboardDevice{}
	kbd.Init(index)
	return kbd
}

func (kbd *KeyboardDevice) Init(index int) bool {
	kbd.id = Binding{Backend: SDL, Index: index, Kind: Keyboard, Key: NoKey}
	kbd.mu.Lock()
	if kbd.pressed == nil {
		kbd.pressed = make(map[int]bool)
	}
	kbd.mu.Unlock()
	return true
}

// Press records that key went down.
func (kbd *KeyboardDevice) Press(key int) {
	kbd.mu.Lock()
	defer kbd.mu.Unlock()
	kbd.pressed[key] = true
}

// Release records that key went up.
func (kbd *KeyboardDevice) Release(key int) {
	kbd.mu.Lock()
	defer kbd.mu.Unlock()
	kbd.pressed[key] = false
}

func (kbd *KeyboardDevice) Sample() map[Binding]float32 {
	kbd.mu.Lock()
	pressed := make(map[int]bool, len(kbd.pressed))
	for k, down := range kbd.pressed {
		pressed[k] = down
	}
	kbd.mu.Unlock()

	samples := make(map[Binding]float32, len(pressed))
	b := kbd.id
	for k, down := range pressed {
		b.Key = k
		if down {
			samples[b] = 1
		} else {
			samples[b] = 0
		}
	}
	return samples
}

func (kbd *KeyboardDevice) Close() bool { return true }

func (kbd *KeyboardDevice) Clear() {
	kbd.mu.Lock()
	defer kbd.mu.Unlock()
	clear(kbd.pressed)
}

func (kbd *KeyboardDevice) FirstActive(threshold float32) Binding {
	return firstActive(kbd.Sample(), threshold)
}

func (kbd *KeyboardDevice) Identity() Binding { return kbd.id }
func (kbd *KeyboardDevice) Name() string      { return "Keyboard" }
