package input

// A Device is a physical input device.
type Device interface {
	// Init opens the device at the given index. A device that failed to
	// initialize must not be sampled.
	Init(index int) bool

	// Sample returns the current strength, in [0, 1], of every input of the
	// device.
	Sample() map[Binding]float32

	// Close releases the device.
	Close() bool

	// Clear forgets any transient state, such as keys still held down.
	Clear()

	// FirstActive returns the first input of the device whose strength
	// exceeds threshold, or Unbound.
	FirstActive(threshold float32) Binding

	// Identity returns the device binding, with an unset key.
	Identity() Binding

	// Name returns a human readable name for the device.
	Name() string
}

// firstActive returns, following binding order, the first sampled input whose
// strength exceeds threshold.
func firstActive(samples map[Binding]float32, threshold float32) Binding {
	for _, b := range sortedBindings(samples) {
		if samples[b] > threshold {
			return b
		}
	}
	return Unbound
}

// newDevice returns an uninitialized device of the given kind. There's only
// one keyboard, kbd, shared by all keyboard bindings.
func newDevice(kind DeviceKind, kbd *KeyboardDevice) Device {
	switch kind {
	case Keyboard:
		return kbd
	case Gamepad:
		return &GamepadDevice{}
	case Joystick:
		return &JoystickDevice{}
	}
	return nil
}
