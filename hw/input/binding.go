package input

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"vpad/emu/log"
)

// A Backend identifies the library through which a device is accessed.
type Backend uint8

const (
	SDL Backend = iota
)

var backendNames = map[string]Backend{
	"SDL": SDL,
}

func (b Backend) String() string {
	if b == SDL {
		return "SDL"
	}
	return "unknown"
}

// A DeviceKind identifies the family of a physical device.
type DeviceKind uint8

const (
	Keyboard DeviceKind = iota
	Gamepad
	Joystick
)

var kindNames = map[string]DeviceKind{
	"Keyboard": Keyboard,
	"Gamepad":  Gamepad,
	"Joystick": Joystick,
}

func (k DeviceKind) String() string {
	switch k {
	case Keyboard:
		return "Keyboard"
	case Gamepad:
		return "Gamepad"
	case Joystick:
		return "Joystick"
	}
	return "unknown"
}

// NoKey is the key of a binding which doesn't designate any input.
const NoKey = -1

// A Binding identifies one physical input: a key, a button or one direction of
// an axis, on a given device.
type Binding struct {
	Backend Backend
	Index   int
	Kind    DeviceKind
	Key     int
}

// Unbound is the binding routed to nothing.
var Unbound = Binding{Backend: SDL, Index: 0, Kind: Keyboard, Key: NoKey}

// IsSet reports whether b designates an actual input.
func (b Binding) IsSet() bool {
	return b.Key != NoKey
}

// IsEscape reports whether b is the keyboard Escape key, which cancels a
// capture.
func (b Binding) IsEscape() bool {
	return b.Kind == Keyboard && b.Key == int(sdl.SCANCODE_ESCAPE)
}

// Device returns the identity of the device b belongs to.
func (b Binding) Device() Binding {
	b.Key = NoKey
	return b
}

// SameDevice reports whether a and b belong to the same physical device,
// regardless of their keys.
func SameDevice(a, b Binding) bool {
	return a.Backend == b.Backend && a.Index == b.Index && a.Kind == b.Kind
}

// EqualsKey reports whether a and b designate the same input of the same
// device. Unset bindings never equal anything, not even themselves.
func EqualsKey(a, b Binding) bool {
	if !a.IsSet() || !b.IsSet() {
		return false
	}
	return SameDevice(a, b) && a.Key == b.Key
}

// Compare orders bindings by backend, device index, kind and then key.
func Compare(a, b Binding) int {
	return cmp.Or(
		cmp.Compare(a.Backend, b.Backend),
		cmp.Compare(a.Index, b.Index),
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Key, b.Key),
	)
}

func sortedBindings(m map[Binding]float32) []Binding {
	return slices.SortedFunc(maps.Keys(m), Compare)
}

func (b Binding) String() string {
	return fmt.Sprintf("%s/%d/%s/%d", b.Backend, b.Index, b.Kind, b.Key)
}

// DisplayName returns a user-friendly name for the bound input.
func (b Binding) DisplayName() string {
	if !b.IsSet() {
		return ""
	}
	switch b.Kind {
	case Keyboard:
		return sdl.GetScancodeName(sdl.Scancode(b.Key))
	case Gamepad:
		return fmt.Sprintf("%s (pad %d)", GamepadInput(b.Key), b.Index)
	case Joystick:
		return fmt.Sprintf("input %d (joy %d)", b.Key, b.Index)
	}
	return ""
}

// ParseBinding parses the string form of a binding, as produced by String.
func ParseBinding(s string) (Binding, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 4 {
		return Unbound, fmt.Errorf("malformed binding %q", s)
	}

	b := Unbound
	var ok bool
	if b.Backend, ok = backendNames[parts[0]]; !ok {
		return Unbound, fmt.Errorf("unknown backend %q", parts[0])
	}

	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 0 {
		return Unbound, fmt.Errorf("invalid device index %q", parts[1])
	}
	b.Index = idx

	if b.Kind, ok = kindNames[parts[2]]; !ok {
		return Unbound, fmt.Errorf("unknown device kind %q", parts[2])
	}

	key, err := strconv.Atoi(parts[3])
	if err != nil || key < NoKey {
		return Unbound, fmt.Errorf("invalid key %q", parts[3])
	}
	b.Key = key
	return b, nil
}

// Parse is like ParseBinding but never fails: a malformed string yields
// Unbound.
func Parse(s string) Binding {
	b, err := ParseBinding(s)
	if err != nil {
		return Unbound
	}
	return b
}

func (b Binding) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText never fails: malformed bindings are replaced by Unbound so
// that a corrupted entry in the settings doesn't prevent loading the others.
func (b *Binding) UnmarshalText(text []byte) error {
	var err error
	if *b, err = ParseBinding(string(text)); err != nil {
		log.ModConfig.WarnZ("ignoring malformed binding").
			String("text", string(text)).
			Error("err", err).
			End()
	}
	return nil
}
