package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
)

func TestBindingRoundTrip(t *testing.T) {
	tests := []struct {
		text string
		b    Binding
	}{
		{"SDL/0/Keyboard/-1", Unbound},
		{"SDL/0/Keyboard/65", Binding{Backend: SDL, Index: 0, Kind: Keyboard, Key: 65}},
		{"SDL/1/Gamepad/3", Binding{Backend: SDL, Index: 1, Kind: Gamepad, Key: 3}},
		{"SDL/2/Gamepad/17", Binding{Backend: SDL, Index: 2, Kind: Gamepad, Key: int(LeftYMinus)}},
		{"SDL/7/Joystick/0", Binding{Backend: SDL, Index: 7, Kind: Joystick, Key: 0}},
		{"SDL/3/Joystick/42", Binding{Backend: SDL, Index: 3, Kind: Joystick, Key: 42}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			b, err := ParseBinding(tt.text)
			if err != nil {
				t.Fatalf("ParseBinding(%q) error: %v", tt.text, err)
			}
			if diff := cmp.Diff(tt.b, b); diff != "" {
				t.Fatalf("ParseBinding(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
			if got := b.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
			if got := Parse(b.String()); got != b {
				t.Errorf("Parse(String()) = %v, want %v", got, b)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []string{
		"",
		"garbage",
		"SDL/0/Keyboard",
		"SDL/0/Keyboard/1/2",
		"XInput/0/Keyboard/1",
		"SDL/x/Keyboard/1",
		"SDL/-3/Gamepad/1",
		"SDL/0/Mouse/1",
		"SDL/0/Gamepad/",
		"SDL/0/Gamepad/-2",
		"SDL/0/Gamepad/1.5",
		"sdl/0/keyboard/1",
		"////",
		"SDL/99999999999999999999/Gamepad/1",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			if _, err := ParseBinding(text); err == nil {
				t.Errorf("ParseBinding(%q) should fail", text)
			}
			if got := Parse(text); got != Unbound {
				t.Errorf("Parse(%q) = %v, want Unbound", text, got)
			}
		})
	}
}

func TestEqualsKey(t *testing.T) {
	a := padKey(1, ButtonA)
	tests := []struct {
		name string
		x, y Binding
		want bool
	}{
		{"same", a, padKey(1, ButtonA), true},
		{"other key", a, padKey(1, ButtonB), false},
		{"other index", a, padKey(2, ButtonA), false},
		{"other kind", a, Binding{Backend: SDL, Index: 1, Kind: Joystick, Key: int(ButtonA)}, false},
		{"unset", Unbound, Unbound, false},
		{"unset pad", padKey(1, NoKey), padKey(1, NoKey), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EqualsKey(tt.x, tt.y); got != tt.want {
				t.Errorf("EqualsKey(%v, %v) = %t, want %t", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if !SameDevice(padKey(1, ButtonA), padKey(1, ButtonB)) {
		t.Errorf("SameDevice should ignore keys")
	}
	if got := padKey(1, ButtonX).Device(); got != padKey(1, NoKey) {
		t.Errorf("Device() = %v, want %v", got, padKey(1, NoKey))
	}
}

func TestSortedBindings(t *testing.T) {
	samples := map[Binding]float32{
		padKey(1, ButtonB): 0,
		kbdKey(30):         0,
		padKey(0, ButtonY): 0,
		kbdKey(4):          0,
		padKey(1, ButtonA): 0,
	}
	want := []Binding{
		kbdKey(4),
		kbdKey(30),
		padKey(0, ButtonY),
		padKey(1, ButtonA),
		padKey(1, ButtonB),
	}
	if diff := cmp.Diff(want, sortedBindings(samples)); diff != "" {
		t.Errorf("sortedBindings mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigTOML(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bindings[TargetA] = padKey(2, ButtonA)
	cfg.StickModifier = Binding{Backend: SDL, Index: 1, Kind: Joystick, Key: 5}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		t.Fatal(err)
	}

	var got Config
	if _, err := toml.Decode(buf.String(), &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("toml round trip mismatch (-want +got):\n%s", diff)
	}

	// A malformed binding doesn't prevent loading the others.
	corrupted := strings.Replace(buf.String(), `"SDL/2/Gamepad/0"`, `"SDL/2/Gamepad/zzz"`, 1)
	if corrupted == buf.String() {
		t.Fatalf("binding not found in encoded config:\n%s", buf.String())
	}
	got = Config{}
	if _, err := toml.Decode(corrupted, &got); err != nil {
		t.Fatal(err)
	}
	want := cfg
	want.Bindings[TargetA] = Unbound
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("toml corrupted mismatch (-want +got):\n%s", diff)
	}
}
