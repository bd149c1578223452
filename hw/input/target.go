package input

// A Target is one slot of the emulated machine input vocabulary.
type Target byte

const (
	// directly mapped
	TargetA Target = iota
	TargetB
	TargetX
	TargetY
	TargetL
	TargetR
	TargetZL
	TargetZR
	TargetStart
	TargetSelect
	TargetHome
	TargetDUp
	TargetDDown
	TargetDLeft
	TargetDRight
	TargetCUp
	TargetCDown
	TargetCLeft
	TargetCRight

	// analog stick directions, feeding the circle pad rather than pad bits.
	TargetCircleUp
	TargetCircleDown
	TargetCircleLeft
	TargetCircleRight

	NumTargets
)

var targetNames = [NumTargets]string{
	"a", "b", "x", "y",
	"l", "r", "zl", "zr",
	"start", "select", "home",
	"dup", "ddown", "dleft", "dright",
	"cup", "cdown", "cleft", "cright",
	"circle_up", "circle_down", "circle_left", "circle_right",
}

// HID pad state bits, indexed by Target.
var targetBits = [NumTargets]uint32{
	TargetA:           1 << 0,
	TargetB:           1 << 1,
	TargetSelect:      1 << 2,
	TargetStart:       1 << 3,
	TargetDRight:      1 << 4,
	TargetDLeft:       1 << 5,
	TargetDUp:         1 << 6,
	TargetDDown:       1 << 7,
	TargetR:           1 << 8,
	TargetL:           1 << 9,
	TargetX:           1 << 10,
	TargetY:           1 << 11,
	TargetZL:          1 << 14,
	TargetZR:          1 << 15,
	TargetHome:        1 << 20,
	TargetCRight:      1 << 24,
	TargetCLeft:       1 << 25,
	TargetCUp:         1 << 26,
	TargetCDown:       1 << 27,
	TargetCircleRight: 1 << 28,
	TargetCircleLeft:  1 << 29,
	TargetCircleUp:    1 << 30,
	TargetCircleDown:  1 << 31,
}

func (t Target) String() string {
	if t >= NumTargets {
		return "invalid"
	}
	return targetNames[t]
}

// Bit returns the pad state bit of t.
func (t Target) Bit() uint32 {
	return targetBits[t]
}

// IsStick reports whether t is one of the analog stick directions.
func (t Target) IsStick() bool {
	return t >= TargetCircleUp && t <= TargetCircleRight
}

// TargetByName returns the target with the given name.
func TargetByName(name string) (Target, bool) {
	for i, s := range targetNames {
		if s == name {
			return Target(i), true
		}
	}
	return NumTargets, false
}

// A Slot is an entry of the settings table: one per target, plus one for the
// stick modifier.
type Slot int

const ModifierSlot = Slot(NumTargets)

// NumSlots is the number of entries in the settings table.
const NumSlots = int(NumTargets) + 1

func (s Slot) String() string {
	if s == ModifierSlot {
		return "circle_modifier"
	}
	return Target(s).String()
}

// SlotByName returns the slot with the given name.
func SlotByName(name string) (Slot, bool) {
	if name == ModifierSlot.String() {
		return ModifierSlot, true
	}
	t, ok := TargetByName(name)
	return Slot(t), ok
}
