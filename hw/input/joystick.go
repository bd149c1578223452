package input

import (
	"fmt"

	"vpad/emu/log"
)

// A joyInput reads one input of a joystick.
type joyInput interface {
	state() float32
	name() string
}

type joyButton struct {
	js  joystickHandle
	idx int
}

func (b joyButton) state() float32 {
	if b.js.button(b.idx) {
		return 1
	}
	return 0
}

func (b joyButton) name() string { return fmt.Sprintf("Button %d", b.idx) }

// hat directions, each one is a bit of the hat state.
const hatDirections = "NESW"

type joyHat struct {
	js  joystickHandle
	idx int
	dir uint // index in hatDirections
}

func (h joyHat) state() float32 {
	if h.js.hat(h.idx)&(1<<h.dir) != 0 {
		return 1
	}
	return 0
}

func (h joyHat) name() string { return fmt.Sprintf("Hat %d %c", h.idx, hatDirections[h.dir]) }

// joyAxis reads one direction of an axis, rng is either 32767 or -32768.
type joyAxis struct {
	js  joystickHandle
	idx int
	rng float32
}

func (a joyAxis) state() float32 {
	return max(0, float32(a.js.axis(a.idx))/a.rng)
}

func (a joyAxis) name() string {
	if a.rng < 0 {
		return fmt.Sprintf("Axis %d-", a.idx)
	}
	return fmt.Sprintf("Axis %d+", a.idx)
}

// JoystickDevice is a generic joystick, of which SDL doesn't know the
// layout. Its inputs are discovered when it's opened, the key of a joystick
// binding is the position of the input in that list.
type JoystickDevice struct {
	id     Binding
	js     joystickHandle
	inputs []joyInput
}

func (jd *JoystickDevice) Init(index int) bool {
	jd.id = Binding{Backend: SDL, Index: index, Kind: Joystick, Key: NoKey}
	if err := sys.init(); err != nil {
		return false
	}
	if index >= sys.numDevices() {
		log.ModDevice.DebugZ("no such joystick").Int("index", index).End()
		return false
	}

	jd.js = sys.openJoystick(index)
	if jd.js == nil {
		log.ModDevice.WarnZ("failed to open joystick").Int("index", index).End()
		return false
	}
	jd.gatherInputs()

	log.ModDevice.InfoZ("opened joystick").
		Int("index", index).
		String("name", jd.js.name()).
		Int("inputs", len(jd.inputs)).
		End()
	return true
}

// gatherInputs lists buttons, then hat directions, then axis directions.
func (jd *JoystickDevice) gatherInputs() {
	jd.inputs = jd.inputs[:0]
	for i := range jd.js.numButtons() {
		jd.inputs = append(jd.inputs, joyButton{js: jd.js, idx: i})
	}
	for i := range jd.js.numHats() {
		for d := range uint(len(hatDirections)) {
			jd.inputs = append(jd.inputs, joyHat{js: jd.js, idx: i, dir: d})
		}
	}
	for i := range jd.js.numAxes() {
		jd.inputs = append(jd.inputs,
			joyAxis{js: jd.js, idx: i, rng: 32767},
			joyAxis{js: jd.js, idx: i, rng: -32768},
		)
	}
}

// InputName returns the name of the input designated by key.
func (jd *JoystickDevice) InputName(key int) string {
	if key < 0 || key >= len(jd.inputs) {
		return ""
	}
	return jd.inputs[key].name()
}

func (jd *JoystickDevice) Sample() map[Binding]float32 {
	samples := make(map[Binding]float32, len(jd.inputs))
	if jd.js == nil {
		return samples
	}
	sys.update()

	b := jd.id
	for i, in := range jd.inputs {
		b.Key = i
		samples[b] = in.state()
	}
	return samples
}

func (jd *JoystickDevice) Close() bool {
	if jd.js != nil {
		jd.js.close()
		jd.js = nil
	}
	jd.inputs = nil
	return true
}

func (jd *JoystickDevice) Clear() {}

func (jd *JoystickDevice) FirstActive(threshold float32) Binding {
	return firstActive(jd.Sample(), threshold)
}

func (jd *JoystickDevice) Identity() Binding { return jd.id }

func (jd *JoystickDevice) Name() string {
	if jd.js == nil {
		return "Joystick (not connected)"
	}
	return jd.js.name()
}
