package emu

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/go-faster/jx"

	"vpad/emu/log"
)

// An InputReader provides the virtual controller state.
type InputReader interface {
	ControllerState() uint32
	Stick() (x, y int16)
	Touch() (x, y uint16, pressed bool)
}

// InputState is a snapshot of the virtual controller.
type InputState struct {
	Pad     uint32
	StickX  int16
	StickY  int16
	TouchX  uint16
	TouchY  uint16
	Touched bool
}

// Encode writes s as a JSON object.
func (s InputState) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("pad", func(e *jx.Encoder) { e.Int(int(s.Pad)) })
		e.Field("stick", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				e.Int(int(s.StickX))
				e.Int(int(s.StickY))
			})
		})
		e.Field("touch", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("x", func(e *jx.Encoder) { e.Int(int(s.TouchX)) })
				e.Field("y", func(e *jx.Encoder) { e.Int(int(s.TouchY)) })
				e.Field("pressed", func(e *jx.Encoder) { e.Bool(s.Touched) })
			})
		})
	})
}

// Decode reads s from a JSON object written by Encode.
func (s *InputState) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "pad":
			v, err := d.UInt32()
			s.Pad = v
			return err
		case "stick":
			var vals []int16
			err := d.Arr(func(d *jx.Decoder) error {
				v, err := d.Int16()
				vals = append(vals, v)
				return err
			})
			if len(vals) == 2 {
				s.StickX, s.StickY = vals[0], vals[1]
			}
			return err
		case "touch":
			return d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "x":
					s.TouchX, err = d.UInt16()
				case "y":
					s.TouchY, err = d.UInt16()
				case "pressed":
					s.Touched, err = d.Bool()
				default:
					err = d.Skip()
				}
				return err
			})
		}
		return d.Skip()
	})
}

// HID is the machine side of the input: it's refreshed after each input
// tick, and keeps the last state read from the input router.
type HID struct {
	src     InputReader
	state   atomic.Pointer[InputState]
	dropped atomic.Uint64 // changes lost by subscribers too slow to keep up
	ticks   atomic.Uint64

	mu   sync.Mutex
	subs map[chan InputState]struct{}
}

const hidQueueLen = 64

func NewHID(src InputReader) *HID {
	return &HID{
		src:  src,
		subs: make(map[chan InputState]struct{}),
	}
}

// Subscribe returns a channel receiving the state changes following the call.
// Calling unsubscribe closes the channel.
func (h *HID) Subscribe() (states <-chan InputState, unsubscribe func()) {
	ch := make(chan InputState, hidQueueLen)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	return ch, sync.OnceFunc(func() {
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		h.mu.Unlock()
	})
}

// Update reads the current state of the virtual controller.
func (h *HID) Update() {
	h.ticks.Add(1)
	x, y := h.src.Stick()
	tx, ty, touched := h.src.Touch()
	cur := &InputState{
		Pad:     h.src.ControllerState(),
		StickX:  x,
		StickY:  y,
		TouchX:  tx,
		TouchY:  ty,
		Touched: touched,
	}

	prev := h.state.Swap(cur)
	if prev != nil && *prev == *cur {
		return
	}

	log.ModEmu.DebugZ("input state update").
		Hex32("pad", cur.Pad).
		Int16("x", cur.StickX).
		Int16("y", cur.StickY).
		End()

	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- *cur:
		default:
			h.dropped.Add(1)
		}
	}
	h.mu.Unlock()
}

// AddLogContext tags log entries with the number of input ticks.
func (h *HID) AddLogContext(z *log.EntryZ) {
	z.Uint("tick", h.ticks.Load())
}

// State returns the last read state.
func (h *HID) State() InputState {
	if s := h.state.Load(); s != nil {
		return *s
	}
	return InputState{}
}

// WriteJSON writes each state change following the call as a line of JSON
// into w, until ctx is done.
func (h *HID) WriteJSON(ctx context.Context, w io.Writer) error {
	states, unsubscribe := h.Subscribe()
	defer unsubscribe()
	return h.writeJSON(ctx, states, w)
}

func (h *HID) writeJSON(ctx context.Context, states <-chan InputState, w io.Writer) error {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	for {
		select {
		case <-ctx.Done():
			if n := h.dropped.Load(); n != 0 {
				log.ModEmu.WarnZ("input state changes dropped").Uint("count", n).End()
			}
			return nil
		case s, ok := <-states:
			if !ok {
				return nil
			}
			e.Reset()
			s.Encode(e)
			if _, err := w.Write(append(e.Bytes(), '\n')); err != nil {
				return err
			}
		}
	}
}
