package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type tickContext uint64

func (tc tickContext) AddLogContext(z *EntryZ) { z.Uint("tick", uint64(tc)) }

func TestEntryZ(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Disable()

	mod := NewModule("logtest")

	mod.DebugZ("hidden").Int("n", 1).End()
	if buf.Len() != 0 {
		t.Fatalf("debug entry written while module disabled: %q", buf.String())
	}

	EnableDebugModules(mod.Mask())
	defer DisableDebugModules(mod.Mask())

	AddContext(tickContext(42))
	defer func() {
		ctxmu.Lock()
		contexts = contexts[:len(contexts)-1]
		ctxmu.Unlock()
	}()

	mod.DebugZ("shown").
		Int("n", -3).
		Hex32("pad", 0x8000beef).
		Float("strength", 0.45).
		Error("err", errors.New("boom")).
		End()

	out := buf.String()
	for _, want := range []string{"shown", "_mod=logtest", "n=-3", "pad=8000beef", "strength=0.45", "err=boom", "tick=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q doesn't contain %q", out, want)
		}
	}
}

func TestModuleByName(t *testing.T) {
	for _, name := range ModuleNames() {
		mod, ok := ModuleByName(name)
		if !ok {
			t.Errorf("ModuleByName(%q) not found", name)
			continue
		}
		if mod.String() != name {
			t.Errorf("ModuleByName(%q).String() = %q", name, mod.String())
		}
	}
	if _, ok := ModuleByName("nope"); ok {
		t.Errorf("ModuleByName(nope) should fail")
	}
}
