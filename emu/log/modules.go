package log

import (
	"slices"
	"sync/atomic"
)

type (
	ModuleMask uint64
	Module     uint
)

const ModuleMaskAll ModuleMask = 1<<64 - 1

// Modules of the input core. Other packages register theirs with NewModule,
// at init time.
const (
	ModEmu Module = iota + 1
	ModInput
	ModDevice
	ModCapture
	ModConfig
	ModUI
)

// Index 0 is never a valid module.
var modNames = []string{"<error>", "emu", "input", "device", "capture", "config", "ui"}

// modDebugMask holds the modules for which debug and info entries are shown.
var modDebugMask atomic.Uint64

func NewModule(name string) Module {
	modNames = append(modNames, name)
	return Module(len(modNames) - 1)
}

// ModuleNames returns the names of all registered modules.
func ModuleNames() []string {
	return slices.Clone(modNames[1:])
}

func ModuleByName(name string) (Module, bool) {
	idx := slices.Index(modNames[1:], name)
	if idx < 0 {
		return 0, false
	}
	return Module(idx + 1), true
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask.Or(uint64(mask))
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask.And(^uint64(mask))
}

func (mod Module) String() string {
	if int(mod) < len(modNames) {
		return modNames[mod]
	}
	return modNames[0]
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

func (mod Module) Enabled(level Level) bool {
	return level <= WarnLevel || ModuleMask(modDebugMask.Load())&mod.Mask() != 0
}

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if mod.Enabled(lvl) {
		e := NewEntryZ()
		e.lvl = lvl
		e.msg = msg
		e.mod = mod
		return e
	}
	return nil
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }
func (mod Module) FatalZ(msg string) *EntryZ { return mod.logz(FatalLevel, msg) }
func (mod Module) PanicZ(msg string) *EntryZ { return mod.logz(PanicLevel, msg) }
