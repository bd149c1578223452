package log

import (
	"io"
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

// Level mirrors logrus levels: the lower, the more severe.
type Level uint32

const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

func (lvl Level) logrus() logrus.Level {
	return logrus.Level(lvl)
}

// A Context adds fields to every log entry, whatever the module. It's used to
// tag log lines with some global state (current frame, tick count, etc.).
type Context interface {
	AddLogContext(z *EntryZ)
}

var (
	ctxmu    sync.Mutex
	contexts []Context
)

// AddContext registers a context, added to all subsequent log entries.
func AddContext(c Context) {
	ctxmu.Lock()
	defer ctxmu.Unlock()
	contexts = append(contexts, c)
}

// SetOutput sets the destination of all log modules.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// Disable discards all log output.
func Disable() {
	logrus.SetOutput(io.Discard)
}

func init() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
}
