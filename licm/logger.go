package licm

import "go.uber.org/zap"

// Logger encapsulates a SugaredLogger for the pass.
// Use this through SetLogger() of Pass.
type Logger struct {
	*zap.SugaredLogger
}

type LogSetter interface {
	SetLogger(*Logger)
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
