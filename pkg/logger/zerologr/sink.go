// Package zerologr adapts zerolog to logr so libraries that take a
// logr.Logger write through the process logger.
package zerologr

import (
	"github.com/go-logr/logr"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Sink struct {
	callDepth int
	verbosity int
	name      string
	logger    zerolog.Logger
}

var _ logr.LogSink = (*Sink)(nil)

// New returns a logr.Logger writing to logger. V-levels up to verbosity are
// enabled; V(0) logs at info, anything above at debug.
func New(logger zerolog.Logger, verbosity int) logr.Logger {
	return logr.New(&Sink{
		callDepth: 1,
		verbosity: verbosity,
		logger:    logger,
	})
}

// Global is New over the global zerolog logger.
func Global(verbosity int) logr.Logger {
	return New(log.Logger, verbosity)
}

func (s *Sink) Init(info logr.RuntimeInfo) {
	s.callDepth = info.CallDepth
}

func (s *Sink) Enabled(level int) bool {
	return s.verbosity >= level
}

func (s *Sink) Info(level int, msg string, keysAndValues ...any) {
	var e *zerolog.Event
	if level > 0 {
		e = s.logger.Debug()
	} else {
		e = s.logger.Info()
	}
	s.write(e.Int("v", level), msg, keysAndValues)
}

func (s *Sink) Error(err error, msg string, keysAndValues ...any) {
	s.write(s.logger.Error().Err(err), msg, keysAndValues)
}

func (s *Sink) write(e *zerolog.Event, msg string, keysAndValues []any) {
	if e == nil {
		return
	}
	if s.name != "" {
		e = e.Str("logger", s.name)
	}
	e.Fields(pairs(keysAndValues)).Msg(msg)
}

func (s *Sink) WithValues(keysAndValues ...any) logr.LogSink {
	n := *s
	n.logger = s.logger.With().Fields(pairs(keysAndValues)).Logger()
	return &n
}

func (s *Sink) WithName(name string) logr.LogSink {
	n := *s
	if n.name == "" {
		n.name = name
	} else {
		n.name += "/" + name
	}
	return &n
}

// pairs drops a dangling key so zerolog never sees an odd list.
func pairs(keysAndValues []any) []any {
	if len(keysAndValues)%2 != 0 {
		return keysAndValues[:len(keysAndValues)-1]
	}
	return keysAndValues
}
