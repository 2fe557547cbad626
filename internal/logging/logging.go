// Package logging supplies the minimal leveled-logging capability the
// codec and transfer packages use under debug_mode: a small interface so
// callers can inject a no-op in production defaults and tests, or a
// standard-library-backed logger when debugging is turned on. Grounded on
// the Logger/NoopLogger shape in the retrieval pack's zmodem example
// (package zmodem's logger.go), adapted to this repo's own Debugf/Infof/
// Errorf naming and wired into codec and transfer rather than framing.
package logging

import (
	"io"
	"log"
)

// Logger is the leveled-logging capability codec.Codec and the transfer
// package accept. Debugf carries per-symbol/per-datagram detail, Infof
// carries session-level events (sync applied, retry attempted), Errorf
// carries failures a caller should be able to grep for.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NoopLogger discards everything. It is the default when debug_mode is
// unset, so the hot encode/decode path never pays for formatting.
type NoopLogger struct{}

func (NoopLogger) Debugf(string, ...interface{}) {}
func (NoopLogger) Infof(string, ...interface{})  {}
func (NoopLogger) Errorf(string, ...interface{}) {}

// StdLogger writes leveled lines through a standard library *log.Logger.
type StdLogger struct {
	l *log.Logger
}

// NewStdLogger builds a StdLogger writing to w with a microsecond-precision
// timestamp prefix, the teacher's own stats-line convention's closest
// standard-library equivalent.
func NewStdLogger(w io.Writer) *StdLogger {
	return &StdLogger{l: log.New(w, "", log.LstdFlags|log.Lmicroseconds)}
}

func (s *StdLogger) Debugf(format string, args ...interface{}) {
	s.l.Printf("DEBUG "+format, args...)
}

func (s *StdLogger) Infof(format string, args ...interface{}) {
	s.l.Printf("INFO "+format, args...)
}

func (s *StdLogger) Errorf(format string, args ...interface{}) {
	s.l.Printf("ERROR "+format, args...)
}
