// pkg/execute/sink.go
package execute

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Sink receives a line-by-line mirror of every invocation and its raw
// output. Write-only from the executor's perspective.
type Sink interface {
	Command(name string, args []string)
	Line(line string)
}

// LogrusSink mirrors command traffic to a logrus logger.
type LogrusSink struct {
	Logger *logrus.Logger
}

// NewLogrusSink creates a sink backed by logger, or the logrus standard
// logger when nil.
func NewLogrusSink(logger *logrus.Logger) *LogrusSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusSink{Logger: logger}
}

func (s *LogrusSink) Command(name string, args []string) {
	s.Logger.WithField("command", name+" "+strings.Join(args, " ")).Info("exec")
}

func (s *LogrusSink) Line(line string) {
	s.Logger.Debug(line)
}

// nopSink discards all diagnostics.
type nopSink struct{}

func (nopSink) Command(string, []string) {}
func (nopSink) Line(string)              {}
