package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Logger is a thin printf-style facade over hclog. Debug output is dropped
// unless verbose mode is on.
type Logger struct {
	logger hclog.Logger
}

func New(verbose bool) *Logger {
	return NewWithWriter(verbose, os.Stderr)
}

// NewWithWriter directs log output to w; used by tests to capture output.
func NewWithWriter(verbose bool, w io.Writer) *Logger {
	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	return &Logger{
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "pagesmith",
			Level:  level,
			Output: w,
		}),
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

func (l *Logger) Print(v ...interface{}) {
	fmt.Print(v...)
}

func (l *Logger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

func (l *Logger) Println(v ...interface{}) {
	fmt.Println(v...)
}
