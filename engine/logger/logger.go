// Package logger holds the logrus logger shared by every engine package.
//
// Components that accept their own logrus.FieldLogger fall back to Get when
// none is given, so a single Set call reconfigures the whole engine.
package logger

import (
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var current atomic.Pointer[logrus.Logger]

func init() { current.Store(newDefault()) }

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// Get returns the active engine logger.
func Get() *logrus.Logger { return current.Load() }

// Set replaces the engine logger and returns the previous one.
// Passing nil restores the default stderr logger.
func Set(l *logrus.Logger) *logrus.Logger {
	if l == nil {
		l = newDefault()
	}
	return current.Swap(l)
}

// Or returns l unless it is nil, in which case the engine logger is used.
func Or(l logrus.FieldLogger) logrus.FieldLogger {
	if l != nil {
		return l
	}
	return Get()
}
