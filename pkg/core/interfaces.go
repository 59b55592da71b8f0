package core

import (
	"fmt"

	"github.com/golang/glog"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// GlogLogger sends Logger output to glog at INFO level
type GlogLogger struct{}

// Printf logs through glog, attributing the line to the caller
func (GlogLogger) Printf(format string, args ...interface{}) {
	glog.InfoDepth(1, fmt.Sprintf(format, args...))
}

// NopLogger discards everything
type NopLogger struct{}

// Printf does nothing
func (NopLogger) Printf(format string, args ...interface{}) {}
