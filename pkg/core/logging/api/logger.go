/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package api is the contract between the logging facade and its backends.
package api

// Level defines all available log levels for log messages.
type Level int

// Log levels.
const (
	CRITICAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

var levelNames = [...]string{"CRITICAL", "ERROR", "WARNING", "INFO", "DEBUG"}

// String returns the upper case name of the level
func (l Level) String() string {
	if l < CRITICAL || l > DEBUG {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Logger is a leveled module logger. There is no fatal level; errors are
// returned to the caller instead.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

// LoggerProvider is a factory for module loggers
type LoggerProvider interface {
	GetLogger(module string) Logger
}
