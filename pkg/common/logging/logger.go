/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logging is the logging facade used by every package of the module.
//
// Packages declare their module logger once:
//
//	var logger = logging.NewLogger("indyres/ledger")
//
// The backend is bound on the first log call. A custom backend installed
// with Initialize before that point takes over; otherwise modlog writes to
// stdout. Levels are kept per module and inherited along the module path,
// so SetLevel("indyres", DEBUG) enables debug output for every package.
package logging

import (
	"sync"

	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/api"
	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/metadata"
	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/modlog"
)

// RootModule is the parent of every module logger of the module
const RootModule = "indyres"

const loggerModule = RootModule + "/common"

// Level defines all available log levels for log messages.
type Level = api.Level

// Log levels.
const (
	CRITICAL = api.CRITICAL
	ERROR    = api.ERROR
	WARNING  = api.WARNING
	INFO     = api.INFO
	DEBUG    = api.DEBUG
)

// Logger is a module logger whose backend is resolved lazily
type Logger struct {
	instance api.Logger // access only via Logger.logger()
	module   string
	once     sync.Once
}

// backend singleton - access only via loggerProvider()
var loggerProviderInstance api.LoggerProvider
var loggerProviderOnce sync.Once

// NewLogger returns the logger of module
func NewLogger(module string) *Logger {
	return &Logger{module: module}
}

func loggerProvider() api.LoggerProvider {
	loggerProviderOnce.Do(func() {
		loggerProviderInstance = modlog.LoggerProvider()
		loggerProviderInstance.GetLogger(loggerModule).Debug("default logger provider initialized")
	})
	return loggerProviderInstance
}

// Initialize installs provider as the logging backend. It returns false, and
// leaves the backend unchanged, once a backend is bound.
func Initialize(provider api.LoggerProvider) bool {
	installed := false
	loggerProviderOnce.Do(func() {
		loggerProviderInstance = provider
		installed = true
	})
	if installed {
		provider.GetLogger(loggerModule).Debug("logger provider initialized")
	}
	return installed
}

// SetLevel sets the level of module and of the submodules without a level
// of their own.
func SetLevel(module string, level Level) {
	modlog.SetLevel(module, level)
}

// GetLevel returns the effective level of module
func GetLevel(module string) Level {
	return modlog.GetLevel(module)
}

// IsEnabledFor reports whether module logs at level
func IsEnabledFor(module string, level Level) bool {
	return modlog.IsEnabledFor(module, level)
}

// LogLevel parses a level name such as "debug" or "WARN"
func LogLevel(level string) (Level, error) {
	return metadata.ParseLevel(level)
}

// Debug logs at DEBUG level
func (l *Logger) Debug(args ...interface{}) {
	l.logger().Debug(args...)
}

// Debugf logs at DEBUG level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger().Debugf(format, args...)
}

// Info logs at INFO level
func (l *Logger) Info(args ...interface{}) {
	l.logger().Info(args...)
}

// Infof logs at INFO level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger().Infof(format, args...)
}

// Warn logs at WARNING level
func (l *Logger) Warn(args ...interface{}) {
	l.logger().Warn(args...)
}

// Warnf logs at WARNING level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger().Warnf(format, args...)
}

// Error logs at ERROR level
func (l *Logger) Error(args ...interface{}) {
	l.logger().Error(args...)
}

// Errorf logs at ERROR level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logger().Errorf(format, args...)
}

func (l *Logger) logger() api.Logger {
	l.once.Do(func() {
		l.instance = loggerProvider().GetLogger(l.module)
	})
	return l.instance
}
