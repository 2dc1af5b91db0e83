/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package zerologger is a logging backend writing structured events through
// zerolog. Module levels are shared with modlog, so logging.SetLevel applies
// to both backends.
package zerologger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/api"
	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/modlog"
)

const moduleField = "module"

// Provider creates zerolog backed module loggers
type Provider struct {
	logger zerolog.Logger
}

// New returns a provider writing JSON events to out.
func New(out io.Writer) *Provider {
	return NewWithLogger(zerolog.New(out).With().Timestamp().Logger())
}

// NewConsole returns a provider writing human readable events to stderr.
func NewConsole() *Provider {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return NewWithLogger(zerolog.New(output).With().Timestamp().Logger())
}

// NewWithLogger wraps an existing zerolog.Logger.
func NewWithLogger(logger zerolog.Logger) *Provider {
	return &Provider{logger: logger}
}

// GetLogger returns a logger tagged with the given module
func (p *Provider) GetLogger(module string) api.Logger {
	return &Log{
		logger: p.logger.With().Str(moduleField, module).Logger(),
		module: module,
	}
}

// Log implements api.Logger on top of zerolog
type Log struct {
	logger zerolog.Logger
	module string
}

// Debug logs at debug level.
func (l *Log) Debug(args ...interface{}) {
	if modlog.IsEnabledFor(l.module, api.DEBUG) {
		l.logger.Debug().Msg(fmt.Sprint(args...))
	}
}

// Debugf logs at debug level.
func (l *Log) Debugf(format string, args ...interface{}) {
	if modlog.IsEnabledFor(l.module, api.DEBUG) {
		l.logger.Debug().Msgf(format, args...)
	}
}

// Info logs at info level.
func (l *Log) Info(args ...interface{}) {
	if modlog.IsEnabledFor(l.module, api.INFO) {
		l.logger.Info().Msg(fmt.Sprint(args...))
	}
}

// Infof logs at info level.
func (l *Log) Infof(format string, args ...interface{}) {
	if modlog.IsEnabledFor(l.module, api.INFO) {
		l.logger.Info().Msgf(format, args...)
	}
}

// Warn logs at warn level.
func (l *Log) Warn(args ...interface{}) {
	if modlog.IsEnabledFor(l.module, api.WARNING) {
		l.logger.Warn().Msg(fmt.Sprint(args...))
	}
}

// Warnf logs at warn level.
func (l *Log) Warnf(format string, args ...interface{}) {
	if modlog.IsEnabledFor(l.module, api.WARNING) {
		l.logger.Warn().Msgf(format, args...)
	}
}

// Error logs at error level.
func (l *Log) Error(args ...interface{}) {
	if modlog.IsEnabledFor(l.module, api.ERROR) {
		l.logger.Error().Msg(fmt.Sprint(args...))
	}
}

// Errorf logs at error level.
func (l *Log) Errorf(format string, args ...interface{}) {
	if modlog.IsEnabledFor(l.module, api.ERROR) {
		l.logger.Error().Msgf(format, args...)
	}
}
