/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package modlog is the default logging backend. It writes through the
// standard library logger and keeps the per-module levels that every
// backend consults.
package modlog

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/api"
	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/metadata"
)

// levels are shared by every backend of the process
var levels = struct {
	sync.RWMutex
	modules metadata.ModuleLevels
}{}

const (
	levelFormat  = "UTC -> %4.4s "
	prefixFormat = " [%s] "

	// frames between the caller and log.Logger.Output
	callDepth = 4
)

// Provider creates Log instances writing to out, stdout when nil
type Provider struct {
	out io.Writer
}

// GetLogger returns a logger for the given module
func (p *Provider) GetLogger(module string) api.Logger {
	out := p.out
	if out == nil {
		out = os.Stdout
	}
	return &Log{
		std:    log.New(out, fmt.Sprintf(prefixFormat, module), log.Ldate|log.Ltime|log.LUTC),
		module: module,
	}
}

// LoggerProvider returns the default logging provider writing to stdout
func LoggerProvider() api.LoggerProvider {
	return &Provider{}
}

// LoggerProviderWithOutput returns the default logging provider writing to out
func LoggerProviderWithOutput(out io.Writer) api.LoggerProvider {
	return &Provider{out: out}
}

// SetLevel sets the level of module
func SetLevel(module string, level api.Level) {
	levels.Lock()
	defer levels.Unlock()
	levels.modules.SetLevel(module, level)
}

// GetLevel returns the effective level of module
func GetLevel(module string) api.Level {
	levels.RLock()
	defer levels.RUnlock()
	return levels.modules.GetLevel(module)
}

// IsEnabledFor reports whether module logs at level
func IsEnabledFor(module string, level api.Level) bool {
	levels.RLock()
	defer levels.RUnlock()
	return levels.modules.IsEnabledFor(module, level)
}

// Log writes "[module] date time UTC -> LEVL message" lines through a stdlib logger
type Log struct {
	std    *log.Logger
	module string
}

func (l *Log) Debug(args ...interface{})                 { l.print(api.DEBUG, args) }
func (l *Log) Debugf(format string, args ...interface{}) { l.printf(api.DEBUG, format, args) }
func (l *Log) Info(args ...interface{})                  { l.print(api.INFO, args) }
func (l *Log) Infof(format string, args ...interface{})  { l.printf(api.INFO, format, args) }
func (l *Log) Warn(args ...interface{})                  { l.print(api.WARNING, args) }
func (l *Log) Warnf(format string, args ...interface{})  { l.printf(api.WARNING, format, args) }
func (l *Log) Error(args ...interface{})                 { l.print(api.ERROR, args) }
func (l *Log) Errorf(format string, args ...interface{}) { l.printf(api.ERROR, format, args) }

// ChangeOutput redirects the logger
func (l *Log) ChangeOutput(output io.Writer) {
	l.std.SetOutput(output)
}

func (l *Log) print(level api.Level, args []interface{}) {
	if IsEnabledFor(l.module, level) {
		l.output(level, fmt.Sprint(args...))
	}
}

func (l *Log) printf(level api.Level, format string, args []interface{}) {
	if IsEnabledFor(l.module, level) {
		l.output(level, fmt.Sprintf(format, args...))
	}
}

func (l *Log) output(level api.Level, msg string) {
	if err := l.std.Output(callDepth, fmt.Sprintf(levelFormat, level)+msg); err != nil {
		fmt.Fprintf(os.Stderr, "log output failed: %s\n", err)
	}
}
