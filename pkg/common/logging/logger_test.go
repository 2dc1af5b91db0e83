/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/api"
)

const moduleName = "indyres/logging-test"

type recordingProvider struct {
	mutex   sync.Mutex
	entries []string
}

func (p *recordingProvider) GetLogger(module string) api.Logger {
	return &recordingLogger{provider: p, module: module}
}

func (p *recordingProvider) add(level, module, msg string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.entries = append(p.entries, fmt.Sprintf("%s [%s] %s", level, module, msg))
}

func (p *recordingProvider) last() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if len(p.entries) == 0 {
		return ""
	}
	return p.entries[len(p.entries)-1]
}

type recordingLogger struct {
	provider *recordingProvider
	module   string
}

func (l *recordingLogger) Debug(args ...interface{}) { l.provider.add("DEBUG", l.module, fmt.Sprint(args...)) }
func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.provider.add("DEBUG", l.module, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Info(args ...interface{}) { l.provider.add("INFO", l.module, fmt.Sprint(args...)) }
func (l *recordingLogger) Infof(format string, args ...interface{}) {
	l.provider.add("INFO", l.module, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Warn(args ...interface{}) { l.provider.add("WARN", l.module, fmt.Sprint(args...)) }
func (l *recordingLogger) Warnf(format string, args ...interface{}) {
	l.provider.add("WARN", l.module, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Error(args ...interface{}) { l.provider.add("ERROR", l.module, fmt.Sprint(args...)) }
func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.provider.add("ERROR", l.module, fmt.Sprintf(format, args...))
}

func resetLoggerInstance() {
	loggerProviderInstance = nil
	loggerProviderOnce = sync.Once{}
}

func TestLoggingForCustomLogger(t *testing.T) {
	resetLoggerInstance()
	provider := &recordingProvider{}
	Initialize(provider)

	logger := NewLogger(moduleName)

	logger.Info("brown fox")
	assert.Equal(t, "INFO [indyres/logging-test] brown fox", provider.last())

	logger.Warnf("brown %s", "fox")
	assert.Equal(t, "WARN [indyres/logging-test] brown fox", provider.last())

	logger.Errorf("submission %d", 7)
	assert.Equal(t, "ERROR [indyres/logging-test] submission 7", provider.last())

	logger.Debug("lazy dog")
	assert.Equal(t, "DEBUG [indyres/logging-test] lazy dog", provider.last())
}

func TestInitializeOnlyOnce(t *testing.T) {
	resetLoggerInstance()
	first := &recordingProvider{}
	second := &recordingProvider{}

	assert.True(t, Initialize(first))
	assert.False(t, Initialize(second))

	NewLogger(moduleName).Info("hello")
	assert.Equal(t, "INFO [indyres/logging-test] hello", first.last())
	assert.Empty(t, second.last())
}

func TestLevels(t *testing.T) {
	module := moduleName + "-levels"

	SetLevel(module, DEBUG)
	assert.Equal(t, DEBUG, GetLevel(module))
	assert.True(t, IsEnabledFor(module, DEBUG))

	SetLevel(module, WARNING)
	assert.False(t, IsEnabledFor(module, INFO))
	assert.True(t, IsEnabledFor(module, ERROR))
}

func TestInheritedLevel(t *testing.T) {
	parent := moduleName + "-parent"

	SetLevel(parent, ERROR)
	assert.Equal(t, ERROR, GetLevel(parent+"/child"))
	assert.False(t, IsEnabledFor(parent+"/child", WARNING))

	SetLevel(parent+"/child", DEBUG)
	assert.True(t, IsEnabledFor(parent+"/child", DEBUG))
	assert.Equal(t, ERROR, GetLevel(parent+"/other"))
}

func TestLogLevel(t *testing.T) {
	level, err := LogLevel("debug")
	assert.NoError(t, err)
	assert.Equal(t, DEBUG, level)

	level, err = LogLevel("WARN")
	assert.NoError(t, err)
	assert.Equal(t, WARNING, level)

	_, err = LogLevel("chatty")
	assert.Error(t, err)
}
