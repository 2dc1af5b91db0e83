/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"strings"

	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/api"
)

// ModuleLevels maintains log levels by module. Module names are slash
// separated paths ("indyres/ledger"); a module without a level of its own
// inherits the level of its closest parent, then the default stored under
// the empty name, then INFO.
type ModuleLevels struct {
	levels map[string]api.Level
}

// GetLevel returns the effective log level of module
func (l *ModuleLevels) GetLevel(module string) api.Level {
	for name := module; ; name = parent(name) {
		if level, exists := l.levels[name]; exists {
			return level
		}
		if name == "" {
			return api.INFO
		}
	}
}

// SetLevel sets the log level of module and, unless they have their own, of
// its submodules.
func (l *ModuleLevels) SetLevel(module string, level api.Level) {
	if l.levels == nil {
		l.levels = make(map[string]api.Level)
	}
	l.levels[module] = level
}

// IsEnabledFor will return true if logging is enabled for the given module.
func (l *ModuleLevels) IsEnabledFor(module string, level api.Level) bool {
	return level <= l.GetLevel(module)
}

func parent(module string) string {
	i := strings.LastIndex(module, "/")
	if i < 0 {
		return ""
	}
	return module[:i]
}
