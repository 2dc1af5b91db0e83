/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package core

import (
	"time"
)

// ConfigBackend is a source of raw configuration values
type ConfigBackend interface {
	Lookup(key string) (interface{}, bool)
}

// ConfigProvider provides config backend for SDK
type ConfigProvider func() ([]ConfigBackend, error)

// Config is the typed SDK configuration
type Config interface {
	LogLevel() string
	ProtocolVersion() int
	ClientTimeout() time.Duration
	CommandBufferSize() int
	PoolAddress() string
	PoolNodes() []string
	PoolTimeout() time.Duration
	MetricsEnabled() bool
	MetricsNamespace() string
}
