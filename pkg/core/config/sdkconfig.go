/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/core"
	"github.com/hyperledger/indy-resolver-go/pkg/core/config/lookup"
)

// Configuration keys
const (
	ProtocolVersionKey   = "client.protocolVersion"
	ClientTimeoutKey     = "client.timeout"
	CommandBufferSizeKey = "executor.commandBufferSize"
	PoolAddressKey       = "pool.address"
	PoolNodesKey         = "pool.nodes"
	PoolTimeoutKey       = "pool.timeout"
	MetricsEnabledKey    = "metrics.enabled"
	MetricsNamespaceKey  = "metrics.namespace"
)

// Defaults
const (
	DefaultLogLevel          = "info"
	DefaultProtocolVersion   = 2
	DefaultClientTimeout     = 30 * time.Second
	DefaultCommandBufferSize = 100
	DefaultPoolTimeout       = 10 * time.Second
	DefaultMetricsNamespace  = "indyres"
)

// DefaultPoolNodes names the nodes of the in-process pool
var DefaultPoolNodes = []string{"Node1", "Node2", "Node3", "Node4"}

func setDefaults(v *viper.Viper) {
	v.SetDefault(logLevelKey, DefaultLogLevel)
	v.SetDefault(ProtocolVersionKey, DefaultProtocolVersion)
	v.SetDefault(ClientTimeoutKey, DefaultClientTimeout)
	v.SetDefault(CommandBufferSizeKey, DefaultCommandBufferSize)
	v.SetDefault(PoolTimeoutKey, DefaultPoolTimeout)
	v.SetDefault(PoolNodesKey, DefaultPoolNodes)
	v.SetDefault(MetricsEnabledKey, false)
	v.SetDefault(MetricsNamespaceKey, DefaultMetricsNamespace)
}

// SDKConfig is the typed view over one or more config backends
type SDKConfig struct {
	backend *lookup.ConfigLookup
}

// New loads the given provider and returns the typed configuration.
func New(provider core.ConfigProvider) (*SDKConfig, error) {
	if provider == nil {
		return nil, errors.New("config provider is required")
	}
	backends, err := provider()
	if err != nil {
		return nil, errors.WithMessage(err, "unable to load config backends")
	}
	if len(backends) == 0 {
		return nil, errors.New("config provider returned no backends")
	}

	cfg := &SDKConfig{backend: lookup.New(backends...)}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SDKConfig) validate() error {
	if v := c.ProtocolVersion(); v != 1 && v != 2 {
		return errors.Errorf("unsupported %s [%d]: expected 1 or 2", ProtocolVersionKey, v)
	}
	if c.CommandBufferSize() < 0 {
		return errors.Errorf("%s must not be negative", CommandBufferSizeKey)
	}
	if c.ClientTimeout() < 0 {
		return errors.Errorf("%s must not be negative", ClientTimeoutKey)
	}
	if c.PoolTimeout() < 0 {
		return errors.Errorf("%s must not be negative", PoolTimeoutKey)
	}
	return nil
}

// LogLevel returns the configured client log level
func (c *SDKConfig) LogLevel() string {
	return c.backend.LowerString(logLevelKey, DefaultLogLevel)
}

// ProtocolVersion returns the protocol version stamped on every request
func (c *SDKConfig) ProtocolVersion() int {
	return c.backend.Int(ProtocolVersionKey, DefaultProtocolVersion)
}

// ClientTimeout returns how long blocking ledger client calls wait for a response
func (c *SDKConfig) ClientTimeout() time.Duration {
	return c.backend.Duration(ClientTimeoutKey, DefaultClientTimeout)
}

// CommandBufferSize returns the capacity of the executor command channel
func (c *SDKConfig) CommandBufferSize() int {
	return c.backend.Int(CommandBufferSizeKey, DefaultCommandBufferSize)
}

// PoolAddress returns the address of the pool gateway; empty selects the in-process pool
func (c *SDKConfig) PoolAddress() string {
	return c.backend.String(PoolAddressKey, "")
}

// PoolNodes returns the node names of the in-process pool
func (c *SDKConfig) PoolNodes() []string {
	if nodes := c.backend.Strings(PoolNodesKey); len(nodes) > 0 {
		return nodes
	}
	return DefaultPoolNodes
}

// PoolTimeout returns the timeout applied to pool gateway calls
func (c *SDKConfig) PoolTimeout() time.Duration {
	return c.backend.Duration(PoolTimeoutKey, DefaultPoolTimeout)
}

// MetricsEnabled reports whether executor metrics are collected
func (c *SDKConfig) MetricsEnabled() bool {
	return c.backend.Bool(MetricsEnabledKey, false)
}

// MetricsNamespace returns the prometheus namespace of the executor metrics
func (c *SDKConfig) MetricsNamespace() string {
	return c.backend.String(MetricsNamespaceKey, DefaultMetricsNamespace)
}

// Lookup exposes the underlying lookup for collaborator specific keys
func (c *SDKConfig) Lookup() *lookup.ConfigLookup {
	return c.backend
}

var _ core.Config = (*SDKConfig)(nil)
