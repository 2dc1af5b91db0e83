/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config loads configuration through viper. Every key may be
// overridden by an environment variable: "pool.timeout" is read from
// INDYRES_POOL_TIMEOUT unless another prefix is given.
package config

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/core"
)

var logger = logging.NewLogger("indyres/config")

type options struct {
	envPrefix    string
	templatePath string
}

const (
	cmdRoot = "INDYRES"

	logLevelKey = "client.logging.level"
)

// Option configures the package.
type Option func(opts *options) error

// FromReader loads configuration from in.
// configType can be "json" or "yaml".
func FromReader(in io.Reader, configType string, opts ...Option) core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		return initFromReader(in, configType, opts...)
	}
}

// FromFile reads from named config file
func FromFile(name string, opts ...Option) core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		if name == "" {
			return nil, errors.New("filename is required")
		}

		backend, err := newBackend(opts...)
		if err != nil {
			return nil, err
		}
		if err := backend.mergeFile(name); err != nil {
			return nil, errors.WithMessage(err, "loading config file failed")
		}
		return backend.finish()
	}
}

// FromRaw will initialize the configs from a byte array
func FromRaw(configBytes []byte, configType string, opts ...Option) core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		return initFromReader(bytes.NewReader(configBytes), configType, opts...)
	}
}

// Empty returns a provider backed only by defaults and environment overrides.
func Empty(opts ...Option) core.ConfigProvider {
	return func() ([]core.ConfigBackend, error) {
		backend, err := newBackend(opts...)
		if err != nil {
			return nil, err
		}
		return backend.finish()
	}
}

func initFromReader(in io.Reader, configType string, opts ...Option) ([]core.ConfigBackend, error) {
	if configType == "" {
		return nil, errors.New("empty config type")
	}

	backend, err := newBackend(opts...)
	if err != nil {
		return nil, err
	}
	if err := backend.mergeReader(in, configType); err != nil {
		return nil, err
	}
	return backend.finish()
}

// WithEnvPrefix defines the prefix for environment variable overrides.
// See viper SetEnvPrefix for more information.
func WithEnvPrefix(prefix string) Option {
	return func(opts *options) error {
		if prefix == "" {
			return errors.New("environment prefix must not be empty")
		}
		opts.envPrefix = prefix
		return nil
	}
}

// WithTemplatePath loads the given file first; later sources are merged over it.
func WithTemplatePath(path string) Option {
	return func(opts *options) error {
		opts.templatePath = path
		return nil
	}
}

// setLogLevel will set the log level of the client
func setLogLevel(backend core.ConfigBackend) error {
	loggingLevelString, _ := backend.Lookup(logLevelKey)
	logLevel := logging.INFO
	if loggingLevelString != nil {
		var err error
		logLevel, err = logging.LogLevel(cast.ToString(loggingLevelString))
		if err != nil {
			return errors.WithMessage(err, "invalid "+logLevelKey)
		}
	}

	logging.SetLevel(logging.RootModule, logLevel)
	return nil
}
