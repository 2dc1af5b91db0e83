/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/core"
)

// viperBackend is a ConfigBackend over a single viper instance. Values
// resolve from the environment first, then from merged sources in reverse
// load order (template, then the caller's config), then from defaults.
type viperBackend struct {
	v    *viper.Viper
	opts options
}

func newBackend(opts ...Option) (*viperBackend, error) {
	o := options{envPrefix: cmdRoot}
	for _, option := range opts {
		if err := option(&o); err != nil {
			return nil, errors.WithMessage(err, "Error in options passed to create new config backend")
		}
	}

	v := viper.New()
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	b := &viperBackend{v: v, opts: o}
	if o.templatePath != "" {
		if err := b.mergeFile(o.templatePath); err != nil {
			return nil, errors.WithMessage(err, "loading template config file failed")
		}
	}
	return b, nil
}

// Lookup returns the value of key; defaults count as present
func (b *viperBackend) Lookup(key string) (interface{}, bool) {
	value := b.v.Get(key)
	if value == nil {
		return nil, false
	}
	return value, true
}

func (b *viperBackend) mergeFile(path string) error {
	b.v.SetConfigFile(path)
	return errors.Wrapf(b.v.MergeInConfig(), "reading %s failed", path)
}

func (b *viperBackend) mergeReader(in io.Reader, configType string) error {
	// a stream carries no extension to infer the type from
	b.v.SetConfigType(configType)
	return errors.Wrap(b.v.MergeConfig(in), "reading config failed")
}

// finish applies the settings that take effect as soon as a backend is loaded
func (b *viperBackend) finish() ([]core.ConfigBackend, error) {
	if err := setLogLevel(b); err != nil {
		return nil, err
	}
	return []core.ConfigBackend{b}, nil
}
