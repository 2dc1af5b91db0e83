/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package lookup reads typed values from an ordered list of config backends.
// The first backend holding a key wins. Typed getters fall back to the
// caller's default when the key is absent or its value does not convert.
package lookup

import (
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/core"
)

var logger = logging.NewLogger("indyres/config")

// ConfigLookup resolves keys across backends
type ConfigLookup struct {
	backends []core.ConfigBackend
}

// New returns a lookup over backends, in precedence order. Nil backends are skipped.
func New(backends ...core.ConfigBackend) *ConfigLookup {
	l := &ConfigLookup{}
	for _, b := range backends {
		if b != nil {
			l.backends = append(l.backends, b)
		}
	}
	return l
}

// Lookup returns the raw value of key from the first backend holding it
func (c *ConfigLookup) Lookup(key string) (interface{}, bool) {
	for _, backend := range c.backends {
		if val, ok := backend.Lookup(key); ok {
			return val, true
		}
	}
	return nil, false
}

// Has reports whether any backend holds key
func (c *ConfigLookup) Has(key string) bool {
	_, ok := c.Lookup(key)
	return ok
}

func typed[T any](c *ConfigLookup, key string, def T, conv func(interface{}) (T, error)) T {
	raw, ok := c.Lookup(key)
	if !ok {
		return def
	}
	v, err := conv(raw)
	if err != nil {
		logger.Warnf("ignoring config value of [%s]: %s", key, err)
		return def
	}
	return v
}

// Bool returns the boolean at key, or def
func (c *ConfigLookup) Bool(key string, def bool) bool {
	return typed(c, key, def, cast.ToBoolE)
}

// String returns the string at key, or def when it is absent or empty
func (c *ConfigLookup) String(key string, def string) string {
	if s := typed(c, key, def, cast.ToStringE); s != "" {
		return s
	}
	return def
}

// LowerString is String folded to lower case
func (c *ConfigLookup) LowerString(key string, def string) string {
	return strings.ToLower(c.String(key, def))
}

// Int returns the integer at key, or def
func (c *ConfigLookup) Int(key string, def int) int {
	return typed(c, key, def, cast.ToIntE)
}

// Duration returns the duration at key, or def. Bare numbers are nanoseconds.
func (c *ConfigLookup) Duration(key string, def time.Duration) time.Duration {
	return typed(c, key, def, cast.ToDurationE)
}

// Strings returns the string list at key. A comma separated string, as
// produced by environment overrides, is split.
func (c *ConfigLookup) Strings(key string) []string {
	return typed(c, key, nil, func(raw interface{}) ([]string, error) {
		if s, ok := raw.(string); ok {
			return splitList(s), nil
		}
		return cast.ToStringSliceE(raw)
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type decodeOpts struct {
	hooks  []mapstructure.DecodeHookFunc
	strict bool
}

// DecodeOption configures UnmarshalKey
type DecodeOption func(o *decodeOpts)

// WithDecodeHook adds a mapstructure decode hook. Hooks run after the
// built-in duration and comma-list hooks.
func WithDecodeHook(hook mapstructure.DecodeHookFunc) DecodeOption {
	return func(o *decodeOpts) {
		o.hooks = append(o.hooks, hook)
	}
}

// WithStrictDecode rejects keys that have no matching field
func WithStrictDecode() DecodeOption {
	return func(o *decodeOpts) {
		o.strict = true
	}
}

// UnmarshalKey decodes the section at key into out. An absent key leaves out untouched.
func (c *ConfigLookup) UnmarshalKey(key string, out interface{}, opts ...DecodeOption) error {
	raw, ok := c.Lookup(key)
	if !ok {
		return nil
	}

	o := decodeOpts{}
	for _, opt := range opts {
		opt(&o)
	}

	hooks := append([]mapstructure.DecodeHookFunc{
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	}, o.hooks...)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(hooks...),
		WeaklyTypedInput: true,
		ErrorUnused:      o.strict,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}
	return errors.Wrapf(decoder.Decode(raw), "failed to decode [%s]", key)
}
