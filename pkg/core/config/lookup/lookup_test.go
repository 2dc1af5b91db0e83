/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lookup

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/core"
)

type mapBackend map[string]interface{}

var _ core.ConfigBackend = mapBackend{}

func (m mapBackend) Lookup(key string) (interface{}, bool) {
	v, ok := m[key]
	return v, ok
}

type poolSettings struct {
	Address string
	Timeout time.Duration
	Nodes   []string
	Mode    string
}

func TestTypedGetters(t *testing.T) {
	l := New(mapBackend{
		"metrics.enabled":   "true",
		"pool.address":      "localhost:9700",
		"executor.buffer":   "42",
		"pool.timeout":      "3s",
		"client.loggingLvl": "DEBUG",
		"pool.nodes":        "Node1, Node2,,Node3",
		"pool.list":         []interface{}{"A", "B"},
	})

	assert.True(t, l.Bool("metrics.enabled", false))
	assert.Equal(t, "localhost:9700", l.String("pool.address", "x"))
	assert.Equal(t, 42, l.Int("executor.buffer", 1))
	assert.Equal(t, 3*time.Second, l.Duration("pool.timeout", time.Second))
	assert.Equal(t, "debug", l.LowerString("client.loggingLvl", "info"))
	assert.Equal(t, []string{"Node1", "Node2", "Node3"}, l.Strings("pool.nodes"))
	assert.Equal(t, []string{"A", "B"}, l.Strings("pool.list"))

	assert.True(t, l.Bool("missing", true))
	assert.Equal(t, "def", l.String("missing", "def"))
	assert.Equal(t, 7, l.Int("missing", 7))
	assert.Equal(t, time.Minute, l.Duration("missing", time.Minute))
	assert.Nil(t, l.Strings("missing"))
}

func TestUnconvertibleFallsBack(t *testing.T) {
	l := New(mapBackend{
		"executor.buffer": "many",
		"pool.timeout":    "soon",
		"pool.address":    "",
	})

	assert.Equal(t, 100, l.Int("executor.buffer", 100))
	assert.Equal(t, time.Second, l.Duration("pool.timeout", time.Second))
	assert.Equal(t, "def", l.String("pool.address", "def"))
}

func TestBackendPrecedence(t *testing.T) {
	l := New(nil, mapBackend{"pool.address": "first"}, mapBackend{"pool.address": "second", "pool.timeout": "1m"})

	assert.Equal(t, "first", l.String("pool.address", ""))
	assert.Equal(t, time.Minute, l.Duration("pool.timeout", 0))

	assert.True(t, l.Has("pool.timeout"))
	assert.False(t, l.Has("absent"))
}

func TestUnmarshalKey(t *testing.T) {
	l := New(mapBackend{
		"pool": map[string]interface{}{
			"address": "localhost:9700",
			"timeout": "250ms",
			"nodes":   []interface{}{"Node1", "Node2"},
		},
	})

	settings := poolSettings{}
	require.NoError(t, l.UnmarshalKey("pool", &settings))
	assert.Equal(t, "localhost:9700", settings.Address)
	assert.Equal(t, 250*time.Millisecond, settings.Timeout)
	assert.Equal(t, []string{"Node1", "Node2"}, settings.Nodes)

	// comma separated lists decode into slices
	require.NoError(t, New(mapBackend{"pool": map[string]interface{}{"nodes": "A,B"}}).UnmarshalKey("pool", &settings))
	assert.Equal(t, []string{"A", "B"}, settings.Nodes)

	// missing key leaves the target untouched
	untouched := poolSettings{Address: "keep"}
	require.NoError(t, l.UnmarshalKey("absent", &untouched))
	assert.Equal(t, "keep", untouched.Address)
}

func TestUnmarshalWithHook(t *testing.T) {
	l := New(mapBackend{"pool": map[string]interface{}{"mode": "loopback"}})

	upper := func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.String {
			return data, nil
		}
		return strings.ToUpper(data.(string)), nil
	}

	settings := poolSettings{}
	require.NoError(t, l.UnmarshalKey("pool", &settings, WithDecodeHook(mapstructure.DecodeHookFuncType(upper))))
	assert.Equal(t, "LOOPBACK", settings.Mode)
}

func TestStrictDecode(t *testing.T) {
	l := New(mapBackend{"pool": map[string]interface{}{"address": "a", "port": 1}})

	settings := poolSettings{}
	require.NoError(t, l.UnmarshalKey("pool", &settings))

	err := l.UnmarshalKey("pool", &settings, WithStrictDecode())
	assert.Error(t, err)
}
