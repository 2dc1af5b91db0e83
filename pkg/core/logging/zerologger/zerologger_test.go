/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package zerologger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/api"
	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/modlog"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	entry := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	buf.Reset()
	return entry
}

func TestStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf).GetLogger("indyres/zerolog-test")

	logger.Infof("submission %d accepted", 12)
	entry := decode(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "indyres/zerolog-test", entry["module"])
	assert.Equal(t, "submission 12 accepted", entry["message"])
	assert.Contains(t, entry, "time")

	logger.Error("pool rejected")
	entry = decode(t, &buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "pool rejected", entry["message"])
}

func TestModuleLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	module := "indyres/zerolog-levels"
	logger := New(&buf).GetLogger(module)

	logger.Debug("hidden")
	assert.Empty(t, buf.String(), "debug is below the default INFO level")

	modlog.SetLevel(module, api.DEBUG)
	logger.Debugf("shown %s", "now")
	entry := decode(t, &buf)
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "shown now", entry["message"])

	modlog.SetLevel(module, api.ERROR)
	logger.Warn("hidden")
	logger.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())
}
