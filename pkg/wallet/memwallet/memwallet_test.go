/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memwallet

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
)

var trusteeSeed = []byte("000000000000000000000000Trustee1")

func TestCreateAndStoreDID(t *testing.T) {
	w := New()
	h := w.Open()

	myDid, err := w.CreateAndStoreDID(h, trusteeSeed)
	require.NoError(t, err)
	assert.Equal(t, "V4SGRU86Z58d6TV7PBUe6f", myDid.Did)
	assert.Equal(t, "GJ1SzoWzavQYfNL9XkaJdrQejfztN4XqdsiV4ct3LXKL", myDid.Verkey)

	record, err := w.Lookup(context.Background(), h, indy.DidRecordType, myDid.Did, indy.DefaultRecordOptions())
	require.NoError(t, err)
	stored := indy.Did{}
	require.NoError(t, json.Unmarshal([]byte(record.Value), &stored))
	assert.Equal(t, *myDid, stored)

	record, err = w.Lookup(context.Background(), h, indy.KeyRecordType, myDid.Verkey, indy.DefaultRecordOptions())
	require.NoError(t, err)
	key := indy.Key{}
	require.NoError(t, json.Unmarshal([]byte(record.Value), &key))
	assert.Equal(t, myDid.Verkey, key.Verkey)
	assert.NotEmpty(t, key.Signkey)

	_, err = w.CreateAndStoreDID(h, trusteeSeed)
	assert.Error(t, err)
}

func TestLookupOptions(t *testing.T) {
	w := New()
	h := w.Open()
	require.NoError(t, w.Add(h, indy.Record{Type: "t", ID: "id", Value: "v", Tags: map[string]string{"a": "b"}}))

	record, err := w.Lookup(context.Background(), h, "t", "id", indy.RecordOptions{})
	require.NoError(t, err)
	assert.Equal(t, &indy.Record{ID: "id"}, record)

	record, err = w.Lookup(context.Background(), h, "t", "id", indy.RecordOptions{RetrieveType: true, RetrieveValue: true, RetrieveTags: true})
	require.NoError(t, err)
	assert.Equal(t, &indy.Record{Type: "t", ID: "id", Value: "v", Tags: map[string]string{"a": "b"}}, record)

	record.Tags["a"] = "changed"
	record, err = w.Lookup(context.Background(), h, "t", "id", indy.RecordOptions{RetrieveTags: true})
	require.NoError(t, err)
	assert.Equal(t, "b", record.Tags["a"])

	assert.Error(t, w.Add(h, indy.Record{Type: "t", ID: "id"}))
}

func TestLookupNotFound(t *testing.T) {
	w := New()
	h := w.Open()

	_, err := w.Lookup(context.Background(), h, indy.DidRecordType, "unknown", indy.DefaultRecordOptions())
	assert.True(t, status.IsGroup(err, status.NotFoundStatus))

	require.NoError(t, w.Close(h))
	_, err = w.Lookup(context.Background(), h, indy.DidRecordType, "unknown", indy.DefaultRecordOptions())
	assert.True(t, status.IsGroup(err, status.NotFoundStatus))
	assert.Error(t, w.Close(h))
	assert.Error(t, w.Add(h, indy.Record{Type: "t", ID: "id"}))
}

func TestWalletsAreIsolated(t *testing.T) {
	w := New()
	h1 := w.Open()
	h2 := w.Open()
	assert.NotEqual(t, h1, h2)

	myDid, err := w.CreateAndStoreDID(h1, nil)
	require.NoError(t, err)

	_, err = w.Lookup(context.Background(), h2, indy.DidRecordType, myDid.Did, indy.DefaultRecordOptions())
	assert.Error(t, err)
}
