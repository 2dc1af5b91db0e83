/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ed25519suite

import (
	"context"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
)

var seed = []byte("000000000000000000000000Trustee1")

func TestNewKeyFromSeed(t *testing.T) {
	key, err := NewKey(seed)
	require.NoError(t, err)

	again, err := NewKey(seed)
	require.NoError(t, err)
	assert.Equal(t, key, again)
	assert.Equal(t, "GJ1SzoWzavQYfNL9XkaJdrQejfztN4XqdsiV4ct3LXKL", key.Verkey)

	_, err = NewKey([]byte("short"))
	assert.True(t, status.IsGroup(err, status.ValidationStatus))
}

func TestNewKeyRandom(t *testing.T) {
	k1, err := NewKey(nil)
	require.NoError(t, err)
	k2, err := NewKey(nil)
	require.NoError(t, err)
	assert.NotEqual(t, k1.Verkey, k2.Verkey)
}

func TestSignAndVerify(t *testing.T) {
	s := New()
	key, err := NewKey(seed)
	require.NoError(t, err)

	msg := []byte("identifier:V4SGRU86Z58d6TV7PBUe6f|reqId:1")
	sig, err := s.Sign(context.Background(), key, msg)
	require.NoError(t, err)
	assert.Len(t, sig, 64)

	ok, err := s.Verify(key.Verkey, msg, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Verify(key.Verkey, []byte("tampered"), sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSignWithSeedSigningKey(t *testing.T) {
	s := New()
	key, err := NewKey(seed)
	require.NoError(t, err)

	seedKey := &indy.Key{Verkey: key.Verkey, Signkey: base58.Encode(seed)}
	sig1, err := s.Sign(context.Background(), key, []byte("msg"))
	require.NoError(t, err)
	sig2, err := s.Sign(context.Background(), seedKey, []byte("msg"))
	require.NoError(t, err)
	assert.Equal(t, sig1, sig2)
}

func TestSignErrors(t *testing.T) {
	s := New()
	_, err := s.Sign(context.Background(), nil, []byte("msg"))
	assert.Error(t, err)

	_, err = s.Sign(context.Background(), &indy.Key{Signkey: "0OIl"}, []byte("msg"))
	assert.Error(t, err)

	_, err = s.Sign(context.Background(), &indy.Key{Signkey: base58.Encode([]byte("too short"))}, []byte("msg"))
	assert.Error(t, err)
}

func TestValidateDID(t *testing.T) {
	s := New()
	assert.NoError(t, s.ValidateDID("V4SGRU86Z58d6TV7PBUe6f"))
	assert.NoError(t, s.ValidateDID("did:sov:V4SGRU86Z58d6TV7PBUe6f"))
	assert.True(t, status.IsGroup(s.ValidateDID("not-a-did!"), status.ValidationStatus))
}
