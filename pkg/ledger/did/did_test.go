/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
)

const shortDID = "V4SGRU86Z58d6TV7PBUe6f"

func TestParse(t *testing.T) {
	d, err := Parse("did:sov:" + shortDID)
	require.NoError(t, err)
	assert.Equal(t, "sov", d.Method)
	assert.Equal(t, shortDID, d.ID)
	assert.Equal(t, "did:sov:"+shortDID, d.String())

	d, err = Parse(shortDID)
	require.NoError(t, err)
	assert.Empty(t, d.Method)
	assert.Equal(t, shortDID, d.String())

	for _, invalid := range []string{"", "did:", "did:sov", "did::abc", "did:sov:"} {
		_, err := Parse(invalid)
		assert.Error(t, err, invalid)
		assert.True(t, status.IsGroup(err, status.ValidationStatus), invalid)
	}
}

func TestUnqualify(t *testing.T) {
	assert.Equal(t, shortDID, Unqualify("did:sov:"+shortDID))
	assert.Equal(t, shortDID, Unqualify(shortDID))
	assert.Equal(t, "did:sov", Unqualify("did:sov"))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(shortDID))
	assert.NoError(t, Validate("did:sov:"+shortDID))

	long := base58.Encode(make32())
	assert.NoError(t, Validate(long))

	err := Validate("0OIl-not-base58")
	require.Error(t, err)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.ValidationStatus, s.Group)
	assert.Equal(t, status.InvalidDID.ToInt32(), s.Code)

	err = Validate(base58.Encode([]byte{1, 2, 3}))
	assert.True(t, status.IsGroup(err, status.ValidationStatus))
}

func TestFromVerkey(t *testing.T) {
	verkey := make32()
	d, err := FromVerkey(verkey)
	require.NoError(t, err)
	assert.Equal(t, base58.Encode(verkey[:16]), d)
	assert.NoError(t, Validate(d))

	_, err = FromVerkey([]byte{1})
	assert.Error(t, err)
}

func make32() []byte {
	b := make([]byte, 32)
	for i := range b {
		b[i] = byte(i + 1)
	}
	return b
}
