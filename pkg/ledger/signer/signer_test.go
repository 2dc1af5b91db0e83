/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package signer

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	mockindy "github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy/mocks"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/rules"
)

const (
	trusteeDID = "V4SGRU86Z58d6TV7PBUe6f"
	stewardDID = "VsKV7grR1BUE29mG2Fm2kX"

	walletHandle = indy.WalletHandle(1)

	unsignedRequest = `{"reqId":1496822211362017764,"identifier":"V4SGRU86Z58d6TV7PBUe6f","operation":{"type":"1","dest":"VsKV7grR1BUE29mG2Fm2kX"},"protocolVersion":2}`
)

var errNotFound = status.Errorf(status.NotFoundStatus, status.WalletItemNotFound, "wallet item not found")

// fakeSign makes the signature depend on the key and the message only.
func fakeSign(_ context.Context, key *indy.Key, msg []byte) ([]byte, error) {
	sum := sha256.Sum256(append([]byte(key.Signkey), msg...))
	return sum[:], nil
}

func expectIdentity(wallet *mockindy.MockWallet, didValue, verkey string) {
	didJSON, _ := json.Marshal(indy.Did{Did: didValue, Verkey: verkey})
	keyJSON, _ := json.Marshal(indy.Key{Verkey: verkey, Signkey: "sk-" + verkey})

	wallet.EXPECT().Lookup(gomock.Any(), walletHandle, indy.DidRecordType, didValue, gomock.Any()).
		Return(&indy.Record{Type: indy.DidRecordType, ID: didValue, Value: string(didJSON)}, nil).AnyTimes()
	wallet.EXPECT().Lookup(gomock.Any(), walletHandle, indy.KeyRecordType, verkey, gomock.Any()).
		Return(&indy.Record{Type: indy.KeyRecordType, ID: verkey, Value: string(keyJSON)}, nil).AnyTimes()
}

func newTestSigner(t *testing.T) (*Signer, *mockindy.MockWallet, *mockindy.MockCryptoSuite) {
	ctrl := gomock.NewController(t)
	wallet := mockindy.NewMockWallet(ctrl)
	crypto := mockindy.NewMockCryptoSuite(ctrl)
	crypto.EXPECT().Sign(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(fakeSign).AnyTimes()

	expectIdentity(wallet, trusteeDID, "trusteeVerkey")
	expectIdentity(wallet, stewardDID, "stewardVerkey")
	return New(wallet, crypto, rules.New()), wallet, crypto
}

func decode(t *testing.T, doc string) map[string]interface{} {
	t.Helper()
	m := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(doc), &m))
	return m
}

func expectedSignature(t *testing.T, verkey, doc string) string {
	t.Helper()
	m := map[string]interface{}{}
	d := json.NewDecoder(strings.NewReader(doc))
	d.UseNumber()
	require.NoError(t, d.Decode(&m))
	msg, err := rules.New().SerializeForSignature(m)
	require.NoError(t, err)
	sig, err := fakeSign(context.Background(), &indy.Key{Signkey: "sk-" + verkey}, []byte(msg))
	require.NoError(t, err)
	return base58.Encode(sig)
}

func TestSingleSignIsIdempotent(t *testing.T) {
	s, _, _ := newTestSigner(t)
	ctx := context.Background()

	first, err := s.Sign(ctx, walletHandle, trusteeDID, unsignedRequest, Single)
	require.NoError(t, err)
	second, err := s.Sign(ctx, walletHandle, trusteeDID, first, Single)
	require.NoError(t, err)

	assert.JSONEq(t, first, second)
	signed := decode(t, first)
	assert.Equal(t, expectedSignature(t, "trusteeVerkey", unsignedRequest), signed["signature"])
	assert.NotContains(t, signed, "signatures")
	assert.Contains(t, first, `"reqId":1496822211362017764`)
}

func TestSingleSignReplacesPriorSignature(t *testing.T) {
	s, _, _ := newTestSigner(t)
	ctx := context.Background()

	byTrustee, err := s.Sign(ctx, walletHandle, trusteeDID, unsignedRequest, Single)
	require.NoError(t, err)
	bySteward, err := s.Sign(ctx, walletHandle, stewardDID, byTrustee, Single)
	require.NoError(t, err)

	signed := decode(t, bySteward)
	assert.Equal(t, expectedSignature(t, "stewardVerkey", unsignedRequest), signed["signature"])

	multi, err := s.Sign(ctx, walletHandle, trusteeDID, unsignedRequest, Multi)
	require.NoError(t, err)
	single, err := s.Sign(ctx, walletHandle, stewardDID, multi, Single)
	require.NoError(t, err)
	assert.NotContains(t, decode(t, single), "signatures")
}

func TestMultiSignAccumulatesAndMigrates(t *testing.T) {
	s, _, _ := newTestSigner(t)
	ctx := context.Background()

	single, err := s.Sign(ctx, walletHandle, trusteeDID, unsignedRequest, Single)
	require.NoError(t, err)
	trusteeSig := decode(t, single)["signature"]

	once, err := s.Sign(ctx, walletHandle, "did:sov:"+stewardDID, single, Multi)
	require.NoError(t, err)
	twice, err := s.Sign(ctx, walletHandle, trusteeDID, once, Multi)
	require.NoError(t, err)

	for _, doc := range []string{once, twice} {
		signed := decode(t, doc)
		assert.NotContains(t, signed, "signature", "single signature must not reappear")
		signatures, ok := signed["signatures"].(map[string]interface{})
		require.True(t, ok)
		assert.Len(t, signatures, 2)
		assert.Equal(t, trusteeSig, signatures[trusteeDID])
		assert.Equal(t, expectedSignature(t, "stewardVerkey", unsignedRequest), signatures[stewardDID])
	}
}

func TestMultiSignWithoutPriorSignature(t *testing.T) {
	s, _, _ := newTestSigner(t)

	signed, err := s.Sign(context.Background(), walletHandle, stewardDID, unsignedRequest, Multi)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{stewardDID: expectedSignature(t, "stewardVerkey", unsignedRequest)}, decode(t, signed)["signatures"])
}

func TestSignKeepsUnknownFields(t *testing.T) {
	s, _, _ := newTestSigner(t)
	doc := `{"reqId":1,"operation":{"type":"1"},"custom":{"a":[1,2]}}`

	signed, err := s.Sign(context.Background(), walletHandle, trusteeDID, doc, Single)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": []interface{}{float64(1), float64(2)}}, decode(t, signed)["custom"])
}

func TestSignErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := mockindy.NewMockWallet(ctrl)
	crypto := mockindy.NewMockCryptoSuite(ctrl)
	s := New(wallet, crypto, rules.New())
	ctx := context.Background()

	wallet.EXPECT().Lookup(gomock.Any(), walletHandle, indy.DidRecordType, "unknown", gomock.Any()).Return(nil, errNotFound)
	_, err := s.Sign(ctx, walletHandle, "unknown", unsignedRequest, Single)
	assert.True(t, status.IsGroup(err, status.NotFoundStatus))

	expectIdentity(wallet, trusteeDID, "trusteeVerkey")
	_, err = s.Sign(ctx, walletHandle, trusteeDID, `[1,2]`, Single)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))

	_, err = s.Sign(ctx, walletHandle, trusteeDID, `{"reqId":1,`, Single)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))

	crypto.EXPECT().Sign(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("hsm offline"))
	_, err = s.Sign(ctx, walletHandle, trusteeDID, unsignedRequest, Single)
	assert.EqualError(t, errors.Cause(err), "hsm offline")
}

func TestSignMissingKeyRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	wallet := mockindy.NewMockWallet(ctrl)
	s := New(wallet, mockindy.NewMockCryptoSuite(ctrl), rules.New())

	wallet.EXPECT().Lookup(gomock.Any(), walletHandle, indy.DidRecordType, trusteeDID, gomock.Any()).
		Return(&indy.Record{Value: `{"did":"V4SGRU86Z58d6TV7PBUe6f","verkey":"lost"}`}, nil)
	wallet.EXPECT().Lookup(gomock.Any(), walletHandle, indy.KeyRecordType, "lost", gomock.Any()).Return(nil, errNotFound)

	_, err := s.Sign(context.Background(), walletHandle, trusteeDID, unsignedRequest, Single)
	assert.True(t, status.IsGroup(err, status.NotFoundStatus))
}
