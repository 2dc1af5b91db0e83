/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rules

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
)

func decode(t *testing.T, doc string) map[string]interface{} {
	t.Helper()
	m := map[string]interface{}{}
	d := json.NewDecoder(bytes.NewBufferString(doc))
	d.UseNumber()
	require.NoError(t, d.Decode(&m))
	return m
}

func strPtr(s string) *string {
	return &s
}

func TestValidateAction(t *testing.T) {
	r := New()

	assert.NoError(t, r.ValidateAction(`{"reqId":1,"operation":{"type":"118","action":"start"}}`))
	assert.NoError(t, r.ValidateAction(`{"reqId":1,"operation":{"type":"119"}}`))

	err := r.ValidateAction(`{"reqId":1,"operation":{"type":"1","dest":"V4SGRU86Z58d6TV7PBUe6f"}}`)
	require.Error(t, err)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.ValidationStatus, s.Group)
	assert.Equal(t, status.ActionNotAllowed.ToInt32(), s.Code)

	assert.True(t, status.IsGroup(r.ValidateAction(`not json`), status.StructuralStatus))
	assert.True(t, status.IsGroup(r.ValidateAction(`{"reqId":1}`), status.StructuralStatus))
	assert.True(t, status.IsGroup(r.ValidateAction(`{"operation":{"type":119}}`), status.StructuralStatus))
}

func TestSerializeForSignature(t *testing.T) {
	r := New()

	msg := decode(t, `{
		"name": "John Doe",
		"age": 43,
		"operation": {"dest": 54},
		"phones": ["1234567", "2345678", {"rust": 5, "age": 1}, 3]
	}`)
	s, err := r.SerializeForSignature(msg)
	require.NoError(t, err)
	assert.Equal(t, "age:43|name:John Doe|operation:dest:54|phones:1234567,2345678,age:1|rust:5,3", s)
}

func TestSerializeSkipsAuthenticationRegion(t *testing.T) {
	r := New()

	msg := decode(t, `{
		"identifier": "V4SGRU86Z58d6TV7PBUe6f",
		"operation": {"type": "1", "signature": "kept", "flag": true, "off": false, "none": null},
		"reqId": 1527262009325497,
		"signature": "sig",
		"signatures": {"a": "b"},
		"fees": [1, 2]
	}`)
	s, err := r.SerializeForSignature(msg)
	require.NoError(t, err)
	assert.Equal(t, "identifier:V4SGRU86Z58d6TV7PBUe6f|operation:flag:True|none:|off:False|signature:kept|type:1|reqId:1527262009325497", s)
}

func TestSerializeAttribHashesValues(t *testing.T) {
	r := New()

	msg := decode(t, `{
		"identifier": "V4SGRU86Z58d6TV7PBUe6f",
		"operation": {"type": "100", "hash": "cool hash", "dest": "54"},
		"protocolVersion": 2,
		"reqId": 1527262009325497
	}`)
	s, err := r.SerializeForSignature(msg)
	require.NoError(t, err)
	assert.Equal(t, "identifier:V4SGRU86Z58d6TV7PBUe6f|operation:dest:54|hash:46aa0c92129b33ee72ee1478d2ae62fa6e756869dedc6c858af3214a6fcf1904|type:100|protocolVersion:2|reqId:1527262009325497", s)

	msg = decode(t, `{"operation": {"type": "100", "raw": 5}}`)
	_, err = r.SerializeForSignature(msg)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))
}

func TestParseResponseMetadataV0(t *testing.T) {
	r := New()

	md, err := r.ParseResponseMetadata(`{"op":"REPLY","result":{"seqNo":10,"txnTime":1551000000,"state_proof":{"multi_signature":{"value":{"timestamp":1551000100}}}}}`)
	require.NoError(t, err)
	require.NotNil(t, md.SeqNo)
	assert.EqualValues(t, 10, *md.SeqNo)
	assert.EqualValues(t, 1551000000, *md.TxnTime)
	assert.EqualValues(t, 1551000100, *md.LastTxnTime)
	assert.Nil(t, md.LastSeqNo)

	out, err := json.Marshal(md)
	require.NoError(t, err)
	assert.JSONEq(t, `{"seqNo":10,"txnTime":1551000000,"lastTxnTime":1551000100}`, string(out))
}

func TestParseResponseMetadataV1(t *testing.T) {
	r := New()

	md, err := r.ParseResponseMetadata(`{"op":"REPLY","result":{"ver":"1","txnMetadata":{"seqNo":4,"txnTime":1550000000},"multiSignature":{"signedState":{"stateMetadata":{"timestamp":1550000500}}}}}`)
	require.NoError(t, err)
	assert.EqualValues(t, 4, *md.SeqNo)
	assert.EqualValues(t, 1550000000, *md.TxnTime)
	assert.EqualValues(t, 1550000500, *md.LastTxnTime)

	md, err = r.ParseResponseMetadata(`{"op":"REPLY","data":{"result":[{"result":{"seqNo":7}}]}}`)
	require.NoError(t, err)
	assert.EqualValues(t, 7, *md.SeqNo)
	assert.Nil(t, md.TxnTime)

	_, err = r.ParseResponseMetadata(`{"op":"REPLY","result":{"ver":"2"}}`)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))
}

func TestParseResponseMetadataRejections(t *testing.T) {
	r := New()

	_, err := r.ParseResponseMetadata(`{"op":"REQNACK","reason":"bad request"}`)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.LedgerStatus, s.Group)
	assert.Equal(t, status.LedgerNack.ToInt32(), s.Code)

	_, err = r.ParseResponseMetadata(`{"op":"REJECT","reason":"no"}`)
	assert.True(t, status.IsGroup(err, status.LedgerStatus))

	_, err = r.ParseResponseMetadata(`garbage`)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))

	_, err = r.ParseResponseMetadata(`{"op":"UNKNOWN"}`)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))
}

func TestPrepareAcceptanceDataDigest(t *testing.T) {
	r := New()

	first, err := r.PrepareAcceptanceData(strPtr("T"), strPtr("1.0"), nil, "on_file", 1550000123)
	require.NoError(t, err)
	second, err := r.PrepareAcceptanceData(strPtr("T"), strPtr("1.0"), nil, "on_file", 1550000123)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "8d7ea6bc474650b91f85aa0ebb8b34c0b30b4df2a487710c4aca97dc0e5bf49a", first.TaaDigest)
	assert.Equal(t, CalculateTaaDigest("T", "1.0"), first.TaaDigest)
	assert.Equal(t, "on_file", first.Mechanism)
	assert.EqualValues(t, 1549929600, first.Time)
}

func TestPrepareAcceptanceDataCombinations(t *testing.T) {
	r := New()

	data, err := r.PrepareAcceptanceData(nil, nil, strPtr("abc"), "click", 86401)
	require.NoError(t, err)
	assert.Equal(t, "abc", data.TaaDigest)
	assert.EqualValues(t, 86400, data.Time)

	digest := CalculateTaaDigest("T", "1.0")
	_, err = r.PrepareAcceptanceData(strPtr("T"), strPtr("1.0"), &digest, "click", 0)
	assert.NoError(t, err)

	_, err = r.PrepareAcceptanceData(strPtr("T"), strPtr("1.0"), strPtr("other"), "click", 0)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))

	_, err = r.PrepareAcceptanceData(strPtr("T"), nil, nil, "click", 0)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))

	_, err = r.PrepareAcceptanceData(nil, nil, nil, "click", 0)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))

	_, err = r.PrepareAcceptanceData(nil, nil, strPtr("abc"), "", 0)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))
}

func TestTxnTypeAndLedgerAliases(t *testing.T) {
	code, ok := TxnTypeCode("NYM")
	assert.True(t, ok)
	assert.Equal(t, Nym, code)

	code, ok = TxnTypeCode("101")
	assert.True(t, ok)
	assert.Equal(t, "101", code)

	_, ok = TxnTypeCode("NOT_A_TYPE")
	assert.False(t, ok)

	for name, expected := range map[string]int{"": 1, "DOMAIN": 1, "POOL": 0, "CONFIG": 2, "1001": 1001} {
		id, ok := LedgerID(name)
		assert.True(t, ok, name)
		assert.Equal(t, expected, id, name)
	}
	_, ok = LedgerID("LEDGER")
	assert.False(t, ok)
	_, ok = LedgerID("-1")
	assert.False(t, ok)
}
