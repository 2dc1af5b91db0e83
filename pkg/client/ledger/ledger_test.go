/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	reqContext "context"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	mockindy "github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy/mocks"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/executor"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/request"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/rules"
)

const (
	trusteeDID = "V4SGRU86Z58d6TV7PBUe6f"
	poolHandle = indy.PoolHandle(4)
	walletH    = indy.WalletHandle(5)
)

type testSetup struct {
	pool   *mockindy.MockPool
	wallet *mockindy.MockWallet
	crypto *mockindy.MockCryptoSuite
	acks   chan *indy.Ack
	client *Client
}

func setupLedgerClient(t *testing.T, opts ...ClientOption) *testSetup {
	ctrl := gomock.NewController(t)
	s := &testSetup{
		pool:   mockindy.NewMockPool(ctrl),
		wallet: mockindy.NewMockWallet(ctrl),
		crypto: mockindy.NewMockCryptoSuite(ctrl),
	}
	s.acks = mockindy.NewAckChannel(s.pool, 10)
	s.crypto.EXPECT().ValidateDID(gomock.Any()).Return(nil).AnyTimes()

	exec := executor.New(mockindy.NewMockProvidersWith(ctrl, s.pool, s.wallet, s.crypto, rules.New()))
	require.NoError(t, exec.Start())
	t.Cleanup(func() { _ = exec.Stop() })

	opts = append([]ClientOption{WithPoolHandle(poolHandle), WithWalletHandle(walletH)}, opts...)
	c, err := New(exec, opts...)
	require.NoError(t, err)
	s.client = c
	return s
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&blackHole{}, WithDefaultTimeout(-time.Second))
	assert.Error(t, err)
}

func TestBuildGetTxnRequest(t *testing.T) {
	s := setupLedgerClient(t)

	req, err := s.client.BuildGetTxnRequest(nil, "", 5)
	require.NoError(t, err)

	doc := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(req), &doc))
	assert.NotContains(t, doc, "identifier")
	op := doc["operation"].(map[string]interface{})
	assert.Equal(t, "3", op["type"])
	assert.Equal(t, float64(5), op["data"])
}

func TestBuildRequestError(t *testing.T) {
	s := setupLedgerClient(t)

	_, err := s.client.BuildTxnAuthorAgreementRequest(trusteeDID, "text", "")
	require.Error(t, err)
	assert.True(t, status.IsGroup(err, status.StructuralStatus))
}

func TestSubmitRequest(t *testing.T) {
	s := setupLedgerClient(t)

	req, err := s.client.BuildGetValidatorInfoRequest(trusteeDID)
	require.NoError(t, err)

	s.pool.EXPECT().Submit(gomock.Any(), poolHandle, req).DoAndReturn(
		func(_ reqContext.Context, _ indy.PoolHandle, _ string) (indy.SubmissionID, error) {
			go func() { s.acks <- &indy.Ack{ID: 1, Result: `{"op":"REPLY"}`} }()
			return 1, nil
		})

	reply, err := s.client.SubmitRequest(req)
	require.NoError(t, err)
	assert.Equal(t, `{"op":"REPLY"}`, reply)
}

func TestSubmitRequestAsync(t *testing.T) {
	s := setupLedgerClient(t)
	s.pool.EXPECT().Submit(gomock.Any(), poolHandle, "{}").Return(indy.SubmissionID(2), nil)

	done := make(chan string, 1)
	require.NoError(t, s.client.SubmitRequestAsync("{}", func(result string, err error) {
		assert.NoError(t, err)
		done <- result
	}))
	s.acks <- &indy.Ack{ID: 2, Result: "reply"}

	select {
	case result := <-done:
		assert.Equal(t, "reply", result)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out")
	}
}

func TestSubmitActionRejectsNonAction(t *testing.T) {
	s := setupLedgerClient(t)

	req, err := s.client.BuildTxnAuthorAgreementRequest(trusteeDID, "text", "1.0")
	require.NoError(t, err)

	_, err = s.client.SubmitAction(req, nil, nil)
	require.Error(t, err)
	assert.True(t, status.IsGroup(err, status.ValidationStatus))
}

func TestWaitTimeout(t *testing.T) {
	s := setupLedgerClient(t)
	s.pool.EXPECT().Submit(gomock.Any(), poolHandle, "{}").Return(indy.SubmissionID(3), nil)

	_, err := s.client.SubmitRequest("{}", WithTimeout(20*time.Millisecond))
	require.Error(t, err)
	assert.Equal(t, reqContext.DeadlineExceeded, errors.Cause(err))

	_, err = s.client.SubmitRequest("{}", WithTimeout(-1))
	assert.Error(t, err)
}

func TestDefaultTimeoutAndParentContext(t *testing.T) {
	c, err := New(&blackHole{}, WithDefaultTimeout(20*time.Millisecond))
	require.NoError(t, err)

	_, err = c.GetResponseMetadata(`{"op":"REPLY"}`)
	assert.Equal(t, reqContext.DeadlineExceeded, errors.Cause(err))

	c, err = New(&blackHole{})
	require.NoError(t, err)
	ctx, cancel := reqContext.WithCancel(reqContext.Background())
	cancel()
	_, err = c.GetResponseMetadata(`{"op":"REPLY"}`, WithParentContext(ctx))
	assert.Equal(t, reqContext.Canceled, errors.Cause(err))
}

func TestSubmitterError(t *testing.T) {
	c, err := New(&blackHole{err: errors.New("executor stopped")})
	require.NoError(t, err)

	_, err = c.BuildGetValidatorInfoRequest(trusteeDID)
	assert.EqualError(t, err, "executor stopped")
}

func TestGetResponseMetadata(t *testing.T) {
	s := setupLedgerClient(t)

	metadata, err := s.client.GetResponseMetadata(`{"op":"REPLY","result":{"seqNo":3,"txnTime":42}}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"seqNo":3,"txnTime":42}`, metadata)
}

func TestAppendTxnAuthorAgreementAcceptance(t *testing.T) {
	s := setupLedgerClient(t)

	req, err := s.client.BuildGetValidatorInfoRequest(trusteeDID)
	require.NoError(t, err)

	digest := rules.CalculateTaaDigest("text", "1.0")
	withTaa, err := s.client.AppendTxnAuthorAgreementAcceptance(req, nil, nil, &digest, "on_file", 86400*3+5)
	require.NoError(t, err)

	parsed, err := request.Parse(withTaa)
	require.NoError(t, err)
	assert.Equal(t, &indy.AcceptanceData{Mechanism: "on_file", TaaDigest: digest, Time: 86400 * 3}, parsed.TaaAcceptance)
}

func TestRegisterStateProofParser(t *testing.T) {
	s := setupLedgerClient(t)
	s.pool.EXPECT().RegisterStateProofParser("200", gomock.Any()).Return(nil)
	s.pool.EXPECT().RegisterStateProofParser("201", gomock.Any()).Return(errors.New("rejected"))

	parser := func(reply string) (string, error) { return "[]", nil }
	assert.NoError(t, s.client.RegisterStateProofParser("200", parser))
	assert.EqualError(t, s.client.RegisterStateProofParser("201", parser), "rejected")
}

// blackHole accepts commands and never completes them
type blackHole struct {
	err error
}

func (b *blackHole) Submit(cmd executor.Command) error {
	return b.err
}
