/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpcpool

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/test/bufconn"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/options"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/rules"
	"github.com/hyperledger/indy-resolver-go/pkg/pool/loopback"
)

const (
	signedNym = `{"reqId":1,"identifier":"V4SGRU86Z58d6TV7PBUe6f","operation":{"type":"1","dest":"VsKV7grR1BUE29mG2Fm2kX"},"protocolVersion":2,"signature":"sig"}`
	getTxn    = `{"reqId":2,"operation":{"type":"3","data":1,"ledgerId":1},"protocolVersion":2}`
	validator = `{"reqId":3,"identifier":"V4SGRU86Z58d6TV7PBUe6f","operation":{"type":"119"},"protocolVersion":2,"signature":"sig"}`
)

func newGateway(t *testing.T, backendOpts ...options.Opt) *Client {
	t.Helper()

	backend := loopback.New(backendOpts...)
	t.Cleanup(backend.Close)

	srv := NewServer(backend, backend.Open())
	lis := bufconn.Listen(1024 * 1024)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	c, err := Dial("passthrough:///bufnet",
		WithDialOptions(grpc.WithContextDialer(dialer)),
		WithRequestTimeout(5*time.Second),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func awaitAck(t *testing.T, c *Client) *indy.Ack {
	t.Helper()
	select {
	case ack := <-c.Acks():
		return ack
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for ack")
	}
	return nil
}

func TestSubmitThroughGateway(t *testing.T) {
	c := newGateway(t)
	h := c.Open()

	id, err := c.Submit(context.Background(), h, signedNym)
	require.NoError(t, err)
	ack := awaitAck(t, c)
	assert.Equal(t, id, ack.ID)
	require.NoError(t, ack.Err)

	metadata, err := rules.New().ParseResponseMetadata(ack.Result)
	require.NoError(t, err)
	require.NotNil(t, metadata.SeqNo)
	assert.Equal(t, uint64(1), *metadata.SeqNo)

	_, err = c.Submit(context.Background(), h, getTxn)
	require.NoError(t, err)
	ack = awaitAck(t, c)
	require.NoError(t, ack.Err)
	assert.Contains(t, ack.Result, "VsKV7grR1BUE29mG2Fm2kX")
}

func TestSubmitRejectedByBackend(t *testing.T) {
	c := newGateway(t)
	h := c.Open()

	_, err := c.Submit(context.Background(), h, "not json")
	require.NoError(t, err)
	ack := awaitAck(t, c)
	require.Error(t, ack.Err)

	s, ok := status.FromError(ack.Err)
	require.True(t, ok)
	assert.Equal(t, status.GRPCTransportStatus, s.Group)
	assert.Equal(t, codes.Unavailable, status.ToGRPCStatusCode(s.Code))
}

func TestUnknownHandle(t *testing.T) {
	c := newGateway(t)
	h := c.Open()

	_, err := c.Submit(context.Background(), h+1, signedNym)
	assert.True(t, status.IsGroup(err, status.TransportStatus))

	require.NoError(t, c.ClosePool(h))
	_, err = c.SubmitAction(context.Background(), h, validator, nil, nil)
	assert.True(t, status.IsGroup(err, status.TransportStatus))
	assert.Error(t, c.ClosePool(h))
}

func TestSubmitActionThroughGateway(t *testing.T) {
	c := newGateway(t, loopback.WithNodes("Node1", "Node2"))
	h := c.Open()

	timeout := time.Second
	_, err := c.SubmitAction(context.Background(), h, validator, []string{"Node2"}, &timeout)
	require.NoError(t, err)
	ack := awaitAck(t, c)
	require.NoError(t, ack.Err)

	replies := map[string]string{}
	require.NoError(t, json.Unmarshal([]byte(ack.Result), &replies))
	assert.Len(t, replies, 1)
	assert.Contains(t, replies["Node2"], `"alias":"Node2"`)
}

func TestClientStateProofParser(t *testing.T) {
	c := newGateway(t)
	h := c.Open()

	assert.Error(t, c.RegisterStateProofParser("1", nil))
	assert.Error(t, c.RegisterStateProofParser("", func(string) (string, error) { return "", nil }))
	require.NoError(t, c.RegisterStateProofParser("1", func(string) (string, error) { return "", errors.New("bad proof") }))

	_, err := c.Submit(context.Background(), h, signedNym)
	require.NoError(t, err)
	ack := awaitAck(t, c)
	assert.True(t, status.IsGroup(ack.Err, status.TransportStatus))
}

func TestClientClose(t *testing.T) {
	c := newGateway(t)
	h := c.Open()

	_, err := c.Submit(context.Background(), h, signedNym)
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	ack, ok := <-c.Acks()
	require.True(t, ok)
	assert.NoError(t, ack.Err)
	_, ok = <-c.Acks()
	assert.False(t, ok)

	_, err = c.Submit(context.Background(), h, signedNym)
	assert.Error(t, err)
}

func TestReplyType(t *testing.T) {
	assert.Equal(t, "1", replyType(`{"op":"REPLY","result":{"txn":{"type":"1"}}}`))
	assert.Equal(t, "3", replyType(`{"op":"REPLY","result":{"type":"3"}}`))
	assert.Equal(t, "", replyType(`{"op":"REQNACK"}`))
	assert.Equal(t, "", replyType(`not json`))
}

func TestRPCCode(t *testing.T) {
	assert.Equal(t, codes.FailedPrecondition, rpcCode(status.Errorf(status.TransportStatus, status.UnknownPoolHandle, "closed")))
	assert.Equal(t, codes.DeadlineExceeded, rpcCode(status.Errorf(status.TransportStatus, status.PoolTimeout, "slow")))
	assert.Equal(t, codes.Unavailable, rpcCode(status.Errorf(status.TransportStatus, status.PoolRejected, "rejected")))
	assert.Equal(t, codes.Unavailable, rpcCode(errors.New("other")))
}
