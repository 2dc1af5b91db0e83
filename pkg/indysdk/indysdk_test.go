/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package indysdk

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/core/config"
	"github.com/hyperledger/indy-resolver-go/pkg/pool/grpcpool"
	"github.com/hyperledger/indy-resolver-go/pkg/pool/loopback"
)

const (
	trusteeSeed = "000000000000000000000000Trustee1"
	trusteeDID  = "V4SGRU86Z58d6TV7PBUe6f"
)

const metricsConfig = `
client:
  timeout: 5s
metrics:
  enabled: true
  namespace: sdktest
`

func newSDK(t *testing.T, opts ...Option) *SDK {
	t.Helper()
	sdk, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sdk.Close() })
	return sdk
}

func TestWriteAndReadBack(t *testing.T) {
	registry := prometheus.NewRegistry()
	sdk := newSDK(t, WithConfig(config.FromRaw([]byte(metricsConfig), "yaml")), WithRegisterer(registry))
	assert.Equal(t, 5*time.Second, sdk.Config().ClientTimeout())
	_, ok := sdk.Pool().(*loopback.Pool)
	assert.True(t, ok)

	did, err := sdk.CreateDID([]byte(trusteeSeed))
	require.NoError(t, err)
	assert.Equal(t, trusteeDID, did.Did)

	client, err := sdk.LedgerClient()
	require.NoError(t, err)

	req, err := client.BuildTxnAuthorAgreementRequest(did.Did, "some agreement", "1.0")
	require.NoError(t, err)
	reply, err := client.SignAndSubmitRequest(did.Did, req)
	require.NoError(t, err)

	raw, err := client.GetResponseMetadata(reply)
	require.NoError(t, err)
	metadata := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(raw), &metadata))
	assert.EqualValues(t, 1, metadata["seqNo"])

	getTxn, err := client.BuildGetTxnRequest(nil, "CONFIG", 1)
	require.NoError(t, err)
	reply, err = client.SubmitRequest(getTxn)
	require.NoError(t, err)
	assert.Contains(t, reply, "some agreement")

	require.NotNil(t, sdk.Metrics())
	assert.Equal(t, float64(1), testutil.ToFloat64(sdk.Metrics().CommandsReceived.WithLabelValues("SignAndSubmit")))
	families, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestDefaults(t *testing.T) {
	sdk := newSDK(t)
	assert.Nil(t, sdk.Metrics())
	assert.Equal(t, config.DefaultClientTimeout, sdk.Config().ClientTimeout())
	assert.Equal(t, config.DefaultProtocolVersion, sdk.Config().ProtocolVersion())
}

func TestGatewayAddress(t *testing.T) {
	sdk := newSDK(t, WithConfig(config.FromRaw([]byte("pool:\n  address: passthrough:///unused\n"), "yaml")))
	_, ok := sdk.Pool().(*grpcpool.Client)
	assert.True(t, ok)
}

func TestInvalidConfig(t *testing.T) {
	_, err := New(WithConfig(config.FromRaw([]byte("client:\n  protocolVersion: 3\n"), "yaml")))
	assert.Error(t, err)

	_, err = New(WithConfig(nil))
	assert.Error(t, err)
}

func TestActionThroughGateway(t *testing.T) {
	backend := loopback.New(loopback.WithNodes("Node1", "Node2"))
	t.Cleanup(backend.Close)
	srv := grpcpool.NewServer(backend, backend.Open())
	lis := bufconn.Listen(1024 * 1024)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	gateway, err := grpcpool.Dial("passthrough:///bufnet", grpcpool.WithDialOptions(grpc.WithContextDialer(dialer)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gateway.Close() })

	sdk := newSDK(t, WithPool(gateway))
	did, err := sdk.CreateDID([]byte(trusteeSeed))
	require.NoError(t, err)
	client, err := sdk.LedgerClient()
	require.NoError(t, err)

	req, err := client.BuildGetValidatorInfoRequest(did.Did)
	require.NoError(t, err)
	reply, err := client.SubmitAction(req, nil, nil)
	require.NoError(t, err)

	replies := map[string]string{}
	require.NoError(t, json.Unmarshal([]byte(reply), &replies))
	assert.Len(t, replies, 2)
	assert.Contains(t, replies["Node1"], `"alias":"Node1"`)
}

func TestClose(t *testing.T) {
	sdk, err := New()
	require.NoError(t, err)
	client, err := sdk.LedgerClient()
	require.NoError(t, err)

	require.NoError(t, sdk.Close())

	_, err = client.BuildGetTxnRequest(nil, "", 1)
	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.StateStatus, s.Group)
	assert.EqualValues(t, status.ExecutorStopped, s.Code)
}
