/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpcpool

import (
	"context"

	"google.golang.org/grpc"
)

const (
	serviceName        = "indyres.pool.Gateway"
	submitMethod       = "/" + serviceName + "/Submit"
	submitActionMethod = "/" + serviceName + "/SubmitAction"
)

// SubmitRequest carries a signed ledger request
type SubmitRequest struct {
	Request string `json:"request"`
}

// ActionRequest carries an action request and its target nodes. An empty
// node list targets every node of the pool.
type ActionRequest struct {
	Request   string   `json:"request"`
	Nodes     []string `json:"nodes,omitempty"`
	TimeoutMs *int64   `json:"timeoutMs,omitempty"`
}

// SubmitReply is the reply of the pool to a request
type SubmitReply struct {
	Result string `json:"result"`
}

type gatewayServer interface {
	Submit(context.Context, *SubmitRequest) (*SubmitReply, error)
	SubmitAction(context.Context, *ActionRequest) (*SubmitReply, error)
}

var gatewayServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*gatewayServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Submit", Handler: submitHandler},
		{MethodName: "SubmitAction", Handler: submitActionHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gateway",
}

func submitHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(gatewayServer).Submit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: submitMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(gatewayServer).Submit(ctx, req.(*SubmitRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func submitActionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ActionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(gatewayServer).SubmitAction(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: submitActionMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(gatewayServer).SubmitAction(ctx, req.(*ActionRequest))
	}
	return interceptor(ctx, in, info, handler)
}
