/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpcpool

import (
	"time"

	"google.golang.org/grpc"

	"github.com/hyperledger/indy-resolver-go/pkg/common/options"
)

type params struct {
	requestTimeout time.Duration
	ackBufferSize  uint
	dialOpts       []grpc.DialOption
}

func defaultParams() *params {
	return &params{
		requestTimeout: 30 * time.Second,
		ackBufferSize:  100,
	}
}

// WithRequestTimeout sets how long a call to the gateway may take. Actions
// are granted their own timeout on top of it.
func WithRequestTimeout(value time.Duration) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(requestTimeoutSetter); ok {
			setter.SetRequestTimeout(value)
		}
	}
}

// WithAckBufferSize sets the size of the acknowledgement channel
func WithAckBufferSize(value uint) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(ackBufferSizeSetter); ok {
			setter.SetAckBufferSize(value)
		}
	}
}

// WithDialOptions appends gRPC dial options, e.g. a context dialer
func WithDialOptions(value ...grpc.DialOption) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(dialOptionsSetter); ok {
			setter.SetDialOptions(value...)
		}
	}
}

type requestTimeoutSetter interface {
	SetRequestTimeout(value time.Duration)
}

type ackBufferSizeSetter interface {
	SetAckBufferSize(value uint)
}

type dialOptionsSetter interface {
	SetDialOptions(value ...grpc.DialOption)
}

func (p *params) SetRequestTimeout(value time.Duration) {
	logger.Debugf("RequestTimeout: %s", value)
	p.requestTimeout = value
}

func (p *params) SetAckBufferSize(value uint) {
	logger.Debugf("AckBufferSize: %d", value)
	p.ackBufferSize = value
}

func (p *params) SetDialOptions(value ...grpc.DialOption) {
	p.dialOpts = append(p.dialOpts, value...)
}
