/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package executor

import (
	"github.com/hyperledger/indy-resolver-go/pkg/common/options"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/metrics"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/request"
)

type params struct {
	commandBufferSize uint
	metrics           *metrics.ExecutorMetrics
	protocolVersion   int
	idGenerator       request.IDGenerator
}

func defaultParams() *params {
	return &params{
		commandBufferSize: 100,
		protocolVersion:   request.DefaultProtocolVersion,
	}
}

// WithCommandBufferSize sets the size of the command channel.
func WithCommandBufferSize(value uint) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(commandBufferSizeSetter); ok {
			setter.SetCommandBufferSize(value)
		}
	}
}

// WithMetrics records executor activity in the given collectors.
func WithMetrics(value *metrics.ExecutorMetrics) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(metricsSetter); ok {
			setter.SetMetrics(value)
		}
	}
}

type commandBufferSizeSetter interface {
	SetCommandBufferSize(value uint)
}

type metricsSetter interface {
	SetMetrics(value *metrics.ExecutorMetrics)
}

func (p *params) SetCommandBufferSize(value uint) {
	logger.Debugf("CommandBufferSize: %d", value)
	p.commandBufferSize = value
}

func (p *params) SetMetrics(value *metrics.ExecutorMetrics) {
	p.metrics = value
}

// SetProtocolVersion accepts request.WithProtocolVersion
func (p *params) SetProtocolVersion(value int) {
	logger.Debugf("ProtocolVersion: %d", value)
	p.protocolVersion = value
}

// SetIDGenerator accepts request.WithIDGenerator
func (p *params) SetIDGenerator(value request.IDGenerator) {
	p.idGenerator = value
}

func (p *params) builderOpts() []options.Opt {
	return []options.Opt{
		request.WithProtocolVersion(p.protocolVersion),
		request.WithIDGenerator(p.idGenerator),
	}
}
