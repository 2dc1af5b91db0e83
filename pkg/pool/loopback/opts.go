/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package loopback

import (
	"time"

	"github.com/hyperledger/indy-resolver-go/pkg/common/options"
)

type params struct {
	nodes         []string
	responder     Responder
	ackBufferSize uint
	actionTimeout time.Duration
}

func defaultParams() *params {
	return &params{
		nodes:         []string{"Node1", "Node2", "Node3", "Node4"},
		ackBufferSize: 100,
		actionTimeout: 10 * time.Second,
	}
}

// WithNodes sets the names of the nodes of the pool
func WithNodes(nodes ...string) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(nodesSetter); ok {
			setter.SetNodes(nodes)
		}
	}
}

// WithResponder replaces the built-in ledger with the given responder
func WithResponder(value Responder) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(responderSetter); ok {
			setter.SetResponder(value)
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

// WithActionTimeout sets how long an action waits for each node by default
func WithActionTimeout(value time.Duration) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(actionTimeoutSetter); ok {
			setter.SetActionTimeout(value)
		}
	}
}

type nodesSetter interface {
	SetNodes(value []string)
}

type responderSetter interface {
	SetResponder(value Responder)
}

type ackBufferSizeSetter interface {
	SetAckBufferSize(value uint)
}

type actionTimeoutSetter interface {
	SetActionTimeout(value time.Duration)
}

func (p *params) SetNodes(value []string) {
	logger.Debugf("Nodes: %v", value)
	p.nodes = value
}

func (p *params) SetResponder(value Responder) {
	p.responder = value
}

func (p *params) SetAckBufferSize(value uint) {
	logger.Debugf("AckBufferSize: %d", value)
	p.ackBufferSize = value
}

func (p *params) SetActionTimeout(value time.Duration) {
	logger.Debugf("ActionTimeout: %s", value)
	p.actionTimeout = value
}
