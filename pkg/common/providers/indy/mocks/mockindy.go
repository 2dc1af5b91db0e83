/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mockindy

import (
	"github.com/golang/mock/gomock"

	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
)

// NewMockProvidersWith returns providers exposing the given collaborators.
func NewMockProvidersWith(ctrl *gomock.Controller, pool indy.Pool, wallet indy.Wallet, cs indy.CryptoSuite, rules indy.Rules) *MockProviders {
	p := NewMockProviders(ctrl)
	p.EXPECT().Pool().Return(pool).AnyTimes()
	p.EXPECT().Wallet().Return(wallet).AnyTimes()
	p.EXPECT().CryptoSuite().Return(cs).AnyTimes()
	p.EXPECT().Rules().Return(rules).AnyTimes()
	return p
}

// NewAckChannel returns an ack channel wired to the pool mock.
func NewAckChannel(pool *MockPool, size int) chan *indy.Ack {
	acks := make(chan *indy.Ack, size)
	var ro <-chan *indy.Ack = acks
	pool.EXPECT().Acks().Return(ro).AnyTimes()
	return acks
}
