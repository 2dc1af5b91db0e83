/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package indy defines the collaborators consumed by the ledger core: the
// pool transport, the wallet, the crypto suite and the ledger rules.
//
// Mocks are generated with:
//
//	mockgen -destination=mocks/mockindy.gen.go -package=mockindy github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy Pool,Wallet,CryptoSuite,Rules,Providers
package indy
