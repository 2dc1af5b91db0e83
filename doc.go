/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package indyresolver enables Go developers to build, sign and submit requests to a
// Hyperledger Indy ledger.
//
// Packages for end developer usage
//
// pkg/indysdk: The main package. It assembles the pool, wallet, crypto suite and command
// executor from configuration and hands out ledger clients.
//
// pkg/client/ledger: Provides request building, signing and submission. Every operation has an
// asynchronous form taking a callback and a blocking form.
//
// pkg/pool/grpcpool: Reaches a pool through a gRPC gateway, and serves a pool as one.
//
// Packages for internal usage
//
// pkg/ledger/executor: Processes ledger commands one at a time and correlates pool
// acknowledgements with the callbacks waiting for them.
//
// pkg/ledger/request, pkg/ledger/signer, pkg/ledger/rules: Request envelopes, signing and the
// ledger specific rules (canonical serialization, response metadata, agreement digests).
//
// pkg/core/config, pkg/core/logging: Configuration backends and logging providers.
package indyresolver
