/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package signer signs ledger requests with keys held in a wallet.
package signer

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/did"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/request"
)

var logger = logging.NewLogger("indyres/ledger")

// Mode selects how the signature is added to the request
type Mode int

const (
	// Single replaces the authentication region with one signature
	Single Mode = iota
	// Multi adds the signature to the signatures map
	Multi
)

// Signer signs requests
type Signer struct {
	wallet indy.Wallet
	crypto indy.CryptoSuite
	rules  indy.Rules
}

// New returns a signer using the given collaborators
func New(wallet indy.Wallet, crypto indy.CryptoSuite, rules indy.Rules) *Signer {
	return &Signer{wallet: wallet, crypto: crypto, rules: rules}
}

// Sign signs requestJSON with the key of submitter and returns the signed
// request. The signed bytes are the canonical serialization of the request
// without its authentication region.
func (s *Signer) Sign(ctx context.Context, wallet indy.WalletHandle, submitter, requestJSON string, mode Mode) (string, error) {
	key, err := s.lookupKey(ctx, wallet, submitter)
	if err != nil {
		return "", err
	}

	req, err := request.Parse(requestJSON)
	if err != nil {
		return "", err
	}

	msg, err := s.signatureInput(req)
	if err != nil {
		return "", err
	}

	signature, err := s.crypto.Sign(ctx, key, []byte(msg))
	if err != nil {
		return "", errors.WithMessage(err, "signing request failed")
	}
	encoded := base58.Encode(signature)

	switch mode {
	case Single:
		req.Auth = request.SingleAuth(encoded)
	case Multi:
		req.Auth = req.Auth.WithCoSignature(req.Identifier, did.Unqualify(submitter), encoded)
	default:
		return "", status.Errorf(status.ValidationStatus, status.InvalidStructure, "unknown signing mode %d", mode)
	}

	signed, err := req.JSON()
	if err != nil {
		return "", err
	}
	logger.Debugf("signed request %d in %s mode", req.ReqID, req.Auth.Kind())
	return signed, nil
}

func (s *Signer) lookupKey(ctx context.Context, wallet indy.WalletHandle, submitter string) (*indy.Key, error) {
	didRecord, err := s.wallet.Lookup(ctx, wallet, indy.DidRecordType, did.Unqualify(submitter), indy.DefaultRecordOptions())
	if err != nil {
		return nil, errors.WithMessagef(err, "DID [%s] lookup failed", submitter)
	}
	myDid := indy.Did{}
	if err := json.Unmarshal([]byte(didRecord.Value), &myDid); err != nil {
		return nil, status.Errorf(status.StateStatus, status.InvalidState, "invalid DID record [%s]: %s", submitter, err)
	}

	keyRecord, err := s.wallet.Lookup(ctx, wallet, indy.KeyRecordType, myDid.Verkey, indy.DefaultRecordOptions())
	if err != nil {
		return nil, errors.WithMessagef(err, "key lookup for DID [%s] failed", submitter)
	}
	key := &indy.Key{}
	if err := json.Unmarshal([]byte(keyRecord.Value), key); err != nil {
		return nil, status.Errorf(status.StateStatus, status.InvalidState, "invalid key record for DID [%s]: %s", submitter, err)
	}
	return key, nil
}

// signatureInput serializes the request envelope as the ledger expects it signed.
func (s *Signer) signatureInput(req *request.Request) (string, error) {
	unsigned := *req
	unsigned.Auth = request.UnsignedAuth()

	raw, err := json.Marshal(&unsigned)
	if err != nil {
		return "", status.Errorf(status.StateStatus, status.InvalidState, "cannot serialize request: %s", err)
	}

	doc := map[string]interface{}{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return "", status.Errorf(status.StateStatus, status.InvalidState, "cannot decode serialized request: %s", err)
	}

	return s.rules.SerializeForSignature(doc)
}
