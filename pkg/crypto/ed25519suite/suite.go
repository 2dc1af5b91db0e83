/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ed25519suite signs ledger requests with ed25519 keys. Keys are
// exchanged base58 encoded, as they are stored in the wallet.
package ed25519suite

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/did"
)

var logger = logging.NewLogger("indyres/crypto")

// Suite implements indy.CryptoSuite
type Suite struct{}

// New returns an ed25519 crypto suite
func New() *Suite {
	return &Suite{}
}

// NewKey creates a key pair from a 32 byte seed, or from random bytes when
// seed is empty.
func NewKey(seed []byte) (*indy.Key, error) {
	if len(seed) == 0 {
		seed = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, errors.Wrap(err, "generating seed failed")
		}
	}
	if len(seed) != ed25519.SeedSize {
		return nil, status.Errorf(status.ValidationStatus, status.InvalidStructure,
			"invalid seed length %d, expected %d bytes", len(seed), ed25519.SeedSize)
	}

	private := ed25519.NewKeyFromSeed(seed)
	public := private.Public().(ed25519.PublicKey)
	return &indy.Key{
		Verkey:  base58.Encode(public),
		Signkey: base58.Encode(private),
	}, nil
}

// Sign signs msg with the key's signing key
func (s *Suite) Sign(ctx context.Context, key *indy.Key, msg []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.New("key is required")
	}
	private, err := signingKey(key.Signkey)
	if err != nil {
		return nil, err
	}
	logger.Debugf("signing %d bytes with key %s", len(msg), key.Verkey)
	return ed25519.Sign(private, msg), nil
}

// Verify reports whether signature is a valid signature of msg by verkey
func (s *Suite) Verify(verkey string, msg, signature []byte) (bool, error) {
	public, err := base58.Decode(verkey)
	if err != nil {
		return false, errors.Wrap(err, "decoding verkey failed")
	}
	if len(public) != ed25519.PublicKeySize {
		return false, errors.Errorf("invalid verkey length %d", len(public))
	}
	return ed25519.Verify(ed25519.PublicKey(public), msg, signature), nil
}

// ValidateDID checks that value is a well-formed DID
func (s *Suite) ValidateDID(value string) error {
	return did.Validate(value)
}

func signingKey(encoded string) (ed25519.PrivateKey, error) {
	raw, err := base58.Decode(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "decoding signing key failed")
	}
	switch len(raw) {
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(raw), nil
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(raw), nil
	default:
		return nil, errors.Errorf("invalid signing key length %d", len(raw))
	}
}
