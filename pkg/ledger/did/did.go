/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package did parses and validates the decentralized identifiers used as
// request submitters and targets.
package did

import (
	"strings"

	"github.com/mr-tron/base58"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
)

const (
	prefix = "did:"

	shortLength = 16
	longLength  = 32
)

// DID is a parsed identifier. Method is empty for unqualified identifiers.
type DID struct {
	Method string
	ID     string
}

// String returns the fully qualified form when a method is known
func (d DID) String() string {
	if d.Method == "" {
		return d.ID
	}
	return prefix + d.Method + ":" + d.ID
}

// Parse splits an optionally qualified identifier ("did:sov:<id>" or "<id>").
// The method specific id is not checked.
func Parse(value string) (DID, error) {
	if !strings.HasPrefix(value, prefix) {
		if value == "" {
			return DID{}, status.Errorf(status.ValidationStatus, status.InvalidDID, "empty DID")
		}
		return DID{ID: value}, nil
	}

	parts := strings.SplitN(strings.TrimPrefix(value, prefix), ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return DID{}, status.Errorf(status.ValidationStatus, status.InvalidDID, "invalid fully qualified DID [%s]", value)
	}
	return DID{Method: parts[0], ID: parts[1]}, nil
}

// Unqualify strips the "did:<method>:" prefix. Values that cannot be parsed
// are returned unchanged.
func Unqualify(value string) string {
	d, err := Parse(value)
	if err != nil {
		return value
	}
	return d.ID
}

// Validate checks that value is a base58 identifier decoding to 16 or 32 bytes.
func Validate(value string) error {
	d, err := Parse(value)
	if err != nil {
		return err
	}

	raw, err := base58.Decode(d.ID)
	if err != nil {
		return status.Errorf(status.ValidationStatus, status.InvalidDID, "invalid DID [%s]: not base58", value)
	}
	if len(raw) != shortLength && len(raw) != longLength {
		return status.Errorf(status.ValidationStatus, status.InvalidDID,
			"invalid DID [%s]: decoded length %d, expected %d or %d bytes", value, len(raw), shortLength, longLength)
	}
	return nil
}

// FromVerkey derives the default identifier of a verification key: the
// base58 encoding of its first 16 bytes.
func FromVerkey(verkey []byte) (string, error) {
	if len(verkey) < shortLength {
		return "", status.Errorf(status.ValidationStatus, status.InvalidStructure, "verkey too short: %d bytes", len(verkey))
	}
	return base58.Encode(verkey[:shortLength]), nil
}
