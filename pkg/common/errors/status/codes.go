/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package status

import (
	"strconv"

	grpcCodes "google.golang.org/grpc/codes"
)

// Code represents a status code
type Code uint32

const (
	// OK is returned on success.
	OK Code = 0

	// Unknown represents status codes that are uncategorized
	Unknown Code = 1

	// InvalidJSON is returned when a document cannot be parsed as JSON
	InvalidJSON Code = 2

	// InvalidStructure is returned when a document has the wrong shape
	InvalidStructure Code = 3

	// MissingField is returned when a required field is absent
	MissingField Code = 4

	// InvalidDID is returned when an identifier is not a well-formed DID
	InvalidDID Code = 5

	// ActionNotAllowed is returned when a request is submitted as an action
	// but its type is not one of the action types
	ActionNotAllowed Code = 6

	// WalletItemNotFound is returned when a wallet record does not exist
	WalletItemNotFound Code = 7

	// InvalidState is returned when serialization of a validated document fails
	InvalidState Code = 8

	// PoolRejected is returned when the pool refuses a submission
	PoolRejected Code = 9

	// PoolTimeout is returned when the pool gives up waiting for a quorum
	PoolTimeout Code = 10

	// LedgerRejected is returned for a REJECT reply
	LedgerRejected Code = 11

	// LedgerNack is returned for a REQNACK reply
	LedgerNack Code = 12

	// MultipleErrors multiple errors occurred
	MultipleErrors Code = 13

	// ExecutorStopped is delivered to callbacks that can no longer complete
	// because the executor was stopped
	ExecutorStopped Code = 14

	// DuplicateSubmission is returned when a submission id is registered twice
	DuplicateSubmission Code = 15

	// UnknownPoolHandle is returned when a pool handle is not open
	UnknownPoolHandle Code = 16
)

// CodeName maps the codes in this packages to human-readable strings
var CodeName = map[int32]string{
	0:  "OK",
	1:  "UNKNOWN",
	2:  "INVALID_JSON",
	3:  "INVALID_STRUCTURE",
	4:  "MISSING_FIELD",
	5:  "INVALID_DID",
	6:  "ACTION_NOT_ALLOWED",
	7:  "WALLET_ITEM_NOT_FOUND",
	8:  "INVALID_STATE",
	9:  "POOL_REJECTED",
	10: "POOL_TIMEOUT",
	11: "LEDGER_REJECTED",
	12: "LEDGER_NACK",
	13: "MULTIPLE_ERRORS",
	14: "EXECUTOR_STOPPED",
	15: "DUPLICATE_SUBMISSION",
	16: "UNKNOWN_POOL_HANDLE",
}

// ToInt32 cast to int32
func (c Code) ToInt32() int32 {
	return int32(c)
}

// String representation of the code
func (c Code) String() string {
	if s, ok := CodeName[c.ToInt32()]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// ToSDKStatusCode cast to a status code of this package
func ToSDKStatusCode(c int32) Code {
	return Code(c)
}

// ToGRPCStatusCode cast to gRPC status code
func ToGRPCStatusCode(c int32) grpcCodes.Code {
	return grpcCodes.Code(c)
}
