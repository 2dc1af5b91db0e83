/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package indy

import (
	"context"
	"time"
)

// PoolHandle identifies an opened pool ledger
type PoolHandle int32

// WalletHandle identifies an opened wallet
type WalletHandle int32

// SubmissionID is assigned by the pool to an accepted submission. It stays
// unique among the submissions that have not been acknowledged yet.
type SubmissionID int32

// Ack is the asynchronous outcome of an accepted submission
type Ack struct {
	ID     SubmissionID
	Result string
	Err    error
}

// StateProofParser extracts the state proof of a custom transaction type from a
// node reply. It returns the parsed proofs as JSON.
type StateProofParser func(reply string) (string, error)

// Pool is the ledger pool transport.
type Pool interface {
	// Submit hands a signed request to the pool. The returned id is
	// acknowledged later on the Acks channel.
	Submit(ctx context.Context, handle PoolHandle, request string) (SubmissionID, error)

	// SubmitAction sends an action request to the given nodes (all nodes when
	// empty). A nil timeout selects the pool default.
	SubmitAction(ctx context.Context, handle PoolHandle, request string, nodes []string, timeout *time.Duration) (SubmissionID, error)

	// RegisterStateProofParser registers parser for txnType, replacing any
	// previous registration.
	RegisterStateProofParser(txnType string, parser StateProofParser) error

	// Acks delivers the acknowledgements of accepted submissions.
	Acks() <-chan *Ack
}

// Wallet record types
const (
	DidRecordType = "Indy::Did"
	KeyRecordType = "Indy::Key"
)

// RecordOptions selects the parts of a record returned by a lookup
type RecordOptions struct {
	RetrieveType  bool
	RetrieveValue bool
	RetrieveTags  bool
}

// DefaultRecordOptions returns the value only
func DefaultRecordOptions() RecordOptions {
	return RecordOptions{RetrieveValue: true}
}

// Record is a wallet record
type Record struct {
	Type  string
	ID    string
	Value string
	Tags  map[string]string
}

// Did is the value of an Indy::Did record
type Did struct {
	Did    string `json:"did"`
	Verkey string `json:"verkey"`
}

// Key is the value of an Indy::Key record. Both keys are base58 encoded.
type Key struct {
	Verkey  string `json:"verkey"`
	Signkey string `json:"signkey"`
}

// Wallet stores DID and key records.
type Wallet interface {
	// Lookup returns the record of the given type and id. A missing record is
	// reported with the NotFoundStatus group.
	Lookup(ctx context.Context, handle WalletHandle, recordType, id string, options RecordOptions) (*Record, error)
}

// CryptoSuite provides signing and identifier validation.
type CryptoSuite interface {
	Sign(ctx context.Context, key *Key, msg []byte) ([]byte, error)
	ValidateDID(did string) error
}

// ResponseMetadata is the metadata region of a ledger reply
type ResponseMetadata struct {
	SeqNo       *uint64 `json:"seqNo,omitempty"`
	TxnTime     *uint64 `json:"txnTime,omitempty"`
	LastTxnTime *uint64 `json:"lastTxnTime,omitempty"`
	LastSeqNo   *uint64 `json:"lastSeqNo,omitempty"`
}

// AcceptanceData is the transaction author agreement acceptance attached to a request
type AcceptanceData struct {
	Mechanism string `json:"mechanism"`
	TaaDigest string `json:"taaDigest"`
	Time      uint64 `json:"time"`
}

// Rules holds the ledger specific rules applied to requests and replies.
type Rules interface {
	// ValidateAction accepts only requests that may be sent as actions.
	ValidateAction(request string) error

	// SerializeForSignature returns the canonical form of request that is signed.
	SerializeForSignature(request map[string]interface{}) (string, error)

	ParseResponseMetadata(response string) (*ResponseMetadata, error)

	// PrepareAcceptanceData builds the acceptance from an explicit digest or
	// from the agreement text and version.
	PrepareAcceptanceData(text, version, digest *string, mechanism string, time uint64) (*AcceptanceData, error)
}

// Providers supplies the collaborators of the ledger core
type Providers interface {
	Pool() Pool
	Wallet() Wallet
	CryptoSuite() CryptoSuite
	Rules() Rules
}
