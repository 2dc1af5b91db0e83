/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package executor

import (
	"time"

	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/request"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/tracker"
)

// Command is sent to the executor. Each command is handled once, in the order
// in which it was received.
type Command interface{}

// Callback receives the outcome of a command. It is invoked exactly once.
type Callback = tracker.Callback

// SignAndSubmitCommand signs a request with the submitter's key and submits it
type SignAndSubmitCommand struct {
	PoolHandle   indy.PoolHandle
	WalletHandle indy.WalletHandle
	Submitter    string
	Request      string
	Callback     Callback
}

// SubmitCommand submits a signed request. The callback receives the reply
// once the pool acknowledges the submission.
type SubmitCommand struct {
	PoolHandle indy.PoolHandle
	Request    string
	Callback   Callback
}

// SubmitAckCommand delivers the acknowledgement of a submission
type SubmitAckCommand struct {
	ID     indy.SubmissionID
	Result string
	Err    error
}

// SubmitActionCommand sends an action request (POOL_RESTART or
// GET_VALIDATOR_INFO) to some or all nodes
type SubmitActionCommand struct {
	PoolHandle indy.PoolHandle
	Request    string
	Nodes      []string
	Timeout    *time.Duration
	Callback   Callback
}

// SignCommand replaces the signature of a request
type SignCommand struct {
	WalletHandle indy.WalletHandle
	Submitter    string
	Request      string
	Callback     Callback
}

// MultiSignCommand adds a signature to the signatures of a request
type MultiSignCommand struct {
	WalletHandle indy.WalletHandle
	Submitter    string
	Request      string
	Callback     Callback
}

// BuildNodeRequestCommand builds a NODE request
type BuildNodeRequestCommand struct {
	Submitter string
	Target    string
	Data      request.NodeOperationData
	Callback  Callback
}

// BuildGetValidatorInfoRequestCommand builds a GET_VALIDATOR_INFO request
type BuildGetValidatorInfoRequestCommand struct {
	Submitter string
	Callback  Callback
}

// BuildGetTxnRequestCommand builds a GET_TXN request
type BuildGetTxnRequestCommand struct {
	Submitter  *string
	LedgerType string
	SeqNo      int32
	Callback   Callback
}

// BuildPoolConfigRequestCommand builds a POOL_CONFIG request
type BuildPoolConfigRequestCommand struct {
	Submitter string
	Writes    bool
	Force     bool
	Callback  Callback
}

// BuildPoolRestartRequestCommand builds a POOL_RESTART request
type BuildPoolRestartRequestCommand struct {
	Submitter string
	Action    string
	Datetime  *string
	Callback  Callback
}

// BuildPoolUpgradeRequestCommand builds a POOL_UPGRADE request
type BuildPoolUpgradeRequestCommand struct {
	Submitter string
	Upgrade   request.PoolUpgrade
	Callback  Callback
}

// BuildAuthRuleRequestCommand builds an AUTH_RULE request
type BuildAuthRuleRequestCommand struct {
	Submitter string
	Rule      request.AuthRule
	Callback  Callback
}

// BuildAuthRulesRequestCommand builds an AUTH_RULES request
type BuildAuthRulesRequestCommand struct {
	Submitter string
	Rules     request.AuthRules
	Callback  Callback
}

// BuildGetAuthRuleRequestCommand builds a GET_AUTH_RULE request
type BuildGetAuthRuleRequestCommand struct {
	Submitter *string
	Query     request.GetAuthRule
	Callback  Callback
}

// BuildTxnAuthorAgreementRequestCommand builds a TXN_AUTHR_AGRMT request
type BuildTxnAuthorAgreementRequestCommand struct {
	Submitter string
	Text      string
	Version   string
	Callback  Callback
}

// BuildGetTxnAuthorAgreementRequestCommand builds a GET_TXN_AUTHR_AGRMT request
type BuildGetTxnAuthorAgreementRequestCommand struct {
	Submitter *string
	Data      *request.GetTxnAuthorAgreementData
	Callback  Callback
}

// BuildAcceptanceMechanismsRequestCommand builds a TXN_AUTHR_AGRMT_AML request
type BuildAcceptanceMechanismsRequestCommand struct {
	Submitter  string
	Aml        request.AcceptanceMechanisms
	Version    string
	AmlContext *string
	Callback   Callback
}

// BuildGetAcceptanceMechanismsRequestCommand builds a GET_TXN_AUTHR_AGRMT_AML request
type BuildGetAcceptanceMechanismsRequestCommand struct {
	Submitter *string
	Timestamp *uint64
	Version   *string
	Callback  Callback
}

// GetResponseMetadataCommand extracts the metadata of a ledger reply
type GetResponseMetadataCommand struct {
	Response string
	Callback Callback
}

// AppendAcceptanceCommand attaches a transaction author agreement
// acceptance to a request
type AppendAcceptanceCommand struct {
	Request   string
	Text      *string
	Version   *string
	Digest    *string
	Mechanism string
	Time      uint64
	Callback  Callback
}

// RegisterSPParserCommand registers a state proof parser for a custom
// transaction type
type RegisterSPParserCommand struct {
	TxnType  string
	Parser   indy.StateProofParser
	Callback func(err error)
}

// StopCommand tells the executor to stop processing
type StopCommand struct {
	ErrCh chan<- error
}

// callbackOf returns a function that completes cmd with err, or nil if cmd
// carries no callback.
func callbackOf(cmd Command) func(err error) {
	switch c := cmd.(type) {
	case *RegisterSPParserCommand:
		return c.Callback
	case *StopCommand:
		return func(err error) { c.ErrCh <- err }
	}

	var cb Callback
	switch c := cmd.(type) {
	case *SignAndSubmitCommand:
		cb = c.Callback
	case *SubmitCommand:
		cb = c.Callback
	case *SubmitActionCommand:
		cb = c.Callback
	case *SignCommand:
		cb = c.Callback
	case *MultiSignCommand:
		cb = c.Callback
	case *BuildNodeRequestCommand:
		cb = c.Callback
	case *BuildGetValidatorInfoRequestCommand:
		cb = c.Callback
	case *BuildGetTxnRequestCommand:
		cb = c.Callback
	case *BuildPoolConfigRequestCommand:
		cb = c.Callback
	case *BuildPoolRestartRequestCommand:
		cb = c.Callback
	case *BuildPoolUpgradeRequestCommand:
		cb = c.Callback
	case *BuildAuthRuleRequestCommand:
		cb = c.Callback
	case *BuildAuthRulesRequestCommand:
		cb = c.Callback
	case *BuildGetAuthRuleRequestCommand:
		cb = c.Callback
	case *BuildTxnAuthorAgreementRequestCommand:
		cb = c.Callback
	case *BuildGetTxnAuthorAgreementRequestCommand:
		cb = c.Callback
	case *BuildAcceptanceMechanismsRequestCommand:
		cb = c.Callback
	case *BuildGetAcceptanceMechanismsRequestCommand:
		cb = c.Callback
	case *GetResponseMetadataCommand:
		cb = c.Callback
	case *AppendAcceptanceCommand:
		cb = c.Callback
	}
	if cb == nil {
		return nil
	}
	return func(err error) { cb("", err) }
}
