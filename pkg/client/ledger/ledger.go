/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ledger builds, signs and submits ledger transaction requests.
// Every operation has an asynchronous form, which hands the outcome to a
// callback, and a blocking form returning the outcome.
//
//  Basic Flow:
//  1) Start an executor
//  2) Create ledger client
//  3) Build, sign and submit requests
package ledger

import (
	reqContext "context"
	"time"

	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/executor"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/request"
)

var logger = logging.NewLogger("indyres/client")

// Callback receives the outcome of an asynchronous operation
type Callback = executor.Callback

// CommandSubmitter accepts executor commands
type CommandSubmitter interface {
	Submit(cmd executor.Command) error
}

// Client enables ledger operations against one pool and wallet.
type Client struct {
	exec    CommandSubmitter
	pool    indy.PoolHandle
	wallet  indy.WalletHandle
	timeout time.Duration
}

// New returns a ledger client that sends its commands to exec.
func New(exec CommandSubmitter, opts ...ClientOption) (*Client, error) {
	if exec == nil {
		return nil, errors.New("executor is required")
	}

	c := &Client{exec: exec}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SignAndSubmitRequestAsync signs req with the submitter's key and submits it.
// cb receives the ledger reply.
func (c *Client) SignAndSubmitRequestAsync(submitter, req string, cb Callback) error {
	return c.exec.Submit(&executor.SignAndSubmitCommand{
		PoolHandle: c.pool, WalletHandle: c.wallet, Submitter: submitter, Request: req, Callback: cb,
	})
}

// SignAndSubmitRequest signs req with the submitter's key, submits it and
// returns the ledger reply.
func (c *Client) SignAndSubmitRequest(submitter, req string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.SignAndSubmitRequestAsync(submitter, req, cb)
	})
}

// SubmitRequestAsync submits a signed request
func (c *Client) SubmitRequestAsync(req string, cb Callback) error {
	return c.exec.Submit(&executor.SubmitCommand{PoolHandle: c.pool, Request: req, Callback: cb})
}

// SubmitRequest submits a signed request and returns the ledger reply
func (c *Client) SubmitRequest(req string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.SubmitRequestAsync(req, cb)
	})
}

// SubmitActionAsync sends a POOL_RESTART or GET_VALIDATOR_INFO request to the
// given nodes, or to all nodes when none are given. A nil timeout selects the
// pool default.
func (c *Client) SubmitActionAsync(req string, nodes []string, timeout *time.Duration, cb Callback) error {
	return c.exec.Submit(&executor.SubmitActionCommand{
		PoolHandle: c.pool, Request: req, Nodes: nodes, Timeout: timeout, Callback: cb,
	})
}

// SubmitAction sends an action request and returns the replies of the nodes
func (c *Client) SubmitAction(req string, nodes []string, timeout *time.Duration, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.SubmitActionAsync(req, nodes, timeout, cb)
	})
}

// SignRequestAsync signs req, replacing any previous signature
func (c *Client) SignRequestAsync(submitter, req string, cb Callback) error {
	return c.exec.Submit(&executor.SignCommand{WalletHandle: c.wallet, Submitter: submitter, Request: req, Callback: cb})
}

// SignRequest signs req, replacing any previous signature
func (c *Client) SignRequest(submitter, req string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.SignRequestAsync(submitter, req, cb)
	})
}

// MultiSignRequestAsync adds the submitter's signature to the signatures of req
func (c *Client) MultiSignRequestAsync(submitter, req string, cb Callback) error {
	return c.exec.Submit(&executor.MultiSignCommand{WalletHandle: c.wallet, Submitter: submitter, Request: req, Callback: cb})
}

// MultiSignRequest adds the submitter's signature to the signatures of req
func (c *Client) MultiSignRequest(submitter, req string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.MultiSignRequestAsync(submitter, req, cb)
	})
}

// BuildNodeRequestAsync builds a NODE request
func (c *Client) BuildNodeRequestAsync(submitter, target string, data request.NodeOperationData, cb Callback) error {
	return c.exec.Submit(&executor.BuildNodeRequestCommand{Submitter: submitter, Target: target, Data: data, Callback: cb})
}

// BuildNodeRequest builds a NODE request
func (c *Client) BuildNodeRequest(submitter, target string, data request.NodeOperationData, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildNodeRequestAsync(submitter, target, data, cb)
	})
}

// BuildGetValidatorInfoRequestAsync builds a GET_VALIDATOR_INFO request
func (c *Client) BuildGetValidatorInfoRequestAsync(submitter string, cb Callback) error {
	return c.exec.Submit(&executor.BuildGetValidatorInfoRequestCommand{Submitter: submitter, Callback: cb})
}

// BuildGetValidatorInfoRequest builds a GET_VALIDATOR_INFO request
func (c *Client) BuildGetValidatorInfoRequest(submitter string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildGetValidatorInfoRequestAsync(submitter, cb)
	})
}

// BuildGetTxnRequestAsync builds a GET_TXN request. ledgerType is DOMAIN when
// empty.
func (c *Client) BuildGetTxnRequestAsync(submitter *string, ledgerType string, seqNo int32, cb Callback) error {
	return c.exec.Submit(&executor.BuildGetTxnRequestCommand{Submitter: submitter, LedgerType: ledgerType, SeqNo: seqNo, Callback: cb})
}

// BuildGetTxnRequest builds a GET_TXN request
func (c *Client) BuildGetTxnRequest(submitter *string, ledgerType string, seqNo int32, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildGetTxnRequestAsync(submitter, ledgerType, seqNo, cb)
	})
}

// BuildPoolConfigRequestAsync builds a POOL_CONFIG request
func (c *Client) BuildPoolConfigRequestAsync(submitter string, writes, force bool, cb Callback) error {
	return c.exec.Submit(&executor.BuildPoolConfigRequestCommand{Submitter: submitter, Writes: writes, Force: force, Callback: cb})
}

// BuildPoolConfigRequest builds a POOL_CONFIG request
func (c *Client) BuildPoolConfigRequest(submitter string, writes, force bool, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildPoolConfigRequestAsync(submitter, writes, force, cb)
	})
}

// BuildPoolRestartRequestAsync builds a POOL_RESTART request
func (c *Client) BuildPoolRestartRequestAsync(submitter, action string, datetime *string, cb Callback) error {
	return c.exec.Submit(&executor.BuildPoolRestartRequestCommand{Submitter: submitter, Action: action, Datetime: datetime, Callback: cb})
}

// BuildPoolRestartRequest builds a POOL_RESTART request
func (c *Client) BuildPoolRestartRequest(submitter, action string, datetime *string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildPoolRestartRequestAsync(submitter, action, datetime, cb)
	})
}

// BuildPoolUpgradeRequestAsync builds a POOL_UPGRADE request
func (c *Client) BuildPoolUpgradeRequestAsync(submitter string, upgrade request.PoolUpgrade, cb Callback) error {
	return c.exec.Submit(&executor.BuildPoolUpgradeRequestCommand{Submitter: submitter, Upgrade: upgrade, Callback: cb})
}

// BuildPoolUpgradeRequest builds a POOL_UPGRADE request
func (c *Client) BuildPoolUpgradeRequest(submitter string, upgrade request.PoolUpgrade, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildPoolUpgradeRequestAsync(submitter, upgrade, cb)
	})
}

// BuildAuthRuleRequestAsync builds an AUTH_RULE request
func (c *Client) BuildAuthRuleRequestAsync(submitter string, rule request.AuthRule, cb Callback) error {
	return c.exec.Submit(&executor.BuildAuthRuleRequestCommand{Submitter: submitter, Rule: rule, Callback: cb})
}

// BuildAuthRuleRequest builds an AUTH_RULE request
func (c *Client) BuildAuthRuleRequest(submitter string, rule request.AuthRule, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildAuthRuleRequestAsync(submitter, rule, cb)
	})
}

// BuildAuthRulesRequestAsync builds an AUTH_RULES request
func (c *Client) BuildAuthRulesRequestAsync(submitter string, rules request.AuthRules, cb Callback) error {
	return c.exec.Submit(&executor.BuildAuthRulesRequestCommand{Submitter: submitter, Rules: rules, Callback: cb})
}

// BuildAuthRulesRequest builds an AUTH_RULES request
func (c *Client) BuildAuthRulesRequest(submitter string, rules request.AuthRules, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildAuthRulesRequestAsync(submitter, rules, cb)
	})
}

// BuildGetAuthRuleRequestAsync builds a GET_AUTH_RULE request
func (c *Client) BuildGetAuthRuleRequestAsync(submitter *string, query request.GetAuthRule, cb Callback) error {
	return c.exec.Submit(&executor.BuildGetAuthRuleRequestCommand{Submitter: submitter, Query: query, Callback: cb})
}

// BuildGetAuthRuleRequest builds a GET_AUTH_RULE request
func (c *Client) BuildGetAuthRuleRequest(submitter *string, query request.GetAuthRule, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildGetAuthRuleRequestAsync(submitter, query, cb)
	})
}

// BuildTxnAuthorAgreementRequestAsync builds a TXN_AUTHR_AGRMT request
func (c *Client) BuildTxnAuthorAgreementRequestAsync(submitter, text, version string, cb Callback) error {
	return c.exec.Submit(&executor.BuildTxnAuthorAgreementRequestCommand{Submitter: submitter, Text: text, Version: version, Callback: cb})
}

// BuildTxnAuthorAgreementRequest builds a TXN_AUTHR_AGRMT request
func (c *Client) BuildTxnAuthorAgreementRequest(submitter, text, version string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildTxnAuthorAgreementRequestAsync(submitter, text, version, cb)
	})
}

// BuildGetTxnAuthorAgreementRequestAsync builds a GET_TXN_AUTHR_AGRMT request
func (c *Client) BuildGetTxnAuthorAgreementRequestAsync(submitter *string, data *request.GetTxnAuthorAgreementData, cb Callback) error {
	return c.exec.Submit(&executor.BuildGetTxnAuthorAgreementRequestCommand{Submitter: submitter, Data: data, Callback: cb})
}

// BuildGetTxnAuthorAgreementRequest builds a GET_TXN_AUTHR_AGRMT request
func (c *Client) BuildGetTxnAuthorAgreementRequest(submitter *string, data *request.GetTxnAuthorAgreementData, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildGetTxnAuthorAgreementRequestAsync(submitter, data, cb)
	})
}

// BuildAcceptanceMechanismsRequestAsync builds a TXN_AUTHR_AGRMT_AML request
func (c *Client) BuildAcceptanceMechanismsRequestAsync(submitter string, aml request.AcceptanceMechanisms, version string, amlContext *string, cb Callback) error {
	return c.exec.Submit(&executor.BuildAcceptanceMechanismsRequestCommand{
		Submitter: submitter, Aml: aml, Version: version, AmlContext: amlContext, Callback: cb,
	})
}

// BuildAcceptanceMechanismsRequest builds a TXN_AUTHR_AGRMT_AML request
func (c *Client) BuildAcceptanceMechanismsRequest(submitter string, aml request.AcceptanceMechanisms, version string, amlContext *string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildAcceptanceMechanismsRequestAsync(submitter, aml, version, amlContext, cb)
	})
}

// BuildGetAcceptanceMechanismsRequestAsync builds a GET_TXN_AUTHR_AGRMT_AML request
func (c *Client) BuildGetAcceptanceMechanismsRequestAsync(submitter *string, timestamp *uint64, version *string, cb Callback) error {
	return c.exec.Submit(&executor.BuildGetAcceptanceMechanismsRequestCommand{
		Submitter: submitter, Timestamp: timestamp, Version: version, Callback: cb,
	})
}

// BuildGetAcceptanceMechanismsRequest builds a GET_TXN_AUTHR_AGRMT_AML request
func (c *Client) BuildGetAcceptanceMechanismsRequest(submitter *string, timestamp *uint64, version *string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.BuildGetAcceptanceMechanismsRequestAsync(submitter, timestamp, version, cb)
	})
}

// GetResponseMetadataAsync extracts the metadata of a ledger reply
func (c *Client) GetResponseMetadataAsync(response string, cb Callback) error {
	return c.exec.Submit(&executor.GetResponseMetadataCommand{Response: response, Callback: cb})
}

// GetResponseMetadata extracts the metadata of a ledger reply
func (c *Client) GetResponseMetadata(response string, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.GetResponseMetadataAsync(response, cb)
	})
}

// AppendTxnAuthorAgreementAcceptanceAsync attaches the acceptance of a
// transaction author agreement to req. Either text and version, or the
// agreement digest, identify the agreement.
func (c *Client) AppendTxnAuthorAgreementAcceptanceAsync(req string, text, version, digest *string, mechanism string, acceptedAt uint64, cb Callback) error {
	return c.exec.Submit(&executor.AppendAcceptanceCommand{
		Request: req, Text: text, Version: version, Digest: digest, Mechanism: mechanism, Time: acceptedAt, Callback: cb,
	})
}

// AppendTxnAuthorAgreementAcceptance attaches the acceptance of a
// transaction author agreement to req
func (c *Client) AppendTxnAuthorAgreementAcceptance(req string, text, version, digest *string, mechanism string, acceptedAt uint64, options ...RequestOption) (string, error) {
	return c.await(options, func(cb Callback) error {
		return c.AppendTxnAuthorAgreementAcceptanceAsync(req, text, version, digest, mechanism, acceptedAt, cb)
	})
}

// RegisterStateProofParserAsync registers a state proof parser for a custom
// transaction type. A later registration for the same type wins.
func (c *Client) RegisterStateProofParserAsync(txnType string, parser indy.StateProofParser, cb func(err error)) error {
	return c.exec.Submit(&executor.RegisterSPParserCommand{TxnType: txnType, Parser: parser, Callback: cb})
}

// RegisterStateProofParser registers a state proof parser for a custom
// transaction type
func (c *Client) RegisterStateProofParser(txnType string, parser indy.StateProofParser, options ...RequestOption) error {
	_, err := c.await(options, func(cb Callback) error {
		return c.RegisterStateProofParserAsync(txnType, parser, func(err error) { cb("", err) })
	})
	return err
}

type response struct {
	result string
	err    error
}

// await submits a command through submit and waits for its callback.
func (c *Client) await(options []RequestOption, submit func(cb Callback) error) (string, error) {
	opts, err := c.prepareRequestOpts(options...)
	if err != nil {
		return "", errors.WithMessage(err, "failed to get opts")
	}

	respch := make(chan response, 1)
	if err := submit(func(result string, err error) { respch <- response{result: result, err: err} }); err != nil {
		return "", err
	}

	reqCtx, cancel := c.createRequestContext(opts)
	defer cancel()

	select {
	case resp := <-respch:
		return resp.result, resp.err
	case <-reqCtx.Done():
		logger.Debugf("stopped waiting for the response: %s", reqCtx.Err())
		return "", errors.WithMessage(reqCtx.Err(), "waiting for the response failed")
	}
}

func (c *Client) prepareRequestOpts(options ...RequestOption) (requestOptions, error) {
	opts := requestOptions{}
	for _, option := range options {
		if err := option(&opts); err != nil {
			return opts, errors.WithMessage(err, "failed to read opts")
		}
	}
	return opts, nil
}

func (c *Client) createRequestContext(opts requestOptions) (reqContext.Context, reqContext.CancelFunc) {
	parent := opts.ParentContext
	if parent == nil {
		parent = reqContext.Background()
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = c.timeout
	}
	if timeout == 0 {
		return reqContext.WithCancel(parent)
	}
	return reqContext.WithTimeout(parent, timeout)
}
