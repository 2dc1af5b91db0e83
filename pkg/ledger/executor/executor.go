/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package executor runs ledger commands. All commands, including the
// acknowledgements delivered by the pool, are processed in a single Go routine
// in the order in which they are received, so command handlers never run
// concurrently.
package executor

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/options"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/request"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/signer"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/tracker"
)

var logger = logging.NewLogger("indyres/executor")

const (
	stateInitial = iota
	stateStarted
	stateStopped
)

// Handler handles one type of command. The returned error is the error the
// command's callback received.
type Handler func(Command) error

// Executor dispatches ledger commands to their handlers
type Executor struct {
	params
	state    int32
	ctx      context.Context
	cmdch    chan Command
	done     chan struct{}
	handlers map[reflect.Type]Handler

	pool    indy.Pool
	crypto  indy.CryptoSuite
	rules   indy.Rules
	builder *request.Builder
	signer  *signer.Signer
	tracker *tracker.Tracker
}

// New creates a new executor using the given collaborators.
func New(providers indy.Providers, opts ...options.Opt) *Executor {
	logger.Debug("Creating new executor.")

	params := defaultParams()
	options.Apply(params, opts)

	return &Executor{
		params:   *params,
		state:    stateInitial,
		ctx:      context.Background(),
		cmdch:    make(chan Command, params.commandBufferSize),
		done:     make(chan struct{}),
		handlers: make(map[reflect.Type]Handler),
		pool:     providers.Pool(),
		crypto:   providers.CryptoSuite(),
		rules:    providers.Rules(),
		builder:  request.NewBuilder(params.builderOpts()...),
		signer:   signer.New(providers.Wallet(), providers.CryptoSuite(), providers.Rules()),
		tracker:  tracker.New(params.metrics),
	}
}

// RegisterHandler registers a handler for the type of the given command
func (e *Executor) RegisterHandler(t Command, h Handler) {
	htype := reflect.TypeOf(t)
	if _, ok := e.handlers[htype]; !ok {
		logger.Debugf("Registering handler for %s on executor %T", htype, e)
		e.handlers[htype] = h
	} else {
		logger.Debugf("Cannot register handler %s on executor %T since it's already registered", htype, e)
	}
}

// RegisterHandlers registers all of the handlers by command type
func (e *Executor) RegisterHandlers() {
	e.RegisterHandler(&SignAndSubmitCommand{}, e.handleSignAndSubmit)
	e.RegisterHandler(&SubmitCommand{}, e.handleSubmit)
	e.RegisterHandler(&SubmitAckCommand{}, e.handleSubmitAck)
	e.RegisterHandler(&SubmitActionCommand{}, e.handleSubmitAction)
	e.RegisterHandler(&SignCommand{}, e.handleSign)
	e.RegisterHandler(&MultiSignCommand{}, e.handleMultiSign)
	e.RegisterHandler(&BuildNodeRequestCommand{}, e.handleBuildNodeRequest)
	e.RegisterHandler(&BuildGetValidatorInfoRequestCommand{}, e.handleBuildGetValidatorInfoRequest)
	e.RegisterHandler(&BuildGetTxnRequestCommand{}, e.handleBuildGetTxnRequest)
	e.RegisterHandler(&BuildPoolConfigRequestCommand{}, e.handleBuildPoolConfigRequest)
	e.RegisterHandler(&BuildPoolRestartRequestCommand{}, e.handleBuildPoolRestartRequest)
	e.RegisterHandler(&BuildPoolUpgradeRequestCommand{}, e.handleBuildPoolUpgradeRequest)
	e.RegisterHandler(&BuildAuthRuleRequestCommand{}, e.handleBuildAuthRuleRequest)
	e.RegisterHandler(&BuildAuthRulesRequestCommand{}, e.handleBuildAuthRulesRequest)
	e.RegisterHandler(&BuildGetAuthRuleRequestCommand{}, e.handleBuildGetAuthRuleRequest)
	e.RegisterHandler(&BuildTxnAuthorAgreementRequestCommand{}, e.handleBuildTxnAuthorAgreementRequest)
	e.RegisterHandler(&BuildGetTxnAuthorAgreementRequestCommand{}, e.handleBuildGetTxnAuthorAgreementRequest)
	e.RegisterHandler(&BuildAcceptanceMechanismsRequestCommand{}, e.handleBuildAcceptanceMechanismsRequest)
	e.RegisterHandler(&BuildGetAcceptanceMechanismsRequestCommand{}, e.handleBuildGetAcceptanceMechanismsRequest)
	e.RegisterHandler(&GetResponseMetadataCommand{}, e.handleGetResponseMetadata)
	e.RegisterHandler(&AppendAcceptanceCommand{}, e.handleAppendAcceptance)
	e.RegisterHandler(&RegisterSPParserCommand{}, e.handleRegisterSPParser)
	e.RegisterHandler(&StopCommand{}, e.handleStop)
}

// Start starts processing commands as they arrive. Acknowledgements delivered
// by the pool are posted to the command channel as SubmitAckCommand.
func (e *Executor) Start() error {
	if !e.setState(stateInitial, stateStarted) {
		return errors.New("cannot start executor since it's not in its initial state")
	}

	e.RegisterHandlers()

	go e.forwardAcks(e.pool.Acks())

	go func() {
		for e.getState() != stateStopped {
			logger.Debug("Listening for commands...")
			e.dispatch(<-e.cmdch)
		}
		e.drainCommands()
		logger.Debug("Exiting executor")
	}()
	return nil
}

// CommandCh returns the channel to which commands may be posted
func (e *Executor) CommandCh() (chan<- Command, error) {
	state := e.getState()
	if state == stateStarted {
		return e.cmdch, nil
	}
	return nil, errors.Errorf("executor not started - Current state [%d]", state)
}

// Submit posts cmd to the executor. The command's callback receives the
// outcome. An error is returned, and the callback is not invoked, when the
// command cannot be accepted.
func (e *Executor) Submit(cmd Command) error {
	if _, isAck := cmd.(*SubmitAckCommand); !isAck && callbackOf(cmd) == nil {
		return errors.Errorf("unsupported command %T or command without callback", cmd)
	}
	switch e.getState() {
	case stateInitial:
		return errors.New("executor not started")
	case stateStopped:
		return stoppedError()
	}

	select {
	case e.cmdch <- cmd:
		return nil
	case <-e.done:
		return stoppedError()
	}
}

// Stop stops the executor. Pending submissions and queued commands complete
// with an ExecutorStopped error. The executor is no longer usable.
func (e *Executor) Stop() error {
	errch := make(chan error, 1)
	if err := e.Submit(&StopCommand{ErrCh: errch}); err != nil {
		return err
	}
	return <-errch
}

// Pending returns the number of submissions waiting for an acknowledgement
func (e *Executor) Pending() int {
	return e.tracker.Pending()
}

func (e *Executor) dispatch(cmd Command) {
	ctype := reflect.TypeOf(cmd)
	logger.Debugf("Received command: %s", ctype)

	handler, ok := e.handlers[ctype]
	if !ok {
		logger.Errorf("Handler not found for: %s", ctype)
		if cb := callbackOf(cmd); cb != nil {
			cb(status.Errorf(status.StateStatus, status.InvalidState, "unsupported command %s", ctype))
		}
		return
	}

	name := commandName(ctype)
	e.metrics.CommandReceived(name)
	started := time.Now()
	err := handler(cmd)
	e.metrics.CommandDone(name, started, err)
	if err != nil {
		logger.Debugf("%s failed: %s", name, err)
	}
}

// drainCommands completes the commands queued behind the stop command.
func (e *Executor) drainCommands() {
	for {
		select {
		case cmd := <-e.cmdch:
			if cb := callbackOf(cmd); cb != nil {
				cb(stoppedError())
			}
		default:
			return
		}
	}
}

func (e *Executor) forwardAcks(acks <-chan *indy.Ack) {
	for {
		select {
		case <-e.done:
			return
		case ack, ok := <-acks:
			if !ok {
				logger.Debug("Pool ack channel closed")
				return
			}
			select {
			case e.cmdch <- &SubmitAckCommand{ID: ack.ID, Result: ack.Result, Err: ack.Err}:
			case <-e.done:
				logger.Warnf("Dropping ack for submission %d: executor stopped", ack.ID)
				return
			}
		}
	}
}

func (e *Executor) handleStop(c Command) error {
	cmd := c.(*StopCommand)

	logger.Debug("Stopping executor...")
	if !e.setState(stateStarted, stateStopped) {
		logger.Warn("Cannot stop executor since it's already stopped.")
		cmd.ErrCh <- errors.New("executor already stopped")
		return nil
	}
	close(e.done)

	if n := e.tracker.Drain(stoppedError()); n > 0 {
		logger.Infof("%d pending submissions completed on stop", n)
	}
	cmd.ErrCh <- nil
	return nil
}

func (e *Executor) handleSignAndSubmit(c Command) error {
	cmd := c.(*SignAndSubmitCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	signed, err := e.signer.Sign(e.ctx, cmd.WalletHandle, cmd.Submitter, cmd.Request, signer.Single)
	if err != nil {
		return fail(cmd.Callback, err)
	}
	return e.submit(cmd.Callback, func() (indy.SubmissionID, error) {
		return e.pool.Submit(e.ctx, cmd.PoolHandle, signed)
	})
}

func (e *Executor) handleSubmit(c Command) error {
	cmd := c.(*SubmitCommand)

	return e.submit(cmd.Callback, func() (indy.SubmissionID, error) {
		return e.pool.Submit(e.ctx, cmd.PoolHandle, cmd.Request)
	})
}

func (e *Executor) handleSubmitAck(c Command) error {
	cmd := c.(*SubmitAckCommand)

	e.tracker.Resolve(cmd.ID, cmd.Result, cmd.Err)
	return nil
}

func (e *Executor) handleSubmitAction(c Command) error {
	cmd := c.(*SubmitActionCommand)

	if err := e.rules.ValidateAction(cmd.Request); err != nil {
		return fail(cmd.Callback, err)
	}
	return e.submit(cmd.Callback, func() (indy.SubmissionID, error) {
		return e.pool.SubmitAction(e.ctx, cmd.PoolHandle, cmd.Request, cmd.Nodes, cmd.Timeout)
	})
}

// submit registers the callback of an accepted submission. The callback is
// completed with the pool's error otherwise.
func (e *Executor) submit(cb Callback, send func() (indy.SubmissionID, error)) error {
	id, err := send()
	if err != nil {
		return fail(cb, transportError(err))
	}
	if err := e.tracker.Register(id, cb); err != nil {
		return fail(cb, err)
	}
	logger.Debugf("Submission %d accepted by the pool", id)
	return nil
}

func (e *Executor) handleSign(c Command) error {
	cmd := c.(*SignCommand)
	return e.sign(cmd.Callback, cmd.WalletHandle, cmd.Submitter, cmd.Request, signer.Single)
}

func (e *Executor) handleMultiSign(c Command) error {
	cmd := c.(*MultiSignCommand)
	return e.sign(cmd.Callback, cmd.WalletHandle, cmd.Submitter, cmd.Request, signer.Multi)
}

func (e *Executor) sign(cb Callback, wallet indy.WalletHandle, submitter, req string, mode signer.Mode) error {
	if err := e.validateDID(submitter); err != nil {
		return fail(cb, err)
	}
	signed, err := e.signer.Sign(e.ctx, wallet, submitter, req, mode)
	return respond(cb, signed, err)
}

func (e *Executor) handleBuildNodeRequest(c Command) error {
	cmd := c.(*BuildNodeRequestCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	if err := e.validateDID(cmd.Target); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildNodeRequest(cmd.Submitter, cmd.Target, cmd.Data)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildGetValidatorInfoRequest(c Command) error {
	cmd := c.(*BuildGetValidatorInfoRequestCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildGetValidatorInfoRequest(cmd.Submitter)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildGetTxnRequest(c Command) error {
	cmd := c.(*BuildGetTxnRequestCommand)

	if err := e.validateOptionalDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildGetTxnRequest(cmd.Submitter, cmd.LedgerType, cmd.SeqNo)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildPoolConfigRequest(c Command) error {
	cmd := c.(*BuildPoolConfigRequestCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildPoolConfigRequest(cmd.Submitter, cmd.Writes, cmd.Force)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildPoolRestartRequest(c Command) error {
	cmd := c.(*BuildPoolRestartRequestCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildPoolRestartRequest(cmd.Submitter, cmd.Action, cmd.Datetime)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildPoolUpgradeRequest(c Command) error {
	cmd := c.(*BuildPoolUpgradeRequestCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildPoolUpgradeRequest(cmd.Submitter, cmd.Upgrade)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildAuthRuleRequest(c Command) error {
	cmd := c.(*BuildAuthRuleRequestCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildAuthRuleRequest(cmd.Submitter, cmd.Rule)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildAuthRulesRequest(c Command) error {
	cmd := c.(*BuildAuthRulesRequestCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildAuthRulesRequest(cmd.Submitter, cmd.Rules)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildGetAuthRuleRequest(c Command) error {
	cmd := c.(*BuildGetAuthRuleRequestCommand)

	if err := e.validateOptionalDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildGetAuthRuleRequest(cmd.Submitter, cmd.Query)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildTxnAuthorAgreementRequest(c Command) error {
	cmd := c.(*BuildTxnAuthorAgreementRequestCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildTxnAuthorAgreementRequest(cmd.Submitter, cmd.Text, cmd.Version)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildGetTxnAuthorAgreementRequest(c Command) error {
	cmd := c.(*BuildGetTxnAuthorAgreementRequestCommand)

	if err := e.validateOptionalDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildGetTxnAuthorAgreementRequest(cmd.Submitter, cmd.Data)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildAcceptanceMechanismsRequest(c Command) error {
	cmd := c.(*BuildAcceptanceMechanismsRequestCommand)

	if err := e.validateDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildAcceptanceMechanismsRequest(cmd.Submitter, cmd.Aml, cmd.Version, cmd.AmlContext)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleBuildGetAcceptanceMechanismsRequest(c Command) error {
	cmd := c.(*BuildGetAcceptanceMechanismsRequestCommand)

	if err := e.validateOptionalDID(cmd.Submitter); err != nil {
		return fail(cmd.Callback, err)
	}
	req, err := e.builder.BuildGetAcceptanceMechanismsRequest(cmd.Submitter, cmd.Timestamp, cmd.Version)
	return respondRequest(cmd.Callback, req, err)
}

func (e *Executor) handleGetResponseMetadata(c Command) error {
	cmd := c.(*GetResponseMetadataCommand)

	metadata, err := e.rules.ParseResponseMetadata(cmd.Response)
	if err != nil {
		return fail(cmd.Callback, err)
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fail(cmd.Callback, status.Errorf(status.StateStatus, status.InvalidState, "cannot serialize response metadata: %s", err))
	}
	return respond(cmd.Callback, string(raw), nil)
}

func (e *Executor) handleAppendAcceptance(c Command) error {
	cmd := c.(*AppendAcceptanceCommand)

	req, err := request.Parse(cmd.Request)
	if err != nil {
		return fail(cmd.Callback, err)
	}
	acceptance, err := e.rules.PrepareAcceptanceData(cmd.Text, cmd.Version, cmd.Digest, cmd.Mechanism, cmd.Time)
	if err != nil {
		return fail(cmd.Callback, err)
	}
	req.TaaAcceptance = acceptance
	return respondRequest(cmd.Callback, req, nil)
}

func (e *Executor) handleRegisterSPParser(c Command) error {
	cmd := c.(*RegisterSPParserCommand)

	err := e.pool.RegisterStateProofParser(cmd.TxnType, cmd.Parser)
	cmd.Callback(err)
	return err
}

func (e *Executor) validateDID(d string) error {
	if err := e.crypto.ValidateDID(d); err != nil {
		if _, ok := status.FromError(err); ok {
			return err
		}
		return status.Errorf(status.ValidationStatus, status.InvalidDID, "invalid DID [%s]: %s", d, err)
	}
	return nil
}

func (e *Executor) validateOptionalDID(d *string) error {
	if d == nil {
		return nil
	}
	return e.validateDID(*d)
}

func (e *Executor) getState() int32 {
	return atomic.LoadInt32(&e.state)
}

func (e *Executor) setState(expectedState, newState int32) bool {
	return atomic.CompareAndSwapInt32(&e.state, expectedState, newState)
}

func fail(cb Callback, err error) error {
	cb("", err)
	return err
}

func respond(cb Callback, result string, err error) error {
	if err != nil {
		return fail(cb, err)
	}
	cb(result, nil)
	return nil
}

func respondRequest(cb Callback, req *request.Request, err error) error {
	if err != nil {
		return fail(cb, err)
	}
	doc, err := req.JSON()
	return respond(cb, doc, err)
}

// transportError keeps the status of err when it has one
func transportError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Errorf(status.TransportStatus, status.PoolRejected, "submission rejected by the pool: %s", err)
}

func stoppedError() error {
	return status.Errorf(status.StateStatus, status.ExecutorStopped, "executor stopped")
}

func commandName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return strings.TrimSuffix(t.Name(), "Command")
}
