/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package request builds ledger transaction requests. Builders are pure:
// apart from the request id, equal inputs produce equal documents.
package request

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/options"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/did"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/rules"
)

// DefaultProtocolVersion is stamped on requests unless configured otherwise
const DefaultProtocolVersion = 2

// IDGenerator returns request ids
type IDGenerator func() uint64

// Builder builds ledger requests
type Builder struct {
	protocolVersion int
	nextID          IDGenerator
}

type protocolVersionSetter interface {
	SetProtocolVersion(value int)
}

type idGeneratorSetter interface {
	SetIDGenerator(value IDGenerator)
}

// WithProtocolVersion sets the protocol version of built requests
func WithProtocolVersion(value int) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(protocolVersionSetter); ok {
			setter.SetProtocolVersion(value)
		}
	}
}

// WithIDGenerator replaces the request id generator
func WithIDGenerator(value IDGenerator) options.Opt {
	return func(p options.Params) {
		if setter, ok := p.(idGeneratorSetter); ok {
			setter.SetIDGenerator(value)
		}
	}
}

// NewBuilder returns a request builder
func NewBuilder(opts ...options.Opt) *Builder {
	b := &Builder{
		protocolVersion: DefaultProtocolVersion,
		nextID:          NewTimeIDGenerator(),
	}
	options.Apply(b, opts)
	return b
}

// SetProtocolVersion sets the protocol version
func (b *Builder) SetProtocolVersion(value int) {
	b.protocolVersion = value
}

// SetIDGenerator sets the request id generator
func (b *Builder) SetIDGenerator(value IDGenerator) {
	if value != nil {
		b.nextID = value
	}
}

// ProtocolVersion returns the protocol version stamped on requests
func (b *Builder) ProtocolVersion() int {
	return b.protocolVersion
}

// NewTimeIDGenerator returns a generator seeded with the current time in
// nanoseconds. Ids increase strictly even when the clock does not.
func NewTimeIDGenerator() IDGenerator {
	var last uint64
	return func() uint64 {
		for {
			prev := atomic.LoadUint64(&last)
			next := uint64(time.Now().UnixNano())
			if next <= prev {
				next = prev + 1
			}
			if atomic.CompareAndSwapUint64(&last, prev, next) {
				return next
			}
		}
	}
}

// BuildNodeRequest builds a NODE request adding or updating a validator node.
func (b *Builder) BuildNodeRequest(submitter, target string, data NodeOperationData) (*Request, error) {
	if err := requireDID("submitter", submitter); err != nil {
		return nil, err
	}
	if err := requireDID("target", target); err != nil {
		return nil, err
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return b.build(&submitter, nodeOperation{Type: rules.Node, Dest: did.Unqualify(target), Data: &data})
}

// BuildGetValidatorInfoRequest builds a GET_VALIDATOR_INFO request
func (b *Builder) BuildGetValidatorInfoRequest(submitter string) (*Request, error) {
	if err := requireDID("submitter", submitter); err != nil {
		return nil, err
	}
	return b.build(&submitter, typeOnlyOperation{Type: rules.GetValidatorInfo})
}

// BuildGetTxnRequest builds a GET_TXN request for seqNo on the given ledger
// (DOMAIN when empty).
func (b *Builder) BuildGetTxnRequest(submitter *string, ledgerType string, seqNo int32) (*Request, error) {
	if err := optionalDID(submitter); err != nil {
		return nil, err
	}
	if seqNo <= 0 {
		return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure, "invalid seqNo [%d]", seqNo)
	}
	ledgerID, ok := rules.LedgerID(ledgerType)
	if !ok {
		return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure, "invalid ledger type [%s]", ledgerType)
	}
	return b.build(submitter, getTxnOperation{Type: rules.GetTxn, Data: seqNo, LedgerID: ledgerID})
}

// BuildPoolConfigRequest builds a POOL_CONFIG request
func (b *Builder) BuildPoolConfigRequest(submitter string, writes, force bool) (*Request, error) {
	if err := requireDID("submitter", submitter); err != nil {
		return nil, err
	}
	return b.build(&submitter, poolConfigOperation{Type: rules.PoolConfig, Writes: writes, Force: force})
}

// BuildPoolRestartRequest builds a POOL_RESTART request
func (b *Builder) BuildPoolRestartRequest(submitter, action string, datetime *string) (*Request, error) {
	if err := requireDID("submitter", submitter); err != nil {
		return nil, err
	}
	if err := checkAction(action); err != nil {
		return nil, err
	}
	return b.build(&submitter, poolRestartOperation{Type: rules.PoolRestart, Action: action, Datetime: datetime})
}

// PoolUpgrade holds the parameters of a POOL_UPGRADE request
type PoolUpgrade struct {
	Name          string
	Version       string
	Action        string
	Sha256        string
	Timeout       *uint32
	Schedule      map[string]string
	Justification *string
	Reinstall     bool
	Force         bool
	Package       *string
}

// BuildPoolUpgradeRequest builds a POOL_UPGRADE request. Starting an upgrade
// requires a schedule.
func (b *Builder) BuildPoolUpgradeRequest(submitter string, upgrade PoolUpgrade) (*Request, error) {
	if err := requireDID("submitter", submitter); err != nil {
		return nil, err
	}
	for name, value := range map[string]string{"name": upgrade.Name, "version": upgrade.Version, "sha256": upgrade.Sha256} {
		if value == "" {
			return nil, status.Errorf(status.StructuralStatus, status.MissingField, "pool upgrade %s is required", name)
		}
	}
	if err := checkAction(upgrade.Action); err != nil {
		return nil, err
	}
	if upgrade.Action == StartAction && len(upgrade.Schedule) == 0 {
		return nil, status.Errorf(status.StructuralStatus, status.MissingField, "schedule is required for the start action")
	}

	return b.build(&submitter, poolUpgradeOperation{
		Type:          rules.PoolUpgrade,
		Name:          upgrade.Name,
		Version:       upgrade.Version,
		Action:        upgrade.Action,
		Sha256:        upgrade.Sha256,
		Timeout:       upgrade.Timeout,
		Schedule:      upgrade.Schedule,
		Justification: upgrade.Justification,
		Reinstall:     upgrade.Reinstall,
		Force:         upgrade.Force,
		Package:       upgrade.Package,
	})
}

// BuildAuthRuleRequest builds an AUTH_RULE request changing one rule
func (b *Builder) BuildAuthRuleRequest(submitter string, rule AuthRule) (*Request, error) {
	if err := requireDID("submitter", submitter); err != nil {
		return nil, err
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return b.build(&submitter, authRuleOperation{Type: rules.AuthRule, AuthRule: rule})
}

// BuildAuthRulesRequest builds an AUTH_RULES request changing several rules at once
func (b *Builder) BuildAuthRulesRequest(submitter string, authRules AuthRules) (*Request, error) {
	if err := requireDID("submitter", submitter); err != nil {
		return nil, err
	}
	resolved := make(AuthRules, len(authRules))
	copy(resolved, authRules)
	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return b.build(&submitter, authRulesOperation{Type: rules.AuthRules, Rules: resolved})
}

// GetAuthRule selects the auth rules to read. Type, action and field are
// given all together or not at all; nothing selects every rule.
type GetAuthRule struct {
	AuthType   *string
	AuthAction *string
	Field      *string
	OldValue   *string
	NewValue   *string
}

// BuildGetAuthRuleRequest builds a GET_AUTH_RULE request
func (b *Builder) BuildGetAuthRuleRequest(submitter *string, query GetAuthRule) (*Request, error) {
	if err := optionalDID(submitter); err != nil {
		return nil, err
	}

	op := getAuthRuleOperation{Type: rules.GetAuthRule}
	switch {
	case query.AuthType == nil && query.AuthAction == nil && query.Field == nil:
		if query.OldValue != nil || query.NewValue != nil {
			return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure,
				"old and new values require auth_type, auth_action and field")
		}
	case query.AuthType != nil && query.AuthAction != nil && query.Field != nil:
		code, ok := rules.TxnTypeCode(*query.AuthType)
		if !ok {
			return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure, "unknown auth_type [%s]", *query.AuthType)
		}
		switch *query.AuthAction {
		case AddAction:
			query.OldValue = nil
		case EditAction:
		default:
			return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure,
				"invalid auth_action [%s]: expected ADD or EDIT", *query.AuthAction)
		}
		op.AuthType = &code
		op.AuthAction = query.AuthAction
		op.Field = query.Field
		op.OldValue = query.OldValue
		op.NewValue = query.NewValue
	default:
		return nil, status.Errorf(status.StructuralStatus, status.MissingField,
			"either none or all of auth_type, auth_action and field must be specified")
	}
	return b.build(submitter, op)
}

// BuildTxnAuthorAgreementRequest builds a TXN_AUTHR_AGRMT request. An empty
// text disables the agreement.
func (b *Builder) BuildTxnAuthorAgreementRequest(submitter, text, version string) (*Request, error) {
	if err := requireDID("submitter", submitter); err != nil {
		return nil, err
	}
	if version == "" {
		return nil, status.Errorf(status.StructuralStatus, status.MissingField, "agreement version is required")
	}
	return b.build(&submitter, txnAuthorAgreementOperation{Type: rules.TxnAuthrAgrmt, Text: text, Version: version})
}

// BuildGetTxnAuthorAgreementRequest builds a GET_TXN_AUTHR_AGRMT request.
// Without data the latest agreement is returned.
func (b *Builder) BuildGetTxnAuthorAgreementRequest(submitter *string, data *GetTxnAuthorAgreementData) (*Request, error) {
	if err := optionalDID(submitter); err != nil {
		return nil, err
	}
	if data != nil {
		if err := data.Validate(); err != nil {
			return nil, err
		}
	}
	return b.build(submitter, getTxnAuthorAgreementOperation{Type: rules.GetTxnAuthrAgrmt, GetTxnAuthorAgreementData: data})
}

// BuildAcceptanceMechanismsRequest builds a TXN_AUTHR_AGRMT_AML request
func (b *Builder) BuildAcceptanceMechanismsRequest(submitter string, aml AcceptanceMechanisms, version string, amlContext *string) (*Request, error) {
	if err := requireDID("submitter", submitter); err != nil {
		return nil, err
	}
	if err := aml.Validate(); err != nil {
		return nil, err
	}
	if version == "" {
		return nil, status.Errorf(status.StructuralStatus, status.MissingField, "acceptance mechanisms version is required")
	}
	return b.build(&submitter, acceptanceMechanismsOperation{Type: rules.TxnAuthrAgrmtAML, Aml: aml, Version: version, AmlContext: amlContext})
}

// BuildGetAcceptanceMechanismsRequest builds a GET_TXN_AUTHR_AGRMT_AML request
func (b *Builder) BuildGetAcceptanceMechanismsRequest(submitter *string, timestamp *uint64, version *string) (*Request, error) {
	if err := optionalDID(submitter); err != nil {
		return nil, err
	}
	if timestamp != nil && version != nil {
		return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure, "timestamp and version cannot be specified together")
	}
	return b.build(submitter, getAcceptanceMechanismsOperation{Type: rules.GetTxnAuthrAgrmtAML, Timestamp: timestamp, Version: version})
}

func (b *Builder) build(submitter *string, operation interface{}) (*Request, error) {
	op, err := json.Marshal(operation)
	if err != nil {
		return nil, status.Errorf(status.StateStatus, status.InvalidState, "cannot serialize operation: %s", err)
	}

	req := &Request{
		ReqID:           b.nextID(),
		Operation:       op,
		ProtocolVersion: b.protocolVersion,
	}
	if submitter != nil {
		req.Identifier = did.Unqualify(*submitter)
	}
	return req, nil
}

func checkAction(action string) error {
	if action != StartAction && action != CancelAction {
		return status.Errorf(status.StructuralStatus, status.InvalidStructure, "invalid action [%s]: expected start or cancel", action)
	}
	return nil
}

func requireDID(name, value string) error {
	if value == "" {
		return status.Errorf(status.ValidationStatus, status.InvalidDID, "%s DID is required", name)
	}
	_, err := did.Parse(value)
	return err
}

func optionalDID(value *string) error {
	if value == nil {
		return nil
	}
	return requireDID("submitter", *value)
}
