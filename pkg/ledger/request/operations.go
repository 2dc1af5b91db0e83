/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package request

import (
	"fmt"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/multi"
	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/rules"
)

// Auth rule actions
const (
	AddAction  = "ADD"
	EditAction = "EDIT"
)

// Pool restart and upgrade actions
const (
	StartAction  = "start"
	CancelAction = "cancel"
)

const validatorService = "VALIDATOR"

// NodeOperationData describes a validator node
type NodeOperationData struct {
	NodeIP     *string  `json:"node_ip,omitempty" yaml:"node_ip,omitempty"`
	NodePort   *int32   `json:"node_port,omitempty" yaml:"node_port,omitempty"`
	ClientIP   *string  `json:"client_ip,omitempty" yaml:"client_ip,omitempty"`
	ClientPort *int32   `json:"client_port,omitempty" yaml:"client_port,omitempty"`
	Alias      string   `json:"alias" yaml:"alias"`
	Services   []string `json:"services,omitempty" yaml:"services,omitempty"`
	Blskey     *string  `json:"blskey,omitempty" yaml:"blskey,omitempty"`
	BlskeyPop  *string  `json:"blskey_pop,omitempty" yaml:"blskey_pop,omitempty"`
}

// Validate checks the node data
func (d *NodeOperationData) Validate() error {
	if d.Alias == "" {
		return status.Errorf(status.StructuralStatus, status.MissingField, "node alias is required")
	}
	for name, port := range map[string]*int32{"node_port": d.NodePort, "client_port": d.ClientPort} {
		if port != nil && (*port <= 0 || *port > 65535) {
			return status.Errorf(status.StructuralStatus, status.InvalidStructure, "invalid %s [%d]", name, *port)
		}
	}
	for _, service := range d.Services {
		if service != validatorService {
			return status.Errorf(status.StructuralStatus, status.InvalidStructure, "unknown node service [%s]", service)
		}
	}
	if d.Blskey != nil && *d.Blskey != "" && (d.BlskeyPop == nil || *d.BlskeyPop == "") {
		return status.Errorf(status.StructuralStatus, status.MissingField, "blskey_pop is required together with blskey")
	}
	return nil
}

// AuthRule is one rule of an AUTH_RULES transaction
type AuthRule struct {
	AuthType   string     `json:"auth_type" yaml:"auth_type"`
	AuthAction string     `json:"auth_action" yaml:"auth_action"`
	Field      string     `json:"field" yaml:"field"`
	OldValue   *string    `json:"old_value,omitempty" yaml:"old_value,omitempty"`
	NewValue   *string    `json:"new_value,omitempty" yaml:"new_value,omitempty"`
	Constraint Constraint `json:"constraint" yaml:"constraint"`
}

// Validate checks the rule and resolves auth type aliases. Old values of
// ADD rules are dropped.
func (r *AuthRule) Validate() error {
	code, ok := rules.TxnTypeCode(r.AuthType)
	if !ok {
		return status.Errorf(status.StructuralStatus, status.InvalidStructure, "unknown auth_type [%s]", r.AuthType)
	}
	r.AuthType = code

	switch r.AuthAction {
	case AddAction:
		r.OldValue = nil
	case EditAction:
	default:
		return status.Errorf(status.StructuralStatus, status.InvalidStructure, "invalid auth_action [%s]: expected ADD or EDIT", r.AuthAction)
	}

	if r.Field == "" {
		return status.Errorf(status.StructuralStatus, status.MissingField, "auth rule field is required")
	}
	return r.Constraint.Validate()
}

// AuthRules is the rule set of an AUTH_RULES transaction
type AuthRules []AuthRule

// Validate checks every rule and reports all failures together
func (r AuthRules) Validate() error {
	if len(r) == 0 {
		return status.Errorf(status.StructuralStatus, status.MissingField, "at least one auth rule is required")
	}
	var errs error
	for i := range r {
		if err := r[i].Validate(); err != nil {
			errs = multi.Append(errs, prefixed(fmt.Sprintf("rule %d", i), err))
		}
	}
	return errs
}

// AcceptanceMechanisms maps mechanism names to their descriptions
type AcceptanceMechanisms map[string]string

// Validate checks that at least one mechanism is present
func (m AcceptanceMechanisms) Validate() error {
	if len(m) == 0 {
		return status.Errorf(status.StructuralStatus, status.MissingField, "at least one acceptance mechanism is required")
	}
	for name := range m {
		if name == "" {
			return status.Errorf(status.StructuralStatus, status.InvalidStructure, "acceptance mechanism name must not be empty")
		}
	}
	return nil
}

// GetTxnAuthorAgreementData selects the agreement to read
type GetTxnAuthorAgreementData struct {
	Digest    *string `json:"digest,omitempty"`
	Version   *string `json:"version,omitempty"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

// Validate checks that the digest is not combined with other selectors
func (d *GetTxnAuthorAgreementData) Validate() error {
	if d.Digest != nil && (d.Version != nil || d.Timestamp != nil) {
		return status.Errorf(status.StructuralStatus, status.InvalidStructure,
			"only one of digest or (version, timestamp) can be specified")
	}
	return nil
}

func prefixed(prefix string, err error) error {
	if s, ok := status.FromError(err); ok && s.Group != status.UnknownStatus {
		return status.New(s.Group, s.Code, prefix+": "+s.Message, s.Details)
	}
	return err
}

type nodeOperation struct {
	Type string             `json:"type"`
	Dest string             `json:"dest"`
	Data *NodeOperationData `json:"data"`
}

type typeOnlyOperation struct {
	Type string `json:"type"`
}

type getTxnOperation struct {
	Type     string `json:"type"`
	Data     int32  `json:"data"`
	LedgerID int    `json:"ledgerId"`
}

type poolConfigOperation struct {
	Type   string `json:"type"`
	Writes bool   `json:"writes"`
	Force  bool   `json:"force"`
}

type poolRestartOperation struct {
	Type     string  `json:"type"`
	Action   string  `json:"action"`
	Datetime *string `json:"datetime,omitempty"`
}

type poolUpgradeOperation struct {
	Type          string            `json:"type"`
	Name          string            `json:"name"`
	Version       string            `json:"version"`
	Action        string            `json:"action"`
	Sha256        string            `json:"sha256"`
	Timeout       *uint32           `json:"timeout,omitempty"`
	Schedule      map[string]string `json:"schedule,omitempty"`
	Justification *string           `json:"justification,omitempty"`
	Reinstall     bool              `json:"reinstall"`
	Force         bool              `json:"force"`
	Package       *string           `json:"package,omitempty"`
}

type authRuleOperation struct {
	Type string `json:"type"`
	AuthRule
}

type authRulesOperation struct {
	Type  string    `json:"type"`
	Rules AuthRules `json:"rules"`
}

type getAuthRuleOperation struct {
	Type       string  `json:"type"`
	AuthType   *string `json:"auth_type,omitempty"`
	AuthAction *string `json:"auth_action,omitempty"`
	Field      *string `json:"field,omitempty"`
	OldValue   *string `json:"old_value,omitempty"`
	NewValue   *string `json:"new_value,omitempty"`
}

type txnAuthorAgreementOperation struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Version string `json:"version"`
}

type getTxnAuthorAgreementOperation struct {
	Type string `json:"type"`
	*GetTxnAuthorAgreementData
}

type acceptanceMechanismsOperation struct {
	Type       string               `json:"type"`
	Aml        AcceptanceMechanisms `json:"aml"`
	Version    string               `json:"version"`
	AmlContext *string              `json:"amlContext,omitempty"`
}

type getAcceptanceMechanismsOperation struct {
	Type      string  `json:"type"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
	Version   *string `json:"version,omitempty"`
}
