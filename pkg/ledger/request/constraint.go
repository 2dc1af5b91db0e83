/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package request

import (
	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/multi"
	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
)

// Constraint ids
const (
	RoleConstraintID = "ROLE"
	AndConstraintID  = "AND"
	OrConstraintID   = "OR"
	ForbiddenID      = "FORBIDDEN"
)

// Constraint is an auth rule constraint. A ROLE constraint names who has to
// sign; AND and OR combine nested constraints; FORBIDDEN forbids the action.
type Constraint struct {
	ConstraintID       string                 `json:"constraint_id" yaml:"constraint_id"`
	Role               *string                `json:"role,omitempty" yaml:"role,omitempty"`
	SigCount           *uint32                `json:"sig_count,omitempty" yaml:"sig_count,omitempty"`
	NeedToBeOwner      *bool                  `json:"need_to_be_owner,omitempty" yaml:"need_to_be_owner,omitempty"`
	OffLedgerSignature *bool                  `json:"off_ledger_signature,omitempty" yaml:"off_ledger_signature,omitempty"`
	Metadata           map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	AuthConstraints    []Constraint           `json:"auth_constraints,omitempty" yaml:"auth_constraints,omitempty"`
}

// Validate checks the shape of the constraint tree
func (c *Constraint) Validate() error {
	switch c.ConstraintID {
	case RoleConstraintID:
		if c.SigCount == nil {
			return status.Errorf(status.StructuralStatus, status.MissingField, "ROLE constraint requires sig_count")
		}
		if len(c.AuthConstraints) > 0 {
			return status.Errorf(status.StructuralStatus, status.InvalidStructure, "ROLE constraint cannot have auth_constraints")
		}
		return nil
	case AndConstraintID, OrConstraintID:
		if len(c.AuthConstraints) == 0 {
			return status.Errorf(status.StructuralStatus, status.MissingField, "%s constraint requires auth_constraints", c.ConstraintID)
		}
		if c.Role != nil || c.SigCount != nil || c.NeedToBeOwner != nil || c.OffLedgerSignature != nil {
			return status.Errorf(status.StructuralStatus, status.InvalidStructure, "%s constraint cannot carry role fields", c.ConstraintID)
		}
		var errs error
		for i := range c.AuthConstraints {
			errs = multi.Append(errs, c.AuthConstraints[i].Validate())
		}
		return errs
	case ForbiddenID:
		return nil
	case "":
		return status.Errorf(status.StructuralStatus, status.MissingField, "constraint_id is required")
	default:
		return status.Errorf(status.StructuralStatus, status.InvalidStructure, "unknown constraint_id [%s]", c.ConstraintID)
	}
}
