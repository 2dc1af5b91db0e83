/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package status defines metadata for errors returned by the ledger request
// core. Callers use the status group to decide how to react: structural and
// validation failures are caused by the input, not-found failures by wallet
// contents, state failures are defects and transport failures come from the
// pool or the ledger itself.
package status

import (
	"fmt"

	"github.com/pkg/errors"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/multi"
)

// Status provides additional information about an unsuccessful operation.
// Essentially, this object contains metadata about an error returned by the
// core.
type Status struct {
	// Group status group
	Group Group
	// Code status code
	Code int32
	// Message status message
	Message string
	// Details any additional status details
	Details []interface{}
}

// Group of status to help users infer status codes from various components
type Group int32

const (
	// UnknownStatus unknown status group
	UnknownStatus Group = iota

	// StructuralStatus is returned for malformed input documents: invalid
	// JSON, a document that is not an object or a missing required field.
	StructuralStatus

	// ValidationStatus is returned for well-formed input that violates a
	// rule, such as a malformed DID or a request type that is not an action.
	ValidationStatus

	// NotFoundStatus is returned when a DID or key is absent from the wallet.
	NotFoundStatus

	// StateStatus is returned when an already validated document cannot be
	// processed any more. It indicates a defect rather than bad input.
	StateStatus

	// TransportStatus is returned when the pool rejects a submission or
	// delivers a failure acknowledgement.
	TransportStatus

	// LedgerStatus is returned when a ledger reply is a rejection (REQNACK
	// or REJECT) instead of a REPLY.
	LedgerStatus

	// GRPCTransportStatus is the status associated with requests made to a
	// pool gateway over gRPC
	GRPCTransportStatus
)

// GroupName maps the groups in this packages to human-readable strings
var GroupName = map[int32]string{
	0: "Unknown",
	1: "Structural Status",
	2: "Validation Status",
	3: "Not Found Status",
	4: "State Status",
	5: "Transport Status",
	6: "Ledger Status",
	7: "gRPC Transport Status",
}

func (g Group) String() string {
	if s, ok := GroupName[int32(g)]; ok {
		return s
	}
	return UnknownStatus.String()
}

// New returns a Status with the given parameters
func New(group Group, code int32, msg string, details []interface{}) *Status {
	return &Status{Group: group, Code: code, Message: msg, Details: details}
}

// Errorf returns a Status in the given group with a formatted message.
func Errorf(group Group, code Code, format string, args ...interface{}) *Status {
	return New(group, code.ToInt32(), fmt.Sprintf(format, args...), nil)
}

// FromError returns a Status representing err if available,
// otherwise it returns nil, false.
func FromError(err error) (s *Status, ok bool) {
	if err == nil {
		return &Status{Code: int32(OK)}, true
	}
	if s, ok := err.(*Status); ok {
		return s, true
	}
	unwrappedErr := errors.Cause(err)
	if s, ok := unwrappedErr.(*Status); ok {
		return s, true
	}
	if m, ok := unwrappedErr.(multi.Errors); ok {
		// Return all of the errors in the details. The group is the one shared
		// by every contained status, if there is one.
		var details []interface{}
		group := groupOf(m)
		for _, err := range m {
			details = append(details, err)
		}
		return New(group, MultipleErrors.ToInt32(), m.Error(), details), true
	}
	if s, ok := grpcstatus.FromError(unwrappedErr); ok {
		return NewFromGRPCStatus(s), true
	}

	return nil, false
}

// IsGroup returns true if err carries a Status of the given group.
func IsGroup(err error, group Group) bool {
	if err == nil {
		return false
	}
	s, ok := FromError(err)
	return ok && s.Group == group
}

func groupOf(errs multi.Errors) Group {
	group := UnknownStatus
	for i, err := range errs {
		s, ok := FromError(err)
		if !ok {
			return UnknownStatus
		}
		if i == 0 {
			group = s.Group
		} else if s.Group != group {
			return UnknownStatus
		}
	}
	return group
}

func (s *Status) Error() string {
	return fmt.Sprintf("%s Code: (%d) %s. Description: %s", s.Group.String(), s.Code, s.codeString(), s.Message)
}

func (s *Status) codeString() string {
	switch s.Group {
	case GRPCTransportStatus:
		return ToGRPCStatusCode(s.Code).String()
	case UnknownStatus:
		return Unknown.String()
	default:
		return ToSDKStatusCode(s.Code).String()
	}
}

// NewFromGRPCStatus new Status from gRPC status response
func NewFromGRPCStatus(s *grpcstatus.Status) *Status {
	if s == nil {
		return nil
	}
	details := make([]interface{}, len(s.Proto().Details))
	for i, detail := range s.Proto().Details {
		details[i] = detail
	}

	return &Status{Group: GRPCTransportStatus, Code: s.Proto().Code,
		Message: s.Message(), Details: details}
}
