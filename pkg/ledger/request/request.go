/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package request

import (
	"bytes"
	"encoding/json"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
)

const (
	reqIDField           = "reqId"
	identifierField      = "identifier"
	operationField       = "operation"
	protocolVersionField = "protocolVersion"
	taaAcceptanceField   = "taaAcceptance"
	endorserField        = "endorser"
	signatureField       = "signature"
	signaturesField      = "signatures"
)

// Request is the envelope of a ledger transaction request.
type Request struct {
	ReqID           uint64
	Identifier      string
	Operation       json.RawMessage
	ProtocolVersion int
	TaaAcceptance   *indy.AcceptanceData
	Endorser        string
	Auth            Auth

	// fields the envelope does not know about, kept verbatim
	extra map[string]json.RawMessage
}

// Parse decodes a request document. reqId and an object operation are
// required; unknown top level fields are kept and written back by Marshal.
func Parse(doc string) (*Request, error) {
	req := &Request{}
	if err := json.Unmarshal([]byte(doc), req); err != nil {
		if _, ok := status.FromError(err); ok {
			return nil, err
		}
		return nil, status.Errorf(status.StructuralStatus, status.InvalidJSON, "invalid request json: %s", err)
	}
	return req, nil
}

// JSON returns the serialized request
func (r *Request) JSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", status.Errorf(status.StateStatus, status.InvalidState, "cannot serialize request: %s", err)
	}
	return string(b), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Request) UnmarshalJSON(b []byte) error {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return status.Errorf(status.StructuralStatus, status.InvalidStructure, "request is not a JSON object: %s", err)
	}

	decoded := Request{}
	if err := decodeField(fields, reqIDField, &decoded.ReqID, true); err != nil {
		return err
	}

	op, ok := fields[operationField]
	if !ok {
		return status.Errorf(status.StructuralStatus, status.MissingField, "request has no %s", operationField)
	}
	if trimmed := bytes.TrimSpace(op); len(trimmed) == 0 || trimmed[0] != '{' {
		return status.Errorf(status.StructuralStatus, status.InvalidStructure, "request %s is not an object", operationField)
	}
	decoded.Operation = append(json.RawMessage(nil), op...)
	delete(fields, operationField)

	if err := decodeField(fields, identifierField, &decoded.Identifier, false); err != nil {
		return err
	}
	if err := decodeField(fields, protocolVersionField, &decoded.ProtocolVersion, false); err != nil {
		return err
	}
	if err := decodeField(fields, endorserField, &decoded.Endorser, false); err != nil {
		return err
	}
	if err := decodeField(fields, taaAcceptanceField, &decoded.TaaAcceptance, false); err != nil {
		return err
	}

	var signature *string
	var signatures map[string]string
	if err := decodeField(fields, signatureField, &signature, false); err != nil {
		return err
	}
	if err := decodeField(fields, signaturesField, &signatures, false); err != nil {
		return err
	}
	decoded.Auth = authFrom(decoded.Identifier, signature, signatures)

	if len(fields) > 0 {
		decoded.extra = fields
	}
	*r = decoded
	return nil
}

// MarshalJSON implements json.Marshaler
func (r *Request) MarshalJSON() ([]byte, error) {
	fields := make(map[string]interface{}, len(r.extra)+8)
	for k, v := range r.extra {
		fields[k] = v
	}

	fields[reqIDField] = r.ReqID
	operation := r.Operation
	if len(operation) == 0 {
		operation = json.RawMessage("{}")
	}
	fields[operationField] = operation
	if r.Identifier != "" {
		fields[identifierField] = r.Identifier
	}
	if r.ProtocolVersion != 0 {
		fields[protocolVersionField] = r.ProtocolVersion
	}
	if r.Endorser != "" {
		fields[endorserField] = r.Endorser
	}
	if r.TaaAcceptance != nil {
		fields[taaAcceptanceField] = r.TaaAcceptance
	}

	switch r.Auth.Kind() {
	case Single:
		fields[signatureField] = r.Auth.signature
	case Multi:
		fields[signaturesField] = r.Auth.signatures
	}

	return json.Marshal(fields)
}

// OperationType returns operation.type, or the empty string
func (r *Request) OperationType() string {
	op := struct {
		Type string `json:"type"`
	}{}
	if err := json.Unmarshal(r.Operation, &op); err != nil {
		return ""
	}
	return op.Type
}

// authFrom normalizes an input that carries both fields into a Multi region.
func authFrom(identifier string, signature *string, signatures map[string]string) Auth {
	switch {
	case signatures != nil && signature != nil:
		auth := MultiAuth(signatures)
		if _, exists := auth.signatures[identifier]; !exists && identifier != "" {
			auth.signatures[identifier] = *signature
		}
		return auth
	case signatures != nil:
		return MultiAuth(signatures)
	case signature != nil:
		return SingleAuth(*signature)
	default:
		return UnsignedAuth()
	}
}

func decodeField(fields map[string]json.RawMessage, name string, target interface{}, required bool) error {
	raw, ok := fields[name]
	if !ok {
		if required {
			return status.Errorf(status.StructuralStatus, status.MissingField, "request has no %s", name)
		}
		return nil
	}
	delete(fields, name)
	if err := json.Unmarshal(raw, target); err != nil {
		return status.Errorf(status.StructuralStatus, status.InvalidStructure, "invalid request field %s: %s", name, err)
	}
	return nil
}
