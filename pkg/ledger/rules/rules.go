/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package rules implements the ledger rules applied to requests and replies:
// action validation, the canonical form that is signed, reply metadata
// extraction and transaction author agreement acceptance.
package rules

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
)

var logger = logging.NewLogger("indyres/ledger")

const secondsPerDay = 86400

// Rules is the ledger rules collaborator
type Rules struct{}

// New returns the ledger rules
func New() *Rules {
	return &Rules{}
}

type operationEnvelope struct {
	Operation map[string]interface{} `json:"operation"`
}

// ValidateAction accepts POOL_RESTART and GET_VALIDATOR_INFO requests only.
func (r *Rules) ValidateAction(request string) error {
	envelope := operationEnvelope{}
	if err := json.Unmarshal([]byte(request), &envelope); err != nil {
		return status.Errorf(status.StructuralStatus, status.InvalidJSON, "invalid request json: %s", err)
	}
	if envelope.Operation == nil {
		return status.Errorf(status.StructuralStatus, status.MissingField, "request has no operation")
	}

	txnType, ok := envelope.Operation["type"].(string)
	if !ok {
		return status.Errorf(status.StructuralStatus, status.MissingField, "no valid type field in request operation")
	}

	switch txnType {
	case PoolRestart, GetValidatorInfo:
		return nil
	default:
		return status.Errorf(status.ValidationStatus, status.ActionNotAllowed,
			"request type [%s] is not an action: expected POOL_RESTART or GET_VALIDATOR_INFO", txnType)
	}
}

// SerializeForSignature returns the canonical form of request: keys sorted,
// "key:value" pairs joined by "|", array items joined by ",". The top level
// signature, signatures and fees fields are excluded. For ATTRIB and GET_ATTR
// the raw, hash and enc values are replaced by their hex SHA-256 digest.
func (r *Rules) SerializeForSignature(request map[string]interface{}) (string, error) {
	txnType := ""
	if op, ok := request["operation"].(map[string]interface{}); ok {
		txnType, _ = op["type"].(string)
	}
	return serializeSignature(request, true, txnType)
}

type replyEnvelope struct {
	Op     string          `json:"op"`
	Reason string          `json:"reason"`
	Result json.RawMessage `json:"result"`
	Data   *struct {
		Result []struct {
			Result json.RawMessage `json:"result"`
		} `json:"result"`
	} `json:"data"`
}

// ParseResponseMetadata extracts the metadata of a REPLY. Both the legacy
// transaction format and version "1" are understood.
func (r *Rules) ParseResponseMetadata(response string) (*indy.ResponseMetadata, error) {
	reply := replyEnvelope{}
	if err := json.Unmarshal([]byte(response), &reply); err != nil {
		return nil, status.Errorf(status.StructuralStatus, status.InvalidJSON, "cannot deserialize ledger response: %s", err)
	}

	switch reply.Op {
	case "REPLY":
	case "REJECT":
		return nil, status.Errorf(status.LedgerStatus, status.LedgerRejected, "transaction has been rejected: %s", reply.Reason)
	case "REQNACK":
		return nil, status.Errorf(status.LedgerStatus, status.LedgerNack, "transaction has been failed: %s", reply.Reason)
	default:
		return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure, "unexpected ledger response op [%s]", reply.Op)
	}

	raw := reply.Result
	if len(raw) == 0 && reply.Data != nil && len(reply.Data.Result) > 0 {
		raw = reply.Data.Result[0].Result
	}
	if len(raw) == 0 {
		return nil, status.Errorf(status.StructuralStatus, status.MissingField, "ledger response has no result")
	}

	result := map[string]interface{}{}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&result); err != nil {
		return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure, "ledger response result is not an object: %s", err)
	}

	switch ver := result["ver"].(type) {
	case nil:
		return &indy.ResponseMetadata{
			SeqNo:       uintAt(result, "seqNo"),
			TxnTime:     uintAt(result, "txnTime"),
			LastTxnTime: uintAt(result, "state_proof", "multi_signature", "value", "timestamp"),
		}, nil
	case string:
		if ver != "1" {
			return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure, "unsupported transaction response version [%s]", ver)
		}
		return &indy.ResponseMetadata{
			SeqNo:       uintAt(result, "txnMetadata", "seqNo"),
			TxnTime:     uintAt(result, "txnMetadata", "txnTime"),
			LastTxnTime: uintAt(result, "multiSignature", "signedState", "stateMetadata", "timestamp"),
		}, nil
	default:
		return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure, "unsupported transaction response version [%v]", ver)
	}
}

// PrepareAcceptanceData builds the acceptance of a transaction author
// agreement. Either text and version, or the digest, must be given; when all
// three are given the digest must match. The acceptance time is truncated to
// the start of its UTC day.
func (r *Rules) PrepareAcceptanceData(text, version, digest *string, mechanism string, time uint64) (*indy.AcceptanceData, error) {
	var taaDigest string
	switch {
	case text == nil && version == nil && digest == nil:
		return nil, status.Errorf(status.StructuralStatus, status.MissingField,
			"invalid combination of params: either text and version or the agreement digest must be passed")
	case (text == nil) != (version == nil):
		return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure,
			"invalid combination of params: text and version should be passed or skipped together")
	case text == nil:
		taaDigest = *digest
	default:
		taaDigest = CalculateTaaDigest(*text, *version)
		if digest != nil && *digest != taaDigest {
			return nil, status.Errorf(status.StructuralStatus, status.InvalidStructure,
				"calculated digest of version and text [%s] does not equal the passed digest [%s]", taaDigest, *digest)
		}
	}

	if mechanism == "" {
		return nil, status.Errorf(status.StructuralStatus, status.MissingField, "acceptance mechanism is required")
	}

	return &indy.AcceptanceData{
		Mechanism: mechanism,
		TaaDigest: taaDigest,
		Time:      time / secondsPerDay * secondsPerDay,
	}, nil
}

// CalculateTaaDigest returns hex(sha256(version || text)).
func CalculateTaaDigest(text, version string) string {
	h := sha256.New()
	h.Write([]byte(version))
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func uintAt(m map[string]interface{}, path ...string) *uint64 {
	var current interface{} = m
	for _, key := range path {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = obj[key]
	}

	n, ok := current.(json.Number)
	if !ok {
		return nil
	}
	v, err := parseUint(n)
	if err != nil {
		logger.Debugf("ignoring non integer metadata value at %v: %s", path, err)
		return nil
	}
	return &v
}

func parseUint(n json.Number) (uint64, error) {
	v, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid unsigned integer [%s]", n)
	}
	return v, nil
}

var _ indy.Rules = (*Rules)(nil)
