/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package loopback

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/request"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/rules"
)

// memLedger orders write requests into a single transaction log and answers
// reads from it.
type memLedger struct {
	mutex  sync.Mutex
	txns   []json.RawMessage
	parser func(txnType string) (indy.StateProofParser, bool)
	now    func() time.Time
}

func newLedger(parser func(txnType string) (indy.StateProofParser, bool)) *memLedger {
	return &memLedger{parser: parser, now: time.Now}
}

type txn struct {
	Type            string          `json:"type"`
	Data            json.RawMessage `json:"data"`
	ProtocolVersion int             `json:"protocolVersion"`
	Metadata        txnMetadata     `json:"metadata"`
}

type txnMetadata struct {
	ReqID uint64 `json:"reqId"`
	From  string `json:"from,omitempty"`
}

type writeResult struct {
	Ver         string `json:"ver"`
	Txn         txn    `json:"txn"`
	TxnMetadata struct {
		SeqNo   uint64 `json:"seqNo"`
		TxnTime uint64 `json:"txnTime"`
	} `json:"txnMetadata"`
}

type readResult struct {
	Type       string          `json:"type"`
	ReqID      uint64          `json:"reqId"`
	Identifier string          `json:"identifier,omitempty"`
	SeqNo      *uint64         `json:"seqNo,omitempty"`
	Data       json.RawMessage `json:"data"`
}

type reply struct {
	Op         string      `json:"op"`
	ReqID      uint64      `json:"reqId,omitempty"`
	Identifier string      `json:"identifier,omitempty"`
	Reason     string      `json:"reason,omitempty"`
	Result     interface{} `json:"result,omitempty"`
}

func (l *memLedger) respond(ctx context.Context, node, doc string) (string, error) {
	req, err := request.Parse(doc)
	if err != nil {
		return marshalReply(reply{Op: "REQNACK", Reason: "client request invalid: " + err.Error()})
	}

	txnType := req.OperationType()
	switch txnType {
	case rules.GetValidatorInfo:
		info, err := json.Marshal(map[string]interface{}{"alias": node, "transactions": l.size()})
		if err != nil {
			return "", errors.Wrap(err, "serializing validator info failed")
		}
		return marshalReply(reply{Op: "REPLY", Result: readResult{Type: txnType, ReqID: req.ReqID, Identifier: req.Identifier, Data: info}})
	case rules.GetTxn:
		return l.getTxn(req)
	case rules.GetTxnAuthrAgrmt, rules.GetTxnAuthrAgrmtAML, rules.GetAuthRule, rules.GetNym, rules.GetAttr,
		rules.GetSchema, rules.GetCredDef, rules.GetRevRegDef, rules.GetRevReg, rules.GetRevRegDelta:
		return marshalReply(reply{Op: "REPLY", Result: readResult{Type: txnType, ReqID: req.ReqID, Identifier: req.Identifier, Data: json.RawMessage("null")}})
	}

	if req.Auth.Kind() == request.Unsigned {
		return marshalReply(reply{Op: "REQNACK", ReqID: req.ReqID, Identifier: req.Identifier, Reason: "client request invalid: MissingSignature()"})
	}
	return l.write(req, txnType)
}

func (l *memLedger) write(req *request.Request, txnType string) (string, error) {
	data := map[string]json.RawMessage{}
	if err := json.Unmarshal(req.Operation, &data); err != nil {
		return "", errors.Wrap(err, "decoding operation failed")
	}
	delete(data, "type")
	rawData, err := json.Marshal(data)
	if err != nil {
		return "", errors.Wrap(err, "encoding transaction data failed")
	}

	result := writeResult{
		Ver: "1",
		Txn: txn{
			Type:            txnType,
			Data:            rawData,
			ProtocolVersion: req.ProtocolVersion,
			Metadata:        txnMetadata{ReqID: req.ReqID, From: req.Identifier},
		},
	}
	result.TxnMetadata.TxnTime = uint64(l.now().Unix())

	l.mutex.Lock()
	result.TxnMetadata.SeqNo = uint64(len(l.txns) + 1)
	stored, err := json.Marshal(result)
	if err == nil {
		l.txns = append(l.txns, stored)
	}
	l.mutex.Unlock()
	if err != nil {
		return "", errors.Wrap(err, "encoding transaction failed")
	}

	doc, err := marshalReply(reply{Op: "REPLY", Result: result})
	if err != nil {
		return "", err
	}
	if parser, ok := l.parser(txnType); ok {
		if _, err := parser(doc); err != nil {
			return "", status.Errorf(status.TransportStatus, status.PoolRejected, "state proof of [%s] reply is invalid: %s", txnType, err)
		}
	}
	return doc, nil
}

func (l *memLedger) getTxn(req *request.Request) (string, error) {
	op := struct {
		Data int64 `json:"data"`
	}{}
	if err := json.Unmarshal(req.Operation, &op); err != nil {
		return marshalReply(reply{Op: "REQNACK", ReqID: req.ReqID, Reason: "invalid GET_TXN data: " + err.Error()})
	}

	seqNo := uint64(op.Data)
	result := readResult{Type: rules.GetTxn, ReqID: req.ReqID, Identifier: req.Identifier, SeqNo: &seqNo, Data: json.RawMessage("null")}

	l.mutex.Lock()
	if op.Data > 0 && op.Data <= int64(len(l.txns)) {
		result.Data = l.txns[op.Data-1]
	}
	l.mutex.Unlock()

	return marshalReply(reply{Op: "REPLY", Result: result})
}

func (l *memLedger) size() int {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return len(l.txns)
}

func marshalReply(r reply) (string, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return "", status.Errorf(status.StateStatus, status.InvalidState, "cannot serialize reply: %s", err)
	}
	return string(raw), nil
}
