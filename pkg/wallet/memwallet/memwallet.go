/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package memwallet is an in-memory wallet holding DID and key records.
// Records are kept in clear; it is meant for tests and tooling.
package memwallet

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/crypto/ed25519suite"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/did"
)

var logger = logging.NewLogger("indyres/wallet")

type recordKey struct {
	recordType string
	id         string
}

type store map[recordKey]indy.Record

// Wallet is an in-memory implementation of indy.Wallet. Several wallets may
// be open at once, each identified by its handle.
type Wallet struct {
	mutex      sync.RWMutex
	stores     map[indy.WalletHandle]store
	lastHandle indy.WalletHandle
}

// New creates a new Wallet instance
func New() *Wallet {
	return &Wallet{stores: make(map[indy.WalletHandle]store)}
}

// Open opens an empty wallet and returns its handle
func (w *Wallet) Open() indy.WalletHandle {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.lastHandle++
	w.stores[w.lastHandle] = make(store)
	logger.Debugf("opened wallet %d", w.lastHandle)
	return w.lastHandle
}

// Close closes the wallet and discards its records
func (w *Wallet) Close(handle indy.WalletHandle) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, ok := w.stores[handle]; !ok {
		return unknownHandle(handle)
	}
	delete(w.stores, handle)
	return nil
}

// Add stores a record. A record of the same type and id must not exist.
func (w *Wallet) Add(handle indy.WalletHandle, record indy.Record) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	s, ok := w.stores[handle]
	if !ok {
		return unknownHandle(handle)
	}
	key := recordKey{recordType: record.Type, id: record.ID}
	if _, exists := s[key]; exists {
		return errors.Errorf("%s record [%s] already exists", record.Type, record.ID)
	}
	s[key] = copyRecord(record)
	return nil
}

// Lookup returns the record of the given type and id with the parts selected
// by options. The id is always returned.
func (w *Wallet) Lookup(ctx context.Context, handle indy.WalletHandle, recordType, id string, options indy.RecordOptions) (*indy.Record, error) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	s, ok := w.stores[handle]
	if !ok {
		return nil, unknownHandle(handle)
	}
	record, ok := s[recordKey{recordType: recordType, id: id}]
	if !ok {
		return nil, status.Errorf(status.NotFoundStatus, status.WalletItemNotFound, "%s record [%s] not found", recordType, id)
	}

	found := copyRecord(record)
	if !options.RetrieveType {
		found.Type = ""
	}
	if !options.RetrieveValue {
		found.Value = ""
	}
	if !options.RetrieveTags {
		found.Tags = nil
	}
	return &found, nil
}

// CreateAndStoreDID creates a key from seed, random when seed is empty, and
// stores it together with the DID derived from its verkey.
func (w *Wallet) CreateAndStoreDID(handle indy.WalletHandle, seed []byte) (*indy.Did, error) {
	key, err := ed25519suite.NewKey(seed)
	if err != nil {
		return nil, err
	}
	verkey, err := base58.Decode(key.Verkey)
	if err != nil {
		return nil, errors.Wrap(err, "decoding verkey failed")
	}
	id, err := did.FromVerkey(verkey)
	if err != nil {
		return nil, err
	}

	myDid := &indy.Did{Did: id, Verkey: key.Verkey}
	didValue, err := json.Marshal(myDid)
	if err != nil {
		return nil, errors.Wrap(err, "serializing DID failed")
	}
	keyValue, err := json.Marshal(key)
	if err != nil {
		return nil, errors.Wrap(err, "serializing key failed")
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	s, ok := w.stores[handle]
	if !ok {
		return nil, unknownHandle(handle)
	}
	didKey := recordKey{recordType: indy.DidRecordType, id: id}
	if _, exists := s[didKey]; exists {
		return nil, errors.Errorf("DID [%s] already exists", id)
	}
	s[didKey] = indy.Record{Type: indy.DidRecordType, ID: id, Value: string(didValue)}
	s[recordKey{recordType: indy.KeyRecordType, id: key.Verkey}] = indy.Record{Type: indy.KeyRecordType, ID: key.Verkey, Value: string(keyValue)}

	logger.Debugf("stored DID %s in wallet %d", id, handle)
	return myDid, nil
}

func copyRecord(record indy.Record) indy.Record {
	if record.Tags != nil {
		tags := make(map[string]string, len(record.Tags))
		for k, v := range record.Tags {
			tags[k] = v
		}
		record.Tags = tags
	}
	return record
}

func unknownHandle(handle indy.WalletHandle) error {
	return status.Errorf(status.NotFoundStatus, status.WalletItemNotFound, "wallet %d is not open", handle)
}
