/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package tracker maps accepted submissions to the callbacks waiting for
// their acknowledgement. Each callback is invoked at most once.
package tracker

import (
	"sync"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/metrics"
)

var logger = logging.NewLogger("indyres/ledger")

// Callback receives the outcome of a submission
type Callback func(result string, err error)

// Tracker holds the pending submissions
type Tracker struct {
	mutex   sync.Mutex
	pending map[indy.SubmissionID]Callback
	metrics *metrics.ExecutorMetrics
}

// New returns an empty tracker. m may be nil.
func New(m *metrics.ExecutorMetrics) *Tracker {
	return &Tracker{
		pending: make(map[indy.SubmissionID]Callback),
		metrics: m,
	}
}

// Register stores cb under id. An id that is already pending is refused and
// the registered callback is kept.
func (t *Tracker) Register(id indy.SubmissionID, cb Callback) error {
	if cb == nil {
		return status.Errorf(status.StateStatus, status.InvalidState, "nil callback for submission %d", id)
	}

	t.mutex.Lock()
	if _, exists := t.pending[id]; exists {
		t.mutex.Unlock()
		return status.Errorf(status.StateStatus, status.DuplicateSubmission, "submission %d is already pending", id)
	}
	t.pending[id] = cb
	n := len(t.pending)
	t.mutex.Unlock()

	t.metrics.SetPending(n)
	logger.Debugf("registered submission %d", id)
	return nil
}

// Resolve removes the callback registered under id and invokes it. It
// returns false, and invokes nothing, when no callback is registered.
func (t *Tracker) Resolve(id indy.SubmissionID, result string, err error) bool {
	t.mutex.Lock()
	cb, exists := t.pending[id]
	delete(t.pending, id)
	n := len(t.pending)
	t.mutex.Unlock()

	if !exists {
		logger.Errorf("no callback registered for acknowledged submission %d; dropping result", id)
		t.metrics.OrphanAck()
		return false
	}

	t.metrics.SetPending(n)
	t.metrics.AckReceived(err)
	cb(result, err)
	return true
}

// Pending returns the number of submissions waiting for an acknowledgement
func (t *Tracker) Pending() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.pending)
}

// Drain invokes every pending callback with err and forgets them.
func (t *Tracker) Drain(err error) int {
	t.mutex.Lock()
	pending := t.pending
	t.pending = make(map[indy.SubmissionID]Callback)
	t.mutex.Unlock()

	for id, cb := range pending {
		logger.Debugf("draining submission %d", id)
		cb("", err)
	}
	t.metrics.SetPending(0)
	return len(pending)
}
