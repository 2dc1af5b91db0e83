/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package loopback is an in-process pool. Submissions are answered by a
// Responder, by default a small in-memory ledger, and acknowledged
// asynchronously on the ack channel like a networked pool would.
package loopback

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/options"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
)

var logger = logging.NewLogger("indyres/pool")

// Responder produces the reply of a node to a request
type Responder func(ctx context.Context, node, request string) (string, error)

// Pool is an in-process implementation of indy.Pool
type Pool struct {
	params
	mutex      sync.RWMutex
	handles    map[indy.PoolHandle]bool
	lastHandle indy.PoolHandle
	lastID     int32
	parsers    map[string]indy.StateProofParser
	acks       chan *indy.Ack
	closed     bool
	wg         sync.WaitGroup
}

// New creates a new pool
func New(opts ...options.Opt) *Pool {
	params := defaultParams()
	options.Apply(params, opts)

	p := &Pool{
		params:  *params,
		handles: make(map[indy.PoolHandle]bool),
		parsers: make(map[string]indy.StateProofParser),
		acks:    make(chan *indy.Ack, params.ackBufferSize),
	}
	if p.responder == nil {
		p.responder = newLedger(p.parser).respond
	}
	return p
}

// Open opens a connection to the pool and returns its handle
func (p *Pool) Open() indy.PoolHandle {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.lastHandle++
	p.handles[p.lastHandle] = true
	return p.lastHandle
}

// ClosePool closes the connection identified by handle
func (p *Pool) ClosePool(handle indy.PoolHandle) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.handles[handle] {
		return unknownHandle(handle)
	}
	delete(p.handles, handle)
	return nil
}

// Submit sends request to the first node. The reply is acknowledged on the
// ack channel.
func (p *Pool) Submit(ctx context.Context, handle indy.PoolHandle, request string) (indy.SubmissionID, error) {
	if len(p.nodes) == 0 {
		return 0, status.Errorf(status.TransportStatus, status.PoolRejected, "pool has no nodes")
	}
	node := p.nodes[0]
	return p.accept(handle, request, func() (string, error) {
		return p.responder(context.Background(), node, request)
	})
}

// SubmitAction sends request to the given nodes, or to all nodes when none
// are given. The acknowledged result maps each node to its reply; a node that
// does not answer within timeout is reported as "timeout".
func (p *Pool) SubmitAction(ctx context.Context, handle indy.PoolHandle, request string, nodes []string, timeout *time.Duration) (indy.SubmissionID, error) {
	targets := nodes
	if len(targets) == 0 {
		targets = p.nodes
	}
	for _, node := range targets {
		if !p.hasNode(node) {
			return 0, status.Errorf(status.TransportStatus, status.PoolRejected, "unknown node [%s]", node)
		}
	}
	wait := p.actionTimeout
	if timeout != nil {
		wait = *timeout
	}

	return p.accept(handle, request, func() (string, error) {
		return p.broadcast(request, targets, wait)
	})
}

// RegisterStateProofParser registers parser for txnType. A later
// registration for the same type replaces it.
func (p *Pool) RegisterStateProofParser(txnType string, parser indy.StateProofParser) error {
	if txnType == "" {
		return errors.New("transaction type is required")
	}
	if parser == nil {
		return errors.New("parser is required")
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.parsers[txnType] = parser
	return nil
}

// Acks returns the channel on which submissions are acknowledged. It is
// closed by Close.
func (p *Pool) Acks() <-chan *indy.Ack {
	return p.acks
}

// Close waits for the outstanding replies and closes the ack channel.
func (p *Pool) Close() {
	p.mutex.Lock()
	if p.closed {
		p.mutex.Unlock()
		return
	}
	p.closed = true
	p.mutex.Unlock()

	p.wg.Wait()
	close(p.acks)
}

func (p *Pool) accept(handle indy.PoolHandle, request string, respond func() (string, error)) (indy.SubmissionID, error) {
	if !json.Valid([]byte(request)) {
		return 0, status.Errorf(status.TransportStatus, status.PoolRejected, "request is not valid JSON")
	}

	p.mutex.RLock()
	defer p.mutex.RUnlock()

	if p.closed {
		return 0, status.Errorf(status.TransportStatus, status.PoolRejected, "pool is closed")
	}
	if !p.handles[handle] {
		return 0, unknownHandle(handle)
	}

	id := indy.SubmissionID(atomic.AddInt32(&p.lastID, 1))
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		result, err := respond()
		logger.Debugf("acknowledging submission %d", id)
		p.acks <- &indy.Ack{ID: id, Result: result, Err: err}
	}()
	return id, nil
}

type nodeReply struct {
	node  string
	reply string
}

func (p *Pool) broadcast(request string, nodes []string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	replies := make(chan nodeReply, len(nodes))
	for _, node := range nodes {
		go func(node string) {
			reply, err := p.responder(ctx, node, request)
			if err != nil {
				reply = err.Error()
			}
			replies <- nodeReply{node: node, reply: reply}
		}(node)
	}

	result := make(map[string]string, len(nodes))
	for _, node := range nodes {
		result[node] = "timeout"
	}
	for range nodes {
		select {
		case r := <-replies:
			result[r.node] = r.reply
		case <-ctx.Done():
			logger.Warnf("action timed out after %s", timeout)
			return marshalReplies(result)
		}
	}
	return marshalReplies(result)
}

func marshalReplies(result map[string]string) (string, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return "", status.Errorf(status.StateStatus, status.InvalidState, "cannot serialize node replies: %s", err)
	}
	return string(raw), nil
}

func (p *Pool) hasNode(node string) bool {
	for _, n := range p.nodes {
		if n == node {
			return true
		}
	}
	return false
}

func (p *Pool) parser(txnType string) (indy.StateProofParser, bool) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	parser, ok := p.parsers[txnType]
	return parser, ok
}

func unknownHandle(handle indy.PoolHandle) error {
	return status.Errorf(status.TransportStatus, status.UnknownPoolHandle, "pool %d is not open", handle)
}
