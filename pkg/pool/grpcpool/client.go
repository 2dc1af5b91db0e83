/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package grpcpool reaches a pool through a gateway served over gRPC. The
// Client implements indy.Pool; the Server exposes any indy.Pool.
package grpcpool

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/logging"
	"github.com/hyperledger/indy-resolver-go/pkg/common/options"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
)

var logger = logging.NewLogger("indyres/pool")

// Client is an indy.Pool backed by a remote gateway. Pool handles and
// submission ids are local to the client.
type Client struct {
	params
	conn       *grpc.ClientConn
	mutex      sync.RWMutex
	handles    map[indy.PoolHandle]bool
	lastHandle indy.PoolHandle
	lastID     int32
	parsers    map[string]indy.StateProofParser
	acks       chan *indy.Ack
	closed     bool
	wg         sync.WaitGroup
}

// Dial creates a client of the gateway at address. The connection is
// established lazily by the first call.
func Dial(address string, opts ...options.Opt) (*Client, error) {
	params := defaultParams()
	options.Apply(params, opts)

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)),
	}, params.dialOpts...)

	conn, err := grpc.NewClient(address, dialOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "creating gateway client for [%s] failed", address)
	}
	logger.Debugf("gateway client created for %s", address)

	return &Client{
		params:  *params,
		conn:    conn,
		handles: make(map[indy.PoolHandle]bool),
		parsers: make(map[string]indy.StateProofParser),
		acks:    make(chan *indy.Ack, params.ackBufferSize),
	}, nil
}

// Open returns a new pool handle
func (c *Client) Open() indy.PoolHandle {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.lastHandle++
	c.handles[c.lastHandle] = true
	return c.lastHandle
}

// ClosePool releases handle
func (c *Client) ClosePool(handle indy.PoolHandle) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.handles[handle] {
		return unknownHandle(handle)
	}
	delete(c.handles, handle)
	return nil
}

// Submit forwards request to the gateway
func (c *Client) Submit(ctx context.Context, handle indy.PoolHandle, request string) (indy.SubmissionID, error) {
	in := &SubmitRequest{Request: request}
	return c.accept(handle, func() (string, error) {
		return c.invoke(submitMethod, in, c.requestTimeout)
	})
}

// SubmitAction forwards an action request to the gateway
func (c *Client) SubmitAction(ctx context.Context, handle indy.PoolHandle, request string, nodes []string, timeout *time.Duration) (indy.SubmissionID, error) {
	in := &ActionRequest{Request: request, Nodes: nodes}
	wait := c.requestTimeout
	if timeout != nil {
		ms := timeout.Milliseconds()
		in.TimeoutMs = &ms
		wait += *timeout
	}
	return c.accept(handle, func() (string, error) {
		return c.invoke(submitActionMethod, in, wait)
	})
}

// RegisterStateProofParser registers parser for replies of txnType. Parsers
// run in the client on the replies relayed by the gateway.
func (c *Client) RegisterStateProofParser(txnType string, parser indy.StateProofParser) error {
	if txnType == "" {
		return errors.New("transaction type is required")
	}
	if parser == nil {
		return errors.New("parser is required")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.parsers[txnType] = parser
	return nil
}

// Acks returns the acknowledgement channel. It is closed by Close.
func (c *Client) Acks() <-chan *indy.Ack {
	return c.acks
}

// Close waits for the outstanding calls, closes the ack channel and the
// connection.
func (c *Client) Close() error {
	c.mutex.Lock()
	if c.closed {
		c.mutex.Unlock()
		return nil
	}
	c.closed = true
	c.mutex.Unlock()

	c.wg.Wait()
	close(c.acks)
	return c.conn.Close()
}

func (c *Client) accept(handle indy.PoolHandle, call func() (string, error)) (indy.SubmissionID, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.closed {
		return 0, status.Errorf(status.TransportStatus, status.PoolRejected, "gateway client is closed")
	}
	if !c.handles[handle] {
		return 0, unknownHandle(handle)
	}

	id := indy.SubmissionID(atomic.AddInt32(&c.lastID, 1))
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		result, err := call()
		if err == nil {
			err = c.checkStateProof(result)
		}
		c.acks <- &indy.Ack{ID: id, Result: result, Err: err}
	}()
	return id, nil
}

func (c *Client) invoke(method string, in interface{}, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out := new(SubmitReply)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		logger.Debugf("gateway call %s failed: %s", method, err)
		return "", err
	}
	return out.Result, nil
}

func (c *Client) checkStateProof(reply string) error {
	txnType := replyType(reply)
	if txnType == "" {
		return nil
	}

	c.mutex.RLock()
	parser, ok := c.parsers[txnType]
	c.mutex.RUnlock()
	if !ok {
		return nil
	}
	if _, err := parser(reply); err != nil {
		return status.Errorf(status.TransportStatus, status.PoolRejected, "state proof of [%s] reply is invalid: %s", txnType, err)
	}
	return nil
}

// replyType returns the transaction type of a reply: the type of the written
// transaction for writes, the request type for reads.
func replyType(reply string) string {
	doc := struct {
		Result struct {
			Type string `json:"type"`
			Txn  struct {
				Type string `json:"type"`
			} `json:"txn"`
		} `json:"result"`
	}{}
	if err := json.Unmarshal([]byte(reply), &doc); err != nil {
		return ""
	}
	if doc.Result.Txn.Type != "" {
		return doc.Result.Txn.Type
	}
	return doc.Result.Type
}

func unknownHandle(handle indy.PoolHandle) error {
	return status.Errorf(status.TransportStatus, status.UnknownPoolHandle, "pool %d is not open", handle)
}
