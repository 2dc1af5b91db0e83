/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpcpool

import (
	"context"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
	"github.com/hyperledger/indy-resolver-go/pkg/ledger/tracker"
)

// Server exposes a pool as a gateway. Every call is submitted to the backend
// and answered once the backend acknowledges it.
type Server struct {
	backend indy.Pool
	handle  indy.PoolHandle
	srv     *grpc.Server
	mutex   sync.Mutex
	tracker *tracker.Tracker
	done    chan struct{}
	started sync.Once
	stopped sync.Once
}

// NewServer creates a gateway for backend. handle must be open on backend.
func NewServer(backend indy.Pool, handle indy.PoolHandle, opts ...grpc.ServerOption) *Server {
	s := &Server{
		backend: backend,
		handle:  handle,
		srv:     grpc.NewServer(opts...),
		tracker: tracker.New(nil),
		done:    make(chan struct{}),
	}
	s.srv.RegisterService(&gatewayServiceDesc, s)
	return s
}

// Serve reads the backend acknowledgements and serves the gateway on lis
// until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	s.started.Do(func() {
		go s.readAcks()
	})
	logger.Infof("pool gateway listening on %s", lis.Addr())
	return s.srv.Serve(lis)
}

// Stop stops the gateway. Calls waiting for an acknowledgement fail.
func (s *Server) Stop() {
	s.stopped.Do(func() {
		s.srv.Stop()
		close(s.done)
		s.tracker.Drain(grpcstatus.Error(codes.Unavailable, "gateway stopped"))
	})
}

// Submit implements the gateway Submit call
func (s *Server) Submit(ctx context.Context, in *SubmitRequest) (*SubmitReply, error) {
	return s.await(ctx, func() (indy.SubmissionID, error) {
		return s.backend.Submit(ctx, s.handle, in.Request)
	})
}

// SubmitAction implements the gateway SubmitAction call
func (s *Server) SubmitAction(ctx context.Context, in *ActionRequest) (*SubmitReply, error) {
	var timeout *time.Duration
	if in.TimeoutMs != nil {
		d := time.Duration(*in.TimeoutMs) * time.Millisecond
		timeout = &d
	}
	return s.await(ctx, func() (indy.SubmissionID, error) {
		return s.backend.SubmitAction(ctx, s.handle, in.Request, in.Nodes, timeout)
	})
}

type reply struct {
	result string
	err    error
}

func (s *Server) await(ctx context.Context, send func() (indy.SubmissionID, error)) (*SubmitReply, error) {
	replies := make(chan reply, 1)

	// the ack reader takes the same lock, so an early ack finds its callback
	s.mutex.Lock()
	id, err := send()
	if err == nil {
		err = s.tracker.Register(id, func(result string, err error) {
			replies <- reply{result: result, err: err}
		})
		if err != nil {
			s.mutex.Unlock()
			return nil, grpcstatus.Error(codes.Internal, err.Error())
		}
	}
	s.mutex.Unlock()
	if err != nil {
		return nil, grpcstatus.Error(rpcCode(err), err.Error())
	}

	select {
	case r := <-replies:
		if r.err != nil {
			if _, ok := grpcstatus.FromError(r.err); ok {
				return nil, r.err
			}
			return nil, grpcstatus.Error(codes.Aborted, r.err.Error())
		}
		return &SubmitReply{Result: r.result}, nil
	case <-ctx.Done():
		return nil, grpcstatus.FromContextError(ctx.Err()).Err()
	}
}

func (s *Server) readAcks() {
	acks := s.backend.Acks()
	for {
		select {
		case ack, ok := <-acks:
			if !ok {
				logger.Debug("backend ack channel closed")
				return
			}
			s.mutex.Lock()
			s.tracker.Resolve(ack.ID, ack.Result, ack.Err)
			s.mutex.Unlock()
		case <-s.done:
			return
		}
	}
}

// rpcCode maps a backend rejection to a gRPC code
func rpcCode(err error) codes.Code {
	if s, ok := status.FromError(err); ok && s.Group == status.TransportStatus {
		switch status.ToSDKStatusCode(s.Code) {
		case status.UnknownPoolHandle:
			return codes.FailedPrecondition
		case status.PoolTimeout:
			return codes.DeadlineExceeded
		}
	}
	return codes.Unavailable
}
