/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	reqContext "context"
	"time"

	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/common/providers/indy"
)

// ClientOption describes a functional parameter for the New constructor
type ClientOption func(*Client) error

// WithPoolHandle sets the pool that requests are submitted to
func WithPoolHandle(handle indy.PoolHandle) ClientOption {
	return func(c *Client) error {
		c.pool = handle
		return nil
	}
}

// WithWalletHandle sets the wallet holding the signing keys
func WithWalletHandle(handle indy.WalletHandle) ClientOption {
	return func(c *Client) error {
		c.wallet = handle
		return nil
	}
}

// WithDefaultTimeout bounds how long blocking calls wait for a response
// unless a request sets its own timeout. Zero waits until the response.
func WithDefaultTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) error {
		if timeout < 0 {
			return errors.Errorf("invalid default timeout %s", timeout)
		}
		c.timeout = timeout
		return nil
	}
}

//RequestOption func for each requestOptions argument
type RequestOption func(opts *requestOptions) error

//requestOptions contains options for blocking calls
type requestOptions struct {
	Timeout       time.Duration      // how long the caller waits for the response
	ParentContext reqContext.Context // parent context of the wait
}

//WithTimeout bounds the wait for the response. The submission itself is not
//cancelled: its callback still completes when the pool acknowledges it.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(o *requestOptions) error {
		if timeout < 0 {
			return errors.Errorf("invalid timeout %s", timeout)
		}
		o.Timeout = timeout
		return nil
	}
}

//WithParentContext encapsulates the parent context of the wait
func WithParentContext(parentContext reqContext.Context) RequestOption {
	return func(o *requestOptions) error {
		o.ParentContext = parentContext
		return nil
	}
}
