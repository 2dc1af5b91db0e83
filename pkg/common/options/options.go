/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package options holds the functional option plumbing shared by the
// executor, the pool collaborators and the SDK.
package options

// Params is any construct that accepts options. Options discover the setters
// they need through type assertions, so a single Opt may be applied to
// several unrelated parameter holders.
type Params interface{}

// Opt is an option that is applied to Params
type Opt func(opts Params)

// Apply applies the given options to the given Params
func Apply(params Params, opts []Opt) {
	for _, opt := range opts {
		if opt != nil {
			opt(params)
		}
	}
}
