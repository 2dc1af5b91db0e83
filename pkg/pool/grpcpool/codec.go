/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package grpcpool

import (
	"encoding/json"

	"github.com/pkg/errors"
	"google.golang.org/grpc/encoding"
)

// codecName is the content subtype used by the gateway ("application/grpc+json")
const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec carries the gateway messages as JSON. Ledger requests and
// replies are JSON documents already, so no schema compiler is involved.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling gateway message failed")
	}
	return raw, nil
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "unmarshalling gateway message failed")
	}
	return nil
}

func (jsonCodec) Name() string {
	return codecName
}
