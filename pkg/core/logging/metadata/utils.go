/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/hyperledger/indy-resolver-go/pkg/core/logging/api"
)

// ParseLevel returns the log level named by level, ignoring case.
// "WARN" is accepted as an alias of WARNING.
func ParseLevel(level string) (api.Level, error) {
	if strings.EqualFold(level, "WARN") {
		return api.WARNING, nil
	}
	for l := api.CRITICAL; l <= api.DEBUG; l++ {
		if strings.EqualFold(l.String(), level) {
			return l, nil
		}
	}
	return api.ERROR, errors.Errorf("logger: invalid log level [%s]", level)
}
