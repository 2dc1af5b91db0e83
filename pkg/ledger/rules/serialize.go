/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/hyperledger/indy-resolver-go/pkg/common/errors/status"
)

func serializeSignature(v interface{}, topLevel bool, txnType string) (string, error) {
	switch value := v.(type) {
	case nil:
		return "", nil
	case bool:
		if value {
			return "True", nil
		}
		return "False", nil
	case string:
		return value, nil
	case json.Number:
		return value.String(), nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(value), nil
	case int64:
		return strconv.FormatInt(value, 10), nil
	case uint64:
		return strconv.FormatUint(value, 10), nil
	case []interface{}:
		items := make([]string, 0, len(value))
		for _, item := range value {
			s, err := serializeSignature(item, false, txnType)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return strings.Join(items, ","), nil
	case map[string]interface{}:
		return serializeObject(value, topLevel, txnType)
	default:
		return "", status.Errorf(status.StructuralStatus, status.InvalidStructure, "cannot serialize value of type %T", v)
	}
}

func serializeObject(obj map[string]interface{}, topLevel bool, txnType string) (string, error) {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		if topLevel && (key == "signature" || key == "signatures" || key == "fees") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := obj[key]
		if hashedAttribField(txnType, key) {
			raw, ok := value.(string)
			if !ok {
				return "", status.Errorf(status.StructuralStatus, status.InvalidStructure, "attribute field [%s] must be a string", key)
			}
			digest := sha256.Sum256([]byte(raw))
			value = hex.EncodeToString(digest[:])
		}

		s, err := serializeSignature(value, false, txnType)
		if err != nil {
			return "", err
		}
		parts = append(parts, key+":"+s)
	}
	return strings.Join(parts, "|"), nil
}

func hashedAttribField(txnType, key string) bool {
	if txnType != Attrib && txnType != GetAttr {
		return false
	}
	return key == "raw" || key == "hash" || key == "enc"
}
