/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package multi

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	ruleErr := fmt.Errorf("rule 0: missing field")
	var errs Errors

	assert.Equal(t, "", errs.Error())

	errs = append(errs, ruleErr)
	assert.Equal(t, ruleErr.Error(), errs.Error())

	errs = append(errs, fmt.Errorf("rule 3: missing constraint"))
	assert.Equal(t, "2 errors occurred: - rule 0: missing field - rule 3: missing constraint", errs.Error())
}

func TestNewSkipsNil(t *testing.T) {
	assert.Nil(t, New())
	assert.Nil(t, New(nil, nil))

	only := fmt.Errorf("only")
	assert.Equal(t, only, New(nil, only))

	m, ok := New(only, nil, only).(Errors)
	assert.True(t, ok)
	assert.Len(t, m, 2)
}

func TestAppend(t *testing.T) {
	first := fmt.Errorf("first")
	second := fmt.Errorf("second")

	assert.Nil(t, Append(nil, nil))
	assert.Equal(t, first, Append(nil, first))

	m, ok := Append(first, second).(Errors)
	assert.True(t, ok)
	assert.Equal(t, Errors{first, second}, m)

	assert.Equal(t, Errors{first}, Append(Errors{first}, nil))

	m, ok = Append(Errors{first}, second).(Errors)
	assert.True(t, ok)
	assert.Equal(t, second, m[1])
}

func TestToError(t *testing.T) {
	single := fmt.Errorf("single")
	var errs Errors

	assert.Nil(t, errs.ToError())

	errs = append(errs, single)
	assert.Equal(t, single, errs.ToError())

	errs = append(errs, single)
	assert.Equal(t, errs, errs.ToError())
}

func TestUnwrap(t *testing.T) {
	err := New(fmt.Errorf("rule 0: missing field"), io.ErrUnexpectedEOF)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, errors.Is(err, io.EOF))
}
