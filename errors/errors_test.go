// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	err := errors.New("something went wrong")
	panicErr := NewPanicError(err)
	require.EqualError(t, panicErr, "panic: something went wrong")
	assert.ErrorIs(t, panicErr, err)

	invariantErr := NewInvariantError(ErrAlreadyResolved)
	require.EqualError(t, invariantErr, "invariant violation: component already resolved")
	assert.ErrorIs(t, invariantErr, ErrAlreadyResolved)

	var target *PanicError
	require.ErrorAs(t, Recovered("boom"), &target)
	require.EqualError(t, Recovered(err), "panic: something went wrong")
}

func TestNewErrors(t *testing.T) {
	cause := errors.New("cause")
	testCases := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "invalid name",
			err:      NewErrInvalidName("-x"),
			sentinel: ErrInvalidName,
			message:  "name=(-x) invalid component name",
		},
		{
			name:     "duplicate component",
			err:      NewErrDuplicateComponent("service:a"),
			sentinel: ErrDuplicateComponent,
			message:  "component=(service:a) duplicate component name",
		},
		{
			name:     "duplicate alias",
			err:      NewErrDuplicateAlias("b", "service:a"),
			sentinel: ErrDuplicateAlias,
			message:  "alias=(b) of component=(service:a) duplicate component alias",
		},
		{
			name:     "blacklisted",
			err:      NewErrBlacklisted("service:a"),
			sentinel: ErrBlacklisted,
			message:  "component=(service:a) component is blacklisted",
		},
		{
			name:     "activation",
			err:      NewErrActivationFailure("service:a", cause),
			sentinel: ErrActivationFailure,
			message:  "component=(service:a) component activation failed\ncause",
		},
		{
			name:     "start",
			err:      NewErrStartFailure("service:a", cause),
			sentinel: ErrStartFailure,
			message:  "component=(service:a) component start failed\ncause",
		},
		{
			name:     "service already provided",
			err:      NewErrServiceAlreadyProvided("Search", "a", "b"),
			sentinel: ErrServiceAlreadyProvided,
			message:  "service=(Search) provider=(a) claimant=(b) service already provided",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.EqualError(t, tc.err, tc.message)
			assert.ErrorIs(t, tc.err, tc.sentinel)
		})
	}

	assert.ErrorIs(t, NewErrStopFailure("a", cause), cause)
	assert.ErrorIs(t, NewErrExtensionFailure("a", "p", cause), ErrExtensionFailure)
	assert.ErrorIs(t, NewErrContributionLoadFailure("p", cause), ErrContributionLoadFailure)
	assert.ErrorIs(t, NewErrInvalidRegistration(cause), ErrInvalidRegistration)
}
