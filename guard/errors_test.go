//go:build unit

package guard

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArgumentError_DefaultMessage(t *testing.T) {
	t.Parallel()

	err := NewArgumentError("userID")

	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, `The value of "userID" is invalid.`, argErr.Error())
	assert.Equal(t, "userID", argErr.Parameter())
	assert.Equal(t, KindArgument, argErr.Kind())
	assert.Equal(t, ErrorKind("ArgumentError"), argErr.Kind())
	require.ErrorIs(t, err, ErrArgument)
}

func TestNewArgumentError_FirstNonEmptyMessageWins(t *testing.T) {
	t.Parallel()

	require.EqualError(t, NewArgumentError("amount", "amount must be positive."), "amount must be positive.")
	require.EqualError(t, NewArgumentError("amount", "", "second"), "second")
	require.EqualError(t, NewArgumentError("amount", ""), `The value of "amount" is invalid.`)
}

func TestNewArgumentError_EmptyParameterNameIsMissingValue(t *testing.T) {
	t.Parallel()

	err := NewArgumentError("", "ignored")

	var missing *MissingValueError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "parameterName", missing.Parameter())
	assert.Equal(t, "parameterName is not defined.", err.Error())
	require.ErrorIs(t, err, ErrMissingValue)
	require.NotErrorIs(t, err, ErrArgument)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      Error
		message  string
		kind     ErrorKind
		sentinel error
		param    string
	}{
		{
			name:     "missing value",
			err:      &MissingValueError{ParameterName: "config"},
			message:  "config is not defined.",
			kind:     KindMissingValue,
			sentinel: ErrMissingValue,
			param:    "config",
		},
		{
			name:     "type mismatch",
			err:      newTypeMismatch("count", "Number"),
			message:  "count is not of expected type: Number.",
			kind:     KindTypeMismatch,
			sentinel: ErrTypeMismatch,
			param:    "count",
		},
		{
			name:     "type mismatch without message",
			err:      &TypeMismatchError{},
			message:  ErrTypeMismatch.Error(),
			kind:     KindTypeMismatch,
			sentinel: ErrTypeMismatch,
		},
		{
			name:     "range",
			err:      &RangeError{Value: 1, Domain: "Status"},
			message:  "1 is not a valid value of Status.",
			kind:     KindRange,
			sentinel: ErrOutOfRange,
			param:    "Status",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.message, tt.err.Error())
			assert.Equal(t, tt.kind, tt.err.Kind())
			assert.Equal(t, tt.param, tt.err.Parameter())
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestNilReceivers(t *testing.T) {
	t.Parallel()

	var argErr *ArgumentError
	var missing *MissingValueError
	var mismatch *TypeMismatchError
	var rangeErr *RangeError

	assert.Equal(t, ErrArgument.Error(), argErr.Error())
	assert.Equal(t, ErrMissingValue.Error(), missing.Error())
	assert.Equal(t, ErrTypeMismatch.Error(), mismatch.Error())
	assert.Equal(t, ErrOutOfRange.Error(), rangeErr.Error())

	assert.Empty(t, argErr.Parameter())
	assert.Empty(t, missing.Parameter())
	assert.Empty(t, mismatch.Parameter())
	assert.Empty(t, rangeErr.Parameter())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("create account: %w", &RangeError{Value: "XYZ", Domain: "Currency"})

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindRange, kind)
	require.ErrorIs(t, wrapped, ErrOutOfRange)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)

	_, ok = KindOf(nil)
	assert.False(t, ok)
}
