package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrCapabilityUnavailable, "pah", "Vesting", "")

	assert.Equal(t, CodeCapabilityUnavailable, err.Code)
	assert.Equal(t, "pah", err.Chain)
	assert.Equal(t, "Vesting", err.Module)
	assert.Equal(t, "[pah/Vesting] module is not part of the chain runtime", err.Error())
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidArgument)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrInvalidArgument, "", "Assets", "invalid asset id %q", "abc")
	assert.Equal(t, `[Assets] invalid asset id "abc"`, err.Error())
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  &Error{Code: "X", Message: "boom"},
			want: "boom",
		},
		{
			name: "chain only",
			err:  &Error{Code: "X", Message: "boom", Chain: "kusama"},
			want: "[kusama] boom",
		},
		{
			name: "details sorted",
			err: &Error{Code: "X", Message: "boom", Details: map[string]string{
				"b": "2",
				"a": "1",
			}},
			want: "boom (a: 1) (b: 2)",
		},
		{
			name: "with cause",
			err:  &Error{Code: "X", Message: "boom", Chain: "pah", Module: "System", Cause: fmt.Errorf("rpc down")},
			want: "[pah/System] boom: rpc down",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("timeout")

	err := Wrap(ErrAggregateFailure, "polkadot", "Balances", cause, "failed to get balances")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAggregateFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeAggregateFailure, Code(err))

	assert.NoError(t, Wrap(ErrAggregateFailure, "polkadot", "Balances", nil, "unused"))
}

func TestWithDetails(t *testing.T) {
	t.Run("structured", func(t *testing.T) {
		base := New(ErrInvariantViolation, "", "", "")
		err := WithDetails(base, map[string]string{"total": "10"})

		var e *Error
		require.True(t, As(err, &e))
		assert.Equal(t, CodeInvariantViolation, e.Code)
		assert.Equal(t, "10", e.Details["total"])
		assert.Empty(t, base.Details)
	})

	t.Run("plain", func(t *testing.T) {
		err := WithDetails(stderrors.New("plain"), map[string]string{"k": "v"})
		assert.Equal(t, CodeGeneral, Code(err))
		assert.Contains(t, err.Error(), "(k: v)")
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, WithDetails(nil, map[string]string{"k": "v"}))
	})
}

func TestCode(t *testing.T) {
	assert.Equal(t, CodeGeneral, Code(stderrors.New("x")))
	assert.Equal(t, CodeChainNotFound, Code(fmt.Errorf("wrapped: %w", New(ErrChainNotFound, "abc", "", ""))))
	assert.True(t, Is(New(ErrNotConnected, "", "", ""), ErrNotConnected))
}
