package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "sentinel", err: ErrInvalidRequest, want: true},
		{name: "wrapped", err: fmt.Errorf("%w: origin is required", ErrInvalidRequest), want: true},
		{name: "double wrapped", err: fmt.Errorf("normalize: %w", fmt.Errorf("%w: bad date", ErrInvalidRequest)), want: true},
		{name: "other error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInvalidRequest(tt.err))
		})
	}
}

func TestIsNotImplemented(t *testing.T) {
	assert.True(t, IsNotImplemented(ErrNotImplemented))
	assert.True(t, IsNotImplemented(fmt.Errorf("scoot: %w", ErrNotImplemented)))
	assert.False(t, IsNotImplemented(errors.New("boom")))
}

func TestSourceError(t *testing.T) {
	err := NewSourceError(SourceRateLimited, "too many requests for %s", "TPE-NRT")

	assert.Equal(t, SourceRateLimited, err.Kind)
	assert.Contains(t, err.Error(), "rate_limited")
	assert.Contains(t, err.Error(), "TPE-NRT")
}

func TestAsSourceError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		err := NewSourceError(SourceAuth, "token rejected")
		se, ok := AsSourceError(err)
		assert.True(t, ok)
		assert.Equal(t, SourceAuth, se.Kind)
	})

	t.Run("wrapped", func(t *testing.T) {
		err := fmt.Errorf("search: %w", NewSourceError(SourceUnavailable, "connection refused"))
		se, ok := AsSourceError(err)
		assert.True(t, ok)
		assert.Equal(t, SourceUnavailable, se.Kind)
	})

	t.Run("unrelated error", func(t *testing.T) {
		_, ok := AsSourceError(errors.New("boom"))
		assert.False(t, ok)
	})

	t.Run("validation error is not a source error", func(t *testing.T) {
		_, ok := AsSourceError(ErrInvalidRequest)
		assert.False(t, ok)
	})
}
