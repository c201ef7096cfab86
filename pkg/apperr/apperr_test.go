package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errSlotTaken := New(KindSlotUnavailable, "slot is no longer available")

	assert.Equal(t, KindSlotUnavailable, KindOf(errSlotTaken))
	assert.Equal(t, KindSlotUnavailable, KindOf(fmt.Errorf("booking failed: %w", errSlotTaken)))

	// Anything without a kind is an upstream failure
	assert.Equal(t, KindUpstream, KindOf(errors.New("connection refused")))
}

func TestSentinelIdentity(t *testing.T) {
	errNotFound := New(KindNotFound, "slot not found")
	other := New(KindNotFound, "slot not found")

	// Sentinels match by identity, not by message
	assert.ErrorIs(t, fmt.Errorf("lookup: %w", errNotFound), errNotFound)
	assert.NotErrorIs(t, other, errNotFound)
}

func TestRetryable(t *testing.T) {
	assert.True(t, KindUpstream.Retryable())
	assert.False(t, KindValidation.Retryable())
	assert.False(t, KindInvalidTransition.Retryable())
	assert.False(t, KindSlotUnavailable.Retryable())
	assert.False(t, KindNotFound.Retryable())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "slot_unavailable", KindSlotUnavailable.String())
	assert.Equal(t, "upstream_failure", KindUpstream.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
