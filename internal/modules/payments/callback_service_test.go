package payments

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A failed apply must leave a durable note on the event row and must not
// mark the event processed; the gateway never redelivers once acked.
func TestEventOutcomeFailureKeepsRecord(t *testing.T) {
	cols := eventOutcome(ErrAmountMismatch, time.Now())

	require.Contains(t, cols, "process_error")
	assert.Equal(t, ErrAmountMismatch.Error(), cols["process_error"])
	assert.NotContains(t, cols, "processed_at")
}

func TestEventOutcomeTruncatesLongErrors(t *testing.T) {
	err := errors.New(strings.Repeat("x", 400))
	cols := eventOutcome(err, time.Now())

	msg, ok := cols["process_error"].(string)
	require.True(t, ok)
	assert.Len(t, msg, 250)
}

func TestEventOutcomeSuccessStampsProcessed(t *testing.T) {
	now := time.Now()
	cols := eventOutcome(nil, now)

	require.Contains(t, cols, "processed_at")
	ts, ok := cols["processed_at"].(*time.Time)
	require.True(t, ok)
	assert.Equal(t, now, *ts)

	// cleared explicitly, not omitted
	require.Contains(t, cols, "process_error")
	assert.Nil(t, cols["process_error"])
}
