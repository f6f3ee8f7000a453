package stage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestParseThreshold verifies both expression forms and fractional input.
func TestParseThreshold(t *testing.T) {
	t.Parallel()

	got, err := ParseThreshold("50%", 300*time.Second)
	require.NoError(t, err)
	require.Equal(t, 150*time.Second, got)

	// Seconds thresholds ignore the total duration.
	got, err = ParseThreshold("10s", 12345*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, got)

	got, err = ParseThreshold("2.5%", 1000*time.Second)
	require.NoError(t, err)
	require.Equal(t, 25*time.Second, got)

	got, err = ParseThreshold("0.5s", time.Hour)
	require.NoError(t, err)
	require.Equal(t, 500*time.Millisecond, got)
}

// TestParseThresholdErrors verifies the three distinguishable error kinds.
func TestParseThresholdErrors(t *testing.T) {
	t.Parallel()

	_, err := ParseThreshold("-10%", time.Minute)
	require.ErrorIs(t, err, ErrNegativePercent)

	_, err = ParseThreshold("-3s", time.Minute)
	require.ErrorIs(t, err, ErrNegativeSeconds)

	for _, expr := range []string{"", "10", "abc", "10m", "%", "s", "x%", "ys"} {
		_, err = ParseThreshold(expr, time.Minute)
		require.ErrorIs(t, err, ErrUnknownThreshold, expr)
	}
}
