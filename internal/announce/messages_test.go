package announce

import (
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/zero-hour/internal/domain/countdown"
)

// TestCompletion checks the completion phrase in each bundled language and
// the English fallback for an unknown language tag.
func TestCompletion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		language string
		expected string
	}{
		{
			name:     "english",
			language: "en",
			expected: "New Year: the countdown has reached zero!",
		},
		{
			name:     "french",
			language: "fr",
			expected: "New Year : le compte à rebours est terminé !",
		},
		{
			name:     "russian",
			language: "ru",
			expected: "New Year: обратный отсчёт завершён!",
		},
		{
			name:     "unknown falls back to english",
			language: "tlh",
			expected: "New Year: the countdown has reached zero!",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			messages, err := NewMessages(tc.language)
			require.NoError(t, err)
			require.Equal(t, tc.expected, messages.Completion("New Year"))
		})
	}
}

// TestRemaining checks component pluralization and the suppression of
// leading zero components.
func TestRemaining(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		language  string
		remaining domain.TimeRemaining
		expected  string
	}{
		{
			name:      "full english",
			language:  "en",
			remaining: domain.TimeRemaining{Days: 2, Hours: 1, Minutes: 30, Seconds: 1},
			expected:  "2 days, 1 hour, 30 minutes, 1 second remaining",
		},
		{
			name:      "leading zeros omitted",
			language:  "en",
			remaining: domain.TimeRemaining{Minutes: 5, Seconds: 0},
			expected:  "5 minutes, 0 seconds remaining",
		},
		{
			name:      "seconds only",
			language:  "en",
			remaining: domain.TimeRemaining{Seconds: 42},
			expected:  "42 seconds remaining",
		},
		{
			name:      "zero",
			language:  "en",
			remaining: domain.TimeRemaining{},
			expected:  "0 seconds remaining",
		},
		{
			name:      "russian plural forms",
			language:  "ru",
			remaining: domain.TimeRemaining{Days: 5, Hours: 2, Minutes: 21, Seconds: 1},
			expected:  "осталось 5 дней, 2 часа, 21 минута, 1 секунда",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			messages, err := NewMessages(tc.language)
			require.NoError(t, err)
			require.Equal(t, tc.expected, messages.Remaining(tc.remaining))
		})
	}
}
