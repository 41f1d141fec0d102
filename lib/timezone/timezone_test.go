package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	cases := []struct {
		now         time.Time
		expectStart time.Time
		expectEnd   time.Time
	}{
		{
			now:         time.Date(2024, time.August, 26, 14, 30, 12, 0, time.UTC),
			expectStart: time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC),
			expectEnd:   time.Date(2024, time.August, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			now:         time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC),
			expectStart: time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC),
			expectEnd:   time.Date(2024, time.August, 27, 0, 0, 0, 0, time.UTC),
		},
		{
			// month rollover
			now:         time.Date(2024, time.August, 31, 23, 59, 59, 0, time.UTC),
			expectStart: time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC),
			expectEnd:   time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			// local wall clocks must not shift the window
			now:         time.Date(2024, time.August, 26, 1, 0, 0, 0, time.FixedZone("UTC+10", 10*60*60)),
			expectStart: time.Date(2024, time.August, 25, 0, 0, 0, 0, time.UTC),
			expectEnd:   time.Date(2024, time.August, 26, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, test := range cases {
		start, end := DayBounds(test.now)
		require.True(t, start.Equal(test.expectStart), test.now)
		require.True(t, end.Equal(test.expectEnd), test.now)
	}
}
