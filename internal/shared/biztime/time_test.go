package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesBusinessTimezone(t *testing.T) {
	require.NoError(t, Init("Asia/Tokyo"))
	t.Cleanup(func() { _ = Init(DefaultTimezone) })

	// 2024-01-01 20:00 UTC is already 2024-01-02 in Tokyo.
	got := DateOf(time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestToday_WithFixedClock(t *testing.T) {
	restore := SetNowFunc(func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) })
	defer restore()

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Today())
}

func TestInit_InvalidTimezone(t *testing.T) {
	assert.Error(t, Init("Mars/Olympus"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/03/2024")
	assert.Error(t, err)
}
