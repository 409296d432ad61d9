package reading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-09-07")
	require.NoError(t, err)
	assert.Equal(t, Date{2026, time.September, 7}, d)
	assert.Equal(t, "2026-09-07", d.String())
	assert.Equal(t, time.Monday, d.Weekday())

	for _, bad := range []string{"", "07-09-2026", "2026/09/07", "2026-13-01", "next tuesday"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateOfIgnoresTime(t *testing.T) {
	late := time.Date(2026, time.September, 7, 23, 59, 59, 0, time.Local)
	assert.Equal(t, Date{2026, time.September, 7}, DateOf(late))
}

func TestDateOrdering(t *testing.T) {
	a := Date{2026, time.September, 7}
	b := Date{2026, time.September, 9}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.Equal(a))
	assert.True(t, Date{2025, time.December, 31}.Before(Date{2026, time.January, 1}))
}

func TestDateAddDays(t *testing.T) {
	d := Date{2026, time.August, 30}
	assert.Equal(t, Date{2026, time.September, 2}, d.AddDays(3))
	assert.Equal(t, Date{2026, time.August, 28}, d.AddDays(-2))
	// Leap day rollover.
	assert.Equal(t, Date{2028, time.February, 29}, Date{2028, time.February, 28}.AddDays(1))
	assert.Equal(t, Date{2027, time.March, 1}, Date{2027, time.February, 28}.AddDays(1))
}

func TestDateTextRoundTrip(t *testing.T) {
	d := Date{2026, time.September, 4}
	b, err := d.MarshalText()
	require.NoError(t, err)

	var back Date
	require.NoError(t, back.UnmarshalText(b))
	assert.Equal(t, d, back)

	var zero Date
	assert.True(t, zero.IsZero())
	assert.Error(t, zero.UnmarshalText([]byte("garbage")))
}
