package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestViews(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{999, "999"},
		{1000, "1.0K"},
		{12000, "12.0K"},
		{1234567, "1.2M"},
		{2_500_000_000, "2.5B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Views(tt.in), "Views(%d)", tt.in)
	}
}

func TestOptionalViews(t *testing.T) {
	n := uint64(12000)
	assert.Equal(t, "12.0K", OptionalViews(&n))
	assert.Equal(t, "0", OptionalViews(nil))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1,234,567", Count(1234567))
	assert.Equal(t, "950", Count(950))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "Just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{3 * time.Hour, "3 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{45 * 24 * time.Hour, "1 month ago"},
		{400 * 24 * time.Hour, "1 year ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTime(now.Add(-tt.ago), now), "ago=%s", tt.ago)
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "Jan 15, 2024", Date(time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "4:13", Duration("PT4M13S"))
	assert.Equal(t, "1:02:03", Duration("PT1H2M3S"))
	assert.Equal(t, "0:45", Duration("PT45S"))
	assert.Equal(t, "2:00:00", Duration("PT2H"))
	assert.Equal(t, "0:00", Duration("garbage"))
	assert.Equal(t, "0:00", Duration(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel...", Truncate("hello", 3))
	assert.Equal(t, "日本...", Truncate("日本語です", 2))
	assert.Equal(t, "", Truncate("hello", 0))
}
