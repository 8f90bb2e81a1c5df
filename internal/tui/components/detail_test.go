package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/tubes/internal/domain"
)

func TestDetailVideoMeta(t *testing.T) {
	d := NewDetail()
	d.now = func() time.Time { return time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC) }
	d.SetSize(80, 12)

	views := uint64(1234567)
	d.SetVideo(&domain.Video{
		ID:          "v1",
		Title:       "Go in 100 seconds",
		PublishedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		ViewCount:   &views,
	}, true, false)

	view := d.View()
	assert.Contains(t, view, "Go in 100 seconds")
	assert.Contains(t, view, "1.2M views")
	assert.Contains(t, view, "Jan 15, 2024 (2 days ago)")
	assert.Contains(t, view, "♥ Liked")
	assert.NotContains(t, view, "likes")
}
