package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/mmcdole/tubes/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(Options{BaseURL: srv.URL + "/youtube/v3", APIKey: "test-key", RequestsPerSecond: 1000}, nil)
	require.NoError(t, err)
	return c
}

// joined flattens a repeated or comma separated query parameter
func joined(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

func TestGetAttachesKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		fmt.Fprint(w, `{"ok":true}`)
	})

	var out struct{ OK bool }
	err := c.Get(context.Background(), "videos", map[string][]string{"part": {"snippet"}}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestGetWithoutKey(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "http://127.0.0.1:1"}, nil)
	require.NoError(t, err)
	err = c.Get(context.Background(), "videos", nil, &struct{}{})
	assert.ErrorIs(t, err, domain.ErrAPIKeyMissing)

	_, err = c.SearchVideos(context.Background(), domain.SearchQuery{Query: "go"})
	assert.ErrorIs(t, err, domain.ErrAPIKeyMissing)
}

func TestGetSurfacesProviderMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","errors":[{"reason":"badRequest","message":"API key not valid."}]}}`)
	})

	err := c.Get(context.Background(), "videos", nil, &struct{}{})
	require.Error(t, err)

	var gerr *googleapi.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusBadRequest, gerr.Code)
	assert.Equal(t, "API key not valid. Please pass a valid API key.", ErrorMessage(err))
	assert.False(t, errors.Is(err, domain.ErrQuotaExceeded))
}

func TestGetQuotaExceeded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"The request cannot be completed because you have exceeded your quota.","errors":[{"reason":"quotaExceeded","domain":"youtube.quota"}]}}`)
	})

	err := c.Get(context.Background(), "search", nil, &struct{}{})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestGetOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(Options{BaseURL: url, APIKey: "k"}, nil)
	require.NoError(t, err)
	err = c.Get(context.Background(), "videos", nil, &struct{}{})
	assert.ErrorIs(t, err, domain.ErrProviderOffline)

	_, err = c.MostPopular(context.Background(), "US", 1)
	assert.ErrorIs(t, err, domain.ErrProviderOffline)
}

func TestSearchQuotaExceeded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"quota used up","errors":[{"reason":"quotaExceeded","domain":"youtube.quota"}]}}`)
	})

	_, err := c.SearchVideos(context.Background(), domain.SearchQuery{Query: "go"})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.Contains(t, ErrorMessage(err), "quota")
}

func TestSearchVideos(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/youtube/v3/search", r.URL.Path)
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, []string{"snippet"}, joined(r, "part"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "golang", q.Get("q"))
		assert.Equal(t, "viewCount", q.Get("order"))
		assert.Equal(t, "24", q.Get("maxResults"))
		assert.Empty(t, q.Get("channelId"))
		fmt.Fprint(w, `{"items":[
			{"id":{"kind":"youtube#video","videoId":"abc"},"snippet":{"title":"Go in 100 seconds","channelTitle":"Fireship","channelId":"UC1","publishedAt":"2024-01-15T10:00:00Z","thumbnails":{"default":{"url":"d.jpg"},"high":{"url":"h.jpg"}}}},
			{"id":{"kind":"youtube#channel","channelId":"UC2"},"snippet":{"title":"a channel"}}
		]}`)
	})

	videos, err := c.SearchVideos(context.Background(), domain.SearchQuery{Query: "golang", Order: domain.OrderViewCount, MaxResults: 24})
	require.NoError(t, err)
	require.Len(t, videos, 1)

	v := videos[0]
	assert.Equal(t, "abc", v.ID)
	assert.Equal(t, "Go in 100 seconds", v.Title)
	assert.Equal(t, "UC1", v.ChannelID)
	assert.Equal(t, "h.jpg", v.ThumbnailURL)
	assert.Equal(t, 2024, v.PublishedAt.Year())
	assert.Nil(t, v.ViewCount)
}

func TestMostPopular(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "mostPopular", q.Get("chart"))
		assert.Equal(t, "US", q.Get("regionCode"))
		assert.Equal(t, "24", q.Get("maxResults"))
		fmt.Fprint(w, `{"items":[
			{"id":"v1","snippet":{"title":"Top"},"statistics":{"viewCount":"1234567","likeCount":"10"}},
			{"id":"v2","snippet":{"title":"Hidden likes"},"statistics":{"viewCount":"5"}}
		]}`)
	})

	videos, err := c.MostPopular(context.Background(), "US", 24)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	require.NotNil(t, videos[0].ViewCount)
	assert.Equal(t, uint64(1234567), *videos[0].ViewCount)
	require.NotNil(t, videos[0].LikeCount)
	assert.Equal(t, uint64(10), *videos[0].LikeCount)
	assert.Nil(t, videos[1].LikeCount)
}

func TestVideoNotFoundIsNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	})

	v, err := c.Video(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestVideoDetails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/videos", r.URL.Path)
		assert.Equal(t, []string{"snippet", "statistics", "contentDetails"}, joined(r, "part"))
		assert.Equal(t, []string{"v1"}, joined(r, "id"))
		fmt.Fprint(w, `{"items":[{"id":"v1","snippet":{"title":"T","tags":["go","tui"],"categoryId":"28"},"contentDetails":{"duration":"PT4M13S"}}]}`)
	})

	v, err := c.Video(context.Background(), "v1")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, []string{"go", "tui"}, v.Tags)
	assert.Equal(t, "28", v.CategoryID)
	assert.Equal(t, "PT4M13S", v.Duration)
}

func TestVideosBatches(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		ids := joined(r, "id")
		assert.LessOrEqual(t, len(ids), 50)

		var items []string
		for _, id := range ids {
			items = append(items, fmt.Sprintf(`{"id":%q}`, id))
		}
		fmt.Fprintf(w, `{"items":[%s]}`, strings.Join(items, ","))
	})

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = fmt.Sprintf("v%d", i)
	}

	videos, err := c.Videos(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, videos, 120)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "v119", videos[119].ID)
}

func TestChannel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/channels", r.URL.Path)
		assert.Equal(t, []string{"UC1"}, joined(r, "id"))
		fmt.Fprint(w, `{"items":[{"id":"UC1","snippet":{"title":"Gophers","customUrl":"@gophers","thumbnails":{"medium":{"url":"m.jpg"}}},"statistics":{"subscriberCount":"1500","videoCount":"42","viewCount":"99999"},"brandingSettings":{"image":{"bannerExternalUrl":"banner.jpg"}}}]}`)
	})

	ch, err := c.Channel(context.Background(), "UC1")
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, "Gophers", ch.Title)
	assert.Equal(t, "@gophers", ch.CustomURL)
	assert.Equal(t, "m.jpg", ch.AvatarURL)
	assert.Equal(t, "banner.jpg", ch.BannerURL)
	assert.Equal(t, uint64(1500), ch.SubscriberCount)
	assert.Equal(t, uint64(42), ch.VideoCount)
}
