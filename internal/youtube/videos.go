package youtube

import (
	"context"

	"github.com/mmcdole/tubes/internal/domain"
)

// SearchVideos runs a video-only search
func (c *Client) SearchVideos(ctx context.Context, q domain.SearchQuery) ([]domain.Video, error) {
	req := c.svc.Search.List([]string{"snippet"}).Type("video").Context(ctx)
	if q.Query != "" {
		req = req.Q(q.Query)
	}
	if q.Order != "" {
		req = req.Order(q.Order)
	}
	if q.MaxResults > 0 {
		req = req.MaxResults(int64(q.MaxResults))
	}
	if q.ChannelID != "" {
		req = req.ChannelId(q.ChannelID)
	}
	if q.CategoryID != "" {
		req = req.VideoCategoryId(q.CategoryID)
	}

	resp, err := call(ctx, c, "search.list", req.Do)
	if err != nil {
		return nil, err
	}

	videos := make([]domain.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if v, ok := mapSearchResult(item); ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

// MostPopular returns the most popular chart for a region
func (c *Client) MostPopular(ctx context.Context, regionCode string, maxResults int) ([]domain.Video, error) {
	req := c.svc.Videos.List([]string{"snippet", "statistics"}).Chart("mostPopular").Context(ctx)
	if regionCode != "" {
		req = req.RegionCode(regionCode)
	}
	if maxResults > 0 {
		req = req.MaxResults(int64(maxResults))
	}

	resp, err := call(ctx, c, "videos.list", req.Do)
	if err != nil {
		return nil, err
	}
	return mapVideos(resp.Items), nil
}

// Video returns full details for one video, or nil when the provider has none
func (c *Client) Video(ctx context.Context, id string) (*domain.Video, error) {
	videos, err := c.videoDetails(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, nil
	}
	return &videos[0], nil
}

// Videos returns full details for ids, batching requests as the provider requires.
// Unknown ids are silently absent from the result.
func (c *Client) Videos(ctx context.Context, ids []string) ([]domain.Video, error) {
	var all []domain.Video
	for start := 0; start < len(ids); start += maxIDsPerRequest {
		end := min(start+maxIDsPerRequest, len(ids))
		batch, err := c.videoDetails(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}

func (c *Client) videoDetails(ctx context.Context, ids []string) ([]domain.Video, error) {
	req := c.svc.Videos.List([]string{"snippet", "statistics", "contentDetails"}).Id(ids...).Context(ctx)

	resp, err := call(ctx, c, "videos.list", req.Do)
	if err != nil {
		return nil, err
	}
	return mapVideos(resp.Items), nil
}

// Channel returns channel metadata, or nil when the provider has none
func (c *Client) Channel(ctx context.Context, id string) (*domain.Channel, error) {
	req := c.svc.Channels.List([]string{"snippet", "statistics", "brandingSettings"}).Id(id).Context(ctx)

	resp, err := call(ctx, c, "channels.list", req.Do)
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return nil, nil
	}
	ch := mapChannel(resp.Items[0])
	return &ch, nil
}

var _ domain.VideoSource = (*Client)(nil)

