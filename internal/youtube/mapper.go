package youtube

import (
	"time"

	yt "google.golang.org/api/youtube/v3"

	"github.com/mmcdole/tubes/internal/domain"
)

func mapSearchResult(r *yt.SearchResult) (domain.Video, bool) {
	if r == nil || r.Id == nil || r.Id.VideoId == "" {
		return domain.Video{}, false
	}

	v := domain.Video{ID: r.Id.VideoId}
	if s := r.Snippet; s != nil {
		v.Title = s.Title
		v.ChannelTitle = s.ChannelTitle
		v.ChannelID = s.ChannelId
		v.Description = s.Description
		v.PublishedAt = parseTime(s.PublishedAt)
		v.ThumbnailURL = bestThumbnail(s.Thumbnails)
	}
	return v, true
}

func mapVideos(items []*yt.Video) []domain.Video {
	videos := make([]domain.Video, 0, len(items))
	for _, item := range items {
		if item == nil || item.Id == "" {
			continue
		}
		videos = append(videos, mapVideo(item))
	}
	return videos
}

func mapVideo(item *yt.Video) domain.Video {
	v := domain.Video{ID: item.Id}

	if s := item.Snippet; s != nil {
		v.Title = s.Title
		v.ChannelTitle = s.ChannelTitle
		v.ChannelID = s.ChannelId
		v.Description = s.Description
		v.PublishedAt = parseTime(s.PublishedAt)
		v.ThumbnailURL = bestThumbnail(s.Thumbnails)
		v.Tags = s.Tags
		v.CategoryID = s.CategoryId
	}

	if st := item.Statistics; st != nil {
		views := st.ViewCount
		v.ViewCount = &views
		// Hidden like counts are omitted and decode as zero
		if st.LikeCount > 0 {
			likes := st.LikeCount
			v.LikeCount = &likes
		}
	}

	if cd := item.ContentDetails; cd != nil {
		v.Duration = cd.Duration
	}

	return v
}

func mapChannel(item *yt.Channel) domain.Channel {
	ch := domain.Channel{ID: item.Id}

	if s := item.Snippet; s != nil {
		ch.Title = s.Title
		ch.Description = s.Description
		ch.CustomURL = s.CustomUrl
		ch.AvatarURL = bestThumbnail(s.Thumbnails)
	}

	if st := item.Statistics; st != nil {
		ch.SubscriberCount = st.SubscriberCount
		ch.VideoCount = st.VideoCount
		ch.ViewCount = st.ViewCount
	}

	if b := item.BrandingSettings; b != nil && b.Image != nil {
		ch.BannerURL = b.Image.BannerExternalUrl
	}

	return ch
}

// bestThumbnail picks the largest thumbnail that is present
func bestThumbnail(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*yt.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
