package state

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/tubes/internal/domain"
)

const (
	FeedSize    = 24
	RelatedSize = 10
)

// CategoryAll is the unfiltered home feed
const CategoryAll = "All"

// Categories are the home feed filters, in display order
var Categories = []string{
	CategoryAll, "Music", "Gaming", "News", "Sports",
	"Education", "Entertainment", "Technology", "Comedy", "Movies",
}

// EnrichmentPolicy decides what a failed secondary step does to a composite fetch
type EnrichmentPolicy int

const (
	// EnrichmentTolerant logs the failure and keeps the primary data
	EnrichmentTolerant EnrichmentPolicy = iota
	// EnrichmentStrict fails the whole operation
	EnrichmentStrict
)

const (
	videoPolicy   = EnrichmentTolerant
	channelPolicy = EnrichmentStrict
)

// FetchFeed loads the home feed for a category, most viewed first
func (s *Store) FetchFeed(ctx context.Context, category string) error {
	if category == "" {
		category = CategoryAll
	}
	query := category
	if category == CategoryAll {
		query = "trending"
	}

	s.update(SliceVideos, func(st *State) {
		if st.Videos.Category != category {
			st.Videos.Data = nil
		}
		st.Videos.Category = category
	})

	return track(s, SliceVideos, videoListResource, func() ([]domain.Video, error) {
		videos, err := s.source.SearchVideos(ctx, domain.SearchQuery{
			Query:      query,
			Order:      domain.OrderViewCount,
			MaxResults: FeedSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load %s feed: %w", category, err)
		}
		return videos, nil
	})
}

// FetchTrending loads the most popular chart for the configured region
func (s *Store) FetchTrending(ctx context.Context) error {
	s.update(SliceVideos, func(st *State) {
		if st.Videos.Category != "" {
			st.Videos.Data = nil
		}
		st.Videos.Category = ""
	})

	return track(s, SliceVideos, videoListResource, func() ([]domain.Video, error) {
		videos, err := s.source.MostPopular(ctx, s.region, FeedSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load trending: %w", err)
		}
		return videos, nil
	})
}

func videoListResource(st *State) *Resource[[]domain.Video] { return &st.Videos.Resource }

// Search runs a committed query
func (s *Store) Search(ctx context.Context, q string) error {
	var order string
	s.update(SliceSearch, func(st *State) {
		if st.Search.Query != q {
			st.Search.Data = nil
		}
		st.Search.Query = q
		order = st.Search.Order
	})

	return track(s, SliceSearch, func(st *State) *Resource[[]domain.Video] { return &st.Search.Resource },
		func() ([]domain.Video, error) {
			videos, err := s.source.SearchVideos(ctx, domain.SearchQuery{Query: q, Order: order, MaxResults: FeedSize})
			if err != nil {
				return nil, fmt.Errorf("search failed: %w", err)
			}
			return videos, nil
		})
}

// SetSearchOrder chooses the ordering for later searches
func (s *Store) SetSearchOrder(order string) {
	s.update(SliceSearch, func(st *State) { st.Search.Order = order })
}

// ClearSearch drops the query and results
func (s *Store) ClearSearch() {
	s.update(SliceSearch, func(st *State) { st.Search = st.Search.Clear() })
}

// FetchVideo loads a video and then videos related to it. A failure loading
// related videos leaves Related empty instead of failing the video.
func (s *Store) FetchVideo(ctx context.Context, id string) error {
	s.update(SliceVideo, func(st *State) {
		if st.Video.ID != id {
			st.Video.Data = VideoPage{}
		}
		st.Video.ID = id
	})

	return track(s, SliceVideo, func(st *State) *Resource[VideoPage] { return &st.Video.Resource },
		func() (VideoPage, error) {
			v, err := s.source.Video(ctx, id)
			if err != nil {
				return VideoPage{}, fmt.Errorf("failed to load video: %w", err)
			}
			if v == nil {
				return VideoPage{}, nil
			}

			related, err := s.related(ctx, *v)
			if err != nil {
				if videoPolicy == EnrichmentStrict {
					return VideoPage{}, err
				}
				s.logger.Warn("related videos unavailable", "video", id, "error", err)
				related = []domain.Video{}
			}
			return VideoPage{Video: v, Related: related}, nil
		})
}

func (s *Store) related(ctx context.Context, v domain.Video) ([]domain.Video, error) {
	query := v.Title
	if len(v.Tags) > 0 {
		query = v.Tags[0]
	}

	candidates, err := s.source.SearchVideos(ctx, domain.SearchQuery{
		Query:      query,
		CategoryID: v.CategoryID,
		MaxResults: RelatedSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load related videos: %w", err)
	}

	related := make([]domain.Video, 0, len(candidates))
	for _, c := range candidates {
		if c.ID != v.ID {
			related = append(related, c)
		}
	}
	return related, nil
}

// FetchChannel loads a channel and its latest uploads concurrently.
// Both must succeed; nothing is committed otherwise.
func (s *Store) FetchChannel(ctx context.Context, id string) error {
	s.update(SliceChannel, func(st *State) {
		if st.Channel.ID != id {
			st.Channel.Data = ChannelPage{}
		}
		st.Channel.ID = id
	})

	return track(s, SliceChannel, func(st *State) *Resource[ChannelPage] { return &st.Channel.Resource },
		func() (ChannelPage, error) {
			var page ChannelPage

			p := pool.New().WithErrors().WithContext(ctx).WithFirstError()
			if channelPolicy == EnrichmentStrict {
				p = p.WithCancelOnError()
			}

			p.Go(func(ctx context.Context) error {
				ch, err := s.source.Channel(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to load channel: %w", err)
				}
				page.Channel = ch
				return nil
			})

			p.Go(func(ctx context.Context) error {
				videos, err := s.source.SearchVideos(ctx, domain.SearchQuery{
					ChannelID:  id,
					Order:      domain.OrderDate,
					MaxResults: FeedSize,
				})
				if err != nil {
					if channelPolicy == EnrichmentTolerant {
						s.logger.Warn("channel videos unavailable", "channel", id, "error", err)
						page.Videos = []domain.Video{}
						return nil
					}
					return fmt.Errorf("failed to load channel videos: %w", err)
				}
				page.Videos = videos
				return nil
			})

			if err := p.Wait(); err != nil {
				return ChannelPage{}, err
			}
			return page, nil
		})
}

// ClearChannel resets the channel slice
func (s *Store) ClearChannel() {
	s.update(SliceChannel, func(st *State) { st.Channel = st.Channel.Clear() })
}
