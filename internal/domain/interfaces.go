package domain

import "context"

// VideoSource provides read-only access to remote video and channel metadata.
// Not-found is not an error: singular lookups return nil, list lookups return an empty slice.
type VideoSource interface {
	// SearchVideos runs a video search
	SearchVideos(ctx context.Context, q SearchQuery) ([]Video, error)

	// MostPopular returns the most popular chart for a region
	MostPopular(ctx context.Context, regionCode string, maxResults int) ([]Video, error)

	// Video returns full details (snippet, statistics, content details) for one video
	Video(ctx context.Context, id string) (*Video, error)

	// Videos returns full details for many videos, in provider order
	Videos(ctx context.Context, ids []string) ([]Video, error)

	// Channel returns channel metadata and statistics
	Channel(ctx context.Context, id string) (*Channel, error)
}

// SuggestionSource provides search-as-you-type completions
type SuggestionSource interface {
	Suggest(ctx context.Context, query string) ([]string, error)
}
