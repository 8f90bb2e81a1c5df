package domain

import (
	"time"
)

// Video is a single video as returned by the metadata provider.
// Videos are never mutated locally, only re-fetched.
type Video struct {
	ID           string    // Provider video ID
	Title        string    // Display title
	ChannelTitle string    // Owning channel name
	ChannelID    string    // Owning channel ID (may be empty for some search results)
	PublishedAt  time.Time // Upload time
	ThumbnailURL string    // Best available thumbnail
	ViewCount    *uint64   // nil when the endpoint does not return statistics
	LikeCount    *uint64   // nil when hidden, zero or not requested
	Description  string
	Tags         []string
	CategoryID   string // Provider content category
	Duration     string // ISO-8601 duration, e.g. "PT4M13S"
}

// WatchURL returns the public watch page URL for the video
func (v Video) WatchURL() string { return WatchURL(v.ID) }

// WatchURL returns the public watch page URL for a video ID
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Channel is a creator channel with its public statistics
type Channel struct {
	ID              string
	Title           string
	Description     string
	CustomURL       string // Handle, e.g. "@golang"
	AvatarURL       string
	BannerURL       string
	SubscriberCount uint64
	VideoCount      uint64
	ViewCount       uint64
}

// HistoryEntry records one watched video.
// The JSON shape is the persisted format of the watch history list.
type HistoryEntry struct {
	VideoID      string    `json:"id"`
	Title        string    `json:"title"`
	ChannelTitle string    `json:"channelTitle"`
	ThumbnailURL string    `json:"thumbnail"`
	WatchedAt    time.Time `json:"watchedAt"`
}

// NewHistoryEntry builds a history entry for a video watched at the given time
func NewHistoryEntry(v Video, watchedAt time.Time) HistoryEntry {
	return HistoryEntry{
		VideoID:      v.ID,
		Title:        v.Title,
		ChannelTitle: v.ChannelTitle,
		ThumbnailURL: v.ThumbnailURL,
		WatchedAt:    watchedAt,
	}
}

// Theme is the UI color scheme
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the other theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid reports whether t is one of the known themes
func (t Theme) Valid() bool {
	return t == ThemeDark || t == ThemeLight
}

// ParseTheme converts a config string to a Theme, defaulting to dark
func ParseTheme(s string) Theme {
	if t := Theme(s); t.Valid() {
		return t
	}
	return ThemeDark
}

// Search ordering values understood by the provider
const (
	OrderViewCount = "viewCount"
	OrderDate      = "date"
	OrderRelevance = "relevance"
)

// SearchQuery describes a video search against the provider
type SearchQuery struct {
	Query      string // Free text, may be empty when ChannelID is set
	ChannelID  string // Restrict to one channel
	CategoryID string // Restrict to one content category
	Order      string // viewCount, date, relevance (empty = provider default)
	MaxResults int    // 0 = provider default
}
