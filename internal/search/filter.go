package search

import (
	"sort"
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/tubes/internal/domain"
)

// Match is one video that passed a local filter
type Match struct {
	Index          int   // Index into the filtered slice
	MatchedIndexes []int // Byte offsets into the title, for highlighting
}

// titleIndex implements fuzzy.Source over precomputed lowercase titles
type titleIndex []string

func (t titleIndex) String(i int) string { return t[i] }
func (t titleIndex) Len() int            { return len(t) }

// FilterVideos narrows videos to those whose title fuzzily matches query,
// best match first. An empty query matches everything in order.
func FilterVideos(query string, videos []domain.Video) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		out := make([]Match, len(videos))
		for i := range videos {
			out[i] = Match{Index: i}
		}
		return out
	}

	idx := make(titleIndex, len(videos))
	for i, v := range videos {
		idx[i] = strings.ToLower(v.Title)
	}

	found := fuzzy.FindFrom(query, idx)
	out := make([]Match, len(found))
	for i, m := range found {
		out[i] = Match{Index: m.Index, MatchedIndexes: m.MatchedIndexes}
	}
	return out
}

// FilterHistory narrows history entries to those whose title or channel
// contains the query's characters in order, ignoring case. Results are ranked
// exact, prefix, substring, then by edit distance; ties keep history order.
func FilterHistory(query string, entries []domain.HistoryEntry) []domain.HistoryEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}

	type ranked struct {
		entry domain.HistoryEntry
		score int
	}

	var hits []ranked
	for _, e := range entries {
		title := strings.ToLower(e.Title)
		channel := strings.ToLower(e.ChannelTitle)

		switch {
		case lfuzzy.MatchFold(query, title):
			hits = append(hits, ranked{e, matchScore(query, title)})
		case lfuzzy.MatchFold(query, channel):
			// Channel hits rank behind every title hit
			hits = append(hits, ranked{e, 1000 + matchScore(query, channel)})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })

	out := make([]domain.HistoryEntry, len(hits))
	for i, h := range hits {
		out[i] = h.entry
	}
	return out
}

// matchScore ranks a match, lower is better
func matchScore(query, target string) int {
	switch {
	case target == query:
		return 0
	case strings.HasPrefix(target, query):
		return 10
	case strings.Contains(target, query):
		return 50
	default:
		return 100 + lfuzzy.LevenshteinDistance(query, target)
	}
}
