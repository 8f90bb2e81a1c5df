package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetReturnsDefaultForMissingKey(t *testing.T) {
	s := openTemp(t)

	got := Get(s, KeyRecentSearches, []string{"fallback"})
	assert.Equal(t, []string{"fallback"}, got)
}

func TestGetWithoutBackend(t *testing.T) {
	s := NewDetached(nil)
	require.False(t, s.Available())

	assert.Equal(t, "dark", Get(s, KeyTheme, "dark"))

	// Writes are dropped, reads still fall back
	s.Set(KeyTheme, "light")
	s.Remove(KeyTheme)
	s.ClearAll()
	assert.Equal(t, "dark", Get(s, KeyTheme, "dark"))
}

func TestGetOnNilStore(t *testing.T) {
	var s *Store
	assert.Equal(t, 7, Get(s, "anything", 7))
}

func TestSetAndGetRoundTrip(t *testing.T) {
	s := openTemp(t)

	s.Set(KeyLikedVideos, []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, Get(s, KeyLikedVideos, []string(nil)))
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := Open(path, nil)
	require.NoError(t, err)
	s.Set(KeyTheme, "light")
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "light", Get(s, KeyTheme, "dark"))
}

func TestCorruptValueFallsBack(t *testing.T) {
	s := openTemp(t)

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPrefs).Put([]byte(KeyWatchHistory), []byte("{not json"))
	})
	require.NoError(t, err)

	got := Get(s, KeyWatchHistory, []int{})
	assert.Empty(t, got)
}

func TestWrongShapeFallsBack(t *testing.T) {
	s := openTemp(t)

	s.Set(KeyLikedVideos, map[string]int{"a": 1})
	got := Get(s, KeyLikedVideos, []string{"default"})
	assert.Equal(t, []string{"default"}, got)
}

func TestRemoveAndClearAll(t *testing.T) {
	s := openTemp(t)

	s.Set(KeyTheme, "light")
	s.Set(KeyWatchLater, []string{"x"})

	s.Remove(KeyTheme)
	assert.Equal(t, "dark", Get(s, KeyTheme, "dark"))
	assert.Equal(t, []string{"x"}, Get(s, KeyWatchLater, []string(nil)))

	s.ClearAll()
	assert.Nil(t, Get(s, KeyWatchLater, []string(nil)))
}

func TestOpenEmptyPathIsDetached(t *testing.T) {
	s, err := Open("", nil)
	require.NoError(t, err)
	assert.False(t, s.Available())
	assert.NoError(t, s.Close())
}
