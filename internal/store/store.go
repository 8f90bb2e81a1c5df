package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Keys used by the application
const (
	KeyTheme          = "theme"
	KeyRecentSearches = "recentSearches"
	KeyWatchHistory   = "watchHistory"
	KeyLikedVideos    = "likedVideos"
	KeyWatchLater     = "watchLater"
)

var bucketPrefs = []byte("prefs")

// Store is a best-effort JSON key/value store backed by BoltDB.
//
// Reads never fail: a missing key, a corrupt value or a missing backend all
// fall back to the caller's default. Writes are logged and dropped on failure.
type Store struct {
	db     *bolt.DB
	logger *slog.Logger

	mu    sync.RWMutex      // Protects cache
	cache map[string][]byte // Raw JSON promoted on read, refreshed on successful write
}

// Open opens (creating if needed) the store at path.
// An empty path returns a store without a backend.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		return NewDetached(logger), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPrefs)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db, logger: logger, cache: make(map[string][]byte)}, nil
}

// NewDetached returns a store with no backend. Every read yields the default
// and every write is a logged no-op.
func NewDetached(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger, cache: make(map[string][]byte)}
}

// Available reports whether a backend is attached
func (s *Store) Available() bool {
	return s != nil && s.db != nil
}

// Close releases the backend
func (s *Store) Close() error {
	if s.Available() {
		return s.db.Close()
	}
	return nil
}

// Get reads key and decodes it into a T, returning def on any failure.
func Get[T any](s *Store, key string, def T) T {
	var v T
	if !s.Load(key, &v) {
		return def
	}
	return v
}

// Load decodes the value stored at key into dest and reports whether it did.
// On a decode failure dest may be partially written; use Get for a clean default.
func (s *Store) Load(key string, dest any) bool {
	if !s.Available() {
		return false
	}

	data := s.read(key)
	if data == nil {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("discarding undecodable value", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) read(key string) []byte {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data
	}
	s.mu.RUnlock()

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrefs)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("store read failed", "key", key, "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data
}

// Set encodes value and stores it under key
func (s *Store) Set(key string, value any) {
	if !s.Available() {
		s.logger.Debug("store unavailable, dropping write", "key", key)
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("failed to encode value", "key", key, "error", err)
		return
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketPrefs)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		s.logger.Error("store write failed", "key", key, "error", err)
		return
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()
}

// Remove deletes key
func (s *Store) Remove(key string) {
	if !s.Available() {
		s.logger.Debug("store unavailable, dropping remove", "key", key)
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPrefs)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		s.logger.Error("store remove failed", "key", key, "error", err)
		return
	}

	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}

// ClearAll deletes every key
func (s *Store) ClearAll() {
	if !s.Available() {
		s.logger.Debug("store unavailable, dropping clear")
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketPrefs) != nil {
			if err := tx.DeleteBucket(bucketPrefs); err != nil {
				return err
			}
		}
		_, err := tx.CreateBucket(bucketPrefs)
		return err
	})
	if err != nil {
		s.logger.Error("store clear failed", "error", err)
		return
	}

	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()
}
