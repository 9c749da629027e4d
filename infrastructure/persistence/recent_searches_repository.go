package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"music-stream/infrastructure/logger"
)

// maxRecentSearches bounds the log; the oldest entry is dropped first.
const maxRecentSearches = 20

// RecentSearchesRepository keeps the deduplicated, most-recent-first log
// of search terms, persisted as a whole JSON array after every mutation.
// This is a best-effort convenience feature: storage failures are logged
// and swallowed, never surfaced to callers.
type RecentSearchesRepository struct {
	mu       sync.Mutex
	path     string
	searches []string
}

// NewRecentSearchesRepository loads prior state from path. A missing or
// corrupt file is not fatal; the log starts empty.
func NewRecentSearchesRepository(path string) *RecentSearchesRepository {
	r := &RecentSearchesRepository{path: path, searches: []string{}}
	r.loadFromDisk()
	return r
}

func (r *RecentSearchesRepository) loadFromDisk() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.GetLogger().WithField("path", r.path).Info("Recent searches file not found, will be created on first save")
		} else {
			logger.GetLogger().WithFields(map[string]interface{}{"path": r.path, "error": err}).Warn("Failed to read recent searches file, starting empty")
		}
		return
	}
	var searches []string
	if err := json.Unmarshal(data, &searches); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"path": r.path, "error": err}).Warn("Recent searches file is corrupt, starting empty")
		return
	}
	r.searches = searches
	logger.GetLogger().WithField("count", len(searches)).Info("Loaded recent searches from disk")
}

// saveToDisk writes the whole list; caller holds the lock.
func (r *RecentSearchesRepository) saveToDisk() {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"path": r.path, "error": err}).Warn("Failed to create recent searches directory")
		return
	}
	data, err := json.Marshal(r.searches)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to encode recent searches")
		return
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"path": r.path, "error": err}).Warn("Failed to write recent searches file")
	}
}

// Add normalizes the query (trim + lowercase), rejects anything shorter
// than two characters, moves an existing equal entry to the front instead
// of duplicating it, caps the log at 20 entries, and persists.
func (r *RecentSearchesRepository) Add(query string) {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < 2 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := make([]string, 0, len(r.searches)+1)
	filtered = append(filtered, query)
	for _, q := range r.searches {
		if q != query {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) > maxRecentSearches {
		filtered = filtered[:maxRecentSearches]
	}
	r.searches = filtered
	r.saveToDisk()
}

// Recent returns up to limit entries, most recent first.
func (r *RecentSearchesRepository) Recent(limit int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 || limit > len(r.searches) {
		limit = len(r.searches)
	}
	out := make([]string, limit)
	copy(out, r.searches[:limit])
	return out
}
