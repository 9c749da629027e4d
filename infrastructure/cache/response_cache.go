package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"music-stream/domain/model"
	"music-stream/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

const (
	redisSearchPrefix = "yt:search:"
	redisVideoPrefix  = "yt:video:"
	redisTrendingKey  = "yt:trending"
	redisOpTimeout    = 2 * time.Second
)

type searchEntry struct {
	videos     []model.Video
	recordedAt time.Time
}

type videoEntry struct {
	video      model.Video
	recordedAt time.Time
}

// ResponseCache is the time-windowed cache of provider responses: a
// search table keyed by normalized query, a video-detail table keyed by
// id, and a single trending slot. One duration applies to all three.
//
// An optional Redis tier mirrors saves with the same TTL and backs L1
// misses; Redis being unreachable or unconfigured never affects
// correctness, every invariant holds on the in-memory tier alone.
type ResponseCache struct {
	mu       sync.Mutex
	search   map[string]searchEntry
	videos   map[string]videoEntry
	trending *searchEntry
	duration time.Duration
	sweep    time.Duration
	rdb      *redis.Client // nil disables the second tier
	now      func() time.Time
}

// NewResponseCache builds an empty cache. rdb may be nil.
func NewResponseCache(cacheDuration, sweepInterval time.Duration, rdb *redis.Client) *ResponseCache {
	return &ResponseCache{
		search:   make(map[string]searchEntry),
		videos:   make(map[string]videoEntry),
		duration: cacheDuration,
		sweep:    sweepInterval,
		rdb:      rdb,
		now:      time.Now,
	}
}

// SetCacheDuration changes the TTL for all subsequent expiry checks.
// Existing entries keep their recorded-at timestamps.
func (c *ResponseCache) SetCacheDuration(minutes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duration = time.Duration(minutes) * time.Minute
}

// normalizeQuery makes lookups case and whitespace insensitive.
func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// SaveSearchResults caches a search result set under the normalized query.
func (c *ResponseCache) SaveSearchResults(query string, videos []model.Video) {
	key := normalizeQuery(query)
	c.mu.Lock()
	c.search[key] = searchEntry{videos: videos, recordedAt: c.now()}
	c.mu.Unlock()
	c.redisSet(redisSearchPrefix+key, videos)
}

// GetSearchResults returns a still-valid cached result set. Expired
// entries are evicted as a side effect of the read.
func (c *ResponseCache) GetSearchResults(query string) ([]model.Video, bool) {
	key := normalizeQuery(query)
	c.mu.Lock()
	entry, ok := c.search[key]
	if ok && c.now().Sub(entry.recordedAt) < c.duration {
		c.mu.Unlock()
		return entry.videos, true
	}
	if ok {
		delete(c.search, key)
	}
	c.mu.Unlock()

	var videos []model.Video
	if c.redisGet(redisSearchPrefix+key, &videos) {
		c.mu.Lock()
		c.search[key] = searchEntry{videos: videos, recordedAt: c.now()}
		c.mu.Unlock()
		return videos, true
	}
	return nil, false
}

// SaveVideoDetails caches a single video by provider id.
func (c *ResponseCache) SaveVideoDetails(videoID string, video model.Video) {
	c.mu.Lock()
	c.videos[videoID] = videoEntry{video: video, recordedAt: c.now()}
	c.mu.Unlock()
	c.redisSet(redisVideoPrefix+videoID, video)
}

// GetVideoDetails returns a still-valid cached video, evicting on expiry.
func (c *ResponseCache) GetVideoDetails(videoID string) (*model.Video, bool) {
	c.mu.Lock()
	entry, ok := c.videos[videoID]
	if ok && c.now().Sub(entry.recordedAt) < c.duration {
		c.mu.Unlock()
		v := entry.video
		return &v, true
	}
	if ok {
		delete(c.videos, videoID)
	}
	c.mu.Unlock()

	var video model.Video
	if c.redisGet(redisVideoPrefix+videoID, &video) {
		c.SaveVideoDetails(videoID, video)
		return &video, true
	}
	return nil, false
}

// SaveTrendingVideos fills the single trending slot.
func (c *ResponseCache) SaveTrendingVideos(videos []model.Video) {
	c.mu.Lock()
	c.trending = &searchEntry{videos: videos, recordedAt: c.now()}
	c.mu.Unlock()
	c.redisSet(redisTrendingKey, videos)
}

// GetTrendingVideos returns the trending slot while valid.
func (c *ResponseCache) GetTrendingVideos() ([]model.Video, bool) {
	c.mu.Lock()
	if c.trending != nil && c.now().Sub(c.trending.recordedAt) < c.duration {
		videos := c.trending.videos
		c.mu.Unlock()
		return videos, true
	}
	c.trending = nil
	c.mu.Unlock()

	var videos []model.Video
	if c.redisGet(redisTrendingKey, &videos) {
		c.SaveTrendingVideos(videos)
		return videos, true
	}
	return nil, false
}

// Cleanup evicts every expired entry across all three tables, bounding
// memory growth from keys written once and never read again.
func (c *ResponseCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.search {
		if now.Sub(entry.recordedAt) >= c.duration {
			delete(c.search, key)
		}
	}
	for key, entry := range c.videos {
		if now.Sub(entry.recordedAt) >= c.duration {
			delete(c.videos, key)
		}
	}
	if c.trending != nil && now.Sub(c.trending.recordedAt) >= c.duration {
		c.trending = nil
	}
}

// shouldRefreshTrending reports whether the clock sits inside one of the
// twice-daily refresh windows, [00:00,00:05) and [12:00,12:05). The check
// runs on the sweep cadence only, so the forced refresh is best-effort —
// eventual, not exact.
func (c *ResponseCache) shouldRefreshTrending() bool {
	now := c.now()
	return (now.Hour() == 0 || now.Hour() == 12) && now.Minute() < 5
}

// InvalidateTrending force-clears the trending slot in both tiers.
func (c *ResponseCache) InvalidateTrending() {
	c.mu.Lock()
	c.trending = nil
	c.mu.Unlock()
	if c.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cancel()
		if err := c.rdb.Del(ctx, redisTrendingKey).Err(); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to clear trending key in redis")
		}
	}
}

// Run drives the periodic sweep until the context is cancelled. Sweep
// failures must never take the process down, so each tick only logs.
func (c *ResponseCache) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Sweep runs one eviction pass plus the trending window check.
func (c *ResponseCache) Sweep() {
	c.Cleanup()
	if c.shouldRefreshTrending() {
		logger.GetLogger().Info("Scheduled trending cache refresh window reached, clearing trending slot")
		c.InvalidateTrending()
	}
}

// Len reports entry counts per table; used by tests and debug logging.
func (c *ResponseCache) Len() (searches, videos int, hasTrending bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.search), len(c.videos), c.trending != nil
}

func (c *ResponseCache) redisSet(key string, value interface{}) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	c.mu.Lock()
	ttl := c.duration
	c.mu.Unlock()
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{"key": key, "error": err}).Warn("Redis cache write failed")
	}
}

func (c *ResponseCache) redisGet(key string, out interface{}) bool {
	if c.rdb == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.GetLogger().WithFields(map[string]interface{}{"key": key, "error": err}).Warn("Redis cache read failed")
		}
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
