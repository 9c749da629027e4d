package youtube

import (
	"fmt"
	"sync"

	"music-stream/infrastructure/logger"
)

// KeyPool owns the API keys and their exhausted/active status. Keys are
// loaded once at construction and never added or removed afterwards; only
// their status and the current index change.
type KeyPool struct {
	mu      sync.Mutex
	keys    []string
	status  map[string]bool // true = active, false = quota exhausted
	current int
}

// KeyStats is a point-in-time snapshot of the pool for observability.
type KeyStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Exhausted int `json:"exhausted"`
}

// NewKeyPool builds a pool from the configured keys, all active.
func NewKeyPool(keys []string) (*KeyPool, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("key pool requires at least one API key")
	}
	status := make(map[string]bool, len(keys))
	for _, k := range keys {
		status[k] = true
	}
	logger.GetLogger().WithField("keys", len(keys)).Info("API key pool initialized")
	return &KeyPool{keys: keys, status: status}, nil
}

// Current returns the presumed-active key. No side effects.
func (p *KeyPool) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.keys[p.current]
}

// Rotate advances to the next active key, scanning circularly from just
// after the current index. If a full scan finds no active key, every key
// is reset to active — quota windows are assumed to have rolled over —
// and the index is left where the scan ended (back at its starting
// point), so rotation degrades to "retry from the same key" rather than
// blocking. Returns the new current key.
func (p *KeyPool) Rotate() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	oldIndex := p.current
	found := false
	for i := 0; i < len(p.keys); i++ {
		p.current = (p.current + 1) % len(p.keys)
		if p.status[p.keys[p.current]] {
			found = true
			break
		}
	}
	if !found {
		logger.GetLogger().Warn("All API keys exhausted, resetting key statuses")
		for _, k := range p.keys {
			p.status[k] = true
		}
	}

	logger.GetLogger().WithFields(map[string]interface{}{
		"from": oldIndex + 1,
		"to":   p.current + 1,
	}).Info("Rotated API key")
	return p.keys[p.current]
}

// MarkExhausted flags a key as out of quota. Unknown keys are ignored.
func (p *KeyPool) MarkExhausted(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.status[key]; ok {
		logger.GetLogger().WithField("key", maskKey(key)).Info("API key quota exhausted")
		p.status[key] = false
	}
}

// AllExhausted reports whether no key has quota left.
func (p *KeyPool) AllExhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, active := range p.status {
		if active {
			return false
		}
	}
	return true
}

// Size returns the number of keys in the pool.
func (p *KeyPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

// Stats counts total/active/exhausted keys.
func (p *KeyPool) Stats() KeyStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	active := 0
	for _, ok := range p.status {
		if ok {
			active++
		}
	}
	return KeyStats{Total: len(p.keys), Active: active, Exhausted: len(p.keys) - active}
}

// maskKey keeps log lines diagnosable without leaking key material.
func maskKey(key string) string {
	if len(key) <= 6 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}
