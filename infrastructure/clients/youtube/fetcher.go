package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"music-stream/domain/dto"
	"music-stream/infrastructure/logger"
)

// requestTimeout bounds every provider call; a timeout is a transport
// failure, not a quota signal, and is never retried here.
const requestTimeout = 15 * time.Second

// Fetcher issues provider requests with the pool's current key appended
// and drives rotation on quota-class failures. Only a 403 whose body
// signals quota exhaustion triggers rotation; every other failure
// propagates to the caller untouched.
type Fetcher struct {
	pool   *KeyPool
	client *http.Client
}

// NewFetcher wraps the pool with a timeout-bounded HTTP client.
func NewFetcher(pool *KeyPool) *Fetcher {
	return &Fetcher{
		pool:   pool,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// Do issues GET rawURL with the current API key appended as the `key`
// query parameter. On a quota-exhausted response it marks the key,
// rotates, and retries with the next key; attempts are bounded by the
// pool size, so the loop terminates even under pathological responses.
// When the whole pool is exhausted the original failing response is
// returned (body restored for re-reading) instead of retrying forever.
func (f *Fetcher) Do(ctx context.Context, rawURL string) (*http.Response, error) {
	apiKey := f.pool.Current()

	for attempt := 0; attempt < f.pool.Size(); attempt++ {
		resp, err := f.issue(ctx, rawURL, apiKey)
		if err != nil {
			// Transport-level failure: propagate, no rotation.
			return nil, err
		}

		if resp.StatusCode != http.StatusForbidden {
			return resp, nil
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(body))
		if readErr != nil || !isQuotaExceededBody(body) {
			// Forbidden for some other reason (referrer restriction, disabled
			// API, ...): not ours to recover from.
			return resp, nil
		}

		logger.GetLogger().WithField("key", maskKey(apiKey)).Warn("Quota exceeded response detected, rotating API key")
		f.pool.MarkExhausted(apiKey)

		if f.pool.AllExhausted() {
			// Rotate anyway so the pool's reset-all fallback re-arms the keys
			// for later calls, but give this call up with the original
			// failing response.
			f.pool.Rotate()
			logger.GetLogger().Error("All API keys have exhausted their quota")
			return resp, nil
		}
		apiKey = f.pool.Rotate()
	}

	// Every key was tried and each came back quota-exhausted; the pool has
	// been reset by Rotate, but this logical call gives up.
	return nil, fmt.Errorf("quota exceeded on all %d API keys", f.pool.Size())
}

func (f *Fetcher) issue(ctx context.Context, rawURL, apiKey string) (*http.Response, error) {
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+sep+"key="+apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("build provider request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	return resp, nil
}

// isQuotaExceededBody checks the provider's error taxonomy: a JSON error
// envelope whose message mentions quota usage.
func isQuotaExceededBody(body []byte) bool {
	var errResp dto.YouTubeErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return false
	}
	msg := errResp.Error.Message
	return msg != "" && (strings.Contains(msg, "quota") ||
		strings.Contains(msg, "Quota") ||
		strings.Contains(msg, "exceeded"))
}
