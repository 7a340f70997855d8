// internal/nlp/extractor.go
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrExtractorFailed  = errors.New("EXTRACTOR_FAILED")
	ErrExtractorTimeout = errors.New("EXTRACTOR_TIMEOUT")
)

// Extractor is the external linguistic service that turns raw text into typed
// features. The engine never tokenizes text itself; everything it knows about an
// utterance beyond raw substrings comes through this interface.
type Extractor interface {
	Extract(ctx context.Context, text string) (Features, error)
}

// HTTPExtractorConfig configures the remote extractor client.
type HTTPExtractorConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// HTTPExtractor calls the linguistic service over HTTP. Timeouts and transport
// failures surface as errors; the caller owns retry/fallback policy beyond the
// bounded retries configured here.
type HTTPExtractor struct {
	config *HTTPExtractorConfig
	client *http.Client
}

func NewHTTPExtractor(config *HTTPExtractorConfig) *HTTPExtractor {
	return &HTTPExtractor{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

func (e *HTTPExtractor) Extract(ctx context.Context, text string) (Features, error) {
	body, _ := json.Marshal(map[string]string{"text": Normalize(text)})

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= e.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return Features{}, ErrExtractorTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", e.config.BaseURL+"/api/nlp/extract", bytes.NewBuffer(body))
		if err != nil {
			return Features{}, fmt.Errorf("%w: %v", ErrExtractorFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = e.client.Do(req)

		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			return Features{}, ErrExtractorTimeout
		}

		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Features{}, ErrExtractorTimeout
		}
		return Features{}, fmt.Errorf("%w: %v", ErrExtractorFailed, lastErr)
	}
	if resp == nil {
		return Features{}, fmt.Errorf("%w: no successful response after retries", ErrExtractorFailed)
	}
	defer resp.Body.Close()

	var feats Features
	if err := json.NewDecoder(resp.Body).Decode(&feats); err != nil {
		return Features{}, fmt.Errorf("%w: decode error: %v", ErrExtractorFailed, err)
	}
	return feats, nil
}

// StaticExtractor serves canned features keyed by normalized utterance. Intended
// for tests and offline tooling; unknown utterances degrade to a word split so
// substring-based scorers still have something to chew on.
type StaticExtractor struct {
	ByText map[string]Features
}

func (e *StaticExtractor) Extract(_ context.Context, text string) (Features, error) {
	if f, ok := e.ByText[Normalize(text)]; ok {
		return f, nil
	}
	words := Words(text)
	return Features{Terms: words, Nouns: words}, nil
}
