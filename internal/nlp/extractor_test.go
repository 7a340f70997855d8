// internal/nlp/extractor_test.go
package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExtractor(baseURL string, maxRetries int) *HTTPExtractor {
	return NewHTTPExtractor(&HTTPExtractorConfig{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
	})
}

func TestHTTPExtractor_Extract(t *testing.T) {
	var gotPath, gotContentType, gotText string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		gotText = payload["text"]

		json.NewEncoder(w).Encode(Features{
			Topics: []string{"paiement"},
			Nouns:  []string{"paiement", "commande"},
			Verbs:  []string{"fonctionner"},
		})
	}))
	defer srv.Close()

	e := newTestExtractor(srv.URL, 2)
	feats, err := e.Extract(context.Background(), "  Comment fonctionne le PAIEMENT ?  ")
	require.NoError(t, err)

	assert.Equal(t, "/api/nlp/extract", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "comment fonctionne le paiement ?", gotText)

	assert.Equal(t, []string{"paiement"}, feats.Topics)
	assert.Equal(t, []string{"paiement", "commande"}, feats.Nouns)
	assert.Equal(t, []string{"fonctionner"}, feats.Verbs)
}

func TestHTTPExtractor_RetriesAfterServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(Features{Topics: []string{"support"}})
	}))
	defer srv.Close()

	e := newTestExtractor(srv.URL, 2)
	feats, err := e.Extract(context.Background(), "j'ai besoin d'aide")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{"support"}, feats.Topics)
}

func TestHTTPExtractor_ExhaustedRetriesFail(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := newTestExtractor(srv.URL, 2)
	_, err := e.Extract(context.Background(), "bonjour")

	assert.ErrorIs(t, err, ErrExtractorFailed)
	assert.Equal(t, 3, calls, "initial attempt plus MaxRetries")
}

func TestHTTPExtractor_DeadlineExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(Features{})
	}))
	defer srv.Close()

	e := newTestExtractor(srv.URL, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := e.Extract(ctx, "bonjour")
	assert.ErrorIs(t, err, ErrExtractorTimeout)
}

func TestHTTPExtractor_CancelStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			cancel()
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := newTestExtractor(srv.URL, 5)
	_, err := e.Extract(ctx, "bonjour")

	assert.ErrorIs(t, err, ErrExtractorTimeout)
	assert.Equal(t, 2, calls, "no further attempts once the context is cancelled")
}
