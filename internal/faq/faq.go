// internal/faq/faq.go
package faq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"chatbot-workers/internal/common/config"
	"chatbot-workers/internal/common/errors"
	"chatbot-workers/internal/engine"
	"chatbot-workers/internal/nlp"
)

// Entry is one FAQ document as indexed in Elasticsearch. Topics and Nouns are
// pre-extracted from the question at indexing time so ranking does not need to
// call the extractor per candidate.
type Entry struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Topics   []string `json:"topics"`
	Nouns    []string `json:"nouns"`
}

// Match is a ranked FAQ entry with its feature-overlap score.
type Match struct {
	Entry   Entry `json:"entry"`
	Overlap int   `json:"overlap"`
}

// Searcher retrieves FAQ candidates by full-text search, then ranks them by
// exact feature overlap with the user utterance.
type Searcher struct {
	client *elasticsearch.Client
	config config.FAQConfig
}

func NewSearcher(client *elasticsearch.Client, cfg config.FAQConfig) *Searcher {
	return &Searcher{client: client, config: cfg}
}

// Search runs a multi_match query over the FAQ index and returns up to
// CandidateSize entries, best full-text score first.
func (s *Searcher) Search(ctx context.Context, utterance string) ([]Entry, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  utterance,
				"fields": []string{"question^3", "topics^2", "answer"},
				"type":   "best_fields",
			},
		},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	size := s.config.CandidateSize
	req := esapi.SearchRequest{
		Index: []string{s.config.Index},
		Body:  strings.NewReader(string(raw)),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewFAQSearchTimeoutError()
		}
		return nil, errors.NewFAQSearchFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return nil, errors.NewIndexNotFoundError(s.config.Index)
		}
		return nil, errors.NewFAQSearchFailedError(
			fmt.Errorf("search returned status %s", res.Status()))
	}

	var envelope struct {
		Hits struct {
			Hits []struct {
				ID     string `json:"_id"`
				Source Entry  `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, errors.NewFAQSearchFailedError(
			fmt.Errorf("decode search response: %w", err))
	}

	entries := make([]Entry, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		entry := hit.Source
		if entry.ID == "" {
			entry.ID = hit.ID
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Rank scores candidates by exact topic and noun overlap with the utterance
// features and returns the best match, or nil when no candidate reaches
// minOverlap. Full-text order breaks overlap ties, so the first best candidate
// wins.
func Rank(utterance nlp.Features, candidates []Entry, minOverlap int) *Match {
	var best *Match
	for _, candidate := range candidates {
		score := engine.OverlapScore(utterance, nlp.Features{
			Topics: candidate.Topics,
			Nouns:  candidate.Nouns,
		})
		if score < minOverlap {
			continue
		}
		if best == nil || score > best.Overlap {
			best = &Match{Entry: candidate, Overlap: score}
		}
	}
	return best
}
