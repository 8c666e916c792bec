// Package semantic provides the similarity-search fallback over the
// players index. It is only consulted after the pattern and NL→SQL
// strategies fail, and for fuzzy "did you mean" suggestions.
package semantic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// Match is one similarity hit, ordered by descending score.
type Match struct {
	PlayerID int     `json:"player_id"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Country  string  `json:"country"`
	Score    float64 `json:"score"`
}

// Searcher is implemented by Service and faked in tests.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Match, error)
}

// Service wraps the go-elasticsearch client.
type Service struct {
	client *elasticsearch.Client
	index  string
}

type Config struct {
	Scheme   string
	Host     string
	Port     int
	User     string
	Password string
	Index    string
	Timeout  time.Duration
}

func New(cfg Config) (*Service, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{fmt.Sprintf("%s://%s:%d", cfg.Scheme, cfg.Host, cfg.Port)},
	}
	if cfg.User != "" {
		esCfg.Username = cfg.User
		esCfg.Password = cfg.Password
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch.NewClient: %w", err)
	}

	index := cfg.Index
	if index == "" {
		index = "players"
	}
	return &Service{client: client, index: index}, nil
}

// minScore filters out barely-related hits, mirroring the similarity
// threshold the index was built for.
const minScore = 0.5

// Search runs a fuzzy multi-field match over player name, role, country
// and profile text, returning up to limit hits ordered by score.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 5
	}

	body := map[string]any{
		"size":      limit,
		"min_score": minScore,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "role", "country", "profile_text"},
				"fuzziness": "AUTO",
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search body: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Score  float64 `json:"_score"`
				Source struct {
					PlayerID int    `json:"player_id"`
					Name     string `json:"name"`
					Role     string `json:"role"`
					Country  string `json:"country"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	matches := make([]Match, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		matches = append(matches, Match{
			PlayerID: hit.Source.PlayerID,
			Name:     hit.Source.Name,
			Role:     hit.Source.Role,
			Country:  hit.Source.Country,
			Score:    hit.Score,
		})
	}
	return matches, nil
}

// Ping checks cluster connectivity, for health reporting.
func (s *Service) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("ping error: %s", res.Status())
	}
	return nil
}
