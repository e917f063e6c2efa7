// Package search queries the food search index. The index is a Typesense
// cluster holding two collections, branded and common foods; one multi-search
// request queries both and the collection a hit came from determines the
// branded flag on the result.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/benthecarman/macro-factor-go/internal/config"
	"github.com/benthecarman/macro-factor-go/internal/domain"
	"github.com/benthecarman/macro-factor-go/internal/errors"
	"github.com/benthecarman/macro-factor-go/internal/ratelimit"
)

const defaultPerPage = 20

// Client queries the food search index.
type Client struct {
	http    *http.Client
	cfg     config.SearchConfig
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger
}

// NewClient creates a search client from the provider configuration.
func NewClient(cfg config.SearchConfig, logger *slog.Logger) *Client {
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		cfg:     cfg,
		limiter: ratelimit.New(cfg.RequestsPerSecond, 3),
		logger:  logger,
	}
}

type multiSearchRequest struct {
	Searches []searchQuery `json:"searches"`
}

type searchQuery struct {
	Collection string `json:"collection"`
	Q          string `json:"q"`
	QueryBy    string `json:"query_by"`
	PerPage    int    `json:"per_page"`
}

type multiSearchResponse struct {
	Results []struct {
		Hits []struct {
			Document map[string]any `json:"document"`
		} `json:"hits"`
	} `json:"results"`
}

// Search runs the keyword query against the branded and common collections
// and returns the merged hits, branded first.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchFood, error) {
	if c.cfg.BaseURL == "" {
		return nil, errors.Internal("search provider is not configured")
	}

	reqBody := multiSearchRequest{
		Searches: []searchQuery{
			{Collection: c.cfg.BrandedCollection, Q: query, QueryBy: "foodDesc,brandName", PerPage: defaultPerPage},
			{Collection: c.cfg.CommonCollection, Q: query, QueryBy: "foodDesc", PerPage: defaultPerPage},
		},
	}
	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "encode search request")
	}

	endpoint, err := url.Parse(c.cfg.BaseURL + "/multi_search")
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInternal, "parse search url %s", c.cfg.BaseURL)
	}

	if err := c.limiter.Wait(ctx, endpoint.Host); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-TYPESENSE-API-KEY", c.cfg.APIKey)

	c.logger.Debug("food search", "query", query)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Transport("search failed", resp.StatusCode, string(body))
	}

	var result multiSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(err, errors.CodeDecode, "decode search response")
	}

	var foods []domain.SearchFood
	for i, r := range result.Results {
		branded := i == 0
		for _, h := range r.Hits {
			if h.Document == nil {
				continue
			}
			foods = append(foods, domain.ParseSearchFood(h.Document, branded))
		}
	}
	return foods, nil
}
