package search

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benthecarman/macro-factor-go/internal/config"
	"github.com/benthecarman/macro-factor-go/internal/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.SearchConfig{
		BaseURL:           srv.URL,
		APIKey:            "search-key",
		BrandedCollection: "foods_branded",
		CommonCollection:  "foods_common",
		RequestsPerSecond: 100,
	}, slog.New(slog.DiscardHandler))
}

func TestSearchQueriesBothCollections(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/multi_search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("X-TYPESENSE-API-KEY"); got != "search-key" {
			t.Errorf("api key header = %q", got)
		}

		var req multiSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Searches) != 2 {
			t.Fatalf("searches = %d, want 2", len(req.Searches))
		}
		if req.Searches[0].Collection != "foods_branded" || req.Searches[1].Collection != "foods_common" {
			t.Errorf("collections = %s/%s", req.Searches[0].Collection, req.Searches[1].Collection)
		}
		if req.Searches[0].Q != "chicken breast" {
			t.Errorf("q = %q", req.Searches[0].Q)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"results": []any{
				map[string]any{"hits": []any{
					map[string]any{"document": map[string]any{
						"id":        "b-1",
						"foodDesc":  "Chicken Breast Strips",
						"brandName": "Tyson",
						"208":       "120",
						"203":       "24",
					}},
				}},
				map[string]any{"hits": []any{
					map[string]any{"document": map[string]any{
						"id":       "c-1",
						"foodDesc": "Chicken breast, grilled",
						"208":      165.0,
						"203":      31.0,
						"204":      3.6,
						"205":      "0",
						"weights": []any{
							map[string]any{"m": "breast", "q": 1.0, "w": 172.0},
						},
						"dfSrv": 0.0,
					}},
				}},
			},
		})
	}))

	foods, err := c.Search(context.Background(), "chicken breast")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(foods) != 2 {
		t.Fatalf("results = %d, want 2", len(foods))
	}

	if !foods[0].Branded || foods[0].Brand != "Tyson" {
		t.Errorf("first hit should be branded: %+v", foods[0])
	}
	if foods[1].Branded {
		t.Errorf("second hit should be common: %+v", foods[1])
	}
	if foods[1].CaloriesPer100g != 165 || foods[1].ProteinPer100g != 31 {
		t.Errorf("macros = %v/%v", foods[1].CaloriesPer100g, foods[1].ProteinPer100g)
	}
	if foods[1].DefaultServing == nil || foods[1].DefaultServing.GramWeight != 172 {
		t.Errorf("default serving = %+v", foods[1].DefaultServing)
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))

	_, err := c.Search(context.Background(), "x")
	if !errors.Is(err, errors.ErrTransport) {
		t.Errorf("err = %v, want ErrTransport", err)
	}
}

func TestSearchUnconfigured(t *testing.T) {
	c := NewClient(config.SearchConfig{RequestsPerSecond: 1}, slog.New(slog.DiscardHandler))
	if _, err := c.Search(context.Background(), "x"); err == nil {
		t.Error("expected error for unconfigured provider")
	}
}
