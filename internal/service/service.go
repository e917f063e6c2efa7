// Package service implements the typed operations over the compact document
// schema: profile and goals reads, year-bucket range scans, day-bucket food
// logs, and the daily micro summary sync.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/benthecarman/macro-factor-go/internal/domain"
	"github.com/benthecarman/macro-factor-go/internal/firestore"
	"github.com/benthecarman/macro-factor-go/internal/validation"
)

// DocumentGateway is the document store surface the service depends on.
// *firestore.Client satisfies it; tests substitute an in-memory store.
type DocumentGateway interface {
	Get(ctx context.Context, path string) (*firestore.Document, error)
	List(ctx context.Context, collectionPath string, pageSize int, pageToken string) ([]firestore.Document, string, error)
	ListCollectionIDs(ctx context.Context, parentPath string) ([]string, error)
	RunQuery(ctx context.Context, parentPath string, structuredQuery map[string]any) ([]firestore.Document, error)
	Patch(ctx context.Context, path string, fields map[string]firestore.Value, maskPaths []string) (*firestore.Document, error)
}

// Identity resolves the authenticated account ID.
type Identity interface {
	UserID(ctx context.Context) (string, error)
}

// Searcher queries the food search index.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.SearchFood, error)
}

// Service wires the gateway, identity, and search collaborators into the
// domain operations.
type Service struct {
	store     DocumentGateway
	ident     Identity
	search    Searcher
	logger    *slog.Logger
	validator *validation.Validator

	mu     sync.Mutex
	userID string
}

// New creates the service.
func New(store DocumentGateway, ident Identity, search Searcher, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		ident:     ident,
		search:    search,
		logger:    logger,
		validator: validation.New(),
	}
}

// userIDCached resolves the account ID once and reuses it; the ID is stable
// for the lifetime of the credential set.
func (s *Service) userIDCached(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != "" {
		return s.userID, nil
	}
	uid, err := s.ident.UserID(ctx)
	if err != nil {
		return "", err
	}
	s.userID = uid
	return uid, nil
}

// Profile fetches the user profile document.
func (s *Service) Profile(ctx context.Context) (*domain.UserProfile, error) {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Get(ctx, "users/"+uid)
	if err != nil {
		return nil, err
	}

	profile := domain.ParseUserProfile(doc.Parse())
	return &profile, nil
}

// Goals reads the macro targets from the profile's planner.
func (s *Service) Goals(ctx context.Context) (*domain.Goals, error) {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Get(ctx, "users/"+uid)
	if err != nil {
		return nil, err
	}
	return domain.ParseGoals(doc.Decode())
}

// SearchFoods queries the food search index.
func (s *Service) SearchFoods(ctx context.Context, query string) ([]domain.SearchFood, error) {
	return s.search.Search(ctx, query)
}

// Subcollections lists the collection IDs under the user document, useful
// for schema discovery against an evolving backend.
func (s *Service) Subcollections(ctx context.Context) ([]string, error) {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.ListCollectionIDs(ctx, "users/"+uid)
}

// SampleCollection fetches up to limit parsed documents from one of the
// user's collections.
func (s *Service) SampleCollection(ctx context.Context, collection string, limit int) ([]map[string]any, error) {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return nil, err
	}

	docs, _, err := s.store.List(ctx, "users/"+uid+"/"+collection, limit, "")
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, len(docs))
	for i := range docs {
		out[i] = docs[i].Parse()
	}
	return out, nil
}

// RawDocument fetches a document under the user subtree by its relative
// path (e.g. "food/2024-03-15") and returns the parsed field map. Useful for
// inspecting records the typed operations do not cover.
func (s *Service) RawDocument(ctx context.Context, relPath string) (map[string]any, error) {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Get(ctx, "users/"+uid+"/"+relPath)
	if err != nil {
		return nil, err
	}
	return doc.Parse(), nil
}

// FoodDays returns the most recent day-bucket IDs in the food collection,
// newest first. Day buckets are named by ISO date, so the document name
// ordering is the chronological ordering.
func (s *Service) FoodDays(ctx context.Context, limit int) ([]string, error) {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return nil, err
	}

	docs, err := s.store.RunQuery(ctx, "users/"+uid, map[string]any{
		"from":    []map[string]any{{"collectionId": "food"}},
		"orderBy": []map[string]any{{"field": map[string]any{"fieldPath": "__name__"}, "direction": "DESCENDING"}},
		"limit":   limit,
	})
	if err != nil {
		return nil, err
	}

	days := make([]string, len(docs))
	for i := range docs {
		days[i] = docs[i].ID()
	}
	return days, nil
}
