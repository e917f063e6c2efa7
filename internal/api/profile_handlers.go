package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/benthecarman/macro-factor-go/internal/domain"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get profile",
		Description: "Returns the user profile document",
		Tags:        []string{"Profile"},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGoals",
		Method:      http.MethodGet,
		Path:        "/api/v1/goals",
		Summary:     "Get goals",
		Description: "Returns the daily macro targets from the user's planner",
		Tags:        []string{"Profile"},
	}, s.handleGetGoals)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSubcollections",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections",
		Summary:     "List collections",
		Description: "Lists the collection IDs under the user document",
		Tags:        []string{"Discovery"},
	}, s.handleListSubcollections)

	huma.Register(s.api, huma.Operation{
		OperationID: "sampleCollection",
		Method:      http.MethodGet,
		Path:        "/api/v1/collections/{name}",
		Summary:     "Sample collection",
		Description: "Returns a few parsed documents from a collection",
		Tags:        []string{"Discovery"},
	}, s.handleSampleCollection)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRawDocument",
		Method:      http.MethodGet,
		Path:        "/api/v1/document",
		Summary:     "Get raw document",
		Description: "Returns a parsed document by its path under the user subtree",
		Tags:        []string{"Discovery"},
	}, s.handleGetRawDocument)
}

type ProfileOutput struct {
	Body domain.UserProfile
}

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	profile, err := s.svc.Profile(ctx)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *profile}, nil
}

type GoalsOutput struct {
	Body domain.Goals
}

func (s *Server) handleGetGoals(ctx context.Context, _ *struct{}) (*GoalsOutput, error) {
	goals, err := s.svc.Goals(ctx)
	if err != nil {
		return nil, err
	}
	return &GoalsOutput{Body: *goals}, nil
}

type SubcollectionsResponse struct {
	Collections []string `json:"collections" doc:"Collection IDs under the user document"`
}

type SubcollectionsOutput struct {
	Body SubcollectionsResponse
}

func (s *Server) handleListSubcollections(ctx context.Context, _ *struct{}) (*SubcollectionsOutput, error) {
	ids, err := s.svc.Subcollections(ctx)
	if err != nil {
		return nil, err
	}
	return &SubcollectionsOutput{Body: SubcollectionsResponse{Collections: ids}}, nil
}

type SampleCollectionInput struct {
	Name  string `path:"name" doc:"Collection name"`
	Limit int    `query:"limit" default:"5" minimum:"1" maximum:"50" doc:"Number of documents to fetch"`
}

type SampleCollectionResponse struct {
	Documents []map[string]any `json:"documents" doc:"Parsed documents"`
}

type SampleCollectionOutput struct {
	Body SampleCollectionResponse
}

func (s *Server) handleSampleCollection(ctx context.Context, input *SampleCollectionInput) (*SampleCollectionOutput, error) {
	docs, err := s.svc.SampleCollection(ctx, input.Name, input.Limit)
	if err != nil {
		return nil, err
	}
	return &SampleCollectionOutput{Body: SampleCollectionResponse{Documents: docs}}, nil
}

type RawDocumentInput struct {
	Path string `query:"path" required:"true" minLength:"1" doc:"Document path under the user subtree, e.g. food/2024-03-15"`
}

type RawDocumentOutput struct {
	Body map[string]any
}

func (s *Server) handleGetRawDocument(ctx context.Context, input *RawDocumentInput) (*RawDocumentOutput, error) {
	doc, err := s.svc.RawDocument(ctx, input.Path)
	if err != nil {
		return nil, err
	}
	return &RawDocumentOutput{Body: doc}, nil
}
