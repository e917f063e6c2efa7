package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/benthecarman/macro-factor-go/internal/domain"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchFoods",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search foods",
		Description: "Queries the branded and common food collections",
		Tags:        []string{"Search"},
	}, s.handleSearchFoods)
}

type SearchFoodsInput struct {
	Query string `query:"q" required:"true" minLength:"1" doc:"Keyword query"`
}

type SearchFoodsResponse struct {
	Results []domain.SearchFood `json:"results" doc:"Search hits, branded first"`
}

type SearchFoodsOutput struct {
	Body SearchFoodsResponse
}

func (s *Server) handleSearchFoods(ctx context.Context, input *SearchFoodsInput) (*SearchFoodsOutput, error) {
	results, err := s.svc.SearchFoods(ctx, input.Query)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []domain.SearchFood{}
	}
	return &SearchFoodsOutput{Body: SearchFoodsResponse{Results: results}}, nil
}
