package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/benthecarman/macro-factor-go/internal/domain"
)

func (s *Server) registerEntryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getWeightEntries",
		Method:      http.MethodGet,
		Path:        "/api/v1/weight",
		Summary:     "Get weight entries",
		Description: "Returns weight measurements in a date range, ascending",
		Tags:        []string{"Weight"},
	}, s.handleGetWeightEntries)

	huma.Register(s.api, huma.Operation{
		OperationID: "logWeight",
		Method:      http.MethodPost,
		Path:        "/api/v1/weight",
		Summary:     "Log weight",
		Description: "Writes a weight measurement for a date",
		Tags:        []string{"Weight"},
	}, s.handleLogWeight)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSteps",
		Method:      http.MethodGet,
		Path:        "/api/v1/steps",
		Summary:     "Get steps",
		Description: "Returns daily step counts in a date range, ascending",
		Tags:        []string{"Steps"},
	}, s.handleGetSteps)

	huma.Register(s.api, huma.Operation{
		OperationID: "getNutrition",
		Method:      http.MethodGet,
		Path:        "/api/v1/nutrition",
		Summary:     "Get nutrition summaries",
		Description: "Returns daily nutrition summaries in a date range, ascending",
		Tags:        []string{"Nutrition"},
	}, s.handleGetNutrition)

	huma.Register(s.api, huma.Operation{
		OperationID: "logNutrition",
		Method:      http.MethodPost,
		Path:        "/api/v1/nutrition",
		Summary:     "Log nutrition summary",
		Description: "Writes a daily nutrition summary",
		Tags:        []string{"Nutrition"},
	}, s.handleLogNutrition)
}

// DateRangeInput is shared by the range-scan endpoints.
type DateRangeInput struct {
	Start string `query:"start" required:"true" doc:"Range start (YYYY-MM-DD, inclusive)"`
	End   string `query:"end" required:"true" doc:"Range end (YYYY-MM-DD, inclusive)"`
}

type WeightEntriesResponse struct {
	Entries []domain.ScaleEntry `json:"entries" doc:"Weight entries, date ascending"`
}

type WeightEntriesOutput struct {
	Body WeightEntriesResponse
}

func (s *Server) handleGetWeightEntries(ctx context.Context, input *DateRangeInput) (*WeightEntriesOutput, error) {
	start, end, err := parseDateRange(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	entries, err := s.svc.GetWeightEntries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.ScaleEntry{}
	}
	return &WeightEntriesOutput{Body: WeightEntriesResponse{Entries: entries}}, nil
}

type LogWeightRequest struct {
	Date     string   `json:"date" doc:"Measurement date (YYYY-MM-DD)"`
	WeightKg float64  `json:"weightKg" minimum:"1" doc:"Weight in kilograms"`
	BodyFat  *float64 `json:"bodyFat,omitempty" doc:"Body fat percentage"`
}

type LogWeightInput struct {
	Body LogWeightRequest
}

type MessageResponse struct {
	Message string `json:"message" doc:"Result message"`
}

type MessageOutput struct {
	Body MessageResponse
}

func (s *Server) handleLogWeight(ctx context.Context, input *LogWeightInput) (*MessageOutput, error) {
	date, err := parseDate("date", input.Body.Date)
	if err != nil {
		return nil, err
	}

	if err := s.svc.LogWeight(ctx, date, input.Body.WeightKg, input.Body.BodyFat); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Weight logged"}}, nil
}

type StepsResponse struct {
	Entries []domain.StepEntry `json:"entries" doc:"Step entries, date ascending"`
}

type StepsOutput struct {
	Body StepsResponse
}

func (s *Server) handleGetSteps(ctx context.Context, input *DateRangeInput) (*StepsOutput, error) {
	start, end, err := parseDateRange(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	entries, err := s.svc.GetSteps(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.StepEntry{}
	}
	return &StepsOutput{Body: StepsResponse{Entries: entries}}, nil
}

type NutritionResponse struct {
	Entries []domain.NutritionSummary `json:"entries" doc:"Nutrition summaries, date ascending"`
}

type NutritionOutput struct {
	Body NutritionResponse
}

func (s *Server) handleGetNutrition(ctx context.Context, input *DateRangeInput) (*NutritionOutput, error) {
	start, end, err := parseDateRange(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	entries, err := s.svc.GetNutrition(ctx, start, end)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.NutritionSummary{}
	}
	return &NutritionOutput{Body: NutritionResponse{Entries: entries}}, nil
}

type LogNutritionRequest struct {
	Date     string   `json:"date" doc:"Summary date (YYYY-MM-DD)"`
	Calories float64  `json:"calories" minimum:"0" doc:"Calories (kcal)"`
	Protein  *float64 `json:"protein,omitempty" doc:"Protein (g)"`
	Carbs    *float64 `json:"carbs,omitempty" doc:"Carbs (g)"`
	Fat      *float64 `json:"fat,omitempty" doc:"Fat (g)"`
}

type LogNutritionInput struct {
	Body LogNutritionRequest
}

func (s *Server) handleLogNutrition(ctx context.Context, input *LogNutritionInput) (*MessageOutput, error) {
	date, err := parseDate("date", input.Body.Date)
	if err != nil {
		return nil, err
	}

	if err := s.svc.LogNutrition(ctx, date, input.Body.Calories, input.Body.Protein, input.Body.Carbs, input.Body.Fat); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Nutrition logged"}}, nil
}
