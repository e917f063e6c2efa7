package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/benthecarman/macro-factor-go/internal/domain"
	"github.com/benthecarman/macro-factor-go/internal/errors"
	"github.com/benthecarman/macro-factor-go/internal/service"
)

func (s *Server) registerFoodRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFoodDays",
		Method:      http.MethodGet,
		Path:        "/api/v1/food",
		Summary:     "List food days",
		Description: "Returns the most recent dates with food logs, newest first",
		Tags:        []string{"Food"},
	}, s.handleListFoodDays)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFoodLog",
		Method:      http.MethodGet,
		Path:        "/api/v1/food/{date}",
		Summary:     "Get food log",
		Description: "Returns a day's food entries ordered by logged time",
		Tags:        []string{"Food"},
	}, s.handleGetFoodLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "logFood",
		Method:      http.MethodPost,
		Path:        "/api/v1/food/{date}",
		Summary:     "Log food",
		Description: "Writes a quick-add food entry with directly entered macros",
		Tags:        []string{"Food"},
	}, s.handleLogFood)

	huma.Register(s.api, huma.Operation{
		OperationID: "logSearchedFood",
		Method:      http.MethodPost,
		Path:        "/api/v1/food/{date}/from-search",
		Summary:     "Log searched food",
		Description: "Writes a food entry from a search result with a chosen serving",
		Tags:        []string{"Food"},
	}, s.handleLogSearchedFood)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteFoodEntry",
		Method:      http.MethodDelete,
		Path:        "/api/v1/food/{date}/{entryID}",
		Summary:     "Delete food entry",
		Description: "Removes an entry from a day's food log",
		Tags:        []string{"Food"},
	}, s.handleDeleteFoodEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "syncFoodDay",
		Method:      http.MethodPost,
		Path:        "/api/v1/food/{date}/sync",
		Summary:     "Sync day summary",
		Description: "Recomputes the day's micro summary from its food entries",
		Tags:        []string{"Food"},
	}, s.handleSyncFoodDay)
}

// === DTOs ===

type FoodEntryResponse struct {
	EntryID string `json:"entryId" doc:"Entry ID"`
	Date    string `json:"date" doc:"Log date (YYYY-MM-DD)"`
	Name    string `json:"name,omitempty" doc:"Food name"`
	Brand   string `json:"brand,omitempty" doc:"Brand"`

	Calories *float64 `json:"calories,omitempty" doc:"Consumed calories (kcal)"`
	Protein  *float64 `json:"protein,omitempty" doc:"Consumed protein (g)"`
	Carbs    *float64 `json:"carbs,omitempty" doc:"Consumed carbs (g)"`
	Fat      *float64 `json:"fat,omitempty" doc:"Consumed fat (g)"`

	Quantity    *float64 `json:"quantity,omitempty" doc:"Display quantity"`
	ServingUnit string   `json:"servingUnit,omitempty" doc:"Display serving unit"`
	Hour        string   `json:"hour,omitempty" doc:"Hour logged"`
	Minute      string   `json:"minute,omitempty" doc:"Minute logged"`
	FoodID      string   `json:"foodId,omitempty" doc:"Food ID"`
	Deleted     bool     `json:"deleted" doc:"Deleted flag"`
}

type FoodDaysInput struct {
	Limit int `query:"limit" default:"14" minimum:"1" maximum:"100" doc:"Number of days to return"`
}

type FoodDaysResponse struct {
	Days []string `json:"days" doc:"Dates with food logs, newest first"`
}

type FoodDaysOutput struct {
	Body FoodDaysResponse
}

type FoodDateInput struct {
	Date string `path:"date" doc:"Log date (YYYY-MM-DD)"`
}

type FoodLogResponse struct {
	Entries []FoodEntryResponse `json:"entries" doc:"Food entries ordered by logged time"`
}

type FoodLogOutput struct {
	Body FoodLogResponse
}

type LogFoodRequest struct {
	Name     string  `json:"name" minLength:"1" doc:"Food name"`
	Calories float64 `json:"calories" minimum:"0" doc:"Calories (kcal)"`
	Protein  float64 `json:"protein" minimum:"0" doc:"Protein (g)"`
	Carbs    float64 `json:"carbs" minimum:"0" doc:"Carbs (g)"`
	Fat      float64 `json:"fat" minimum:"0" doc:"Fat (g)"`
	Time     string  `json:"time,omitempty" doc:"Logged time (HH:MM), defaults to noon"`
}

type LogFoodInput struct {
	Date string `path:"date" doc:"Log date (YYYY-MM-DD)"`
	Body LogFoodRequest
}

type LogFoodResponse struct {
	EntryID string `json:"entryId" doc:"ID of the new entry"`
}

type LogFoodOutput struct {
	Body LogFoodResponse
}

type LogSearchedFoodRequest struct {
	Food     domain.SearchFood `json:"food" doc:"Search result to log"`
	Serving  domain.Serving    `json:"serving" doc:"Chosen serving"`
	Quantity float64           `json:"quantity" minimum:"0" doc:"Number of servings"`
	Time     string            `json:"time,omitempty" doc:"Logged time (HH:MM), defaults to noon"`
}

type LogSearchedFoodInput struct {
	Date string `path:"date" doc:"Log date (YYYY-MM-DD)"`
	Body LogSearchedFoodRequest
}

type DeleteFoodEntryInput struct {
	Date    string `path:"date" doc:"Log date (YYYY-MM-DD)"`
	EntryID string `path:"entryID" doc:"Entry ID"`
}

// === Handlers ===

func (s *Server) handleListFoodDays(ctx context.Context, input *FoodDaysInput) (*FoodDaysOutput, error) {
	days, err := s.svc.FoodDays(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	if days == nil {
		days = []string{}
	}
	return &FoodDaysOutput{Body: FoodDaysResponse{Days: days}}, nil
}

func (s *Server) handleGetFoodLog(ctx context.Context, input *FoodDateInput) (*FoodLogOutput, error) {
	date, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}

	entries, err := s.svc.GetFoodLog(ctx, date)
	if err != nil {
		return nil, err
	}

	resp := make([]FoodEntryResponse, len(entries))
	for i := range entries {
		resp[i] = mapFoodEntryResponse(&entries[i])
	}
	return &FoodLogOutput{Body: FoodLogResponse{Entries: resp}}, nil
}

func (s *Server) handleLogFood(ctx context.Context, input *LogFoodInput) (*LogFoodOutput, error) {
	loggedAt, err := loggedAtFrom(input.Date, input.Body.Time)
	if err != nil {
		return nil, err
	}

	entryID, err := s.svc.LogFood(ctx, loggedAt, service.LogFoodRequest{
		Name:     input.Body.Name,
		Calories: input.Body.Calories,
		Protein:  input.Body.Protein,
		Carbs:    input.Body.Carbs,
		Fat:      input.Body.Fat,
	})
	if err != nil {
		return nil, err
	}
	return &LogFoodOutput{Body: LogFoodResponse{EntryID: entryID}}, nil
}

func (s *Server) handleLogSearchedFood(ctx context.Context, input *LogSearchedFoodInput) (*LogFoodOutput, error) {
	loggedAt, err := loggedAtFrom(input.Date, input.Body.Time)
	if err != nil {
		return nil, err
	}

	entryID, err := s.svc.LogSearchedFood(ctx, loggedAt, service.LogSearchedFoodRequest{
		Food:     &input.Body.Food,
		Serving:  &input.Body.Serving,
		Quantity: input.Body.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return &LogFoodOutput{Body: LogFoodResponse{EntryID: entryID}}, nil
}

func (s *Server) handleDeleteFoodEntry(ctx context.Context, input *DeleteFoodEntryInput) (*MessageOutput, error) {
	date, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}

	if err := s.svc.DeleteFoodEntry(ctx, date, input.EntryID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Entry deleted"}}, nil
}

func (s *Server) handleSyncFoodDay(ctx context.Context, input *FoodDateInput) (*MessageOutput, error) {
	date, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}

	if err := s.svc.SyncDay(ctx, date); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Day synced"}}, nil
}

// === Helpers ===

// loggedAtFrom combines a log date with an optional HH:MM time of day.
func loggedAtFrom(dateStr, timeStr string) (time.Time, error) {
	date, err := parseDate("date", dateStr)
	if err != nil {
		return time.Time{}, err
	}
	if timeStr == "" {
		return date.Add(12 * time.Hour), nil
	}

	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return time.Time{}, errors.Validationf("time must be HH:MM, got %q", timeStr)
	}
	return date.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}

func mapFoodEntryResponse(e *domain.FoodEntry) FoodEntryResponse {
	return FoodEntryResponse{
		EntryID:     e.EntryID,
		Date:        e.Date.Format(dateFormat),
		Name:        e.Name,
		Brand:       e.Brand,
		Calories:    e.Calories(),
		Protein:     e.Protein(),
		Carbs:       e.Carbs(),
		Fat:         e.Fat(),
		Quantity:    e.Quantity,
		ServingUnit: e.ServingUnit,
		Hour:        e.Hour,
		Minute:      e.Minute,
		FoodID:      e.FoodID,
		Deleted:     e.Deleted,
	}
}
