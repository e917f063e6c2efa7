package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/benthecarman/macro-factor-go/internal/domain"
	"github.com/benthecarman/macro-factor-go/internal/errors"
	"github.com/benthecarman/macro-factor-go/internal/firestore"
	"github.com/benthecarman/macro-factor-go/internal/id"
	"github.com/benthecarman/macro-factor-go/internal/schedule"
)

// formatOne renders a wire amount with one decimal place, the way the app
// writes numeric strings into food entries.
func formatOne(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

// formatWhole renders a wire amount rounded to a whole number.
func formatWhole(v float64) string { return strconv.FormatFloat(v, 'f', 0, 64) }

// GetFoodLog returns the day's food entries ordered by logged time. A
// missing day bucket means nothing was logged; entries soft-deleted by older
// app revisions are filtered out.
func (s *Service) GetFoodLog(ctx context.Context, date time.Time) ([]domain.FoodEntry, error) {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Get(ctx, schedule.DayBucketPath(uid, date))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.FoodEntry
	for key, val := range doc.Decode() {
		if len(key) > 0 && key[0] == '_' {
			continue
		}
		obj, ok := val.(map[string]any)
		if !ok {
			continue
		}
		entry := domain.ParseFoodEntry(date, key, obj)
		if entry.Deleted {
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		hi, mi := entries[i].SortKey()
		hj, mj := entries[j].SortKey()
		if hi != hj {
			return hi < hj
		}
		return mi < mj
	})
	return entries, nil
}

// LogFoodRequest contains fields for a quick-add food entry.
type LogFoodRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
}

// LogFood writes a quick-add food entry: macros entered directly, portioned
// as one 100g serving. Returns the new entry ID.
func (s *Service) LogFood(ctx context.Context, loggedAt time.Time, req LogFoodRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}

	uid, err := s.userIDCached(ctx)
	if err != nil {
		return "", err
	}

	entryID := id.Entry(loggedAt)
	record := map[string]any{
		"t":  req.Name,
		"b":  "Quick Add",
		"c":  formatOne(req.Calories),
		"p":  formatOne(req.Protein),
		"e":  formatOne(req.Carbs),
		"f":  formatOne(req.Fat),
		"w":  "100.0",
		"g":  "100.0",
		"q":  "1.0",
		"y":  "1.0",
		"s":  "serving",
		"u":  "serving",
		"h":  strconv.Itoa(loggedAt.Hour()),
		"mi": strconv.Itoa(loggedAt.Minute()),
		"k":  "n",
		"id": id.Food(loggedAt),
		"ca": entryID,
		"ua": entryID,
		"ef": true,
		"d":  false,
		"x":  "13",
		"m":  []any{map[string]any{"m": "serving", "q": "1.0", "w": "100.0"}},
	}

	_, err = s.store.Patch(ctx,
		schedule.DayBucketPath(uid, loggedAt),
		map[string]firestore.Value{entryID: firestore.Encode(record)},
		[]string{entryID},
	)
	if err != nil {
		return "", err
	}

	s.logger.Info("logged food entry", "entry_id", entryID, "name", req.Name)
	return entryID, nil
}

// LogSearchedFoodRequest contains fields for logging a search result.
type LogSearchedFoodRequest struct {
	Food     *domain.SearchFood `json:"food" validate:"required"`
	Serving  *domain.Serving    `json:"serving" validate:"required"`
	Quantity float64            `json:"quantity" validate:"gt=0"`
}

// LogSearchedFood writes a food entry from a search result with a chosen
// serving and quantity. Macros and micronutrients are stored per 100g with
// servingGrams=100, so the consumed amount comes entirely from the
// quantity-times-gram-weight multiplier.
func (s *Service) LogSearchedFood(ctx context.Context, loggedAt time.Time, req LogSearchedFoodRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}
	food, serving, quantity := req.Food, req.Serving, req.Quantity
	if food.FoodID == "" {
		return "", errors.Validation("food id is required")
	}
	if serving.GramWeight <= 0 {
		return "", errors.Validation("serving gram weight must be positive")
	}

	uid, err := s.userIDCached(ctx)
	if err != nil {
		return "", err
	}

	entryID := id.Entry(loggedAt)
	record := map[string]any{
		"t":  food.Name,
		"c":  formatOne(food.CaloriesPer100g),
		"p":  formatOne(food.ProteinPer100g),
		"e":  formatOne(food.CarbsPer100g),
		"f":  formatOne(food.FatPer100g),
		"g":  "100.0",
		"w":  formatOne(serving.GramWeight),
		"q":  formatOne(quantity),
		"y":  formatOne(quantity),
		"s":  serving.Description,
		"u":  serving.Description,
		"h":  strconv.Itoa(loggedAt.Hour()),
		"mi": strconv.Itoa(loggedAt.Minute()),
		"k":  "t",
		"id": food.FoodID,
		"ca": entryID,
		"ua": entryID,
		"ef": true,
		"d":  false,
	}
	if food.Brand != "" {
		record["b"] = food.Brand
	}
	for code, per100g := range food.NutrientsPer100g {
		record[code] = formatOne(per100g)
	}

	servings := make([]any, 0, len(food.Servings))
	for _, sv := range food.Servings {
		servings = append(servings, map[string]any{
			"m": sv.Description,
			"q": formatOne(sv.Amount),
			"w": formatOne(sv.GramWeight),
		})
	}
	if len(servings) > 0 {
		record["m"] = servings
	}

	_, err = s.store.Patch(ctx,
		schedule.DayBucketPath(uid, loggedAt),
		map[string]firestore.Value{entryID: firestore.Encode(record)},
		[]string{entryID},
	)
	if err != nil {
		return "", err
	}

	s.logger.Info("logged searched food", "entry_id", entryID, "food_id", food.FoodID)
	return entryID, nil
}

// DeleteFoodEntry removes an entry from a day bucket: the entry key goes in
// the mask with no corresponding field, which the store treats as a field
// delete. Sibling entries are untouched.
func (s *Service) DeleteFoodEntry(ctx context.Context, date time.Time, entryID string) error {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return err
	}

	_, err = s.store.Patch(ctx, schedule.DayBucketPath(uid, date), nil, []string{entryID})
	if err != nil {
		return err
	}

	s.logger.Info("deleted food entry", "entry_id", entryID)
	return nil
}
