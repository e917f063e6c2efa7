package service

import (
	"context"
	"sort"
	"time"

	"github.com/benthecarman/macro-factor-go/internal/domain"
	"github.com/benthecarman/macro-factor-go/internal/errors"
	"github.com/benthecarman/macro-factor-go/internal/firestore"
	"github.com/benthecarman/macro-factor-go/internal/schedule"
)

// scanYearBuckets fetches every year bucket touched by the range, skips
// missing years, and calls visit for each valid day record within [start,
// end]. A missing bucket is "no data for that year"; any other fetch error
// aborts the scan so partial results are never silently mistaken for
// complete ones.
func (s *Service) scanYearBuckets(ctx context.Context, collection string, start, end time.Time, visit func(date time.Time, obj map[string]any)) error {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return err
	}

	for _, year := range schedule.YearsIn(start, end) {
		doc, err := s.store.Get(ctx, schedule.YearBucketPath(uid, collection, year))
		if err != nil {
			if errors.Is(err, errors.ErrNotFound) {
				continue
			}
			return err
		}

		for key, val := range doc.Decode() {
			date, ok := schedule.ParseDayKey(year, key)
			if !ok || !schedule.InRange(date, start, end) {
				continue
			}
			obj, ok := val.(map[string]any)
			if !ok {
				continue
			}
			visit(date, obj)
		}
	}
	return nil
}

// GetWeightEntries returns the weight measurements in [start, end], date
// ascending.
func (s *Service) GetWeightEntries(ctx context.Context, start, end time.Time) ([]domain.ScaleEntry, error) {
	var entries []domain.ScaleEntry
	err := s.scanYearBuckets(ctx, schedule.CollectionScale, start, end, func(date time.Time, obj map[string]any) {
		entries = append(entries, domain.ParseScaleEntry(date, obj))
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

// GetSteps returns the step counts in [start, end], date ascending.
func (s *Service) GetSteps(ctx context.Context, start, end time.Time) ([]domain.StepEntry, error) {
	var entries []domain.StepEntry
	err := s.scanYearBuckets(ctx, schedule.CollectionSteps, start, end, func(date time.Time, obj map[string]any) {
		entries = append(entries, domain.ParseStepEntry(date, obj))
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

// GetNutrition returns the daily nutrition summaries in [start, end], date
// ascending.
func (s *Service) GetNutrition(ctx context.Context, start, end time.Time) ([]domain.NutritionSummary, error) {
	var entries []domain.NutritionSummary
	err := s.scanYearBuckets(ctx, schedule.CollectionNutrition, start, end, func(date time.Time, obj map[string]any) {
		entries = append(entries, domain.ParseNutritionSummary(date, obj))
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

// LogWeight writes a weight measurement for a date. Weight is in kilograms;
// a nil bodyFat is stored as an explicit null. Only that date's key in the
// year bucket is touched.
func (s *Service) LogWeight(ctx context.Context, date time.Time, weightKg float64, bodyFat *float64) error {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return err
	}

	record := map[string]any{
		"w":  weightKg,
		"s":  "m",
		"do": nil,
	}
	if bodyFat != nil {
		record["f"] = *bodyFat
	} else {
		record["f"] = nil
	}

	mmdd := schedule.MMDD(date)
	_, err = s.store.Patch(ctx,
		schedule.YearBucketPath(uid, schedule.CollectionScale, date.Year()),
		map[string]firestore.Value{mmdd: firestore.Encode(record)},
		[]string{mmdd},
	)
	return err
}

// LogNutrition writes a daily nutrition summary. Calories are required; the
// other macros are stored as empty strings when absent, matching what the
// app writes for untracked macros.
func (s *Service) LogNutrition(ctx context.Context, date time.Time, calories float64, protein, carbs, fat *float64) error {
	uid, err := s.userIDCached(ctx)
	if err != nil {
		return err
	}

	wholeOr := func(p *float64) string {
		if p == nil {
			return ""
		}
		return formatWhole(*p)
	}

	record := map[string]any{
		"k":  formatWhole(calories),
		"p":  wholeOr(protein),
		"c":  wholeOr(carbs),
		"f":  wholeOr(fat),
		"s":  "m",
		"do": nil,
	}

	mmdd := schedule.MMDD(date)
	_, err = s.store.Patch(ctx,
		schedule.YearBucketPath(uid, schedule.CollectionNutrition, date.Year()),
		map[string]firestore.Value{mmdd: firestore.Encode(record)},
		[]string{mmdd},
	)
	return err
}
