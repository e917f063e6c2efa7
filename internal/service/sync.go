package service

import (
	"context"
	"time"

	"github.com/benthecarman/macro-factor-go/internal/domain"
	"github.com/benthecarman/macro-factor-go/internal/errors"
	"github.com/benthecarman/macro-factor-go/internal/firestore"
	"github.com/benthecarman/macro-factor-go/internal/id"
	"github.com/benthecarman/macro-factor-go/internal/schedule"
)

// SyncDay recomputes the day's micro summary from its food entries and
// writes it to the micro year bucket under the date's MMDD key.
//
// The summary always carries the full fixed nutrient code set: codes with no
// contribution are written as explicit nulls rather than omitted, so the
// summary's key set is identical across writes and a masked patch can never
// leave a stale value behind. Each entry's micronutrient values are per
// 100g-equivalent and are scaled by that entry's own multiplier before
// accumulating.
func (s *Service) SyncDay(ctx context.Context, date time.Time) error {
	log := s.logger.With("sync_id", id.MustRequest("sync"), "date", date.Format("2006-01-02"))

	uid, err := s.userIDCached(ctx)
	if err != nil {
		return err
	}

	var dayRecords map[string]any
	doc, err := s.store.Get(ctx, schedule.DayBucketPath(uid, date))
	switch {
	case err == nil:
		dayRecords = doc.Decode()
	case errors.Is(err, errors.ErrNotFound):
		// No bucket yet: the summary still gets written, all empty.
	default:
		return err
	}

	var calories, protein, carbs, fat float64
	micros := map[string]float64{}
	entryCount := 0

	for key, val := range dayRecords {
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
		entryCount++

		if v := entry.Calories(); v != nil {
			calories += *v
		}
		if v := entry.Protein(); v != nil {
			protein += *v
		}
		if v := entry.Carbs(); v != nil {
			carbs += *v
		}
		if v := entry.Fat(); v != nil {
			fat += *v
		}

		multiplier, defined := entry.Multiplier()
		for code := range obj {
			if !domain.IsMicroCode(code) {
				continue
			}
			v := domain.Number(obj, code)
			if v == nil {
				continue
			}
			amount := *v
			if defined {
				amount = *v * multiplier
			}
			micros[code] += amount
		}
	}

	summary := map[string]any{
		"k": calories,
		"p": protein,
		"c": carbs,
		"f": fat,
	}
	for _, code := range domain.MicroCodes {
		if total, ok := micros[code]; ok {
			summary[code] = total
		} else {
			summary[code] = nil
		}
	}

	mmdd := schedule.MMDD(date)
	_, err = s.store.Patch(ctx,
		schedule.YearBucketPath(uid, schedule.CollectionMicro, date.Year()),
		map[string]firestore.Value{mmdd: firestore.Encode(summary)},
		[]string{mmdd},
	)
	if err != nil {
		return err
	}

	log.Info("synced day summary", "entries", entryCount, "codes_set", len(micros))
	return nil
}
