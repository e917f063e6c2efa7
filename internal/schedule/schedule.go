// Package schedule models the compact calendar layout used by the document
// store: per-metric year buckets keyed by MMDD day codes, and per-day food
// buckets addressed by ISO date.
package schedule

import (
	"fmt"
	"time"
)

// Collection names for the year-bucketed metrics under a user document.
const (
	CollectionScale     = "scale"
	CollectionNutrition = "nutrition"
	CollectionSteps     = "steps"
	CollectionMicro     = "micro"
	CollectionFood      = "food"
)

// YearBucketPath returns the document path for one metric year bucket,
// e.g. users/{uid}/scale/2024.
func YearBucketPath(userID, collection string, year int) string {
	return fmt.Sprintf("users/%s/%s/%d", userID, collection, year)
}

// DayBucketPath returns the document path for one day's food log,
// e.g. users/{uid}/food/2024-03-15.
func DayBucketPath(userID string, date time.Time) string {
	return fmt.Sprintf("users/%s/%s/%s", userID, CollectionFood, date.Format("2006-01-02"))
}

// MMDD returns the four-digit day key for a date, e.g. 0315 for March 15.
func MMDD(date time.Time) string {
	return date.Format("0102")
}

// ParseDayKey resolves a bucket field key to a concrete date within the
// given year. Keys that are not day records return ok=false:
//
//   - keys with a leading underscore (bucket metadata)
//   - keys that are not exactly four digits
//   - keys that do not name a real calendar date in that year
//
// Callers drop non-day keys silently; buckets legitimately mix day records
// with metadata fields.
func ParseDayKey(year int, key string) (time.Time, bool) {
	if len(key) != 4 || key[0] == '_' {
		return time.Time{}, false
	}
	for i := range 4 {
		if key[i] < '0' || key[i] > '9' {
			return time.Time{}, false
		}
	}

	month := int(key[0]-'0')*10 + int(key[1]-'0')
	day := int(key[2]-'0')*10 + int(key[3]-'0')
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	// time.Date normalizes overflow (Feb 30 becomes Mar 1 or 2), so a
	// round-trip check is what validates the key against the calendar.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Month() != time.Month(month) || date.Day() != day {
		return time.Time{}, false
	}
	return date, true
}

// YearsIn returns every calendar year touched by the inclusive date range,
// in ascending order. An inverted range yields nil.
func YearsIn(start, end time.Time) []int {
	if end.Before(start) {
		return nil
	}
	var years []int
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years
}

// InRange reports whether date falls within the inclusive day range. Times
// of day are ignored.
func InRange(date, start, end time.Time) bool {
	d := dayOf(date)
	return !d.Before(dayOf(start)) && !d.After(dayOf(end))
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
