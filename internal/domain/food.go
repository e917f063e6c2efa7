package domain

import "time"

// FoodEntry is one logged food item in a day bucket. The macro fields are
// RAW per-serving values relative to ServingGrams; the consumed amounts come
// from the accessor methods, which apply the scaling multiplier lazily so
// both raw and consumed values stay observable.
type FoodEntry struct {
	Date    time.Time `json:"date"`
	EntryID string    `json:"entryId"`

	Name  string `json:"name,omitempty"`
	Brand string `json:"brand,omitempty"`

	CaloriesRaw *float64 `json:"caloriesRaw,omitempty"`
	ProteinRaw  *float64 `json:"proteinRaw,omitempty"`
	CarbsRaw    *float64 `json:"carbsRaw,omitempty"`
	FatRaw      *float64 `json:"fatRaw,omitempty"`

	// The three inputs of the scaling multiplier.
	ServingGrams *float64 `json:"servingGrams,omitempty"`
	UserQty      *float64 `json:"userQty,omitempty"`
	UnitWeight   *float64 `json:"unitWeight,omitempty"`

	Quantity    *float64 `json:"quantity,omitempty"`
	ServingUnit string   `json:"servingUnit,omitempty"`
	Hour        string   `json:"hour,omitempty"`
	Minute      string   `json:"minute,omitempty"`
	SourceType  string   `json:"sourceType,omitempty"`
	FoodID      string   `json:"foodId,omitempty"`
	Deleted     bool     `json:"deleted"`
}

// ParseFoodEntry maps a decoded day-bucket record to a FoodEntry. The field
// letters are the on-disk schema; see the package docs for the coercion
// rules shared with the other record types.
func ParseFoodEntry(date time.Time, entryID string, obj map[string]any) FoodEntry {
	return FoodEntry{
		Date:         date,
		EntryID:      entryID,
		Name:         Str(obj, "t"),
		Brand:        Str(obj, "b"),
		CaloriesRaw:  Number(obj, "c"),
		ProteinRaw:   Number(obj, "p"),
		CarbsRaw:     Number(obj, "e"),
		FatRaw:       Number(obj, "f"),
		ServingGrams: Number(obj, "g"),
		UserQty:      Number(obj, "y"),
		UnitWeight:   Number(obj, "w"),
		Quantity:     Number(obj, "q"),
		ServingUnit:  Str(obj, "s"),
		Hour:         Str(obj, "h"),
		Minute:       Str(obj, "mi"),
		SourceType:   Str(obj, "k"),
		FoodID:       Str(obj, "id"),
		Deleted:      Flag(obj, "d"),
	}
}

// Multiplier returns the consumption scaling factor
// (userQty * unitWeight) / servingGrams, or ok=false when it is undefined:
// any input absent, or a serving weight of zero or less. Callers fall back
// to the raw value unscaled in that case.
func (e *FoodEntry) Multiplier() (float64, bool) {
	return scalingMultiplier(e.UserQty, e.UnitWeight, e.ServingGrams)
}

func scalingMultiplier(userQty, unitWeight, servingGrams *float64) (float64, bool) {
	if userQty == nil || unitWeight == nil || servingGrams == nil || *servingGrams <= 0 {
		return 0, false
	}
	return (*userQty * *unitWeight) / *servingGrams, true
}

// Calories returns the consumed calories: the raw value scaled by the
// multiplier, or the raw value unchanged when the multiplier is undefined.
// Nil when the entry has no calorie field at all.
func (e *FoodEntry) Calories() *float64 { return e.scaled(e.CaloriesRaw) }

// Protein returns the consumed protein in grams.
func (e *FoodEntry) Protein() *float64 { return e.scaled(e.ProteinRaw) }

// Carbs returns the consumed carbohydrates in grams.
func (e *FoodEntry) Carbs() *float64 { return e.scaled(e.CarbsRaw) }

// Fat returns the consumed fat in grams.
func (e *FoodEntry) Fat() *float64 { return e.scaled(e.FatRaw) }

func (e *FoodEntry) scaled(raw *float64) *float64 {
	if raw == nil {
		return nil
	}
	v := *raw
	if m, ok := e.Multiplier(); ok {
		v = *raw * m
	}
	return &v
}

// SortKey returns the (hour, minute) pair used to order a day's entries.
// The wire stores both as strings; missing or unparsable values sort as 0.
func (e *FoodEntry) SortKey() (int, int) {
	return intOr(e.Hour, 0), intOr(e.Minute, 0)
}

func intOr(s string, def int) int {
	n := 0
	if s == "" {
		return def
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return def
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}
