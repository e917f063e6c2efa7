package domain

import "time"

// ScaleEntry is one weight measurement. Weight is in kilograms; BodyFat is a
// percentage and nil when not recorded.
type ScaleEntry struct {
	Date    time.Time `json:"date"`
	Weight  float64   `json:"weight"`
	BodyFat *float64  `json:"bodyFat,omitempty"`
	Source  string    `json:"source,omitempty"`
}

// ParseScaleEntry maps a decoded day record to a ScaleEntry.
func ParseScaleEntry(date time.Time, obj map[string]any) ScaleEntry {
	return ScaleEntry{
		Date:    date,
		Weight:  numOr(Number(obj, "w"), 0),
		BodyFat: Number(obj, "f"),
		Source:  Str(obj, "s"),
	}
}

// StepEntry is one day's step count.
type StepEntry struct {
	Date   time.Time `json:"date"`
	Steps  int64     `json:"steps"`
	Source string    `json:"source,omitempty"`
}

// ParseStepEntry maps a decoded day record to a StepEntry.
func ParseStepEntry(date time.Time, obj map[string]any) StepEntry {
	return StepEntry{
		Date:   date,
		Steps:  int64(numOr(Number(obj, "st"), 0)),
		Source: Str(obj, "s"),
	}
}

// Nutrient codes used in daily nutrition summaries beyond the macro set.
const (
	CodeSugar = "269"
	CodeFiber = "291"
)

// NutritionSummary is one day's macro totals. All quantities are nil when
// the day record omits them.
type NutritionSummary struct {
	Date     time.Time `json:"date"`
	Calories *float64  `json:"calories,omitempty"`
	Protein  *float64  `json:"protein,omitempty"`
	Carbs    *float64  `json:"carbs,omitempty"`
	Fat      *float64  `json:"fat,omitempty"`
	Sugar    *float64  `json:"sugar,omitempty"`
	Fiber    *float64  `json:"fiber,omitempty"`
	Source   string    `json:"source,omitempty"`
}

// ParseNutritionSummary maps a decoded day record to a NutritionSummary.
func ParseNutritionSummary(date time.Time, obj map[string]any) NutritionSummary {
	return NutritionSummary{
		Date:     date,
		Calories: Number(obj, "k"),
		Protein:  Number(obj, "p"),
		Carbs:    Number(obj, "c"),
		Fat:      Number(obj, "f"),
		Sugar:    Number(obj, CodeSugar),
		Fiber:    Number(obj, CodeFiber),
		Source:   Str(obj, "s"),
	}
}
