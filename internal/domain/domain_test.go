package domain

import (
	"testing"
	"time"

	"github.com/benthecarman/macro-factor-go/internal/errors"
)

func TestNumberCoercion(t *testing.T) {
	obj := map[string]any{
		"native":  70.5,
		"decimal": "165.0",
		"integer": "31",
		"junk":    "abc",
		"null":    nil,
		"flag":    true,
	}

	if got := Number(obj, "native"); got == nil || *got != 70.5 {
		t.Errorf("native = %v", got)
	}
	if got := Number(obj, "decimal"); got == nil || *got != 165 {
		t.Errorf("decimal = %v", got)
	}
	if got := Number(obj, "integer"); got == nil || *got != 31 {
		t.Errorf("integer = %v", got)
	}
	for _, key := range []string{"junk", "null", "flag", "absent"} {
		if got := Number(obj, key); got != nil {
			t.Errorf("Number(%q) = %v, want nil", key, *got)
		}
	}
}

func TestParseScaleEntry(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	e := ParseScaleEntry(date, map[string]any{"w": 70.5, "f": nil, "s": "m"})
	if e.Weight != 70.5 {
		t.Errorf("Weight = %v", e.Weight)
	}
	if e.BodyFat != nil {
		t.Errorf("BodyFat = %v, want nil", *e.BodyFat)
	}
	if e.Source != "m" {
		t.Errorf("Source = %q", e.Source)
	}

	withFat := ParseScaleEntry(date, map[string]any{"w": "82.1", "f": "18.5"})
	if withFat.Weight != 82.1 || withFat.BodyFat == nil || *withFat.BodyFat != 18.5 {
		t.Errorf("entry = %+v", withFat)
	}
}

func TestParseStepEntry(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	e := ParseStepEntry(date, map[string]any{"st": "10432", "s": "a"})
	if e.Steps != 10432 || e.Source != "a" {
		t.Errorf("entry = %+v", e)
	}
}

func TestParseNutritionSummary(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	e := ParseNutritionSummary(date, map[string]any{
		"k":   "2100",
		"p":   float64(160),
		"c":   "210",
		"f":   "70",
		"269": 45.5,
		"291": "28",
		"s":   "m",
	})

	if *e.Calories != 2100 || *e.Protein != 160 || *e.Carbs != 210 || *e.Fat != 70 {
		t.Errorf("macros = %+v", e)
	}
	if *e.Sugar != 45.5 || *e.Fiber != 28 {
		t.Errorf("sugar/fiber = %v/%v", *e.Sugar, *e.Fiber)
	}
}

func TestParseGoals(t *testing.T) {
	profile := map[string]any{
		"planner": map[string]any{
			"calories":     []any{float64(2000), float64(2000), float64(2000), float64(2000), float64(2000), float64(2400), float64(2400)},
			"protein":      []any{"160", "160", "160", "160", "160", "160", "160"},
			"carbs":        []any{float64(200)},
			"fat":          []any{float64(70)},
			"tdeeValue":    "2650",
			"programStyle": "coached",
			"programType":  "cut",
		},
	}

	g, err := ParseGoals(profile)
	if err != nil {
		t.Fatalf("ParseGoals: %v", err)
	}
	if len(g.Calories) != 7 || g.Calories[5] != 2400 {
		t.Errorf("Calories = %v", g.Calories)
	}
	if len(g.Protein) != 7 || g.Protein[0] != 160 {
		t.Errorf("Protein = %v", g.Protein)
	}
	if g.TDEE == nil || *g.TDEE != 2650 {
		t.Errorf("TDEE = %v", g.TDEE)
	}
	if g.ProgramStyle != "coached" || g.ProgramType != "cut" {
		t.Errorf("program = %q/%q", g.ProgramStyle, g.ProgramType)
	}
}

func TestParseGoalsMissingPlanner(t *testing.T) {
	_, err := ParseGoals(map[string]any{"name": "x"})
	if !errors.Is(err, errors.ErrDecode) {
		t.Errorf("err = %v, want ErrDecode", err)
	}
}

func TestParseSearchFood(t *testing.T) {
	doc := map[string]any{
		"id":        "usda-5746",
		"foodDesc":  "Chicken breast, grilled",
		"brandName": "",
		"208":       "165",
		"203":       float64(31),
		"204":       3.6,
		"205":       "0",
		"307":       74.0,
		"601":       "85",
		"imageId":   "img-1",
		"source":    "usda",
		"weights": []any{
			map[string]any{"m": "breast", "q": float64(1), "w": 172.0},
			map[string]any{"m": "oz", "q": float64(1), "w": 28.35},
		},
		"dfSrv": float64(0),
	}

	food := ParseSearchFood(doc, false)

	if food.FoodID != "usda-5746" || food.Name != "Chicken breast, grilled" {
		t.Errorf("identity = %q/%q", food.FoodID, food.Name)
	}
	if food.Branded {
		t.Error("Branded = true, want false")
	}
	if food.CaloriesPer100g != 165 || food.ProteinPer100g != 31 || food.FatPer100g != 3.6 || food.CarbsPer100g != 0 {
		t.Errorf("macros = %v/%v/%v/%v", food.CaloriesPer100g, food.ProteinPer100g, food.FatPer100g, food.CarbsPer100g)
	}
	if food.NutrientsPer100g["307"] != 74 || food.NutrientsPer100g["601"] != 85 {
		t.Errorf("nutrients = %v", food.NutrientsPer100g)
	}
	if _, ok := food.NutrientsPer100g["208"]; ok {
		t.Error("macro code 208 should not appear in NutrientsPer100g")
	}
	if len(food.Servings) != 2 || food.Servings[1].Description != "oz" {
		t.Errorf("servings = %+v", food.Servings)
	}
	if food.DefaultServing == nil || food.DefaultServing.GramWeight != 172 {
		t.Errorf("default serving = %+v", food.DefaultServing)
	}
}

func TestParseSearchFoodNoDefaultServing(t *testing.T) {
	food := ParseSearchFood(map[string]any{
		"id":       "x",
		"foodDesc": "y",
		"dfSrv":    float64(5),
		"weights":  []any{map[string]any{"m": "cup", "q": float64(1), "w": 240.0}},
	}, true)

	if food.DefaultServing != nil {
		t.Errorf("out-of-range dfSrv should yield nil default, got %+v", food.DefaultServing)
	}
	if !food.Branded {
		t.Error("Branded = false, want true")
	}
}

func TestMicroCodeSet(t *testing.T) {
	seen := map[string]bool{}
	for _, code := range MicroCodes {
		if !IsMicroCode(code) {
			t.Errorf("code %q is not digit-only", code)
		}
		if seen[code] {
			t.Errorf("duplicate code %q", code)
		}
		seen[code] = true
	}
	if len(MicroCodes) != 52 {
		t.Errorf("len(MicroCodes) = %d, want 52", len(MicroCodes))
	}
	if len(MacroCodes) != 4 {
		t.Errorf("len(MacroCodes) = %d, want 4", len(MacroCodes))
	}
}
