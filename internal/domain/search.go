package domain

import "strconv"

// USDA legacy nutrient numbers for the per-100g macro baseline carried by
// search hits.
const (
	codeEnergy  = "208"
	codeProtein = "203"
	codeFat     = "204"
	codeCarbs   = "205"
)

// Serving is one way to portion a search result: a display description, the
// amount in display units, and the equivalent gram weight.
type Serving struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	GramWeight  float64 `json:"gramWeight"`
}

// SearchFood is one food search hit. Macro and micronutrient values are per
// 100 grams; Branded records which of the two parallel searches produced the
// hit rather than any field on the record itself.
type SearchFood struct {
	FoodID  string `json:"foodId"`
	Name    string `json:"name"`
	Brand   string `json:"brand,omitempty"`
	Branded bool   `json:"branded"`

	CaloriesPer100g float64 `json:"caloriesPer100g"`
	ProteinPer100g  float64 `json:"proteinPer100g"`
	CarbsPer100g    float64 `json:"carbsPer100g"`
	FatPer100g      float64 `json:"fatPer100g"`

	// Remaining digit-coded values from the hit, keyed by nutrient code.
	NutrientsPer100g map[string]float64 `json:"nutrientsPer100g,omitempty"`

	Servings       []Serving `json:"servings,omitempty"`
	DefaultServing *Serving  `json:"defaultServing,omitempty"`

	ImageID string `json:"imageId,omitempty"`
	Source  string `json:"source,omitempty"`
}

// ParseSearchFood maps a search hit document to a SearchFood. The branded
// flag is supplied by the caller based on which collection was queried.
func ParseSearchFood(doc map[string]any, branded bool) SearchFood {
	food := SearchFood{
		FoodID:          Str(doc, "id"),
		Name:            Str(doc, "foodDesc"),
		Brand:           Str(doc, "brandName"),
		Branded:         branded,
		CaloriesPer100g: numOr(Number(doc, codeEnergy), 0),
		ProteinPer100g:  numOr(Number(doc, codeProtein), 0),
		CarbsPer100g:    numOr(Number(doc, codeCarbs), 0),
		FatPer100g:      numOr(Number(doc, codeFat), 0),
		ImageID:         Str(doc, "imageId"),
		Source:          Str(doc, "source"),
	}

	nutrients := map[string]float64{}
	for key := range doc {
		if !digitsOnly(key) {
			continue
		}
		switch key {
		case codeEnergy, codeProtein, codeFat, codeCarbs:
			continue
		}
		if n := Number(doc, key); n != nil {
			nutrients[key] = *n
		}
	}
	if len(nutrients) > 0 {
		food.NutrientsPer100g = nutrients
	}

	if weights, ok := doc["weights"].([]any); ok {
		for _, w := range weights {
			obj, ok := w.(map[string]any)
			if !ok {
				continue
			}
			food.Servings = append(food.Servings, Serving{
				Description: Str(obj, "m"),
				Amount:      numOr(Number(obj, "q"), 0),
				GramWeight:  numOr(Number(obj, "w"), 0),
			})
		}
	}

	// dfSrv indexes into the serving list when present and in range.
	if idx := Number(doc, "dfSrv"); idx != nil {
		if i := int(*idx); i >= 0 && i < len(food.Servings) {
			food.DefaultServing = &food.Servings[i]
		}
	}

	return food
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatAmount renders a numeric wire field the way the app writes them:
// one decimal place as a string.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
