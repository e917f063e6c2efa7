package domain

import "github.com/benthecarman/macro-factor-go/internal/errors"

// Goals holds the user's daily targets from the planner: seven-element
// Monday-to-Sunday arrays per macro, the TDEE estimate, and the program
// classification strings.
type Goals struct {
	Calories []float64 `json:"calories"`
	Protein  []float64 `json:"protein"`
	Carbs    []float64 `json:"carbs"`
	Fat      []float64 `json:"fat"`

	TDEE         *float64 `json:"tdee,omitempty"`
	ProgramStyle string   `json:"programStyle,omitempty"`
	ProgramType  string   `json:"programType,omitempty"`
}

// ParseGoals extracts the goals from a decoded user profile. A profile
// without a planner field is a decode error, not an empty result.
func ParseGoals(profile map[string]any) (*Goals, error) {
	planner, ok := profile["planner"].(map[string]any)
	if !ok {
		return nil, errors.Decode("user profile has no planner field")
	}

	return &Goals{
		Calories:     numberSlice(planner, "calories"),
		Protein:      numberSlice(planner, "protein"),
		Carbs:        numberSlice(planner, "carbs"),
		Fat:          numberSlice(planner, "fat"),
		TDEE:         Number(planner, "tdeeValue"),
		ProgramStyle: Str(planner, "programStyle"),
		ProgramType:  Str(planner, "programType"),
	}, nil
}

// numberSlice reads an array field, coercing each element with the usual
// number-or-decimal-string rule and dropping anything else.
func numberSlice(obj map[string]any, key string) []float64 {
	arr, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(arr))
	for _, e := range arr {
		elem := map[string]any{"v": e}
		if n := Number(elem, "v"); n != nil {
			out = append(out, *n)
		}
	}
	return out
}
