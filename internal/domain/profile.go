package domain

// UserProfile is the top-level user document. This layer never writes it.
type UserProfile struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Sex          string   `json:"sex,omitempty"`
	DOB          string   `json:"dob,omitempty"`
	Height       *float64 `json:"height,omitempty"`
	HeightUnits  string   `json:"heightUnits,omitempty"`
	WeightUnits  string   `json:"weightUnits,omitempty"`
	CalorieUnits string   `json:"calorieUnits,omitempty"`
}

// ParseUserProfile maps a decoded user document to a UserProfile. The _id
// annotation from the document parse supplies the ID.
func ParseUserProfile(obj map[string]any) UserProfile {
	return UserProfile{
		ID:           Str(obj, "_id"),
		Name:         Str(obj, "name"),
		Email:        Str(obj, "email"),
		Sex:          Str(obj, "sex"),
		DOB:          Str(obj, "dob"),
		Height:       Number(obj, "height"),
		HeightUnits:  Str(obj, "height_units"),
		WeightUnits:  Str(obj, "weight_units"),
		CalorieUnits: Str(obj, "calorie_units"),
	}
}
