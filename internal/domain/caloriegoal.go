package domain

import "time"

// CalorieGoal is the daily calorie target for one pet. At most one goal
// per pet is held client-side; updates overwrite in place.
type CalorieGoal struct {
	PetID         string    `json:"petId"`
	DailyCalories float64   `json:"dailyCalories"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// GoalProgress compares one day's consumption against the pet's goal.
// Derived on demand, never stored. RemainingCalories is clamped at zero
// and ProgressPercentage at 100.
type GoalProgress struct {
	PetID              string  `json:"petId"`
	Date               string  `json:"date"`
	GoalCalories       float64 `json:"goalCalories"`
	ConsumedCalories   float64 `json:"consumedCalories"`
	RemainingCalories  float64 `json:"remainingCalories"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

// NutritionalStandard is a server-owned reference row: recommended
// calories per kg for a species/life-stage/activity bracket within a
// weight range, plus macro-nutrient bounds.
type NutritionalStandard struct {
	Species       Species       `json:"species"`
	LifeStage     LifeStage     `json:"lifeStage"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	MinWeightKg   float64       `json:"minWeightKg"`
	MaxWeightKg   float64       `json:"maxWeightKg"`
	CaloriesPerKg float64       `json:"caloriesPerKg"`
	MinProteinPct float64       `json:"minProteinPct"`
	MaxProteinPct float64       `json:"maxProteinPct"`
	MinFatPct     float64       `json:"minFatPct"`
	MaxFatPct     float64       `json:"maxFatPct"`
}

// SuggestionSource records which tier of the suggestion chain produced
// a value, so callers can tell a standards-backed number from a formula
// fallback.
type SuggestionSource string

const (
	// SuggestionStandardExact means a standard matched the pet's
	// activity level and weight range.
	SuggestionStandardExact SuggestionSource = "standard-exact"

	// SuggestionStandardMidpoint means a species/life-stage standard was
	// used with the midpoint of its weight range.
	SuggestionStandardMidpoint SuggestionSource = "standard-midpoint"

	// SuggestionDefaultTable means the static per-species table was used.
	SuggestionDefaultTable SuggestionSource = "default-table"

	// SuggestionFormula means the linear weight formula was used.
	SuggestionFormula SuggestionSource = "formula"
)

// SuggestedGoal is the result of the calorie-suggestion chain.
type SuggestedGoal struct {
	PetID         string           `json:"petId"`
	DailyCalories float64          `json:"dailyCalories"`
	Source        SuggestionSource `json:"source"`
}

// DailySummary is the upstream consumption total for one pet and day.
type DailySummary struct {
	PetID         string  `json:"petId"`
	Date          string  `json:"date"`
	TotalCalories float64 `json:"totalCalories"`
	MealCount     int     `json:"mealCount"`
}
