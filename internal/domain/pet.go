package domain

// Species identifies the kind of pet the services track
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// LifeStage buckets a pet's age range for nutrition purposes
type LifeStage string

const (
	LifeStagePuppy     LifeStage = "puppy"
	LifeStageAdult     LifeStage = "adult"
	LifeStageSenior    LifeStage = "senior"
	LifeStagePregnant  LifeStage = "pregnant"
	LifeStageLactating LifeStage = "lactating"
)

// ActivityLevel describes how active a pet is day to day
type ActivityLevel string

const (
	ActivityLow      ActivityLevel = "low"
	ActivityModerate ActivityLevel = "moderate"
	ActivityHigh     ActivityLevel = "high"
)

// Pet carries the profile fields the nutrition services need.
// Profiles are owned by the upstream API; this is the slice of them
// used to derive calorie suggestions.
type Pet struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Species       Species       `json:"species"`
	LifeStage     LifeStage     `json:"lifeStage"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	WeightKg      float64       `json:"weightKg"`
}
