package domain

import "time"

// WeightRecord is a single weight measurement. Immutable once created;
// histories are kept newest-first per pet.
type WeightRecord struct {
	ID               string    `json:"id"`
	PetID            string    `json:"petId"`
	WeightKg         float64   `json:"weightKg"`
	RecordedAt       time.Time `json:"recordedAt"`
	Notes            string    `json:"notes,omitempty"`
	RecordedByUserID string    `json:"recordedByUserId,omitempty"`
}

// WeightGoalType classifies what a weight goal is trying to achieve
type WeightGoalType string

const (
	GoalWeightLoss        WeightGoalType = "weightLoss"
	GoalWeightGain        WeightGoalType = "weightGain"
	GoalMaintenance       WeightGoalType = "maintenance"
	GoalHealthImprovement WeightGoalType = "healthImprovement"
)

// WeightGoal is a pet's target. CurrentWeightKg is a snapshot taken when
// the goal was created, not a live value. At most one active goal per pet
// is held client-side.
type WeightGoal struct {
	ID              string         `json:"id"`
	PetID           string         `json:"petId"`
	GoalType        WeightGoalType `json:"goalType"`
	TargetWeightKg  float64        `json:"targetWeightKg,omitempty"`
	CurrentWeightKg float64        `json:"currentWeightKg"`
	TargetDate      *time.Time     `json:"targetDate,omitempty"`
	IsActive        bool           `json:"isActive"`
	Notes           string         `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// TrendDirection is which way a pet's weight is moving
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// TrendStrength is how pronounced the movement is
type TrendStrength string

const (
	TrendWeak     TrendStrength = "weak"
	TrendModerate TrendStrength = "moderate"
	TrendStrong   TrendStrength = "strong"
)

// WeightTrendAnalysis summarizes a sliding window of weight records.
// ConfidenceLevel grows with the number of records, capping at 1.
type WeightTrendAnalysis struct {
	TrendDirection       TrendDirection `json:"trendDirection"`
	WeightChangeKg       float64        `json:"weightChangeKg"`
	AverageDailyChangeKg float64        `json:"averageDailyChangeKg"`
	TrendStrength        TrendStrength  `json:"trendStrength"`
	DaysAnalyzed         int            `json:"daysAnalyzed"`
	ConfidenceLevel      float64        `json:"confidenceLevel"`
}
