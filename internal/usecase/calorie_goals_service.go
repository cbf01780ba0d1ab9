package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pawtrack/backend/internal/domain"
	"github.com/pawtrack/backend/pkg/logger"
)

// defaultCaloriesPerKg is the built-in calories-per-kg table used when the
// standards service is unreachable
var defaultCaloriesPerKg = map[domain.Species]map[domain.LifeStage]float64{
	domain.SpeciesDog: {
		domain.LifeStagePuppy:     55,
		domain.LifeStageAdult:     30,
		domain.LifeStageSenior:    27,
		domain.LifeStagePregnant:  40,
		domain.LifeStageLactating: 48,
	},
	domain.SpeciesCat: {
		domain.LifeStagePuppy:     65,
		domain.LifeStageAdult:     40,
		domain.LifeStageSenior:    35,
		domain.LifeStagePregnant:  55,
		domain.LifeStageLactating: 70,
	},
}

// activityMultipliers scale the formula fallback by day-to-day activity
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivityLow:      0.8,
	domain.ActivityModerate: 1.0,
	domain.ActivityHigh:     1.2,
}

// lifeStageMultipliers scale the formula fallback by life stage
var lifeStageMultipliers = map[domain.LifeStage]float64{
	domain.LifeStagePuppy:     1.5,
	domain.LifeStageAdult:     1.0,
	domain.LifeStageSenior:    0.9,
	domain.LifeStagePregnant:  1.3,
	domain.LifeStageLactating: 1.4,
}

// baseCaloriesPerKg is the calories-per-kg constant of the formula fallback
const baseCaloriesPerKg = 30

type calorieGoalPayload struct {
	PetID         string  `json:"petId"`
	DailyCalories float64 `json:"dailyCalories"`
}

type calorieGoalsResponse struct {
	Goals []domain.CalorieGoal `json:"goals"`
}

type standardsResponse struct {
	Standards []domain.NutritionalStandard `json:"standards"`
}

// CalorieGoalsServiceConfig holds configuration for the calorie goals service
type CalorieGoalsServiceConfig struct {
	StandardsTTL time.Duration
	StoreKey     string
}

// CalorieGoalsService manages daily calorie goals for pets. Goals live in a
// local map backed by the upstream API and are persisted wholesale as one
// blob after every mutation.
type CalorieGoalsService struct {
	client       domain.APIClient
	store        domain.KeyValueStore
	standards    domain.StandardsCache
	log          *logger.Logger
	now          func() time.Time
	standardsTTL time.Duration
	storeKey     string

	mutex sync.RWMutex
	goals map[string]domain.CalorieGoal
}

// NewCalorieGoalsService creates a new calorie goals service with dependencies.
// Previously persisted goals are restored from the store; a corrupt blob is
// discarded.
func NewCalorieGoalsService(
	client domain.APIClient,
	store domain.KeyValueStore,
	standards domain.StandardsCache,
	log *logger.Logger,
	config CalorieGoalsServiceConfig,
) *CalorieGoalsService {
	standardsTTL := config.StandardsTTL
	if standardsTTL == 0 {
		standardsTTL = 6 * time.Hour
	}

	storeKey := config.StoreKey
	if storeKey == "" {
		storeKey = "calorie_goals"
	}

	s := &CalorieGoalsService{
		client:       client,
		store:        store,
		standards:    standards,
		log:          log,
		now:          time.Now,
		standardsTTL: standardsTTL,
		storeKey:     storeKey,
		goals:        make(map[string]domain.CalorieGoal),
	}
	s.restoreGoals()
	return s
}

// SetGoal creates or updates the daily calorie goal for a pet. The goal is
// pushed upstream first; the local cache and persisted blob are only updated
// on success.
func (s *CalorieGoalsService) SetGoal(ctx context.Context, petID string, dailyCalories float64) (domain.CalorieGoal, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || dailyCalories <= 0 {
		return domain.CalorieGoal{}, domain.ErrInvalidInput
	}

	payload := calorieGoalPayload{PetID: petID, DailyCalories: dailyCalories}
	if err := s.client.Post(ctx, "/nutrition/goals/calorie-goals", payload, nil); err != nil {
		return domain.CalorieGoal{}, err
	}

	now := s.now()

	s.mutex.Lock()
	goal, exists := s.goals[petID]
	if !exists {
		goal = domain.CalorieGoal{PetID: petID, CreatedAt: now}
	}
	goal.DailyCalories = dailyCalories
	goal.UpdatedAt = now
	s.goals[petID] = goal
	s.mutex.Unlock()

	s.persistGoals()
	return goal, nil
}

// GetGoal returns the locally cached goal for a pet. It never touches the
// network.
func (s *CalorieGoalsService) GetGoal(petID string) (domain.CalorieGoal, error) {
	petID = strings.TrimSpace(petID)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	goal, exists := s.goals[petID]
	if !exists {
		return domain.CalorieGoal{}, domain.ErrGoalNotFound
	}
	return goal, nil
}

// Goals returns all locally cached goals ordered by pet id
func (s *CalorieGoalsService) Goals() []domain.CalorieGoal {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	goals := make([]domain.CalorieGoal, 0, len(s.goals))
	for _, goal := range s.goals {
		goals = append(goals, goal)
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].PetID < goals[j].PetID
	})
	return goals
}

// LoadGoals replaces the local cache with the upstream goal list
func (s *CalorieGoalsService) LoadGoals(ctx context.Context) error {
	var resp calorieGoalsResponse
	if err := s.client.Get(ctx, "/nutrition/goals/calorie-goals", &resp); err != nil {
		return err
	}

	goals := make(map[string]domain.CalorieGoal, len(resp.Goals))
	for _, goal := range resp.Goals {
		goals[goal.PetID] = goal
	}

	s.mutex.Lock()
	s.goals = goals
	s.mutex.Unlock()

	s.persistGoals()
	return nil
}

// DeleteGoal removes a pet's goal upstream and locally. Upstream failure
// leaves the local cache untouched.
func (s *CalorieGoalsService) DeleteGoal(ctx context.Context, petID string) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return domain.ErrInvalidInput
	}

	if err := s.client.Delete(ctx, "/nutrition/goals/calorie-goals/"+petID); err != nil {
		return err
	}

	s.mutex.Lock()
	delete(s.goals, petID)
	s.mutex.Unlock()

	s.persistGoals()
	return nil
}

// GetGoalProgress compares one day's consumption against the pet's goal.
// A missing goal returns ErrGoalNotFound; an upstream failure returns a
// wrapped ErrAPIFailure so callers can tell the two apart.
func (s *CalorieGoalsService) GetGoalProgress(ctx context.Context, petID, date string) (domain.GoalProgress, error) {
	petID = strings.TrimSpace(petID)

	goal, err := s.GetGoal(petID)
	if err != nil {
		return domain.GoalProgress{}, err
	}

	if date == "" {
		date = s.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return domain.GoalProgress{}, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, date)
	}

	var summary domain.DailySummary
	path := fmt.Sprintf("/nutrition/daily-summary/%s?date=%s", petID, date)
	if err := s.client.Get(ctx, path, &summary); err != nil {
		return domain.GoalProgress{}, fmt.Errorf("%w: %v", domain.ErrAPIFailure, err)
	}

	return buildGoalProgress(goal, summary.TotalCalories, date), nil
}

// CalculateSuggestedGoal computes a daily calorie suggestion for a pet.
// Flow: standards exact match -> standards midpoint -> default table ->
// weight formula. Standards lookup failures fall through to the next tier
// and are never returned to the caller.
func (s *CalorieGoalsService) CalculateSuggestedGoal(ctx context.Context, pet domain.Pet) (domain.SuggestedGoal, error) {
	if pet.WeightKg <= 0 {
		return domain.SuggestedGoal{}, domain.ErrInvalidInput
	}

	standards := s.lookupStandards(ctx, pet.Species, pet.LifeStage)

	// Tier 1: a standard matching activity level and weight range
	for _, std := range standards {
		if std.ActivityLevel == pet.ActivityLevel &&
			pet.WeightKg >= std.MinWeightKg && pet.WeightKg <= std.MaxWeightKg {
			return domain.SuggestedGoal{
				PetID:         pet.ID,
				DailyCalories: math.Round(std.CaloriesPerKg * pet.WeightKg),
				Source:        domain.SuggestionStandardExact,
			}, nil
		}
	}

	// Tier 2: any species/life-stage standard, scaled to the midpoint of
	// its weight range
	if len(standards) > 0 {
		std := standards[0]
		midpoint := (std.MinWeightKg + std.MaxWeightKg) / 2
		return domain.SuggestedGoal{
			PetID:         pet.ID,
			DailyCalories: math.Round(std.CaloriesPerKg * midpoint),
			Source:        domain.SuggestionStandardMidpoint,
		}, nil
	}

	// Tier 3: static defaults table
	if perKg, ok := defaultCaloriesPerKg[pet.Species][pet.LifeStage]; ok {
		return domain.SuggestedGoal{
			PetID:         pet.ID,
			DailyCalories: math.Round(perKg * pet.WeightKg),
			Source:        domain.SuggestionDefaultTable,
		}, nil
	}

	// Tier 4: linear weight formula, always available
	activity, ok := activityMultipliers[pet.ActivityLevel]
	if !ok {
		activity = 1.0
	}
	stage, ok := lifeStageMultipliers[pet.LifeStage]
	if !ok {
		stage = 1.0
	}

	return domain.SuggestedGoal{
		PetID:         pet.ID,
		DailyCalories: math.Round(pet.WeightKg * baseCaloriesPerKg * activity * stage),
		Source:        domain.SuggestionFormula,
	}, nil
}

// lookupStandards returns the standards for a species/life-stage pair from
// cache or the upstream API. Failures are logged and yield an empty list so
// the suggestion chain can fall through.
func (s *CalorieGoalsService) lookupStandards(ctx context.Context, species domain.Species, stage domain.LifeStage) []domain.NutritionalStandard {
	key := fmt.Sprintf("standards:%s:%s", species, stage)

	// Try cache first
	if cached, err := s.standards.Get(ctx, key); err == nil {
		return cached
	}

	// Cache miss - fetch from the upstream API
	var resp standardsResponse
	path := fmt.Sprintf("/nutritional-analysis/standards?species=%s&life_stage=%s", species, stage)
	if err := s.client.Get(ctx, path, &resp); err != nil {
		s.log.Warnw("standards lookup failed", "species", species, "lifeStage", stage, "error", err)
		return nil
	}

	if err := s.standards.Set(ctx, key, resp.Standards, s.standardsTTL); err != nil {
		s.log.Warnw("standards cache write failed", "key", key, "error", err)
	}

	return resp.Standards
}

// buildGoalProgress derives clamped progress numbers from a goal and the
// consumed total. Remaining never goes below zero and the percentage is
// capped at 100; a zero-calorie goal reports zero percent.
func buildGoalProgress(goal domain.CalorieGoal, consumed float64, date string) domain.GoalProgress {
	remaining := goal.DailyCalories - consumed
	if remaining < 0 {
		remaining = 0
	}

	var pct float64
	if goal.DailyCalories > 0 {
		pct = consumed / goal.DailyCalories * 100
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
	}

	return domain.GoalProgress{
		PetID:              goal.PetID,
		Date:               date,
		GoalCalories:       goal.DailyCalories,
		ConsumedCalories:   consumed,
		RemainingCalories:  remaining,
		ProgressPercentage: pct,
	}
}

// persistGoals writes the goal map to the store as one JSON blob.
// Store failures are logged, never surfaced.
func (s *CalorieGoalsService) persistGoals() {
	s.mutex.RLock()
	blob, err := json.Marshal(s.goals)
	s.mutex.RUnlock()
	if err != nil {
		s.log.Errorw("failed to encode goals", "error", err)
		return
	}

	if err := s.store.Set(s.storeKey, blob); err != nil {
		s.log.Warnw("failed to persist goals", "error", err)
	}
}

// restoreGoals loads the persisted blob, discarding it when unreadable
func (s *CalorieGoalsService) restoreGoals() {
	blob, ok, err := s.store.Get(s.storeKey)
	if err != nil {
		s.log.Warnw("failed to read persisted goals", "error", err)
		return
	}
	if !ok {
		return
	}

	var goals map[string]domain.CalorieGoal
	if err := json.Unmarshal(blob, &goals); err != nil || goals == nil {
		s.log.Warnw("discarding corrupt goals blob", "error", err)
		return
	}
	s.goals = goals
}
