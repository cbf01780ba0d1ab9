package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawtrack/backend/internal/domain"
	"github.com/pawtrack/backend/pkg/logger"
)

const (
	defaultTrendWindowDays   = 30
	directionThresholdKg     = 0.5
	moderateChangeKg         = 0.5
	strongChangeKg           = 2.0
	trendFullConfidenceCount = 14
	lowDataRecordCount       = 7
	goalReachedToleranceKg   = 0.5
)

var validGoalTypes = map[domain.WeightGoalType]bool{
	domain.GoalWeightLoss:        true,
	domain.GoalWeightGain:        true,
	domain.GoalMaintenance:       true,
	domain.GoalHealthImprovement: true,
}

type weightRecordsResponse struct {
	Records []domain.WeightRecord `json:"records"`
}

// WeightGoalInput carries the caller-supplied fields for a new weight goal.
// CurrentWeightKg is optional; when zero the freshest local record is used.
type WeightGoalInput struct {
	PetID           string
	GoalType        domain.WeightGoalType
	TargetWeightKg  float64
	CurrentWeightKg float64
	TargetDate      *time.Time
	Notes           string
}

// petWeightState is the per-pet slice of the in-memory cache
type petWeightState struct {
	history         []domain.WeightRecord // newest first
	activeGoal      *domain.WeightGoal
	currentWeightKg float64
	recommendations []string
}

// WeightTrackingServiceConfig holds configuration for the weight tracking service
type WeightTrackingServiceConfig struct {
	RecordedByUserID string
}

// WeightTrackingService manages weight records, goals, trend analysis and
// recommendations for pets. State is in-memory, keyed by pet id, and updated
// optimistically ahead of upstream confirmation.
type WeightTrackingService struct {
	client     domain.APIClient
	log        *logger.Logger
	now        func() time.Time
	recordedBy string

	mutex sync.RWMutex
	pets  map[string]*petWeightState
}

// NewWeightTrackingService creates a new weight tracking service with dependencies
func NewWeightTrackingService(
	client domain.APIClient,
	log *logger.Logger,
	config WeightTrackingServiceConfig,
) *WeightTrackingService {
	return &WeightTrackingService{
		client:     client,
		log:        log,
		now:        time.Now,
		recordedBy: config.RecordedByUserID,
		pets:       make(map[string]*petWeightState),
	}
}

// RecordWeight stores a new measurement. The local cache is updated before
// the upstream call; a push failure propagates but local state is kept.
func (s *WeightTrackingService) RecordWeight(ctx context.Context, petID string, weightKg float64, notes string) (domain.WeightRecord, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || weightKg <= 0 {
		return domain.WeightRecord{}, domain.ErrInvalidInput
	}

	record := domain.WeightRecord{
		ID:               uuid.NewString(),
		PetID:            petID,
		WeightKg:         weightKg,
		RecordedAt:       s.now(),
		Notes:            notes,
		RecordedByUserID: s.recordedBy,
	}

	s.mutex.Lock()
	state := s.stateLocked(petID)
	state.history = append([]domain.WeightRecord{record}, state.history...)
	state.currentWeightKg = record.WeightKg
	s.mutex.Unlock()

	err := s.client.Post(ctx, "/weight/records", record, nil)

	s.refreshRecommendations(petID)

	if err != nil {
		s.log.Warnw("weight record push failed, keeping local copy", "petId", petID, "error", err)
		return record, err
	}
	return record, nil
}

// CreateWeightGoal builds a goal with the current-weight snapshot captured at
// creation time, replaces the pet's active goal locally and pushes it
// upstream. A push failure propagates but the local goal is kept.
func (s *WeightTrackingService) CreateWeightGoal(ctx context.Context, input WeightGoalInput) (domain.WeightGoal, error) {
	input.PetID = strings.TrimSpace(input.PetID)
	if input.PetID == "" || !validGoalTypes[input.GoalType] || input.TargetWeightKg < 0 {
		return domain.WeightGoal{}, domain.ErrInvalidInput
	}

	now := s.now()
	goal := domain.WeightGoal{
		ID:              uuid.NewString(),
		PetID:           input.PetID,
		GoalType:        input.GoalType,
		TargetWeightKg:  input.TargetWeightKg,
		CurrentWeightKg: input.CurrentWeightKg,
		TargetDate:      input.TargetDate,
		IsActive:        true,
		Notes:           input.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	s.mutex.Lock()
	state := s.stateLocked(input.PetID)
	if goal.CurrentWeightKg == 0 {
		goal.CurrentWeightKg = state.currentWeightKg
	}
	state.activeGoal = &goal
	s.mutex.Unlock()

	err := s.client.Post(ctx, "/weight/goals", goal, nil)

	s.refreshRecommendations(input.PetID)

	if err != nil {
		s.log.Warnw("weight goal push failed, keeping local copy", "petId", input.PetID, "error", err)
		return goal, err
	}
	return goal, nil
}

// LoadWeightData replaces the pet's local history and active goal from the
// upstream API. A missing active goal upstream clears the local one; an
// unknown pet maps to ErrPetNotFound.
func (s *WeightTrackingService) LoadWeightData(ctx context.Context, petID string) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return domain.ErrInvalidInput
	}

	var recordsResp weightRecordsResponse
	if err := s.client.Get(ctx, "/weight/records/"+petID, &recordsResp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrPetNotFound, petID)
		}
		return err
	}

	records := recordsResp.Records
	sort.Slice(records, func(i, j int) bool {
		return records[i].RecordedAt.After(records[j].RecordedAt)
	})

	var goal *domain.WeightGoal
	var active domain.WeightGoal
	err := s.client.Get(ctx, "/weight/goals/"+petID+"/active", &active)
	switch {
	case err == nil:
		goal = &active
	case errors.Is(err, domain.ErrNotFound):
		// no active goal upstream
	default:
		return err
	}

	s.mutex.Lock()
	state := s.stateLocked(petID)
	state.history = records
	state.activeGoal = goal
	if len(records) > 0 {
		state.currentWeightKg = records[0].WeightKg
	} else {
		state.currentWeightKg = 0
	}
	s.mutex.Unlock()

	s.refreshRecommendations(petID)
	return nil
}

// AnalyzeWeightTrend classifies weight movement over the trailing window.
// daysBack <= 0 selects the default 30-day window. Fewer than two qualifying
// records yield a stable zero-confidence result.
func (s *WeightTrackingService) AnalyzeWeightTrend(petID string, daysBack int) domain.WeightTrendAnalysis {
	petID = strings.TrimSpace(petID)
	if daysBack <= 0 {
		daysBack = defaultTrendWindowDays
	}

	cutoff := s.now().AddDate(0, 0, -daysBack)

	s.mutex.RLock()
	var window []domain.WeightRecord
	if state, ok := s.pets[petID]; ok {
		for _, record := range state.history {
			if !record.RecordedAt.Before(cutoff) {
				window = append(window, record)
			}
		}
	}
	s.mutex.RUnlock()

	if len(window) < 2 {
		return domain.WeightTrendAnalysis{
			TrendDirection:  domain.TrendStable,
			TrendStrength:   domain.TrendWeak,
			DaysAnalyzed:    daysBack,
			ConfidenceLevel: 0,
		}
	}

	newest := window[0]
	oldest := window[len(window)-1]
	change := newest.WeightKg - oldest.WeightKg

	elapsedDays := int(newest.RecordedAt.Sub(oldest.RecordedAt).Hours() / 24)
	if elapsedDays < 1 {
		elapsedDays = 1
	}

	direction := domain.TrendStable
	switch {
	case change > directionThresholdKg:
		direction = domain.TrendIncreasing
	case change < -directionThresholdKg:
		direction = domain.TrendDecreasing
	}

	strength := domain.TrendWeak
	switch {
	case math.Abs(change) > strongChangeKg:
		strength = domain.TrendStrong
	case math.Abs(change) > moderateChangeKg:
		strength = domain.TrendModerate
	}

	confidence := float64(len(window)) / trendFullConfidenceCount
	if confidence > 1 {
		confidence = 1
	}

	return domain.WeightTrendAnalysis{
		TrendDirection:       direction,
		WeightChangeKg:       change,
		AverageDailyChangeKg: change / float64(elapsedDays),
		TrendStrength:        strength,
		DaysAnalyzed:         daysBack,
		ConfidenceLevel:      confidence,
	}
}

// GenerateRecommendations recomputes and returns the advice strings for a pet
func (s *WeightTrackingService) GenerateRecommendations(petID string) []string {
	petID = strings.TrimSpace(petID)
	s.refreshRecommendations(petID)
	return s.Recommendations(petID)
}

// History returns a copy of the pet's weight records, newest first
func (s *WeightTrackingService) History(petID string) []domain.WeightRecord {
	petID = strings.TrimSpace(petID)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	state, ok := s.pets[petID]
	if !ok {
		return nil
	}
	history := make([]domain.WeightRecord, len(state.history))
	copy(history, state.history)
	return history
}

// ActiveGoal returns the pet's active weight goal
func (s *WeightTrackingService) ActiveGoal(petID string) (domain.WeightGoal, error) {
	petID = strings.TrimSpace(petID)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	state, ok := s.pets[petID]
	if !ok || state.activeGoal == nil {
		return domain.WeightGoal{}, domain.ErrNoActiveGoal
	}
	return *state.activeGoal, nil
}

// CurrentWeight returns the freshest recorded weight for a pet
func (s *WeightTrackingService) CurrentWeight(petID string) (float64, error) {
	petID = strings.TrimSpace(petID)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	state, ok := s.pets[petID]
	if !ok || len(state.history) == 0 {
		return 0, domain.ErrNoWeightData
	}
	return state.currentWeightKg, nil
}

// Recommendations returns the most recently computed advice strings
func (s *WeightTrackingService) Recommendations(petID string) []string {
	petID = strings.TrimSpace(petID)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	state, ok := s.pets[petID]
	if !ok {
		return nil
	}
	recs := make([]string, len(state.recommendations))
	copy(recs, state.recommendations)
	return recs
}

// HasCachedData reports whether any weight records are held for a pet
func (s *WeightTrackingService) HasCachedData(petID string) bool {
	petID = strings.TrimSpace(petID)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	state, ok := s.pets[petID]
	return ok && len(state.history) > 0
}

// stateLocked returns the pet's state, creating it if needed. The caller
// must hold the write lock.
func (s *WeightTrackingService) stateLocked(petID string) *petWeightState {
	state, ok := s.pets[petID]
	if !ok {
		state = &petWeightState{}
		s.pets[petID] = state
	}
	return state
}

// refreshRecommendations recomputes the stored advice strings for a pet
func (s *WeightTrackingService) refreshRecommendations(petID string) {
	trend := s.AnalyzeWeightTrend(petID, 0)
	now := s.now()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	state, ok := s.pets[petID]
	if !ok {
		return
	}
	state.recommendations = buildRecommendations(state.history, state.activeGoal, trend, now)
}

// buildRecommendations derives advice strings from the history, the active
// goal and the trend
func buildRecommendations(history []domain.WeightRecord, goal *domain.WeightGoal, trend domain.WeightTrendAnalysis, now time.Time) []string {
	var recs []string

	if trend.TrendDirection == domain.TrendIncreasing {
		if trend.TrendStrength == domain.TrendStrong {
			recs = append(recs, "Weight is climbing quickly. Review portion sizes and treat frequency with your vet.")
		}
		if goal != nil && goal.GoalType == domain.GoalWeightLoss {
			recs = append(recs, "Weight is moving away from the loss target. Consider lowering the daily calorie goal.")
		}
	}

	if trend.TrendDirection == domain.TrendDecreasing {
		if trend.TrendStrength == domain.TrendStrong {
			recs = append(recs, "Weight is dropping quickly. A veterinary check is recommended.")
		}
		if goal != nil && goal.GoalType == domain.GoalWeightGain {
			recs = append(recs, "Weight is moving away from the gain target. Consider increasing meal portions.")
		}
	}

	if trend.TrendDirection == domain.TrendStable && goal != nil && goal.GoalType == domain.GoalMaintenance {
		recs = append(recs, "Weight is holding steady. Maintenance is on track.")
	}

	if goal != nil && goal.TargetWeightKg > 0 && len(history) > 0 {
		current := history[0].WeightKg
		if math.Abs(current-goal.TargetWeightKg) <= goalReachedToleranceKg {
			recs = append(recs, "Target weight reached. Discuss a maintenance plan with your vet.")
		} else if goal.TargetDate != nil && now.After(*goal.TargetDate) {
			recs = append(recs, "The goal's target date has passed. Revisit the plan or set a new date.")
		}
	}

	if len(history) < lowDataRecordCount {
		recs = append(recs, "Weight history is sparse. Record weigh-ins regularly for reliable trends.")
	}

	if goal == nil {
		recs = append(recs, "No active weight goal. Set one to get tailored guidance.")
	}

	return recs
}
