package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/pawtrack/backend/internal/domain"
	"github.com/pawtrack/backend/pkg/logger"
)

// MockAPIClient is a mock implementation of domain.APIClient
type MockAPIClient struct {
	getResponses map[string]interface{}
	getErrors    map[string]error
	getErr       error
	postErr      error
	deleteErr    error
	getPaths     []string
	postPaths    []string
	postBodies   []interface{}
	deletePaths  []string
	token        string
}

func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{
		getResponses: make(map[string]interface{}),
		getErrors:    make(map[string]error),
	}
}

func (m *MockAPIClient) Get(ctx context.Context, path string, out interface{}) error {
	m.getPaths = append(m.getPaths, path)
	if err, ok := m.getErrors[path]; ok {
		return err
	}
	if m.getErr != nil {
		return m.getErr
	}
	value, ok := m.getResponses[path]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if out == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (m *MockAPIClient) Post(ctx context.Context, path string, body, out interface{}) error {
	m.postPaths = append(m.postPaths, path)
	m.postBodies = append(m.postBodies, body)
	return m.postErr
}

func (m *MockAPIClient) Delete(ctx context.Context, path string) error {
	m.deletePaths = append(m.deletePaths, path)
	return m.deleteErr
}

func (m *MockAPIClient) Token() string {
	return m.token
}

// MockKeyValueStore is a mock implementation of domain.KeyValueStore
type MockKeyValueStore struct {
	data     map[string][]byte
	getErr   error
	setErr   error
	setCalls int
}

func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{
		data: make(map[string][]byte),
	}
}

func (m *MockKeyValueStore) Get(key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	data, ok := m.data[key]
	return data, ok, nil
}

func (m *MockKeyValueStore) Set(key string, value []byte) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

// MockStandardsCache is a mock implementation of domain.StandardsCache
type MockStandardsCache struct {
	data      map[string][]domain.NutritionalStandard
	getCalled bool
	setCalled bool
}

func NewMockStandardsCache() *MockStandardsCache {
	return &MockStandardsCache{
		data: make(map[string][]domain.NutritionalStandard),
	}
}

func (m *MockStandardsCache) Get(ctx context.Context, key string) ([]domain.NutritionalStandard, error) {
	m.getCalled = true
	if standards, ok := m.data[key]; ok {
		return standards, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockStandardsCache) Set(ctx context.Context, key string, standards []domain.NutritionalStandard, ttl time.Duration) error {
	m.setCalled = true
	m.data[key] = standards
	return nil
}

func TestNewCalorieGoalsService(t *testing.T) {
	t.Run("creates service with default values", func(t *testing.T) {
		svc := NewCalorieGoalsService(NewMockAPIClient(), NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})
		if svc == nil {
			t.Fatal("expected service to be created")
		}
		if svc.standardsTTL != 6*time.Hour {
			t.Errorf("standardsTTL = %v, want 6h", svc.standardsTTL)
		}
		if svc.storeKey != "calorie_goals" {
			t.Errorf("storeKey = %v, want calorie_goals", svc.storeKey)
		}
	})

	t.Run("restores persisted goals", func(t *testing.T) {
		store := NewMockKeyValueStore()
		blob, _ := json.Marshal(map[string]domain.CalorieGoal{
			"p1": {PetID: "p1", DailyCalories: 550},
		})
		store.data["calorie_goals"] = blob

		svc := NewCalorieGoalsService(NewMockAPIClient(), store, NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		goal, err := svc.GetGoal("p1")
		if err != nil {
			t.Fatalf("GetGoal() error = %v", err)
		}
		if goal.DailyCalories != 550 {
			t.Errorf("DailyCalories = %v, want 550", goal.DailyCalories)
		}
	})

	t.Run("discards a corrupt blob", func(t *testing.T) {
		store := NewMockKeyValueStore()
		store.data["calorie_goals"] = []byte("not json")

		svc := NewCalorieGoalsService(NewMockAPIClient(), store, NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		_, err := svc.GetGoal("p1")
		if !errors.Is(err, domain.ErrGoalNotFound) {
			t.Errorf("error = %v, want ErrGoalNotFound", err)
		}
	})
}

func TestSetGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("stores goal locally after upstream success", func(t *testing.T) {
		client := NewMockAPIClient()
		store := NewMockKeyValueStore()
		svc := NewCalorieGoalsService(client, store, NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		set, err := svc.SetGoal(ctx, "p1", 450)
		if err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}
		if set.DailyCalories != 450 {
			t.Errorf("DailyCalories = %v, want 450", set.DailyCalories)
		}

		got, err := svc.GetGoal("p1")
		if err != nil {
			t.Fatalf("GetGoal() error = %v", err)
		}
		if got.DailyCalories != 450 {
			t.Errorf("GetGoal().DailyCalories = %v, want 450", got.DailyCalories)
		}
		if len(client.postPaths) != 1 || client.postPaths[0] != "/nutrition/goals/calorie-goals" {
			t.Errorf("postPaths = %v, want one POST to /nutrition/goals/calorie-goals", client.postPaths)
		}
		if store.setCalls == 0 {
			t.Error("expected goals to be persisted")
		}
	})

	t.Run("trims pet ids on every lookup path", func(t *testing.T) {
		svc := NewCalorieGoalsService(NewMockAPIClient(), NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, " p1 ", 450); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}
		got, err := svc.GetGoal("  p1")
		if err != nil {
			t.Fatalf("GetGoal() error = %v", err)
		}
		if got.PetID != "p1" {
			t.Errorf("PetID = %q, want %q", got.PetID, "p1")
		}
		if err := svc.DeleteGoal(ctx, "p1  "); err != nil {
			t.Fatalf("DeleteGoal() error = %v", err)
		}
		if _, err := svc.GetGoal("p1"); !errors.Is(err, domain.ErrGoalNotFound) {
			t.Errorf("error = %v, want ErrGoalNotFound", err)
		}
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := NewCalorieGoalsService(NewMockAPIClient(), NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "", 450); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("empty pet id: error = %v, want ErrInvalidInput", err)
		}
		if _, err := svc.SetGoal(ctx, "p1", 0); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("zero calories: error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("keeps local cache untouched when upstream fails", func(t *testing.T) {
		client := NewMockAPIClient()
		client.postErr = errors.New("upstream down")
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p1", 450); err == nil {
			t.Fatal("expected error from SetGoal")
		}
		if _, err := svc.GetGoal("p1"); !errors.Is(err, domain.ErrGoalNotFound) {
			t.Errorf("error = %v, want ErrGoalNotFound", err)
		}
	})

	t.Run("preserves createdAt across updates", func(t *testing.T) {
		svc := NewCalorieGoalsService(NewMockAPIClient(), NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		first := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		second := first.Add(48 * time.Hour)

		svc.now = func() time.Time { return first }
		if _, err := svc.SetGoal(ctx, "p1", 400); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}

		svc.now = func() time.Time { return second }
		if _, err := svc.SetGoal(ctx, "p1", 500); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}

		goal, err := svc.GetGoal("p1")
		if err != nil {
			t.Fatalf("GetGoal() error = %v", err)
		}
		if !goal.CreatedAt.Equal(first) {
			t.Errorf("CreatedAt = %v, want %v", goal.CreatedAt, first)
		}
		if !goal.UpdatedAt.Equal(second) {
			t.Errorf("UpdatedAt = %v, want %v", goal.UpdatedAt, second)
		}
		if goal.DailyCalories != 500 {
			t.Errorf("DailyCalories = %v, want 500", goal.DailyCalories)
		}
	})
}

func TestLoadGoals(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the local cache wholesale", func(t *testing.T) {
		client := NewMockAPIClient()
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p1", 400); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}

		client.getResponses["/nutrition/goals/calorie-goals"] = calorieGoalsResponse{
			Goals: []domain.CalorieGoal{{PetID: "p2", DailyCalories: 700}},
		}

		if err := svc.LoadGoals(ctx); err != nil {
			t.Fatalf("LoadGoals() error = %v", err)
		}

		if _, err := svc.GetGoal("p1"); !errors.Is(err, domain.ErrGoalNotFound) {
			t.Errorf("p1 should be gone, error = %v", err)
		}
		goal, err := svc.GetGoal("p2")
		if err != nil {
			t.Fatalf("GetGoal(p2) error = %v", err)
		}
		if goal.DailyCalories != 700 {
			t.Errorf("DailyCalories = %v, want 700", goal.DailyCalories)
		}
	})

	t.Run("keeps the local cache when upstream fails", func(t *testing.T) {
		client := NewMockAPIClient()
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p1", 400); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}

		client.getErrors["/nutrition/goals/calorie-goals"] = errors.New("upstream down")

		if err := svc.LoadGoals(ctx); err == nil {
			t.Fatal("expected error from LoadGoals")
		}
		if _, err := svc.GetGoal("p1"); err != nil {
			t.Errorf("GetGoal(p1) error = %v, want goal kept", err)
		}
	})

	t.Run("Goals lists the cache ordered by pet id", func(t *testing.T) {
		client := NewMockAPIClient()
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p2", 700); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}
		if _, err := svc.SetGoal(ctx, "p1", 400); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}

		goals := svc.Goals()
		if len(goals) != 2 {
			t.Fatalf("Goals() length = %d, want 2", len(goals))
		}
		if goals[0].PetID != "p1" || goals[1].PetID != "p2" {
			t.Errorf("Goals() order = [%s %s], want [p1 p2]", goals[0].PetID, goals[1].PetID)
		}
	})
}

func TestDeleteGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("removes locally after upstream success", func(t *testing.T) {
		client := NewMockAPIClient()
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p1", 400); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}
		if err := svc.DeleteGoal(ctx, "p1"); err != nil {
			t.Fatalf("DeleteGoal() error = %v", err)
		}

		if _, err := svc.GetGoal("p1"); !errors.Is(err, domain.ErrGoalNotFound) {
			t.Errorf("error = %v, want ErrGoalNotFound", err)
		}
		if len(client.deletePaths) != 1 || client.deletePaths[0] != "/nutrition/goals/calorie-goals/p1" {
			t.Errorf("deletePaths = %v", client.deletePaths)
		}
	})

	t.Run("keeps local goal when upstream fails", func(t *testing.T) {
		client := NewMockAPIClient()
		client.deleteErr = errors.New("upstream down")
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p1", 400); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}
		if err := svc.DeleteGoal(ctx, "p1"); err == nil {
			t.Fatal("expected error from DeleteGoal")
		}
		if _, err := svc.GetGoal("p1"); err != nil {
			t.Errorf("GetGoal(p1) error = %v, want goal kept", err)
		}
	})

	t.Run("rejects empty pet id", func(t *testing.T) {
		svc := NewCalorieGoalsService(NewMockAPIClient(), NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if err := svc.DeleteGoal(ctx, " "); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestGetGoalProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ErrGoalNotFound without a goal", func(t *testing.T) {
		svc := NewCalorieGoalsService(NewMockAPIClient(), NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		_, err := svc.GetGoalProgress(ctx, "p1", "2026-08-20")
		if !errors.Is(err, domain.ErrGoalNotFound) {
			t.Errorf("error = %v, want ErrGoalNotFound", err)
		}
	})

	t.Run("wraps upstream failure as ErrAPIFailure", func(t *testing.T) {
		client := NewMockAPIClient()
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p1", 400); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}
		client.getErr = errors.New("upstream down")

		_, err := svc.GetGoalProgress(ctx, "p1", "2026-08-20")
		if !errors.Is(err, domain.ErrAPIFailure) {
			t.Errorf("error = %v, want ErrAPIFailure", err)
		}
		if errors.Is(err, domain.ErrGoalNotFound) {
			t.Error("upstream failure must not look like a missing goal")
		}
	})

	t.Run("computes partial progress", func(t *testing.T) {
		client := NewMockAPIClient()
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p1", 500); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}
		client.getResponses["/nutrition/daily-summary/p1?date=2026-08-20"] = domain.DailySummary{
			PetID: "p1", Date: "2026-08-20", TotalCalories: 250, MealCount: 2,
		}

		progress, err := svc.GetGoalProgress(ctx, "p1", "2026-08-20")
		if err != nil {
			t.Fatalf("GetGoalProgress() error = %v", err)
		}
		if progress.RemainingCalories != 250 {
			t.Errorf("RemainingCalories = %v, want 250", progress.RemainingCalories)
		}
		if progress.ProgressPercentage != 50 {
			t.Errorf("ProgressPercentage = %v, want 50", progress.ProgressPercentage)
		}
	})

	t.Run("clamps overconsumption", func(t *testing.T) {
		client := NewMockAPIClient()
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p1", 400); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}
		client.getResponses["/nutrition/daily-summary/p1?date=2026-08-20"] = domain.DailySummary{
			PetID: "p1", Date: "2026-08-20", TotalCalories: 600, MealCount: 4,
		}

		progress, err := svc.GetGoalProgress(ctx, "p1", "2026-08-20")
		if err != nil {
			t.Fatalf("GetGoalProgress() error = %v", err)
		}
		if progress.RemainingCalories != 0 {
			t.Errorf("RemainingCalories = %v, want 0", progress.RemainingCalories)
		}
		if progress.ProgressPercentage != 100 {
			t.Errorf("ProgressPercentage = %v, want 100", progress.ProgressPercentage)
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		svc := NewCalorieGoalsService(NewMockAPIClient(), NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		if _, err := svc.SetGoal(ctx, "p1", 400); err != nil {
			t.Fatalf("SetGoal() error = %v", err)
		}
		_, err := svc.GetGoalProgress(ctx, "p1", "20-08-2026")
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestCalculateSuggestedGoal(t *testing.T) {
	ctx := context.Background()

	pet := domain.Pet{
		ID:            "p1",
		Name:          "Rex",
		Species:       domain.SpeciesDog,
		LifeStage:     domain.LifeStageAdult,
		ActivityLevel: domain.ActivityModerate,
		WeightKg:      20,
	}

	t.Run("uses an exact standard match", func(t *testing.T) {
		client := NewMockAPIClient()
		client.getResponses["/nutritional-analysis/standards?species=dog&life_stage=adult"] = standardsResponse{
			Standards: []domain.NutritionalStandard{{
				Species:       domain.SpeciesDog,
				LifeStage:     domain.LifeStageAdult,
				ActivityLevel: domain.ActivityModerate,
				MinWeightKg:   10,
				MaxWeightKg:   30,
				CaloriesPerKg: 45,
			}},
		}
		standards := NewMockStandardsCache()
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), standards, logger.NewNop(), CalorieGoalsServiceConfig{})

		suggested, err := svc.CalculateSuggestedGoal(ctx, pet)
		if err != nil {
			t.Fatalf("CalculateSuggestedGoal() error = %v", err)
		}
		if suggested.Source != domain.SuggestionStandardExact {
			t.Errorf("Source = %v, want %v", suggested.Source, domain.SuggestionStandardExact)
		}
		if suggested.DailyCalories != 900 {
			t.Errorf("DailyCalories = %v, want 900", suggested.DailyCalories)
		}
		if !standards.setCalled {
			t.Error("expected fetched standards to be cached")
		}
	})

	t.Run("serves standards from cache without refetching", func(t *testing.T) {
		client := NewMockAPIClient()
		standards := NewMockStandardsCache()
		standards.data["standards:dog:adult"] = []domain.NutritionalStandard{{
			Species:       domain.SpeciesDog,
			LifeStage:     domain.LifeStageAdult,
			ActivityLevel: domain.ActivityModerate,
			MinWeightKg:   10,
			MaxWeightKg:   30,
			CaloriesPerKg: 45,
		}}
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), standards, logger.NewNop(), CalorieGoalsServiceConfig{})

		suggested, err := svc.CalculateSuggestedGoal(ctx, pet)
		if err != nil {
			t.Fatalf("CalculateSuggestedGoal() error = %v", err)
		}
		if suggested.Source != domain.SuggestionStandardExact {
			t.Errorf("Source = %v, want %v", suggested.Source, domain.SuggestionStandardExact)
		}
		if len(client.getPaths) != 0 {
			t.Errorf("getPaths = %v, want no upstream calls", client.getPaths)
		}
	})

	t.Run("falls back to the weight-range midpoint", func(t *testing.T) {
		client := NewMockAPIClient()
		client.getResponses["/nutritional-analysis/standards?species=dog&life_stage=adult"] = standardsResponse{
			Standards: []domain.NutritionalStandard{{
				Species:       domain.SpeciesDog,
				LifeStage:     domain.LifeStageAdult,
				ActivityLevel: domain.ActivityHigh,
				MinWeightKg:   30,
				MaxWeightKg:   50,
				CaloriesPerKg: 40,
			}},
		}
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		suggested, err := svc.CalculateSuggestedGoal(ctx, pet)
		if err != nil {
			t.Fatalf("CalculateSuggestedGoal() error = %v", err)
		}
		if suggested.Source != domain.SuggestionStandardMidpoint {
			t.Errorf("Source = %v, want %v", suggested.Source, domain.SuggestionStandardMidpoint)
		}
		// midpoint of 30..50 is 40, times 40 kcal/kg
		if suggested.DailyCalories != 1600 {
			t.Errorf("DailyCalories = %v, want 1600", suggested.DailyCalories)
		}
	})

	t.Run("falls back to the default table when the lookup fails", func(t *testing.T) {
		client := NewMockAPIClient()
		client.getErr = errors.New("upstream down")
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		suggested, err := svc.CalculateSuggestedGoal(ctx, pet)
		if err != nil {
			t.Fatalf("CalculateSuggestedGoal() error = %v", err)
		}
		if suggested.Source != domain.SuggestionDefaultTable {
			t.Errorf("Source = %v, want %v", suggested.Source, domain.SuggestionDefaultTable)
		}
		if suggested.DailyCalories != 600 {
			t.Errorf("DailyCalories = %v, want 600", suggested.DailyCalories)
		}
	})

	t.Run("falls back to the formula for species outside the table", func(t *testing.T) {
		client := NewMockAPIClient()
		client.getErr = errors.New("upstream down")
		svc := NewCalorieGoalsService(client, NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		exotic := domain.Pet{
			ID:            "p2",
			Species:       domain.Species("ferret"),
			LifeStage:     domain.LifeStageAdult,
			ActivityLevel: domain.ActivityHigh,
			WeightKg:      2,
		}

		suggested, err := svc.CalculateSuggestedGoal(ctx, exotic)
		if err != nil {
			t.Fatalf("CalculateSuggestedGoal() error = %v", err)
		}
		if suggested.Source != domain.SuggestionFormula {
			t.Errorf("Source = %v, want %v", suggested.Source, domain.SuggestionFormula)
		}
		// 2kg x 30 base x 1.2 activity x 1.0 life stage
		if suggested.DailyCalories != 72 {
			t.Errorf("DailyCalories = %v, want 72", suggested.DailyCalories)
		}
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		svc := NewCalorieGoalsService(NewMockAPIClient(), NewMockKeyValueStore(), NewMockStandardsCache(), logger.NewNop(), CalorieGoalsServiceConfig{})

		_, err := svc.CalculateSuggestedGoal(ctx, domain.Pet{ID: "p1", WeightKg: 0})
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}
