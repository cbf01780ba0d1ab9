package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawtrack/backend/internal/domain"
	"github.com/pawtrack/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	goalService   *usecase.CalorieGoalsService
	weightService *usecase.WeightTrackingService
	syncService   *usecase.WeightDataSyncService
	upstream      domain.APIClient
}

// NewHandler creates a new HTTP handler
func NewHandler(
	goalService *usecase.CalorieGoalsService,
	weightService *usecase.WeightTrackingService,
	syncService *usecase.WeightDataSyncService,
	upstream domain.APIClient,
) *Handler {
	return &Handler{
		goalService:   goalService,
		weightService: weightService,
		syncService:   syncService,
		upstream:      upstream,
	}
}

type setCalorieGoalRequest struct {
	PetID         string  `json:"petId" binding:"required"`
	DailyCalories float64 `json:"dailyCalories" binding:"required"`
}

type recordWeightRequest struct {
	PetID    string  `json:"petId" binding:"required"`
	WeightKg float64 `json:"weightKg" binding:"required"`
	Notes    string  `json:"notes"`
}

type createWeightGoalRequest struct {
	PetID           string     `json:"petId" binding:"required"`
	GoalType        string     `json:"goalType" binding:"required"`
	TargetWeightKg  float64    `json:"targetWeightKg"`
	CurrentWeightKg float64    `json:"currentWeightKg"`
	TargetDate      *time.Time `json:"targetDate"`
	Notes           string     `json:"notes"`
}

type lifecycleRequest struct {
	State string `json:"state" binding:"required"`
}

// respondError maps domain sentinel errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrPetNotFound),
		errors.Is(err, domain.ErrNoActiveGoal),
		errors.Is(err, domain.ErrNoWeightData),
		errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAPIFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"service":      "pawtrack-backend",
		"version":      "1.0.0",
		"upstreamAuth": h.upstream != nil && h.upstream.Token() != "",
	})
}

// SetCalorieGoal handles calorie goal create and update requests
func (h *Handler) SetCalorieGoal(c *gin.Context) {
	var req setCalorieGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalService.SetGoal(c.Request.Context(), req.PetID, req.DailyCalories)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// GetCalorieGoal returns the cached calorie goal for a pet
func (h *Handler) GetCalorieGoal(c *gin.Context) {
	goal, err := h.goalService.GetGoal(c.Param("petId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// DeleteCalorieGoal removes a pet's calorie goal
func (h *Handler) DeleteCalorieGoal(c *gin.Context) {
	if err := h.goalService.DeleteGoal(c.Request.Context(), c.Param("petId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReloadCalorieGoals refreshes the goal cache from upstream and returns it
func (h *Handler) ReloadCalorieGoals(c *gin.Context) {
	if err := h.goalService.LoadGoals(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": h.goalService.Goals()})
}

// GetGoalProgress returns one day's consumption measured against the goal.
// The date query parameter defaults to today.
func (h *Handler) GetGoalProgress(c *gin.Context) {
	progress, err := h.goalService.GetGoalProgress(c.Request.Context(), c.Param("petId"), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// SuggestCalorieGoal computes a daily calorie suggestion for a pet profile
func (h *Handler) SuggestCalorieGoal(c *gin.Context) {
	var pet domain.Pet
	if err := c.ShouldBindJSON(&pet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestion, err := h.goalService.CalculateSuggestedGoal(c.Request.Context(), pet)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

// RecordWeight stores a new weight measurement
func (h *Handler) RecordWeight(c *gin.Context) {
	var req recordWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.weightService.RecordWeight(c.Request.Context(), req.PetID, req.WeightKg, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// WeightHistory returns the cached weight records for a pet, newest first
func (h *Handler) WeightHistory(c *gin.Context) {
	records := h.weightService.History(c.Param("petId"))
	if records == nil {
		records = []domain.WeightRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// WeightTrend returns the trend analysis over the trailing window.
// The days query parameter defaults to the 30-day window.
func (h *Handler) WeightTrend(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = parsed
	}

	c.JSON(http.StatusOK, h.weightService.AnalyzeWeightTrend(c.Param("petId"), days))
}

// WeightRecommendations returns the advice strings for a pet
func (h *Handler) WeightRecommendations(c *gin.Context) {
	recs := h.weightService.GenerateRecommendations(c.Param("petId"))
	if recs == nil {
		recs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// CreateWeightGoal stores a new weight goal as the pet's active goal
func (h *Handler) CreateWeightGoal(c *gin.Context) {
	var req createWeightGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.weightService.CreateWeightGoal(c.Request.Context(), usecase.WeightGoalInput{
		PetID:           req.PetID,
		GoalType:        domain.WeightGoalType(req.GoalType),
		TargetWeightKg:  req.TargetWeightKg,
		CurrentWeightKg: req.CurrentWeightKg,
		TargetDate:      req.TargetDate,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// ActiveWeightGoal returns the pet's active weight goal
func (h *Handler) ActiveWeightGoal(c *gin.Context) {
	goal, err := h.weightService.ActiveGoal(c.Param("petId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// ReloadWeightData refreshes a pet's records and goal from upstream and
// returns the new state
func (h *Handler) ReloadWeightData(c *gin.Context) {
	petID := c.Param("petId")
	if err := h.weightService.LoadWeightData(c.Request.Context(), petID); err != nil {
		respondError(c, err)
		return
	}

	records := h.weightService.History(petID)
	if records == nil {
		records = []domain.WeightRecord{}
	}
	resp := gin.H{"records": records}
	if goal, err := h.weightService.ActiveGoal(petID); err == nil {
		resp["activeGoal"] = goal
	}
	c.JSON(http.StatusOK, resp)
}

// StartSync adds a pet to the background sync set
func (h *Handler) StartSync(c *gin.Context) {
	if err := h.syncService.StartSyncForPet(c.Param("petId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.syncService.Status())
}

// StopSync removes a pet from the background sync set
func (h *Handler) StopSync(c *gin.Context) {
	h.syncService.StopSyncForPet(c.Param("petId"))
	c.JSON(http.StatusOK, h.syncService.Status())
}

// SyncStatus returns a snapshot of the sync scheduler
func (h *Handler) SyncStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.syncService.Status())
}

// EnableFastPolling tightens the polling interval for the fast window
func (h *Handler) EnableFastPolling(c *gin.Context) {
	h.syncService.EnableFastPolling()
	c.JSON(http.StatusOK, h.syncService.Status())
}

// AppLifecycle moves the scheduler between foreground and background
func (h *Handler) AppLifecycle(c *gin.Context) {
	var req lifecycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.State {
	case "foreground":
		h.syncService.EnterForeground()
	case "background":
		h.syncService.EnterBackground()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be foreground or background"})
		return
	}
	c.JSON(http.StatusOK, h.syncService.Status())
}

// SyncNow triggers an immediate sync pass. The response reports whether the
// pass ran or was skipped because one was already in flight.
func (h *Handler) SyncNow(c *gin.Context) {
	ran := h.syncService.SyncNow()
	c.JSON(http.StatusOK, gin.H{"ran": ran, "status": h.syncService.Status()})
}
