package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pawtrack/backend/internal/domain"
	"github.com/pawtrack/backend/pkg/logger"
)

// syncLoop tracks one running polling goroutine
type syncLoop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// WeightDataSyncServiceConfig holds the polling intervals
type WeightDataSyncServiceConfig struct {
	NormalInterval time.Duration
	FastInterval   time.Duration
	FastWindow     time.Duration
}

// WeightDataSyncService periodically checks the local weight cache for the
// active pets while the app is foregrounded. A single loop serves all pets;
// enabling fast polling tightens the interval until a deadline, after which
// a sync pass downgrades it back to normal.
type WeightDataSyncService struct {
	weightCache domain.WeightCache
	log         *logger.Logger
	now         func() time.Time

	normalInterval time.Duration
	fastInterval   time.Duration
	fastWindow     time.Duration

	mutex      sync.Mutex
	activePets map[string]struct{}
	fastUntil  *time.Time
	foreground bool
	syncing    bool
	lastSyncAt *time.Time
	lastError  string // reserved for pass failures; never set by the current pass
	loop       *syncLoop
}

// NewWeightDataSyncService creates a new sync scheduler with dependencies.
// The scheduler starts foregrounded and idle.
func NewWeightDataSyncService(
	weightCache domain.WeightCache,
	log *logger.Logger,
	config WeightDataSyncServiceConfig,
) *WeightDataSyncService {
	normal := config.NormalInterval
	if normal <= 0 {
		normal = 30 * time.Second
	}

	fast := config.FastInterval
	if fast <= 0 {
		fast = 10 * time.Second
	}

	window := config.FastWindow
	if window <= 0 {
		window = 5 * time.Minute
	}

	return &WeightDataSyncService{
		weightCache:    weightCache,
		log:            log,
		now:            time.Now,
		normalInterval: normal,
		fastInterval:   fast,
		fastWindow:     window,
		activePets:     make(map[string]struct{}),
		foreground:     true,
	}
}

// StartSyncForPet adds a pet to the active set. The first pet starts the
// polling loop when foregrounded; already-tracked pets are a no-op.
func (s *WeightDataSyncService) StartSyncForPet(petID string) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return domain.ErrInvalidInput
	}

	s.mutex.Lock()
	s.activePets[petID] = struct{}{}
	s.startLoopLocked()
	s.mutex.Unlock()
	return nil
}

// StopSyncForPet removes a pet from the active set, stopping the loop when
// the last pet is removed
func (s *WeightDataSyncService) StopSyncForPet(petID string) {
	petID = strings.TrimSpace(petID)

	s.mutex.Lock()
	delete(s.activePets, petID)
	stop := len(s.activePets) == 0
	s.mutex.Unlock()

	if stop {
		s.restartLoop()
	}
}

// StopAll clears the active set and stops the loop
func (s *WeightDataSyncService) StopAll() {
	s.mutex.Lock()
	s.activePets = make(map[string]struct{})
	s.mutex.Unlock()

	s.restartLoop()
}

// EnableFastPolling switches to the fast interval until the fast window
// elapses. A running loop is restarted so the new interval applies at once.
func (s *WeightDataSyncService) EnableFastPolling() {
	s.mutex.Lock()
	until := s.now().Add(s.fastWindow)
	s.fastUntil = &until
	polling := s.loop != nil
	s.mutex.Unlock()

	if polling {
		s.restartLoop()
	}
}

// EnterForeground resumes polling for the pets that remained active
func (s *WeightDataSyncService) EnterForeground() {
	s.mutex.Lock()
	s.foreground = true
	s.mutex.Unlock()

	s.restartLoop()
}

// EnterBackground stops the loop without touching the active set
func (s *WeightDataSyncService) EnterBackground() {
	s.mutex.Lock()
	s.foreground = false
	s.mutex.Unlock()

	s.restartLoop()
}

// SyncNow runs one sync pass, returning false when a pass is already in
// flight. Overlapping passes are skipped, never queued. The pass checks
// local weight-cache presence per active pet and performs no network I/O.
func (s *WeightDataSyncService) SyncNow() bool {
	s.mutex.Lock()
	if s.syncing {
		s.mutex.Unlock()
		return false
	}
	s.syncing = true
	pets := make([]string, 0, len(s.activePets))
	for petID := range s.activePets {
		pets = append(pets, petID)
	}
	s.mutex.Unlock()

	for _, petID := range pets {
		if !s.weightCache.HasCachedData(petID) {
			s.log.Debugw("no cached weight data", "petId", petID)
		}
	}

	now := s.now()

	s.mutex.Lock()
	s.lastSyncAt = &now
	if s.fastUntil != nil && !now.Before(*s.fastUntil) {
		// Fast window over; the loop picks up the normal interval after
		// this pass
		s.fastUntil = nil
	}
	s.syncing = false
	s.mutex.Unlock()

	return true
}

// Status returns a point-in-time snapshot of the scheduler
func (s *WeightDataSyncService) Status() domain.SyncStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	pets := make([]string, 0, len(s.activePets))
	for petID := range s.activePets {
		pets = append(pets, petID)
	}
	sort.Strings(pets)

	status := domain.SyncStatus{
		ActivePetIDs: pets,
		Polling:      s.loop != nil,
		Interval:     s.effectiveIntervalLocked(),
		Syncing:      s.syncing,
		LastError:    s.lastError,
	}
	if s.fastUntil != nil {
		until := *s.fastUntil
		status.FastUntil = &until
	}
	if s.lastSyncAt != nil {
		at := *s.lastSyncAt
		status.LastSyncAt = &at
	}
	return status
}

// startLoopLocked starts the polling goroutine when foregrounded with at
// least one active pet and no loop already running. The caller must hold
// the mutex.
func (s *WeightDataSyncService) startLoopLocked() {
	if s.loop != nil || !s.foreground || len(s.activePets) == 0 {
		return
	}

	interval := s.effectiveIntervalLocked()
	ctx, cancel := context.WithCancel(context.Background())
	loop := &syncLoop{cancel: cancel, done: make(chan struct{})}
	s.loop = loop

	go s.run(ctx, loop.done, interval)
	s.log.Infow("sync loop started", "interval", interval, "activePets", len(s.activePets))
}

// stopLoop cancels the running loop and waits for it to exit
func (s *WeightDataSyncService) stopLoop() {
	s.mutex.Lock()
	loop := s.loop
	s.loop = nil
	s.mutex.Unlock()

	if loop == nil {
		return
	}
	loop.cancel()
	<-loop.done
	s.log.Infow("sync loop stopped")
}

// restartLoop stops any running loop, then starts a fresh one if the current
// state still calls for polling. Every transition funnels through here, so a
// registration that lands between a stop decision and the stop itself keeps
// its loop.
func (s *WeightDataSyncService) restartLoop() {
	s.stopLoop()

	s.mutex.Lock()
	s.startLoopLocked()
	s.mutex.Unlock()
}

func (s *WeightDataSyncService) run(ctx context.Context, done chan struct{}, interval time.Duration) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SyncNow()

			// A pass may have cleared the fast window; follow the interval
			// without restarting the loop
			if next := s.effectiveInterval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}

func (s *WeightDataSyncService) effectiveInterval() time.Duration {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.effectiveIntervalLocked()
}

func (s *WeightDataSyncService) effectiveIntervalLocked() time.Duration {
	if s.fastUntil != nil && s.now().Before(*s.fastUntil) {
		return s.fastInterval
	}
	return s.normalInterval
}
