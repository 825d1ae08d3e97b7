package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hydropoints/internal/model"
	"hydropoints/internal/repository"
)

// Recomputer is the single pipeline entry point the sweep drives.
// TrustService satisfies it; the batch path owns no scoring logic of its own.
type Recomputer interface {
	Recompute(ctx context.Context, userID string) (*model.ScoreResult, error)
}

// SweepService runs the scheduled batch recomputation over every user with
// qualifying data. Per-user computations are independent, so the sweep runs
// them on a bounded worker pool; one user's failure never aborts the rest.
type SweepService struct {
	logRepo     repository.LogRepo
	sweepRepo   repository.SweepRepo
	recomputer  Recomputer
	windowDays  int
	workers     int
	broadcaster Broadcaster
}

// NewSweepService creates a new sweep service
func NewSweepService(logRepo repository.LogRepo, sweepRepo repository.SweepRepo, recomputer Recomputer, windowDays, workers int) *SweepService {
	if workers < 1 {
		workers = 1
	}
	return &SweepService{
		logRepo:    logRepo,
		sweepRepo:  sweepRepo,
		recomputer: recomputer,
		windowDays: windowDays,
		workers:    workers,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SweepService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// RecomputeAll sweeps every user with at least one log entry in the window.
// Each user's upsert is atomic and independent, so cancellation mid-sweep
// leaves already-written results valid and simply skips the rest.
func (s *SweepService) RecomputeAll(ctx context.Context) (*model.SweepResult, error) {
	userIDs, err := s.logRepo.ListActiveUserIDs(ctx, s.windowDays)
	if err != nil {
		return nil, err
	}

	sweep := &model.SweepResult{
		RunID:     uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	log.Printf("sweep %s: recomputing %d users with %d workers", sweep.RunID, len(userIDs), s.workers)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmins("sweep_started", map[string]interface{}{
			"runId": sweep.RunID,
			"users": len(userIDs),
		})
	}

	results := make([]model.SweepUserResult, len(userIDs))
	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i, userID := range userIDs {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = model.SweepUserResult{
					UserID: userID,
					Status: model.SweepError,
					Error:  ctx.Err().Error(),
				}
				return
			}

			result, err := s.recomputer.Recompute(ctx, userID)
			if err != nil {
				results[i] = model.SweepUserResult{
					UserID: userID,
					Status: model.SweepError,
					Error:  err.Error(),
				}
				return
			}
			results[i] = model.SweepUserResult{
				UserID: userID,
				Status: model.SweepSuccess,
				Score:  result.Score,
				Level:  result.HonestyLevel,
			}
		}(i, userID)
	}
	wg.Wait()

	sweep.Users = results
	sweep.FinishedAt = time.Now().UTC()
	log.Printf("sweep %s: done, %d ok / %d failed", sweep.RunID, sweep.Succeeded(), sweep.Failed())

	if err := s.sweepRepo.Save(ctx, sweep); err != nil {
		// Per-user results are already persisted; losing the run record is
		// reportable but not fatal.
		log.Printf("sweep %s: saving run record failed: %v", sweep.RunID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmins("sweep_completed", sweep)
	}

	return sweep, nil
}

// GetRun returns a stored sweep run record
func (s *SweepService) GetRun(ctx context.Context, runID string) (*model.SweepResult, error) {
	return s.sweepRepo.GetByRunID(ctx, runID)
}
