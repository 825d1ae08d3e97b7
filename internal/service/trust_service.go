package service

import (
	"context"
	"log"
	"time"

	"hydropoints/internal/cache"
	"hydropoints/internal/model"
	"hydropoints/internal/repository"
	"hydropoints/internal/trust"
)

// TrustService runs the interactive recomputation path: fetch the window,
// run the shared pipeline, persist and cache the result. The batch sweep
// consumes this same service, so the two call sites cannot diverge.
type TrustService struct {
	logRepo     repository.LogRepo
	scanRepo    repository.ScanRepo
	profileRepo repository.ProfileRepo
	scoreRepo   repository.ScoreRepo
	scoreCache  cache.ScoreCache
	engine      *trust.Engine
	broadcaster Broadcaster
}

// NewTrustService creates a new trust service
func NewTrustService(
	logRepo repository.LogRepo,
	scanRepo repository.ScanRepo,
	profileRepo repository.ProfileRepo,
	scoreRepo repository.ScoreRepo,
	scoreCache cache.ScoreCache,
	engine *trust.Engine,
) *TrustService {
	return &TrustService{
		logRepo:     logRepo,
		scanRepo:    scanRepo,
		profileRepo: profileRepo,
		scoreRepo:   scoreRepo,
		scoreCache:  scoreCache,
		engine:      engine,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *TrustService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Engine exposes the shared pipeline (thresholds, governance)
func (s *TrustService) Engine() *trust.Engine {
	return s.engine
}

// GetScore returns the freshest score for the user, recomputing when the
// cached result is missing or older than the staleness window.
func (s *TrustService) GetScore(ctx context.Context, userID string) (*model.ScoreResult, error) {
	cached, err := s.scoreCache.Get(ctx, userID)
	if err != nil {
		// Cache trouble degrades to recompute, never to an error
		log.Printf("score cache read failed for user %s: %v", userID, err)
	}
	if cached != nil && s.fresh(cached) {
		return cached, nil
	}

	persisted, err := s.scoreRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if persisted != nil && s.fresh(persisted) {
		// Warm the cache back up for the next read
		if err := s.scoreCache.Set(ctx, persisted); err != nil {
			log.Printf("score cache write failed for user %s: %v", userID, err)
		}
		return persisted, nil
	}

	return s.Recompute(ctx, userID)
}

// Recompute fetches the trailing window, runs the pipeline and persists the
// replacement result.
func (s *TrustService) Recompute(ctx context.Context, userID string) (*model.ScoreResult, error) {
	t := s.engine.Thresholds()

	logs, err := s.logRepo.GetWindow(ctx, userID, t.WindowDays)
	if err != nil {
		return nil, err
	}
	scans, err := s.scanRepo.GetWindow(ctx, userID, t.WindowDays)
	if err != nil {
		return nil, err
	}

	household := model.HouseholdContext{Size: 1}
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		household = profile.Household()
	}

	result, err := s.engine.Compute(trust.Input{
		UserID:    userID,
		Logs:      logs,
		Scans:     scans,
		Household: household,
	}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.scoreRepo.Upsert(ctx, result); err != nil {
		return nil, err
	}
	if err := s.scoreCache.Set(ctx, result); err != nil {
		log.Printf("score cache write failed for user %s: %v", userID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToUser(userID, "score_updated", result)
	}

	return result, nil
}

// Governance returns the reward policy for the user's freshest score
func (s *TrustService) Governance(ctx context.Context, userID string) (*model.ScoreResult, model.RewardPolicy, error) {
	result, err := s.GetScore(ctx, userID)
	if err != nil {
		return nil, model.RewardPolicy{}, err
	}
	return result, s.engine.Govern(result), nil
}

func (s *TrustService) fresh(result *model.ScoreResult) bool {
	ttl := time.Duration(s.engine.Thresholds().StalenessHours) * time.Hour
	return time.Since(result.ComputedAt) < ttl
}
