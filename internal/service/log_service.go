package service

import (
	"context"
	"fmt"
	"log"

	"hydropoints/internal/cache"
	"hydropoints/internal/model"
	"hydropoints/internal/repository"
	"hydropoints/internal/trust"
)

// LogService records intake entries and barcode scans. New evidence
// invalidates the cached trust score so the next read recomputes.
type LogService struct {
	logRepo    repository.LogRepo
	scanRepo   repository.ScanRepo
	scoreCache cache.ScoreCache
	windowDays int
}

// NewLogService creates a new log service
func NewLogService(logRepo repository.LogRepo, scanRepo repository.ScanRepo, scoreCache cache.ScoreCache, windowDays int) *LogService {
	return &LogService{
		logRepo:    logRepo,
		scanRepo:   scanRepo,
		scoreCache: scoreCache,
		windowDays: windowDays,
	}
}

// AddEntry validates and stores one intake entry
func (s *LogService) AddEntry(ctx context.Context, entry *model.DailyLogEntry) error {
	if entry.Amount < 0 {
		return fmt.Errorf("%w: amount %.1f", trust.ErrNegativeAmount, entry.Amount)
	}
	if entry.Date.IsZero() {
		return trust.ErrMissingDate
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		return err
	}
	s.invalidate(ctx, entry.UserID)
	return nil
}

// AddScan validates and stores one barcode scan
func (s *LogService) AddScan(ctx context.Context, scan *model.ExternalScan) error {
	if scan.DeclaredAmount < 0 {
		return fmt.Errorf("%w: declared amount %.1f", trust.ErrNegativeAmount, scan.DeclaredAmount)
	}

	if err := s.scanRepo.Create(ctx, scan); err != nil {
		return err
	}
	s.invalidate(ctx, scan.UserID)
	return nil
}

// GetEntries returns the user's trailing log window
func (s *LogService) GetEntries(ctx context.Context, userID string) ([]model.DailyLogEntry, error) {
	return s.logRepo.GetWindow(ctx, userID, s.windowDays)
}

func (s *LogService) invalidate(ctx context.Context, userID string) {
	if err := s.scoreCache.Invalidate(ctx, userID); err != nil {
		log.Printf("score cache invalidate failed for user %s: %v", userID, err)
	}
}
