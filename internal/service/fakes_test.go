package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"hydropoints/internal/model"
)

// In-memory doubles for the Mongo repositories and the Redis cache.
// All of them are safe for concurrent use so the sweep tests can hammer
// them from the worker pool.

type memLogRepo struct {
	mu      sync.Mutex
	entries map[string][]model.DailyLogEntry
}

func newMemLogRepo() *memLogRepo {
	return &memLogRepo{entries: make(map[string][]model.DailyLogEntry)}
}

func (r *memLogRepo) Create(ctx context.Context, entry *model.DailyLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries[entry.UserID] = append(r.entries[entry.UserID], *entry)
	return nil
}

func (r *memLogRepo) GetWindow(ctx context.Context, userID string, windowDays int) ([]model.DailyLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]model.DailyLogEntry(nil), r.entries[userID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memLogRepo) ListActiveUserIDs(ctx context.Context, windowDays int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

type memScanRepo struct {
	mu    sync.Mutex
	scans map[string][]model.ExternalScan
}

func newMemScanRepo() *memScanRepo {
	return &memScanRepo{scans: make(map[string][]model.ExternalScan)}
}

func (r *memScanRepo) Create(ctx context.Context, scan *model.ExternalScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if scan.ScannedAt.IsZero() {
		scan.ScannedAt = time.Now()
	}
	r.scans[scan.UserID] = append(r.scans[scan.UserID], *scan)
	return nil
}

func (r *memScanRepo) GetWindow(ctx context.Context, userID string, windowDays int) ([]model.ExternalScan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ExternalScan(nil), r.scans[userID]...), nil
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]model.UserProfile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]model.UserProfile)}
}

func (r *memProfileRepo) Upsert(ctx context.Context, profile *model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *memProfileRepo) GetByID(ctx context.Context, userID string) (*model.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type memScoreRepo struct {
	mu     sync.Mutex
	scores map[string]model.ScoreResult
}

func newMemScoreRepo() *memScoreRepo {
	return &memScoreRepo{scores: make(map[string]model.ScoreResult)}
}

func (r *memScoreRepo) Upsert(ctx context.Context, result *model.ScoreResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[result.UserID] = *result
	return nil
}

func (r *memScoreRepo) GetByUserID(ctx context.Context, userID string) (*model.ScoreResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scores[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

type memSweepRepo struct {
	mu   sync.Mutex
	runs map[string]model.SweepResult
}

func newMemSweepRepo() *memSweepRepo {
	return &memSweepRepo{runs: make(map[string]model.SweepResult)}
}

func (r *memSweepRepo) Save(ctx context.Context, result *model.SweepResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[result.RunID] = *result
	return nil
}

func (r *memSweepRepo) GetByRunID(ctx context.Context, runID string) (*model.SweepResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[runID]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

type memScoreCache struct {
	mu      sync.Mutex
	results map[string]model.ScoreResult
	sets    int
	deletes int
}

func newMemScoreCache() *memScoreCache {
	return &memScoreCache{results: make(map[string]model.ScoreResult)}
}

func (c *memScoreCache) Get(ctx context.Context, userID string) (*model.ScoreResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[userID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (c *memScoreCache) Set(ctx context.Context, result *model.ScoreResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[result.UserID] = *result
	c.sets++
	return nil
}

func (c *memScoreCache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, userID)
	c.deletes++
	return nil
}

type recordedMessage struct {
	UserID  string
	Type    string
	Payload interface{}
}

type memBroadcaster struct {
	mu    sync.Mutex
	user  []recordedMessage
	admin []recordedMessage
}

func (b *memBroadcaster) BroadcastToUser(userID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.user = append(b.user, recordedMessage{UserID: userID, Type: msgType, Payload: payload})
}

func (b *memBroadcaster) BroadcastToAdmins(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.admin = append(b.admin, recordedMessage{Type: msgType, Payload: payload})
}
