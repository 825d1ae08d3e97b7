package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydropoints/internal/model"
	"hydropoints/internal/trust"
)

type fixture struct {
	logRepo     *memLogRepo
	scanRepo    *memScanRepo
	profileRepo *memProfileRepo
	scoreRepo   *memScoreRepo
	sweepRepo   *memSweepRepo
	cache       *memScoreCache
	trustSvc    *TrustService
}

func newFixture() *fixture {
	f := &fixture{
		logRepo:     newMemLogRepo(),
		scanRepo:    newMemScanRepo(),
		profileRepo: newMemProfileRepo(),
		scoreRepo:   newMemScoreRepo(),
		sweepRepo:   newMemSweepRepo(),
		cache:       newMemScoreCache(),
	}
	engine := trust.NewEngine(trust.DefaultThresholds(), nil)
	f.trustSvc = NewTrustService(f.logRepo, f.scanRepo, f.profileRepo, f.scoreRepo, f.cache, engine)
	return f
}

func (f *fixture) seedDailyLogs(userID string, amounts []float64) {
	start := time.Now().UTC().AddDate(0, 0, -len(amounts))
	for i, a := range amounts {
		entry := model.DailyLogEntry{
			UserID: userID,
			Date:   start.AddDate(0, 0, i).Truncate(24 * time.Hour),
			Amount: a,
		}
		_ = f.logRepo.Create(context.Background(), &entry)
	}
}

func flatAmounts(amount float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amount
	}
	return out
}

func variedAmounts(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 18 + float64(i%7)
	}
	return out
}

func TestRecomputePersistsAndCaches(t *testing.T) {
	f := newFixture()
	f.seedDailyLogs("u1", flatAmounts(20, 30))

	result, err := f.trustSvc.Recompute(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.Flags, model.FlagFlatlinePattern)

	persisted, err := f.scoreRepo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, result.Score, persisted.Score)

	cached, err := f.cache.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, result.Score, cached.Score)
}

func TestGetScoreServesFreshCache(t *testing.T) {
	f := newFixture()
	// No logs at all: a recompute would yield the insufficient-data result,
	// so getting this score back proves the cache short-circuited.
	cached := &model.ScoreResult{
		UserID:       "u1",
		Score:        88,
		HonestyLevel: model.HonestyHigh,
		ComputedAt:   time.Now().UTC(),
	}
	require.NoError(t, f.cache.Set(context.Background(), cached))
	f.cache.sets = 0

	result, err := f.trustSvc.GetScore(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 88, result.Score)
	assert.Equal(t, 0, f.cache.sets)
}

func TestGetScoreFallsBackToFreshPersisted(t *testing.T) {
	f := newFixture()
	persisted := &model.ScoreResult{
		UserID:       "u1",
		Score:        77,
		HonestyLevel: model.HonestyHigh,
		ComputedAt:   time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, f.scoreRepo.Upsert(context.Background(), persisted))

	result, err := f.trustSvc.GetScore(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 77, result.Score)

	// The persisted hit rewarms the cache
	cached, err := f.cache.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 77, cached.Score)
}

func TestGetScoreRecomputesWhenStale(t *testing.T) {
	f := newFixture()
	f.seedDailyLogs("u1", variedAmounts(30))

	stale := &model.ScoreResult{
		UserID:       "u1",
		Score:        1,
		HonestyLevel: model.HonestyLow,
		ComputedAt:   time.Now().UTC().Add(-25 * time.Hour),
	}
	require.NoError(t, f.scoreRepo.Upsert(context.Background(), stale))

	result, err := f.trustSvc.GetScore(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEqual(t, 1, result.Score)
	assert.WithinDuration(t, time.Now().UTC(), result.ComputedAt, time.Minute)
}

func TestGetScoreInsufficientData(t *testing.T) {
	f := newFixture()
	f.seedDailyLogs("u1", flatAmounts(20, 3))

	result, err := f.trustSvc.GetScore(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, model.HonestyMedium, result.HonestyLevel)
	assert.Equal(t, 1.0, result.RewardMultiplier)
	assert.Equal(t, []string{model.FlagInsufficientData}, result.Flags)
}

func TestRecomputeUsesHouseholdProfile(t *testing.T) {
	f := newFixture()
	// 4ml a day is merely low for one person, but far below range once the
	// profile says four people share the app
	f.seedDailyLogs("u1", flatAmounts(4, 14))
	require.NoError(t, f.profileRepo.Upsert(context.Background(), &model.UserProfile{
		UserID:        "u1",
		HouseholdSize: 4,
	}))

	result, err := f.trustSvc.Recompute(context.Background(), "u1")
	require.NoError(t, err)
	assert.Contains(t, result.Flags, model.FlagHouseholdMismatch)
}

func TestRecomputeBroadcastsScoreUpdate(t *testing.T) {
	f := newFixture()
	b := &memBroadcaster{}
	f.trustSvc.SetBroadcaster(b)
	f.seedDailyLogs("u1", variedAmounts(10))

	_, err := f.trustSvc.Recompute(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, b.user, 1)
	assert.Equal(t, "u1", b.user[0].UserID)
	assert.Equal(t, "score_updated", b.user[0].Type)
}

func TestGovernanceMatchesScore(t *testing.T) {
	f := newFixture()
	f.seedDailyLogs("u1", flatAmounts(20, 30))

	result, policy, err := f.trustSvc.Governance(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, result)

	switch result.HonestyLevel {
	case model.HonestyHigh:
		assert.Equal(t, 1.2, policy.Multiplier)
	case model.HonestyMedium:
		assert.Equal(t, 1.0, policy.Multiplier)
	default:
		assert.Equal(t, 0.5, policy.Multiplier)
	}
	assert.Equal(t, result.RewardMultiplier, policy.Multiplier)
}

// The batch sweep must route through the exact same pipeline as the
// interactive path: same window, same engine, same persisted shape.
func TestSweepMatchesInteractiveRecompute(t *testing.T) {
	f := newFixture()
	f.seedDailyLogs("flat", flatAmounts(20, 30))
	f.seedDailyLogs("varied", variedAmounts(30))

	interactive := make(map[string]*model.ScoreResult)
	for _, userID := range []string{"flat", "varied"} {
		result, err := f.trustSvc.Recompute(context.Background(), userID)
		require.NoError(t, err)
		interactive[userID] = result
	}

	sweepSvc := NewSweepService(f.logRepo, f.sweepRepo, f.trustSvc, 30, 4)
	sweep, err := sweepSvc.RecomputeAll(context.Background())
	require.NoError(t, err)
	require.Len(t, sweep.Users, 2)

	for _, u := range sweep.Users {
		require.Equal(t, model.SweepSuccess, u.Status)
		want := interactive[u.UserID]
		require.NotNil(t, want)
		assert.Equal(t, want.Score, u.Score, "user %s scored differently in batch", u.UserID)
		assert.Equal(t, want.HonestyLevel, u.Level, "user %s classified differently in batch", u.UserID)
	}
}

func TestLogServiceInvalidatesCache(t *testing.T) {
	f := newFixture()
	logSvc := NewLogService(f.logRepo, f.scanRepo, f.cache, 30)

	require.NoError(t, f.cache.Set(context.Background(), &model.ScoreResult{UserID: "u1", Score: 90}))

	err := logSvc.AddEntry(context.Background(), &model.DailyLogEntry{
		UserID: "u1",
		Date:   time.Now().UTC(),
		Amount: 21,
	})
	require.NoError(t, err)

	cached, err := f.cache.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestLogServiceRejectsNegativeAmount(t *testing.T) {
	f := newFixture()
	logSvc := NewLogService(f.logRepo, f.scanRepo, f.cache, 30)

	err := logSvc.AddEntry(context.Background(), &model.DailyLogEntry{
		UserID: "u1",
		Date:   time.Now().UTC(),
		Amount: -3,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, trust.ErrInvalidInput)

	entries, err := f.logRepo.GetWindow(context.Background(), "u1", 30)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUserServiceRegisterDefaultsHousehold(t *testing.T) {
	f := newFixture()
	userSvc := NewUserService(f.profileRepo, NewAuthService())

	profile, token, err := userSvc.Register(context.Background(), "sam", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 1, profile.HouseholdSize)
	assert.Contains(t, profile.UserID, "user_")

	stored, err := f.profileRepo.GetByID(context.Background(), profile.UserID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "sam", stored.Nickname)
}
