package trust

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydropoints/internal/model"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultThresholds(), nil)
}

func TestComputeInsufficientData(t *testing.T) {
	engine := newTestEngine()
	now := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

	result, err := engine.Compute(Input{
		UserID: "u1",
		Logs:   dailyLogs(20, 21, 22, 23),
	}, now)
	require.NoError(t, err)

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, model.HonestyMedium, result.HonestyLevel)
	assert.Equal(t, 1.0, result.RewardMultiplier)
	assert.Equal(t, []string{model.FlagInsufficientData}, result.Flags)
	assert.Empty(t, result.FeatureVector)
	assert.Empty(t, result.Signals)
	assert.Equal(t, ThresholdsVersion, result.ThresholdsVersion)
	assert.Equal(t, now, result.ComputedAt)
}

func TestComputeRejectsNegativeAmount(t *testing.T) {
	engine := newTestEngine()
	logs := dailyLogs(20, 21, 22, 23, 24)
	logs[2].Amount = -5

	_, err := engine.Compute(Input{UserID: "u1", Logs: logs}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestComputeRejectsZeroDate(t *testing.T) {
	engine := newTestEngine()
	logs := dailyLogs(20, 21, 22, 23, 24)
	logs[0].Date = time.Time{}

	_, err := engine.Compute(Input{UserID: "u1", Logs: logs}, time.Now())
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestComputeRejectsBadScan(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.Compute(Input{
		UserID: "u1",
		Logs:   dailyLogs(20, 21, 22, 23, 24),
		Scans:  []model.ExternalScan{{UserID: "u1", DeclaredAmount: -1, ScannedAt: base}},
	}, time.Now())
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestComputeFlatlineUserIsPenalized(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Compute(Input{
		UserID:    "u1",
		Logs:      dailyLogs(repeated(20, 30)...),
		Household: model.HouseholdContext{Size: 1},
	}, time.Now())
	require.NoError(t, err)

	assert.Contains(t, result.Flags, model.FlagFlatlinePattern)
	assert.Contains(t, result.Flags, model.FlagRepetitiveValues)
	assert.Equal(t, model.HonestyMedium, result.HonestyLevel)
	assert.Less(t, result.Score, 75)
}

func TestComputeVariedUserScoresHigh(t *testing.T) {
	engine := newTestEngine()
	rng := rand.New(rand.NewSource(7))

	logs := make([]model.DailyLogEntry, 0, 30)
	for i := 0; i < 30; i++ {
		day := base.AddDate(0, 0, i)
		amount := 18 + rng.Float64()*6
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			amount *= 1.15
		}
		logs = append(logs, model.DailyLogEntry{UserID: "u1", Date: day, Amount: amount})
	}

	result, err := engine.Compute(Input{
		UserID:    "u1",
		Logs:      logs,
		Household: model.HouseholdContext{Size: 1},
	}, time.Now())
	require.NoError(t, err)

	assert.Empty(t, result.Flags)
	assert.GreaterOrEqual(t, result.Score, 45)
	assert.LessOrEqual(t, result.Score, 100)
}

func TestComputeIsDeterministic(t *testing.T) {
	engine := newTestEngine()
	now := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)

	logs := dailyLogs(22, 18, 25, 19, 30, 2, 60, 3, 24, 21, 20, 26, 17, 23)
	scans := []model.ExternalScan{
		{UserID: "u1", ScannedAt: base.Add(9 * time.Hour), DeclaredAmount: 20, Label: "1L Bottle"},
	}
	in := Input{UserID: "u1", Logs: logs, Scans: scans, Household: model.HouseholdContext{Size: 2}}

	first, err := engine.Compute(in, now)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := engine.Compute(in, now)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestComputeScoreAlwaysInRange(t *testing.T) {
	engine := newTestEngine()
	rng := rand.New(rand.NewSource(99))

	for trial := 0; trial < 50; trial++ {
		n := 5 + rng.Intn(30)
		logs := make([]model.DailyLogEntry, n)
		for i := range logs {
			logs[i] = model.DailyLogEntry{
				UserID: "u1",
				Date:   base.AddDate(0, 0, i),
				Amount: rng.Float64() * 100,
			}
		}
		result, err := engine.Compute(Input{
			UserID:    "u1",
			Logs:      logs,
			Household: model.HouseholdContext{Size: 1 + rng.Intn(5)},
		}, time.Now())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.Score, 0)
		assert.LessOrEqual(t, result.Score, 100)
	}
}
