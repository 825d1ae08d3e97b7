package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hydropoints/internal/model"
)

func TestGovernHighBoostsCaps(t *testing.T) {
	th := DefaultThresholds()
	policy := Govern(th, model.HonestyHigh, 85, nil)

	assert.Equal(t, 1.2, policy.Multiplier)
	assert.Equal(t, 150, policy.MaxDailyPoints)
	assert.Equal(t, 750, policy.MaxWeeklyPoints)
	assert.NotEmpty(t, policy.BoostMessage)
	assert.Empty(t, policy.NudgeMessage)
}

func TestGovernMediumBaseCaps(t *testing.T) {
	th := DefaultThresholds()
	policy := Govern(th, model.HonestyMedium, 60, nil)

	assert.Equal(t, 1.0, policy.Multiplier)
	assert.Equal(t, th.BaseDailyPoints, policy.MaxDailyPoints)
	assert.Equal(t, th.BaseWeeklyPoints, policy.MaxWeeklyPoints)
	assert.Empty(t, policy.BoostMessage)
	assert.Empty(t, policy.NudgeMessage)
}

func TestGovernMediumLowEndNudges(t *testing.T) {
	th := DefaultThresholds()
	policy := Govern(th, model.HonestyMedium, 50, nil)

	assert.Equal(t, nudgeConsistency, policy.NudgeMessage)
}

func TestGovernLowReducedCaps(t *testing.T) {
	th := DefaultThresholds()
	policy := Govern(th, model.HonestyLow, 30, nil)

	assert.Equal(t, 0.5, policy.Multiplier)
	assert.Equal(t, 50, policy.MaxDailyPoints)
	assert.Equal(t, 150, policy.MaxWeeklyPoints)
	assert.Equal(t, nudgeGeneric, policy.NudgeMessage)
	assert.Empty(t, policy.BoostMessage)
}

func TestGovernLowNudgePriority(t *testing.T) {
	th := DefaultThresholds()

	flags := []string{model.FlagFlatlinePattern, model.FlagRepetitiveValues, model.FlagHouseholdMismatch}
	policy := Govern(th, model.HonestyLow, 30, flags)
	assert.Equal(t, nudgeHousehold, policy.NudgeMessage)

	flags = []string{model.FlagFlatlinePattern, model.FlagRepetitiveValues}
	policy = Govern(th, model.HonestyLow, 30, flags)
	assert.Equal(t, nudgeRepetitiveValues, policy.NudgeMessage)

	flags = []string{model.FlagFlatlinePattern}
	policy = Govern(th, model.HonestyLow, 30, flags)
	assert.Equal(t, nudgeFlatline, policy.NudgeMessage)

	// A flag without a dedicated message falls back to the generic nudge
	flags = []string{model.FlagSuddenDrops}
	policy = Govern(th, model.HonestyLow, 30, flags)
	assert.Equal(t, nudgeGeneric, policy.NudgeMessage)
}

func TestGovernIsPure(t *testing.T) {
	th := DefaultThresholds()
	flags := []string{model.FlagHouseholdMismatch}

	first := Govern(th, model.HonestyLow, 30, flags)
	second := Govern(th, model.HonestyLow, 30, flags)
	assert.Equal(t, first, second)
}
