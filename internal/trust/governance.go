package trust

import "hydropoints/internal/model"

// User-facing governance messages. At most one nudge is ever emitted.
const (
	boostMessage          = "Great consistency! Your rewards are boosted."
	nudgeHousehold        = "Your logged intake looks unusual for your household size. Double-check your entries."
	nudgeRepetitiveValues = "Logging the exact same amount every day? Try recording what you actually drink."
	nudgeFlatline         = "Your intake barely changes day to day. Real habits vary a little."
	nudgeGeneric          = "Your logging pattern looks irregular. Honest, regular logging restores full rewards."
	nudgeConsistency      = "Log a bit more consistently to keep your full reward rate."
)

// nudgePriority orders which flag wins the single low-level nudge slot
var nudgePriority = []struct {
	Flag    string
	Message string
}{
	{model.FlagHouseholdMismatch, nudgeHousehold},
	{model.FlagRepetitiveValues, nudgeRepetitiveValues},
	{model.FlagFlatlinePattern, nudgeFlatline},
}

// Govern maps a score result onto reward caps and at most one user-facing
// message. It is pure: no state is read or written.
func Govern(t Thresholds, level model.HonestyLevel, score int, flags []string) model.RewardPolicy {
	switch level {
	case model.HonestyHigh:
		return model.RewardPolicy{
			Multiplier:      t.MultiplierHigh,
			MaxDailyPoints:  int(float64(t.BaseDailyPoints) * 1.5),
			MaxWeeklyPoints: int(float64(t.BaseWeeklyPoints) * 1.5),
			BoostMessage:    boostMessage,
		}
	case model.HonestyLow:
		return model.RewardPolicy{
			Multiplier:      t.MultiplierLow,
			MaxDailyPoints:  int(float64(t.BaseDailyPoints) * 0.5),
			MaxWeeklyPoints: int(float64(t.BaseWeeklyPoints) * 0.3),
			NudgeMessage:    lowNudge(flags),
		}
	default:
		policy := model.RewardPolicy{
			Multiplier:      t.MultiplierMedium,
			MaxDailyPoints:  t.BaseDailyPoints,
			MaxWeeklyPoints: t.BaseWeeklyPoints,
		}
		if score < t.NudgeScoreBelow {
			policy.NudgeMessage = nudgeConsistency
		}
		return policy
	}
}

// lowNudge picks exactly one message for low-trust users by flag priority
func lowNudge(flags []string) string {
	present := make(map[string]bool, len(flags))
	for _, f := range flags {
		present[f] = true
	}
	for _, p := range nudgePriority {
		if present[p.Flag] {
			return p.Message
		}
	}
	return nudgeGeneric
}
