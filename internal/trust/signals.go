package trust

import "hydropoints/internal/model"

// signalSpec fixes the weight and description of one trust signal.
// Weights must sum to 1.0; VerifyWeights enforces this at test time.
type signalSpec struct {
	Name        string
	Feature     string
	Weight      float64
	Description string
}

// signalTable is the fixed signal contract, in output order.
// The bulk-edit feature is deliberately absent: it contributes a flag and a
// post-sum penalty, not a weighted signal.
var signalTable = []signalSpec{
	{"volatility", FeatVolatility, 0.15, "day-to-day variation of logged amounts"},
	{"micro_variance", FeatMicroVariance, 0.12, "exact-value repetition across days"},
	{"household_fit", FeatHouseholdFit, 0.18, "average intake vs expected household range"},
	{"cross_source", FeatCrossSource, 0.12, "logged amounts vs barcode scan evidence"},
	{"logging_cadence", FeatLoggingCadence, 0.10, "entries per week over the window"},
	{"flatline", FeatFlatline, 0.10, "sustained near-zero variation over time"},
	{"sudden_drop", FeatSuddenDrop, 0.08, "spikes followed by near-zero days"},
	{"weekend_weekday", FeatWeekendWeekday, 0.08, "weekend vs weekday intake difference"},
	{"moving_avg_deviation", FeatMovingAvgDev, 0.07, "deviation from the 7-day trailing average"},
}

// BuildSignals wraps the feature vector into the ordered, weighted signal
// list and stamps per-signal danger flags.
func BuildSignals(t Thresholds, fv model.FeatureVector) []model.Signal {
	signals := make([]model.Signal, 0, len(signalTable))
	for _, spec := range signalTable {
		s := model.Signal{
			Name:        spec.Name,
			Value:       fv[spec.Feature],
			Weight:      spec.Weight,
			Description: spec.Description,
		}
		s.Flag = signalFlag(t, spec.Name, s.Value, fv)
		signals = append(signals, s)
	}
	return signals
}

func signalFlag(t Thresholds, name string, value float64, fv model.FeatureVector) string {
	switch name {
	case "micro_variance":
		if value < t.FlagMicroVariance {
			return model.FlagRepetitiveValues
		}
	case "household_fit":
		if value < t.FlagHousehold {
			return model.FlagHouseholdMismatch
		}
	case "cross_source":
		if value < t.FlagContradiction {
			return model.FlagBarcodeContradiction
		}
	case "flatline":
		if value < t.FlagFlatline {
			return model.FlagFlatlinePattern
		}
	case "sudden_drop":
		if int(fv[FeatSuddenDropCount]) > t.DropCountBad {
			return model.FlagSuddenDrops
		}
	}
	return ""
}

// CollectFlags gathers the per-signal flags plus the bulk-edit flag into an
// ordered, de-duplicated list.
func CollectFlags(t Thresholds, fv model.FeatureVector, signals []model.Signal) []string {
	flags := []string{}
	seen := make(map[string]bool)
	for _, s := range signals {
		if s.Flag != "" && !seen[s.Flag] {
			flags = append(flags, s.Flag)
			seen[s.Flag] = true
		}
	}
	if int(fv[FeatBulkEditCount]) > t.BulkEditFlagCount && !seen[model.FlagBulkEditsDetected] {
		flags = append(flags, model.FlagBulkEditsDetected)
	}
	return flags
}

// VerifyWeights returns the sum of active signal weights. The contract is
// exactly 1.0.
func VerifyWeights() float64 {
	var sum float64
	for _, spec := range signalTable {
		sum += spec.Weight
	}
	return sum
}
