package trust

import (
	"math"

	"hydropoints/internal/model"
)

// Aggregator combines the weighted signals into a final score. The weighted
// sum is the only implementation today; the interface is the seam where a
// model-based scorer can replace it without touching feature extraction.
type Aggregator interface {
	Aggregate(t Thresholds, fv model.FeatureVector, signals []model.Signal) (score int, level model.HonestyLevel, multiplier float64)
}

// WeightedSumAggregator is the contracted heuristic aggregation
type WeightedSumAggregator struct{}

// Aggregate computes the weighted average of signal values, applies the
// bulk-edit penalty, clamps to [0,100] and classifies the honesty level.
func (WeightedSumAggregator) Aggregate(t Thresholds, fv model.FeatureVector, signals []model.Signal) (int, model.HonestyLevel, float64) {
	var weighted, weightSum float64
	for _, s := range signals {
		weighted += s.Value * s.Weight
		weightSum += s.Weight
	}

	raw := 0.0
	if weightSum > 0 {
		raw = weighted / weightSum
	}

	penalty := t.BulkEditPenalty * fv[FeatBulkEditCount]
	if penalty > t.BulkEditPenaltyCap {
		penalty = t.BulkEditPenaltyCap
	}
	raw -= penalty

	score := int(math.Round(clamp(raw, 0, 100)))
	level, multiplier := Classify(t, score)
	return score, level, multiplier
}

// Classify maps a clamped score onto the honesty level and its reward
// multiplier.
func Classify(t Thresholds, score int) (model.HonestyLevel, float64) {
	switch {
	case score >= t.HighScoreMin:
		return model.HonestyHigh, t.MultiplierHigh
	case score >= t.MediumScoreMin:
		return model.HonestyMedium, t.MultiplierMedium
	default:
		return model.HonestyLow, t.MultiplierLow
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
