// Package trust implements the Habit Stability Score pipeline: feature
// extraction over a rolling intake window, weighted signal aggregation and
// the reward governance policy. The package does no I/O and holds no state,
// so both the interactive and the batch recomputation paths can share it
// without diverging.
package trust

import (
	"errors"
	"fmt"
	"time"

	"hydropoints/internal/model"
)

// ErrInvalidInput is the base error for malformed input. The core never
// silently coerces bad data.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrNegativeAmount = fmt.Errorf("%w: negative amount", ErrInvalidInput)
	ErrMissingDate    = fmt.Errorf("%w: missing date", ErrInvalidInput)
)

// Input is one user's raw window, as fetched by the persistence collaborator
type Input struct {
	UserID    string
	Logs      []model.DailyLogEntry // Ascending by date, trailing window
	Scans     []model.ExternalScan
	Household model.HouseholdContext
}

// Engine runs the scoring pipeline with a fixed threshold contract and a
// pluggable aggregator.
type Engine struct {
	thresholds Thresholds
	aggregator Aggregator
}

// NewEngine builds an engine. A nil aggregator selects the contracted
// weighted sum.
func NewEngine(t Thresholds, agg Aggregator) *Engine {
	if agg == nil {
		agg = WeightedSumAggregator{}
	}
	return &Engine{thresholds: t, aggregator: agg}
}

// Thresholds exposes the active numeric contract
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Compute runs the full pipeline for one user. Identical inputs yield
// identical score, level, signals and flags on every call; computedAt is the
// only caller-supplied variance.
func (e *Engine) Compute(in Input, computedAt time.Time) (*model.ScoreResult, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	t := e.thresholds

	if len(in.Logs) < t.MinLogEntries {
		level, multiplier := Classify(t, 50)
		return &model.ScoreResult{
			UserID:            in.UserID,
			Score:             50,
			HonestyLevel:      level,
			RewardMultiplier:  multiplier,
			FeatureVector:     model.FeatureVector{},
			Flags:             []string{model.FlagInsufficientData},
			ThresholdsVersion: ThresholdsVersion,
			ComputedAt:        computedAt,
		}, nil
	}

	fv := ExtractFeatures(t, in.Logs, in.Scans, in.Household)
	signals := BuildSignals(t, fv)
	score, level, multiplier := e.aggregator.Aggregate(t, fv, signals)

	return &model.ScoreResult{
		UserID:            in.UserID,
		Score:             score,
		HonestyLevel:      level,
		RewardMultiplier:  multiplier,
		FeatureVector:     fv,
		Signals:           signals,
		Flags:             CollectFlags(t, fv, signals),
		ThresholdsVersion: ThresholdsVersion,
		ComputedAt:        computedAt,
	}, nil
}

// Govern applies the reward governance policy under the engine's thresholds
func (e *Engine) Govern(result *model.ScoreResult) model.RewardPolicy {
	return Govern(e.thresholds, result.HonestyLevel, result.Score, result.Flags)
}

func validate(in Input) error {
	for i, entry := range in.Logs {
		if entry.Amount < 0 {
			return fmt.Errorf("%w: log entry %d for user %s", ErrNegativeAmount, i, in.UserID)
		}
		if entry.Date.IsZero() {
			return fmt.Errorf("%w: log entry %d for user %s", ErrMissingDate, i, in.UserID)
		}
	}
	for i, scan := range in.Scans {
		if scan.DeclaredAmount < 0 {
			return fmt.Errorf("%w: scan %d for user %s", ErrNegativeAmount, i, in.UserID)
		}
		if scan.ScannedAt.IsZero() {
			return fmt.Errorf("%w: scan %d for user %s", ErrMissingDate, i, in.UserID)
		}
	}
	return nil
}
