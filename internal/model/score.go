package model

import "time"

// HonestyLevel is the coarse trust bucket derived from the score
type HonestyLevel string

const (
	HonestyHigh   HonestyLevel = "high"
	HonestyMedium HonestyLevel = "medium"
	HonestyLow    HonestyLevel = "low"
)

// Flags raised by the scoring pipeline
const (
	FlagInsufficientData     = "INSUFFICIENT_DATA"
	FlagRepetitiveValues     = "REPETITIVE_VALUES"
	FlagHouseholdMismatch    = "HOUSEHOLD_MISMATCH"
	FlagBarcodeContradiction = "BARCODE_CONTRADICTION"
	FlagFlatlinePattern      = "FLATLINE_PATTERN"
	FlagSuddenDrops          = "SUDDEN_DROPS"
	FlagBulkEditsDetected    = "BULK_EDITS_DETECTED"
)

// FeatureVector is the fixed-schema map of extracted sub-scores.
// The key set is a stable contract so a learned model can consume it later.
type FeatureVector map[string]float64

// Signal is one weighted trust signal derived from a feature
type Signal struct {
	Name        string  `json:"name" bson:"name"`
	Value       float64 `json:"value" bson:"value"`   // 0-100
	Weight      float64 `json:"weight" bson:"weight"` // (0,1], active weights sum to 1.0
	Description string  `json:"description" bson:"description"`
	Flag        string  `json:"flag,omitempty" bson:"flag,omitempty"`
}

// ScoreResult is the full output of one trust computation.
// It is a value object: never mutated, always replaced whole.
type ScoreResult struct {
	UserID            string        `json:"userId" bson:"_id"`
	Score             int           `json:"score" bson:"score"` // 0-100
	HonestyLevel      HonestyLevel  `json:"honestyLevel" bson:"honestyLevel"`
	RewardMultiplier  float64       `json:"rewardMultiplier" bson:"rewardMultiplier"`
	FeatureVector     FeatureVector `json:"featureVector" bson:"featureVector"`
	Signals           []Signal      `json:"signals" bson:"signals"`
	Flags             []string      `json:"flags" bson:"flags"`
	ThresholdsVersion string        `json:"thresholdsVersion" bson:"thresholdsVersion"`
	ComputedAt        time.Time     `json:"computedAt" bson:"computedAt"`
}

// HasFlag reports whether the result carries the given flag
func (r *ScoreResult) HasFlag(flag string) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// RewardPolicy is the governance output consumed by the points-awarding
// logic and the status-badge display.
type RewardPolicy struct {
	Multiplier      float64 `json:"multiplier"`
	MaxDailyPoints  int     `json:"maxDailyPoints"`
	MaxWeeklyPoints int     `json:"maxWeeklyPoints"`
	NudgeMessage    string  `json:"nudgeMessage,omitempty"`
	BoostMessage    string  `json:"boostMessage,omitempty"`
}
