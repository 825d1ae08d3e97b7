package model

import "time"

// LogSource identifies how an intake entry was recorded
type LogSource string

const (
	SourceManual      LogSource = "manual"
	SourceIntegration LogSource = "integration"
)

// DailyLogEntry is a single self-reported intake entry.
// A user may record several entries on the same calendar day.
type DailyLogEntry struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"userId" bson:"userId"`
	Date      time.Time `json:"date" bson:"date"`     // Calendar day of consumption
	Amount    float64   `json:"amount" bson:"amount"` // Milliliters, non-negative
	Source    LogSource `json:"source" bson:"source"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// ExternalScan is third-party-corroborated consumption evidence
// (e.g. a barcode scan of a bottled drink).
type ExternalScan struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"userId" bson:"userId"`
	ScannedAt      time.Time `json:"scannedAt" bson:"scannedAt"`
	DeclaredAmount float64   `json:"declaredAmount" bson:"declaredAmount"` // Milliliters, non-negative
	Label          string    `json:"label" bson:"label"`
	Barcode        string    `json:"barcode,omitempty" bson:"barcode,omitempty"`
}

// HouseholdContext normalizes the expected per-person consumption range
type HouseholdContext struct {
	Size int `json:"size" bson:"size"` // Positive, defaults to 1
}

// UserProfile is the per-user account record
type UserProfile struct {
	UserID        string    `json:"userId" bson:"_id"`
	Nickname      string    `json:"nickname" bson:"nickname"`
	HouseholdSize int       `json:"householdSize" bson:"householdSize"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Household returns the household context for the profile, defaulting to 1
func (p *UserProfile) Household() HouseholdContext {
	size := p.HouseholdSize
	if size < 1 {
		size = 1
	}
	return HouseholdContext{Size: size}
}
