package model

import "time"

// SweepStatus is the per-user outcome of a batch recomputation
type SweepStatus string

const (
	SweepSuccess SweepStatus = "success"
	SweepError   SweepStatus = "error"
)

// SweepUserResult is one user's outcome in a sweep
type SweepUserResult struct {
	UserID string       `json:"userId" bson:"userId"`
	Status SweepStatus  `json:"status" bson:"status"`
	Score  int          `json:"score,omitempty" bson:"score,omitempty"`
	Level  HonestyLevel `json:"level,omitempty" bson:"level,omitempty"`
	Error  string       `json:"error,omitempty" bson:"error,omitempty"`
}

// SweepResult is the record of one batch recomputation run
type SweepResult struct {
	RunID      string            `json:"runId" bson:"_id"`
	StartedAt  time.Time         `json:"startedAt" bson:"startedAt"`
	FinishedAt time.Time         `json:"finishedAt" bson:"finishedAt"`
	Users      []SweepUserResult `json:"users" bson:"users"`
}

// Succeeded counts the users scored without error
func (s *SweepResult) Succeeded() int {
	n := 0
	for _, u := range s.Users {
		if u.Status == SweepSuccess {
			n++
		}
	}
	return n
}

// Failed counts the users whose recomputation errored
func (s *SweepResult) Failed() int {
	return len(s.Users) - s.Succeeded()
}
