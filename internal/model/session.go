package model

import (
	"encoding/json"
	"time"
)

// Status tags the pipeline state record as it moves through the stages.
type Status string

const (
	StatusPending              Status = "pending"
	StatusScrapingComplete     Status = "scraping_complete"
	StatusVerificationComplete Status = "verification_complete"
	StatusFilteringComplete    Status = "filtering_complete"
	StatusRoutingComplete      Status = "routing_complete"
	StatusCompleted            Status = "completed"
	StatusFailed               Status = "failed"
)

// Terminal reports whether the status ends a run.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Session is one persisted planning run.
type Session struct {
	ID        string          `json:"id"`
	Request   PlanningRequest `json:"request"`
	Status    Status          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
