package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// DateLayout is the wire format for trip dates.
const DateLayout = "2006-01-02"

// DefaultTripDays is substituted when the date range cannot be parsed.
const DefaultTripDays = 3

// PlanningRequest is the immutable input to one planning run.
type PlanningRequest struct {
	SessionID   string         `json:"session_id,omitempty"`
	Destination string         `json:"destination"`
	StartDate   string         `json:"start_date"`
	EndDate     string         `json:"end_date"`
	Personas    []Persona      `json:"personas"`
	Constraints map[string]any `json:"constraints,omitempty"`
	MaxPerDay   int            `json:"max_pois_per_day,omitempty"`
}

// Validate checks the request invariants: a destination, at least one
// persona, and an end date on or after the start date.
func (r PlanningRequest) Validate() error {
	if r.Destination == "" {
		return eris.New("request: destination is required")
	}
	if len(r.Personas) == 0 {
		return eris.New("request: at least one persona is required")
	}
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return eris.Wrap(err, "request: parse start date")
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return eris.Wrap(err, "request: parse end date")
	}
	if end.Before(start) {
		return eris.New("request: end date before start date")
	}
	return nil
}

// TripDays computes the inclusive trip length in days. A malformed date
// range yields DefaultTripDays rather than an error.
func (r PlanningRequest) TripDays() int {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return DefaultTripDays
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return DefaultTripDays
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return DefaultTripDays
	}
	return days
}
