// Package planner runs the itinerary planning pipeline: discovery of POI
// candidates from social content, AI verification, filtering, a sufficiency
// gate that can loop back into discovery, geographic day clustering, and
// artifact export. Each stage is a pure function from the accumulated state
// to a patch; the state machine merges patches and drives the stage order.
package planner

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/pkg/export"
)

// Stage identifies one step of the pipeline.
type Stage string

const (
	StageDiscovery    Stage = "discovery"
	StageVerification Stage = "verification"
	StageFiltering    Stage = "filtering"
	StageClustering   Stage = "clustering"
	StageOutput       Stage = "output"
	StageDone         Stage = "done"
)

// State is the single record threaded through a run. Each stage reads the
// fields earlier stages produced and patches only its own.
type State struct {
	Request   model.PlanningRequest `json:"request"`
	SessionID string                `json:"session_id"`

	Raw      []model.Candidate   `json:"raw_pois"`
	Verified []model.VerifiedPOI `json:"verified_pois"`
	Rejected []model.VerifiedPOI `json:"rejected_pois"`
	Days     []model.DayPlan     `json:"clustered_days"`

	Artifacts *export.Artifacts `json:"artifacts,omitempty"`

	Attempts int            `json:"scrape_attempts"`
	Status   model.Status   `json:"status"`
	Error    string         `json:"error,omitempty"`
	Stats    map[string]int `json:"stats"`
}

// Marshal serializes the state for persistence as a session result.
func (s *State) Marshal() (json.RawMessage, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, eris.Wrap(err, "planner: marshal state")
	}
	return raw, nil
}

// Patch is one stage's partial update. Nil slices and maps mean "leave the
// field alone"; a stage that wants to clear a collection sets an empty
// non-nil slice.
type Patch struct {
	Raw      []model.Candidate
	Verified []model.VerifiedPOI
	Rejected []model.VerifiedPOI
	Days     []model.DayPlan

	Artifacts *export.Artifacts

	Attempts *int
	Status   model.Status
	Stats    map[string]int
}

// Apply merges a patch into the state.
func (s *State) Apply(p Patch) {
	if p.Raw != nil {
		s.Raw = p.Raw
	}
	if p.Verified != nil {
		s.Verified = p.Verified
	}
	if p.Rejected != nil {
		s.Rejected = p.Rejected
	}
	if p.Days != nil {
		s.Days = p.Days
	}
	if p.Artifacts != nil {
		s.Artifacts = p.Artifacts
	}
	if p.Attempts != nil {
		s.Attempts = *p.Attempts
	}
	if p.Status != "" {
		s.Status = p.Status
	}
	for k, v := range p.Stats {
		if s.Stats == nil {
			s.Stats = make(map[string]int)
		}
		s.Stats[k] = v
	}
}

// nextStage is the pure transition function. The gate decision only matters
// on the filtering → clustering edge; every other edge is unconditional.
func nextStage(current Stage, decision Decision) Stage {
	switch current {
	case StageDiscovery:
		return StageVerification
	case StageVerification:
		return StageFiltering
	case StageFiltering:
		if decision == DecisionRetry {
			return StageDiscovery
		}
		return StageClustering
	case StageClustering:
		return StageOutput
	case StageOutput:
		return StageDone
	default:
		return StageDone
	}
}

// newState initializes the record for one run.
func newState(req model.PlanningRequest) *State {
	return &State{
		Request:   req,
		SessionID: req.SessionID,
		Status:    model.StatusPending,
		Stats:     make(map[string]int),
	}
}
