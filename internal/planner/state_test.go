package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/pkg/export"
)

func TestNextStage(t *testing.T) {
	tests := []struct {
		current  Stage
		decision Decision
		want     Stage
	}{
		{StageDiscovery, "", StageVerification},
		{StageVerification, "", StageFiltering},
		{StageFiltering, DecisionOK, StageClustering},
		{StageFiltering, DecisionForce, StageClustering},
		{StageFiltering, DecisionRetry, StageDiscovery},
		{StageClustering, "", StageOutput},
		{StageOutput, "", StageDone},
		{StageDone, "", StageDone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, nextStage(tt.current, tt.decision),
			"nextStage(%s, %s)", tt.current, tt.decision)
	}
}

func TestApplyMergesOnlyPatchedFields(t *testing.T) {
	s := newState(model.PlanningRequest{Destination: "Tokyo"})
	s.Verified = []model.VerifiedPOI{{Candidate: model.Candidate{Name: "keep"}}}

	attempt := 1
	s.Apply(Patch{
		Raw:      []model.Candidate{{Name: "new"}},
		Attempts: &attempt,
		Status:   model.StatusScrapingComplete,
		Stats:    map[string]int{"total_scraped": 1},
	})

	assert.Len(t, s.Raw, 1)
	assert.Len(t, s.Verified, 1, "unpatched field untouched")
	assert.Equal(t, 1, s.Attempts)
	assert.Equal(t, model.StatusScrapingComplete, s.Status)
	assert.Equal(t, 1, s.Stats["total_scraped"])
}

func TestApplyEmptySliceClears(t *testing.T) {
	s := newState(model.PlanningRequest{})
	s.Verified = []model.VerifiedPOI{{Candidate: model.Candidate{Name: "old"}}}

	s.Apply(Patch{Verified: []model.VerifiedPOI{}})
	assert.Empty(t, s.Verified)
	assert.NotNil(t, s.Verified)
}

func TestApplyAccumulatesStats(t *testing.T) {
	s := newState(model.PlanningRequest{})

	s.Apply(Patch{Stats: map[string]int{"total_scraped": 20}})
	s.Apply(Patch{Stats: map[string]int{"total_verified": 20}})
	s.Apply(Patch{Stats: map[string]int{"total_scraped": 18}})

	assert.Equal(t, 18, s.Stats["total_scraped"])
	assert.Equal(t, 20, s.Stats["total_verified"])
}

func TestApplyArtifacts(t *testing.T) {
	s := newState(model.PlanningRequest{})
	s.Apply(Patch{Artifacts: &export.Artifacts{DocumentPath: "out.md"}})

	assert.NotNil(t, s.Artifacts)
	assert.Equal(t, "out.md", s.Artifacts.DocumentPath)
}

func TestNewState(t *testing.T) {
	s := newState(model.PlanningRequest{SessionID: "abc", Destination: "Kyoto"})

	assert.Equal(t, "abc", s.SessionID)
	assert.Equal(t, model.StatusPending, s.Status)
	assert.NotNil(t, s.Stats)
	assert.Zero(t, s.Attempts)
}
