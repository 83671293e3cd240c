package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

func verified(name string, score float64, rec model.Recommendation, isOpen *bool) model.VerifiedPOI {
	return model.VerifiedPOI{
		Candidate:      model.Candidate{Name: name},
		PersonaScore:   score,
		Recommendation: rec,
		IsOpen:         isOpen,
	}
}

func TestFilterPartitions(t *testing.T) {
	p := New(nil, nil, nil, nil, nil)
	s := newState(model.PlanningRequest{})
	s.Verified = []model.VerifiedPOI{
		verified("keep open", 8, model.RecommendationInclude, bptr(true)),
		verified("drop excluded", 9, model.RecommendationExclude, bptr(true)),
		verified("drop closed", 9, model.RecommendationInclude, bptr(false)),
		verified("keep unknown open", 6, model.RecommendationInclude, nil),
	}

	s.Apply(p.filter(s))

	require.Len(t, s.Verified, 2)
	require.Len(t, s.Rejected, 2)
	assert.Equal(t, model.StatusFilteringComplete, s.Status)
	assert.Equal(t, 2, s.Stats["total_included"])
	assert.Equal(t, 2, s.Stats["total_rejected"])
}

func TestFilterSortsByScoreDescending(t *testing.T) {
	p := New(nil, nil, nil, nil, nil)
	s := newState(model.PlanningRequest{})
	s.Verified = []model.VerifiedPOI{
		verified("low", 3, model.RecommendationInclude, nil),
		verified("high", 9, model.RecommendationInclude, nil),
		verified("mid", 6, model.RecommendationInclude, nil),
	}

	s.Apply(p.filter(s))

	require.Len(t, s.Verified, 3)
	assert.Equal(t, "high", s.Verified[0].Name)
	assert.Equal(t, "mid", s.Verified[1].Name)
	assert.Equal(t, "low", s.Verified[2].Name)
}

func TestFilterStableOnTies(t *testing.T) {
	p := New(nil, nil, nil, nil, nil)
	s := newState(model.PlanningRequest{})
	s.Verified = []model.VerifiedPOI{
		verified("first", 7, model.RecommendationInclude, nil),
		verified("second", 7, model.RecommendationInclude, nil),
		verified("third", 7, model.RecommendationInclude, nil),
	}

	s.Apply(p.filter(s))

	assert.Equal(t, "first", s.Verified[0].Name)
	assert.Equal(t, "second", s.Verified[1].Name)
	assert.Equal(t, "third", s.Verified[2].Name)
}

func TestFilterAllRejected(t *testing.T) {
	p := New(nil, nil, nil, nil, nil)
	s := newState(model.PlanningRequest{})
	s.Verified = []model.VerifiedPOI{
		verified("a", 8, model.RecommendationExclude, nil),
	}

	s.Apply(p.filter(s))

	assert.Empty(t, s.Verified)
	assert.Len(t, s.Rejected, 1)
}
