package planner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/pkg/export"
	"github.com/wayfarer-labs/planner-cli/pkg/social"
	"github.com/wayfarer-labs/planner-cli/pkg/verify"
)

// spreadCandidates builds n geocoded candidates scattered around a centre.
func spreadCandidates(n int, lat, lng float64) []model.Candidate {
	out := make([]model.Candidate, n)
	for i := range out {
		c := model.Candidate{
			Name:      fmt.Sprintf("POI %02d", i),
			SeedScore: fptr(9.0 - float64(i)*0.2),
		}
		c.SetCoords(lat+float64(i%5)*0.01, lng+float64(i/5)*0.01)
		out[i] = c
	}
	return out
}

func includeAllJudge() *mockJudge {
	judge := &mockJudge{}
	judge.On("Verify", mock.Anything, mock.Anything).Return(verify.Judgment{
		PersonaScore:   verify.NeutralScore,
		Recommendation: model.RecommendationInclude,
	})
	return judge
}

func noopExporter() *mockExporter {
	exp := &mockExporter{}
	exp.On("ExportAll", mock.Anything, mock.Anything).Return(&export.Artifacts{
		DocumentPath: "outputs/itinerary.md",
		MapPath:      "outputs/map.geojson",
	}, nil)
	return exp
}

// threeCityCandidates builds 20 candidates in three tight, well-separated
// city groups (7 + 7 + 6) so centroid clustering recovers the cities.
func threeCityCandidates() []model.Candidate {
	centres := []struct {
		lat, lng float64
		count    int
	}{
		{35.68, 139.69, 7}, // Tokyo
		{34.69, 135.50, 7}, // Osaka
		{35.01, 135.77, 6}, // Kyoto
	}

	var out []model.Candidate
	i := 0
	for _, c := range centres {
		for j := 0; j < c.count; j++ {
			cand := model.Candidate{
				Name:      fmt.Sprintf("POI %02d", i),
				SeedScore: fptr(9.0 - float64(i)*0.2),
			}
			cand.SetCoords(c.lat+float64(j)*0.003, c.lng+float64(j)*0.002)
			out = append(out, cand)
			i++
		}
	}
	return out
}

func TestRunEndToEnd(t *testing.T) {
	// 3-day trip, two personas, 20 geocoded candidates, everything included,
	// max 5 per day: exactly 3 day plans, none over 5 stops, no POI in two
	// plans. The three 7/7/6 city groups each lose their overflow to the
	// per-day cap, leaving 5 stops per day.
	soc := &mockSocialClient{}
	soc.On("SearchPOIs", mock.Anything, mock.Anything, maxPerQuery).
		Return(threeCityCandidates(), nil)
	soc.On("RecentPosts", mock.Anything, mock.Anything, defaultRecentPosts).
		Return([]social.Post{{Content: "crowded but worth it"}}, nil)

	p := New(soc, includeAllJudge(), nil, noopExporter(), nil)

	state := p.Run(context.Background(), model.PlanningRequest{
		Destination: "Tokyo",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-03",
		Personas:    []model.Persona{model.PersonaPhotography, model.PersonaFoodie},
		MaxPerDay:   5,
	})

	require.Equal(t, model.StatusCompleted, state.Status)
	assert.Empty(t, state.Error)
	assert.NotEmpty(t, state.SessionID)
	assert.Equal(t, 1, state.Attempts)

	require.Len(t, state.Days, 3)
	seen := map[string]int{}
	for _, day := range state.Days {
		assert.Len(t, day, 5)
		for _, poi := range day {
			seen[poi.Name]++
		}
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "%s placed more than once", name)
	}

	assert.Equal(t, 20, state.Stats["total_scraped"])
	assert.Equal(t, 20, state.Stats["total_verified"])
	assert.Equal(t, 20, state.Stats["total_included"])
	require.NotNil(t, state.Artifacts)
	assert.Equal(t, "outputs/itinerary.md", state.Artifacts.DocumentPath)
}

func TestRunRetriesThenForces(t *testing.T) {
	// Discovery only ever finds two candidates; the gate needs four for a
	// 2-day trip, so the pipeline retries once and then force-proceeds.
	soc := &mockSocialClient{}
	soc.On("SearchPOIs", mock.Anything, mock.Anything, maxPerQuery).
		Return(spreadCandidates(2, 35.68, 139.69), nil)
	soc.On("RecentPosts", mock.Anything, mock.Anything, defaultRecentPosts).
		Return([]social.Post{}, nil)

	p := New(soc, includeAllJudge(), nil, noopExporter(), nil)

	state := p.Run(context.Background(), model.PlanningRequest{
		Destination: "Tokyo",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-02",
		Personas:    []model.Persona{model.PersonaChilling},
	})

	require.Equal(t, model.StatusCompleted, state.Status)
	assert.Equal(t, 2, state.Attempts)

	var total int
	for _, day := range state.Days {
		total += len(day)
	}
	assert.Equal(t, 2, total)

	// The second pass included the broadened query.
	soc.AssertCalled(t, "SearchPOIs", mock.Anything, "Tokyo景点推荐", maxPerQuery)
}

func TestRunInvalidRequestFails(t *testing.T) {
	p := New(nil, nil, nil, nil, nil)

	state := p.Run(context.Background(), model.PlanningRequest{
		Destination: "Tokyo",
		StartDate:   "2026-04-03",
		EndDate:     "2026-04-01",
		Personas:    []model.Persona{model.PersonaChilling},
	})

	assert.Equal(t, model.StatusFailed, state.Status)
	assert.NotEmpty(t, state.Error)
	assert.Empty(t, state.Days)
}

func TestRunExportFailurePreservesEarlierStages(t *testing.T) {
	soc := &mockSocialClient{}
	soc.On("SearchPOIs", mock.Anything, mock.Anything, maxPerQuery).
		Return(spreadCandidates(10, 35.68, 139.69), nil)
	soc.On("RecentPosts", mock.Anything, mock.Anything, defaultRecentPosts).
		Return([]social.Post{}, nil)

	exp := &mockExporter{}
	exp.On("ExportAll", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	p := New(soc, includeAllJudge(), nil, exp, nil)

	state := p.Run(context.Background(), model.PlanningRequest{
		Destination: "Tokyo",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-02",
		Personas:    []model.Persona{model.PersonaPhotography},
	})

	assert.Equal(t, model.StatusFailed, state.Status)
	assert.NotEmpty(t, state.Error)
	// Everything up through routing survived the failure.
	assert.NotEmpty(t, state.Days)
	assert.Equal(t, 10, state.Stats["total_included"])
	assert.Nil(t, state.Artifacts)
}

func TestRunPanickingCollaboratorFails(t *testing.T) {
	soc := &mockSocialClient{}
	soc.On("SearchPOIs", mock.Anything, mock.Anything, maxPerQuery).
		Return(spreadCandidates(6, 35.68, 139.69), nil)
	soc.On("RecentPosts", mock.Anything, mock.Anything, defaultRecentPosts).
		Return([]social.Post{}, nil)

	judge := &mockJudge{}
	judge.On("Verify", mock.Anything, mock.Anything).Panic("judge blew up")

	p := New(soc, judge, nil, noopExporter(), nil)

	state := p.Run(context.Background(), model.PlanningRequest{
		Destination: "Tokyo",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-02",
		Personas:    []model.Persona{model.PersonaChilling},
	})

	assert.Equal(t, model.StatusFailed, state.Status)
	assert.Contains(t, state.Error, "panicked")
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(&mockSocialClient{}, nil, nil, nil, nil)

	state := p.Run(ctx, model.PlanningRequest{
		Destination: "Tokyo",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-02",
		Personas:    []model.Persona{model.PersonaChilling},
	})

	assert.Equal(t, model.StatusFailed, state.Status)
}

func TestRunGeneratesSessionID(t *testing.T) {
	soc := &mockSocialClient{}
	soc.On("SearchPOIs", mock.Anything, mock.Anything, maxPerQuery).
		Return(spreadCandidates(6, 35.68, 139.69), nil)
	soc.On("RecentPosts", mock.Anything, mock.Anything, defaultRecentPosts).
		Return([]social.Post{}, nil)

	p := New(soc, includeAllJudge(), nil, noopExporter(), nil)

	state := p.Run(context.Background(), model.PlanningRequest{
		Destination: "Tokyo",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-02",
		Personas:    []model.Persona{model.PersonaChilling},
	})

	assert.Len(t, state.SessionID, 36, "uuid assigned")
}

func TestProfileSummary(t *testing.T) {
	s := newState(model.PlanningRequest{
		Destination: "Kyoto",
		Personas:    []model.Persona{model.PersonaPhotography},
	})
	s.Days = []model.DayPlan{
		{unlocated("a", 8), unlocated("b", 7)},
		{unlocated("c", 6)},
	}

	summary := profileSummary(s)
	assert.Equal(t, "A 2-day Photography trip to Kyoto with 3 hand-picked stops.", summary)
}
