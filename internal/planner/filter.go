package planner

import (
	"sort"

	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

// filter partitions verified POIs into included and rejected and sorts the
// included set by persona score descending. The sort is stable so ties keep
// their verification order.
func (p *Planner) filter(s *State) Patch {
	included := make([]model.VerifiedPOI, 0, len(s.Verified))
	rejected := make([]model.VerifiedPOI, 0)

	for _, poi := range s.Verified {
		if poi.Included() {
			included = append(included, poi)
		} else {
			rejected = append(rejected, poi)
		}
	}

	sort.SliceStable(included, func(i, j int) bool {
		return included[i].PersonaScore > included[j].PersonaScore
	})

	zap.L().Info("planner: filtering complete",
		zap.String("session_id", s.SessionID),
		zap.Int("included", len(included)),
		zap.Int("rejected", len(rejected)),
	)

	return Patch{
		Verified: included,
		Rejected: rejected,
		Status:   model.StatusFilteringComplete,
		Stats: map[string]int{
			"total_included": len(included),
			"total_rejected": len(rejected),
		},
	}
}
