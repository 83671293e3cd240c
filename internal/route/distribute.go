package route

import (
	"sort"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

// DistributeEvenly is the coordinate-free fallback: sort POIs by persona
// score descending (stable, so ties keep input order), slice them into
// numDays contiguous chunks of an even share, and hand any leftovers out
// round-robin to the existing days. Every input POI lands in exactly one day.
func DistributeEvenly(pois []model.VerifiedPOI, numDays, maxPerDay int) []model.DayPlan {
	if len(pois) == 0 || numDays < 1 {
		return nil
	}

	sorted := make([]model.VerifiedPOI, len(pois))
	copy(sorted, pois)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PersonaScore > sorted[j].PersonaScore
	})

	share := len(sorted) / numDays
	if share > maxPerDay {
		share = maxPerDay
	}
	if share < 1 {
		share = 1
	}

	days := make([]model.DayPlan, 0, numDays)
	for d := 0; d < numDays; d++ {
		lo := d * share
		if lo >= len(sorted) {
			break
		}
		hi := lo + share
		if hi > len(sorted) {
			hi = len(sorted)
		}
		days = append(days, model.DayPlan(sorted[lo:hi:hi]))
	}

	// Leftovers extend existing days round-robin; they never open a new day.
	for i, poi := range sorted[min(numDays*share, len(sorted)):] {
		idx := i % len(days)
		days[idx] = append(days[idx], poi)
	}
	return days
}
