package planner

import (
	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/internal/route"
)

// defaultMaxPerDay is the stop cap when the request does not set one.
const defaultMaxPerDay = 5

// cluster runs the routing stage: geometric day clustering for geocoded
// POIs, score-sorted even distribution when nothing is geocoded, and a
// round-robin merge of leftover un-geocoded POIs into the produced days.
func (p *Planner) cluster(s *State) Patch {
	days := s.Request.TripDays()
	maxPerDay := s.Request.MaxPerDay
	if maxPerDay <= 0 {
		maxPerDay = defaultMaxPerDay
	}

	var geocoded, ungeocoded []model.VerifiedPOI
	for _, poi := range s.Verified {
		if poi.Geocoded() {
			geocoded = append(geocoded, poi)
		} else {
			ungeocoded = append(ungeocoded, poi)
		}
	}

	var plans []model.DayPlan
	if len(geocoded) > 0 {
		plans = route.ClusterByDay(geocoded, days, maxPerDay)
	} else {
		plans = route.DistributeEvenly(s.Verified, days, maxPerDay)
		ungeocoded = nil // already placed
	}

	for i, poi := range ungeocoded {
		if len(plans) == 0 {
			plans = append(plans, model.DayPlan{})
		}
		idx := i % len(plans)
		plans[idx] = append(plans[idx], poi)
	}

	zap.L().Info("planner: routing complete",
		zap.String("session_id", s.SessionID),
		zap.Int("days", len(plans)),
		zap.Int("geocoded", len(geocoded)),
		zap.Int("ungeocoded", len(ungeocoded)),
	)

	return Patch{
		Days:   plans,
		Status: model.StatusRoutingComplete,
	}
}
