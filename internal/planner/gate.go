package planner

// Decision is the sufficiency gate's verdict after a filtering pass.
type Decision string

const (
	// DecisionOK means enough POIs survived filtering to build a route.
	DecisionOK Decision = "ok"
	// DecisionRetry sends the pipeline back to discovery with broadened
	// queries.
	DecisionRetry Decision = "retry"
	// DecisionForce proceeds with whatever survived once the discovery
	// attempt cap is reached.
	DecisionForce Decision = "force"
)

// Decide checks whether the included POI count supports the trip length.
// The floor is two stops per day, but never below four, so even a one-day
// trip gets a meaningful route. A maxAttempts of zero or less selects the
// default discovery attempt cap.
func Decide(includedCount, tripDays, attempts, maxAttempts int) Decision {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	minNeeded := tripDays * 2
	if minNeeded < 4 {
		minNeeded = 4
	}

	if includedCount >= minNeeded {
		return DecisionOK
	}
	if attempts >= maxAttempts {
		return DecisionForce
	}
	return DecisionRetry
}
