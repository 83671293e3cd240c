package planner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/pkg/geocode"
	"github.com/wayfarer-labs/planner-cli/pkg/social"
	"github.com/wayfarer-labs/planner-cli/pkg/verify"
)

// Limits tunes pipeline behavior. Zero values select the defaults.
type Limits struct {
	// MaxCandidates caps the merged candidate list per discovery pass.
	MaxCandidates int
	// RecentPosts is how many recent posts back each verification call.
	RecentPosts int
	// MaxAttempts caps how many discovery passes a run may make.
	MaxAttempts int
}

const (
	defaultMaxCandidates = 20
	defaultRecentPosts   = 5
	defaultMaxAttempts   = 2
)

func (l Limits) withDefaults() Limits {
	if l.MaxCandidates <= 0 {
		l.MaxCandidates = defaultMaxCandidates
	}
	if l.RecentPosts <= 0 {
		l.RecentPosts = defaultRecentPosts
	}
	if l.MaxAttempts <= 0 {
		l.MaxAttempts = defaultMaxAttempts
	}
	return l
}

// Option customizes a Planner.
type Option func(*Planner)

// WithLimits overrides the default pipeline limits.
func WithLimits(l Limits) Option {
	return func(p *Planner) {
		p.limits = l.withDefaults()
	}
}

// Planner drives one planning run through the pipeline stages.
type Planner struct {
	social   social.Client
	judge    verify.Judge
	geocoder geocode.Geocoder
	exporter ArtifactExporter
	personas model.PersonaRegistry
	limits   Limits
}

// New creates a Planner with all collaborators. A nil registry falls back
// to the built-in persona table.
func New(
	socialClient social.Client,
	judge verify.Judge,
	geocoder geocode.Geocoder,
	exporter ArtifactExporter,
	personas model.PersonaRegistry,
	opts ...Option,
) *Planner {
	if personas == nil {
		personas = model.DefaultPersonaRegistry()
	}
	p := &Planner{
		social:   socialClient,
		judge:    judge,
		geocoder: geocoder,
		exporter: exporter,
		personas: personas,
		limits:   Limits{}.withDefaults(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full pipeline for one request and always returns a
// terminal state: status "completed" with day plans and artifacts, or
// status "failed" with the error description and every field populated up
// through the last completed stage. No error escapes this boundary.
func (p *Planner) Run(ctx context.Context, req model.PlanningRequest) *State {
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	s := newState(req)
	log := zap.L().With(
		zap.String("session_id", s.SessionID),
		zap.String("destination", req.Destination),
	)

	if err := req.Validate(); err != nil {
		log.Warn("planner: invalid request", zap.Error(err))
		s.Status = model.StatusFailed
		s.Error = err.Error()
		return s
	}

	log.Info("planner: run starting",
		zap.Int("personas", len(req.Personas)),
		zap.Int("trip_days", req.TripDays()),
	)

	if err := p.runStages(ctx, s); err != nil {
		log.Error("planner: run failed",
			zap.String("status_at_failure", string(s.Status)),
			zap.Error(err),
		)
		s.Status = model.StatusFailed
		s.Error = err.Error()
		return s
	}

	log.Info("planner: run complete",
		zap.Int("days", len(s.Days)),
		zap.Int("attempts", s.Attempts),
	)
	return s
}

// runStages walks the state machine from discovery to done. A panic in any
// stage is converted to an error so a misbehaving collaborator cannot take
// down the caller.
func (p *Planner) runStages(ctx context.Context, s *State) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("planner: stage %v panicked: %v", s.Status, r)
		}
	}()

	stage := StageDiscovery
	for stage != StageDone {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		var decision Decision
		switch stage {
		case StageDiscovery:
			s.Apply(p.discover(ctx, s))
		case StageVerification:
			s.Apply(p.verifyAll(ctx, s))
		case StageFiltering:
			s.Apply(p.filter(s))
			decision = Decide(len(s.Verified), s.Request.TripDays(), s.Attempts, p.limits.MaxAttempts)
			if decision == DecisionRetry {
				zap.L().Info("planner: insufficient POIs, retrying discovery",
					zap.String("session_id", s.SessionID),
					zap.Int("included", len(s.Verified)),
					zap.Int("attempt", s.Attempts),
				)
			}
			if decision == DecisionForce {
				zap.L().Warn("planner: proceeding with insufficient POIs",
					zap.String("session_id", s.SessionID),
					zap.Int("included", len(s.Verified)),
				)
			}
		case StageClustering:
			s.Apply(p.cluster(s))
		case StageOutput:
			patch, outErr := p.output(ctx, s)
			if outErr != nil {
				return outErr
			}
			s.Apply(patch)
		}

		stage = nextStage(stage, decision)
	}
	return nil
}
