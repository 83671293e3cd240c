package planner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/pkg/export"
)

// ArtifactExporter renders the finished itinerary into files.
type ArtifactExporter interface {
	ExportAll(ctx context.Context, it *export.Itinerary) (*export.Artifacts, error)
}

// BuildItinerary assembles the export payload from a terminal state. It is
// also used by callers that publish to external targets after a run.
func BuildItinerary(s *State) *export.Itinerary {
	return &export.Itinerary{
		SessionID:   s.SessionID,
		Destination: s.Request.Destination,
		StartDate:   s.Request.StartDate,
		EndDate:     s.Request.EndDate,
		Personas:    s.Request.Personas,
		Profile:     profileSummary(s),
		Stats: export.Stats{
			TotalScraped:  s.Stats["total_scraped"],
			TotalVerified: s.Stats["total_verified"],
			TotalIncluded: s.Stats["total_included"],
		},
		Days: s.Days,
	}
}

// output hands the assembled itinerary to the exporter.
func (p *Planner) output(ctx context.Context, s *State) (Patch, error) {
	artifacts, err := p.exporter.ExportAll(ctx, BuildItinerary(s))
	if err != nil {
		return Patch{}, err
	}

	zap.L().Info("planner: output complete",
		zap.String("session_id", s.SessionID),
		zap.String("document", artifacts.DocumentPath),
		zap.String("map", artifacts.MapPath),
	)

	return Patch{
		Artifacts: artifacts,
		Status:    model.StatusCompleted,
	}, nil
}

// profileSummary is the one-line trip description shown at the top of the
// exported document.
func profileSummary(s *State) string {
	stops := 0
	for _, day := range s.Days {
		stops += len(day)
	}
	return fmt.Sprintf("A %d-day %s trip to %s with %d hand-picked stops.",
		len(s.Days),
		model.DisplayPersonas(s.Request.Personas),
		s.Request.Destination,
		stops,
	)
}
