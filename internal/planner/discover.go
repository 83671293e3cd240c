package planner

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/width"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

// maxPerQuery caps results fetched for a single search query.
const maxPerQuery = 15

// buildQueries assembles the discovery query set: one generic guide query,
// one per persona keyword, and a broadened fallback query on repeat passes.
func buildQueries(dest string, personas []model.Persona, registry model.PersonaRegistry, attempt int) []string {
	queries := []string{dest + "旅游攻略"}
	for _, p := range personas {
		if kw := registry.Keyword(p); kw != "" {
			queries = append(queries, dest+kw)
		}
	}
	if attempt > 1 {
		queries = append(queries, dest+"景点推荐")
	}
	return queries
}

// foldName normalizes a POI name for dedup: full-width forms to half-width,
// case folded, surrounding space stripped. Social content mixes full-width
// and ASCII punctuation for the same place.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(name)))
}

// discover runs the discovery stage: search every query, dedupe by folded
// name (first occurrence wins), and cap the merged list.
func (p *Planner) discover(ctx context.Context, s *State) Patch {
	attempt := s.Attempts + 1
	queries := buildQueries(s.Request.Destination, s.Request.Personas, p.personas, attempt)

	merged := make([]model.Candidate, 0, p.limits.MaxCandidates)
	seen := make(map[string]struct{})

	for _, q := range queries {
		results, err := p.social.SearchPOIs(ctx, q, maxPerQuery)
		if err != nil {
			// Discovery is best effort per query. The offline client never
			// errors, so this only fires for a gateway with no fallback.
			zap.L().Warn("planner: search query failed",
				zap.String("session_id", s.SessionID),
				zap.String("query", q),
				zap.Error(err),
			)
			continue
		}
		for _, c := range results {
			key := foldName(c.Name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, c)
		}
	}

	if len(merged) > p.limits.MaxCandidates {
		merged = merged[:p.limits.MaxCandidates]
	}

	zap.L().Info("planner: discovery complete",
		zap.String("session_id", s.SessionID),
		zap.Int("attempt", attempt),
		zap.Int("queries", len(queries)),
		zap.Int("candidates", len(merged)),
	)

	return Patch{
		Raw:      merged,
		Attempts: &attempt,
		Status:   model.StatusScrapingComplete,
		Stats:    map[string]int{"total_scraped": len(merged)},
	}
}
