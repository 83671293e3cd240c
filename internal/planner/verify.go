package planner

import (
	"context"

	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/pkg/verify"
)

// verifyAll runs the verification stage: judge every raw candidate against
// its recent posts, geocoding along the way when a candidate has an address
// but no coordinates. Exactly one VerifiedPOI comes out per candidate.
func (p *Planner) verifyAll(ctx context.Context, s *State) Patch {
	persona := model.JoinPersonas(s.Request.Personas)
	hint := p.personas.Hint(s.Request.Personas[0])

	verified := make([]model.VerifiedPOI, 0, len(s.Raw))
	for _, cand := range s.Raw {
		posts, err := p.social.RecentPosts(ctx, cand.Name, p.limits.RecentPosts)
		if err != nil {
			zap.L().Debug("planner: recent posts unavailable",
				zap.String("poi", cand.Name),
				zap.Error(err),
			)
			posts = nil
		}

		contents := make([]string, 0, len(posts))
		for _, post := range posts {
			if post.Content != "" {
				contents = append(contents, post.Content)
			}
		}

		judgment := p.judge.Verify(ctx, verify.Request{
			POIName:     cand.Name,
			RecentPosts: contents,
			Persona:     persona,
			PersonaHint: hint,
			StartDate:   s.Request.StartDate,
			EndDate:     s.Request.EndDate,
		})

		if cand.Address != "" && !cand.Geocoded() {
			if pt, geoErr := p.geocoder.Geocode(ctx, cand.Address); geoErr == nil && pt != nil {
				cand.SetCoords(pt.Lat, pt.Lng)
			}
		}

		verified = append(verified, model.VerifiedPOI{
			Candidate:      cand,
			IsOpen:         judgment.IsOpen,
			SeasonalMatch:  judgment.SeasonalMatch,
			PersonaScore:   resolveScore(judgment.PersonaScore, cand.SeedScore),
			Recommendation: judgment.Recommendation,
			Reasoning:      judgment.Reasoning,
			AgentNote:      judgment.AgentNote,
		})
	}

	zap.L().Info("planner: verification complete",
		zap.String("session_id", s.SessionID),
		zap.Int("verified", len(verified)),
	)

	return Patch{
		Verified: verified,
		Status:   model.StatusVerificationComplete,
		Stats:    map[string]int{"total_verified": len(verified)},
	}
}

// resolveScore picks the persona score to carry forward. The judge's score
// wins unless it is exactly the neutral fallback, which the judge also
// returns when it could not assess anything; in that case any score seeded
// by discovery is more informative. A genuinely computed score of exactly
// 5.0 is indistinguishable from the fallback and loses to the seed.
func resolveScore(judgeScore float64, seed *float64) float64 {
	if judgeScore != verify.NeutralScore {
		return judgeScore
	}
	if seed != nil {
		return *seed
	}
	return verify.NeutralScore
}
