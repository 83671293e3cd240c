// Package verify judges POI suitability from recent social evidence.
//
// The judge checks three things: whether the place is currently open,
// whether its seasonal vibe matches the travel dates, and how well it fits
// the traveler's persona. It degrades to a neutral INCLUDE-leaning verdict
// on any failure; no error ever crosses this boundary.
package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/pkg/anthropic"
)

// NeutralScore is the persona score of the degradation verdict. The score
// resolution in the verification stage treats exactly this value as
// uninformative.
const NeutralScore = 5.0

// Request carries everything the judge needs for one POI.
type Request struct {
	POIName     string
	RecentPosts []string
	Persona     string // combined persona description, e.g. "photography & foodie"
	PersonaHint string
	StartDate   string
	EndDate     string
}

// Judgment is the judge's verdict for one POI.
type Judgment struct {
	IsOpen           *bool                `json:"is_open"`
	StatusConfidence float64              `json:"status_confidence"`
	SeasonalMatch    *bool                `json:"seasonal_match"`
	PersonaScore     float64              `json:"persona_score"`
	Recommendation   model.Recommendation `json:"recommendation"`
	Reasoning        string               `json:"reasoning"`
	AgentNote        string               `json:"agent_note"`
}

// Judge assesses one POI at a time. Implementations must be safe for
// concurrent use and must always return a usable Judgment.
type Judge interface {
	Verify(ctx context.Context, req Request) Judgment
}

// claudeJudge implements Judge on the Anthropic messages API.
type claudeJudge struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New creates a Judge backed by the given Anthropic client. A nil client
// yields a judge that always returns the neutral fallback, which keeps the
// pipeline usable without an API key.
func New(client anthropic.Client, modelID string, maxTokens int64) Judge {
	if maxTokens <= 0 {
		maxTokens = 600
	}
	return &claudeJudge{client: client, model: modelID, maxTokens: maxTokens}
}

func (j *claudeJudge) Verify(ctx context.Context, req Request) Judgment {
	if len(req.RecentPosts) == 0 {
		return Fallback(req.POIName, "no_posts")
	}
	if j.client == nil {
		return Fallback(req.POIName, "no_api_key")
	}

	resp, err := j.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     j.model,
		MaxTokens: j.maxTokens,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(req)},
		},
	})
	if err != nil {
		zap.L().Warn("verify: judge call failed",
			zap.String("poi", req.POIName),
			zap.Error(err),
		)
		return Fallback(req.POIName, "api_error")
	}

	verdict, err := parseJudgment(resp.Text())
	if err != nil {
		zap.L().Warn("verify: unparseable judge response",
			zap.String("poi", req.POIName),
			zap.Error(err),
		)
		return Fallback(req.POIName, "parse_error")
	}
	return verdict
}

const maxPromptPosts = 5

func buildPrompt(req Request) string {
	var posts strings.Builder
	for i, post := range req.RecentPosts {
		if i == maxPromptPosts {
			break
		}
		fmt.Fprintf(&posts, "--- Post %d ---\n%s\n\n", i+1, post)
	}

	return fmt.Sprintf(`You are a travel verification agent for an intelligent travel planner.

Analyse the recent social-media posts below about %q and decide whether this location should appear in a personalised travel itinerary.

**Traveller profile**
- Persona: %s (%s)
- Travel dates: %s to %s

**Recent posts**
%s
**What to check**
1. Status - Is it currently OPEN? Any closures, renovations, or reported issues?
2. Seasonality - Given the travel dates, is the current atmosphere/vibe appropriate (e.g. cherry blossoms in spring, autumn foliage in October)?
3. Persona match - Does it suit a %q traveller?

**Reply in strict JSON only (no markdown fences, no extra text):**
{
  "is_open": true | false | null,
  "status_confidence": 0.0-1.0,
  "seasonal_match": true | false | null,
  "persona_score": 0.0-10.0,
  "recommendation": "INCLUDE" | "EXCLUDE",
  "reasoning": "1-2 sentence explanation",
  "agent_note": "Practical tip or note for the traveller"
}`,
		req.POIName, req.Persona, req.PersonaHint,
		req.StartDate, req.EndDate,
		posts.String(), req.Persona,
	)
}

// parseJudgment decodes the judge's JSON reply, tolerating markdown fences
// the model sometimes adds despite instructions.
func parseJudgment(raw string) (Judgment, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		parts := strings.Split(raw, "```")
		if len(parts) > 1 {
			raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[1]), "json"))
		}
	}

	var v Judgment
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Judgment{}, err
	}
	if v.Recommendation == "" {
		v.Recommendation = model.RecommendationInclude
	}
	return v, nil
}

var fallbackReasons = map[string]string{
	"no_posts":    "No recent posts found; including with caution.",
	"no_api_key":  "Verification model not configured; skipping AI verification.",
	"api_error":   "Verification service unavailable; including by default.",
	"parse_error": "Verification response could not be parsed; including by default.",
}

// Fallback is the neutral INCLUDE-leaning verdict used whenever real
// verification is impossible.
func Fallback(poiName, reason string) Judgment {
	reasoning, ok := fallbackReasons[reason]
	if !ok {
		reasoning = fmt.Sprintf("Verification skipped (%s).", reason)
	}
	return Judgment{
		IsOpen:           nil,
		StatusConfidence: 0.5,
		SeasonalMatch:    nil,
		PersonaScore:     NeutralScore,
		Recommendation:   model.RecommendationInclude,
		Reasoning:        reasoning,
		AgentNote: fmt.Sprintf(
			"Limited verification data for %s. Recommend confirming status before visiting.", poiName),
	}
}
