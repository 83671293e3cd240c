package verify

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-labs/planner-cli/internal/model"
	"github.com/wayfarer-labs/planner-cli/pkg/anthropic"
)

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

func sampleRequest() Request {
	return Request{
		POIName:     "Sensoji Temple",
		RecentPosts: []string{"Visited yesterday, still open!", "Gorgeous in autumn."},
		Persona:     "photography",
		PersonaHint: "scenic views, good lighting",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-03",
	}
}

func TestVerify_ParsesJudgeResponse(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.MatchedBy(func(req anthropic.MessageRequest) bool {
		return req.Model == "claude-sonnet-4-5-20250929" && len(req.Messages) == 1
	})).Return(textResponse(`{
		"is_open": true,
		"status_confidence": 0.9,
		"seasonal_match": true,
		"persona_score": 8.5,
		"recommendation": "INCLUDE",
		"reasoning": "Popular photo spot, open daily.",
		"agent_note": "Arrive before 8am to beat crowds."
	}`), nil)

	j := New(client, "claude-sonnet-4-5-20250929", 600)
	verdict := j.Verify(context.Background(), sampleRequest())

	require.NotNil(t, verdict.IsOpen)
	assert.True(t, *verdict.IsOpen)
	assert.InDelta(t, 8.5, verdict.PersonaScore, 0.001)
	assert.Equal(t, model.RecommendationInclude, verdict.Recommendation)
	assert.Equal(t, "Arrive before 8am to beat crowds.", verdict.AgentNote)
	client.AssertExpectations(t)
}

func TestVerify_StripsMarkdownFences(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("```json\n{\"persona_score\": 7.0, \"recommendation\": \"EXCLUDE\", \"reasoning\": \"closed for renovation\"}\n```"), nil)

	j := New(client, "m", 600)
	verdict := j.Verify(context.Background(), sampleRequest())

	assert.Equal(t, model.RecommendationExclude, verdict.Recommendation)
	assert.InDelta(t, 7.0, verdict.PersonaScore, 0.001)
}

func TestVerify_NoPostsReturnsNeutral(t *testing.T) {
	client := &mockAnthropicClient{}

	j := New(client, "m", 600)
	req := sampleRequest()
	req.RecentPosts = nil
	verdict := j.Verify(context.Background(), req)

	assert.Nil(t, verdict.IsOpen)
	assert.Nil(t, verdict.SeasonalMatch)
	assert.InDelta(t, NeutralScore, verdict.PersonaScore, 0.001)
	assert.Equal(t, model.RecommendationInclude, verdict.Recommendation)
	// The judge is never called without evidence.
	client.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestVerify_APIErrorReturnsNeutral(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, eris.New("overloaded"))

	j := New(client, "m", 600)
	verdict := j.Verify(context.Background(), sampleRequest())

	assert.Equal(t, model.RecommendationInclude, verdict.Recommendation)
	assert.InDelta(t, NeutralScore, verdict.PersonaScore, 0.001)
}

func TestVerify_MalformedJSONReturnsNeutral(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("Sorry, I can't help with that."), nil)

	j := New(client, "m", 600)
	verdict := j.Verify(context.Background(), sampleRequest())

	assert.Equal(t, model.RecommendationInclude, verdict.Recommendation)
	assert.InDelta(t, NeutralScore, verdict.PersonaScore, 0.001)
	assert.Contains(t, verdict.AgentNote, "Sensoji Temple")
}

func TestVerify_NilClientReturnsNeutral(t *testing.T) {
	j := New(nil, "m", 600)
	verdict := j.Verify(context.Background(), sampleRequest())
	assert.InDelta(t, NeutralScore, verdict.PersonaScore, 0.001)
	assert.Equal(t, model.RecommendationInclude, verdict.Recommendation)
}

func TestParseJudgment_DefaultsRecommendation(t *testing.T) {
	v, err := parseJudgment(`{"persona_score": 6.0}`)
	require.NoError(t, err)
	assert.Equal(t, model.RecommendationInclude, v.Recommendation)
}

func TestBuildPrompt_CapsPosts(t *testing.T) {
	req := sampleRequest()
	req.RecentPosts = []string{"a", "b", "c", "d", "e", "f", "g"}
	prompt := buildPrompt(req)
	assert.Contains(t, prompt, "--- Post 5 ---")
	assert.NotContains(t, prompt, "--- Post 6 ---")
	assert.Contains(t, prompt, "Sensoji Temple")
	assert.Contains(t, prompt, "2026-10-01")
}
