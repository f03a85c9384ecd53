package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priya/resume-builder/internal/types"
)

// fakeClient returns canned responses and records the last prompt it saw.
type fakeClient struct {
	textResponse string
	jsonResponse string
	err          error
	lastPrompt   string
}

func (c *fakeClient) GenerateText(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	c.lastPrompt = prompt
	return c.textResponse, c.err
}

func (c *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	c.lastPrompt = prompt
	return c.jsonResponse, c.err
}

func (c *fakeClient) Close() error { return nil }

func experienceProfile() *types.ResumeProfile {
	return &types.ResumeProfile{
		UserID: uuid.New(),
		Experience: []types.ProfileItem[types.Experience]{
			{ID: uuid.New(), Payload: types.Experience{
				JobTitle: "Senior Engineer",
				Company:  "Acme",
			}},
		},
		Skills: []types.ProfileItem[types.Skill]{
			{ID: uuid.New(), Payload: types.Skill{Name: "Go"}},
		},
	}
}

func TestSuggestSummary(t *testing.T) {
	client := &fakeClient{textResponse: "  Seasoned backend engineer.  \n"}
	s := NewSuggester(client)

	summary, err := s.SuggestSummary(context.Background(), experienceProfile())
	require.NoError(t, err)

	assert.Equal(t, "Seasoned backend engineer.", summary, "response must be trimmed")
	assert.Contains(t, client.lastPrompt, "Senior Engineer at Acme")
	assert.Contains(t, client.lastPrompt, "Skills: Go")
}

func TestSuggestSummary_EmptyProfile(t *testing.T) {
	s := NewSuggester(&fakeClient{})

	for _, p := range []*types.ResumeProfile{nil, {UserID: uuid.New()}} {
		_, err := s.SuggestSummary(context.Background(), p)
		var verr *types.ErrValidation
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "profile", verr.Field)
	}
}

func TestSuggestSummary_ClientError(t *testing.T) {
	s := NewSuggester(&fakeClient{err: errors.New("quota exceeded")})

	_, err := s.SuggestSummary(context.Background(), experienceProfile())
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestSuggestBullets(t *testing.T) {
	client := &fakeClient{jsonResponse: `{"bullets": ["Led a team of five", "Shipped the billing rewrite"]}`}
	s := NewSuggester(client)

	bullets, err := s.SuggestBullets(context.Background(), types.SectionExperience, "led team, shipped billing")
	require.NoError(t, err)

	assert.Equal(t, []string{"Led a team of five", "Shipped the billing rewrite"}, bullets)
	assert.Contains(t, client.lastPrompt, "experience description")
}

func TestSuggestBullets_EmptyDescription(t *testing.T) {
	s := NewSuggester(&fakeClient{})

	_, err := s.SuggestBullets(context.Background(), types.SectionExperience, "   ")
	var verr *types.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "description", verr.Field)
}

func TestSuggestBullets_RejectsSchemaViolations(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"missing bullets key", `{"points": ["a"]}`},
		{"empty bullets array", `{"bullets": []}`},
		{"non-string bullet", `{"bullets": [1, 2]}`},
		{"extra property", `{"bullets": ["a"], "note": "hi"}`},
		{"too many bullets", `{"bullets": ["a","b","c","d","e","f","g"]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSuggester(&fakeClient{jsonResponse: tc.response})
			_, err := s.SuggestBullets(context.Background(), types.SectionExperience, "did things")
			assert.ErrorContains(t, err, "schema validation")
		})
	}
}

func TestSuggestBullets_InvalidJSON(t *testing.T) {
	s := NewSuggester(&fakeClient{jsonResponse: `{"bullets": [`})
	_, err := s.SuggestBullets(context.Background(), types.SectionExperience, "did things")
	assert.Error(t, err)
}
