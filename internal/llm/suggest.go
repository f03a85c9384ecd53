package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/priya/resume-builder/internal/types"
)

// bulletsSchema validates the structured bullet-suggestion response before it
// is surfaced to the client.
const bulletsSchema = `{
  "type": "object",
  "properties": {
    "bullets": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "minItems": 1,
      "maxItems": 6
    }
  },
  "required": ["bullets"],
  "additionalProperties": false
}`

// Suggester drives resume text suggestions through an LLM client. Calls are
// fire-and-forget from the caller's point of view: failures surface as errors
// and are never retried here.
type Suggester struct {
	client Client
}

// NewSuggester creates a Suggester backed by the given client.
func NewSuggester(client Client) *Suggester {
	return &Suggester{client: client}
}

// SuggestSummary drafts a professional summary from the user's included
// sections.
func (s *Suggester) SuggestSummary(ctx context.Context, p *types.ResumeProfile) (string, error) {
	if p == nil || p.IsEmpty() {
		return "", &types.ErrValidation{Field: "profile", Message: "no resume content to summarize"}
	}

	var sb strings.Builder
	sb.WriteString("Write a 2-3 sentence professional resume summary in third person, ")
	sb.WriteString("no first-person pronouns, based on this background:\n")
	for _, exp := range p.Experience {
		fmt.Fprintf(&sb, "- %s at %s", exp.Payload.JobTitle, exp.Payload.Company)
		if exp.Payload.Description != "" {
			fmt.Fprintf(&sb, ": %s", exp.Payload.Description)
		}
		sb.WriteString("\n")
	}
	for _, edu := range p.Education {
		fmt.Fprintf(&sb, "- %s in %s, %s\n", edu.Payload.Degree, edu.Payload.Major, edu.Payload.University)
	}
	if len(p.Skills) > 0 {
		names := make([]string, 0, len(p.Skills))
		for _, skill := range p.Skills {
			names = append(names, skill.Payload.Name)
		}
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(names, ", "))
	}
	sb.WriteString("Return only the summary text.")

	text, err := s.client.GenerateText(ctx, sb.String(), TierLite)
	if err != nil {
		return "", fmt.Errorf("summary suggestion failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SuggestBullets rewrites a rough description into resume bullet points. The
// model's JSON response is schema-validated before being returned.
func (s *Suggester) SuggestBullets(ctx context.Context, section types.SectionType, description string) ([]string, error) {
	if strings.TrimSpace(description) == "" {
		return nil, &types.ErrValidation{Field: "description", Message: "description is required"}
	}

	prompt := fmt.Sprintf(
		"Rewrite the following %s description as 2-4 concise resume bullet points. "+
			"Start each bullet with a strong action verb. "+
			"Respond with JSON of the form {\"bullets\": [\"...\"]}.\n\n%s",
		section, description,
	)

	raw, err := s.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, fmt.Errorf("bullet suggestion failed: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(bulletsSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("bullet suggestion returned invalid JSON: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("bullet suggestion failed schema validation: %s", schemaErrors(result))
	}

	var parsed struct {
		Bullets []string `json:"bullets"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode bullet suggestion: %w", err)
	}
	return parsed.Bullets, nil
}

func schemaErrors(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}
