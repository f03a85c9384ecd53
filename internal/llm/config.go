// Package llm provides the language-model collaborator used for resume text
// suggestions.
package llm

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is for short rewrites and single-field suggestions
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as bullet lists
	TierStandard ModelTier = "standard"
)

// Config holds the model selection per tier
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model for a tier, falling back to the lite tier.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierLite]
}
