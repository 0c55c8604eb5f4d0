// Package llm provides the client abstraction over the generative text
// completion service used for structured resume extraction.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// DefaultModel is the extraction model used when no override is configured.
const DefaultModel = "gemini-2.0-flash"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Model    string
	// Temperature for generation. Low values keep extraction output stable.
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       DefaultModel,
		Temperature: 0.1,
	}
}

// WithModel returns a copy of the config with a specific model
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}
