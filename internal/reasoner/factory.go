package reasoner

import (
	"fmt"
	"strings"
)

// newClient creates a raw provider client based on the configuration.
func newClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return newGeminiClient(cfg)
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported reasoner provider: %s", cfg.Provider)
	}
}
