package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/techtitans/foundit/internal/reasoner"
	"github.com/techtitans/foundit/internal/service"
)

// createReasoner creates the semantic-reasoning collaborator based on
// configuration. Returns nil (no reasoner, deterministic tier only) when
// no API key is available; the engine degrades gracefully.
func createReasoner() service.Reasoner {
	provider := viper.GetString("reasoner.provider")
	if provider == "" {
		provider = "gemini"
	}

	config := reasoner.Config{
		Provider:    provider,
		Model:       viper.GetString("reasoner.model"),
		Temperature: viper.GetFloat64("reasoner.temperature"),
		MaxTokens:   viper.GetInt("reasoner.max_tokens"),
		MaxRetries:  viper.GetInt("reasoner.max_retries"),
		RetryDelay:  viper.GetDuration("reasoner.retry_delay"),
		RateLimit:   viper.GetInt("reasoner.rate_limit"),
		Timeout:     viper.GetDuration("reasoner.timeout"),
	}

	if config.MaxRetries == 0 {
		config.MaxRetries = 2
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 60
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	apiKey, err := reasonerAPIKey(provider)
	if err != nil {
		slog.Warn("semantic reasoner disabled", "error", err)
		return nil
	}
	config.APIKey = apiKey

	r, err := reasoner.New(config, slog.Default())
	if err != nil {
		slog.Warn("semantic reasoner disabled", "error", err)
		return nil
	}
	return r
}

func reasonerAPIKey(provider string) (string, error) {
	var configKey, envVar string
	switch provider {
	case "gemini":
		configKey, envVar = "reasoner.gemini_api_key", "GEMINI_API_KEY"
	case "openai":
		configKey, envVar = "reasoner.openai_api_key", "OPENAI_API_KEY"
	case "anthropic":
		configKey, envVar = "reasoner.anthropic_api_key", "ANTHROPIC_API_KEY"
	default:
		return "", fmt.Errorf("unsupported reasoner provider: %s", provider)
	}

	apiKey := viper.GetString(configKey)
	if apiKey == "" {
		apiKey = os.Getenv(envVar)
	}
	if apiKey == "" {
		return "", fmt.Errorf("no API key in config %s or %s environment variable", configKey, envVar)
	}
	return apiKey, nil
}
