package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Mongo: MongoConfig{URI: "mongodb://localhost:27017"},
		LLM:   LLMConfig{Provider: LLMProviderOpenAI, APIKey: "key"},
		Auth:  AuthConfig{JWTSecret: "secret"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid openai", mutate: func(c *Config) {}},
		{
			name:    "openai without key",
			mutate:  func(c *Config) { c.LLM.APIKey = "" },
			wantErr: "llm.api_key is required",
		},
		{
			name:   "ollama with server url",
			mutate: func(c *Config) { c.LLM = LLMConfig{Provider: LLMProviderOllama, ServerURL: "http://localhost:11434"} },
		},
		{
			name:    "ollama without server url",
			mutate:  func(c *Config) { c.LLM = LLMConfig{Provider: LLMProviderOllama} },
			wantErr: "llm.server_url is required",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "bard" },
			wantErr: "unsupported llm.provider",
		},
		{
			name:    "missing mongo uri",
			mutate:  func(c *Config) { c.Mongo.URI = "" },
			wantErr: "mongo.uri is required",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "" },
			wantErr: "auth.jwt_secret is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_MaterialSummaryTTL(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 24*time.Hour, cfg.MaterialSummaryTTL())

	cfg.CacheTTLs.MaterialSummary = time.Hour
	assert.Equal(t, time.Hour, cfg.MaterialSummaryTTL())
}
