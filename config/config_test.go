package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "5000",
			AllowedOrigins: []string{"https://studyhive.app"},
		},
		Database: DatabaseConfig{URL: "postgres://localhost:5432/studyhive"},
		Auth:     AuthConfig{JWTSecret: "secret", SessionTTLHours: 168},
		Stripe:   StripeConfig{SecretKey: "sk_test_123"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing database url",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "DATABASE_URL",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "" },
			wantErr: "ACCESS_TOKEN_SECRET",
		},
		{
			name:    "missing stripe key",
			mutate:  func(c *Config) { c.Stripe.SecretKey = "" },
			wantErr: "STRIPE_SECRET_KEY",
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "PORT",
		},
		{
			name:    "missing cors origins",
			mutate:  func(c *Config) { c.Server.AllowedOrigins = nil },
			wantErr: "ALLOWED_CORS_ORIGINS",
		},
		{
			name:    "non-positive session ttl",
			mutate:  func(c *Config) { c.Auth.SessionTTLHours = 0 },
			wantErr: "SESSION_TTL_HOURS",
		},
		{
			name: "profiling enabled without endpoint",
			mutate: func(c *Config) {
				c.Profiling.Enabled = true
				c.Profiling.Endpoint = ""
			},
			wantErr: "O11Y_PROFILING_ENDPOINT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/studyhive_test")
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")
	t.Setenv("ALLOWED_CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("SESSION_TTL_HOURS", "24")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/studyhive_test", cfg.Database.URL)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24, cfg.Auth.SessionTTLHours)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)

	// Defaults
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Equal(t, 60, cfg.Cache.ApprovedSessionsTTLSeconds)
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected bool
	}{
		{
			name:     "development environment",
			config:   &Config{Server: ServerConfig{AppEnv: "development"}},
			expected: true,
		},
		{
			name:     "debug gin mode",
			config:   &Config{Server: ServerConfig{GinMode: "debug"}},
			expected: true,
		},
		{
			name:     "production release",
			config:   &Config{Server: ServerConfig{GinMode: "release", AppEnv: "production"}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	assert.True(t, (&Config{Server: ServerConfig{AppEnv: "production"}}).IsProduction())
	assert.False(t, (&Config{Server: ServerConfig{AppEnv: "staging"}}).IsProduction())
}
