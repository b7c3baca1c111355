package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBase() *Config {
	return &Config{
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		Port:       "8460",
		DBPassword: "secure-password",
		DBSSLMode:  "require",
		RedisURL:   "localhost:6379",
	}
}

func TestConfig_Validate_Required(t *testing.T) {
	c := validBase()
	c.Port = ""
	assert.Error(t, c.Validate())

	c = validBase()
	c.JWTSecret = ""
	assert.Error(t, c.Validate())

	assert.NoError(t, validBase().Validate())
}

func TestConfig_Validate_Production(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid production config", func(c *Config) {}, false},
		{"Default JWT secret", func(c *Config) { c.JWTSecret = "your-secret-key-change-in-production" }, true},
		{"Short JWT secret", func(c *Config) { c.JWTSecret = "too-short" }, true},
		{"Default DB password", func(c *Config) { c.DBPassword = "password" }, true},
		{"Empty DB password", func(c *Config) { c.DBPassword = "" }, true},
		{"SSL disabled", func(c *Config) { c.DBSSLMode = "disable" }, true},
		{"SSL empty", func(c *Config) { c.DBSSLMode = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validBase()
			c.Env = "production"
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_DevelopmentIsLenient(t *testing.T) {
	c := validBase()
	c.Env = "development"
	c.JWTSecret = "short-dev-secret"
	c.DBPassword = "password"
	c.DBSSLMode = "disable"

	assert.NoError(t, c.Validate())
}
