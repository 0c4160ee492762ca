package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// TRACKER_ prefix with underscores for nesting (TRACKER_DATABASE_URL,
// TRACKER_AUTH_JWT_SECRET) and take precedence over file values.
// Returns a populated, validated Config or an error.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for everything that has a sensible one; secrets do not.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 30)
	v.SetDefault("auth.refresh_token_lifetime_minutes", 10080) // 7 days
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("ai.model", "gemini-2.0-flash")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Viper only knows about env-only keys once they are bound; bind every
	// key we read so AutomaticEnv can see them without a config file.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"auth.jwt_secret",
		"auth.token_lifetime_minutes",
		"auth.refresh_token_lifetime_minutes",
		"auth.bcrypt_cost",
		"google.client_id",
		"google.client_secret",
		"google.redirect_uri",
		"ai.gemini_api_key",
		"ai.model",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
