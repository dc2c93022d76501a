package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables with the SALEAWAY_
// prefix, applies defaults, and validates the result. Nested keys map to
// environment variables by joining with underscores, e.g. server.port is
// read from SALEAWAY_SERVER_PORT.
//
// Environment variables take precedence over defaults. Returns a populated
// Config or an error describing which settings are missing or invalid.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults for optional settings.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("storage.upload_url_ttl_seconds", 3600)
	v.SetDefault("llm.text_model", "gemini-2.0-flash")
	v.SetDefault("llm.image_model", "imagen-3.0-generate-002")

	v.SetEnvPrefix("SALEAWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface nested keys during Unmarshal, so
	// bind each key explicitly.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"cognito.region",
		"cognito.user_pool_id",
		"cognito.app_client_id",
		"storage.region",
		"storage.bucket",
		"storage.access_key_id",
		"storage.secret_access_key",
		"storage.upload_url_ttl_seconds",
		"llm.gemini_api_key",
		"llm.text_model",
		"llm.image_model",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
