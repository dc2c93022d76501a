package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Cognito  CognitoConfig  `mapstructure:"cognito"  validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// CognitoConfig identifies the Cognito user pool that issues the ID tokens
// this service accepts. All three values are required before any request can
// be authenticated.
type CognitoConfig struct {
	Region      string `mapstructure:"region"        validate:"required"`
	UserPoolID  string `mapstructure:"user_pool_id"  validate:"required"`
	AppClientID string `mapstructure:"app_client_id" validate:"required"`
}

// StorageConfig contains the S3 bucket and credentials used for listing
// image uploads.
type StorageConfig struct {
	Region          string `mapstructure:"region"            validate:"required"`
	Bucket          string `mapstructure:"bucket"            validate:"required"`
	AccessKeyID     string `mapstructure:"access_key_id"     validate:"required"`
	SecretAccessKey string `mapstructure:"secret_access_key" validate:"required"`
	// UploadURLTTLSeconds bounds the lifetime of presigned upload URLs.
	UploadURLTTLSeconds int `mapstructure:"upload_url_ttl_seconds" validate:"gte=0"`
}

// LLMConfig contains all generation-related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	TextModel    string `mapstructure:"text_model"     validate:"required"`
	ImageModel   string `mapstructure:"image_model"    validate:"required"`
}
