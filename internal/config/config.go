package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Google   GoogleConfig   `mapstructure:"google"`
	AI       AIConfig       `mapstructure:"ai"`
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

// AuthConfig contains authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"omitempty,gte=4,lte=31"`
}

// GoogleConfig contains Google OAuth settings. When ClientID is empty the
// /auth/google endpoints respond with 503 instead of verifying tokens.
type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"  validate:"omitempty,url"`
}

// AIConfig contains settings for the Gemini-backed task summarizer. When
// GeminiAPIKey is empty the summarize endpoint serves heuristic fallback
// responses.
type AIConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	Model        string `mapstructure:"model"`
}
