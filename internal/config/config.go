package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// DocsBaseURL prefixes problem type links: {DocsBaseURL}/errors#{type}.
	DocsBaseURL           string `mapstructure:"docs_base_url"           validate:"required,url"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a PostgreSQL connection string or an SQLite data source name.
	URL         string `mapstructure:"url"          validate:"required"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
	// TokenRateLimit caps POST /tokens in requests per second. Zero disables it.
	TokenRateLimit float64 `mapstructure:"token_rate_limit" validate:"gte=0"`
	TokenRateBurst int     `mapstructure:"token_rate_burst" validate:"gte=1"`
}
