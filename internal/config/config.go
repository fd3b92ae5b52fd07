package config

// Environment names recognised by ServerConfig.Environment.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Notify   NotifyConfig   `mapstructure:"notify" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Environment toggles the session cookie's Secure and SameSite attributes.
	Environment    string   `mapstructure:"environment" validate:"required,oneof=development production"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,url"`
}

// IsProduction reports whether the server runs in the production environment.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret         string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeDays int    `mapstructure:"token_lifetime_days" validate:"required,gt=0,lte=3650"`
}

// RedisConfig enables cross-instance change fan-out when URL is set.
type RedisConfig struct {
	URL     string `mapstructure:"url" validate:"omitempty,url"`
	Channel string `mapstructure:"channel" validate:"required_with=URL"`
}

// Enabled reports whether a Redis URL was configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// NotifyConfig sizes the change-notification buffers.
type NotifyConfig struct {
	// QueueSize bounds pending change signals before new ones are dropped.
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`
	// SendBuffer bounds outbound frames per realtime session.
	SendBuffer int `mapstructure:"send_buffer" validate:"required,gt=0"`
}
