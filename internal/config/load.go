package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "TASKMATE"

// Load configuration from environment variables and optionally a config.yaml
// file in the working directory. Environment variables take precedence over
// values from the config file. Returns a populated Config or an error if
// loading or validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := bindEnvironment(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("auth.token_lifetime_days", 365)
	v.SetDefault("redis.channel", "taskmate:task-changes")
	v.SetDefault("notify.queue_size", 256)
	v.SetDefault("notify.send_buffer", 16)
}

// bindEnvironment registers keys that have no default so AutomaticEnv can see
// them during Unmarshal, and accepts the conventional bare PORT and
// ENVIRONMENT variables used by most hosting platforms.
func bindEnvironment(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":        {EnvPrefix + "_SERVER_PORT", "PORT"},
		"server.environment": {EnvPrefix + "_SERVER_ENVIRONMENT", "ENVIRONMENT"},
		"database.url":       {EnvPrefix + "_DATABASE_URL", "DATABASE_URL"},
		"auth.jwt_secret":    {EnvPrefix + "_AUTH_JWT_SECRET"},
		"redis.url":          {EnvPrefix + "_REDIS_URL"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}
