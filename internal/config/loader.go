package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envAliases keeps the flat variable names used by existing deployments.
var envAliases = map[string]string{
	"http.port":         "PORT",
	"database.url":      "DATABASE_URL",
	"rabbitmq.url":      "RABBITMQ_URL",
	"redis.address":     "REDIS_ADDR",
	"redis.password":    "REDIS_PASSWORD",
	"smtp.host":         "MAIL_HOST",
	"smtp.port":         "MAIL_PORT",
	"smtp.username":     "MAIL_USER",
	"smtp.password":     "MAIL_PASS",
	"smtp.from":         "MAIL_FROM",
	"logging.level":     "LOG_LEVEL",
	"logging.format":    "LOG_FORMAT",
	"app.environment":   "APP_ENVIRONMENT",
	"reminders.enabled": "REMINDERS_ENABLED",
}

// Load reads config.yaml from the given directories (or ./configs and .),
// then environment variables, then applies defaults and validates.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ligue-csr")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("http.create_rate_limit", 30)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.max_idle", 5)

	v.SetDefault("rabbitmq.url", "")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.snapshot_ttl", 60)

	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "")

	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.interval", 900)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func validateConfig(cfg *Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.CreateRateLimit <= 0 {
		return fmt.Errorf("http.create_rate_limit must be positive")
	}
	if cfg.Reminders.Enabled && cfg.Reminders.Interval <= 0 {
		return fmt.Errorf("reminders.interval must be positive")
	}
	if cfg.SMTP.Host != "" && cfg.SMTP.From == "" {
		return fmt.Errorf("smtp.from is required when smtp.host is set")
	}
	if cfg.Redis.Enabled() && cfg.Redis.SnapshotTTL <= 0 {
		return fmt.Errorf("redis.snapshot_ttl must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}

// RemindersActive reports whether the reminder worker should run. Reminders
// need a broker; without rabbitmq.url they stay off.
func (c *Config) RemindersActive() bool {
	return c.Reminders.Enabled && c.RabbitMQ.URL != ""
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}
