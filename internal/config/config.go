package config

import "time"

type Config struct {
	App       AppConfig      `mapstructure:"app"`
	HTTP      HTTPConfig     `mapstructure:"http"`
	Database  DatabaseConfig `mapstructure:"database"`
	RabbitMQ  RabbitMQConfig `mapstructure:"rabbitmq"`
	Redis     RedisConfig    `mapstructure:"redis"`
	SMTP      SMTPConfig     `mapstructure:"smtp"`
	Reminders ReminderConfig `mapstructure:"reminders"`
	Logging   LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port            int      `mapstructure:"port"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	CreateRateLimit int      `mapstructure:"create_rate_limit"` // per IP per minute
}

type DatabaseConfig struct {
	URL            string `mapstructure:"url"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
}

type RabbitMQConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig is optional; an empty Address disables the snapshot cache
// and reminder dedupe.
type RedisConfig struct {
	Address     string `mapstructure:"address"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	SnapshotTTL int    `mapstructure:"snapshot_ttl"` // seconds
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type ReminderConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Interval int  `mapstructure:"interval"` // seconds
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.SnapshotTTL) * time.Second
}

func (r ReminderConfig) TickInterval() time.Duration {
	return time.Duration(r.Interval) * time.Second
}
