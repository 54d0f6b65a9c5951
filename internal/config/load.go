package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. LEXIS_DATABASE_URL for database.url.
const EnvPrefix = "LEXIS"

// Load reads defaults, then an optional config.yaml from the working
// directory, then LEXIS_ environment variables, and validates the result.
// Environment variables take precedence over values from the file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can populate it on Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_seconds", 10)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "lexis.db")
	v.SetDefault("database.max_open_conns", 10)

	srsKeys := []string{
		"initial_interval", "graduating_interval", "easy_interval", "max_interval",
		"min_ease_factor", "max_ease_factor", "default_ease_factor",
		"again_ease_adjustment", "hard_ease_adjustment", "easy_ease_adjustment",
		"hard_first_interval_factor", "hard_interval_modifier", "easy_bonus",
		"mastery_interval_days", "mastery_correct_count",
	}
	for _, key := range srsKeys {
		v.SetDefault("srs."+key, 0)
	}

	v.SetDefault("study.default_batch_limit", 20)
	v.SetDefault("study.max_batch_limit", 100)
}

// Validate checks struct tags and the rules that span fields.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Database.Driver == DriverPostgres {
		u, err := url.Parse(c.Database.URL)
		if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
			return errors.New("invalid configuration: database.url must be a postgres:// URL for the postgres driver")
		}
	}

	if c.Study.MaxBatchLimit > 0 && c.Study.DefaultBatchLimit > c.Study.MaxBatchLimit {
		return fmt.Errorf("invalid configuration: study.default_batch_limit %d exceeds study.max_batch_limit %d",
			c.Study.DefaultBatchLimit, c.Study.MaxBatchLimit)
	}

	if _, err := c.SRS.Params(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}
