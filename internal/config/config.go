package config

import (
	"fmt"

	"github.com/phrazzld/lexis/internal/domain/srs"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs"`
	Study    StudyConfig    `mapstructure:"study"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port"              validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level"         validate:"required,oneof=debug info warn error"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds"  validate:"gte=0"`
}

// DatabaseConfig selects the storage engine. URL is a connection URL for
// postgres and a file path or file: DSN for sqlite.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"         validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// SRSConfig overrides the scheduling constants. Zero values keep the
// engine defaults.
type SRSConfig struct {
	InitialInterval    float64 `mapstructure:"initial_interval"    validate:"gte=0"`
	GraduatingInterval float64 `mapstructure:"graduating_interval" validate:"gte=0"`
	EasyInterval       float64 `mapstructure:"easy_interval"       validate:"gte=0"`
	MaxInterval        float64 `mapstructure:"max_interval"        validate:"gte=0"`

	MinEaseFactor     float64 `mapstructure:"min_ease_factor"     validate:"gte=0"`
	MaxEaseFactor     float64 `mapstructure:"max_ease_factor"     validate:"gte=0"`
	DefaultEaseFactor float64 `mapstructure:"default_ease_factor" validate:"gte=0"`

	AgainEaseAdjustment float64 `mapstructure:"again_ease_adjustment"`
	HardEaseAdjustment  float64 `mapstructure:"hard_ease_adjustment"`
	EasyEaseAdjustment  float64 `mapstructure:"easy_ease_adjustment"`

	HardFirstIntervalFactor float64 `mapstructure:"hard_first_interval_factor" validate:"gte=0"`
	HardIntervalModifier    float64 `mapstructure:"hard_interval_modifier"     validate:"gte=0"`
	EasyBonus               float64 `mapstructure:"easy_bonus"                 validate:"gte=0"`

	MasteryIntervalDays float64 `mapstructure:"mastery_interval_days" validate:"gte=0"`
	MasteryCorrectCount int     `mapstructure:"mastery_correct_count" validate:"gte=0"`
}

// StudyConfig holds the batch limits applied by the study service.
type StudyConfig struct {
	DefaultBatchLimit int `mapstructure:"default_batch_limit" validate:"gte=0"`
	MaxBatchLimit     int `mapstructure:"max_batch_limit"     validate:"gte=0"`
}

// Params builds the scheduling parameters, validating the combination.
func (c SRSConfig) Params() (*srs.Params, error) {
	params, err := srs.NewParams(srs.ParamsConfig{
		InitialInterval:         c.InitialInterval,
		GraduatingInterval:      c.GraduatingInterval,
		EasyInterval:            c.EasyInterval,
		MaxInterval:             c.MaxInterval,
		MinEaseFactor:           c.MinEaseFactor,
		MaxEaseFactor:           c.MaxEaseFactor,
		DefaultEaseFactor:       c.DefaultEaseFactor,
		AgainEaseAdjustment:     c.AgainEaseAdjustment,
		HardEaseAdjustment:      c.HardEaseAdjustment,
		EasyEaseAdjustment:      c.EasyEaseAdjustment,
		HardFirstIntervalFactor: c.HardFirstIntervalFactor,
		HardIntervalModifier:    c.HardIntervalModifier,
		EasyBonus:               c.EasyBonus,
		MasteryIntervalDays:     c.MasteryIntervalDays,
		MasteryCorrectCount:     c.MasteryCorrectCount,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid srs configuration: %w", err)
	}
	return params, nil
}
