package srs

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when a parameter set cannot produce valid records.
var ErrInvalidParams = errors.New("invalid SRS parameters")

// Params defines all configurable parameters for the SRS algorithm.
// Intervals are expressed in days.
type Params struct {
	// Interval limits. InitialInterval is also the lower clamp.
	InitialInterval    float64
	GraduatingInterval float64
	EasyInterval       float64
	MaxInterval        float64

	// Ease factor limits and the value given to fresh records
	MinEaseFactor     float64
	MaxEaseFactor     float64
	DefaultEaseFactor float64

	// Ease adjustments applied before the interval is computed
	AgainEaseAdjustment float64
	HardEaseAdjustment  float64
	EasyEaseAdjustment  float64

	// Interval modifiers
	HardFirstIntervalFactor float64 // share of GraduatingInterval for HARD on a new word
	HardIntervalModifier    float64
	EasyBonus               float64

	// Mastery thresholds, checked after the counters are updated
	MasteryIntervalDays float64
	MasteryCorrectCount int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance.
// Zero values keep the default.
type ParamsConfig struct {
	InitialInterval    float64
	GraduatingInterval float64
	EasyInterval       float64
	MaxInterval        float64

	MinEaseFactor     float64
	MaxEaseFactor     float64
	DefaultEaseFactor float64

	AgainEaseAdjustment float64
	HardEaseAdjustment  float64
	EasyEaseAdjustment  float64

	HardFirstIntervalFactor float64
	HardIntervalModifier    float64
	EasyBonus               float64

	MasteryIntervalDays float64
	MasteryCorrectCount int
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		InitialInterval:    1,
		GraduatingInterval: 1,
		EasyInterval:       4,
		MaxInterval:        365,

		MinEaseFactor:     1.3,
		MaxEaseFactor:     2.5,
		DefaultEaseFactor: 2.5,

		AgainEaseAdjustment: -0.20,
		HardEaseAdjustment:  -0.15,
		EasyEaseAdjustment:  0.15,

		HardFirstIntervalFactor: 0.5,
		HardIntervalModifier:    1.2,
		EasyBonus:               1.3,

		MasteryIntervalDays: 21,
		MasteryCorrectCount: 5,
	}
}

// NewParams creates a new Params instance with custom configuration.
// It returns ErrInvalidParams if the resulting set is inconsistent.
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	// Override interval limits if provided
	if config.InitialInterval > 0 {
		params.InitialInterval = config.InitialInterval
	}
	if config.GraduatingInterval > 0 {
		params.GraduatingInterval = config.GraduatingInterval
	}
	if config.EasyInterval > 0 {
		params.EasyInterval = config.EasyInterval
	}
	if config.MaxInterval > 0 {
		params.MaxInterval = config.MaxInterval
	}

	// Override ease limits if provided
	if config.MinEaseFactor > 0 {
		params.MinEaseFactor = config.MinEaseFactor
	}
	if config.MaxEaseFactor > 0 {
		params.MaxEaseFactor = config.MaxEaseFactor
	}
	if config.DefaultEaseFactor > 0 {
		params.DefaultEaseFactor = config.DefaultEaseFactor
	}

	// Override ease adjustments if provided
	if config.AgainEaseAdjustment != 0 {
		params.AgainEaseAdjustment = config.AgainEaseAdjustment
	}
	if config.HardEaseAdjustment != 0 {
		params.HardEaseAdjustment = config.HardEaseAdjustment
	}
	if config.EasyEaseAdjustment != 0 {
		params.EasyEaseAdjustment = config.EasyEaseAdjustment
	}

	// Override interval modifiers if provided
	if config.HardFirstIntervalFactor > 0 {
		params.HardFirstIntervalFactor = config.HardFirstIntervalFactor
	}
	if config.HardIntervalModifier > 0 {
		params.HardIntervalModifier = config.HardIntervalModifier
	}
	if config.EasyBonus > 0 {
		params.EasyBonus = config.EasyBonus
	}

	// Override mastery thresholds if provided
	if config.MasteryIntervalDays > 0 {
		params.MasteryIntervalDays = config.MasteryIntervalDays
	}
	if config.MasteryCorrectCount > 0 {
		params.MasteryCorrectCount = config.MasteryCorrectCount
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return params, nil
}

// Validate checks that the parameters keep records inside their invariants.
func (p *Params) Validate() error {
	switch {
	case p.InitialInterval <= 0:
		return fmt.Errorf("%w: initial interval must be positive", ErrInvalidParams)
	case p.MaxInterval < p.InitialInterval:
		return fmt.Errorf("%w: max interval %.2f is below initial interval %.2f",
			ErrInvalidParams, p.MaxInterval, p.InitialInterval)
	case p.GraduatingInterval <= 0 || p.EasyInterval <= 0:
		return fmt.Errorf("%w: graduating and easy intervals must be positive", ErrInvalidParams)
	case p.MinEaseFactor <= 1.0:
		return fmt.Errorf("%w: min ease factor must be greater than 1.0", ErrInvalidParams)
	case p.MaxEaseFactor < p.MinEaseFactor:
		return fmt.Errorf("%w: max ease factor %.2f is below min ease factor %.2f",
			ErrInvalidParams, p.MaxEaseFactor, p.MinEaseFactor)
	case p.DefaultEaseFactor < p.MinEaseFactor || p.DefaultEaseFactor > p.MaxEaseFactor:
		return fmt.Errorf("%w: default ease factor %.2f is outside [%.2f, %.2f]",
			ErrInvalidParams, p.DefaultEaseFactor, p.MinEaseFactor, p.MaxEaseFactor)
	case p.HardFirstIntervalFactor <= 0 || p.HardIntervalModifier <= 0 || p.EasyBonus <= 0:
		return fmt.Errorf("%w: interval modifiers must be positive", ErrInvalidParams)
	case p.MasteryCorrectCount <= 0 || p.MasteryIntervalDays <= 0:
		return fmt.Errorf("%w: mastery thresholds must be positive", ErrInvalidParams)
	}
	return nil
}
