// Package config loads application settings with viper from defaults, an
// optional config.yaml and LEXIS_ environment variables, and validates them
// with go-playground/validator.
package config
