package bind

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/vireodb/mysqlbind/utils"
)

// EncodingFailureAction names what a binder does when a structured value can't
// be serialized
type EncodingFailureAction string

// Supported encoding failure actions
const (
	// EncodingFailureEmpty bind an empty byte sequence in place of the value
	EncodingFailureEmpty EncodingFailureAction = "empty"
	// EncodingFailureError fail the whole binding operation
	EncodingFailureError EncodingFailureAction = "error"
)

// MinimalConfigVersion supported by current code
const MinimalConfigVersion = "0.1.0"

// Configuration loading errors
var (
	// ErrUnsupportedConfigVersion config has version less than MinimalConfigVersion
	ErrUnsupportedConfigVersion = errors.New("binder config is outdated")
	// ErrUnknownFailureAction config names an encoding failure action that doesn't exist
	ErrUnknownFailureAction = errors.New("unknown encoding failure action")
)

// Config shows binder configuration: encoding failure policy and the calendar
// location temporal values are split in
type Config struct {
	Version           string `yaml:"version"`
	OnEncodingFailure string `yaml:"on_encoding_failure"`
	Timezone          string `yaml:"timezone"`
}

// DefaultConfig return config with empty bindings on encoding failure and the
// UTC calendar
func DefaultConfig() *Config {
	return &Config{
		OnEncodingFailure: string(EncodingFailureEmpty),
		Timezone:          "UTC",
	}
}

// ConfigFromBytes parse yaml configuration and return Config with defaults
// applied to absent fields. An empty version field skips the version check.
func ConfigFromBytes(configuration []byte) (*Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(configuration, config); err != nil {
		return nil, err
	}
	if config.Version != "" {
		configVersion, err := utils.ParseVersion(config.Version)
		if err != nil {
			return nil, err
		}
		minimalVersion, err := utils.ParseVersion(MinimalConfigVersion)
		if err != nil {
			return nil, err
		}
		if minimalVersion.Compare(configVersion) == utils.Greater {
			return nil, ErrUnsupportedConfigVersion
		}
	}
	if config.OnEncodingFailure == "" {
		config.OnEncodingFailure = string(EncodingFailureEmpty)
	}
	if config.Timezone == "" {
		config.Timezone = "UTC"
	}
	if _, err := config.FailureAction(); err != nil {
		return nil, err
	}
	if _, err := config.Location(); err != nil {
		return nil, err
	}
	return config, nil
}

// ConfigFromFile read and parse yaml configuration from path
func ConfigFromFile(path string) (*Config, error) {
	configuration, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ConfigFromBytes(configuration)
}

// FailureAction return the configured encoding failure action
func (c *Config) FailureAction() (EncodingFailureAction, error) {
	switch EncodingFailureAction(c.OnEncodingFailure) {
	case EncodingFailureEmpty:
		return EncodingFailureEmpty, nil
	case EncodingFailureError:
		return EncodingFailureError, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFailureAction, c.OnEncodingFailure)
}

// Location return the calendar location temporal values are split in
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
