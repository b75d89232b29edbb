// Package config loads pdfmerge settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/itsatony/go-cuserr"
	"gopkg.in/yaml.v3"

	"github.com/wudi/pdfmerge/engine"
	"github.com/wudi/pdfmerge/observability"
	"github.com/wudi/pdfmerge/recovery"
)

type Config struct {
	Engine        string `yaml:"engine"`
	Validation    string `yaml:"validation"`
	Recovery      string `yaml:"recovery"`
	Password      string `yaml:"password"`
	OwnerPassword string `yaml:"owner_password"`
	Optimize      bool   `yaml:"optimize"`
	XRefStreams   bool   `yaml:"xref_streams"`
	ObjectStreams bool   `yaml:"object_streams"`
	LogLevel      string `yaml:"log_level"`
}

const (
	DefaultEngine     = "pdfcpu"
	DefaultValidation = "relaxed"
	DefaultRecovery   = recovery.NameStrict
	DefaultLogLevel   = "warn"
)

const ErrCodeConfig = "PDFMERGE_CONFIG"

const (
	ErrMsgReadFailed  = "failed to read config file"
	ErrMsgParseFailed = "invalid config file"
	ErrMsgInvalid     = "invalid config value"
)

const MetaKeyPath = "path"

// Default returns the built-in settings. Stream compression follows pdfcpu's defaults.
func Default() Config {
	return Config{
		Engine:        DefaultEngine,
		Validation:    DefaultValidation,
		Recovery:      DefaultRecovery,
		XRefStreams:   true,
		ObjectStreams: true,
		LogLevel:      DefaultLogLevel,
	}
}

// Load reads path over Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, cuserr.WrapWithCustomError(err, cuserr.ErrorCategoryValidation, ErrCodeConfig, fmt.Sprintf("%s %s", ErrMsgReadFailed, path)).
			WithMetadata(MetaKeyPath, path)
	}
	cfg, err := Parse(data)
	if err != nil {
		var customErr *cuserr.CustomError
		if errors.As(err, &customErr) {
			return Config{}, customErr.WithMetadata(MetaKeyPath, path)
		}
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML over Default. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, cuserr.WrapWithCustomError(flattenYAMLError(err), cuserr.ErrorCategoryValidation, ErrCodeConfig, ErrMsgParseFailed)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if c.Engine == "" {
		return invalid("engine", fmt.Errorf("must not be empty"))
	}
	if _, err := engine.ParseValidationMode(c.Validation); err != nil {
		return invalid("validation", err)
	}
	if _, err := recovery.Parse(c.Recovery); err != nil {
		return invalid("recovery", err)
	}
	if _, err := observability.ParseLevel(c.LogLevel); err != nil {
		return invalid("log_level", err)
	}
	return nil
}

// EngineOptions converts the settings into options for engine.Engine.NewMerger.
func (c Config) EngineOptions() (engine.Options, error) {
	mode, err := engine.ParseValidationMode(c.Validation)
	if err != nil {
		return engine.Options{}, invalid("validation", err)
	}
	return engine.Options{
		Validation:    mode,
		UserPassword:  c.Password,
		OwnerPassword: c.OwnerPassword,
		Optimize:      c.Optimize,
		XRefStreams:   c.XRefStreams,
		ObjectStreams: c.ObjectStreams,
	}, nil
}

// Strategy builds the configured recovery strategy.
func (c Config) Strategy() (recovery.Strategy, error) {
	s, err := recovery.Parse(c.Recovery)
	if err != nil {
		return nil, invalid("recovery", err)
	}
	return s, nil
}

// flattenYAMLError folds yaml's multi-line unmarshal report into one line.
func flattenYAMLError(err error) error {
	var typeErr *yaml.TypeError
	if !errors.As(err, &typeErr) {
		return err
	}
	return errors.New(strings.Join(typeErr.Errors, "; "))
}

func invalid(key string, cause error) error {
	return cuserr.WrapWithCustomError(cause, cuserr.ErrorCategoryValidation, ErrCodeConfig, fmt.Sprintf("%s for %s", ErrMsgInvalid, key)).
		WithMetadata("key", key)
}
