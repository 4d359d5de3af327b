// Package config defines the project-level configuration file consumed by the command layer: which compilation
// platform to use, how it is configured, and how the tool should log.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/solarium-dev/solarium/compilation"
)

// ProjectConfig describes the configuration of one project the tool operates on.
type ProjectConfig struct {
	// Compilation describes the configuration used to assemble the project's compilation model.
	Compilation *compilation.CompilationConfig `json:"compilation"`

	// Logging describes the configuration used for log output.
	Logging LoggingConfig `json:"logging"`
}

// LoggingConfig describes the configuration options for log output.
type LoggingConfig struct {
	// Level describes the zerolog level name at and above which events are emitted, e.g. "info".
	Level string `json:"level"`

	// LogDirectory describes a directory where structured log files should be written. If empty, file logging is
	// disabled.
	LogDirectory string `json:"logDirectory,omitempty"`
}

// GetDefaultProjectConfig obtains a default ProjectConfig for the provided compilation platform identifier, or an
// error if the platform is unsupported.
func GetDefaultProjectConfig(platform string) (*ProjectConfig, error) {
	compilationConfig, err := compilation.NewCompilationConfig(platform)
	if err != nil {
		return nil, err
	}
	return &ProjectConfig{
		Compilation: compilationConfig,
		Logging: LoggingConfig{
			Level: zerolog.InfoLevel.String(),
		},
	}, nil
}

// ReadProjectConfigFromFile reads a ProjectConfig from the JSON file at the provided path, validating it before
// returning. Returns the config, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var projectConfig ProjectConfig
	if err := json.Unmarshal(data, &projectConfig); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := projectConfig.Validate(); err != nil {
		return nil, err
	}
	return &projectConfig, nil
}

// WriteToFile writes this ProjectConfig as indented JSON to the provided path. Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(os.WriteFile(path, data, 0644))
}

// Validate verifies the integrity of this ProjectConfig, returning an error describing the first problem found.
func (p *ProjectConfig) Validate() error {
	// A compilation config naming a supported platform is required.
	if p.Compilation == nil {
		return fmt.Errorf("project configuration is missing its compilation settings")
	}
	if !compilation.IsSupportedCompilationPlatform(p.Compilation.Platform) {
		return fmt.Errorf("project configuration names unsupported compilation platform '%s'", p.Compilation.Platform)
	}

	// The log level, when provided, must parse.
	if p.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(p.Logging.Level); err != nil {
			return fmt.Errorf("project configuration names unknown log level '%s'", p.Logging.Level)
		}
	}
	return nil
}

// LogLevel returns the parsed zerolog level of this config, defaulting to info when unset.
func (p *ProjectConfig) LogLevel() zerolog.Level {
	if p.Logging.Level == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(p.Logging.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
