package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader handles loading of YAML configuration files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadFromFile loads configuration from a YAML file. If the file does
// not exist, the default configuration is returned with no error.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("config file not found, using defaults", zap.String("path", path))
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromBytes(content)
}

// LoadFromBytes loads configuration from YAML content. Keys absent from
// the document keep their default values.
func (l *Loader) LoadFromBytes(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
