package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// Load builds the configuration from defaults, the file at path (skipped
// when path is empty) and the environment. It does not validate.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	LoadEnv(cfg)
	return cfg, nil
}

// LoadFile decodes the JSON or YAML file at path over cfg. Keys absent from
// the file keep their current values. The format is picked by extension
// (.yaml, .yml for YAML, otherwise JSON).
func LoadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	var keys map[string]any
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("%w in %s: %v", ErrInvalidYAML, path, err)
		}
		_ = yaml.Unmarshal(data, &keys)
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("%w in %s: %v", ErrInvalidJSON, path, err)
		}
		_ = json.Unmarshal(data, &keys)
	}

	for key := range keys {
		cfg.SetSource(key, SourceFile)
	}
	return nil
}
