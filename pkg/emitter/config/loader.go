package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FromFile loads configuration from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json, .toml
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	case ".toml":
		return FromTOML(data)
	default:
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data into a Config.
func FromYAML(data []byte) (Config, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into a Config.
func FromJSON(data []byte) (Config, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}

// FromTOML parses TOML data into a Config.
func FromTOML(data []byte) (Config, error) {
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return Config{}, fmt.Errorf("parse toml: %w", err)
	}
	return New(m), nil
}

// Load reads path (when non-empty) and returns validated settings.
// An empty path yields the defaults.
func Load(path string) (Config, Settings, error) {
	cfg := New(nil)
	if path != "" {
		var err error
		if cfg, err = FromFile(path); err != nil {
			return Config{}, Settings{}, err
		}
	}
	s := cfg.Settings()
	if err := s.Validate(); err != nil {
		return Config{}, Settings{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, s, nil
}
