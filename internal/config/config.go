package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/bugfind/internal/compare"
	"github.com/AndreyAkinshin/bugfind/internal/schema"
)

// Load reads a bugfind.yaml or bugfind.json file, validates it against the
// embedded schema and returns the parsed config with unknown-field warnings.
// Defaults are not applied.
func Load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data, err = normalize(path, data)
	if err != nil {
		return nil, nil, err
	}
	if err := schema.ValidateConfig(data); err != nil {
		return nil, nil, err
	}

	return LoadWithWarnings(path, data)
}

// LoadAndValidate reads a config file, applies defaults and validates the result.
func LoadAndValidate(path string) (*Config, []string, error) {
	cfg, warnings, err := Load(path)
	if err != nil {
		return nil, warnings, err
	}

	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, warnings, err
	}
	return cfg, warnings, nil
}

// LoadWithWarnings parses JSON config data and returns any unknown field warnings.
func LoadWithWarnings(path string, data []byte) (*Config, []string, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	warnings := detectUnknownFields(data)
	return &cfg, warnings, nil
}

// normalize converts YAML documents to JSON so both formats share one
// validation and decoding path.
func normalize(path string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		out, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert config file %s: %w", path, err)
		}
		return out, nil
	default:
		return data, nil
	}
}

// Discover looks for one of DefaultConfigFiles in dir.
func Discover(dir string) (string, bool) {
	for _, name := range DefaultConfigFiles {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Tolerance returns the comparison settings. The config must have defaults applied.
func (c *Config) Tolerance() compare.Tolerance {
	mode, _ := compare.ParseToleranceMode(c.Comparison.Mode)
	return compare.Tolerance{
		Value:        *c.Comparison.Tolerance,
		Mode:         mode,
		NaNEqualsNaN: c.Comparison.NaNEqualsNaN,
	}
}
