package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of a catalog override file.
type fileConfig struct {
	Games []Game `yaml:"games"`
}

// LoadFile loads a game catalog from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	expanded := expandEnvVars(string(data))

	var cfg fileConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
	}

	if len(cfg.Games) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no games", path)
	}

	c, err := New(cfg.Games)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return c, nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
