package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/proposa/internal/validation"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// DefaultPath returns ~/.proposa/config.yaml.
func DefaultPath(home string) string {
	return filepath.Join(home, ".proposa", "config.yaml")
}

// Load reads the settings file at path on top of Defaults. A missing file is
// not an error.
func Load(path, home string) (*Config, error) {
	cfg := Defaults(home)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, proposaerrors.NewParseError(path, 0, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, proposaerrors.NewParseError(path, extractLine(err), err)
		}
	}

	cfg.Workspace = ExpandHome(cfg.Workspace, home)
	cfg.Currency = strings.ToUpper(cfg.Currency)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings.
func Validate(cfg *Config) error {
	if cfg == nil {
		return proposaerrors.NewValidationError("config", "configuration is nil", nil)
	}
	return validation.Struct(cfg)
}

// Save writes cfg to path, creating the directory.
func Save(path string, cfg Config) error {
	if err := Validate(&cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExpandHome replaces a leading ~ with home.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
