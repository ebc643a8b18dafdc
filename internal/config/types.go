package config

import (
	"path/filepath"
	"strings"
)

// Config is the user's proposa settings file.
type Config struct {
	Workspace string        `yaml:"workspace" validate:"required"`
	Locale    string        `yaml:"locale" validate:"required,locale"`
	Currency  string        `yaml:"currency" validate:"required,iso4217"`
	Log       LogSettings   `yaml:"log"`
	Server    ServerConfig  `yaml:"server"`
	Assist    AssistConfig  `yaml:"assist"`
	Library   LibraryConfig `yaml:"library"`
}

// LogSettings configures the zerolog backed logger.
type LogSettings struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Human bool   `yaml:"human"`
}

// ServerConfig configures the public share server.
type ServerConfig struct {
	Addr    string `yaml:"addr" validate:"required,hostname_port"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	Watch   bool   `yaml:"watch"`
}

// AssistConfig configures the text generation backend. The key itself is
// read from the environment variable named by APIKeyEnv.
type AssistConfig struct {
	BaseURL     string  `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Model       string  `yaml:"model,omitempty"`
	APIKeyEnv   string  `yaml:"api_key_env" validate:"required"`
	Temperature float32 `yaml:"temperature,omitempty" validate:"min=0,max=2"`
}

// LibraryConfig names the default template library repository.
type LibraryConfig struct {
	URL string `yaml:"url,omitempty" validate:"omitempty,git_url"`
	Ref string `yaml:"ref,omitempty"`
}

// Defaults returns the configuration used when no file exists. home is the
// user's home directory.
func Defaults(home string) Config {
	return Config{
		Workspace: filepath.Join(home, ".proposa", "workspace.yaml"),
		Locale:    "en",
		Currency:  "USD",
		Log:       LogSettings{Level: "info", Human: true},
		Server:    ServerConfig{Addr: "127.0.0.1:8080", Watch: true},
		Assist:    AssistConfig{APIKeyEnv: "OPENAI_API_KEY"},
	}
}

// PublicURL returns the share URL for token.
func (c Config) PublicURL(token string) string {
	base := strings.TrimRight(c.Server.BaseURL, "/")
	if base == "" {
		base = "http://" + c.Server.Addr
	}
	return base + "/p/" + token
}
