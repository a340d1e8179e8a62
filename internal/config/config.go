package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/matheus3301/catchup/internal/paths"
)

// EnvAPIKey is the environment variable holding the Gemini API credential.
const EnvAPIKey = "GEMINI_API_KEY"

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Limit bounds for the message-count selector.
const (
	MinLimit     = 10
	MaxLimit     = 500
	DefaultLimit = 150
)

// Config represents the global ~/.catchup/config.toml.
type Config struct {
	Model        string `toml:"model"`
	ChatDBPath   string `toml:"chat_db_path"`
	DefaultLimit int    `toml:"default_limit"`
}

// Default returns a config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Model:        DefaultModel,
		ChatDBPath:   paths.DefaultChatDBPath(),
		DefaultLimit: DefaultLimit,
	}
}

// Load reads config from the given path. Returns zero config and error if file missing.
func Load(path string) (*Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// LoadOrDefault reads config from the given path, falling back to defaults
// when the file does not exist. Any other read error is returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// ClampLimit bounds a message-count selection to [MinLimit, MaxLimit].
func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// APIKey returns the Gemini credential from the environment, or empty.
func APIKey() string {
	return os.Getenv(EnvAPIKey)
}

func (c *Config) fillDefaults() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.ChatDBPath == "" {
		c.ChatDBPath = paths.DefaultChatDBPath()
	}
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = DefaultLimit
	}
}
