package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSolverTimeout = 60 * time.Second
	DefaultDateRule      = "FREQ=DAILY"
	DateLayout           = "2006-01-02"
)

// Config represents the application configuration
type Config struct {
	SolverTimeout    time.Duration `yaml:"solverTimeout,omitempty" validate:"min=1s"`
	RotationStart    string        `yaml:"rotationStart,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateRule         string        `yaml:"dateRule,omitempty"`
	DatabaseURL      string        `yaml:"databaseURL,omitempty"`
	RotaSheetID      string        `yaml:"rotaSheetID,omitempty"`
	GmailUserID      string        `yaml:"gmailUserID,omitempty"`
	GmailSender      string        `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	NotifyRecipients []string      `yaml:"notifyRecipients,omitempty" validate:"omitempty,dive,email"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from rota_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "rota_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findFile(envFileName("rota_config", "yaml", env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.SolverTimeout == 0 {
		c.SolverTimeout = DefaultSolverTimeout
	}
	if c.DateRule == "" {
		c.DateRule = DefaultDateRule
	}
	if c.GmailUserID == "" {
		c.GmailUserID = "me"
	}
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.DateRule != "" {
		if _, err := rrule.StrToRRule(cfg.DateRule); err != nil {
			return fmt.Errorf("invalid rrule in dateRule: %w", err)
		}
	}

	return nil
}

// StartDate parses RotationStart, returning false when it is unset
func (c *Config) StartDate() (time.Time, bool, error) {
	if c.RotationStart == "" {
		return time.Time{}, false, nil
	}
	start, err := time.Parse(DateLayout, c.RotationStart)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid rotationStart: %w", err)
	}
	return start, true, nil
}

// envFileName inserts env before the extension, e.g. rota_config.test.yaml
func envFileName(base, ext, env string) string {
	if env == "" {
		return base + "." + ext
	}
	return base + "." + env + "." + ext
}

// findFile searches for name in the current directory, then the home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
