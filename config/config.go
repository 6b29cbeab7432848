package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spiffcs/faceless/internal/constants"
	"gopkg.in/yaml.v3"
)

// Action input names, as declared in action.yml.
const (
	InputToken        = "repo-token"
	InputLabel        = "label"
	InputClose        = "close"
	InputCloseComment = "closeComment"
	InputDryRun       = "dry-run"
)

// Config represents the triage configuration
type Config struct {
	Label        string `yaml:"label,omitempty" json:"label,omitempty"`
	Close        bool   `yaml:"close" json:"close"`
	CloseComment string `yaml:"close_comment,omitempty" json:"close_comment,omitempty"`
	DryRun       bool   `yaml:"dry_run,omitempty" json:"dry_run,omitempty"`
}

// InputGetter reads a named action input. *githubactions.Action satisfies it.
type InputGetter interface {
	GetInput(name string) string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Label:        constants.DefaultLabel,
		Close:        false,
		CloseComment: constants.DefaultCloseComment,
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	// #nosec G304 -- config file path is provided via command line flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return mergeConfig(cfg, &fileCfg), nil
}

// mergeConfig merges override on top of base. Empty strings keep the base
// value.
func mergeConfig(base, override *Config) *Config {
	result := *base

	if override.Label != "" {
		result.Label = override.Label
	}
	if override.CloseComment != "" {
		result.CloseComment = override.CloseComment
	}
	result.Close = override.Close
	result.DryRun = override.DryRun

	return &result
}

// ApplyInputs overlays the action inputs that were provided. Unset inputs
// keep the current value; close and dry-run are enabled only by "true".
func (c *Config) ApplyInputs(in InputGetter) {
	if v := in.GetInput(InputLabel); v != "" {
		c.Label = v
	}
	if v := in.GetInput(InputClose); v != "" {
		c.Close = v == "true"
	}
	if v := in.GetInput(InputCloseComment); v != "" {
		c.CloseComment = v
	}
	if v := in.GetInput(InputDryRun); v != "" {
		c.DryRun = v == "true"
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("label must not be empty")
	}
	if c.Close && strings.TrimSpace(c.CloseComment) == "" {
		return fmt.Errorf("closeComment must not be empty when close is enabled")
	}
	return nil
}

// ToYAML returns the config as a YAML string.
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// GitHubToken returns the repo-token input, falling back to GITHUB_TOKEN.
func GitHubToken(in InputGetter, getenv func(string) string) string {
	if token := in.GetInput(InputToken); token != "" {
		return token
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv("GITHUB_TOKEN")
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. It lets a triage run
// be reproduced locally with the INPUT_* and GITHUB_* variables a runner
// would provide.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
