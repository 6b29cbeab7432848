package cmd

import (
	"os"

	"github.com/spiffcs/faceless/internal/constants"
)

// Options holds the shared command-line options for the faceless CLI.
type Options struct {
	Verbosity  int
	ConfigPath string // Optional YAML file layered under the action inputs
	EventPath  string // Overrides GITHUB_EVENT_PATH
	EnvFile    string // Loaded into the environment before anything else
	DryRun     bool

	// Image locations, templated on the login
	AvatarURLTemplate    string
	IdenticonURLTemplate string

	getenv func(string) string
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		AvatarURLTemplate:    constants.AvatarURLTemplate,
		IdenticonURLTemplate: constants.IdenticonURLTemplate,
		getenv:               os.Getenv,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithConfigPath sets the YAML config file to load.
func WithConfigPath(path string) Option {
	return func(o *Options) {
		o.ConfigPath = path
	}
}

// WithEventPath sets the event payload file, overriding GITHUB_EVENT_PATH.
func WithEventPath(path string) Option {
	return func(o *Options) {
		o.EventPath = path
	}
}

// WithDryRun logs mutations instead of performing them.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithURLTemplates sets the avatar and identicon URL templates.
func WithURLTemplates(avatar, identicon string) Option {
	return func(o *Options) {
		o.AvatarURLTemplate = avatar
		o.IdenticonURLTemplate = identicon
	}
}

// WithGetenv replaces the environment lookup used for action inputs and
// runner variables.
func WithGetenv(getenv func(string) string) Option {
	return func(o *Options) {
		o.getenv = getenv
	}
}
