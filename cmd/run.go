package cmd

import (
	"fmt"
	"strconv"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"
	"github.com/spiffcs/faceless/config"
	"github.com/spiffcs/faceless/internal/avatar"
	"github.com/spiffcs/faceless/internal/event"
	"github.com/spiffcs/faceless/internal/ghclient"
	"github.com/spiffcs/faceless/internal/log"
	"github.com/spiffcs/faceless/internal/triage"
)

// Action output names.
const (
	outputFaceless = "faceless"
	outputOutcome  = "outcome"
)

func newAction(cmd *cobra.Command, opts *Options) *githubactions.Action {
	return githubactions.New(
		githubactions.WithWriter(cmd.OutOrStdout()),
		githubactions.WithGetenv(opts.getenv),
	)
}

// runTriage performs one triage run for the event the runner provides.
// Failures are reported as an error annotation and returned.
func runTriage(cmd *cobra.Command, opts *Options) error {
	action := newAction(cmd, opts)

	if err := triageIssue(cmd, opts, action); err != nil {
		log.Error("triage failed", "error", err)
		action.Errorf("%s", err)
		return err
	}
	return nil
}

func triageIssue(cmd *cobra.Command, opts *Options, action *githubactions.Action) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(opts, action)
	if err != nil {
		return err
	}

	// The payload is read once, by the event package, so a malformed file
	// is reported as an invalid event.
	eventPath := opts.EventPath
	if eventPath == "" {
		eventPath = opts.getenv("GITHUB_EVENT_PATH")
	}
	ev, err := event.Load(eventPath)
	if err != nil {
		return err
	}

	var clientOpts []ghclient.ClientOption
	if apiURL := opts.getenv("GITHUB_API_URL"); apiURL != "" {
		clientOpts = append(clientOpts, ghclient.WithBaseURL(apiURL))
	}
	client, err := ghclient.NewClient(ctx, config.GitHubToken(action, opts.getenv), clientOpts...)
	if err != nil {
		return err
	}

	detector := avatar.NewDetector(
		avatar.NewHasher(avatar.WithUserAgent(userAgent())),
		avatar.WithURLTemplates(opts.AvatarURLTemplate, opts.IdenticonURLTemplate),
	)

	result, err := triage.NewController(client, detector, cfg).Run(ctx, ev)
	if err != nil {
		return err
	}

	log.Info("triage complete",
		"issue", ev.IssueNumber,
		"outcome", result.Outcome,
		"dry_run", result.DryRun,
		"rate_limit_remaining", client.RateLimitRemaining())

	action.SetOutput(outputFaceless, strconv.FormatBool(result.Faceless))
	action.SetOutput(outputOutcome, string(result.Outcome))
	return nil
}

// loadConfig layers defaults, the optional config file, action inputs and
// command-line flags, in that order.
func loadConfig(opts *Options, inputs config.InputGetter) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyInputs(inputs)
	if opts.DryRun {
		cfg.DryRun = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
