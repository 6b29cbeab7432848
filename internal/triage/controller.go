// Package triage labels and optionally closes issues opened by accounts that
// still show their default avatar.
package triage

import (
	"context"
	"fmt"

	"github.com/spiffcs/faceless/config"
	"github.com/spiffcs/faceless/internal/event"
	"github.com/spiffcs/faceless/internal/ghclient"
	"github.com/spiffcs/faceless/internal/log"
)

// AvatarDetector reports whether an account shows its default avatar.
type AvatarDetector interface {
	IsDefaultAvatar(ctx context.Context, username string) (bool, error)
}

// Controller runs the triage for a single issue.
type Controller struct {
	repo     ghclient.IssueTriager
	detector AvatarDetector
	cfg      config.Config
}

// NewController creates a Controller. cfg is copied; later changes to it
// have no effect.
func NewController(repo ghclient.IssueTriager, detector AvatarDetector, cfg *config.Config) *Controller {
	return &Controller{
		repo:     repo,
		detector: detector,
		cfg:      *cfg,
	}
}

// Run triages the issue identified by ev. Collaborators are never touched.
// Any failure ends the run; mutations already made are kept.
func (c *Controller) Run(ctx context.Context, ev event.TriggerEvent) (Result, error) {
	if err := ev.Validate(); err != nil {
		return Result{}, err
	}

	log.Info("triggered for issue", "repo", ev.FullName(), "issue", ev.IssueNumber, "author", ev.Sender)

	isCollaborator, err := c.repo.IsCollaborator(ctx, ev.Owner, ev.Repo, ev.Sender)
	if err != nil {
		return Result{}, err
	}
	if isCollaborator {
		log.Info("user is a repository collaborator", "user", ev.Sender)
		return Result{Outcome: OutcomeCollaborator}, nil
	}

	faceless, err := c.detector.IsDefaultAvatar(ctx, ev.Sender)
	if err != nil {
		return Result{}, fmt.Errorf("failed to detect default avatar for %s: %w", ev.Sender, err)
	}
	if !faceless {
		log.Info("user does not have a default profile image", "user", ev.Sender)
		return Result{Outcome: OutcomeCustomAvatar}, nil
	}

	result := Result{
		Outcome:  OutcomeLabeled,
		Faceless: true,
		Label:    c.cfg.Label,
		DryRun:   c.cfg.DryRun,
	}

	log.Info("labeling issue", "issue", ev.IssueNumber, "label", c.cfg.Label, "dry_run", c.cfg.DryRun)
	if !c.cfg.DryRun {
		if err := c.repo.AddLabels(ctx, ev.Owner, ev.Repo, ev.IssueNumber, []string{c.cfg.Label}); err != nil {
			return result, &MutationError{Op: OpAddLabels, Err: err}
		}
	}

	if !c.cfg.Close {
		return result, nil
	}

	// Closing and commenting are two separate calls. If the comment fails
	// the issue stays closed without an explanation.
	log.Info("closing issue", "issue", ev.IssueNumber, "dry_run", c.cfg.DryRun)
	if !c.cfg.DryRun {
		if err := c.repo.CloseIssue(ctx, ev.Owner, ev.Repo, ev.IssueNumber); err != nil {
			return result, &MutationError{Op: OpUpdateIssue, Err: err}
		}
	}
	result.Closed = true
	result.Outcome = OutcomeClosed

	if !c.cfg.DryRun {
		if err := c.repo.CreateComment(ctx, ev.Owner, ev.Repo, ev.IssueNumber, c.cfg.CloseComment); err != nil {
			return result, &MutationError{Op: OpCreateComment, Err: err}
		}
	}
	result.Commented = true

	return result, nil
}
