package triage

import "fmt"

// Outcome describes how a triage run ended.
type Outcome string

const (
	// OutcomeCollaborator means the author is a collaborator and was skipped.
	OutcomeCollaborator Outcome = "collaborator"

	// OutcomeCustomAvatar means the author has uploaded a picture.
	OutcomeCustomAvatar Outcome = "custom-avatar"

	// OutcomeLabeled means the issue was labeled and left open.
	OutcomeLabeled Outcome = "labeled"

	// OutcomeClosed means the issue was labeled, closed and commented on.
	OutcomeClosed Outcome = "closed"
)

// Result records what a triage run did.
type Result struct {
	Outcome   Outcome
	Faceless  bool   // author shows the default identicon
	Label     string // label applied, empty when skipped
	Closed    bool
	Commented bool
	DryRun    bool // mutations were logged, not performed
}

// MutationError is returned when a call that changes the issue fails.
// Mutations that succeeded before it are not undone.
type MutationError struct {
	Op  string
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// Mutation operation names.
const (
	OpAddLabels     = "add-labels"
	OpUpdateIssue   = "update-issue"
	OpCreateComment = "create-comment"
)
