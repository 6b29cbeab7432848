// Package ghclient provides GitHub API client functionality.
package ghclient

import "context"

// IssueTriager defines the repository operations needed to triage an issue.
// Each method makes a single API call and never retries.
type IssueTriager interface {
	IsCollaborator(ctx context.Context, owner, repo, username string) (bool, error)
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	CloseIssue(ctx context.Context, owner, repo string, number int) error
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
}

// Ensure Client implements IssueTriager interface.
var _ IssueTriager = (*Client)(nil)
