package ghclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"github.com/spiffcs/faceless/internal/constants"
	"github.com/spiffcs/faceless/internal/log"
	"golang.org/x/oauth2"
)

// ErrAuthentication is returned when no token is available or GitHub
// rejects the one provided.
var ErrAuthentication = errors.New("authentication failed")

// Client wraps the GitHub API client
type Client struct {
	client    *gh.Client
	rateLimit *rateLimitState
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL string
}

// WithBaseURL points the client at a different REST API root, such as a
// GitHub Enterprise server or a test server.
func WithBaseURL(u string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = u
	}
}

// NewClient creates a new GitHub client authenticated with token.
func NewClient(ctx context.Context, token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: repo-token not provided", ErrAuthentication)
	}

	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	state := &rateLimitState{}
	tc.Transport = &rateLimitTransport{
		base:  tc.Transport,
		state: state,
	}

	client := gh.NewClient(tc)
	if cfg.baseURL != "" {
		base := cfg.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", cfg.baseURL, err)
		}
		client.BaseURL = u
	}

	return &Client{
		client:    client,
		rateLimit: state,
	}, nil
}

// IsCollaborator reports whether username is a collaborator on owner/repo.
func (c *Client) IsCollaborator(ctx context.Context, owner, repo, username string) (bool, error) {
	log.Debug("checking collaborator", "repo", owner+"/"+repo, "user", username)
	ok, _, err := c.client.Repositories.IsCollaborator(ctx, owner, repo, username)
	if err != nil {
		return false, wrapError("check collaborator", err)
	}
	return ok, nil
}

// AddLabels adds labels to an issue. Labels already present are left alone.
func (c *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	log.Debug("adding labels", "repo", owner+"/"+repo, "issue", number, "labels", labels)
	if _, _, err := c.client.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels); err != nil {
		return wrapError("add labels", err)
	}
	return nil
}

// CloseIssue sets an issue's state to closed.
func (c *Client) CloseIssue(ctx context.Context, owner, repo string, number int) error {
	log.Debug("closing issue", "repo", owner+"/"+repo, "issue", number)
	req := &gh.IssueRequest{State: gh.String(constants.StateClosed)}
	if _, _, err := c.client.Issues.Edit(ctx, owner, repo, number, req); err != nil {
		return wrapError("update issue", err)
	}
	return nil
}

// CreateComment posts body as a comment on an issue.
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	log.Debug("creating comment", "repo", owner+"/"+repo, "issue", number)
	comment := &gh.IssueComment{Body: gh.String(body)}
	if _, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, comment); err != nil {
		return wrapError("create comment", err)
	}
	return nil
}

// RateLimitRemaining returns the core quota reported by the last response,
// or -1 before any response carried rate limit headers.
func (c *Client) RateLimitRemaining() int {
	remaining, limit, _ := c.rateLimit.Status()
	if limit <= 0 {
		return -1
	}
	return remaining
}

// wrapError annotates err with the failed operation and marks credential
// rejections with ErrAuthentication.
func wrapError(op string, err error) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("failed to %s: %w: %w", op, ErrAuthentication, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
