// Package event builds the trigger for a triage run from a GitHub Actions
// event payload.
package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	gh "github.com/google/go-github/v57/github"
)

// ErrInvalidEvent is returned when the payload is missing or lacks a field
// needed to identify the issue and its author.
var ErrInvalidEvent = errors.New("invalid trigger event")

// TriggerEvent identifies the issue to triage and the account that opened it.
type TriggerEvent struct {
	Owner       string `validate:"required"`
	Repo        string `validate:"required"`
	IssueNumber int    `validate:"required,gt=0"`
	Sender      string `validate:"required"`
}

// FullName returns owner/repo.
func (e TriggerEvent) FullName() string {
	return e.Owner + "/" + e.Repo
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks that every identifying field is present.
func (e TriggerEvent) Validate() error {
	err := validatorInstance().Struct(e)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fieldName(fe.Field()))
	}
	return fmt.Errorf("%w: missing %s", ErrInvalidEvent, strings.Join(missing, ", "))
}

// fieldName maps struct fields to the payload paths they are read from.
func fieldName(field string) string {
	switch field {
	case "Owner":
		return "repository.owner.login"
	case "Repo":
		return "repository.name"
	case "IssueNumber":
		return "issue.number"
	case "Sender":
		return "sender.login"
	default:
		return field
	}
}

// FromIssuesEvent extracts a TriggerEvent from a decoded issues payload.
func FromIssuesEvent(ev *gh.IssuesEvent) (TriggerEvent, error) {
	if ev == nil {
		return TriggerEvent{}, fmt.Errorf("%w: empty payload", ErrInvalidEvent)
	}

	te := TriggerEvent{
		Owner:       ev.GetRepo().GetOwner().GetLogin(),
		Repo:        ev.GetRepo().GetName(),
		IssueNumber: ev.GetIssue().GetNumber(),
		Sender:      ev.GetSender().GetLogin(),
	}
	if err := te.Validate(); err != nil {
		return TriggerEvent{}, err
	}
	return te, nil
}

// Parse decodes an issues event payload.
func Parse(data []byte) (TriggerEvent, error) {
	var ev gh.IssuesEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return TriggerEvent{}, fmt.Errorf("%w: failed to parse payload: %w", ErrInvalidEvent, err)
	}
	return FromIssuesEvent(&ev)
}

// Load reads and decodes the payload at path, normally GITHUB_EVENT_PATH.
func Load(path string) (TriggerEvent, error) {
	if path == "" {
		return TriggerEvent{}, fmt.Errorf("%w: no event payload path (is GITHUB_EVENT_PATH set?)", ErrInvalidEvent)
	}

	// #nosec G304 -- path comes from the runner or an explicit flag
	data, err := os.ReadFile(path)
	if err != nil {
		return TriggerEvent{}, fmt.Errorf("%w: failed to read payload: %w", ErrInvalidEvent, err)
	}
	return Parse(data)
}
