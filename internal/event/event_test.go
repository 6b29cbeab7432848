package event

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const issueOpened = `{
  "action": "opened",
  "issue": {"number": 42, "title": "it broke", "user": {"login": "bob"}},
  "repository": {"name": "widgets", "full_name": "acme/widgets", "owner": {"login": "acme"}},
  "sender": {"login": "bob"}
}`

func TestParse(t *testing.T) {
	got, err := Parse([]byte(issueOpened))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := TriggerEvent{Owner: "acme", Repo: "widgets", IssueNumber: 42, Sender: "bob"}
	if got != want {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
	if got.FullName() != "acme/widgets" {
		t.Errorf("FullName() = %q, want acme/widgets", got.FullName())
	}
}

func TestParse_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		missing []string
	}{
		{
			name:    "no issue",
			payload: `{"repository": {"name": "widgets", "owner": {"login": "acme"}}, "sender": {"login": "bob"}}`,
			missing: []string{"issue.number"},
		},
		{
			name:    "no repository",
			payload: `{"issue": {"number": 1}, "sender": {"login": "bob"}}`,
			missing: []string{"repository.owner.login", "repository.name"},
		},
		{
			name:    "no sender",
			payload: `{"issue": {"number": 1}, "repository": {"name": "widgets", "owner": {"login": "acme"}}}`,
			missing: []string{"sender.login"},
		},
		{
			name:    "empty object",
			payload: `{}`,
			missing: []string{"repository.owner.login", "repository.name", "issue.number", "sender.login"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.payload))
			if !errors.Is(err, ErrInvalidEvent) {
				t.Fatalf("Parse() error = %v, want ErrInvalidEvent", err)
			}
			for _, field := range tt.missing {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("error %q does not mention %s", err, field)
				}
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("{not json")); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("Parse() error = %v, want ErrInvalidEvent", err)
	}
}

func TestFromIssuesEvent_Nil(t *testing.T) {
	if _, err := FromIssuesEvent(nil); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("FromIssuesEvent(nil) error = %v, want ErrInvalidEvent", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "event.json")
	if err := os.WriteFile(path, []byte(issueOpened), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.IssueNumber != 42 {
		t.Errorf("IssueNumber = %d, want 42", got.IssueNumber)
	}

	if _, err := Load(""); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("Load(\"\") error = %v, want ErrInvalidEvent", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("Load(missing) error = %v, want ErrInvalidEvent", err)
	}
}

func TestValidate_NegativeIssueNumber(t *testing.T) {
	ev := TriggerEvent{Owner: "acme", Repo: "widgets", IssueNumber: -1, Sender: "bob"}
	if err := ev.Validate(); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("Validate() error = %v, want ErrInvalidEvent", err)
	}
}
