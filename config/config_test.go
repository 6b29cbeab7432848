package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spiffcs/faceless/internal/constants"
)

// mapInputs is an InputGetter backed by a map.
type mapInputs map[string]string

func (m mapInputs) GetInput(name string) string {
	return m[name]
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Label != "faceless" {
		t.Errorf("Label = %q, want faceless", cfg.Label)
	}
	if cfg.Close {
		t.Error("Close = true, want false")
	}
	if cfg.CloseComment != constants.DefaultCloseComment {
		t.Errorf("CloseComment = %q, want default comment", cfg.CloseComment)
	}
	if !strings.Contains(cfg.CloseComment, "faceless") {
		t.Errorf("default comment should name the tool: %q", cfg.CloseComment)
	}
	if cfg.DryRun {
		t.Error("DryRun = true, want false")
	}
}

func TestApplyInputs(t *testing.T) {
	tests := []struct {
		name   string
		inputs mapInputs
		want   Config
	}{
		{
			name:   "no inputs keeps defaults",
			inputs: mapInputs{},
			want:   Config{Label: "faceless", CloseComment: constants.DefaultCloseComment},
		},
		{
			name:   "explicit defaults",
			inputs: mapInputs{"label": "faceless", "close": "false"},
			want:   Config{Label: "faceless", CloseComment: constants.DefaultCloseComment},
		},
		{
			name:   "close with custom comment",
			inputs: mapInputs{"close": "true", "closeComment": "custom"},
			want:   Config{Label: "faceless", Close: true, CloseComment: "custom"},
		},
		{
			name:   "close only accepts true",
			inputs: mapInputs{"close": "yes"},
			want:   Config{Label: "faceless", CloseComment: constants.DefaultCloseComment},
		},
		{
			name:   "custom label and dry run",
			inputs: mapInputs{"label": "needs-avatar", "dry-run": "true"},
			want:   Config{Label: "needs-avatar", CloseComment: constants.DefaultCloseComment, DryRun: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.ApplyInputs(tt.inputs)
			if *cfg != tt.want {
				t.Errorf("ApplyInputs() = %+v, want %+v", *cfg, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if *cfg != *DefaultConfig() {
			t.Errorf("Load(\"\") = %+v, want defaults", *cfg)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faceless.yaml")
		content := "label: no-avatar\nclose: true\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Label != "no-avatar" {
			t.Errorf("Label = %q, want no-avatar", cfg.Label)
		}
		if !cfg.Close {
			t.Error("Close = false, want true")
		}
		if cfg.CloseComment != constants.DefaultCloseComment {
			t.Errorf("CloseComment should keep the default, got %q", cfg.CloseComment)
		}
	})

	t.Run("inputs override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "faceless.yaml")
		if err := os.WriteFile(path, []byte("close: true\n"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		cfg.ApplyInputs(mapInputs{"close": "false"})
		if cfg.Close {
			t.Error("Close = true, want input to disable it")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("label: [unterminated"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", *DefaultConfig(), false},
		{"empty label", Config{Label: " "}, true},
		{"close without comment", Config{Label: "x", Close: true}, true},
		{"comment unused when not closing", Config{Label: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToYAML(t *testing.T) {
	out, err := DefaultConfig().ToYAML()
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}
	for _, want := range []string{"label: faceless", "close: false", "close_comment:"} {
		if !strings.Contains(out, want) {
			t.Errorf("ToYAML() missing %q:\n%s", want, out)
		}
	}
}

func TestGitHubToken(t *testing.T) {
	env := map[string]string{"GITHUB_TOKEN": "from-env"}
	getenv := func(k string) string { return env[k] }

	tests := []struct {
		name   string
		inputs mapInputs
		getenv func(string) string
		want   string
	}{
		{"input wins", mapInputs{"repo-token": "from-input"}, getenv, "from-input"},
		{"env fallback", mapInputs{}, getenv, "from-env"},
		{"neither", mapInputs{}, func(string) string { return "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GitHubToken(tt.inputs, tt.getenv); got != tt.want {
				t.Errorf("GitHubToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(""); err != nil {
		t.Errorf("LoadEnvFile(\"\") error = %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("INPUT_LABEL=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("INPUT_LABEL", "")
	os.Unsetenv("INPUT_LABEL")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("INPUT_LABEL"); got != "from-dotenv" {
		t.Errorf("INPUT_LABEL = %q, want from-dotenv", got)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing env file")
	}
}
