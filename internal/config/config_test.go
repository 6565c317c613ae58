package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/meltforce/gpacalc/internal/grade"
	"github.com/meltforce/gpacalc/internal/models"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 9090
auth:
  api_key: "test-key-123"
roster:
  default_credits: 4
  default_grade: "B+"
  view: "cgpa"
log:
  level: "debug"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}

	d, err := cfg.RosterDefaults()
	if err != nil {
		t.Fatalf("RosterDefaults: %v", err)
	}
	if d.Credits != 4 || d.Grade != grade.BPlus || d.View != models.ViewCumulative {
		t.Errorf("roster defaults = %+v, want 4/B+/cgpa", d)
	}

	lvl, err := cfg.LogLevel()
	if err != nil {
		t.Fatalf("LogLevel: %v", err)
	}
	if lvl != slog.LevelDebug {
		t.Errorf("log level = %v, want debug", lvl)
	}
}

// TestLoadNoFile verifies that an empty path yields the built-in defaults.
func TestLoadNoFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr() != "127.0.0.1:8080" {
		t.Errorf("addr = %q, want 127.0.0.1:8080", cfg.Server.Addr())
	}
	d, err := cfg.RosterDefaults()
	if err != nil {
		t.Fatalf("RosterDefaults: %v", err)
	}
	if d.Credits != 3 || d.Grade != grade.A || d.View != models.ViewSemester {
		t.Errorf("roster defaults = %+v, want 3/A/gpa", d)
	}
}

// TestPartialFileKeepsDefaults verifies omitted sections keep default values.
func TestPartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeTemp(t, "server:\n  port: 7000\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("server.port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want default", cfg.Server.Host)
	}
	if cfg.Roster.DefaultGrade != "A" {
		t.Errorf("roster.default_grade = %q, want A", cfg.Roster.DefaultGrade)
	}
}

// TestEnvOverride verifies that GPACALC_ env vars take precedence over YAML values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("GPACALC_SERVER_PORT", "9999")
	t.Setenv("GPACALC_AUTH_API_KEY", "env-key")
	t.Setenv("GPACALC_DEFAULT_GRADE", "c")
	t.Setenv("GPACALC_TAILSCALE_ENABLED", "true")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
	if !cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = false, want true")
	}
	d, _ := cfg.RosterDefaults()
	if d.Grade != grade.C {
		t.Errorf("default grade = %q, want C", d.Grade)
	}
	// Unchanged fields should keep YAML values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
}

func TestValidation(t *testing.T) {
	cases := map[string]string{
		"bad port":      "server:\n  port: 70000\n",
		"bad credits":   "roster:\n  default_credits: 9\n",
		"bad grade":     "roster:\n  default_grade: \"Z\"\n",
		"bad view":      "roster:\n  view: \"table\"\n",
		"bad log level": "log:\n  level: \"loud\"\n",
		"no ts host":    "tailscale:\n  enabled: true\n  hostname: \"\"\n",
	}
	for name, y := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, y)); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load(writeTemp(t, "server: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
