package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points the user config dir at an empty temp dir and clears env.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, k := range []string{"TASKS_THEME", "TASKS_LOG_FILE", "TASKS_LOG_LEVEL", "TASKS_ALT_SCREEN", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("Load() = %+v, want %+v", cfg, Defaults())
	}
}

func TestLoad_Layering(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "tasks", "config.toml"), "theme = \"neon\"\nlog_level = \"debug\"\n")
	explicit := filepath.Join(dir, "other.toml")
	writeFile(t, explicit, "theme = \"mono\"\nalt_screen = false\n")
	t.Setenv("TASKS_LOG_LEVEL", "warn")

	cfg, err := Load(explicit)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"theme from explicit file", cfg.Theme, "mono"},
		{"log level from env", cfg.LogLevel, "warn"},
		{"alt screen from explicit file", cfg.AltScreen, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoad_NoColorEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.NoColor {
		t.Error("NoColor: got false, want true")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "nope.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	dir := isolate(t)
	p := filepath.Join(dir, "c.toml")
	writeFile(t, p, "colour = \"red\"\n")

	_, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "colour") {
		t.Fatalf("Load err = %v, want unknown key error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Defaults(), false},
		{"neon upper", Config{Theme: "NEON", LogLevel: "info"}, false},
		{"bad theme", Config{Theme: "pink", LogLevel: "info"}, true},
		{"bad level", Config{Theme: "mono", LogLevel: "loud"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	dir := isolate(t)

	if got, want := expandPath("~/logs/tasks.log"), filepath.Join(dir, "logs", "tasks.log"); got != want {
		t.Errorf("expandPath: got %q, want %q", got, want)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath: got %q, want /abs/path", got)
	}
}
