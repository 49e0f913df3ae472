package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{" DEBUG ", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"chatty", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew_TagsSessionAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, "info")

	s.Debug("hidden")
	s.Info("task added", "id", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "task added") || !strings.Contains(out, "session="+s.ID) {
		t.Fatalf("missing message or session field: %q", out)
	}
	if len(s.ID) != 8 {
		t.Fatalf("session id %q, want 8 chars", s.ID)
	}
}

func TestOpen_WritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "tasks.log")

	s, err := Open(Options{File: p, Level: "debug"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Debug("hello")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Fatalf("log file = %q, want hello", b)
	}
}

func TestOpen_NoFileDiscards(t *testing.T) {
	s, err := Open(Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Info("nowhere")
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
