package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"DEBUG", LevelDebug},
		{"Warning", LevelWarn},
		{"eRrOr", LevelError},

		// Empty and unrecognized default to Info
		{"", LevelInfo},
		{"trace", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"Json", FormatJSON},
		{"text", FormatText},
		{"", FormatText},
		{"xml", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "view", "honor")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "shown" || entry["view"] != "honor" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestOpen_TeesToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "roster.log")

	logger, closeLog, err := Open(Config{Level: LevelDebug, Output: &buf}, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	logger.With("component", "client").Debug("request", "status", 200)
	if err := closeLog(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for name, out := range map[string]string{"writer": buf.String(), "file": string(data)} {
		if !strings.Contains(out, "component=client") || !strings.Contains(out, "status=200") {
			t.Errorf("%s output missing attributes: %q", name, out)
		}
	}
}

func TestOpen_DiscardsWithoutOutputs(t *testing.T) {
	logger, closeLog, err := Open(Config{}, "")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = closeLog() }()

	if logger.Enabled(t.Context(), LevelError) {
		t.Error("logger without outputs should be disabled")
	}
}

func TestOpen_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Open(Config{}, filepath.Join(blocker, "roster.log")); err == nil {
		t.Error("Open() expected error for a path under a regular file")
	}
}
