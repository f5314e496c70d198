package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOptions(LogOptions{Format: "json", Output: &buf})
	logger.With("job", "abc").Printf("rendered %d items", 3)
	out := buf.String()
	if !strings.Contains(out, `"msg":"rendered 3 items"`) || !strings.Contains(out, `"job":"abc"`) {
		t.Fatalf("unexpected json log: %s", out)
	}
}

func TestLoggerLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOptions(LogOptions{Level: "error", Output: &buf})
	logger.Printf("hidden")
	logger.Debugf("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info and debug to be filtered, got %q", buf.String())
	}
	logger.Errorf("boom")
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected error record, got %q", buf.String())
	}
}

func TestLoggerConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOptions(LogOptions{Format: "console", Output: &buf})
	logger.Printf("hello console")
	if !strings.Contains(buf.String(), "hello console") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	logger.Printf("ignored")
	logger.Errorf("ignored")
	if logger.With("k", "v") != nil {
		t.Fatalf("expected nil logger to stay nil")
	}
}
