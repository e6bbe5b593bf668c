package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelGating(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: HumanFormat, Level: WarnLevel, Output: &buf})

	logger.Debug("d", nil)
	logger.Info("i", nil)
	logger.Warn("w", nil)
	logger.Error("e", nil)

	out := buf.String()
	if strings.Contains(out, "[debug]") || strings.Contains(out, "[info]") {
		t.Errorf("suppressed levels leaked:\n%s", out)
	}
	if !strings.Contains(out, "[warn]") || !strings.Contains(out, "[error]") {
		t.Errorf("enabled levels missing:\n%s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: JSONFormat, Level: DebugLevel, Output: &buf})

	logger.Info("analysis complete", map[string]interface{}{
		"repo":  "billing-service",
		"tasks": 7,
	})

	var entry struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry.Level != "info" || entry.Message != "analysis complete" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Fields["repo"] != "billing-service" {
		t.Errorf("fields not carried: %+v", entry.Fields)
	}
}

func TestHumanFormatSortsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Format: HumanFormat, Level: InfoLevel, Output: &buf})

	logger.Info("msg", map[string]interface{}{
		"zebra": 1,
		"alpha": 2,
	})

	out := buf.String()
	if strings.Index(out, "alpha=") > strings.Index(out, "zebra=") {
		t.Errorf("fields not sorted:\n%s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{"warn", WarnLevel},
		{"", InfoLevel},
		{"verbose", InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
