package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriter_JSONFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, WarnLevel, JSONEncoding)

	log.Infow("dropped", "k", 1)
	log.Warnw("kept", "asset", "BTC")
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line at warn level, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["msg"] != "kept" || entry["asset"] != "BTC" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestWith_CarriesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, DebugLevel, JSONEncoding).With("request_id", "abc")
	log.Debugw("x")
	_ = log.Sync()

	if !strings.Contains(buf.String(), `"request_id":"abc"`) {
		t.Fatalf("missing request_id in %q", buf.String())
	}
}

func TestToZapLevel_UnknownFallsBackToInfo(t *testing.T) {
	if got := toZapLevel("loud"); got != defaultZapLevel {
		t.Fatalf("got %v", got)
	}
}
