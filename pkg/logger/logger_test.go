package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_ServiceAndComponentFields(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf, Service: "inventory-api"})
	authLog := Component("auth")
	authLog.Info().Msg("user logged in")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "inventory-api" || entry["component"] != "auth" {
		t.Fatalf("missing fields: %v", entry)
	}
	if entry["message"] != "user logged in" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	got := Get()
	got.Info().Msg("hello")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("second Init must be ignored: first=%q second=%q", first.String(), second.String())
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		" warn ":   zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.InfoLevel,
		"verbose":  zerolog.InfoLevel,
		"fatal":    zerolog.FatalLevel,
		"disabled": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
