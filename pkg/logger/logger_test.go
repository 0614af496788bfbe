package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_JSONOutput(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf, Service: "marketplace"})

	log.Info().Msg("dropped")
	log.Warn().Str("user_id", "usr_1").Msg("kept")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a single JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "kept" || entry["service"] != "marketplace" || entry["user_id"] != "usr_1" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	l := Get()
	l.Info().Msg("hello")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output on the first writer only")
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOptionsFor(t *testing.T) {
	if OptionsFor("production", "info", "svc").Pretty {
		t.Fatalf("expected JSON output in production")
	}
	if !OptionsFor("development", "info", "svc").Pretty {
		t.Fatalf("expected console output in development")
	}
}
