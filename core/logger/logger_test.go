package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestBareErrorIsKeyed(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "json", "debug")
	defer Init("text", "info")

	Error("Repo:Create", errors.New("boom"))

	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Fatalf("expected error attribute, got %s", buf.String())
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "text", "warn")
	defer Init("text", "info")

	Info("hidden")
	Warn("shown", "code", "mtg_1")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "code=mtg_1") {
		t.Fatalf("unexpected output %s", out)
	}
}
