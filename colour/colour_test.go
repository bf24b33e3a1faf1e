package colour

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestWrap_AppliesAttributes(t *testing.T) {
	got := Wrap("alert", color.FgRed)

	if !strings.Contains(got, "alert") {
		t.Fatalf("Wrap() = %q, text missing", got)
	}
	if !strings.HasPrefix(got, "\x1b[31m") {
		t.Errorf("Wrap() = %q, want a red escape prefix", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("Wrap() = %q, want a reset suffix", got)
	}
}

func TestWrap_NoAttributes(t *testing.T) {
	if got := Wrap("plain"); got != "plain" {
		t.Errorf("Wrap() = %q, want unchanged text", got)
	}
}

func TestWrap_WholeStringIncludingNewline(t *testing.T) {
	got := Wrap("line\n", color.FgGreen)
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("Wrap() = %q, want the reset after the newline", got)
	}
	if !strings.Contains(got, "line\n") {
		t.Errorf("Wrap() = %q, want the newline preserved", got)
	}
}

func TestTerminal_NonFileWriter(t *testing.T) {
	if Terminal(&bytes.Buffer{}) {
		t.Error("Terminal(bytes.Buffer) = true, want false")
	}
	if Terminal(nil) {
		t.Error("Terminal(nil) = true, want false")
	}
}
