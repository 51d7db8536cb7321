package siwe

import (
	"strings"
	"testing"
	"time"
)

func TestExtractNonce(t *testing.T) {
	cases := map[string]struct {
		message string
		want    string
	}{
		"plain line":          {"Nonce: abc123", "abc123"},
		"mid message":         {"sign in\nNonce: xyz789\nIssued At: now", "xyz789"},
		"leading whitespace":  {"  \tNonce: abc123", "abc123"},
		"trailing whitespace": {"Nonce: abc123  \t", "abc123"},
		"no nonce line":       {"sign in please", ""},
		"empty message":       {"", ""},
		"nonce not own line":  {"the Nonce: abc123 is embedded", ""},
		"empty nonce value":   {"Nonce: ", ""},
		"alphanumeric only":   {"Nonce: abc-123", ""},
	}

	for name, tc := range cases {
		if got := ExtractNonce(tc.message); got != tc.want {
			t.Fatalf("%s: ExtractNonce(%q) = %q, want %q", name, tc.message, got, tc.want)
		}
	}
}

func TestExtractNonce_FirstLineWins(t *testing.T) {
	message := "Nonce: first111\nNonce: second222"
	if got := ExtractNonce(message); got != "first111" {
		t.Fatalf("expected first nonce, got %q", got)
	}
}

func TestBuildMessage_RoundTripsNonce(t *testing.T) {
	message := BuildMessage(
		"markets.example.com",
		"0x1111111111111111111111111111111111111111",
		"abc123",
		time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	)

	if got := ExtractNonce(message); got != "abc123" {
		t.Fatalf("built message does not round-trip its nonce: got %q", got)
	}
	if !strings.Contains(message, "markets.example.com wants you to sign in") {
		t.Fatalf("unexpected message preamble: %q", message)
	}
	if !strings.Contains(message, "Issued At: 2026-01-02T03:04:05Z") {
		t.Fatalf("expected RFC3339 issued-at, got %q", message)
	}
}
