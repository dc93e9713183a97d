package roomcode

import (
	"strings"
	"testing"
)

func TestGenerateFormat(t *testing.T) {
	code := Generate(nil)
	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		t.Fatalf("code = %q, want three hyphenated words", code)
	}
	for _, p := range parts {
		if p == "" {
			t.Errorf("code %q has an empty segment", code)
		}
	}
}

func TestGenerateSkipsTaken(t *testing.T) {
	var first string
	taken := func(id string) bool {
		if first == "" {
			first = id // reject the first candidate to force a retry
			return true
		}
		return id == first
	}
	code := Generate(taken)
	if code == "" || code == first {
		t.Fatalf("code = %q, first rejected candidate = %q", code, first)
	}
}

func TestTokenUnique(t *testing.T) {
	a, b := Token(), Token()
	if a == "" || a == b {
		t.Errorf("tokens not unique: %q %q", a, b)
	}
}
