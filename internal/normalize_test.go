package internal

import "testing"

func TestNormalizeLowercasesAndStrips(t *testing.T) {
	n := DefaultNormalizer()

	got := n.Normalize("Hello, World! This is GREAT.")
	want := "hello world this is great"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	n := DefaultNormalizer()

	got := n.Normalize("  too \t many\n\n spaces  ")
	want := "too many spaces"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeKeepsConfiguredRunes(t *testing.T) {
	n := DefaultNormalizer()

	got := n.Normalize("follow-up email re: Q3")
	want := "follow-up email re q3"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := DefaultNormalizer()

	inputs := []string{
		"Hello, World!",
		"already normalized text",
		"MIXED case With   Spaces",
		"",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	n := DefaultNormalizer()

	if got := n.Normalize("!!! ,,, ..."); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
