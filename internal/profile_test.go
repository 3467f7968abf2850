package internal

import (
	"path/filepath"
	"testing"
)

func TestProfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "profile.yaml")

	want := Profile{Name: "Sam", Title: "DJ", Company: "Night Owl"}
	if err := SaveProfile(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("profile = %+v, want %+v", got, want)
	}
}

func TestLoadProfileMissing(t *testing.T) {
	got, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != (Profile{}) {
		t.Errorf("expected empty profile, got %+v", got)
	}
}
