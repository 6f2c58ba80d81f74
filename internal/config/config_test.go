package config

import (
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OwnerID != "local" {
		t.Errorf("owner = %q, want local", cfg.OwnerID)
	}
	if cfg.GeminiAPIKey != "" {
		t.Errorf("api key = %q, want empty", cfg.GeminiAPIKey)
	}
}

func TestWriteThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	want := &Config{OwnerID: "student-42", GeminiAPIKey: "file-key"}
	if err := Write(want, Path()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.OwnerID != "student-42" {
		t.Errorf("owner = %q, want student-42", got.OwnerID)
	}
	if got.GeminiAPIKey != "file-key" {
		t.Errorf("api key = %q, want file-key", got.GeminiAPIKey)
	}

	t.Run("EnvOverridesFile", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")
		got, err := Load()
		if err != nil {
			t.Fatal(err)
		}
		if got.GeminiAPIKey != "env-key" {
			t.Errorf("api key = %q, want env-key", got.GeminiAPIKey)
		}
	})
}
