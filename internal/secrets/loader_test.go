package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	filled := filepath.Join(dir, "secret")
	if err := os.WriteFile(filled, []byte("  from-file\n"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("\n"), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		src     Source
		expect  string
		wantErr string
	}{
		{name: "inline", src: Source{Value: " inline "}, expect: "inline"},
		{name: "file wins", src: Source{Value: "inline", File: filled}, expect: "from-file"},
		{name: "empty file", src: Source{Name: "admin secret", File: empty}, wantErr: "admin secret file"},
		{name: "missing file", src: Source{File: filepath.Join(dir, "nope")}, wantErr: "reading secret"},
		{name: "unset", src: Source{Name: "admin secret"}, wantErr: "admin secret is not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Load(tt.src)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestLoadPair(t *testing.T) {
	t.Parallel()

	one, two, err := LoadPair(Source{Name: "first", Value: "a"}, Source{Name: "second", Value: "b"})
	if err != nil || one != "a" || two != "b" {
		t.Fatalf("unexpected result %q %q %v", one, two, err)
	}

	_, _, err = LoadPair(Source{Name: "first"}, Source{Name: "second"})
	if err == nil || !strings.Contains(err.Error(), "first is not configured") || !strings.Contains(err.Error(), "second is not configured") {
		t.Fatalf("expected both failures, got %v", err)
	}

	if _, _, err := LoadPair(Source{Name: "first", Value: "same"}, Source{Name: "second", Value: "same"}); err == nil {
		t.Fatalf("expected error for identical secrets")
	}
}
