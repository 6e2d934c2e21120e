package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestKeyringRoundTrip(t *testing.T) {
	keyring.MockInit()
	k := NewKeyring("tuimole-test", "")

	if _, err := k.APIKey(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := k.SetAPIKey("  sk-123  "); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := k.APIKey()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "sk-123" {
		t.Fatalf("expected trimmed key, got %q", got)
	}
	if err := k.DeleteAPIKey(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := k.APIKey(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSetAPIKeyRejectsEmpty(t *testing.T) {
	keyring.MockInit()
	if err := NewKeyring("", "").SetAPIKey(" "); err == nil {
		t.Fatalf("expected error for empty key")
	}
}

func TestKeyringFallbackFile(t *testing.T) {
	keyring.MockInitWithError(errors.New("keyring backend not available"))
	t.Cleanup(keyring.MockInit)
	path := filepath.Join(t.TempDir(), "secrets.json")
	k := NewKeyring("tuimole-test", path)

	if err := k.SetAPIKey("sk-file"); err != nil {
		t.Fatalf("set: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected fallback file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
	got, err := k.APIKey()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "sk-file" {
		t.Fatalf("expected sk-file, got %q", got)
	}
	if err := k.DeleteAPIKey(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := k.APIKey(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
