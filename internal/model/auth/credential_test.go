package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStoreCheck(t *testing.T) {
	store := NewMemoryStore([]Credential{
		{Email: "alice@example.com", Password: "password123"},
	})

	if !store.Check("alice@example.com", "password123") {
		t.Fatal("expected exact pair to match")
	}
	if store.Check("alice@example.com", "PASSWORD123") {
		t.Fatal("comparison must be exact, not case-folded")
	}
	if store.Check("bob@example.com", "password123") {
		t.Fatal("unknown email must not match")
	}
}

func TestSeedNotEmpty(t *testing.T) {
	if len(Seed()) == 0 {
		t.Fatal("seed table must provide demo accounts")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	data := `[{"email":"ops@example.com","password":"s3cret"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	items, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(items) != 1 || items[0].Email != "ops@example.com" {
		t.Fatalf("unexpected result: %+v", items)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}
