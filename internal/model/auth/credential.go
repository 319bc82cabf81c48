package auth

import (
	"encoding/json"
	"fmt"
	"os"
)

// Credential is a plaintext email/password pair. Storing passwords in the
// clear is a known limitation of the demo accounts; do not reuse this store
// for anything beyond demonstration deployments.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Store exposes credential lookup for the login service.
type Store interface {
	Check(email, password string) bool
}

// MemoryStore implements Store with an in-memory slice loaded once at
// startup and never mutated afterwards.
type MemoryStore struct {
	items []Credential
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied pairs.
func NewMemoryStore(items []Credential) *MemoryStore {
	return &MemoryStore{items: append([]Credential(nil), items...)}
}

// Check reports whether an exact email/password pair exists in the table.
func (s *MemoryStore) Check(email, password string) bool {
	for _, item := range s.items {
		if item.Email == email && item.Password == password {
			return true
		}
	}
	return false
}

// Seed provides the default demo accounts.
func Seed() []Credential {
	return []Credential{
		{Email: "alice@example.com", Password: "password123"},
		{Email: "bob@example.com", Password: "hunter2"},
		{Email: "carol@example.com", Password: "letmein"},
	}
}

// LoadFile reads credential pairs from a JSON array on disk, allowing an
// operator to override the seeded accounts.
func LoadFile(path string) ([]Credential, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open credentials file: %w", err)
	}
	defer f.Close()

	var items []Credential
	if err := json.NewDecoder(f).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode credentials file: %w", err)
	}
	return items, nil
}
