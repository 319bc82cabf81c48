package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes uploaded files into a publicly served directory and hands
// back relative URLs for embedding in chat messages.
type Store struct {
	dir       string
	urlPrefix string
}

// NewStore ensures dir exists and returns a store whose saved files are
// reachable under urlPrefix.
func NewStore(dir, urlPrefix string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists the payload under a collision-resistant name and returns
// the relative URL of the stored file.
func (s *Store) Save(data []byte, originalName string) (string, error) {
	name := uuid.NewString() + "_" + sanitizeName(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}

// sanitizeName keeps the original file name URL-safe: path separators are
// stripped and whitespace collapses to underscores.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	if name == "" || name == "/" || name == "." || name == ".." {
		name = "upload"
	}
	return name
}
