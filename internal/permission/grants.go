package permission

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// GrantStore records granted permissions as marker files, one per permission.
// Grants survive across sessions.
type GrantStore struct {
	fs  afero.Fs
	dir string
}

// NewGrantStore creates a GrantStore rooted at dir
func NewGrantStore(fs afero.Fs, dir string) *GrantStore {
	return &GrantStore{fs: fs, dir: dir}
}

// validateName ensures the permission name is safe to use as a file name
func validateName(name Name) error {
	s := string(name)
	if s == "" {
		return fmt.Errorf("permission name cannot be empty")
	}
	if strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("permission name cannot contain path separators: %s", s)
	}
	if s == ".." || s == "." {
		return fmt.Errorf("permission name cannot be '.' or '..': %s", s)
	}
	return nil
}

// Grant records name as granted (idempotent)
func (g *GrantStore) Grant(name Name) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := g.fs.MkdirAll(g.dir, 0700); err != nil {
		return fmt.Errorf("failed to create grants directory: %w", err)
	}

	file, err := g.fs.Create(filepath.Join(g.dir, string(name)))
	if err != nil {
		return fmt.Errorf("failed to record grant for %s: %w", name, err)
	}
	return file.Close()
}

// IsGranted reports whether name has been granted.
// Returns (granted, error) where error indicates a problem checking; if error
// is not nil, granted should not be trusted.
func (g *GrantStore) IsGranted(name Name) (bool, error) {
	if err := validateName(name); err != nil {
		return false, err
	}
	_, err := g.fs.Stat(filepath.Join(g.dir, string(name)))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check grant for %s: %w", name, err)
}

// Revoke removes a grant. Revoking an absent grant is not an error.
func (g *GrantStore) Revoke(name Name) error {
	if err := validateName(name); err != nil {
		return err
	}
	err := g.fs.Remove(filepath.Join(g.dir, string(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// RevokeAll removes every recorded grant
func (g *GrantStore) RevokeAll() error {
	exists, err := afero.DirExists(g.fs, g.dir)
	if err != nil {
		return fmt.Errorf("failed to check grants directory: %w", err)
	}
	if !exists {
		return nil
	}
	return g.fs.RemoveAll(g.dir)
}

// List returns all granted permission names
func (g *GrantStore) List() ([]Name, error) {
	exists, err := afero.DirExists(g.fs, g.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check grants directory: %w", err)
	}
	if !exists {
		return []Name{}, nil
	}

	entries, err := afero.ReadDir(g.fs, g.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read grants directory: %w", err)
	}

	names := []Name{}
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, Name(entry.Name()))
		}
	}
	return names, nil
}

// Dir returns the grants directory path
func (g *GrantStore) Dir() string {
	return g.dir
}
