// Package storage persists user text into plain files under an app-private
// internal root or an app-specific external documents directory. Every
// operation validates its inputs first, performs a single blocking write, and
// reports either ErrValidation or a *Error describing the I/O fault.
package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const filePerms os.FileMode = 0644

// Kind selects the storage area a file lives in
type Kind int

const (
	Internal Kind = iota
	External
)

func (k Kind) String() string {
	if k == External {
		return "external"
	}
	return "internal"
}

// Roots holds the resolved storage directories.
// External is empty when the external documents directory is unavailable.
type Roots struct {
	Internal string
	External string
}

// Store performs the storage operations against a file system
type Store struct {
	fs     afero.Fs
	roots  Roots
	logger *slog.Logger
}

// New creates a Store. A nil logger discards log output.
func New(fs afero.Fs, roots Roots, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{fs: fs, roots: roots, logger: logger}
}

// Roots returns the configured storage roots
func (s *Store) Roots() Roots {
	return s.roots
}

// WriteInternal creates or truncates name under the internal root and writes
// content verbatim.
func (s *Store) WriteInternal(name, content string) error {
	if err := validate(name, content); err != nil {
		return err
	}
	path, err := s.resolveForWrite(Internal, name)
	if err != nil {
		return s.fail(OpWriteInternal, name, err)
	}
	if err := afero.WriteFile(s.fs, path, []byte(content), filePerms); err != nil {
		return s.fail(OpWriteInternal, path, err)
	}
	s.logger.Debug("wrote file", "op", OpWriteInternal, "path", path, "bytes", len(content))
	return nil
}

// AppendInternal appends content to name under the internal root, creating
// the file if needed. A newline separates the new entry from existing content;
// nothing is written before the first entry of an empty file.
func (s *Store) AppendInternal(name, content string) error {
	if err := validate(name, content); err != nil {
		return err
	}
	path, err := s.resolveForWrite(Internal, name)
	if err != nil {
		return s.fail(OpAppendInternal, name, err)
	}

	file, err := s.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerms)
	if err != nil {
		return s.fail(OpAppendInternal, path, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return s.fail(OpAppendInternal, path, err)
	}

	entry := content
	if info.Size() > 0 {
		entry = "\n" + content
	}

	if _, err := file.Write([]byte(entry)); err != nil {
		file.Close()
		return s.fail(OpAppendInternal, path, err)
	}
	if err := file.Close(); err != nil {
		return s.fail(OpAppendInternal, path, err)
	}

	s.logger.Debug("appended to file", "op", OpAppendInternal, "path", path, "bytes", len(entry))
	return nil
}

// WriteExternal creates or truncates name under the external documents
// directory, or under the internal root when the external one is unavailable.
// The caller must hold the external write permission.
func (s *Store) WriteExternal(name, content string) error {
	if err := validate(name, content); err != nil {
		return err
	}
	path, err := s.resolveForWrite(External, name)
	if err != nil {
		return s.fail(OpWriteExternal, name, err)
	}
	if err := afero.WriteFile(s.fs, path, []byte(content), filePerms); err != nil {
		return s.fail(OpWriteExternal, path, err)
	}
	s.logger.Debug("wrote file", "op", OpWriteExternal, "path", path, "bytes", len(content))
	return nil
}

// Read returns the stored text of name in the given storage area
func (s *Store) Read(kind Kind, name string) (string, error) {
	if name == "" {
		return "", ErrValidation
	}
	path, err := s.resolve(kind, name)
	if err != nil {
		return "", &Error{Op: OpRead, Path: name, Err: err}
	}
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return "", &Error{Op: OpRead, Path: path, Err: err}
	}
	return string(data), nil
}

// Location returns the absolute path name resolves to in the given area
func (s *Store) Location(kind Kind, name string) (string, error) {
	return s.resolve(kind, name)
}

// Dir returns the directory used for the given storage area, applying the
// internal fallback for an unavailable external directory.
func (s *Store) Dir(kind Kind) string {
	if kind == External && s.roots.External != "" {
		return s.roots.External
	}
	return s.roots.Internal
}

// resolve joins name onto the storage root and rejects names that would land
// outside it. It never touches the file system.
func (s *Store) resolve(kind Kind, name string) (string, error) {
	root := s.Dir(kind)
	if root == "" {
		return "", fmt.Errorf("no %s storage root configured", kind)
	}

	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute file names are not allowed: %s", name)
	}
	cleaned := filepath.Clean(name)
	if cleaned == "." {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	root = filepath.Clean(root)
	joined := filepath.Join(root, cleaned)
	rel, err := filepath.Rel(root, joined)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("file name escapes storage root: %s", name)
	}
	return joined, nil
}

// resolveForWrite resolves name and creates its storage root if missing
func (s *Store) resolveForWrite(kind Kind, name string) (string, error) {
	path, err := s.resolve(kind, name)
	if err != nil {
		return "", err
	}
	root := s.Dir(kind)
	if err := s.fs.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage root %s: %w", root, err)
	}
	return path, nil
}

func (s *Store) fail(op Op, path string, err error) error {
	s.logger.Error("storage operation failed", "op", op, "path", path, "err", err)
	return &Error{Op: op, Path: path, Err: err}
}

func validate(name, content string) error {
	if name == "" || content == "" {
		return ErrValidation
	}
	return nil
}
