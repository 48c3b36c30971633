package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	internalRoot = "/data/files"
	externalRoot = "/sdcard/Documents/datasave"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(externalRoot, 0755))
	return New(fs, Roots{Internal: internalRoot, External: externalRoot}, nil), fs
}

func readFile(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func TestEmptyInputsAreRejectedWithoutTouchingDisk(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
	}{
		{"empty name", "", "hello"},
		{"empty content", "notes.txt", ""},
		{"both empty", "", ""},
	}

	ops := map[string]func(*Store, string, string) error{
		"write-internal":  (*Store).WriteInternal,
		"append-internal": (*Store).AppendInternal,
		"write-external":  (*Store).WriteExternal,
	}

	for _, tt := range tests {
		for opName, op := range ops {
			t.Run(tt.name+"/"+opName, func(t *testing.T) {
				store, fs := newTestStore(t)

				err := op(store, tt.fileName, tt.content)
				require.ErrorIs(t, err, ErrValidation)
				assert.False(t, Succeeded(err))

				exists, err := afero.DirExists(fs, internalRoot)
				require.NoError(t, err)
				assert.False(t, exists, "internal root must not be created")

				entries, err := afero.ReadDir(fs, externalRoot)
				require.NoError(t, err)
				assert.Empty(t, entries)
			})
		}
	}
}

func TestWhitespaceInputsCountAsContent(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
	}{
		{"blank content", "notes.txt", "   "},
		{"newline content", "notes.txt", "\n"},
		{"blank name", "  ", "x"},
	}

	ops := map[string]func(*Store, string, string) error{
		"write-internal":  (*Store).WriteInternal,
		"append-internal": (*Store).AppendInternal,
		"write-external":  (*Store).WriteExternal,
	}

	for _, tt := range tests {
		for opName, op := range ops {
			t.Run(tt.name+"/"+opName, func(t *testing.T) {
				store, fs := newTestStore(t)

				err := op(store, tt.fileName, tt.content)
				require.NoError(t, err)
				assert.True(t, Succeeded(err))

				kind := Internal
				if opName == "write-external" {
					kind = External
				}
				path, err := store.Location(kind, tt.fileName)
				require.NoError(t, err)
				assert.Equal(t, tt.content, readFile(t, fs, path))
			})
		}
	}
}

func TestWriteInternal(t *testing.T) {
	store, fs := newTestStore(t)

	err := store.WriteInternal("notes.txt", "hello")
	require.NoError(t, err)
	assert.True(t, Succeeded(err))
	assert.Equal(t, "hello", readFile(t, fs, filepath.Join(internalRoot, "notes.txt")))
}

func TestWriteInternalOverwrites(t *testing.T) {
	store, fs := newTestStore(t)

	require.NoError(t, store.WriteInternal("notes.txt", "a much longer first version"))
	require.NoError(t, store.WriteInternal("notes.txt", "second"))
	require.NoError(t, store.WriteInternal("notes.txt", "second"))

	assert.Equal(t, "second", readFile(t, fs, filepath.Join(internalRoot, "notes.txt")))

	entries, err := afero.ReadDir(fs, internalRoot)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAppendInternal(t *testing.T) {
	store, fs := newTestStore(t)

	require.NoError(t, store.AppendInternal("log.txt", "a"))
	require.NoError(t, store.AppendInternal("log.txt", "b"))

	assert.Equal(t, "a\nb", readFile(t, fs, filepath.Join(internalRoot, "log.txt")))
}

func TestAppendInternalIsCumulative(t *testing.T) {
	store, fs := newTestStore(t)

	entries := []string{"first", "second line", "  padded  ", "multi\nline", "last"}
	for _, entry := range entries {
		require.NoError(t, store.AppendInternal("journal.txt", entry))
	}

	assert.Equal(t, strings.Join(entries, "\n"), readFile(t, fs, filepath.Join(internalRoot, "journal.txt")))
}

func TestAppendInternalAfterWrite(t *testing.T) {
	store, fs := newTestStore(t)

	require.NoError(t, store.WriteInternal("log.txt", "head"))
	require.NoError(t, store.AppendInternal("log.txt", "tail"))

	assert.Equal(t, "head\ntail", readFile(t, fs, filepath.Join(internalRoot, "log.txt")))
}

func TestWriteExternal(t *testing.T) {
	store, fs := newTestStore(t)

	require.NoError(t, store.WriteExternal("report.txt", "draft"))
	require.NoError(t, store.WriteExternal("report.txt", "final"))

	assert.Equal(t, "final", readFile(t, fs, filepath.Join(externalRoot, "report.txt")))

	exists, err := afero.Exists(fs, filepath.Join(internalRoot, "report.txt"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriteExternalFallsBackToInternal(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, Roots{Internal: internalRoot}, nil)

	require.NoError(t, store.WriteExternal("report.txt", "final"))
	assert.Equal(t, "final", readFile(t, fs, filepath.Join(internalRoot, "report.txt")))
	assert.Equal(t, internalRoot, store.Dir(External))
}

func TestStorageFailures(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
	}{
		{"absolute path", "/etc/passwd"},
		{"escapes root", "../outside.txt"},
		{"dot", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t)

			err := store.WriteInternal(tt.fileName, "hello")
			require.Error(t, err)
			assert.False(t, IsValidation(err))

			var storageErr *Error
			require.True(t, errors.As(err, &storageErr))
			assert.Equal(t, OpWriteInternal, storageErr.Op)
		})
	}
}

func TestMissingParentDirectoryFails(t *testing.T) {
	root := filepath.Join(t.TempDir(), "files")
	store := New(afero.NewOsFs(), Roots{Internal: root}, nil)

	err := store.WriteInternal(filepath.Join("missing", "notes.txt"), "hello")

	var storageErr *Error
	require.True(t, errors.As(err, &storageErr), "got %v", err)
	assert.Equal(t, OpWriteInternal, storageErr.Op)
	assert.Equal(t, filepath.Join(root, "missing", "notes.txt"), storageErr.Path)
}

func TestReadOnlyFileSystemFails(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll(internalRoot, 0755))
	require.NoError(t, base.MkdirAll(externalRoot, 0755))
	store := New(afero.NewReadOnlyFs(base), Roots{Internal: internalRoot, External: externalRoot}, nil)

	for _, err := range []error{
		store.WriteInternal("notes.txt", "hello"),
		store.AppendInternal("notes.txt", "hello"),
		store.WriteExternal("notes.txt", "hello"),
	} {
		var storageErr *Error
		assert.True(t, errors.As(err, &storageErr), "got %v", err)
		assert.False(t, Succeeded(err))
	}
}

func TestReadAndLocation(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.WriteInternal("notes.txt", "hello"))
	require.NoError(t, store.WriteExternal("notes.txt", "world"))

	got, err := store.Read(Internal, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = store.Read(External, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "world", got)

	path, err := store.Location(External, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(externalRoot, "notes.txt"), path)

	_, err = store.Read(Internal, "absent.txt")
	assert.Error(t, err)

	_, err = store.Read(Internal, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFileSystemRootAsStorageRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, Roots{Internal: "/"}, nil)

	require.NoError(t, store.WriteInternal("a.txt", "x"))
	require.NoError(t, store.AppendInternal("a.txt", "y"))
	assert.Equal(t, "x\ny", readFile(t, fs, "/a.txt"))

	path, err := store.Location(Internal, "sub/../b.txt")
	require.NoError(t, err)
	assert.Equal(t, "/b.txt", path)

	for _, name := range []string{".", "/etc/passwd"} {
		_, err := store.Location(Internal, name)
		assert.Error(t, err, name)
	}
}

func TestNamesEscapingRootAreRejected(t *testing.T) {
	store, _ := newTestStore(t)

	for _, name := range []string{"..", "../files-other/x.txt", "a/../../x.txt"} {
		_, err := store.Location(Internal, name)
		assert.Error(t, err, name)
	}

	path, err := store.Location(Internal, "a/../..files.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(internalRoot, "..files.txt"), path)
}

func TestReadAndLocationLeaveDiskUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := New(fs, Roots{Internal: internalRoot, External: externalRoot}, nil)

	_, err := store.Location(Internal, "notes.txt")
	require.NoError(t, err)
	_, err = store.Location(External, "notes.txt")
	require.NoError(t, err)
	_, err = store.Read(Internal, "notes.txt")
	assert.Error(t, err)
	_, err = store.Read(External, "notes.txt")
	assert.Error(t, err)

	for _, dir := range []string{internalRoot, externalRoot} {
		exists, err := afero.DirExists(fs, dir)
		require.NoError(t, err)
		assert.False(t, exists, "%s must not be created", dir)
	}

	require.NoError(t, store.WriteExternal("notes.txt", "hello"))
	exists, err := afero.DirExists(fs, externalRoot)
	require.NoError(t, err)
	assert.True(t, exists, "first write creates the root")
}
