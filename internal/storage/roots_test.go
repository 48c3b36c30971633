package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoots(t *testing.T) {
	t.Run("shared storage mounted", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/sdcard/Documents", 0755))

		roots := ResolveRoots(fs, internalRoot, externalRoot)
		assert.Equal(t, Roots{Internal: internalRoot, External: externalRoot}, roots)

		exists, err := afero.DirExists(fs, externalRoot)
		require.NoError(t, err)
		assert.False(t, exists, "resolving roots does not create directories")
	})

	t.Run("shared storage missing", func(t *testing.T) {
		roots := ResolveRoots(afero.NewMemMapFs(), internalRoot, externalRoot)
		assert.Equal(t, Roots{Internal: internalRoot}, roots)
	})

	t.Run("external disabled", func(t *testing.T) {
		roots := ResolveRoots(afero.NewMemMapFs(), internalRoot, "")
		assert.Empty(t, roots.External)
	})

	t.Run("shared storage is a file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/sdcard/Documents", []byte("x"), 0644))

		roots := ResolveRoots(fs, internalRoot, externalRoot)
		assert.Empty(t, roots.External)
	})
}
