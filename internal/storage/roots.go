package storage

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// ResolveRoots builds the storage roots without changing the disk. The
// external documents directory is available only when its parent (the shared
// storage area) exists; the first external write creates it. Otherwise
// External is left empty and external writes land in the internal root.
func ResolveRoots(fs afero.Fs, internalDir, externalDir string) Roots {
	roots := Roots{Internal: internalDir}
	if externalDir == "" {
		return roots
	}

	mounted, err := afero.DirExists(fs, filepath.Dir(externalDir))
	if err != nil || !mounted {
		return roots
	}
	roots.External = externalDir
	return roots
}
