package domain

import "path/filepath"

const (
	// AppFileName is the name of the declaration file.
	AppFileName = "bidsapp.yaml"

	// StateDirName is the name of the per-project state directory.
	StateDirName = ".bidsapp"

	// StoreDirName is the name of the digest store directory.
	StoreDirName = "digests"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the path of the digest store relative to a project root.
// It joins .bidsapp and digests.
func DefaultStorePath() string {
	return filepath.Join(StateDirName, StoreDirName)
}
