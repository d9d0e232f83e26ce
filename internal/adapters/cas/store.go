// Package cas stores the last recorded digest of each app definition, one file per app.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/bidsapp/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.DigestStore under <root>/.bidsapp/digests.
type Store struct{}

// NewStore creates a new digest store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the digest recorded for app, or nil when none was recorded.
func (s *Store) Get(root, app string) (*domain.DigestRecord, error) {
	filename := recordPath(root, app)
	//nolint:gosec // Path is built from the project root and a hashed file name
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "app", app)
	}

	var record domain.DigestRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreUnmarshalFailed, err.Error()), "app", app)
	}
	return &record, nil
}

// Put records the digest of an app, replacing any earlier record.
func (s *Store) Put(root string, record domain.DigestRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStoreMarshalFailed, err.Error())
	}

	filename := recordPath(root, record.App)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(domain.ErrStoreCreateFailed, err.Error())
	}

	// Readers never see a half-written record.
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "app", record.App)
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "app", record.App)
	}
	return nil
}

func recordPath(root, app string) string {
	hash := sha256.Sum256([]byte(app))
	return filepath.Join(root, domain.DefaultStorePath(), hex.EncodeToString(hash[:])+".json")
}
