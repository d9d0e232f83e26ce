package cas_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bidsapp/internal/adapters/cas"
	"go.trai.ch/bidsapp/internal/core/domain"
)

func TestStore_PutGet(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()

	record := domain.DigestRecord{
		App:       "fmriprep",
		Digest:    "00ff00ff00ff00ff",
		ImageTag:  "nipreps/fmriprep:23.1.0",
		Timestamp: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(root, record))

	got, err := store.Get(root, "fmriprep")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record, *got)

	record.Digest = "1111111111111111"
	require.NoError(t, store.Put(root, record))
	got, err = store.Get(root, "fmriprep")
	require.NoError(t, err)
	assert.Equal(t, "1111111111111111", got.Digest)

	entries, err := os.ReadDir(filepath.Join(root, domain.DefaultStorePath()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	got, err := cas.NewStore().Get(t.TempDir(), "mriqc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetCorrupt(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := cas.NewStore()
	require.NoError(t, store.Put(root, domain.DigestRecord{App: "mriqc"}))

	dir := filepath.Join(root, domain.DefaultStorePath())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{ invalid json"), 0o600))

	_, err = store.Get(root, "mriqc")
	require.ErrorIs(t, err, domain.ErrStoreUnmarshalFailed)
	assert.NotErrorIs(t, err, domain.ErrStoreReadFailed)
}

func TestStore_PutUnwritableRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blocker := filepath.Join(root, domain.StateDirName)
	require.NoError(t, os.WriteFile(blocker, []byte("file, not dir"), 0o600))

	err := cas.NewStore().Put(root, domain.DigestRecord{App: "mriqc"})
	require.ErrorIs(t, err, domain.ErrStoreCreateFailed)
}
