package store

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*FileStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := NewFileStore(fs, "/data")
	require.NoError(t, err)
	return s, fs
}

func TestFileStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, ok, err := s.Get(ctx, KeyDraft)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, KeyDraft, `{"full_name":"Juan"}`))
	require.NoError(t, s.Set(ctx, KeyLastReportURI, "/tmp/a.pdf"))

	v, ok, err := s.Get(ctx, KeyDraft)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"full_name":"Juan"}`, v)

	require.NoError(t, s.Delete(ctx, KeyDraft))
	_, ok, err = s.Get(ctx, KeyDraft)
	require.NoError(t, err)
	assert.False(t, ok)

	// Other keys survive
	v, ok, err = s.Get(ctx, KeyLastReportURI)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/a.pdf", v)

	// Deleting a missing key is fine
	assert.NoError(t, s.Delete(ctx, "missing"))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	s, fs := newTestStore(t)
	require.NoError(t, s.Set(ctx, KeyFolderHandle, "file:///home/user/Reports"))

	reopened, err := NewFileStore(fs, "/data")
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, KeyFolderHandle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "file:///home/user/Reports", v)
}

func TestFileStore_EmptyKey(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, _, err := s.Get(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.ErrorIs(t, s.Set(ctx, "", "x"), ErrEmptyKey)
	assert.ErrorIs(t, s.Delete(ctx, ""), ErrEmptyKey)
}

func TestFileStore_CorruptedFile(t *testing.T) {
	ctx := context.Background()
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, s.Path(), []byte("{not json"), 0o600))

	_, _, err := s.Get(ctx, KeyDraft)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestFileStore_CorruptedFileIsReplacedOnWrite(t *testing.T) {
	ctx := context.Background()
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, s.Path(), []byte("{not json"), 0o600))

	require.NoError(t, s.Set(ctx, KeyLastReportURI, "/docs/Reports/r.pdf"))

	v, ok, err := s.Get(ctx, KeyLastReportURI)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/docs/Reports/r.pdf", v)
}

func TestFileStore_CorruptedFileIsReplacedOnDelete(t *testing.T) {
	ctx := context.Background()
	s, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, s.Path(), []byte("{not json"), 0o600))

	require.NoError(t, s.Delete(ctx, KeyDraft))

	_, ok, err := s.Get(ctx, KeyDraft)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_ReadOnlyFs(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/data", 0o750))

	s, err := NewFileStore(afero.NewReadOnlyFs(base), "/data")
	require.NoError(t, err)

	assert.Error(t, s.Set(ctx, KeyDraft, "x"))
}

func TestFileStore_CancelledContext(t *testing.T) {
	s, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, KeyDraft, "x"), context.Canceled)
}

func TestWriteFileAtomic_NoLeftovers(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/out", 0o750))

	require.NoError(t, WriteFileAtomic(fs, "/out/report.pdf", []byte("%PDF-1.3"), 0o644))

	entries, err := afero.ReadDir(fs, "/out")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.pdf", entries[0].Name())

	data, err := afero.ReadFile(fs, "/out/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))
}

func TestWriteFileAtomic_ReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/out", 0o750))

	err := WriteFileAtomic(afero.NewReadOnlyFs(base), "/out/report.pdf", []byte("x"), 0o644)
	assert.Error(t, err)

	exists, err := afero.Exists(base, "/out/report.pdf")
	require.NoError(t, err)
	assert.False(t, exists)
}
