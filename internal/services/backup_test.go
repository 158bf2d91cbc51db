package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/common"
)

type recorderStub struct {
	actions []string
	err     error
}

func (r *recorderStub) Record(_ context.Context, _, _, action string) error {
	r.actions = append(r.actions, action)
	return r.err
}

func newBackupService(t *testing.T) (*BackupService, string, *recorderStub) {
	t.Helper()
	root := t.TempDir()
	dbPath := filepath.Join(root, "userdetails.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("original contents"), 0o600))

	rec := &recorderStub{}
	return NewBackupService(dbPath, filepath.Join(root, "backups"), rec), dbPath, rec
}

func TestBackupCreate(t *testing.T) {
	s, _, rec := newBackupService(t)

	path, err := s.Create(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("original contents"), data)

	require.Len(t, rec.actions, 1)
	assert.Contains(t, rec.actions[0], "Manual backup created")
}

func TestBackupCreate_AuditFailureStillProducesSnapshot(t *testing.T) {
	s, _, rec := newBackupService(t)
	rec.err = common.ErrAuditWriteFailed

	path, err := s.Create(context.Background())
	assert.ErrorIs(t, err, common.ErrAuditWriteFailed)

	// The snapshot itself exists and is reported.
	require.NotEmpty(t, path)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestBackupRestoreLatest(t *testing.T) {
	s, dbPath, rec := newBackupService(t)
	ctx := context.Background()

	_, err := s.Create(ctx)
	require.NoError(t, err)

	// The live database moves on, then a newer snapshot is taken.
	require.NoError(t, os.WriteFile(dbPath, []byte("v2"), 0o600))
	s.now = func() time.Time { return time.Now().Add(time.Minute) }
	_, err = s.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(dbPath, []byte("corrupted"), 0o600))

	name, err := s.RestoreLatest(ctx)
	require.NoError(t, err)

	data, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	require.Len(t, rec.actions, 3)
	assert.Contains(t, rec.actions[2], name)
}

func TestBackupRestoreLatest_NoSnapshots(t *testing.T) {
	s, _, _ := newBackupService(t)

	_, err := s.RestoreLatest(context.Background())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestBackupList(t *testing.T) {
	s, _, _ := newBackupService(t)
	ctx := context.Background()

	// Missing directory is just an empty list.
	names, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = s.Create(ctx)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Now().Add(time.Minute) }
	_, err = s.Create(ctx)
	require.NoError(t, err)

	names, err = s.List()
	require.NoError(t, err)
	require.Len(t, names, 2)
	// Oldest first; names are timestamped so lexical order is enough.
	assert.Less(t, names[0], names[1])

	// Stray files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "notes.txt"), []byte("x"), 0o600))
	names, err = s.List()
	require.NoError(t, err)
	assert.Len(t, names, 2)
}

func TestBackupCreate_MissingSourceFails(t *testing.T) {
	root := t.TempDir()
	s := NewBackupService(filepath.Join(root, "missing.db"), filepath.Join(root, "backups"), &recorderStub{})

	_, err := s.Create(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrAuditWriteFailed))
}
