package services

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/common"
	"gradebook/internal/keystore"
	"gradebook/internal/repositories/auditlog"
)

func setupAuditDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  timestamp TEXT NOT NULL,
  username TEXT NOT NULL,
  role TEXT NOT NULL,
  action BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func newAuditService(t *testing.T) (*AuditService, *sql.DB, string) {
	t.Helper()
	db := setupAuditDB(t)
	keyPath := filepath.Join(t.TempDir(), "logs", "key.key")
	return NewAuditService(auditlog.NewSQLiteRepository(db), keystore.NewFileStore(keyPath)), db, keyPath
}

func TestRecordAndDecryptAll_NewestFirst(t *testing.T) {
	s, _, _ := newAuditService(t)
	ctx := context.Background()

	for _, action := range []string{"Logged in.", "Entered marks.", "Logged out."} {
		require.NoError(t, s.Record(ctx, "prof", "teacher", action))
	}

	entries, err := s.DecryptAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Logged out.", entries[0].Action)
	assert.Equal(t, "Entered marks.", entries[1].Action)
	assert.Equal(t, "Logged in.", entries[2].Action)
	assert.Equal(t, "prof", entries[0].Username)
	assert.Equal(t, "teacher", entries[0].Role)
}

func TestRecord_ActionStoredEncrypted(t *testing.T) {
	s, db, _ := newAuditService(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "alice", "student", "Logged in."))

	var blob []byte
	require.NoError(t, db.QueryRow(`SELECT action FROM logs`).Scan(&blob))
	assert.NotContains(t, string(blob), "Logged in.")
}

func TestDecryptAll_CorruptRecordGetsSentinel(t *testing.T) {
	s, db, _ := newAuditService(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "alice", "student", "first"))
	require.NoError(t, s.Record(ctx, "alice", "student", "second"))

	// Corrupt the first record's ciphertext.
	_, err := db.Exec(`UPDATE logs SET action = x'deadbeef' WHERE id = 1`)
	require.NoError(t, err)

	entries, err := s.DecryptAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first: the intact record decrypts, the corrupt one keeps its
	// place with the sentinel.
	assert.Equal(t, "second", entries[0].Action)
	assert.Equal(t, UndecryptableSentinel, entries[1].Action)
}

func TestRecord_KeyPersistsAcrossServices(t *testing.T) {
	db := setupAuditDB(t)
	keyPath := filepath.Join(t.TempDir(), "key.key")
	repo := auditlog.NewSQLiteRepository(db)
	ctx := context.Background()

	first := NewAuditService(repo, keystore.NewFileStore(keyPath))
	require.NoError(t, first.Record(ctx, "alice", "student", "Logged in."))

	// A fresh service (new process) reads the same key file and can
	// decrypt what the first one wrote.
	second := NewAuditService(repo, keystore.NewFileStore(keyPath))
	entries, err := second.DecryptAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Logged in.", entries[0].Action)
}

func TestRecord_ConcurrentFirstUseCreatesOneKey(t *testing.T) {
	s, _, keyPath := newAuditService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Record(ctx, "alice", "student", "Logged in."))
		}()
	}
	wg.Wait()

	// Exactly one key on disk and every record readable with it.
	_, err := os.Stat(keyPath)
	require.NoError(t, err)

	entries, err := s.DecryptAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 8)
	for _, e := range entries {
		assert.Equal(t, "Logged in.", e.Action)
	}
}

func TestRecord_StorageFailureIsAuditWriteFailed(t *testing.T) {
	s, db, _ := newAuditService(t)
	ctx := context.Background()

	_, err := db.Exec(`DROP TABLE logs`)
	require.NoError(t, err)

	err = s.Record(ctx, "alice", "student", "Logged in.")
	assert.ErrorIs(t, err, common.ErrAuditWriteFailed)
}

func TestRecord_UsesInjectedClock(t *testing.T) {
	s, _, _ := newAuditService(t)
	fixed := time.Date(2025, 3, 1, 10, 30, 0, 0, time.Local)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, "alice", "student", "Logged in."))

	entries, err := s.DecryptAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, fixed, entries[0].Timestamp)
}
