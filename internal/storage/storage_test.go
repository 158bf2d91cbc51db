package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gradebook/internal/config"
)

func TestOpen_MigratesBothDatabases(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		RecordsDBPath: filepath.Join(dir, "userdetails.db"),
		AuditDBPath:   filepath.Join(dir, "audit_logs.db"),
	}

	h, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	for _, table := range []string{"students", "teachers", "subjects", "marks"} {
		var n int
		err := h.Records.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, "missing table %s", table)
	}

	var n int
	require.NoError(t, h.Audit.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='logs'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		RecordsDBPath: filepath.Join(dir, "userdetails.db"),
		AuditDBPath:   filepath.Join(dir, "audit_logs.db"),
	}
	ctx := context.Background()

	h, err := Open(ctx, cfg)
	require.NoError(t, err)
	_, err = h.Records.Exec(`INSERT INTO teachers (username, password_hash, name, department)
	                         VALUES ('prof', x'00', 'Prof. X', 'CSE')`)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	// Reopening an already-migrated pair is a no-op that keeps the data.
	h, err = Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	var n int
	require.NoError(t, h.Records.QueryRow(`SELECT COUNT(*) FROM teachers`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		RecordsDBPath: filepath.Join(dir, "userdetails.db"),
		AuditDBPath:   filepath.Join(dir, "audit_logs.db"),
	}

	h, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	_, err = h.Records.Exec(`INSERT INTO subjects (code, name, credits, teacher_id)
	                         VALUES ('MAT101', 'Calculus', 4, 999)`)
	assert.Error(t, err)
}
