package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"gradebook/internal/common"
)

// BackupService copies the records database to and from a backup
// directory. Backup actions are audited under the SYSTEM account; a
// failed audit write is reported alongside the (already completed)
// copy, never by undoing it.
type BackupService struct {
	dbPath string
	dir    string
	audit  Recorder
	now    func() time.Time
}

func NewBackupService(dbPath, dir string, audit Recorder) *BackupService {
	return &BackupService{dbPath: dbPath, dir: dir, audit: audit, now: time.Now}
}

// Create writes a new snapshot and returns its path. The name carries a
// timestamp plus a short random id so two snapshots within the same
// second cannot collide.
func (s *BackupService) Create(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	name := fmt.Sprintf("records_backup_%s_%s.db",
		s.now().Format("20060102_150405"), uuid.NewString()[:8])
	dst := filepath.Join(s.dir, name)

	if err := copyFile(s.dbPath, dst); err != nil {
		return "", err
	}
	return dst, s.audit.Record(ctx, "SYSTEM", "admin", fmt.Sprintf("Manual backup created: %s", name))
}

// RestoreLatest copies the most recent snapshot back over the records
// database and returns the snapshot name. No snapshots yields
// common.ErrorNotFound.
func (s *BackupService) RestoreLatest(ctx context.Context) (string, error) {
	names, err := s.List()
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", common.ErrorNotFound
	}

	latest := names[len(names)-1]
	if err := copyFile(filepath.Join(s.dir, latest), s.dbPath); err != nil {
		return "", err
	}
	return latest, s.audit.Record(ctx, "SYSTEM", "admin", fmt.Sprintf("Database restored from %s", latest))
}

// List returns the snapshot names sorted oldest first. The timestamped
// naming makes lexical order chronological.
func (s *BackupService) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".db") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Close()
}
