package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gradebook/internal/common"
	"gradebook/internal/cryptox"
	"gradebook/internal/keystore"
	"gradebook/internal/models"
	"gradebook/internal/repositories/auditlog"
)

// UndecryptableSentinel replaces the action text of a record that could
// not be decrypted (rotated key, corruption). A bad record never aborts
// a bulk read.
const UndecryptableSentinel = "[error decrypting this entry]"

// Recorder is the audit surface exposed to the rest of the application.
type Recorder interface {
	Record(ctx context.Context, username, role, action string) error
}

// AuditService appends encrypted audit events and decrypts them for
// review. The symmetric key is bootstrapped lazily and exactly once:
// the first Record (or DecryptAll) on a fresh deployment creates it,
// and it is never regenerated afterwards since that would strand every
// event sealed under the old key.
type AuditService struct {
	repo auditlog.Repository
	keys keystore.Store

	mu  sync.Mutex
	key []byte

	now func() time.Time
}

func NewAuditService(repo auditlog.Repository, keys keystore.Store) *AuditService {
	return &AuditService{repo: repo, keys: keys, now: time.Now}
}

// Record encrypts action and appends one event with the current
// timestamp. Any failure is wrapped as common.ErrAuditWriteFailed so
// callers can report it separately from the primary operation, which
// has already committed and is never rolled back because of a log
// problem.
func (s *AuditService) Record(ctx context.Context, username, role, action string) error {
	key, err := s.loadKey()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrAuditWriteFailed, err)
	}

	blob, err := cryptox.Encrypt([]byte(action), key)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrAuditWriteFailed, err)
	}

	rec := &models.AuditRecord{
		Timestamp: s.now(),
		Username:  username,
		Role:      role,
		Action:    blob,
	}
	if err := s.repo.Append(ctx, rec); err != nil {
		return fmt.Errorf("%w: %v", common.ErrAuditWriteFailed, err)
	}
	return nil
}

// DecryptAll returns every event, most recent first. Records that fail
// to decrypt keep their place with UndecryptableSentinel as the action.
func (s *AuditService) DecryptAll(ctx context.Context) ([]models.AuditEntry, error) {
	key, err := s.loadKey()
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListDescending(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]models.AuditEntry, 0, len(records))
	for _, rec := range records {
		entry := models.AuditEntry{
			Timestamp: rec.Timestamp,
			Username:  rec.Username,
			Role:      rec.Role,
		}
		if plaintext, derr := cryptox.Decrypt(rec.Action, key); derr != nil {
			entry.Action = UndecryptableSentinel
		} else {
			entry.Action = string(plaintext)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// loadKey returns the audit key, creating and persisting it on first
// use. The mutex serializes callers within the process; the store's
// write-once Save picks a single winner across processes, and a lost
// race falls back to reading the winner's key.
func (s *AuditService) loadKey() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return s.key, nil
	}

	key, err := s.keys.Load()
	if errors.Is(err, common.ErrorNotFound) {
		key = cryptox.NewKey()
		switch serr := s.keys.Save(key); {
		case serr == nil:
		case errors.Is(serr, keystore.ErrKeyExists):
			if key, err = s.keys.Load(); err != nil {
				return nil, err
			}
		default:
			return nil, serr
		}
	} else if err != nil {
		return nil, err
	}

	s.key = key
	return s.key, nil
}
