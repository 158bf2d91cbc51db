package models

import "time"

// AuditRecord is a stored audit event. Action holds the encrypted
// payload (nonce||ciphertext). Records are append-only: once written
// they are never updated or deleted.
type AuditRecord struct {
	ID        int64
	Timestamp time.Time
	Username  string
	Role      string
	Action    []byte
}

// AuditEntry is a decrypted audit event as returned to viewers. Action
// is plaintext, or a sentinel marker when the record could not be
// decrypted.
type AuditEntry struct {
	Timestamp time.Time
	Username  string
	Role      string
	Action    string
}
