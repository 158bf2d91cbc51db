// Package auditlog provides persistence for encrypted audit records.
// The interface is deliberately append-only: no update or delete
// operation exists on the log.
package auditlog

import (
	"context"

	"gradebook/internal/models"
)

type Repository interface {
	Append(ctx context.Context, rec *models.AuditRecord) error
	// ListDescending returns all records, most recent insertion first.
	ListDescending(ctx context.Context) ([]models.AuditRecord, error)
}
