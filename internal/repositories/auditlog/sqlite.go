package auditlog

import (
	"context"
	"fmt"
	"time"

	"gradebook/internal/dbx"
	"gradebook/internal/models"
)

// timestampLayout matches the human-readable format used in the logs
// table since the first deployment.
const timestampLayout = "2006-01-02 15:04:05"

// SQLiteRepository implements Repository over a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, rec *models.AuditRecord) error {
	query := `INSERT INTO logs (timestamp, username, role, action)
	          VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		rec.Timestamp.Format(timestampLayout), rec.Username, rec.Role, rec.Action)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListDescending(ctx context.Context) ([]models.AuditRecord, error) {
	query := `SELECT id, timestamp, username, role, action FROM logs
	          ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.AuditRecord
	for rows.Next() {
		var rec models.AuditRecord
		var ts string
		if err := rows.Scan(&rec.ID, &ts, &rec.Username, &rec.Role, &rec.Action); err != nil {
			return nil, err
		}
		// A malformed timestamp is display-only damage; keep the record.
		rec.Timestamp, _ = time.ParseInLocation(timestampLayout, ts, time.Local)
		result = append(result, rec)
	}
	return result, rows.Err()
}
