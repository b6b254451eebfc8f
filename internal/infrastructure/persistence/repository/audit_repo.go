package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/branchbooks/reviewd/internal/application/port"
	"github.com/branchbooks/reviewd/internal/domain/review"
	"github.com/branchbooks/reviewd/pkg/database"
)

// AuditRepository implements the audit sink and reader on sqlite. The
// review_audit_log table is append-only: rows are inserted once per
// committed transition and never updated or deleted.
type AuditRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *database.DB, logger *zap.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Record appends one audit entry
func (r *AuditRepository) Record(ctx context.Context, entry *review.AuditEntry) error {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO review_audit_log (
			record_kind, record_id, previous_state, new_state,
			observations, reviewed_by, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RecordKind.String(),
		entry.RecordID,
		entry.PreviousState.String(),
		entry.NewState.String(),
		entry.Observations,
		entry.ReviewedBy,
		entry.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to append audit entry",
			zap.String("kind", entry.RecordKind.String()),
			zap.String("record_id", entry.RecordID), zap.Error(err))
		return fmt.Errorf("append audit entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("audit entry id: %w", err)
	}
	entry.ID = id
	return nil
}

// ListByRecord returns the audit entries of one record in commit order
func (r *AuditRepository) ListByRecord(ctx context.Context, kind review.Kind, recordID string) ([]*review.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, record_kind, record_id, previous_state, new_state,
			observations, reviewed_by, timestamp
		FROM review_audit_log
		WHERE record_kind = ? AND record_id = ?
		ORDER BY id`,
		kind.String(), recordID,
	)
	if err != nil {
		r.logger.Error("Failed to load audit trail",
			zap.String("kind", kind.String()), zap.String("record_id", recordID), zap.Error(err))
		return nil, storageError("load audit trail", err)
	}
	defer rows.Close()

	var entries []*review.AuditEntry
	for rows.Next() {
		var (
			entry review.AuditEntry
			obs   sql.NullString
		)
		err := rows.Scan(
			&entry.ID, &entry.RecordKind, &entry.RecordID,
			&entry.PreviousState, &entry.NewState,
			&obs, &entry.ReviewedBy, &entry.Timestamp,
		)
		if err != nil {
			return nil, storageError("scan audit entry", err)
		}
		entry.Observations = nullableString(obs)
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("load audit trail", err)
	}
	return entries, nil
}

// Verify interface compliance
var (
	_ port.AuditSink   = (*AuditRepository)(nil)
	_ port.AuditReader = (*AuditRepository)(nil)
)
