package port

import (
	"context"

	"github.com/branchbooks/reviewd/internal/domain/review"
)

// ReviewRepository defines persistence operations the review engine and the
// query service depend on. Implementations must guarantee:
//   - Save applies the whole record atomically with respect to concurrent
//     saves of the same id (last-writer-wins is acceptable, partial writes
//     are not).
//   - A record whose review state was never persisted loads as pending.
//   - List ordering follows creation order and is stable across calls
//     absent new writes.
type ReviewRepository interface {
	// FindByID loads the record with the given kind and id. Returns
	// review.ErrNotFound when absent.
	FindByID(ctx context.Context, kind review.Kind, id string) (review.Reviewable, error)

	// Save persists the full record
	Save(ctx context.Context, record review.Reviewable) error

	// ListByState returns records of the given kind in the given review
	// state, in creation order, applying skip/limit paging
	ListByState(ctx context.Context, kind review.Kind, state review.State, skip, limit int) ([]review.Reviewable, error)

	// ListPending is equivalent to ListByState with review.StatePending.
	// Kept distinct because it is the workflow's hottest path.
	ListPending(ctx context.Context, kind review.Kind, skip, limit int) ([]review.Reviewable, error)
}

// AuditSink records committed review transitions. Append-only: entries are
// never updated or deleted.
type AuditSink interface {
	Record(ctx context.Context, entry *review.AuditEntry) error
}

// AuditReader exposes the audit trail of a single record, in commit order
type AuditReader interface {
	ListByRecord(ctx context.Context, kind review.Kind, recordID string) ([]*review.AuditEntry, error)
}
