package service

import (
	"context"

	"github.com/branchbooks/reviewd/internal/application/port"
	"github.com/branchbooks/reviewd/internal/domain/review"
)

// QueryService lists reviewable records by review state. Both operations are
// pure reads: no audit entries, no mutation, safe to retry and to call
// concurrently.
type QueryService interface {
	// PendingReview returns the page of records awaiting review
	PendingReview(ctx context.Context, kind review.Kind, actor review.Actor, skip, limit int) ([]review.Reviewable, error)

	// ByReviewState parses rawState and returns the matching page of
	// records. An unparseable state fails before the repository is touched.
	ByReviewState(ctx context.Context, kind review.Kind, actor review.Actor, rawState string, skip, limit int) ([]review.Reviewable, error)

	// ReviewHistory returns the audit trail of one record in commit order
	ReviewHistory(ctx context.Context, kind review.Kind, actor review.Actor, recordID string) ([]*review.AuditEntry, error)
}

type queryServiceImpl struct {
	repo        port.ReviewRepository
	auditReader port.AuditReader
	logger      Logger
}

// NewQueryService creates a new QueryService
func NewQueryService(repo port.ReviewRepository, auditReader port.AuditReader, logger Logger) QueryService {
	return &queryServiceImpl{
		repo:        repo,
		auditReader: auditReader,
		logger:      logger,
	}
}

func (s *queryServiceImpl) PendingReview(ctx context.Context, kind review.Kind, actor review.Actor, skip, limit int) ([]review.Reviewable, error) {
	if !actor.Admin {
		return nil, review.ErrForbidden
	}

	records, err := s.repo.ListPending(ctx, kind, skip, limit)
	if err != nil {
		s.logger.Error("Failed to list pending records", "error", err, "kind", kind.String())
		return nil, err
	}
	return records, nil
}

func (s *queryServiceImpl) ByReviewState(ctx context.Context, kind review.Kind, actor review.Actor, rawState string, skip, limit int) ([]review.Reviewable, error) {
	if !actor.Admin {
		return nil, review.ErrForbidden
	}

	state, err := review.ParseState(rawState)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByState(ctx, kind, state, skip, limit)
	if err != nil {
		s.logger.Error("Failed to list records by state", "error", err, "kind", kind.String(), "state", rawState)
		return nil, err
	}
	return records, nil
}

func (s *queryServiceImpl) ReviewHistory(ctx context.Context, kind review.Kind, actor review.Actor, recordID string) ([]*review.AuditEntry, error) {
	if !actor.Admin {
		return nil, review.ErrForbidden
	}

	entries, err := s.auditReader.ListByRecord(ctx, kind, recordID)
	if err != nil {
		s.logger.Error("Failed to load review history", "error", err, "kind", kind.String(), "id", recordID)
		return nil, err
	}
	return entries, nil
}
