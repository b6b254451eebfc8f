package service

import (
	"context"
	"fmt"
	"time"

	"github.com/branchbooks/reviewd/internal/application/port"
	"github.com/branchbooks/reviewd/internal/domain/review"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ReviewResult carries the outcome of a committed review transition.
// AuditWarning is non-nil when the state change committed but the audit
// entry could not be written; the transition is never rolled back for it.
type ReviewResult struct {
	Record       review.Reviewable
	AuditWarning error
}

// ReviewService applies review transitions to reviewable records
type ReviewService interface {
	ReviewRecord(ctx context.Context, kind review.Kind, id string, actor review.Actor, state review.State, observations *string) (*ReviewResult, error)
}

type reviewServiceImpl struct {
	repo      port.ReviewRepository
	auditSink port.AuditSink
	logger    Logger
	now       func() time.Time
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo port.ReviewRepository, auditSink port.AuditSink, logger Logger) ReviewService {
	return &reviewServiceImpl{
		repo:      repo,
		auditSink: auditSink,
		logger:    logger,
		now:       time.Now,
	}
}

// ReviewRecord sets a record's review state and observations, persists the
// record and appends one audit entry. Any of the six directed transitions
// among pending/approved/rejected is legal, including re-issuing the current
// state: a second approval with fresh observations is an independent,
// auditable review action, so no-op suppression is deliberately absent.
func (s *reviewServiceImpl) ReviewRecord(
	ctx context.Context,
	kind review.Kind,
	id string,
	actor review.Actor,
	state review.State,
	observations *string,
) (*ReviewResult, error) {
	// Admin gate comes first: no record data is touched for a non-admin
	// caller.
	if !actor.Admin {
		s.logger.Info("Review denied", "kind", kind.String(), "id", id, "actor", actor.ID)
		return nil, review.ErrForbidden
	}

	if !state.IsValid() {
		return nil, &review.InvalidStateError{Value: state.String()}
	}

	record, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		s.logger.Error("Failed to load record for review", "error", err, "kind", kind.String(), "id", id)
		return nil, err
	}

	// Previous state is captured before mutation so the audit entry reflects
	// the transition as observed by this call.
	previous := record.ReviewState()

	record.SetReviewState(state)
	record.SetObservations(observations)

	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error("Failed to persist review transition", "error", err, "kind", kind.String(), "id", id)
		return nil, fmt.Errorf("save record: %w", err)
	}

	result := &ReviewResult{Record: record}

	entry := &review.AuditEntry{
		RecordKind:    kind,
		RecordID:      id,
		PreviousState: previous,
		NewState:      state,
		Observations:  observations,
		ReviewedBy:    actor.ID,
		Timestamp:     s.now(),
	}

	// The saved record is the source of truth; a lost audit entry is
	// reported, not fatal.
	if err := s.auditSink.Record(ctx, entry); err != nil {
		s.logger.Error("Audit write failed after committed transition",
			"error", err, "kind", kind.String(), "id", id,
			"previous", previous.String(), "new", state.String())
		result.AuditWarning = fmt.Errorf("%w: %v", review.ErrAuditWriteFailed, err)
		return result, nil
	}

	s.logger.Info("Review transition applied",
		"kind", kind.String(), "id", id,
		"previous", previous.String(), "new", state.String(),
		"reviewed_by", actor.ID)

	return result, nil
}
