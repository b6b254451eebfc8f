package entity

import (
	"time"

	"github.com/branchbooks/reviewd/internal/domain/review"
)

// SalesRecord represents a daily sales closure for a branch
type SalesRecord struct {
	ID                 string       `json:"id"`
	WorkerID           string       `json:"worker_id"`
	BranchID           string       `json:"branch_id"`
	ClosureDate        time.Time    `json:"closure_date"`
	ClosureNumber      string       `json:"closure_number"`
	SalesTotal         float64      `json:"sales_total"`
	CardTotal          float64      `json:"card_total"`
	CashTotal          float64      `json:"cash_total"`
	Notes              *string      `json:"notes,omitempty"`
	State              review.State `json:"review_state"`
	ReviewObservations *string      `json:"review_observations,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}

func (s *SalesRecord) GetID() string                  { return s.ID }
func (s *SalesRecord) GetKind() review.Kind           { return review.KindSales }
func (s *SalesRecord) ReviewState() review.State      { return s.State }
func (s *SalesRecord) SetReviewState(st review.State) { s.State = st }
func (s *SalesRecord) Observations() *string          { return s.ReviewObservations }
func (s *SalesRecord) SetObservations(text *string)   { s.ReviewObservations = text }

var _ review.Reviewable = (*SalesRecord)(nil)
