package entity

import (
	"time"

	"github.com/branchbooks/reviewd/internal/domain/review"
)

// PayrollEntry represents a single payroll payment to a worker
type PayrollEntry struct {
	ID                 string       `json:"id"`
	WorkerID           string       `json:"worker_id"`
	BranchID           string       `json:"branch_id"`
	Date               time.Time    `json:"date"`
	DaysWorked         float64      `json:"days_worked"`
	Amount             float64      `json:"amount"`
	PayrollType        string       `json:"payroll_type"`
	Notes              *string      `json:"notes,omitempty"`
	State              review.State `json:"review_state"`
	ReviewObservations *string      `json:"review_observations,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}

func (p *PayrollEntry) GetID() string                 { return p.ID }
func (p *PayrollEntry) GetKind() review.Kind          { return review.KindPayroll }
func (p *PayrollEntry) ReviewState() review.State     { return p.State }
func (p *PayrollEntry) SetReviewState(s review.State) { p.State = s }
func (p *PayrollEntry) Observations() *string         { return p.ReviewObservations }
func (p *PayrollEntry) SetObservations(text *string)  { p.ReviewObservations = text }

var _ review.Reviewable = (*PayrollEntry)(nil)
