package entity

import (
	"time"

	"github.com/branchbooks/reviewd/internal/domain/review"
)

// Expense represents a business expense record
type Expense struct {
	ID                 string       `json:"id"`
	WorkerID           string       `json:"worker_id"`
	BranchID           string       `json:"branch_id"`
	ExpenseDate        time.Time    `json:"expense_date"`
	Description        string       `json:"description"`
	VendorPayee        string       `json:"vendor_payee"`
	Category           string       `json:"category"`
	TotalAmount        float64      `json:"total_amount"`
	Notes              *string      `json:"notes,omitempty"`
	State              review.State `json:"review_state"`
	ReviewObservations *string      `json:"review_observations,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func (e *Expense) GetID() string                 { return e.ID }
func (e *Expense) GetKind() review.Kind          { return review.KindExpense }
func (e *Expense) ReviewState() review.State     { return e.State }
func (e *Expense) SetReviewState(s review.State) { e.State = s }
func (e *Expense) Observations() *string         { return e.ReviewObservations }
func (e *Expense) SetObservations(text *string)  { e.ReviewObservations = text }

var _ review.Reviewable = (*Expense)(nil)
