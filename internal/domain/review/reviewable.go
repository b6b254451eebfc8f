package review

// Reviewable is the capability a domain record must expose for the review
// engine to operate on it. Expense, payroll and sales records implement it;
// the engine never sees any other domain field.
type Reviewable interface {
	GetID() string
	GetKind() Kind
	ReviewState() State
	SetReviewState(s State)
	// Observations returns the reviewer's free-text comments, nil when none
	// have been recorded.
	Observations() *string
	// SetObservations replaces the reviewer comments. A nil value clears any
	// prior text; each review action states its own rationale.
	SetObservations(text *string)
}

// Actor identifies the caller of a review operation together with its
// admin capability. Authentication happens upstream; the engine only ever
// consumes this assertion.
type Actor struct {
	ID    string
	Admin bool
}
