package review

import "time"

// AuditEntry is the immutable record of one committed review transition.
// Exactly one entry is written per successful transition, including
// self-transitions; entries are never updated or deleted.
type AuditEntry struct {
	ID            int64     `json:"id"`
	RecordKind    Kind      `json:"record_kind"`
	RecordID      string    `json:"record_id"`
	PreviousState State     `json:"previous_state"`
	NewState      State     `json:"new_state"`
	Observations  *string   `json:"observations,omitempty"`
	ReviewedBy    string    `json:"reviewed_by"`
	Timestamp     time.Time `json:"timestamp"`
}
