package review

import "fmt"

// State represents the review status of a record
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
)

var validStates = map[State]bool{
	StatePending:  true,
	StateApproved: true,
	StateRejected: true,
}

// ParseState parses a raw string into a State. Only the exact lowercase
// canonical values are accepted; anything else fails with InvalidStateError.
func ParseState(raw string) (State, error) {
	s := State(raw)
	if !validStates[s] {
		return "", &InvalidStateError{Value: raw}
	}
	return s, nil
}

// String returns the canonical string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is one of the three canonical values
func (s State) IsValid() bool {
	return validStates[s]
}

// InvalidStateError reports a review state string outside the canonical set
type InvalidStateError struct {
	Value string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid review state %q: must be one of pending, approved, rejected", e.Value)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}
