package review

import "fmt"

// Kind identifies which domain collection a reviewable record belongs to.
// It routes a request to the right repository table and carries no review
// semantics of its own.
type Kind string

const (
	KindExpense Kind = "expense"
	KindPayroll Kind = "payroll"
	KindSales   Kind = "sales"
)

var validKinds = map[Kind]bool{
	KindExpense: true,
	KindPayroll: true,
	KindSales:   true,
}

// ParseKind parses a raw string into a Kind
func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	if !validKinds[k] {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
	return k, nil
}

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind is a known record kind
func (k Kind) IsValid() bool {
	return validKinds[k]
}
