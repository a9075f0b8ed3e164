package service

import (
	"errors"
	"fmt"
)

var (
	// ErrLoanRefused matches every *RefusalError.
	ErrLoanRefused = errors.New("loan refused")

	// ErrUnclassifiedAttribute means an enumerated attribute carried a value
	// no rule knows how to price. It is a programming fault, not a decline.
	ErrUnclassifiedAttribute = errors.New("unclassified applicant attribute")
)

// RefusalReasonDenied is the reason every refusal rule reports.
const RefusalReasonDenied = "Loan Denied"

// RefusalError is a terminal business decline raised by one of the rules.
type RefusalError struct {
	Rule   string
	Reason string
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("loan refused by %s: %s", e.Rule, e.Reason)
}

// Is lets errors.Is(err, ErrLoanRefused) match any refusal.
func (e *RefusalError) Is(target error) bool {
	return target == ErrLoanRefused
}

func refuse(rule string) error {
	return &RefusalError{Rule: rule, Reason: RefusalReasonDenied}
}

func unclassified(attribute string, value fmt.Stringer) error {
	return fmt.Errorf("%w: %s %q", ErrUnclassifiedAttribute, attribute, value.String())
}
