package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// ApplicationStatus – immutable value object
// ---------------------------------------------------------------------------

// ApplicationStatus represents the lifecycle stage of a loan application.
type ApplicationStatus struct {
	value string
}

const (
	appStatusPreapproval = "PREAPPROVAL"
	appStatusApproved    = "CC_APPROVED"
	appStatusDenied      = "CC_DENIED"
)

var (
	ApplicationStatusPreapproval = ApplicationStatus{value: appStatusPreapproval}
	ApplicationStatusApproved    = ApplicationStatus{value: appStatusApproved}
	ApplicationStatusDenied      = ApplicationStatus{value: appStatusDenied}
)

var validApplicationStatuses = map[string]ApplicationStatus{
	appStatusPreapproval: ApplicationStatusPreapproval,
	appStatusApproved:    ApplicationStatusApproved,
	appStatusDenied:      ApplicationStatusDenied,
}

// NewApplicationStatus creates an ApplicationStatus from a raw string.
func NewApplicationStatus(s string) (ApplicationStatus, error) {
	v, ok := validApplicationStatuses[s]
	if !ok {
		return ApplicationStatus{}, fmt.Errorf("invalid application status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s ApplicationStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s ApplicationStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s ApplicationStatus) Equal(other ApplicationStatus) bool {
	return s.value == other.value
}

// ---------------------------------------------------------------------------
// CreditStatus – immutable value object
// ---------------------------------------------------------------------------

// CreditStatus represents the lifecycle stage of a calculated credit.
type CreditStatus struct {
	value string
}

const (
	creditStatusCalculated = "CALCULATED"
	creditStatusIssued     = "ISSUED"
)

var (
	CreditStatusCalculated = CreditStatus{value: creditStatusCalculated}
	CreditStatusIssued     = CreditStatus{value: creditStatusIssued}
)

var validCreditStatuses = map[string]CreditStatus{
	creditStatusCalculated: CreditStatusCalculated,
	creditStatusIssued:     CreditStatusIssued,
}

// NewCreditStatus creates a CreditStatus from a raw string.
func NewCreditStatus(s string) (CreditStatus, error) {
	v, ok := validCreditStatuses[s]
	if !ok {
		return CreditStatus{}, fmt.Errorf("invalid credit status: %q", s)
	}
	return v, nil
}

func (s CreditStatus) String() string                { return s.value }
func (s CreditStatus) IsZero() bool                  { return s.value == "" }
func (s CreditStatus) Equal(other CreditStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
