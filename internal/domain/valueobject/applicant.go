package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// EmploymentStatus – immutable value object
// ---------------------------------------------------------------------------

// EmploymentStatus describes how the applicant earns their income.
type EmploymentStatus struct {
	value string
}

const (
	employmentEmployed      = "EMPLOYED"
	employmentSelfEmployed  = "SELF_EMPLOYED"
	employmentBusinessOwner = "BUSINESS_OWNER"
	employmentUnemployed    = "UNEMPLOYED"
)

var (
	EmploymentStatusEmployed      = EmploymentStatus{value: employmentEmployed}
	EmploymentStatusSelfEmployed  = EmploymentStatus{value: employmentSelfEmployed}
	EmploymentStatusBusinessOwner = EmploymentStatus{value: employmentBusinessOwner}
	EmploymentStatusUnemployed    = EmploymentStatus{value: employmentUnemployed}
)

var validEmploymentStatuses = map[string]EmploymentStatus{
	employmentEmployed:      EmploymentStatusEmployed,
	employmentSelfEmployed:  EmploymentStatusSelfEmployed,
	employmentBusinessOwner: EmploymentStatusBusinessOwner,
	employmentUnemployed:    EmploymentStatusUnemployed,
}

// NewEmploymentStatus creates an EmploymentStatus from its wire name.
func NewEmploymentStatus(s string) (EmploymentStatus, error) {
	v, ok := validEmploymentStatuses[s]
	if !ok {
		return EmploymentStatus{}, fmt.Errorf("invalid employment status: %q", s)
	}
	return v, nil
}

// String returns the wire name.
func (s EmploymentStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s EmploymentStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s EmploymentStatus) Equal(other EmploymentStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// Position – immutable value object
// ---------------------------------------------------------------------------

// Position is the applicant's job position at their current employer.
type Position struct {
	value string
}

const (
	positionWorker     = "WORKER"
	positionMidManager = "MID_MANAGER"
	positionTopManager = "TOP_MANAGER"
	positionOwner      = "OWNER"
)

var (
	PositionWorker     = Position{value: positionWorker}
	PositionMidManager = Position{value: positionMidManager}
	PositionTopManager = Position{value: positionTopManager}
	PositionOwner      = Position{value: positionOwner}
)

var validPositions = map[string]Position{
	positionWorker:     PositionWorker,
	positionMidManager: PositionMidManager,
	positionTopManager: PositionTopManager,
	positionOwner:      PositionOwner,
}

// NewPosition creates a Position from its wire name.
func NewPosition(s string) (Position, error) {
	v, ok := validPositions[s]
	if !ok {
		return Position{}, fmt.Errorf("invalid position: %q", s)
	}
	return v, nil
}

func (p Position) String() string            { return p.value }
func (p Position) IsZero() bool              { return p.value == "" }
func (p Position) Equal(other Position) bool { return p.value == other.value }

// ---------------------------------------------------------------------------
// MaritalStatus – immutable value object
// ---------------------------------------------------------------------------

// MaritalStatus is the applicant's declared marital status.
type MaritalStatus struct {
	value string
}

const (
	maritalSingle       = "SINGLE"
	maritalMarried      = "MARRIED"
	maritalDivorced     = "DIVORCED"
	maritalWidowWidower = "WIDOW_WIDOWER"
)

var (
	MaritalStatusSingle       = MaritalStatus{value: maritalSingle}
	MaritalStatusMarried      = MaritalStatus{value: maritalMarried}
	MaritalStatusDivorced     = MaritalStatus{value: maritalDivorced}
	MaritalStatusWidowWidower = MaritalStatus{value: maritalWidowWidower}
)

var validMaritalStatuses = map[string]MaritalStatus{
	maritalSingle:       MaritalStatusSingle,
	maritalMarried:      MaritalStatusMarried,
	maritalDivorced:     MaritalStatusDivorced,
	maritalWidowWidower: MaritalStatusWidowWidower,
}

// NewMaritalStatus creates a MaritalStatus from its wire name.
func NewMaritalStatus(s string) (MaritalStatus, error) {
	v, ok := validMaritalStatuses[s]
	if !ok {
		return MaritalStatus{}, fmt.Errorf("invalid marital status: %q", s)
	}
	return v, nil
}

func (m MaritalStatus) String() string                 { return m.value }
func (m MaritalStatus) IsZero() bool                   { return m.value == "" }
func (m MaritalStatus) Equal(other MaritalStatus) bool { return m.value == other.value }

// ---------------------------------------------------------------------------
// Gender – immutable value object
// ---------------------------------------------------------------------------

// Gender is the applicant's declared gender category.
type Gender struct {
	value string
}

const (
	genderFemale    = "FEMALE"
	genderMale      = "MALE"
	genderNonBinary = "NON_BINARY"
)

var (
	GenderFemale    = Gender{value: genderFemale}
	GenderMale      = Gender{value: genderMale}
	GenderNonBinary = Gender{value: genderNonBinary}
)

var validGenders = map[string]Gender{
	genderFemale:    GenderFemale,
	genderMale:      GenderMale,
	genderNonBinary: GenderNonBinary,
}

// NewGender creates a Gender from its wire name.
func NewGender(s string) (Gender, error) {
	v, ok := validGenders[s]
	if !ok {
		return Gender{}, fmt.Errorf("invalid gender: %q", s)
	}
	return v, nil
}

func (g Gender) String() string          { return g.value }
func (g Gender) IsZero() bool            { return g.value == "" }
func (g Gender) Equal(other Gender) bool { return g.value == other.value }
