package testutil

import (
	"time"

	"github.com/google/uuid"
)

// Fixed values for deterministic tests.
var (
	ApplicationID = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	CreditID      = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")

	// Now is the evaluation instant used across conveyor tests.
	Now = time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)
)
