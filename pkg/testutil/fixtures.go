package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing
var (
	TestCustomerID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestOtherID    = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestDealerID   = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestAdminID    = uuid.MustParse("00000000-0000-0000-0000-000000000020")
)
