package valueobject

// ---------------------------------------------------------------------------
// PlanType – finance (retail installment) or lease
// ---------------------------------------------------------------------------

// PlanType selects the payment engine and the packages a customer is eligible for.
type PlanType struct {
	value string
}

const (
	planTypeFinance = "finance"
	planTypeLease   = "lease"
)

var (
	PlanTypeFinance = PlanType{value: planTypeFinance}
	PlanTypeLease   = PlanType{value: planTypeLease}
)

// NewPlanType parses "finance" or "lease".
func NewPlanType(s string) (PlanType, error) {
	switch s {
	case planTypeFinance:
		return PlanTypeFinance, nil
	case planTypeLease:
		return PlanTypeLease, nil
	default:
		return PlanType{}, Invalid("invalid plan type: %q", s)
	}
}

func (p PlanType) String() string { return p.value }

func (p PlanType) IsZero() bool { return p.value == "" }

func (p PlanType) IsLease() bool { return p.value == planTypeLease }

func (p PlanType) Equal(other PlanType) bool { return p.value == other.value }
