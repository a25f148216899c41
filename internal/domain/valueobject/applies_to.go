package valueobject

// ---------------------------------------------------------------------------
// AppliesTo – package targeting discriminator
// ---------------------------------------------------------------------------

// AppliesTo states which vehicles a finance package targets: every vehicle,
// one model, one trim or a single catalog vehicle.
type AppliesTo struct {
	kind  string
	value string
}

const (
	AppliesToAll   = "all"
	AppliesToModel = "model"
	AppliesToTrim  = "trim"
	AppliesToCar   = "car"
)

// AppliesToEveryVehicle targets the whole catalog.
var AppliesToEveryVehicle = AppliesTo{kind: AppliesToAll}

// NewAppliesTo validates the kind and requires a value for every kind but "all".
func NewAppliesTo(kind, value string) (AppliesTo, error) {
	switch kind {
	case AppliesToAll:
		return AppliesTo{kind: kind}, nil
	case AppliesToModel, AppliesToTrim, AppliesToCar:
		if value == "" {
			return AppliesTo{}, Invalid("applies-to value is required for kind %s", kind)
		}
		return AppliesTo{kind: kind, value: value}, nil
	default:
		return AppliesTo{}, Invalid("invalid applies-to kind: %q", kind)
	}
}

func (a AppliesTo) Kind() string  { return a.kind }
func (a AppliesTo) Value() string { return a.value }

// Resolves reports whether the target matches a vehicle identified by its
// catalog id, model and trim. Matching is exact.
func (a AppliesTo) Resolves(vehicleID, model, trim string) bool {
	switch a.kind {
	case AppliesToAll:
		return true
	case AppliesToModel:
		return a.value == model
	case AppliesToTrim:
		return a.value == trim
	case AppliesToCar:
		return a.value == vehicleID
	default:
		return false
	}
}

// Specificity ranks how narrowly the package is targeted: car 2, trim 1,
// anything else 0.
func (a AppliesTo) Specificity() int {
	switch a.kind {
	case AppliesToCar:
		return 2
	case AppliesToTrim:
		return 1
	default:
		return 0
	}
}
