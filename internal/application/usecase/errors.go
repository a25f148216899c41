package usecase

import "errors"

var (
	// ErrForbidden is returned when the caller may not act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrVehicleRequired is returned when neither a catalog vehicle nor a
	// price was supplied.
	ErrVehicleRequired = errors.New("vehicle ID or vehicle price is required")
)
