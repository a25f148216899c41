package valueobject

import "errors"

// ErrInvalidStatusTransition is returned when a lifecycle transition is not
// allowed from the current status.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

// ---------------------------------------------------------------------------
// FinanceRequestStatus – immutable value object
// ---------------------------------------------------------------------------

// FinanceRequestStatus is the review stage of a customer's finance request.
type FinanceRequestStatus struct {
	value string
}

const (
	requestStatusPending      = "pending"
	requestStatusApproved     = "approved"
	requestStatusRejected     = "rejected"
	requestStatusCounterOffer = "counter-offer"
	requestStatusAccepted     = "accepted"
)

var (
	FinanceRequestStatusPending      = FinanceRequestStatus{value: requestStatusPending}
	FinanceRequestStatusApproved     = FinanceRequestStatus{value: requestStatusApproved}
	FinanceRequestStatusRejected     = FinanceRequestStatus{value: requestStatusRejected}
	FinanceRequestStatusCounterOffer = FinanceRequestStatus{value: requestStatusCounterOffer}
	FinanceRequestStatusAccepted     = FinanceRequestStatus{value: requestStatusAccepted}
)

var validFinanceRequestStatuses = map[string]FinanceRequestStatus{
	requestStatusPending:      FinanceRequestStatusPending,
	requestStatusApproved:     FinanceRequestStatusApproved,
	requestStatusRejected:     FinanceRequestStatusRejected,
	requestStatusCounterOffer: FinanceRequestStatusCounterOffer,
	requestStatusAccepted:     FinanceRequestStatusAccepted,
}

// NewFinanceRequestStatus creates a FinanceRequestStatus from a raw string.
func NewFinanceRequestStatus(s string) (FinanceRequestStatus, error) {
	v, ok := validFinanceRequestStatuses[s]
	if !ok {
		return FinanceRequestStatus{}, Invalid("invalid finance request status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s FinanceRequestStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s FinanceRequestStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s FinanceRequestStatus) Equal(other FinanceRequestStatus) bool {
	return s.value == other.value
}

// IsOpen is true while a dealer can still act on the request.
func (s FinanceRequestStatus) IsOpen() bool {
	return s.value == requestStatusPending || s.value == requestStatusCounterOffer
}

// ---------------------------------------------------------------------------
// OfferStatus – immutable value object
// ---------------------------------------------------------------------------

// OfferStatus is the state of a dealer counter-offer.
type OfferStatus struct {
	value string
}

const (
	offerStatusActive   = "active"
	offerStatusExpired  = "expired"
	offerStatusAccepted = "accepted"
	offerStatusRejected = "rejected"
)

var (
	OfferStatusActive   = OfferStatus{value: offerStatusActive}
	OfferStatusExpired  = OfferStatus{value: offerStatusExpired}
	OfferStatusAccepted = OfferStatus{value: offerStatusAccepted}
	OfferStatusRejected = OfferStatus{value: offerStatusRejected}
)

var validOfferStatuses = map[string]OfferStatus{
	offerStatusActive:   OfferStatusActive,
	offerStatusExpired:  OfferStatusExpired,
	offerStatusAccepted: OfferStatusAccepted,
	offerStatusRejected: OfferStatusRejected,
}

// NewOfferStatus creates an OfferStatus from a raw string.
func NewOfferStatus(s string) (OfferStatus, error) {
	v, ok := validOfferStatuses[s]
	if !ok {
		return OfferStatus{}, Invalid("invalid offer status: %q", s)
	}
	return v, nil
}

func (s OfferStatus) String() string { return s.value }

func (s OfferStatus) IsZero() bool { return s.value == "" }

func (s OfferStatus) Equal(other OfferStatus) bool { return s.value == other.value }
