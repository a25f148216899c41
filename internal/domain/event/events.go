package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	aggregateFinanceRequest = "FinanceRequest"
	aggregateOffer          = "Offer"
)

// Event type names as they appear on the wire.
const (
	TypeFinanceRequestSubmitted     = "finance.request.submitted"
	TypeFinanceRequestStatusChanged = "finance.request.status_changed"
	TypeOfferCreated                = "finance.offer.created"
	TypeOfferAccepted               = "finance.offer.accepted"
	TypeOfferRejected               = "finance.offer.rejected"
)

// ---------------------------------------------------------------------------
// Finance Request Events
// ---------------------------------------------------------------------------

// FinanceRequestSubmitted is raised when a customer submits a finance request.
type FinanceRequestSubmitted struct {
	events.BaseEvent
	UserID         uuid.UUID       `json:"user_id"`
	CarID          string          `json:"car_id"`
	DealershipID   string          `json:"dealership_id"`
	FinanceType    string          `json:"finance_type"`
	TermMonths     int             `json:"term_months"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
}

func NewFinanceRequestSubmitted(
	requestID, userID uuid.UUID,
	carID, dealershipID, financeType string,
	termMonths int,
	downPayment, monthlyPayment decimal.Decimal,
	now time.Time,
) FinanceRequestSubmitted {
	return FinanceRequestSubmitted{
		BaseEvent:      events.NewBaseEvent(TypeFinanceRequestSubmitted, requestID, aggregateFinanceRequest, now),
		UserID:         userID,
		CarID:          carID,
		DealershipID:   dealershipID,
		FinanceType:    financeType,
		TermMonths:     termMonths,
		DownPayment:    downPayment,
		MonthlyPayment: monthlyPayment,
	}
}

// FinanceRequestStatusChanged is raised on every review decision.
type FinanceRequestStatusChanged struct {
	events.BaseEvent
	UserID      uuid.UUID `json:"user_id"`
	FromStatus  string    `json:"from_status"`
	ToStatus    string    `json:"to_status"`
	DealerNotes string    `json:"dealer_notes,omitempty"`
}

func NewFinanceRequestStatusChanged(
	requestID, userID uuid.UUID,
	from, to, notes string,
	now time.Time,
) FinanceRequestStatusChanged {
	return FinanceRequestStatusChanged{
		BaseEvent:   events.NewBaseEvent(TypeFinanceRequestStatusChanged, requestID, aggregateFinanceRequest, now),
		UserID:      userID,
		FromStatus:  from,
		ToStatus:    to,
		DealerNotes: notes,
	}
}

// ---------------------------------------------------------------------------
// Offer Events
// ---------------------------------------------------------------------------

// OfferCreated is raised when a dealer counter-offers on a request.
type OfferCreated struct {
	events.BaseEvent
	FinanceRequestID uuid.UUID       `json:"finance_request_id"`
	UserID           uuid.UUID       `json:"user_id"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	TermMonths       int             `json:"term_months"`
	ValidUntil       time.Time       `json:"valid_until"`
}

func NewOfferCreated(
	offerID, requestID, userID uuid.UUID,
	monthly, down, rate decimal.Decimal,
	termMonths int,
	validUntil, now time.Time,
) OfferCreated {
	return OfferCreated{
		BaseEvent:        events.NewBaseEvent(TypeOfferCreated, offerID, aggregateOffer, now),
		FinanceRequestID: requestID,
		UserID:           userID,
		MonthlyPayment:   monthly,
		DownPayment:      down,
		InterestRate:     rate,
		TermMonths:       termMonths,
		ValidUntil:       validUntil,
	}
}

// OfferAccepted is raised when the customer accepts a counter-offer.
type OfferAccepted struct {
	events.BaseEvent
	FinanceRequestID uuid.UUID `json:"finance_request_id"`
	UserID           uuid.UUID `json:"user_id"`
	DealerUserID     uuid.UUID `json:"dealer_user_id"`
}

func NewOfferAccepted(offerID, requestID, userID, dealerUserID uuid.UUID, now time.Time) OfferAccepted {
	return OfferAccepted{
		BaseEvent:        events.NewBaseEvent(TypeOfferAccepted, offerID, aggregateOffer, now),
		FinanceRequestID: requestID,
		UserID:           userID,
		DealerUserID:     dealerUserID,
	}
}

// OfferRejected is raised when the customer declines a counter-offer.
type OfferRejected struct {
	events.BaseEvent
	FinanceRequestID uuid.UUID `json:"finance_request_id"`
	UserID           uuid.UUID `json:"user_id"`
	DealerUserID     uuid.UUID `json:"dealer_user_id"`
}

func NewOfferRejected(offerID, requestID, userID, dealerUserID uuid.UUID, now time.Time) OfferRejected {
	return OfferRejected{
		BaseEvent:        events.NewBaseEvent(TypeOfferRejected, offerID, aggregateOffer, now),
		FinanceRequestID: requestID,
		UserID:           userID,
		DealerUserID:     dealerUserID,
	}
}
