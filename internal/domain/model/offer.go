package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

// ErrOfferExpired is returned when accepting an offer past its validity window.
var ErrOfferExpired = errors.New("offer has expired")

// ---------------------------------------------------------------------------
// Offer aggregate root
// ---------------------------------------------------------------------------

// Offer is a dealer's counter-offer on a finance request.
type Offer struct {
	id               uuid.UUID
	financeRequestID uuid.UUID
	customerID       uuid.UUID
	dealerUserID     uuid.UUID
	monthlyPayment   decimal.Decimal
	downPayment      decimal.Decimal
	termMonths       int
	interestRate     decimal.Decimal
	totalCost        decimal.Decimal
	status           valueobject.OfferStatus
	notes            string
	validUntil       time.Time
	createdAt        time.Time
	updatedAt        time.Time
	domainEvents     []event.DomainEvent
}

// OfferTerms are the priced terms of a counter-offer.
type OfferTerms struct {
	MonthlyPayment decimal.Decimal
	DownPayment    decimal.Decimal
	TermMonths     int
	InterestRate   decimal.Decimal
	TotalCost      decimal.Decimal
	Notes          string
}

// NewOffer creates an active offer on a request that must still be open.
func NewOffer(
	request FinanceRequest,
	dealerUserID uuid.UUID,
	terms OfferTerms,
	validUntil, now time.Time,
) (Offer, error) {
	if !request.Status().IsOpen() {
		return Offer{}, valueobject.ErrInvalidStatusTransition
	}
	if dealerUserID == uuid.Nil {
		return Offer{}, valueobject.Invalid("dealer user ID is required")
	}
	if terms.TermMonths <= 0 {
		return Offer{}, valueobject.Invalid("offer term months must be positive")
	}
	if terms.InterestRate.IsNegative() {
		return Offer{}, valueobject.Invalid("offer interest rate must not be negative")
	}
	if terms.DownPayment.IsNegative() {
		return Offer{}, valueobject.Invalid("offer down payment must not be negative")
	}
	if !validUntil.After(now) {
		return Offer{}, valueobject.Invalid("offer must be valid for a future period")
	}

	id := uuid.New()
	o := Offer{
		id:               id,
		financeRequestID: request.ID(),
		customerID:       request.UserID(),
		dealerUserID:     dealerUserID,
		monthlyPayment:   terms.MonthlyPayment,
		downPayment:      terms.DownPayment,
		termMonths:       terms.TermMonths,
		interestRate:     terms.InterestRate,
		totalCost:        terms.TotalCost,
		status:           valueobject.OfferStatusActive,
		notes:            terms.Notes,
		validUntil:       validUntil,
		createdAt:        now,
		updatedAt:        now,
	}
	o.domainEvents = append(o.domainEvents, event.NewOfferCreated(
		id, request.ID(), request.UserID(),
		terms.MonthlyPayment, terms.DownPayment, terms.InterestRate,
		terms.TermMonths, validUntil, now,
	))
	return o, nil
}

// ReconstructOffer rebuilds an offer from persistence without side-effects.
func ReconstructOffer(
	id, financeRequestID, customerID, dealerUserID uuid.UUID,
	terms OfferTerms,
	status valueobject.OfferStatus,
	validUntil, createdAt, updatedAt time.Time,
) Offer {
	return Offer{
		id:               id,
		financeRequestID: financeRequestID,
		customerID:       customerID,
		dealerUserID:     dealerUserID,
		monthlyPayment:   terms.MonthlyPayment,
		downPayment:      terms.DownPayment,
		termMonths:       terms.TermMonths,
		interestRate:     terms.InterestRate,
		totalCost:        terms.TotalCost,
		status:           status,
		notes:            terms.Notes,
		validUntil:       validUntil,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// IsExpiredAt reports whether the validity window has passed.
func (o Offer) IsExpiredAt(now time.Time) bool {
	return now.After(o.validUntil)
}

// Accept transitions active -> accepted. An active offer past its window
// cannot be accepted and ErrOfferExpired is returned.
func (o Offer) Accept(now time.Time) (Offer, error) {
	if !o.status.Equal(valueobject.OfferStatusActive) {
		return o, valueobject.ErrInvalidStatusTransition
	}
	if o.IsExpiredAt(now) {
		return o, ErrOfferExpired
	}
	next := o.withStatus(valueobject.OfferStatusAccepted, now)
	next.domainEvents = append(next.domainEvents, event.NewOfferAccepted(
		o.id, o.financeRequestID, o.customerID, o.dealerUserID, now,
	))
	return next, nil
}

// Reject transitions active -> rejected.
func (o Offer) Reject(now time.Time) (Offer, error) {
	if !o.status.Equal(valueobject.OfferStatusActive) {
		return o, valueobject.ErrInvalidStatusTransition
	}
	next := o.withStatus(valueobject.OfferStatusRejected, now)
	next.domainEvents = append(next.domainEvents, event.NewOfferRejected(
		o.id, o.financeRequestID, o.customerID, o.dealerUserID, now,
	))
	return next, nil
}

// Expire transitions active -> expired once the window has passed.
func (o Offer) Expire(now time.Time) (Offer, error) {
	if !o.status.Equal(valueobject.OfferStatusActive) || !o.IsExpiredAt(now) {
		return o, valueobject.ErrInvalidStatusTransition
	}
	return o.withStatus(valueobject.OfferStatusExpired, now), nil
}

func (o Offer) withStatus(s valueobject.OfferStatus, now time.Time) Offer {
	next := o
	next.status = s
	next.updatedAt = now
	next.domainEvents = copyEvents(o.domainEvents)
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (o Offer) ID() uuid.UUID                     { return o.id }
func (o Offer) FinanceRequestID() uuid.UUID       { return o.financeRequestID }
func (o Offer) CustomerID() uuid.UUID             { return o.customerID }
func (o Offer) DealerUserID() uuid.UUID           { return o.dealerUserID }
func (o Offer) MonthlyPayment() decimal.Decimal   { return o.monthlyPayment }
func (o Offer) DownPayment() decimal.Decimal      { return o.downPayment }
func (o Offer) TermMonths() int                   { return o.termMonths }
func (o Offer) InterestRate() decimal.Decimal     { return o.interestRate }
func (o Offer) TotalCost() decimal.Decimal        { return o.totalCost }
func (o Offer) Status() valueobject.OfferStatus   { return o.status }
func (o Offer) Notes() string                     { return o.notes }
func (o Offer) ValidUntil() time.Time             { return o.validUntil }
func (o Offer) CreatedAt() time.Time              { return o.createdAt }
func (o Offer) UpdatedAt() time.Time              { return o.updatedAt }
func (o Offer) DomainEvents() []event.DomainEvent { return o.domainEvents }

// Terms returns the priced terms of the offer.
func (o Offer) Terms() OfferTerms {
	return OfferTerms{
		MonthlyPayment: o.monthlyPayment,
		DownPayment:    o.downPayment,
		TermMonths:     o.termMonths,
		InterestRate:   o.interestRate,
		TotalCost:      o.totalCost,
		Notes:          o.notes,
	}
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (o Offer) ClearEvents() Offer {
	next := o
	next.domainEvents = nil
	return next
}
