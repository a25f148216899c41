package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

// DefaultDealershipID is used when a request does not name a dealership.
const DefaultDealershipID = "default-dealership"

// ---------------------------------------------------------------------------
// FinanceRequest aggregate root
// ---------------------------------------------------------------------------

// FinanceRequest is a customer's application to finance or lease a vehicle.
// It is immutable; every transition returns a new copy.
type FinanceRequest struct {
	id             uuid.UUID
	userID         uuid.UUID
	carID          string
	dealershipID   string
	financeType    valueobject.PlanType
	credit         valueobject.CreditProfile
	termMonths     int
	annualMileage  *int
	downPayment    decimal.Decimal
	monthlyPayment decimal.Decimal
	status         valueobject.FinanceRequestStatus
	dealerNotes    string
	version        int
	createdAt      time.Time
	updatedAt      time.Time
	domainEvents   []event.DomainEvent
}

// FinanceApplication carries the customer-entered fields of a new request.
type FinanceApplication struct {
	UserID        uuid.UUID
	CarID         string
	DealershipID  string
	FinanceType   valueobject.PlanType
	Credit        valueobject.CreditProfile
	TermMonths    int
	AnnualMileage *int
	DownPayment   decimal.Decimal
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewFinanceRequest validates the application and creates a pending request
// carrying the estimated monthly payment.
func NewFinanceRequest(
	app FinanceApplication,
	estimatedMonthly decimal.Decimal,
	now time.Time,
) (FinanceRequest, error) {
	if app.UserID == uuid.Nil {
		return FinanceRequest{}, valueobject.Invalid("user ID is required")
	}
	if app.CarID == "" {
		return FinanceRequest{}, valueobject.Invalid("car ID is required")
	}
	if app.FinanceType.IsZero() {
		return FinanceRequest{}, valueobject.Invalid("finance type is required")
	}
	if app.Credit.Score() == 0 {
		return FinanceRequest{}, valueobject.Invalid("credit profile is required")
	}
	if app.TermMonths < valueobject.MinTermMonths || app.TermMonths > valueobject.MaxTermMonths {
		return FinanceRequest{}, valueobject.Invalid("term length must be between %d and %d months",
			valueobject.MinTermMonths, valueobject.MaxTermMonths)
	}
	if app.DownPayment.IsNegative() {
		return FinanceRequest{}, valueobject.Invalid("down payment must not be negative")
	}
	if app.AnnualMileage != nil && *app.AnnualMileage < 0 {
		return FinanceRequest{}, valueobject.Invalid("annual mileage must not be negative")
	}

	dealershipID := app.DealershipID
	if dealershipID == "" {
		dealershipID = DefaultDealershipID
	}

	id := uuid.New()
	req := FinanceRequest{
		id:             id,
		userID:         app.UserID,
		carID:          app.CarID,
		dealershipID:   dealershipID,
		financeType:    app.FinanceType,
		credit:         app.Credit,
		termMonths:     app.TermMonths,
		annualMileage:  copyInt(app.AnnualMileage),
		downPayment:    app.DownPayment,
		monthlyPayment: estimatedMonthly,
		status:         valueobject.FinanceRequestStatusPending,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}

	req.domainEvents = append(req.domainEvents, event.NewFinanceRequestSubmitted(
		id, app.UserID, app.CarID, dealershipID, app.FinanceType.String(),
		app.TermMonths, app.DownPayment, estimatedMonthly, now,
	))
	return req, nil
}

// ReconstructFinanceRequest rebuilds an aggregate from persistence without side-effects.
func ReconstructFinanceRequest(
	id uuid.UUID,
	app FinanceApplication,
	monthlyPayment decimal.Decimal,
	status valueobject.FinanceRequestStatus,
	dealerNotes string,
	version int,
	createdAt, updatedAt time.Time,
) FinanceRequest {
	return FinanceRequest{
		id:             id,
		userID:         app.UserID,
		carID:          app.CarID,
		dealershipID:   app.DealershipID,
		financeType:    app.FinanceType,
		credit:         app.Credit,
		termMonths:     app.TermMonths,
		annualMileage:  copyInt(app.AnnualMileage),
		downPayment:    app.DownPayment,
		monthlyPayment: monthlyPayment,
		status:         status,
		dealerNotes:    dealerNotes,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Approve moves an open request to approved.
func (r FinanceRequest) Approve(notes string, now time.Time) (FinanceRequest, error) {
	if !r.status.IsOpen() {
		return r, valueobject.ErrInvalidStatusTransition
	}
	return r.transition(valueobject.FinanceRequestStatusApproved, notes, now), nil
}

// Reject moves an open request to rejected.
func (r FinanceRequest) Reject(notes string, now time.Time) (FinanceRequest, error) {
	if !r.status.IsOpen() {
		return r, valueobject.ErrInvalidStatusTransition
	}
	return r.transition(valueobject.FinanceRequestStatusRejected, notes, now), nil
}

// MarkCounterOffered records that a dealer offer is outstanding. A request
// already in counter-offer can receive further offers.
func (r FinanceRequest) MarkCounterOffered(now time.Time) (FinanceRequest, error) {
	return r.counterOffer("", now)
}

// counterOffer moves an open request to counter-offer. Empty notes keep the
// current dealer notes.
func (r FinanceRequest) counterOffer(notes string, now time.Time) (FinanceRequest, error) {
	if !r.status.IsOpen() {
		return r, valueobject.ErrInvalidStatusTransition
	}
	if notes == "" {
		notes = r.dealerNotes
	}
	return r.transition(valueobject.FinanceRequestStatusCounterOffer, notes, now), nil
}

// Accept closes the request after the customer accepts a counter-offer.
func (r FinanceRequest) Accept(now time.Time) (FinanceRequest, error) {
	if !r.status.Equal(valueobject.FinanceRequestStatusCounterOffer) {
		return r, valueobject.ErrInvalidStatusTransition
	}
	return r.transition(valueobject.FinanceRequestStatusAccepted, r.dealerNotes, now), nil
}

// ChangeStatus applies an admin review decision by target status.
func (r FinanceRequest) ChangeStatus(target valueobject.FinanceRequestStatus, notes string, now time.Time) (FinanceRequest, error) {
	switch target {
	case valueobject.FinanceRequestStatusApproved:
		return r.Approve(notes, now)
	case valueobject.FinanceRequestStatusRejected:
		return r.Reject(notes, now)
	case valueobject.FinanceRequestStatusCounterOffer:
		return r.counterOffer(notes, now)
	default:
		return r, fmt.Errorf("%w: %s -> %s", valueobject.ErrInvalidStatusTransition, r.status, target)
	}
}

func (r FinanceRequest) transition(to valueobject.FinanceRequestStatus, notes string, now time.Time) FinanceRequest {
	next := r
	next.status = to
	next.dealerNotes = notes
	next.updatedAt = now
	next.domainEvents = copyEvents(r.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewFinanceRequestStatusChanged(
		r.id, r.userID, r.status.String(), to.String(), notes, now,
	))
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (r FinanceRequest) ID() uuid.UUID                            { return r.id }
func (r FinanceRequest) UserID() uuid.UUID                        { return r.userID }
func (r FinanceRequest) CarID() string                            { return r.carID }
func (r FinanceRequest) DealershipID() string                     { return r.dealershipID }
func (r FinanceRequest) FinanceType() valueobject.PlanType        { return r.financeType }
func (r FinanceRequest) Credit() valueobject.CreditProfile        { return r.credit }
func (r FinanceRequest) TermMonths() int                          { return r.termMonths }
func (r FinanceRequest) DownPayment() decimal.Decimal             { return r.downPayment }
func (r FinanceRequest) MonthlyPayment() decimal.Decimal          { return r.monthlyPayment }
func (r FinanceRequest) Status() valueobject.FinanceRequestStatus { return r.status }
func (r FinanceRequest) DealerNotes() string                      { return r.dealerNotes }
func (r FinanceRequest) Version() int                             { return r.version }
func (r FinanceRequest) CreatedAt() time.Time                     { return r.createdAt }
func (r FinanceRequest) UpdatedAt() time.Time                     { return r.updatedAt }
func (r FinanceRequest) DomainEvents() []event.DomainEvent        { return r.domainEvents }

// AnnualMileage returns the requested yearly mileage, if given.
func (r FinanceRequest) AnnualMileage() (int, bool) {
	if r.annualMileage == nil {
		return 0, false
	}
	return *r.annualMileage, true
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (r FinanceRequest) ClearEvents() FinanceRequest {
	next := r
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func copyEvents(src []event.DomainEvent) []event.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]event.DomainEvent, len(src))
	copy(dst, src)
	return dst
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
