package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Quote DTOs
// ---------------------------------------------------------------------------

// QuoteRequest prices a vehicle for a customer. Either VehicleID or
// VehiclePrice identifies the vehicle; a nil DownPayment uses the default.
// AnnualRate overrides the rate-table lookup when set.
type QuoteRequest struct {
	VehicleID     string           `json:"vehicle_id,omitempty"`
	VehiclePrice  *decimal.Decimal `json:"vehicle_price,omitempty"`
	CreditScore   int              `json:"credit_score"`
	DownPayment   *decimal.Decimal `json:"down_payment,omitempty"`
	TermMonths    int              `json:"term_months"`
	AnnualMileage int              `json:"annual_mileage,omitempty"`
	FinanceType   string           `json:"finance_type"`
	RateTable     string           `json:"rate_table,omitempty"`
	LeaseStrategy string           `json:"lease_strategy,omitempty"`
	AnnualRate    *decimal.Decimal `json:"annual_rate,omitempty"`
}

// QuoteResponse is the priced quote with guidance annotations.
type QuoteResponse struct {
	VehicleID       string           `json:"vehicle_id,omitempty"`
	VehiclePrice    decimal.Decimal  `json:"vehicle_price"`
	FinanceType     string           `json:"finance_type"`
	RateTable       string           `json:"rate_table"`
	AnnualRate      decimal.Decimal  `json:"annual_rate"`
	TermMonths      int              `json:"term_months"`
	DownPayment     decimal.Decimal  `json:"down_payment"`
	MonthlyPayment  decimal.Decimal  `json:"monthly_payment"`
	TotalOfPayments decimal.Decimal  `json:"total_of_payments"`
	TotalCost       decimal.Decimal  `json:"total_cost"`
	TotalInterest   decimal.Decimal  `json:"total_interest"`
	Lease           *LeaseDetails    `json:"lease,omitempty"`
	Bucket          BucketGuidance   `json:"bucket"`
	Package         *PackageResponse `json:"package,omitempty"`
	Display         QuoteDisplay     `json:"display"`
	Cached          bool             `json:"cached"`
}

// LeaseDetails is the lease-specific part of a quote.
type LeaseDetails struct {
	Strategy              string          `json:"strategy"`
	ResidualValue         decimal.Decimal `json:"residual_value"`
	CapitalizedCost       decimal.Decimal `json:"capitalized_cost"`
	MoneyFactor           decimal.Decimal `json:"money_factor"`
	DepreciationPerMonth  decimal.Decimal `json:"depreciation_per_month"`
	FinanceChargePerMonth decimal.Decimal `json:"finance_charge_per_month"`
	DepreciationTotal     decimal.Decimal `json:"depreciation_total"`
	TotalFinanceCharges   decimal.Decimal `json:"total_finance_charges"`
}

// QuoteDisplay holds whole-unit currency strings for rendering.
type QuoteDisplay struct {
	MonthlyPayment string `json:"monthly_payment"`
	TotalCost      string `json:"total_cost"`
	DownPayment    string `json:"down_payment"`
}

// BucketGuidance is the pricing-tier annotation of a quote.
type BucketGuidance struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	InRange             bool            `json:"in_range"`
	RecommendedTerms    []int           `json:"recommended_terms"`
	PopularTerm         int             `json:"popular_term"`
	Features            []string        `json:"features"`
	AdjustedDownPayment decimal.Decimal `json:"adjusted_down_payment"`
	Recommendations     []string        `json:"recommendations"`
}

// ClassifyRequest classifies a catalog vehicle or a raw price.
type ClassifyRequest struct {
	VehicleID    string           `json:"vehicle_id,omitempty"`
	VehiclePrice *decimal.Decimal `json:"vehicle_price,omitempty"`
	CreditScore  int              `json:"credit_score"`
}

// EstimateRequest is the quick estimator form.
type EstimateRequest struct {
	VehicleID   string           `json:"vehicle_id,omitempty"`
	MSRP        *decimal.Decimal `json:"msrp,omitempty"`
	CreditScore int              `json:"credit_score"`
	TermMonths  int              `json:"term_months"`
	CashDown    decimal.Decimal  `json:"cash_down"`
	TradeIn     decimal.Decimal  `json:"trade_in"`
	LocalOffer  bool             `json:"local_offer"`
}

// EstimateResponse shows finance and lease estimates side by side.
type EstimateResponse struct {
	MSRP            decimal.Decimal `json:"msrp"`
	DestinationFee  decimal.Decimal `json:"destination_fee"`
	APR             decimal.Decimal `json:"apr"`
	CapitalizedCost decimal.Decimal `json:"capitalized_cost"`
	FinanceMonthly  decimal.Decimal `json:"finance_monthly"`
	LeaseMonthly    decimal.Decimal `json:"lease_monthly"`
	LeaseTermMonths int             `json:"lease_term_months"`
	Lease           LeaseDetails    `json:"lease"`
}

// AdvisorRequest maps question IDs to chosen answer values.
type AdvisorRequest struct {
	Answers map[int]string `json:"answers"`
}

// AdvisorResponse is the questionnaire outcome.
type AdvisorResponse struct {
	Recommendation string `json:"recommendation"`
	LeaseScore     int    `json:"lease_score"`
	FinanceScore   int    `json:"finance_score"`
}

// ---------------------------------------------------------------------------
// Finance request DTOs
// ---------------------------------------------------------------------------

// SubmitFinanceRequest is a customer's application.
type SubmitFinanceRequest struct {
	UserID        uuid.UUID       `json:"user_id"`
	CarID         string          `json:"car_id"`
	DealershipID  string          `json:"dealership_id,omitempty"`
	FinanceType   string          `json:"finance_type"`
	CreditScore   int             `json:"credit_score"`
	AnnualIncome  decimal.Decimal `json:"annual_income"`
	TermMonths    int             `json:"term_months"`
	AnnualMileage *int            `json:"annual_mileage,omitempty"`
	DownPayment   decimal.Decimal `json:"down_payment"`
}

// GetFinanceRequest loads one request on behalf of a caller.
type GetFinanceRequest struct {
	ID          uuid.UUID
	RequesterID uuid.UUID
	IsStaff     bool
}

// UpdateFinanceRequestStatus is an admin review decision.
type UpdateFinanceRequestStatus struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	DealerNotes string    `json:"dealer_notes,omitempty"`
}

// FinanceRequestResponse is the read model of a finance request.
type FinanceRequestResponse struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	CarID          string          `json:"car_id"`
	DealershipID   string          `json:"dealership_id"`
	FinanceType    string          `json:"finance_type"`
	CreditScore    int             `json:"credit_score"`
	AnnualIncome   decimal.Decimal `json:"annual_income"`
	TermMonths     int             `json:"term_months"`
	AnnualMileage  *int            `json:"annual_mileage,omitempty"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Status         string          `json:"status"`
	DealerNotes    string          `json:"dealer_notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ---------------------------------------------------------------------------
// Offer DTOs
// ---------------------------------------------------------------------------

// CreateOfferRequest is a dealer counter-offer. A nil ValidUntil uses the
// configured validity window.
type CreateOfferRequest struct {
	FinanceRequestID uuid.UUID       `json:"finance_request_id"`
	DealerUserID     uuid.UUID       `json:"dealer_user_id"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	TermMonths       int             `json:"term_months"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	Notes            string          `json:"notes,omitempty"`
	ValidUntil       *time.Time      `json:"valid_until,omitempty"`
}

// RespondToOfferRequest accepts or rejects an offer.
type RespondToOfferRequest struct {
	OfferID uuid.UUID `json:"offer_id"`
	UserID  uuid.UUID `json:"user_id"`
	Accept  bool      `json:"accept"`
}

// ListOffersRequest lists the offers on a request on behalf of a caller.
type ListOffersRequest struct {
	FinanceRequestID uuid.UUID
	RequesterID      uuid.UUID
	IsStaff          bool
}

// OfferResponse is the read model of an offer.
type OfferResponse struct {
	ID               uuid.UUID       `json:"id"`
	FinanceRequestID uuid.UUID       `json:"finance_request_id"`
	DealerUserID     uuid.UUID       `json:"dealer_user_id"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	TermMonths       int             `json:"term_months"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	Status           string          `json:"status"`
	Notes            string          `json:"notes,omitempty"`
	ValidUntil       time.Time       `json:"valid_until"`
	CreatedAt        time.Time       `json:"created_at"`
}

// OfferGroup collects the offers made on one finance request.
type OfferGroup struct {
	FinanceRequestID uuid.UUID       `json:"finance_request_id"`
	Offers           []OfferResponse `json:"offers"`
}

// ---------------------------------------------------------------------------
// Package DTOs
// ---------------------------------------------------------------------------

// PackageRequest creates or updates a finance package. ID is ignored on create.
type PackageRequest struct {
	ID             uuid.UUID       `json:"id,omitempty"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Features       []string        `json:"features,omitempty"`
	PlanType       string          `json:"plan_type"`
	AppliesToType  string          `json:"applies_to_type"`
	AppliesToValue string          `json:"applies_to_value,omitempty"`
	TermMonths     int             `json:"term_months"`
	Rate           decimal.Decimal `json:"rate"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	Mileage        *int            `json:"mileage,omitempty"`
}

// PackageResponse is the read model of a finance package.
type PackageResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Features       []string        `json:"features,omitempty"`
	PlanType       string          `json:"plan_type"`
	AppliesToType  string          `json:"applies_to_type"`
	AppliesToValue string          `json:"applies_to_value,omitempty"`
	TermMonths     int             `json:"term_months"`
	Rate           decimal.Decimal `json:"rate"`
	DownPayment    decimal.Decimal `json:"down_payment"`
	Mileage        *int            `json:"mileage,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ---------------------------------------------------------------------------
// Directory and notification DTOs
// ---------------------------------------------------------------------------

// DealershipQuery filters dealerships. The first non-empty criterion in the
// order ID, Zip, City/State, Query is used; no criteria lists all.
type DealershipQuery struct {
	ID    string `json:"id,omitempty"`
	Zip   string `json:"zip,omitempty"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
	Query string `json:"query,omitempty"`
}

// VehicleResponse is a catalog entry.
type VehicleResponse struct {
	ID        string          `json:"id"`
	Make      string          `json:"make"`
	Model     string          `json:"model"`
	Year      int             `json:"year"`
	Trim      string          `json:"trim,omitempty"`
	BasePrice decimal.Decimal `json:"base_price"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// DealershipResponse is a directory entry.
type DealershipResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// NotificationResponse is a feed entry.
type NotificationResponse struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	ReferenceID uuid.UUID `json:"reference_id"`
	CreatedAt   time.Time `json:"created_at"`
}
