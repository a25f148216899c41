package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/service"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
	"github.com/dealerfin/dealerfin/pkg/money"
)

// DefaultQuoteDownPayment applies when a quote request carries no down payment.
var DefaultQuoteDownPayment = decimal.NewFromInt(2000)

var tracer = otel.Tracer("github.com/dealerfin/dealerfin/internal/application/usecase")

// QuotePaymentUseCase prices a finance or lease quote and annotates it with
// bucket guidance and the best-matching dealer package.
type QuotePaymentUseCase struct {
	catalog    port.VehicleCatalog
	packages   port.PackageRepository
	cache      port.QuoteCache
	classifier *service.PricingBucketClassifier
	matcher    *service.PackageMatcher
}

// NewQuotePaymentUseCase wires dependencies. cache may be nil.
func NewQuotePaymentUseCase(
	catalog port.VehicleCatalog,
	packages port.PackageRepository,
	cache port.QuoteCache,
	classifier *service.PricingBucketClassifier,
	matcher *service.PackageMatcher,
) *QuotePaymentUseCase {
	return &QuotePaymentUseCase{
		catalog:    catalog,
		packages:   packages,
		cache:      cache,
		classifier: classifier,
		matcher:    matcher,
	}
}

// Execute returns the quote, from cache when the same inputs were priced recently.
func (uc *QuotePaymentUseCase) Execute(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error) {
	ctx, span := tracer.Start(ctx, "QuotePayment", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.QuoteResponse{}, err
	}
	span.SetAttributes(
		attribute.String("quote.finance_type", resp.FinanceType),
		attribute.String("quote.bucket", resp.Bucket.ID),
		attribute.Bool("quote.cached", resp.Cached),
	)
	return resp, nil
}

func (uc *QuotePaymentUseCase) execute(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error) {
	planType, err := valueobject.NewPlanType(req.FinanceType)
	if err != nil {
		return dto.QuoteResponse{}, fmt.Errorf("finance type: %w", err)
	}

	down := DefaultQuoteDownPayment
	if req.DownPayment != nil {
		down = *req.DownPayment
	}

	vehicle, err := resolveVehicle(ctx, uc.catalog, req.VehicleID, req.VehiclePrice)
	if err != nil {
		return dto.QuoteResponse{}, err
	}

	key := quoteCacheKey(req, down)
	resp, cached := uc.lookup(ctx, key)
	if !cached {
		resp, err = uc.price(req, vehicle, planType, down)
		if err != nil {
			return dto.QuoteResponse{}, err
		}
		uc.store(ctx, key, resp)
	}

	// Package matching always reads the live catalog.
	packages, err := uc.packages.FindAll(ctx, true)
	if err != nil {
		return dto.QuoteResponse{}, fmt.Errorf("load packages: %w", err)
	}
	prefs := service.CustomerPreferences{
		TermMonths:    req.TermMonths,
		DownPayment:   down,
		CreditScore:   req.CreditScore,
		AnnualMileage: req.AnnualMileage,
	}
	if best, ok := uc.matcher.BestMatch(packages, vehicle, prefs, planType); ok {
		pkg := toPackageResponse(best)
		resp.Package = &pkg
	}
	return resp, nil
}

// price runs the payment engine and bucket guidance for one quote.
func (uc *QuotePaymentUseCase) price(
	req dto.QuoteRequest,
	vehicle model.Vehicle,
	planType valueobject.PlanType,
	down decimal.Decimal,
) (dto.QuoteResponse, error) {
	price := vehicle.BasePrice

	rates := service.RateTableByName(req.RateTable)
	apr := rates.RateFor(req.CreditScore)
	if req.AnnualRate != nil {
		apr = *req.AnnualRate
	}

	resp := dto.QuoteResponse{
		VehicleID:    vehicle.ID,
		VehiclePrice: price,
		FinanceType:  planType.String(),
		RateTable:    rates.Name(),
		AnnualRate:   apr,
		TermMonths:   req.TermMonths,
		DownPayment:  down,
	}

	if planType.IsLease() {
		lease, err := service.LeaseStrategyByName(req.LeaseStrategy).LeaseDetails(price, req.TermMonths, apr, down)
		if err != nil {
			return dto.QuoteResponse{}, fmt.Errorf("lease details: %w", err)
		}
		details := toLeaseDetails(lease)
		resp.Lease = &details
		resp.TermMonths = lease.TermMonths
		resp.MonthlyPayment = cents(lease.MonthlyPayment)
		resp.TotalOfPayments = cents(lease.TotalOfPayments)
		resp.TotalCost = cents(lease.TotalCost)
		resp.TotalInterest = cents(lease.TotalFinanceCharges)
	} else {
		fin, err := service.FinanceDetails(price, down, apr, req.TermMonths)
		if err != nil {
			return dto.QuoteResponse{}, fmt.Errorf("finance details: %w", err)
		}
		resp.MonthlyPayment = cents(fin.MonthlyPayment)
		resp.TotalOfPayments = cents(fin.TotalOfPayments)
		resp.TotalCost = cents(fin.TotalCost)
		resp.TotalInterest = cents(fin.TotalInterest)
	}

	bucket, inRange := uc.classifier.Classify(price)
	resp.Bucket = toBucketGuidance(bucket, inRange, uc.classifier.Recommend(bucket, req.CreditScore))

	resp.Display = dto.QuoteDisplay{
		MonthlyPayment: money.USDAmount(resp.MonthlyPayment).FormatWhole(),
		TotalCost:      money.USDAmount(resp.TotalCost).FormatWhole(),
		DownPayment:    money.USDAmount(down).FormatWhole(),
	}
	return resp, nil
}

// quoteCacheKey normalizes every input that affects the priced result.
// Entries hold the priced quote only; the matched package is attached per call.
func quoteCacheKey(req dto.QuoteRequest, down decimal.Decimal) string {
	price, rate := "", ""
	if req.VehiclePrice != nil {
		price = req.VehiclePrice.String()
	}
	if req.AnnualRate != nil {
		rate = req.AnnualRate.String()
	}
	return fmt.Sprintf("quote:%s:%s:%s:%d:%s:%d:%d:%s:%s:%s",
		req.FinanceType, req.VehicleID, price, req.CreditScore, down.String(),
		req.TermMonths, req.AnnualMileage, req.RateTable, req.LeaseStrategy, rate)
}

func (uc *QuotePaymentUseCase) lookup(ctx context.Context, key string) (dto.QuoteResponse, bool) {
	if uc.cache == nil {
		return dto.QuoteResponse{}, false
	}
	raw, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "quote cache read failed", "key", key, "error", err)
		return dto.QuoteResponse{}, false
	}
	if !ok {
		return dto.QuoteResponse{}, false
	}
	var resp dto.QuoteResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		slog.WarnContext(ctx, "quote cache entry corrupt", "key", key, "error", err)
		return dto.QuoteResponse{}, false
	}
	resp.Cached = true
	return resp, true
}

func (uc *QuotePaymentUseCase) store(ctx context.Context, key string, resp dto.QuoteResponse) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		slog.WarnContext(ctx, "quote cache encode failed", "key", key, "error", err)
		return
	}
	if err := uc.cache.Set(ctx, key, raw); err != nil {
		slog.WarnContext(ctx, "quote cache write failed", "key", key, "error", err)
	}
}
