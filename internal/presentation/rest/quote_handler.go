package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dealerfin/dealerfin/internal/application/dto"
	"github.com/dealerfin/dealerfin/internal/application/usecase"
	"github.com/dealerfin/dealerfin/internal/domain/port"
	"github.com/dealerfin/dealerfin/internal/domain/service"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
	"github.com/dealerfin/dealerfin/internal/infrastructure/metrics"
	"github.com/dealerfin/dealerfin/internal/infrastructure/validation"
)

const maxBodyBytes = 64 << 10

// DocumentValidator checks a raw request body before it is decoded.
type DocumentValidator interface {
	Validate(document []byte) error
}

// QuoteHandler serves the anonymous quoting endpoints.
type QuoteHandler struct {
	quote       *usecase.QuotePaymentUseCase
	estimate    *usecase.EstimateQuoteUseCase
	dealerships *usecase.FindDealershipsUseCase
	vehicles    port.VehicleCatalog
	validator   DocumentValidator
	logger      *slog.Logger
}

// NewQuoteHandler creates the quoting HTTP handler.
func NewQuoteHandler(
	quote *usecase.QuotePaymentUseCase,
	estimate *usecase.EstimateQuoteUseCase,
	dealerships *usecase.FindDealershipsUseCase,
	vehicles port.VehicleCatalog,
	validator DocumentValidator,
	logger *slog.Logger,
) *QuoteHandler {
	return &QuoteHandler{
		quote:       quote,
		estimate:    estimate,
		dealerships: dealerships,
		vehicles:    vehicles,
		validator:   validator,
		logger:      logger,
	}
}

// RegisterRoutes attaches the quoting routes to the given mux.
func (h *QuoteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/quotes", h.createQuote)
	mux.HandleFunc("POST /api/v1/estimates", h.createEstimate)
	mux.HandleFunc("GET /api/v1/vehicles", h.listVehicles)
	mux.HandleFunc("GET /api/v1/dealerships", h.findDealerships)
}

func (h *QuoteHandler) createQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	var verr *validation.Error
	if err := h.validator.Validate(body); errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "invalid quote request", verr.Problems...)
		return
	} else if err != nil {
		h.fail(r.Context(), w, err)
		return
	}

	var req dto.QuoteRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote request", err.Error())
		return
	}

	resp, err := h.quote.Execute(r.Context(), req)
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}
	metrics.RecordQuote("http", resp.FinanceType, resp.RateTable, resp.Cached, resp.Package != nil, time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, resp)
}

func (h *QuoteHandler) createEstimate(w http.ResponseWriter, r *http.Request) {
	var req dto.EstimateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid estimate request", err.Error())
		return
	}

	resp, err := h.estimate.Execute(r.Context(), req)
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *QuoteHandler) listVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.ListVehicles(r.Context())
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}
	out := make([]dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, dto.VehicleResponse(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": out})
}

func (h *QuoteHandler) findDealerships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	found, err := h.dealerships.Execute(r.Context(), dto.DealershipQuery{
		ID:    q.Get("id"),
		Zip:   q.Get("zip"),
		City:  q.Get("city"),
		State: q.Get("state"),
		Query: q.Get("q"),
	})
	if err != nil {
		h.fail(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dealerships": found})
}

func (h *QuoteHandler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed", "error", err)
		writeError(w, code, "internal error")
		return
	}
	writeError(w, code, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, port.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, valueobject.ErrInvalidInput),
		errors.Is(err, usecase.ErrVehicleRequired),
		errors.Is(err, service.ErrInvalidTerm),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrNegativeRate),
		errors.Is(err, service.ErrNegativeDownPayment):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
