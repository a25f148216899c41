package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerfin/dealerfin/internal/domain/event"
	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/valueobject"
)

var testNow = time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)

func validApplication(t *testing.T) model.FinanceApplication {
	t.Helper()
	credit, err := valueobject.NewCreditProfile(720, decimal.NewFromInt(85000))
	require.NoError(t, err)
	return model.FinanceApplication{
		UserID:      uuid.New(),
		CarID:       "1",
		FinanceType: valueobject.PlanTypeFinance,
		Credit:      credit,
		TermMonths:  60,
		DownPayment: decimal.NewFromInt(5000),
	}
}

func newPendingRequest(t *testing.T) model.FinanceRequest {
	t.Helper()
	fr, err := model.NewFinanceRequest(validApplication(t), decimal.RequireFromString("453.70"), testNow)
	require.NoError(t, err)
	return fr.ClearEvents()
}

func lastStatusChange(t *testing.T, fr model.FinanceRequest) event.FinanceRequestStatusChanged {
	t.Helper()
	evts := fr.DomainEvents()
	require.NotEmpty(t, evts)
	changed, ok := evts[len(evts)-1].(event.FinanceRequestStatusChanged)
	require.True(t, ok, "last event is %T", evts[len(evts)-1])
	return changed
}

func TestNewFinanceRequest_Valid(t *testing.T) {
	app := validApplication(t)

	fr, err := model.NewFinanceRequest(app, decimal.RequireFromString("453.70"), testNow)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, fr.ID())
	assert.Equal(t, app.UserID, fr.UserID())
	assert.Equal(t, model.DefaultDealershipID, fr.DealershipID())
	assert.Equal(t, valueobject.FinanceRequestStatusPending, fr.Status())
	assert.Equal(t, 1, fr.Version())
	assert.True(t, fr.MonthlyPayment().Equal(decimal.RequireFromString("453.70")))
	require.Len(t, fr.DomainEvents(), 1)
	assert.Equal(t, event.TypeFinanceRequestSubmitted, fr.DomainEvents()[0].EventType())
}

func TestNewFinanceRequest_TermBounds(t *testing.T) {
	tests := []struct {
		term    int
		wantErr bool
	}{
		{term: 11, wantErr: true},
		{term: 12},
		{term: 84},
		{term: 85, wantErr: true},
	}
	for _, tt := range tests {
		app := validApplication(t)
		app.TermMonths = tt.term

		_, err := model.NewFinanceRequest(app, decimal.Zero, testNow)
		if tt.wantErr {
			assert.ErrorIs(t, err, valueobject.ErrInvalidInput, "term %d", tt.term)
			continue
		}
		assert.NoError(t, err, "term %d", tt.term)
	}
}

func TestNewFinanceRequest_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.FinanceApplication)
		msg    string
	}{
		{"user", func(a *model.FinanceApplication) { a.UserID = uuid.Nil }, "user ID is required"},
		{"car", func(a *model.FinanceApplication) { a.CarID = "" }, "car ID is required"},
		{"finance type", func(a *model.FinanceApplication) { a.FinanceType = valueobject.PlanType{} }, "finance type is required"},
		{"credit", func(a *model.FinanceApplication) { a.Credit = valueobject.CreditProfile{} }, "credit profile is required"},
		{"down payment", func(a *model.FinanceApplication) { a.DownPayment = decimal.NewFromInt(-1) }, "down payment must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := validApplication(t)
			tt.mutate(&app)

			_, err := model.NewFinanceRequest(app, decimal.Zero, testNow)
			require.ErrorIs(t, err, valueobject.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFinanceRequest_ChangeStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    []valueobject.FinanceRequestStatus
		target  valueobject.FinanceRequestStatus
		wantErr bool
	}{
		{name: "pending to approved", target: valueobject.FinanceRequestStatusApproved},
		{name: "pending to rejected", target: valueobject.FinanceRequestStatusRejected},
		{name: "pending to counter-offer", target: valueobject.FinanceRequestStatusCounterOffer},
		{name: "pending to accepted", target: valueobject.FinanceRequestStatusAccepted, wantErr: true},
		{name: "pending to pending", target: valueobject.FinanceRequestStatusPending, wantErr: true},
		{
			name:   "counter-offer to counter-offer",
			from:   []valueobject.FinanceRequestStatus{valueobject.FinanceRequestStatusCounterOffer},
			target: valueobject.FinanceRequestStatusCounterOffer,
		},
		{
			name:   "counter-offer to approved",
			from:   []valueobject.FinanceRequestStatus{valueobject.FinanceRequestStatusCounterOffer},
			target: valueobject.FinanceRequestStatusApproved,
		},
		{
			name:    "approved is terminal",
			from:    []valueobject.FinanceRequestStatus{valueobject.FinanceRequestStatusApproved},
			target:  valueobject.FinanceRequestStatusRejected,
			wantErr: true,
		},
		{
			name:    "rejected is terminal",
			from:    []valueobject.FinanceRequestStatus{valueobject.FinanceRequestStatusRejected},
			target:  valueobject.FinanceRequestStatusCounterOffer,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := newPendingRequest(t)
			for _, step := range tt.from {
				var err error
				fr, err = fr.ChangeStatus(step, "", testNow)
				require.NoError(t, err)
			}

			next, err := fr.ChangeStatus(tt.target, "", testNow.Add(time.Hour))
			if tt.wantErr {
				assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
				assert.Equal(t, fr.Status(), next.Status())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.target, next.Status())
			assert.Equal(t, tt.target.String(), lastStatusChange(t, next).ToStatus)
		})
	}
}

func TestFinanceRequest_CounterOfferNotes(t *testing.T) {
	t.Run("notes reach the aggregate and the event", func(t *testing.T) {
		fr := newPendingRequest(t)

		next, err := fr.ChangeStatus(valueobject.FinanceRequestStatusCounterOffer, "call me", testNow)
		require.NoError(t, err)

		assert.Equal(t, "call me", next.DealerNotes())
		changed := lastStatusChange(t, next)
		assert.Equal(t, "call me", changed.DealerNotes)
		assert.Equal(t, "pending", changed.FromStatus)
	})

	t.Run("empty notes keep the previous notes", func(t *testing.T) {
		fr := newPendingRequest(t)
		fr, err := fr.ChangeStatus(valueobject.FinanceRequestStatusCounterOffer, "bring pay stubs", testNow)
		require.NoError(t, err)

		next, err := fr.MarkCounterOffered(testNow.Add(time.Minute))
		require.NoError(t, err)

		assert.Equal(t, "bring pay stubs", next.DealerNotes())
		assert.Equal(t, "bring pay stubs", lastStatusChange(t, next).DealerNotes)
	})
}

func TestFinanceRequest_Accept(t *testing.T) {
	t.Run("pending cannot be accepted", func(t *testing.T) {
		_, err := newPendingRequest(t).Accept(testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("counter-offer is accepted", func(t *testing.T) {
		fr, err := newPendingRequest(t).MarkCounterOffered(testNow)
		require.NoError(t, err)

		accepted, err := fr.Accept(testNow.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, valueobject.FinanceRequestStatusAccepted, accepted.Status())
		assert.Equal(t, testNow.Add(time.Hour), accepted.UpdatedAt())
	})

	t.Run("accepted is terminal", func(t *testing.T) {
		fr, err := newPendingRequest(t).MarkCounterOffered(testNow)
		require.NoError(t, err)
		fr, err = fr.Accept(testNow)
		require.NoError(t, err)

		_, err = fr.MarkCounterOffered(testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}
