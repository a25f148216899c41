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

func offerTerms() model.OfferTerms {
	return model.OfferTerms{
		MonthlyPayment: decimal.RequireFromString("412.50"),
		DownPayment:    decimal.NewFromInt(4000),
		TermMonths:     60,
		InterestRate:   decimal.RequireFromString("5.9"),
		TotalCost:      decimal.RequireFromString("28750.00"),
		Notes:          "Manager special",
	}
}

func newActiveOffer(t *testing.T, validUntil time.Time) model.Offer {
	t.Helper()
	o, err := model.NewOffer(newPendingRequest(t), uuid.New(), offerTerms(), validUntil, testNow)
	require.NoError(t, err)
	return o.ClearEvents()
}

func TestNewOffer_Valid(t *testing.T) {
	fr := newPendingRequest(t)
	dealer := uuid.New()
	validUntil := testNow.Add(7 * 24 * time.Hour)

	o, err := model.NewOffer(fr, dealer, offerTerms(), validUntil, testNow)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, o.ID())
	assert.Equal(t, fr.ID(), o.FinanceRequestID())
	assert.Equal(t, fr.UserID(), o.CustomerID())
	assert.Equal(t, dealer, o.DealerUserID())
	assert.Equal(t, valueobject.OfferStatusActive, o.Status())
	assert.Equal(t, validUntil, o.ValidUntil())
	assert.Equal(t, offerTerms(), o.Terms())
	require.Len(t, o.DomainEvents(), 1)
	assert.Equal(t, event.TypeOfferCreated, o.DomainEvents()[0].EventType())
}

func TestNewOffer_Rejections(t *testing.T) {
	validUntil := testNow.Add(time.Hour)

	t.Run("closed request", func(t *testing.T) {
		fr, err := newPendingRequest(t).Approve("", testNow)
		require.NoError(t, err)

		_, err = model.NewOffer(fr, uuid.New(), offerTerms(), validUntil, testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("window already over", func(t *testing.T) {
		_, err := model.NewOffer(newPendingRequest(t), uuid.New(), offerTerms(), testNow, testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
	})

	t.Run("missing dealer", func(t *testing.T) {
		_, err := model.NewOffer(newPendingRequest(t), uuid.Nil, offerTerms(), validUntil, testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
	})

	t.Run("zero term", func(t *testing.T) {
		terms := offerTerms()
		terms.TermMonths = 0
		_, err := model.NewOffer(newPendingRequest(t), uuid.New(), terms, validUntil, testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidInput)
	})
}

func TestOffer_IsExpiredAt(t *testing.T) {
	validUntil := testNow.Add(time.Hour)
	o := newActiveOffer(t, validUntil)

	assert.False(t, o.IsExpiredAt(validUntil.Add(-time.Second)))
	assert.False(t, o.IsExpiredAt(validUntil))
	assert.True(t, o.IsExpiredAt(validUntil.Add(time.Nanosecond)))
}

func TestOffer_Accept(t *testing.T) {
	validUntil := testNow.Add(time.Hour)

	t.Run("inside the window", func(t *testing.T) {
		accepted, err := newActiveOffer(t, validUntil).Accept(validUntil)
		require.NoError(t, err)
		assert.Equal(t, valueobject.OfferStatusAccepted, accepted.Status())
		require.Len(t, accepted.DomainEvents(), 1)
		assert.Equal(t, event.TypeOfferAccepted, accepted.DomainEvents()[0].EventType())
	})

	t.Run("past the window", func(t *testing.T) {
		o := newActiveOffer(t, validUntil)
		same, err := o.Accept(validUntil.Add(time.Second))
		assert.ErrorIs(t, err, model.ErrOfferExpired)
		assert.Equal(t, valueobject.OfferStatusActive, same.Status())
	})

	t.Run("already rejected", func(t *testing.T) {
		rejected, err := newActiveOffer(t, validUntil).Reject(testNow)
		require.NoError(t, err)

		_, err = rejected.Accept(testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestOffer_Reject(t *testing.T) {
	o := newActiveOffer(t, testNow.Add(time.Hour))

	rejected, err := o.Reject(testNow)
	require.NoError(t, err)
	assert.Equal(t, valueobject.OfferStatusRejected, rejected.Status())
	assert.Equal(t, event.TypeOfferRejected, rejected.DomainEvents()[0].EventType())

	_, err = rejected.Reject(testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestOffer_Expire(t *testing.T) {
	validUntil := testNow.Add(time.Hour)

	t.Run("refused inside the window", func(t *testing.T) {
		o := newActiveOffer(t, validUntil)
		_, err := o.Expire(validUntil)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("after the window", func(t *testing.T) {
		expired, err := newActiveOffer(t, validUntil).Expire(validUntil.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, valueobject.OfferStatusExpired, expired.Status())
		assert.Empty(t, expired.DomainEvents())
	})

	t.Run("refused once accepted", func(t *testing.T) {
		accepted, err := newActiveOffer(t, validUntil).Accept(testNow)
		require.NoError(t, err)

		_, err = accepted.Expire(validUntil.Add(time.Minute))
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}
