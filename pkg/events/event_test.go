package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offerCreated struct {
	BaseEvent
	MonthlyPayment string `json:"monthly_payment"`
}

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("EST", -5*3600))

	event := NewBaseEvent("finance.offer.created", aggregateID, "Offer", at)

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "finance.offer.created", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "Offer", event.AggregateType())
	assert.Equal(t, at.UTC(), event.OccurredAt())
	assert.Equal(t, time.UTC, event.OccurredAt().Location())
}

func TestNewBaseEventDefaultsTime(t *testing.T) {
	before := time.Now().UTC()
	event := NewBaseEvent("x", uuid.New(), "X", time.Time{})
	after := time.Now().UTC()

	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	evt := offerCreated{
		BaseEvent:      NewBaseEvent("finance.offer.created", uuid.New(), "Offer", time.Now()),
		MonthlyPayment: "439.08",
	}

	env, err := NewEnvelope(evt)
	require.NoError(t, err)
	assert.Equal(t, evt.EventID(), env.ID)
	assert.Equal(t, evt.AggregateID(), env.AggregateID)
	assert.Equal(t, "Offer", env.AggregateType)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded Envelope
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, env.ID, decoded.ID)
	assert.Equal(t, "finance.offer.created", decoded.EventType)

	var body struct {
		MonthlyPayment string `json:"monthly_payment"`
	}
	require.NoError(t, decoded.Decode(&body))
	assert.Equal(t, "439.08", body.MonthlyPayment)
}

func TestEnvelopeDecodeInvalid(t *testing.T) {
	env := Envelope{EventType: "x", Data: json.RawMessage(`not-json`)}
	var v map[string]any
	err := env.Decode(&v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode x payload")
}
