package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_KeepsOrderAndCopies(t *testing.T) {
	r := &Recorder{}
	ctx := context.Background()
	require.NoError(t, r.Publish(ctx, Event{Type: OrderCreated, OrderID: "a"}))
	require.NoError(t, r.Publish(ctx, Event{Type: OrderStatusChanged, OrderID: "a", Status: "completed"}))

	got := r.Events()
	require.Len(t, got, 2)
	assert.Equal(t, OrderCreated, got[0].Type)
	got[0].Type = "mutated"
	assert.Equal(t, OrderCreated, r.Events()[0].Type)
}

func TestRecorder_ReturnsConfiguredError(t *testing.T) {
	r := &Recorder{Err: errors.New("broker down")}
	assert.EqualError(t, r.Publish(context.Background(), Event{}), "broker down")
	assert.Empty(t, r.Events())
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), Event{Type: OrderCreated}))
}

func TestEvent_JSONShape(t *testing.T) {
	b, err := json.Marshal(Event{Type: OrderStatusChanged, OrderID: "o1", Status: "cancelled", Previous: "pending", OccurredAt: time.Unix(0, 0).UTC()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"order.status_changed","orderId":"o1","status":"cancelled","previousStatus":"pending","occurredAt":"1970-01-01T00:00:00Z"}`, string(b))
}
