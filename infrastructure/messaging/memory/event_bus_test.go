package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"scholargraph/application/ports"
	"scholargraph/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	name     string
	priority int
	types    []string
	err      error
	log      *[]string
	onHandle func(ctx context.Context, event events.DomainEvent) error
}

func (h *recordingHandler) Handle(ctx context.Context, event events.DomainEvent) error {
	*h.log = append(*h.log, h.name+":"+event.GetEventType())
	if h.onHandle != nil {
		if err := h.onHandle(ctx, event); err != nil {
			return err
		}
	}
	return h.err
}

func (h *recordingHandler) SupportsEvent(eventType string) bool {
	for _, t := range h.types {
		if t == eventType {
			return true
		}
	}
	return false
}

func (h *recordingHandler) Priority() int { return h.priority }
func (h *recordingHandler) Name() string  { return h.name }

var _ ports.EventHandler = (*recordingHandler)(nil)

func TestPublishRunsHandlersInPriorityOrder(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	var log []string

	late := &recordingHandler{name: "late", priority: 50, types: []string{events.TypeCatalogCleared}, log: &log}
	early := &recordingHandler{name: "early", priority: 10, types: []string{events.TypeCatalogCleared}, log: &log}
	require.NoError(t, bus.Subscribe([]string{events.TypeCatalogCleared}, late))
	require.NoError(t, bus.Subscribe([]string{events.TypeCatalogCleared}, early))

	require.NoError(t, bus.Publish(context.Background(), events.NewCatalogCleared(time.Now())))

	assert.Equal(t, []string{"early:catalog.cleared", "late:catalog.cleared"}, log)
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	var log []string
	boom := errors.New("boom")

	failing := &recordingHandler{name: "failing", priority: 1, types: []string{events.TypeCatalogCleared}, err: boom, log: &log}
	healthy := &recordingHandler{name: "healthy", priority: 2, types: []string{events.TypeCatalogCleared}, log: &log}
	require.NoError(t, bus.Subscribe([]string{events.TypeCatalogCleared}, failing))
	require.NoError(t, bus.Subscribe([]string{events.TypeCatalogCleared}, healthy))

	err := bus.Publish(context.Background(), events.NewCatalogCleared(time.Now()))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, log, 2, "later handlers still run")
}

func TestNestedPublish(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	var log []string

	inner := &recordingHandler{name: "inner", types: []string{events.TypePublicationRemoved}, log: &log}
	outer := &recordingHandler{
		name:  "outer",
		types: []string{events.TypeCatalogCleared},
		log:   &log,
		onHandle: func(ctx context.Context, _ events.DomainEvent) error {
			return bus.Publish(ctx, events.NewPublicationRemoved(1, time.Now()))
		},
	}
	require.NoError(t, bus.Subscribe([]string{events.TypePublicationRemoved}, inner))
	require.NoError(t, bus.Subscribe([]string{events.TypeCatalogCleared}, outer))

	require.NoError(t, bus.Publish(context.Background(), events.NewCatalogCleared(time.Now())))

	assert.Equal(t, []string{"outer:catalog.cleared", "inner:publication.removed"}, log)
}

func TestSubscribeValidation(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	var log []string
	handler := &recordingHandler{name: "h", types: []string{events.TypeCatalogCleared}, log: &log}

	assert.Error(t, bus.Subscribe([]string{events.TypeCatalogCleared}, nil))
	assert.Error(t, bus.Subscribe([]string{""}, handler))
	assert.Error(t, bus.Subscribe([]string{events.TypeAffiliationAdded}, handler))
}

func TestUnsubscribe(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	var log []string
	handler := &recordingHandler{name: "h", types: []string{events.TypeCatalogCleared}, log: &log}

	require.NoError(t, bus.Subscribe([]string{events.TypeCatalogCleared}, handler))
	assert.Equal(t, 1, bus.HandlerCount(events.TypeCatalogCleared))

	bus.Unsubscribe([]string{events.TypeCatalogCleared}, handler)
	assert.Equal(t, 0, bus.HandlerCount(events.TypeCatalogCleared))

	require.NoError(t, bus.Publish(context.Background(), events.NewCatalogCleared(time.Now())))
	assert.Empty(t, log)
}

func TestPublishBatch(t *testing.T) {
	bus := NewEventBus(zap.NewNop())
	var log []string
	handler := &recordingHandler{
		name:  "h",
		types: []string{events.TypePublicationRemoved, events.TypeCatalogCleared},
		log:   &log,
	}
	require.NoError(t, bus.Subscribe([]string{events.TypePublicationRemoved, events.TypeCatalogCleared}, handler))

	err := bus.PublishBatch(context.Background(), []events.DomainEvent{
		events.NewPublicationRemoved(1, time.Now()),
		events.NewCatalogCleared(time.Now()),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"h:publication.removed", "h:catalog.cleared"}, log)
}
