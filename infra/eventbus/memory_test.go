package eventbus

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBus() *MemoryEventBus {
	return NewWithMemory(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublish_DispatchesToSubscribers(t *testing.T) {
	bus := newTestBus()

	var received []domain.Event
	bus.Subscribe(domain.EventAccountsChanged, func(_ context.Context, e domain.Event) {
		received = append(received, e)
	})

	event := &domain.AccountsChanged{}
	require.NoError(t, bus.Publish(context.Background(), event))
	require.Len(t, received, 1)
	assert.Same(t, event, received[0])
}

func TestPublish_IgnoresUnrelatedTypes(t *testing.T) {
	bus := newTestBus()

	called := false
	bus.Subscribe("some.other.event", func(context.Context, domain.Event) {
		called = true
	})

	require.NoError(t, bus.Publish(context.Background(), &domain.AccountsChanged{}))
	assert.False(t, called)
}

func TestPublishedRecording(t *testing.T) {
	bus := newTestBus()

	require.NoError(t, bus.Publish(context.Background(), &domain.AccountsChanged{}))
	require.NoError(t, bus.Publish(context.Background(), &domain.AccountsChanged{}))
	assert.Len(t, bus.Published(), 2)

	bus.ClearPublished()
	assert.Empty(t, bus.Published())
}
