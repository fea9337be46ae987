// Package eventbus defines the contract for publishing and subscribing to
// domain events.
package eventbus

import (
	"context"

	"github.com/amirasaad/proppilot/pkg/domain"
)

// HandlerFunc handles a single published event.
type HandlerFunc func(ctx context.Context, event domain.Event)

// Bus is the contract for publishing and subscribing to domain events.
type Bus interface {
	Publish(ctx context.Context, event domain.Event) error
	Subscribe(eventType string, handler HandlerFunc)
}
