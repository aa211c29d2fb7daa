package ports

import (
	"context"
	"time"

	"bakeshop/internal/core/domain/model/kernel"
	"bakeshop/internal/core/domain/model/order"
)

// TransitionEvent is the lifecycle notification emitted for each committed
// transition. Notification and analytics collaborators subscribe to these;
// delivery is their concern, not the core's.
type TransitionEvent struct {
	OrderID    kernel.UUID
	Previous   order.Status
	New        order.Status
	OccurredAt time.Time
}

// LifecycleEventPublisher emits a TransitionEvent after each committed
// transition. Publishing happens strictly after the commit; a publish
// failure must never roll back or fail the transition itself.
type LifecycleEventPublisher interface {
	PublishTransition(ctx context.Context, event TransitionEvent) error
}
