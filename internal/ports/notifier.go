package ports

import (
	"context"

	"github.com/bnema/quota-sentinel/internal/domain"
)

// Notifier delivers one notification event to the user. Only the content
// matters here; the delivery mechanism is an adapter concern.
type Notifier interface {
	Send(ctx context.Context, event domain.NotificationEvent) error
}
