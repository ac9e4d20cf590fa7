package ports

import (
	"context"

	"github.com/bnema/quota-sentinel/internal/domain"
)

// UsageSource fetches one tool's quota reading. Implementations own whatever
// process or terminal resources they need for the duration of a single Fetch
// call only.
type UsageSource interface {
	Tool() domain.Tool
	Fetch(ctx context.Context) (domain.Reading, error)
}
