package ports

import (
	"context"

	"github.com/nlegrand-dev/obslens/internal/domain"
)

// ScopeLister fetches the scopes of one kind visible to the current
// user, in backend order. List is idempotent and safe to retry.
type ScopeLister interface {
	List(ctx context.Context, kind domain.ScopeKind) ([]domain.Scope, error)
}
