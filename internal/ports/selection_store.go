package ports

import (
	"context"

	"github.com/nlegrand-dev/obslens/internal/domain"
)

// SelectionStore is the durable record of the active scope per kind.
// Get returns domain.ErrSelectionNotFound when no selection has ever
// been written for the kind.
type SelectionStore interface {
	Get(ctx context.Context, kind domain.ScopeKind) (domain.ScopeID, error)
	Put(ctx context.Context, kind domain.ScopeKind, id domain.ScopeID) error
	Clear(ctx context.Context, kind domain.ScopeKind) error
}
