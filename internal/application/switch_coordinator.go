package application

import (
	"context"
	"fmt"

	"github.com/nlegrand-dev/obslens/internal/domain"
	"github.com/nlegrand-dev/obslens/internal/querycache"
)

// SwitchCoordinator runs a scope switch end to end: persist the new
// selection through the ScopeStore, then mark every registered
// scope-dependent cache entry stale. It never refetches itself;
// invalidated entries are refetched lazily by whichever consumer reads
// them next, so unmounted views cost nothing.
type SwitchCoordinator struct {
	scopes *ScopeStore
	cache  *querycache.Cache
}

func NewSwitchCoordinator(scopes *ScopeStore, cache *querycache.Cache) *SwitchCoordinator {
	return &SwitchCoordinator{
		scopes: scopes,
		cache:  cache,
	}
}

// SwitchTo selects the scope and invalidates its dependent queries.
// Switching to an id absent from a loaded list is a logged no-op;
// invalidation only happens when the selection actually changed.
// Persistence failures inside Select degrade to a warning and never
// abort the switch.
func (c *SwitchCoordinator) SwitchTo(ctx context.Context, kind domain.ScopeKind, id domain.ScopeID) error {
	if !kind.Valid() {
		return fmt.Errorf("switch scope: unknown scope kind %q", kind)
	}

	if !c.scopes.Select(ctx, kind, id) {
		return nil
	}

	c.cache.Invalidate(ScopeDependentQueries(kind)...)
	return nil
}
