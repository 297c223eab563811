package application

import (
	"context"

	"github.com/nlegrand-dev/obslens/internal/domain"
	"github.com/nlegrand-dev/obslens/internal/querycache"
)

// QueryResult is what a scoped view renders from. Exactly one of the
// following holds: NoScope is set, Err is set, Loading is set, or Data
// carries the freshest known result.
type QueryResult struct {
	Data    any
	Loading bool
	NoScope bool
	Err     error
}

// ScopedQuery binds one logical query to the active scope of a kind.
// The scope id is part of the cache key, so results fetched under one
// scope can never be presented as belonging to another, and concurrent
// fetches for different scopes are never coalesced. Re-reading with an
// unchanged scope and unchanged params hits the cache instead of
// refetching.
type ScopedQuery struct {
	Scopes *ScopeStore
	Cache  *querycache.Cache
	Kind   domain.ScopeKind
	Query  string
	Params map[string]string
	Fetch  func(ctx context.Context, scope domain.Scope, params map[string]string) (any, error)
}

// Key returns the cache key for the query under the current scope, or
// false when no scope of the kind is active.
func (q ScopedQuery) Key() (querycache.Key, bool) {
	scope := q.Scopes.Active(q.Kind)
	if scope == nil {
		return querycache.Key{}, false
	}
	return q.keyFor(*scope), true
}

func (q ScopedQuery) keyFor(scope domain.Scope) querycache.Key {
	params := make(map[string]string, len(q.Params)+1)
	for k, v := range q.Params {
		params[k] = v
	}
	params[scopeParam(q.Kind)] = string(scope.ID)
	return querycache.NewKey(q.Query, params)
}

// Get returns the query result, fetching through the cache when the
// entry is missing, stale, or errored. With no active scope the fetch
// is suppressed entirely and NoScope is reported instead of issuing a
// malformed request.
func (q ScopedQuery) Get(ctx context.Context) QueryResult {
	scope := q.Scopes.Active(q.Kind)
	if scope == nil {
		return QueryResult{NoScope: true}
	}

	key := q.keyFor(*scope)
	data, err := q.Cache.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return q.Fetch(ctx, *scope, q.Params)
	})
	if err != nil {
		return QueryResult{Err: err}
	}
	return QueryResult{Data: data}
}

// Peek reports the current cache state without triggering a fetch.
// Stale data is still returned as Data: it stays on screen until the
// next Get replaces it.
func (q ScopedQuery) Peek() QueryResult {
	key, ok := q.Key()
	if !ok {
		return QueryResult{NoScope: true}
	}

	entry, found := q.Cache.Lookup(key)
	if !found {
		return QueryResult{Loading: true}
	}

	switch entry.State {
	case querycache.StatePending:
		return QueryResult{Loading: true, Data: entry.Data}
	case querycache.StateError:
		return QueryResult{Err: entry.Err, Data: entry.Data}
	default:
		return QueryResult{Data: entry.Data}
	}
}

func scopeParam(kind domain.ScopeKind) string {
	return string(kind) + "Id"
}
