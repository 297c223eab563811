package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nlegrand-dev/obslens/internal/domain"
	"github.com/nlegrand-dev/obslens/internal/ports"
)

// Warnf is the sink for non-fatal conditions the user should see
// (failed persistence, ignored selections). The zero value is allowed;
// it discards.
type Warnf func(format string, args ...any)

func (w Warnf) printf(format string, args ...any) {
	if w != nil {
		w(format, args...)
	}
}

// ScopeStore is the single source of truth for which scope of each kind
// is active. It owns the persisted selection: no other component writes
// it. Readers subscribe for change notification instead of mutating.
type ScopeStore struct {
	lister ports.ScopeLister
	store  ports.SelectionStore
	warnf  Warnf

	mu     sync.Mutex
	states map[domain.ScopeKind]*scopeState

	subMu   sync.Mutex
	subs    map[int]func(domain.ScopeKind)
	nextSub int
}

type scopeState struct {
	scopes  []domain.Scope
	loaded  bool
	loading bool

	selected domain.ScopeID
	// pending is an optimistic selection made before the scope list
	// resolved. It is revalidated on refresh completion and reverts to
	// auto-select when invalid.
	pending domain.ScopeID
}

// NewScopeStore restores any persisted selection for each kind. A
// restored id starts out pending: it only becomes the active selection
// once a list refresh confirms it still exists.
func NewScopeStore(ctx context.Context, lister ports.ScopeLister, store ports.SelectionStore, warnf Warnf) *ScopeStore {
	s := &ScopeStore{
		lister: lister,
		store:  store,
		warnf:  warnf,
		states: make(map[domain.ScopeKind]*scopeState),
		subs:   make(map[int]func(domain.ScopeKind)),
	}

	for _, kind := range domain.Kinds() {
		id, err := store.Get(ctx, kind)
		if err != nil {
			if !errors.Is(err, domain.ErrSelectionNotFound) {
				s.warnf.printf("restore %s selection: %v", kind, err)
			}
			continue
		}
		s.state(kind).pending = id
	}

	return s
}

// List returns the best-known scope list for kind immediately, possibly
// stale or empty, and kicks off a background refresh if the list has
// never been loaded.
func (s *ScopeStore) List(ctx context.Context, kind domain.ScopeKind) []domain.Scope {
	s.mu.Lock()
	st := s.state(kind)
	scopes := append([]domain.Scope(nil), st.scopes...)
	needsFetch := !st.loaded && !st.loading
	if needsFetch {
		st.loading = true
	}
	s.mu.Unlock()

	if needsFetch {
		go func() {
			if err := s.refresh(context.WithoutCancel(ctx), kind); err != nil {
				s.warnf.printf("background scope refresh: %v", err)
			}
		}()
	}

	return scopes
}

// Refresh synchronously fetches the scope list for kind and reconciles
// the selection against it.
func (s *ScopeStore) Refresh(ctx context.Context, kind domain.ScopeKind) error {
	s.mu.Lock()
	s.state(kind).loading = true
	s.mu.Unlock()

	return s.refresh(ctx, kind)
}

func (s *ScopeStore) refresh(ctx context.Context, kind domain.ScopeKind) error {
	scopes, err := s.lister.List(ctx, kind)

	s.mu.Lock()
	st := s.state(kind)
	st.loading = false
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("list %s scopes: %w", kind, errors.Join(domain.ErrScopeListUnavailable, err))
	}

	st.scopes = scopes
	st.loaded = true

	previous := st.selected
	st.selected = s.reconcileLocked(st, kind)
	st.pending = ""
	changed := st.selected != previous
	selected := st.selected
	s.mu.Unlock()

	if changed {
		s.persist(ctx, kind, selected)
	}
	s.notify(kind)
	return nil
}

// reconcileLocked picks the selection after a fresh list landed.
// Precedence: a valid pending selection, then the existing selection if
// still present, then the first list entry, then none.
func (s *ScopeStore) reconcileLocked(st *scopeState, kind domain.ScopeKind) domain.ScopeID {
	if st.pending != "" && domain.ContainsScope(st.scopes, st.pending) {
		return st.pending
	}
	if st.selected != "" && domain.ContainsScope(st.scopes, st.selected) {
		return st.selected
	}
	if st.pending != "" {
		s.warnf.printf("selected %s %q no longer exists, reverting to auto-select", kind, st.pending)
	}
	if first, ok := domain.FirstScope(st.scopes); ok {
		return first.ID
	}
	return ""
}

// Active returns the currently selected scope for kind, or nil when the
// list is empty or not yet loaded.
func (s *ScopeStore) Active(kind domain.ScopeKind) *domain.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(kind)
	if !st.loaded || st.selected == "" {
		return nil
	}
	for _, scope := range st.scopes {
		if scope.ID == st.selected {
			copied := scope
			return &copied
		}
	}
	return nil
}

// Select sets the active scope for kind and persists it. Selecting an
// id absent from a loaded list is a logged no-op. Before the list has
// loaded the selection is buffered and revalidated once it resolves.
// Reports whether the selection changed.
func (s *ScopeStore) Select(ctx context.Context, kind domain.ScopeKind, id domain.ScopeID) bool {
	s.mu.Lock()
	st := s.state(kind)

	if st.loaded {
		if !domain.ContainsScope(st.scopes, id) {
			s.mu.Unlock()
			s.warnf.printf("%v: no %s with id %q", domain.ErrInvalidScopeSelection, kind, id)
			return false
		}
		if st.selected == id {
			s.mu.Unlock()
			return false
		}
		st.selected = id
		st.pending = ""
	} else {
		if st.pending == id {
			s.mu.Unlock()
			return false
		}
		st.pending = id
	}
	s.mu.Unlock()

	s.persist(ctx, kind, id)
	s.notify(kind)
	return true
}

// Subscribe registers fn to run after the scope list or active
// selection of any kind changes. The returned function unsubscribes.
func (s *ScopeStore) Subscribe(fn func(domain.ScopeKind)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// persist writes the selection through the durable store. A write
// failure degrades the selection to session-only: warn and carry on.
func (s *ScopeStore) persist(ctx context.Context, kind domain.ScopeKind, id domain.ScopeID) {
	if err := s.store.Put(ctx, kind, id); err != nil {
		s.warnf.printf("persist %s selection: %v (selection kept for this session only)", kind, err)
	}
}

func (s *ScopeStore) state(kind domain.ScopeKind) *scopeState {
	st, ok := s.states[kind]
	if !ok {
		st = &scopeState{}
		s.states[kind] = st
	}
	return st
}

func (s *ScopeStore) notify(kind domain.ScopeKind) {
	s.subMu.Lock()
	fns := make([]func(domain.ScopeKind), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(kind)
	}
}
