package domain

import (
	"fmt"
	"strings"
	"time"
)

type ScopeID string
type ScopeKind string

const (
	ScopeKindProject ScopeKind = "project"
	ScopeKindTeam    ScopeKind = "team"
)

// Kinds lists every known scope kind in a fixed order.
func Kinds() []ScopeKind {
	return []ScopeKind{ScopeKindProject, ScopeKindTeam}
}

func (k ScopeKind) Valid() bool {
	return k == ScopeKindProject || k == ScopeKindTeam
}

// Scope is a tenancy boundary that partitions backend data. A project
// scope carries a non-owning reference to the team it belongs to.
type Scope struct {
	ID          ScopeID
	Kind        ScopeKind
	DisplayName string
	CreatedAt   time.Time
	TeamID      ScopeID
}

func (s Scope) Validate() error {
	if strings.TrimSpace(string(s.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if !s.Kind.Valid() {
		return fmt.Errorf("unknown scope kind %q", s.Kind)
	}
	return nil
}

// ScopeSelection is the persisted record of which scope of a kind is
// active. Owned exclusively by the scope store.
type ScopeSelection struct {
	Kind       ScopeKind
	SelectedID ScopeID
}

// FirstScope returns the deterministic auto-selection candidate: the
// first entry in backend order, without client-side re-sorting.
func FirstScope(scopes []Scope) (Scope, bool) {
	if len(scopes) == 0 {
		return Scope{}, false
	}
	return scopes[0], true
}

// ContainsScope reports whether id is present in the scope list.
func ContainsScope(scopes []Scope, id ScopeID) bool {
	for _, s := range scopes {
		if s.ID == id {
			return true
		}
	}
	return false
}
