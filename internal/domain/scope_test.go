package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		scope   Scope
		wantErr string
	}{
		{
			name:  "valid project",
			scope: Scope{ID: "p1", Kind: ScopeKindProject, DisplayName: "Checkout"},
		},
		{
			name:  "valid team",
			scope: Scope{ID: "t1", Kind: ScopeKindTeam, DisplayName: "Platform"},
		},
		{
			name:    "missing id",
			scope:   Scope{Kind: ScopeKindProject},
			wantErr: "id is required",
		},
		{
			name:    "unknown kind",
			scope:   Scope{ID: "p1", Kind: "org"},
			wantErr: "unknown scope kind",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.scope.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestFirstScopeUsesBackendOrder(t *testing.T) {
	t.Parallel()

	first, ok := FirstScope([]Scope{
		{ID: "b", Kind: ScopeKindProject},
		{ID: "a", Kind: ScopeKindProject},
	})
	assert.True(t, ok)
	assert.Equal(t, ScopeID("b"), first.ID)
}

func TestFirstScopeEmptyList(t *testing.T) {
	t.Parallel()

	_, ok := FirstScope(nil)
	assert.False(t, ok)
}

func TestContainsScope(t *testing.T) {
	t.Parallel()

	scopes := []Scope{{ID: "a"}, {ID: "b"}}
	assert.True(t, ContainsScope(scopes, "a"))
	assert.False(t, ContainsScope(scopes, "c"))
}
