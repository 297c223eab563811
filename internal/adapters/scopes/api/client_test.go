package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlegrand-dev/obslens/internal/domain"
)

func TestListPreservesBackendOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "p2", "name": "Checkout", "createdAt": "2026-01-10T09:00:00Z", "teamId": "t1"},
			{"id": "p1", "name": "Search", "createdAt": "2025-11-02T14:30:00Z", "teamId": "t1"}
		]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	scopes, err := client.List(context.Background(), domain.ScopeKindProject)
	require.NoError(t, err)
	require.Len(t, scopes, 2)
	assert.Equal(t, domain.ScopeID("p2"), scopes[0].ID)
	assert.Equal(t, domain.ScopeID("p1"), scopes[1].ID)
	assert.Equal(t, "Checkout", scopes[0].DisplayName)
	assert.Equal(t, domain.ScopeKindProject, scopes[0].Kind)
	assert.Equal(t, domain.ScopeID("t1"), scopes[0].TeamID)
}

func TestListTeamsEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/teams", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": "t1", "name": "Platform"}]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	scopes, err := client.List(context.Background(), domain.ScopeKindTeam)
	require.NoError(t, err)
	require.Len(t, scopes, 1)
	assert.Equal(t, domain.ScopeKindTeam, scopes[0].Kind)
}

func TestListRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	client, err := NewClient("http://localhost:1", nil)
	require.NoError(t, err)

	_, err = client.List(context.Background(), "org")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scope kind")
}

func TestListUnexpectedStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.List(context.Background(), domain.ScopeKindProject)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestListRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.List(context.Background(), domain.ScopeKindProject)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode project list response")
}

func TestListRejectsScopeWithoutID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"name": "anonymous"}]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	_, err = client.List(context.Background(), domain.ScopeKindProject)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid project in list response")
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := NewClient("", nil)
	require.Error(t, err)
}
