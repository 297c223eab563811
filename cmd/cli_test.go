package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScopeServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/projects":
			_, _ = w.Write([]byte(`[
				{"id": "p1", "name": "Checkout", "createdAt": "2026-01-10T09:00:00Z", "teamId": "t1"},
				{"id": "p2", "name": "Search", "createdAt": "2026-02-01T09:00:00Z", "teamId": "t1"}
			]`))
		case "/api/teams":
			_, _ = w.Write([]byte(`[{"id": "t1", "name": "Platform"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func executeCLI(t *testing.T, home, baseURL string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("OBSLENS_API_BASE_URL", baseURL)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "http://localhost:1", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestScopeListMarksAutoSelectedFirstProject(t *testing.T) {
	server := newScopeServer(t)

	stdout, _, err := executeCLI(t, t.TempDir(), server.URL, "scope", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "* p1\tCheckout")
	assert.Contains(t, stdout, "  p2\tSearch")
}

func TestScopeSwitchPersistsAcrossInvocations(t *testing.T) {
	server := newScopeServer(t)
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, server.URL, "scope", "switch", "p2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "active project: p2 (Search)")

	data, err := os.ReadFile(filepath.Join(home, ".obslens", "selection.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "current_project_id")
	assert.Contains(t, string(data), "p2")

	stdout, _, err = executeCLI(t, home, server.URL, "scope", "active")
	require.NoError(t, err)
	assert.Contains(t, stdout, "p2\tSearch")
}

func TestScopeSwitchUnknownIDKeepsActiveScope(t *testing.T) {
	server := newScopeServer(t)
	home := t.TempDir()

	stdout, stderr, err := executeCLI(t, home, server.URL, "scope", "switch", "ghost")
	require.NoError(t, err)
	assert.Contains(t, stdout, "active project: p1 (Checkout)")
	assert.Contains(t, stderr, "invalid scope selection")
}

func TestScopeActiveForTeamKind(t *testing.T) {
	server := newScopeServer(t)

	stdout, _, err := executeCLI(t, t.TempDir(), server.URL, "scope", "active", "--kind", "team")
	require.NoError(t, err)
	assert.Contains(t, stdout, "t1\tPlatform")
}

func TestScopeCommandsRejectUnknownKind(t *testing.T) {
	server := newScopeServer(t)

	_, _, err := executeCLI(t, t.TempDir(), server.URL, "scope", "list", "--kind", "org")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scope kind")
}

func writeRunExportFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "run.json")
	payload := `{
		"totalDurationMs": 1000,
		"nodes": [
			{"nodeId": "n2", "nodeName": "summarize", "nodeKind": "llm", "startOffsetMs": 400, "durationMs": 600, "status": "success", "isAiNode": true},
			{"nodeId": "n1", "nodeName": "fetch-docs", "nodeKind": "http", "startOffsetMs": 0, "durationMs": 400, "status": "success", "isAiNode": false}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	return path
}

func TestTimelineRenderCommand(t *testing.T) {
	path := writeRunExportFixture(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "http://localhost:1", "timeline", "render", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Execution timeline")
	assert.Contains(t, stdout, "fetch-docs")
	assert.Contains(t, stdout, "summarize")
}

func TestTimelineGraphCommand(t *testing.T) {
	path := writeRunExportFixture(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "http://localhost:1", "timeline", "graph", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "AI node flow")
	assert.Contains(t, stdout, "summarize")
	assert.NotContains(t, stdout, "fetch-docs")
}

func TestTimelineRenderMissingFile(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "http://localhost:1", "timeline", "render", "/nonexistent/run.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read run export")
}
