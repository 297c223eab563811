package application

import "github.com/nlegrand-dev/obslens/internal/domain"

// Logical query names used as cache keys across the dashboard.
const (
	QueryProjects        = "projects"
	QueryTeamMembers     = "team-members"
	QueryTeamInvitations = "team-invitations"
	QueryTeamProjects    = "team-projects"
	QueryWorkflows       = "workflows"
	QueryTraces          = "traces"
	QueryCostSummary     = "cost-summary"
	QueryErrorAnalysis   = "error-analysis"
)

// scopeDependentQueries is the closed registry of query names whose
// cached results depend on which scope of a kind is active. Adding a
// scoped view means registering its query name here; invalidation is
// never inferred dynamically. A team switch also invalidates the
// project list, since project visibility is team-scoped.
var scopeDependentQueries = map[domain.ScopeKind][]string{
	domain.ScopeKindTeam: {
		QueryTeamMembers,
		QueryTeamInvitations,
		QueryTeamProjects,
		QueryProjects,
	},
	domain.ScopeKindProject: {
		QueryWorkflows,
		QueryTraces,
		QueryCostSummary,
		QueryErrorAnalysis,
	},
}

// ScopeDependentQueries returns the query names invalidated by a switch
// of the given kind.
func ScopeDependentQueries(kind domain.ScopeKind) []string {
	return append([]string(nil), scopeDependentQueries[kind]...)
}
