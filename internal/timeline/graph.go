package timeline

import "github.com/nlegrand-dev/obslens/internal/domain"

// Synthetic endpoints of the chain graph.
const (
	GraphStartID = "__start__"
	GraphEndID   = "__end__"
)

// BuildChainGraph builds the AI-node summary graph. The backend carries
// no dependency edges, so the AI nodes are linked into a linear chain
// in the order given, bracketed by synthetic start and end nodes. That
// order is a presentational approximation of execution order, not a
// causal guarantee. Non-AI nodes are skipped; with no AI nodes at all
// the chain degenerates to a single start-to-end edge.
func BuildChainGraph(nodes []domain.TimelineNode) domain.ExecutionGraph {
	graph := domain.ExecutionGraph{
		Nodes: []domain.GraphNode{
			{ID: GraphStartID, Label: "Start", Kind: domain.GraphNodeStart},
		},
	}

	previous := GraphStartID
	for _, node := range nodes {
		if !node.AINode {
			continue
		}
		graph.Nodes = append(graph.Nodes, domain.GraphNode{
			ID:    node.NodeID,
			Label: node.NodeName,
			Kind:  domain.GraphNodeStep,
		})
		graph.Edges = append(graph.Edges, domain.GraphEdge{From: previous, To: node.NodeID})
		previous = node.NodeID
	}

	graph.Nodes = append(graph.Nodes, domain.GraphNode{ID: GraphEndID, Label: "End", Kind: domain.GraphNodeEnd})
	graph.Edges = append(graph.Edges, domain.GraphEdge{From: previous, To: GraphEndID})
	return graph
}
