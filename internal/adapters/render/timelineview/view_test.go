package timelineview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nlegrand-dev/obslens/internal/domain"
	"github.com/nlegrand-dev/obslens/internal/timeline"
)

func TestRenderEmptyLayout(t *testing.T) {
	t.Parallel()

	out := Render(domain.TimelineLayout{}, nil, RenderOptions{})
	assert.Contains(t, out, "Execution timeline")
	assert.Contains(t, out, "No node executions to display.")
}

func TestRenderListsNodesInLayoutOrder(t *testing.T) {
	t.Parallel()

	nodes := []domain.TimelineNode{
		{NodeID: "n2", NodeName: "summarize", StartOffsetMs: 500, DurationMs: 400, AINode: true},
		{NodeID: "n1", NodeName: "fetch-docs", StartOffsetMs: 0, DurationMs: 300},
	}
	layout := timeline.Build(nodes, 1000)

	out := Render(layout, nodes, RenderOptions{LaneWidth: 40})
	require.Contains(t, out, "fetch-docs")
	require.Contains(t, out, "summarize")
	assert.Less(t, strings.Index(out, "fetch-docs"), strings.Index(out, "summarize"))
	assert.Contains(t, out, "total: 1s, nodes: 2")
}

func TestRenderRowBarsStayWithinLane(t *testing.T) {
	t.Parallel()

	nodes := []domain.TimelineNode{
		{NodeID: "end", NodeName: "end", StartOffsetMs: 1000, DurationMs: 0},
	}
	layout := timeline.Build(nodes, 1000)

	out := Render(layout, nodes, RenderOptions{LaneWidth: 20})
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "█") {
			continue
		}
		bars := strings.Count(line, "█")
		dots := strings.Count(line, "·")
		assert.Equal(t, 20, bars+dots)
	}
}

func TestRenderGraphFlowsStartToEnd(t *testing.T) {
	t.Parallel()

	graph := timeline.BuildChainGraph([]domain.TimelineNode{
		{NodeID: "a", NodeName: "classify", AINode: true},
		{NodeID: "b", NodeName: "generate", AINode: true},
	})

	out := RenderGraph(graph)
	require.Contains(t, out, "Start")
	require.Contains(t, out, "End")
	assert.Less(t, strings.Index(out, "Start"), strings.Index(out, "classify"))
	assert.Less(t, strings.Index(out, "classify"), strings.Index(out, "generate"))
	assert.Less(t, strings.Index(out, "generate"), strings.Index(out, "End"))
	assert.Contains(t, out, "→")
}
