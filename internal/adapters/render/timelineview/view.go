// Package timelineview renders execution timelines and chain graphs
// for the terminal.
package timelineview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nlegrand-dev/obslens/internal/domain"
)

type RenderOptions struct {
	// LaneWidth is the number of columns the time axis spans.
	LaneWidth int
}

const defaultLaneWidth = 60

// Render draws a proportional waterfall of the layout, one row per
// span in layout order.
func Render(layout domain.TimelineLayout, nodes []domain.TimelineNode, opts RenderOptions) string {
	return renderView(layout, nodes, opts, newStyles())
}

func renderView(layout domain.TimelineLayout, nodes []domain.TimelineNode, opts RenderOptions, s styles) string {
	laneWidth := opts.LaneWidth
	if laneWidth <= 0 {
		laneWidth = defaultLaneWidth
	}

	lines := []string{
		s.title.Render("Execution timeline"),
		s.header.Render(fmt.Sprintf("total: %s, nodes: %d", formatMs(layout.TotalDurationMs), len(layout.Spans))),
	}

	if len(layout.Spans) == 0 {
		lines = append(lines, s.empty.Render("No node executions to display."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	byID := make(map[string]domain.TimelineNode, len(nodes))
	nameWidth := 0
	for _, node := range nodes {
		byID[node.NodeID] = node
		if w := lipgloss.Width(nodeLabel(node)); w > nameWidth {
			nameWidth = w
		}
	}

	for _, span := range layout.Spans {
		node := byID[span.NodeID]
		lines = append(lines, renderRow(span, node, laneWidth, nameWidth, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRow(span domain.TimelineSpan, node domain.TimelineNode, laneWidth, nameWidth int, s styles) string {
	offset := int(span.LeftFraction * float64(laneWidth))
	width := int(span.WidthFraction * float64(laneWidth))
	if width < 1 {
		width = 1
	}
	if offset+width > laneWidth {
		offset = laneWidth - width
		if offset < 0 {
			offset = 0
			width = laneWidth
		}
	}

	lane := s.lane.Render(strings.Repeat("·", offset)) +
		barStyle(span.ColorClass, s).Render(strings.Repeat("█", width)) +
		s.lane.Render(strings.Repeat("·", laneWidth-offset-width))

	label := nodeLabel(node)
	padded := label + strings.Repeat(" ", max(0, nameWidth-lipgloss.Width(label)))

	return fmt.Sprintf("%s %s %s",
		s.name.Render(padded),
		lane,
		s.meta.Render(formatMs(node.DurationMs)),
	)
}

func barStyle(colorClass string, s styles) lipgloss.Style {
	switch colorClass {
	case domain.ColorClassError:
		return s.barError
	case domain.ColorClassAI:
		return s.barAI
	default:
		return s.barPlain
	}
}

// RenderGraph draws the chain graph as a single flow line.
func RenderGraph(graph domain.ExecutionGraph) string {
	return renderGraphView(graph, newStyles())
}

func renderGraphView(graph domain.ExecutionGraph, s styles) string {
	next := make(map[string]string, len(graph.Edges))
	for _, edge := range graph.Edges {
		next[edge.From] = edge.To
	}
	byID := make(map[string]domain.GraphNode, len(graph.Nodes))
	for _, node := range graph.Nodes {
		byID[node.ID] = node
	}

	parts := make([]string, 0, len(graph.Nodes))
	id, ok := startID(graph)
	for ok {
		parts = append(parts, renderGraphNode(byID[id], s))
		id = next[id]
		ok = id != ""
	}

	lines := []string{
		s.title.Render("AI node flow"),
		strings.Join(parts, s.arrow.Render(" → ")),
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderGraphNode(node domain.GraphNode, s styles) string {
	if node.Kind == domain.GraphNodeStep {
		return s.step.Render(node.Label)
	}
	return s.endpoint.Render(node.Label)
}

func startID(graph domain.ExecutionGraph) (string, bool) {
	for _, node := range graph.Nodes {
		if node.Kind == domain.GraphNodeStart {
			return node.ID, true
		}
	}
	return "", false
}

func nodeLabel(node domain.TimelineNode) string {
	if node.NodeName != "" {
		return node.NodeName
	}
	return node.NodeID
}

func formatMs(ms int64) string {
	return time.Duration(ms * int64(time.Millisecond)).String()
}
