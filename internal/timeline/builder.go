// Package timeline converts flat node-execution records into a
// time-proportional layout and a directed acyclic graph for rendering.
// Everything here is a pure transform over its inputs.
package timeline

import (
	"sort"

	"github.com/nlegrand-dev/obslens/internal/domain"
)

// MinVisibleFraction keeps zero-duration and sub-pixel nodes wide
// enough to remain visible and clickable.
const MinVisibleFraction = 0.01

// Build lays the nodes out proportionally against the total run
// duration. Output order is the input stable-sorted by start offset
// ascending, ties kept in input order; this is display order, not
// causal order. A zero total duration or empty input yields an
// explicit empty layout.
func Build(nodes []domain.TimelineNode, totalDurationMs int64) domain.TimelineLayout {
	layout := domain.TimelineLayout{TotalDurationMs: totalDurationMs}
	if len(nodes) == 0 || totalDurationMs <= 0 {
		return layout
	}

	ordered := append([]domain.TimelineNode(nil), nodes...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartOffsetMs < ordered[j].StartOffsetMs
	})

	total := float64(totalDurationMs)
	layout.Spans = make([]domain.TimelineSpan, 0, len(ordered))
	for _, node := range ordered {
		left := clampFraction(float64(node.StartOffsetMs) / total)
		width := float64(node.DurationMs) / total
		if width < MinVisibleFraction {
			width = MinVisibleFraction
		}
		if left+width > 1 {
			width = 1 - left
			if width < MinVisibleFraction {
				width = MinVisibleFraction
			}
		}

		layout.Spans = append(layout.Spans, domain.TimelineSpan{
			NodeID:        node.NodeID,
			LeftFraction:  left,
			WidthFraction: width,
			ColorClass:    colorClass(node),
		})
	}

	return layout
}

// colorClass picks the span color. Error visibility outranks the AI
// classification; the precedence order is fixed.
func colorClass(node domain.TimelineNode) string {
	switch {
	case node.Status == domain.NodeStatusError:
		return domain.ColorClassError
	case node.AINode:
		return domain.ColorClassAI
	default:
		return domain.ColorClassDefault
	}
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
