package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nlegrand-dev/obslens/internal/adapters/render/timelineview"
	"github.com/nlegrand-dev/obslens/internal/domain"
	"github.com/nlegrand-dev/obslens/internal/timeline"
)

func newTimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Render workflow execution timelines",
	}

	cmd.AddCommand(
		newTimelineRenderCmd(),
		newTimelineGraphCmd(),
	)

	return cmd
}

// runExportPayload is the JSON shape of a workflow run export produced
// by the backend.
type runExportPayload struct {
	TotalDurationMs int64               `json:"totalDurationMs"`
	Nodes           []nodeRecordPayload `json:"nodes"`
}

type nodeRecordPayload struct {
	NodeID        string `json:"nodeId"`
	NodeName      string `json:"nodeName"`
	NodeKind      string `json:"nodeKind"`
	StartOffsetMs int64  `json:"startOffsetMs"`
	DurationMs    int64  `json:"durationMs"`
	Status        string `json:"status"`
	IsAINode      bool   `json:"isAiNode"`
}

func newTimelineRenderCmd() *cobra.Command {
	var laneWidth int

	cmd := &cobra.Command{
		Use:   "render <run-export.json>",
		Short: "Draw a time-proportional waterfall of a run export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, totalMs, err := loadRunExport(args[0])
			if err != nil {
				return err
			}

			layout := timeline.Build(nodes, totalMs)
			out := timelineview.Render(layout, nodes, timelineview.RenderOptions{LaneWidth: laneWidth})
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().IntVar(&laneWidth, "width", 0, "Columns for the time axis (default 60)")
	return cmd
}

func newTimelineGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph <run-export.json>",
		Short: "Draw the AI-node chain graph of a run export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, _, err := loadRunExport(args[0])
			if err != nil {
				return err
			}

			graph := timeline.BuildChainGraph(nodes)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), timelineview.RenderGraph(graph))
			return err
		},
	}
}

func loadRunExport(path string) ([]domain.TimelineNode, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read run export: %w", err)
	}

	var payload runExportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, 0, fmt.Errorf("decode run export: %w", err)
	}

	nodes := make([]domain.TimelineNode, 0, len(payload.Nodes))
	for _, entry := range payload.Nodes {
		nodes = append(nodes, domain.TimelineNode{
			NodeID:        entry.NodeID,
			NodeName:      entry.NodeName,
			NodeKind:      entry.NodeKind,
			StartOffsetMs: entry.StartOffsetMs,
			DurationMs:    entry.DurationMs,
			Status:        domain.NodeStatus(entry.Status),
			AINode:        entry.IsAINode,
		})
	}

	return nodes, payload.TotalDurationMs, nil
}
