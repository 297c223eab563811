package domain

type NodeStatus string

const (
	NodeStatusSuccess NodeStatus = "success"
	NodeStatusError   NodeStatus = "error"
	NodeStatusRunning NodeStatus = "running"
	NodeStatusSkipped NodeStatus = "skipped"
)

// TimelineNode is one node-execution record from a workflow run, as
// returned by the backend. Immutable for the lifetime of a view.
type TimelineNode struct {
	NodeID        string
	NodeName      string
	NodeKind      string
	StartOffsetMs int64
	DurationMs    int64
	Status        NodeStatus
	AINode        bool
}

// Color classes assigned by the timeline builder. Error takes
// precedence over the AI classification; the precedence order is fixed.
const (
	ColorClassError   = "node-error"
	ColorClassAI      = "node-ai"
	ColorClassDefault = "node-default"
)

// TimelineSpan is the layout slot for one node: horizontal position and
// width as fractions of the full timeline, both in [0,1].
type TimelineSpan struct {
	NodeID        string
	LeftFraction  float64
	WidthFraction float64
	ColorClass    string
}

// TimelineLayout is a time-proportional layout ordered by start offset.
type TimelineLayout struct {
	Spans           []TimelineSpan
	TotalDurationMs int64
}

// ExecutionGraph is a directed acyclic node/edge view of a run. Edges
// are synthesized in list order when the backend provides none.
type ExecutionGraph struct {
	Nodes []GraphNode
	Edges []GraphEdge
}

type GraphNodeKind string

const (
	GraphNodeStart GraphNodeKind = "start"
	GraphNodeStep  GraphNodeKind = "step"
	GraphNodeEnd   GraphNodeKind = "end"
)

type GraphNode struct {
	ID    string
	Label string
	Kind  GraphNodeKind
}

type GraphEdge struct {
	From string
	To   string
}
