package store

import (
	"context"
	"encoding/json"
	"time"
)

const (
	tableLLMEvents  = "llm_request_events"
	tableStepEvents = "step_events"
	tableSnapshots  = "snapshots"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match (LLM events only)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStat aggregates LLM calls grouped by a key (purpose or model).
type UsageStat struct {
	Key          string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// StepEventData captures one observe/decide/act iteration of a session.
type StepEventData struct {
	SessionID    string
	Topic        string
	Iteration    int
	Action       string
	Concept      string
	Reason       string
	Success      bool
	ErrorMessage string
	Progress     float64
}

// StepEvent is a stored step event.
type StepEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	StepEventData
}

// SessionSummary describes one journaled session.
type SessionSummary struct {
	SessionID    string
	Topic        string
	Steps        int
	StartedAt    time.Time
	LastStepAt   time.Time
	LastProgress float64
}

// EventRepo provides append and query access to journal events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendStep records a controller iteration.
	AppendStep(ctx context.Context, data StepEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single LLM event by ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]UsageStat, error)

	// LLMUsageByModel aggregates LLM calls per model.
	LLMUsageByModel(ctx context.Context) ([]UsageStat, error)

	// SessionSteps returns a session's steps in iteration order.
	SessionSteps(ctx context.Context, sessionID string) ([]StepEvent, error)

	// ListSessions returns journaled sessions, most recent first.
	ListSessions(ctx context.Context, limit int) ([]SessionSummary, error)
}

// Snapshot is a point-in-time capture of a session's observation.
type Snapshot struct {
	ID        int64
	SessionID string
	Sequence  int64
	Timestamp time.Time
	Data      json.RawMessage
}

// SnapshotRepo manages session snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot of a session, or nil if none exist.
	Latest(ctx context.Context, sessionID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots of a session.
	Prune(ctx context.Context, sessionID string, keep int) error
}
