// Package assistant drives question/answer turns against a hosted
// conversational assistant, intercepting retrieval tool-calls and resuming
// the run with their results.
package assistant

import "context"

// RunStatus mirrors the hosted run state machine.
type RunStatus string

const (
	StatusQueued         RunStatus = "queued"
	StatusInProgress     RunStatus = "in_progress"
	StatusRequiresAction RunStatus = "requires_action"
	StatusCompleted      RunStatus = "completed"
	StatusFailed         RunStatus = "failed"
	StatusExpired        RunStatus = "expired"
)

// ToolCall is one function invocation requested by the assistant during a
// run, carrying a name and a raw JSON argument payload.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolOutput is the result fed back for one tool call. Output is a JSON
// string even for structured data; the submission API requires exactly one
// output per requested call.
type ToolOutput struct {
	ToolCallID string
	Output     string
}

// Run is the transient poll result for one assistant execution.
type Run struct {
	ID        string
	Status    RunStatus
	ToolCalls []ToolCall // populated when Status is StatusRequiresAction
}

// Client is the narrow surface of the hosted assistant service the
// orchestrator needs. Threads and runs are owned by the service; callers
// hold identifiers and poll results only.
type Client interface {
	CreateThread(ctx context.Context) (string, error)
	AddUserMessage(ctx context.Context, threadID, content string) error
	StartRun(ctx context.Context, threadID string) (Run, error)
	GetRun(ctx context.Context, threadID, runID string) (Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) error
	LatestAssistantMessage(ctx context.Context, threadID string) (string, error)
}
