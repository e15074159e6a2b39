package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"rfp-assist/internal/apperr"
	"rfp-assist/internal/config"
	"rfp-assist/internal/retriever"
)

// SimilarFinder is the retrieval operation exposed to the assistant's tool.
type SimilarFinder interface {
	TopSimilar(title string, k int) ([]retriever.Similar, error)
}

// Orchestrator drives a single question/answer turn: it submits the user
// message, starts a run, and polls the run status on a fixed interval until a
// terminal state. When the run requires action, every requested tool call is
// executed and exactly one output per call is submitted back, so one bad call
// cannot fail its siblings.
//
// Within one thread, runs are strictly sequential; callers must not submit a
// new question while a prior run is non-terminal.
type Orchestrator struct {
	client   Client
	finder   SimilarFinder
	toolName string
	defaultK int
	interval time.Duration
	timeout  time.Duration
}

func NewOrchestrator(client Client, finder SimilarFinder, cfg *config.AssistantConfig) *Orchestrator {
	return &Orchestrator{
		client:   client,
		finder:   finder,
		toolName: cfg.RetrievalTool,
		defaultK: cfg.DefaultK,
		interval: cfg.PollInterval,
		timeout:  cfg.PollTimeout,
	}
}

// Ask runs one turn and returns the assistant's answer text. The polling loop
// is bounded: a run still not terminal at the deadline maps to a timeout
// error rather than blocking forever.
func (o *Orchestrator) Ask(ctx context.Context, threadID, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if err := o.client.AddUserMessage(ctx, threadID, question); err != nil {
		return "", fmt.Errorf("adding user message: %w", err)
	}
	run, err := o.client.StartRun(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("starting run: %w", err)
	}
	log.Debug().Str("thread_id", threadID).Str("run_id", run.ID).Msg("run started")

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		switch run.Status {
		case StatusCompleted:
			return o.client.LatestAssistantMessage(ctx, threadID)
		case StatusFailed:
			return "", apperr.New(apperr.KindRunFailed, "assistant run failed")
		case StatusExpired:
			return "", apperr.New(apperr.KindRunExpired, "assistant run expired")
		case StatusRequiresAction:
			outputs := o.executeToolCalls(run.ToolCalls)
			if err := o.client.SubmitToolOutputs(ctx, threadID, run.ID, outputs); err != nil {
				return "", fmt.Errorf("submitting tool outputs: %w", err)
			}
		}

		select {
		case <-ctx.Done():
			return "", apperr.Wrap(apperr.KindTimeout, "run not terminal at deadline", ctx.Err())
		case <-ticker.C:
		}

		run, err = o.client.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return "", fmt.Errorf("polling run: %w", err)
		}
	}
}

func (o *Orchestrator) executeToolCalls(calls []ToolCall) []ToolOutput {
	outputs := make([]ToolOutput, len(calls))
	for i, call := range calls {
		outputs[i] = ToolOutput{ToolCallID: call.ID, Output: o.executeToolCall(call)}
	}
	return outputs
}

// executeToolCall always produces an output payload: successes carry the
// JSON-encoded results, failures carry a JSON error object the assistant can
// react to.
func (o *Orchestrator) executeToolCall(call ToolCall) string {
	if call.Name != o.toolName {
		return errorPayload(fmt.Sprintf("unknown tool %q", call.Name))
	}

	var args struct {
		Filename string `json:"filename"`
		K        any    `json:"k"`
	}
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return errorPayload("invalid JSON arguments")
	}

	k, err := coerceK(args.K, o.defaultK)
	if err != nil {
		return errorPayload("invalid value for k: it must be a positive integer")
	}

	hits, err := o.finder.TopSimilar(args.Filename, k)
	if err != nil {
		log.Warn().Err(err).Str("tool_call_id", call.ID).Str("filename", args.Filename).Msg("retrieval tool call failed")
		return errorPayload(err.Error())
	}

	data, err := json.Marshal(hits)
	if err != nil {
		return errorPayload("failed to encode retrieval results")
	}
	return string(data)
}

// coerceK accepts the loosely typed k the assistant may produce: absent,
// a JSON number, or a numeric string.
func coerceK(v any, defaultK int) (int, error) {
	var k int
	switch val := v.(type) {
	case nil:
		k = defaultK
	case float64:
		k = int(val)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, err
		}
		k = parsed
	default:
		return 0, fmt.Errorf("unsupported type %T for k", v)
	}
	if k <= 0 {
		return 0, fmt.Errorf("k must be positive, got %d", k)
	}
	return k, nil
}

func errorPayload(msg string) string {
	data, _ := json.Marshal(map[string]string{"error": msg})
	return string(data)
}
