package assistant

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfp-assist/internal/apperr"
	"rfp-assist/internal/config"
	"rfp-assist/internal/retriever"
)

// fakeClient scripts the run state machine: StartRun returns the first state,
// each GetRun call advances to the next, and the last state repeats.
type fakeClient struct {
	mu        sync.Mutex
	states    []Run
	pos       int
	submitted [][]ToolOutput
	answer    string
	messages  []string
}

func (f *fakeClient) CreateThread(ctx context.Context) (string, error) { return "th_fake", nil }

func (f *fakeClient) AddUserMessage(ctx context.Context, threadID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, content)
	return nil
}

func (f *fakeClient) StartRun(ctx context.Context, threadID string) (Run, error) {
	return f.current(), nil
}

func (f *fakeClient) GetRun(ctx context.Context, threadID, runID string) (Run, error) {
	f.mu.Lock()
	if f.pos < len(f.states)-1 {
		f.pos++
	}
	f.mu.Unlock()
	return f.current(), nil
}

func (f *fakeClient) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, outputs)
	return nil
}

func (f *fakeClient) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	return f.answer, nil
}

func (f *fakeClient) current() Run {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.states[f.pos]
}

type fakeFinder struct {
	hits map[string][]retriever.Similar
}

func (f *fakeFinder) TopSimilar(title string, k int) ([]retriever.Similar, error) {
	hits, ok := f.hits[title]
	if !ok {
		return nil, apperr.Newf(apperr.KindNotFound, "document %q not found in embeddings", title)
	}
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func testConfig() *config.AssistantConfig {
	return &config.AssistantConfig{
		RetrievalTool: "find_similar_documents",
		DefaultK:      5,
		PollInterval:  time.Millisecond,
		PollTimeout:   time.Second,
	}
}

func newTestOrchestrator(client Client, finder SimilarFinder) *Orchestrator {
	return NewOrchestrator(client, finder, testConfig())
}

func TestAskCompletesAfterToolCalls(t *testing.T) {
	client := &fakeClient{
		answer: "Similar proposals found.",
		states: []Run{
			{ID: "run_1", Status: StatusQueued},
			{ID: "run_1", Status: StatusRequiresAction, ToolCalls: []ToolCall{
				{ID: "call_1", Name: "find_similar_documents", Arguments: `{"filename": "Healthcare_Proposal", "k": 2}`},
			}},
			{ID: "run_1", Status: StatusInProgress},
			{ID: "run_1", Status: StatusCompleted},
		},
	}
	finder := &fakeFinder{hits: map[string][]retriever.Similar{
		"Healthcare_Proposal": {
			{DocID: "a.pdf", Similarity: 0.9, Title: "A"},
			{DocID: "b.pdf", Similarity: 0.8, Title: "B"},
			{DocID: "c.pdf", Similarity: 0.7, Title: "C"},
		},
	}}
	o := newTestOrchestrator(client, finder)

	answer, err := o.Ask(context.Background(), "th_1", "what is similar?")
	require.NoError(t, err)
	assert.Equal(t, "Similar proposals found.", answer)
	assert.Equal(t, []string{"what is similar?"}, client.messages)

	require.Len(t, client.submitted, 1)
	require.Len(t, client.submitted[0], 1)
	out := client.submitted[0][0]
	assert.Equal(t, "call_1", out.ToolCallID)

	var hits []retriever.Similar
	require.NoError(t, json.Unmarshal([]byte(out.Output), &hits))
	require.Len(t, hits, 2)
	assert.Equal(t, "a.pdf", hits[0].DocID)
}

func TestAskUnknownDocumentYieldsErrorPayloadAndRunContinues(t *testing.T) {
	client := &fakeClient{
		answer: "I could not find that document.",
		states: []Run{
			{ID: "run_1", Status: StatusRequiresAction, ToolCalls: []ToolCall{
				{ID: "call_1", Name: "find_similar_documents", Arguments: `{"filename": "Unknown.pdf"}`},
			}},
			{ID: "run_1", Status: StatusCompleted},
		},
	}
	o := newTestOrchestrator(client, &fakeFinder{hits: map[string][]retriever.Similar{}})

	answer, err := o.Ask(context.Background(), "th_1", "compare with Unknown.pdf")
	require.NoError(t, err)
	assert.Equal(t, "I could not find that document.", answer)

	require.Len(t, client.submitted, 1)
	out := client.submitted[0][0]
	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(out.Output), &payload))
	assert.Contains(t, payload["error"], "Unknown.pdf")
}

func TestAskOneOutputPerToolCall(t *testing.T) {
	client := &fakeClient{
		answer: "done",
		states: []Run{
			{ID: "run_1", Status: StatusRequiresAction, ToolCalls: []ToolCall{
				{ID: "call_1", Name: "find_similar_documents", Arguments: `{"filename": "Known"}`},
				{ID: "call_2", Name: "delete_everything", Arguments: `{}`},
				{ID: "call_3", Name: "find_similar_documents", Arguments: `not json`},
			}},
			{ID: "run_1", Status: StatusCompleted},
		},
	}
	finder := &fakeFinder{hits: map[string][]retriever.Similar{
		"Known": {{DocID: "a.pdf", Similarity: 0.9}},
	}}
	o := newTestOrchestrator(client, finder)

	_, err := o.Ask(context.Background(), "th_1", "mixed calls")
	require.NoError(t, err)

	require.Len(t, client.submitted, 1)
	outputs := client.submitted[0]
	require.Len(t, outputs, 3)
	assert.Equal(t, "call_1", outputs[0].ToolCallID)
	assert.Equal(t, "call_2", outputs[1].ToolCallID)
	assert.Equal(t, "call_3", outputs[2].ToolCallID)
	assert.Contains(t, outputs[1].Output, "unknown tool")
	assert.Contains(t, outputs[2].Output, "invalid JSON arguments")
}

func TestAskInvalidK(t *testing.T) {
	client := &fakeClient{
		answer: "done",
		states: []Run{
			{ID: "run_1", Status: StatusRequiresAction, ToolCalls: []ToolCall{
				{ID: "call_1", Name: "find_similar_documents", Arguments: `{"filename": "Known", "k": "lots"}`},
			}},
			{ID: "run_1", Status: StatusCompleted},
		},
	}
	o := newTestOrchestrator(client, &fakeFinder{})

	_, err := o.Ask(context.Background(), "th_1", "bad k")
	require.NoError(t, err)
	require.Len(t, client.submitted, 1)
	assert.Contains(t, client.submitted[0][0].Output, "invalid value for k")
}

func TestAskRunFailed(t *testing.T) {
	client := &fakeClient{states: []Run{{ID: "run_1", Status: StatusFailed}}}
	o := newTestOrchestrator(client, &fakeFinder{})

	_, err := o.Ask(context.Background(), "th_1", "q")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRunFailed))
}

func TestAskRunExpired(t *testing.T) {
	client := &fakeClient{states: []Run{{ID: "run_1", Status: StatusExpired}}}
	o := newTestOrchestrator(client, &fakeFinder{})

	_, err := o.Ask(context.Background(), "th_1", "q")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRunExpired))
}

func TestAskTimesOutOnStuckRun(t *testing.T) {
	client := &fakeClient{states: []Run{{ID: "run_1", Status: StatusInProgress}}}
	cfg := testConfig()
	cfg.PollInterval = 5 * time.Millisecond
	cfg.PollTimeout = 30 * time.Millisecond
	o := NewOrchestrator(client, &fakeFinder{}, cfg)

	_, err := o.Ask(context.Background(), "th_1", "q")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindTimeout))
}

func TestCoerceK(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    int
		wantErr bool
	}{
		{name: "absent uses default", in: nil, want: 5},
		{name: "json number", in: float64(3), want: 3},
		{name: "numeric string", in: "4", want: 4},
		{name: "padded string", in: " 2 ", want: 2},
		{name: "non-numeric string", in: "lots", wantErr: true},
		{name: "zero", in: float64(0), wantErr: true},
		{name: "negative", in: float64(-1), wantErr: true},
		{name: "bool", in: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceK(tt.in, 5)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
