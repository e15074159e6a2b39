package assistant

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient adapts the OpenAI Assistants API to the Client interface. The
// assistant profile itself is configured outside this service; we only bind
// runs to its identifier.
type OpenAIClient struct {
	api         *openai.Client
	assistantID string
}

func NewOpenAIClient(apiKey, assistantID string) *OpenAIClient {
	return &OpenAIClient{
		api:         openai.NewClient(apiKey),
		assistantID: assistantID,
	}
}

func (c *OpenAIClient) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("creating thread: %w", err)
	}
	return thread.ID, nil
}

func (c *OpenAIClient) AddUserMessage(ctx context.Context, threadID, content string) error {
	_, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    string(openai.ThreadMessageRoleUser),
		Content: content,
	})
	if err != nil {
		return fmt.Errorf("creating message: %w", err)
	}
	return nil
}

func (c *OpenAIClient) StartRun(ctx context.Context, threadID string) (Run, error) {
	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{AssistantID: c.assistantID})
	if err != nil {
		return Run{}, fmt.Errorf("creating run: %w", err)
	}
	return fromRun(run), nil
}

func (c *OpenAIClient) GetRun(ctx context.Context, threadID, runID string) (Run, error) {
	run, err := c.api.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return Run{}, fmt.Errorf("retrieving run: %w", err)
	}
	return fromRun(run), nil
}

func (c *OpenAIClient) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) error {
	req := openai.SubmitToolOutputsRequest{
		ToolOutputs: make([]openai.ToolOutput, len(outputs)),
	}
	for i, out := range outputs {
		req.ToolOutputs[i] = openai.ToolOutput{
			ToolCallID: out.ToolCallID,
			Output:     out.Output,
		}
	}
	if _, err := c.api.SubmitToolOutputs(ctx, threadID, runID, req); err != nil {
		return fmt.Errorf("submitting tool outputs: %w", err)
	}
	return nil
}

// LatestAssistantMessage returns the text of the newest message in the
// thread, which after a completed run is the assistant's answer.
func (c *OpenAIClient) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	limit := 1
	order := "desc"
	msgs, err := c.api.ListMessage(ctx, threadID, &limit, &order, nil, nil, nil)
	if err != nil {
		return "", fmt.Errorf("listing messages: %w", err)
	}
	if len(msgs.Messages) == 0 {
		return "", fmt.Errorf("thread %s has no messages", threadID)
	}
	for _, part := range msgs.Messages[0].Content {
		if part.Text != nil {
			return part.Text.Value, nil
		}
	}
	return "", fmt.Errorf("latest message in thread %s has no text content", threadID)
}

func fromRun(run openai.Run) Run {
	out := Run{ID: run.ID, Status: RunStatus(run.Status)}
	if run.RequiredAction != nil && run.RequiredAction.SubmitToolOutputs != nil {
		for _, tc := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
	}
	return out
}
