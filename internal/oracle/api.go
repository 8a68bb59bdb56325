package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

// defaultMaxIterations caps API round-trips per invocation so a
// tool-happy model cannot loop forever.
const defaultMaxIterations = 50

// API invokes the Anthropic Messages API as the oracle, executing the
// model's tool calls locally so its file side effects land in the
// invocation's working directory, matching the CLI backend's behavior.
type API struct {
	client        *Client
	timeout       time.Duration
	maxIterations int
}

// NewAPI creates an API oracle around the given client.
func NewAPI(client *Client, timeout time.Duration) *API {
	return &API{
		client:        client,
		timeout:       timeout,
		maxIterations: defaultMaxIterations,
	}
}

// Invoke runs the request through the API tool loop until the model ends
// its turn, the iteration ceiling is reached, or the timeout elapses.
func (a *API) Invoke(ctx context.Context, req Request) error {
	timeout := a.timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	executor := NewToolExecutor(req.WorkDir)
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
	}

	for iteration := 0; iteration < a.maxIterations; iteration++ {
		resp, err := a.client.sdk().Messages.New(runCtx, anthropic.MessageNewParams{
			Model:     a.client.Model(),
			MaxTokens: 8192,
			Messages:  messages,
			Tools:     ToolDefinitions(),
		})
		if err != nil {
			if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
				return &TimeoutError{Timeout: timeout}
			}
			return fmt.Errorf("API call failed: %w", err)
		}

		a.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

		var assistantBlocks []anthropic.ContentBlockParamUnion
		var toolResultBlocks []anthropic.ContentBlockParamUnion

		for _, block := range resp.Content {
			switch variant := block.AsAny().(type) {
			case anthropic.TextBlock:
				assistantBlocks = append(assistantBlocks, anthropic.NewTextBlock(variant.Text))

			case anthropic.ToolUseBlock:
				assistantBlocks = append(assistantBlocks,
					anthropic.NewToolUseBlock(variant.ID, variant.Input, variant.Name))

				result := executor.Execute(runCtx, variant.Name, variant.Input)
				toolResultBlocks = append(toolResultBlocks,
					anthropic.NewToolResultBlock(variant.ID, result.Content, result.IsError))
			}
		}

		if resp.StopReason == anthropic.StopReasonEndTurn {
			return nil
		}

		messages = append(messages, anthropic.NewAssistantMessage(assistantBlocks...))
		if len(toolResultBlocks) > 0 {
			messages = append(messages, anthropic.NewUserMessage(toolResultBlocks...))
		}
	}

	return fmt.Errorf("max iterations (%d) reached", a.maxIterations)
}

// Verify API implements Oracle at compile time.
var _ Oracle = (*API)(nil)
