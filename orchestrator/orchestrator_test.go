package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w-h-a/expensebot/generator"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

// scriptedGenerator replays a fixed sequence of assistant turns.
type scriptedGenerator struct {
	responses []*generator.Response
	err       error
	calls     int
}

func (g *scriptedGenerator) Generate(ctx context.Context, messages []generator.Message, tools []toolhandler.ToolSpec) (*generator.Response, error) {
	if g.err != nil {
		return nil, g.err
	}

	if g.calls >= len(g.responses) {
		return &generator.Response{Content: "done"}, nil
	}

	rsp := g.responses[g.calls]
	g.calls++

	return rsp, nil
}

type countingToolHandler struct {
	name    string
	invokes int
	err     error
	content string
}

func (th *countingToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{Name: th.name, Description: th.name}
}

func (th *countingToolHandler) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	th.invokes++
	if th.err != nil {
		return toolhandler.ToolResponse{}, th.err
	}

	content := th.content
	if len(content) == 0 {
		content = fmt.Sprintf(`{"echo":%q}`, req.CallId)
	}

	return toolhandler.ToolResponse{Content: content}, nil
}

func toolTurn(calls ...generator.ToolCall) *generator.Response {
	return &generator.Response{ToolCalls: calls}
}

func textTurn(content string) *generator.Response {
	return &generator.Response{Content: content}
}

func TestRunAnswersWithoutTools(t *testing.T) {
	g := &scriptedGenerator{responses: []*generator.Response{textTurn("the answer")}}
	orch := New(g, nil)

	result, err := orch.Run(context.Background(), []generator.Message{generator.UserMessage("question")})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "the answer", result.FinalText)
	assert.Equal(t, 1, result.Iterations)
	assert.Zero(t, result.ToolCallsIssued)
}

func TestRunExecutesToolsThenAnswers(t *testing.T) {
	th := &countingToolHandler{name: "lookup"}
	g := &scriptedGenerator{responses: []*generator.Response{
		toolTurn(generator.ToolCall{Id: "call-1", Name: "lookup", Arguments: `{"q":"netflix"}`}),
		textTurn("found it"),
	}}

	orch := New(g, []toolhandler.ToolHandler{th})

	result, err := orch.Run(context.Background(), []generator.Message{generator.UserMessage("question")})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "found it", result.FinalText)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, 1, result.ToolCallsIssued)
	assert.Equal(t, 1, th.invokes)

	// the tool result turn carries the call id and a success envelope
	var toolMsg *generator.Message
	for i := range result.Transcript {
		if result.Transcript[i].Role == generator.RoleTool {
			toolMsg = &result.Transcript[i]
		}
	}
	require.NotNil(t, toolMsg)
	assert.Equal(t, "call-1", toolMsg.ToolCallId)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(toolMsg.Content), &payload))
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "call-1", payload["echo"])
}

func TestRunSkipsDuplicateCallIds(t *testing.T) {
	th := &countingToolHandler{name: "lookup"}
	g := &scriptedGenerator{responses: []*generator.Response{
		toolTurn(
			generator.ToolCall{Id: "call-1", Name: "lookup"},
			generator.ToolCall{Id: "call-1", Name: "lookup"},
		),
		toolTurn(generator.ToolCall{Id: "call-1", Name: "lookup"}),
		textTurn("ok"),
	}}

	orch := New(g, []toolhandler.ToolHandler{th})

	result, err := orch.Run(context.Background(), []generator.Message{generator.UserMessage("question")})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, th.invokes)
	assert.Equal(t, 1, result.ToolCallsIssued)
}

func TestRunStopsAtIterationLimit(t *testing.T) {
	th := &countingToolHandler{name: "lookup"}
	g := &scriptedGenerator{responses: []*generator.Response{
		toolTurn(generator.ToolCall{Id: "call-1", Name: "lookup"}),
		toolTurn(generator.ToolCall{Id: "call-2", Name: "lookup"}),
		toolTurn(generator.ToolCall{Id: "call-3", Name: "lookup"}),
		toolTurn(generator.ToolCall{Id: "call-4", Name: "lookup"}),
	}}

	orch := New(g, []toolhandler.ToolHandler{th}, WithMaxIterations(3))

	result, err := orch.Run(context.Background(), []generator.Message{generator.UserMessage("question")})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, result.FinalText)
	assert.Equal(t, 3, result.Iterations)
	assert.Equal(t, 3, result.ToolCallsIssued)
	assert.NotEmpty(t, result.Transcript)
}

func TestRunReturnsGeneratorError(t *testing.T) {
	g := &scriptedGenerator{err: generator.ErrModelUnavailable}
	orch := New(g, nil)

	result, err := orch.Run(context.Background(), []generator.Message{generator.UserMessage("question")})

	require.Nil(t, result)
	assert.ErrorIs(t, err, generator.ErrModelUnavailable)
}

func TestRunSurfacesToolFailureToModel(t *testing.T) {
	th := &countingToolHandler{name: "lookup", err: fmt.Errorf("backend down")}
	g := &scriptedGenerator{responses: []*generator.Response{
		toolTurn(generator.ToolCall{Id: "call-1", Name: "lookup"}),
		textTurn("could not look that up"),
	}}

	orch := New(g, []toolhandler.ToolHandler{th})

	result, err := orch.Run(context.Background(), []generator.Message{generator.UserMessage("question")})
	require.NoError(t, err)

	assert.True(t, result.Success)

	var payload map[string]any
	for _, msg := range result.Transcript {
		if msg.Role == generator.RoleTool {
			require.NoError(t, json.Unmarshal([]byte(msg.Content), &payload))
		}
	}
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "backend down", payload["error"])
}

func TestRunHandlesUnknownTool(t *testing.T) {
	g := &scriptedGenerator{responses: []*generator.Response{
		toolTurn(generator.ToolCall{Id: "call-1", Name: "no_such_tool"}),
		textTurn("sorry"),
	}}

	orch := New(g, nil)

	result, err := orch.Run(context.Background(), []generator.Message{generator.UserMessage("question")})
	require.NoError(t, err)

	assert.True(t, result.Success)

	var payload map[string]any
	for _, msg := range result.Transcript {
		if msg.Role == generator.RoleTool {
			require.NoError(t, json.Unmarshal([]byte(msg.Content), &payload))
		}
	}
	assert.Equal(t, false, payload["success"])
	assert.Contains(t, payload["error"], "unknown tool")
}

func TestRunEmptyTerminalTurnIsSuccess(t *testing.T) {
	g := &scriptedGenerator{responses: []*generator.Response{textTurn("")}}
	orch := New(g, nil)

	result, err := orch.Run(context.Background(), []generator.Message{generator.UserMessage("question")})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Empty(t, result.FinalText)
}

func TestRunRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := &scriptedGenerator{responses: []*generator.Response{textTurn("never reached")}}
	orch := New(g, nil)

	_, err := orch.Run(ctx, []generator.Message{generator.UserMessage("question")})
	assert.ErrorIs(t, err, context.Canceled)
}
