package generator

import (
	"context"

	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one turn of a conversation transcript. An assistant turn with
// tool calls carries them in ToolCalls; a tool turn answers exactly one call
// and carries its id in ToolCallId.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallId string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a structured request, emitted by the model, to invoke a named
// tool with raw JSON arguments. It is created by the model and consumed
// exactly once by the orchestrator.
type ToolCall struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Response is one assistant turn. A terminal turn has non-empty Content and
// no tool calls; a tool-requesting turn has one or more tool calls.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Generator is the language-model collaborator. The full transcript is passed
// on every call; no server-side conversation state is assumed.
type Generator interface {
	Generate(ctx context.Context, messages []Message, tools []toolhandler.ToolSpec) (*Response, error)
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func ToolMessage(callId string, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolCallId: callId}
}
