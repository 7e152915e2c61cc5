package toolhandler

import "context"

type ToolHandler interface {
	Spec() ToolSpec
	Invoke(ctx context.Context, req ToolRequest) (ToolResponse, error)
}

// ToolRequest carries one parsed tool invocation. Session is owned by the
// orchestration run that dispatched the call and is never shared across runs.
type ToolRequest struct {
	CallId    string
	Arguments map[string]any
	Session   *Session
}

type ToolResponse struct {
	Content  string
	Metadata map[string]string
}
