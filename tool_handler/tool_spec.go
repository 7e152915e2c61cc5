package toolhandler

// ToolSpec describes one tool to the model. InputSchema is a JSON Schema
// object; Examples are optional sample argument payloads some providers can
// surface to the model.
type ToolSpec struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	InputSchema map[string]any   `json:"input_schema"`
	Examples    []map[string]any `json:"examples,omitempty"`
}
