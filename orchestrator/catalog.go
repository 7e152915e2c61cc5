package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/w-h-a/expensebot/generator"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

// Catalog maps tool names to handlers. Registration order is preserved so the
// specs presented to the model are stable.
type Catalog struct {
	tools map[string]toolhandler.ToolHandler
	specs map[string]toolhandler.ToolSpec
	order []string
	mtx   sync.RWMutex
}

func (c *Catalog) Register(th toolhandler.ToolHandler) error {
	if th == nil {
		return fmt.Errorf("tool is nil")
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	spec := th.Spec()
	key := strings.ToLower(strings.TrimSpace(spec.Name))
	if len(key) == 0 {
		return fmt.Errorf("tool name is required")
	}

	if _, ok := c.tools[key]; ok {
		return fmt.Errorf("tool %s already registered", key)
	}

	c.tools[key] = th
	c.specs[key] = spec
	c.order = append(c.order, key)

	return nil
}

func (c *Catalog) ListSpecs() []toolhandler.ToolSpec {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	specs := make([]toolhandler.ToolSpec, 0, len(c.specs))
	for _, key := range c.order {
		specs = append(specs, c.specs[key])
	}

	return specs
}

func (c *Catalog) Get(name string) (toolhandler.ToolHandler, toolhandler.ToolSpec, bool) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	th, ok := c.tools[key]

	return th, c.specs[key], ok
}

// Dispatch executes one tool call and returns the uniform result envelope as
// a JSON string. A handler failure never escapes: malformed arguments,
// unknown tools, and handler errors all become {"success":false,...} payloads
// the model can see and react to.
func (c *Catalog) Dispatch(ctx context.Context, call generator.ToolCall, session *toolhandler.Session) string {
	th, _, ok := c.Get(call.Name)
	if !ok {
		return failure(fmt.Sprintf("unknown tool: %s", call.Name))
	}

	args := map[string]any{}
	if raw := strings.TrimSpace(call.Arguments); len(raw) > 0 {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return failure(fmt.Sprintf("invalid arguments: %v", err))
		}
	}

	rsp, err := th.Invoke(ctx, toolhandler.ToolRequest{
		CallId:    call.Id,
		Arguments: args,
		Session:   session,
	})
	if err != nil {
		return failure(err.Error())
	}

	return success(rsp.Content)
}

func failure(reason string) string {
	payload, _ := json.Marshal(map[string]any{
		"success": false,
		"error":   reason,
	})
	return string(payload)
}

func success(content string) string {
	// Fold the handler's fields into the envelope when the handler returned a
	// JSON object; otherwise carry the raw content under a single key.
	var fields map[string]any
	if err := json.Unmarshal([]byte(content), &fields); err != nil || fields == nil {
		fields = map[string]any{"content": content}
	}

	fields["success"] = true

	payload, _ := json.Marshal(fields)
	return string(payload)
}

func NewCatalog(toolHandlers ...toolhandler.ToolHandler) *Catalog {
	catalog := &Catalog{
		tools: map[string]toolhandler.ToolHandler{},
		specs: map[string]toolhandler.ToolSpec{},
		order: []string{},
		mtx:   sync.RWMutex{},
	}

	for _, th := range toolHandlers {
		if th == nil {
			continue
		}
		if err := catalog.Register(th); err != nil {
			continue
		}
	}

	return catalog
}
