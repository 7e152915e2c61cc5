package orchestrator

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w-h-a/expensebot/generator"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

func TestCatalogPreservesRegistrationOrder(t *testing.T) {
	catalog := NewCatalog(
		&countingToolHandler{name: "alpha"},
		&countingToolHandler{name: "beta"},
		&countingToolHandler{name: "gamma"},
	)

	specs := catalog.ListSpecs()

	require.Len(t, specs, 3)
	assert.Equal(t, "alpha", specs[0].Name)
	assert.Equal(t, "beta", specs[1].Name)
	assert.Equal(t, "gamma", specs[2].Name)
}

func TestCatalogRejectsDuplicateNames(t *testing.T) {
	catalog := NewCatalog(&countingToolHandler{name: "alpha"})

	err := catalog.Register(&countingToolHandler{name: "Alpha"})

	assert.Error(t, err)
	assert.Len(t, catalog.ListSpecs(), 1)
}

func TestCatalogLookupIsCaseInsensitive(t *testing.T) {
	catalog := NewCatalog(&countingToolHandler{name: "alpha"})

	_, _, ok := catalog.Get("ALPHA")
	assert.True(t, ok)

	_, _, ok = catalog.Get("beta")
	assert.False(t, ok)
}

func TestDispatchRejectsMalformedArguments(t *testing.T) {
	th := &countingToolHandler{name: "alpha"}
	catalog := NewCatalog(th)

	payload := catalog.Dispatch(context.Background(), generator.ToolCall{
		Id:        "call-1",
		Name:      "alpha",
		Arguments: "{not json",
	}, toolhandler.NewSession())

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &envelope))

	assert.Equal(t, false, envelope["success"])
	assert.Contains(t, envelope["error"], "invalid arguments")
	assert.Zero(t, th.invokes)
}

func TestDispatchWrapsNonJsonContent(t *testing.T) {
	th := &countingToolHandler{name: "alpha", content: "plain text output"}
	catalog := NewCatalog(th)

	payload := catalog.Dispatch(context.Background(), generator.ToolCall{
		Id:   "call-1",
		Name: "alpha",
	}, toolhandler.NewSession())

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &envelope))

	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "plain text output", envelope["content"])
}
