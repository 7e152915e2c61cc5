package similarity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	toolhandler "github.com/w-h-a/expensebot/tool_handler"
	getsafe "github.com/w-h-a/expensebot/util/get_safe"
	vectorstore "github.com/w-h-a/expensebot/vector_store"
)

const (
	defaultTopK          = 3
	defaultMinSimilarity = 0.4
)

type similarityToolHandler struct {
	options toolhandler.Options
	store   *vectorstore.VectorStore
}

func (th *similarityToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{
		Name:        "search_similar",
		Description: "Finds records semantically similar to a free-text query. Use for open-ended or exploratory questions.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Free-text query to match against record contents.",
				},
				"top_k": map[string]any{
					"type":        "integer",
					"description": "Maximum number of results to return.",
				},
				"min_similarity": map[string]any{
					"type":        "number",
					"description": "Minimum cosine similarity, between -1 and 1.",
				},
			},
			"required": []any{"query"},
		},
	}
}

func (th *similarityToolHandler) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	query := strings.TrimSpace(getsafe.String(req.Arguments, "query"))
	if len(query) == 0 {
		return toolhandler.ToolResponse{}, fmt.Errorf("missing 'query' argument")
	}

	topK := defaultTopK
	if k, ok := getsafe.Int(req.Arguments, "top_k"); ok && k > 0 {
		topK = k
	}

	minSimilarity := float64(defaultMinSimilarity)
	if m, ok := getsafe.Float(req.Arguments, "min_similarity"); ok {
		minSimilarity = m
	}

	results, err := th.store.Search(ctx, query, topK, minSimilarity)
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	payload := map[string]any{
		"matches": results,
		"total":   len(results),
	}

	content, err := json.Marshal(payload)
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	return toolhandler.ToolResponse{
		Content: string(content),
		Metadata: map[string]string{
			"tool": "search_similar",
		},
	}, nil
}

func NewToolHandler(store *vectorstore.VectorStore, opts ...toolhandler.Option) toolhandler.ToolHandler {
	if store == nil {
		panic("vector store is required")
	}

	return &similarityToolHandler{
		options: toolhandler.NewOptions(opts...),
		store:   store,
	}
}
