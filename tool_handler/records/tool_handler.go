package records

import (
	"context"
	"encoding/json"
	"time"

	recordsearch "github.com/w-h-a/expensebot/record_search"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
	getsafe "github.com/w-h-a/expensebot/util/get_safe"
)

// maxReturnedRecords caps the records serialized into the tool result to keep
// the payload small. The cap is presentation only: totals always cover the
// full filtered set.
const maxReturnedRecords = 20

const maxContentPreview = 200

type recordsToolHandler struct {
	options toolhandler.Options
	filter  *recordsearch.Filter
}

func (th *recordsToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{
		Name:        "search_records",
		Description: "Searches records with exact constraints: sender, subject keywords, categories, amount range, date range. Use for concrete lookups about spending, merchants, or time periods.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"sender": map[string]any{
					"type":        "string",
					"description": "Sender or merchant name to match, e.g. 'netflix' or 'amazon'.",
				},
				"subject_contains": map[string]any{
					"type":        "string",
					"description": "Keyword that must appear in the record's title or content.",
				},
				"categories": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Record categories to match.",
				},
				"min_amount": map[string]any{
					"type":        "number",
					"description": "Minimum transaction amount.",
				},
				"max_amount": map[string]any{
					"type":        "number",
					"description": "Maximum transaction amount.",
				},
				"date_range": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"start": map[string]any{
							"type":        "string",
							"description": "Start of the range, RFC 3339.",
						},
						"end": map[string]any{
							"type":        "string",
							"description": "End of the range, RFC 3339.",
						},
					},
					"description": "Date range for the search.",
				},
			},
			"required": []any{},
		},
		Examples: []map[string]any{
			{"sender": "netflix"},
			{"categories": []string{"cargo-suscripcion"}, "min_amount": 10},
		},
	}
}

func (th *recordsToolHandler) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	params := parseParams(req.Arguments)

	result, err := th.filter.Filter(ctx, params)
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	returned := result.Records
	if len(returned) > maxReturnedRecords {
		returned = returned[:maxReturnedRecords]
	}

	previews := make([]map[string]any, 0, len(returned))
	for _, m := range returned {
		content := m.Content
		if len(content) > maxContentPreview {
			content = content[:maxContentPreview] + "..."
		}
		previews = append(previews, map[string]any{
			"id":       m.Id,
			"title":    m.Title,
			"content":  content,
			"category": m.Category,
			"date":     m.Timestamp,
			"amount":   m.Amount,
		})
	}

	payload := map[string]any{
		"records":       previews,
		"total_records": len(result.Records),
		"total_amount":  result.TotalAmount,
		"summary":       result.Summary,
	}

	content, err := json.Marshal(payload)
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	return toolhandler.ToolResponse{
		Content: string(content),
		Metadata: map[string]string{
			"tool": "search_records",
		},
	}, nil
}

func parseParams(args map[string]any) recordsearch.Params {
	params := recordsearch.Params{
		Sender:          getsafe.String(args, "sender"),
		SubjectContains: getsafe.String(args, "subject_contains"),
		Categories:      getsafe.StringSlice(args, "categories"),
	}

	if min, ok := getsafe.Float(args, "min_amount"); ok {
		params.MinAmount = &min
	}

	if max, ok := getsafe.Float(args, "max_amount"); ok {
		params.MaxAmount = &max
	}

	if dr := getsafe.Metadata(args, "date_range"); dr != nil {
		dateRange := &recordsearch.DateRange{}
		if start, err := time.Parse(time.RFC3339, getsafe.String(dr, "start")); err == nil {
			dateRange.Start = start
		}
		if end, err := time.Parse(time.RFC3339, getsafe.String(dr, "end")); err == nil {
			dateRange.End = end
		}
		if !dateRange.Start.IsZero() || !dateRange.End.IsZero() {
			params.DateRange = dateRange
		}
	}

	return params
}

func NewToolHandler(filter *recordsearch.Filter, opts ...toolhandler.Option) toolhandler.ToolHandler {
	if filter == nil {
		panic("record filter is required")
	}

	return &recordsToolHandler{
		options: toolhandler.NewOptions(opts...),
		filter:  filter,
	}
}
