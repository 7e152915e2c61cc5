package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/w-h-a/expensebot/generator"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

type anthropicGenerator struct {
	options generator.Options
	client  *anthropic.Client
}

func (g *anthropicGenerator) Generate(ctx context.Context, messages []generator.Message, tools []toolhandler.ToolSpec) (*generator.Response, error) {
	req := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.options.Model),
		MaxTokens: int64(g.options.MaxTokens),
	}

	var system strings.Builder
	for _, msg := range messages {
		if msg.Role != generator.RoleSystem {
			continue
		}
		if system.Len() > 0 {
			system.WriteString("\n")
		}
		system.WriteString(msg.Content)
	}
	if system.Len() > 0 {
		req.System = []anthropic.TextBlockParam{{Text: system.String()}}
	}

	req.Messages = convertMessages(messages)

	for _, spec := range tools {
		req.Tools = append(req.Tools, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        spec.Name,
				Description: anthropic.String(spec.Description),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: spec.InputSchema["properties"],
				},
			},
		})
	}

	rsp, err := g.client.Messages.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generator.ErrModelUnavailable, err)
	}

	response := &generator.Response{}

	var b strings.Builder
	for _, content := range rsp.Content {
		switch block := content.AsAny().(type) {
		case anthropic.TextBlock:
			b.WriteString(block.Text)
		case anthropic.ToolUseBlock:
			response.ToolCalls = append(response.ToolCalls, generator.ToolCall{
				Id:        block.ID,
				Name:      block.Name,
				Arguments: string(block.Input),
			})
		}
	}
	response.Content = b.String()

	if len(response.Content) == 0 && len(response.ToolCalls) == 0 && len(rsp.Content) == 0 {
		return nil, fmt.Errorf("%w: no response from Anthropic", generator.ErrModelUnavailable)
	}

	return response, nil
}

func convertMessages(messages []generator.Message) []anthropic.MessageParam {
	var converted []anthropic.MessageParam

	for _, msg := range messages {
		switch msg.Role {
		case generator.RoleUser:
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case generator.RoleAssistant:
			var blocks []anthropic.ContentBlockParamUnion
			if len(msg.Content) > 0 {
				blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				var input any
				if err := json.Unmarshal([]byte(tc.Arguments), &input); err != nil {
					input = map[string]any{}
				}
				blocks = append(blocks, anthropic.NewToolUseBlock(tc.Id, input, tc.Name))
			}
			if len(blocks) > 0 {
				converted = append(converted, anthropic.NewAssistantMessage(blocks...))
			}
		case generator.RoleTool:
			converted = append(converted, anthropic.NewUserMessage(
				anthropic.NewToolResultBlock(msg.ToolCallId, msg.Content, false),
			))
		}
	}

	return converted
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &anthropicGenerator{
		options: options,
	}

	client := anthropic.NewClient(
		anthropicopt.WithAPIKey(options.ApiKey),
	)

	g.client = &client

	return g
}
