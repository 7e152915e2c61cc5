package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/w-h-a/expensebot/generator"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

type openAIGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *openAIGenerator) Generate(ctx context.Context, messages []generator.Message, tools []toolhandler.ToolSpec) (*generator.Response, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.options.Model,
		MaxTokens:   g.options.MaxTokens,
		Temperature: g.options.Temperature,
		Messages:    convertMessages(messages),
	}

	if len(tools) > 0 {
		req.Tools = convertTools(tools)
	}

	rsp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generator.ErrModelUnavailable, err)
	}

	if len(rsp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response from OpenAI", generator.ErrModelUnavailable)
	}

	choice := rsp.Choices[0].Message

	response := &generator.Response{
		Content: choice.Content,
	}

	for _, tc := range choice.ToolCalls {
		response.ToolCalls = append(response.ToolCalls, generator.ToolCall{
			Id:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return response, nil
}

func convertMessages(messages []generator.Message) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))

	for _, msg := range messages {
		if msg.Role == generator.RoleTool {
			converted = append(converted, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    msg.Content,
				ToolCallID: msg.ToolCallId,
			})
			continue
		}

		m := openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}

		for _, tc := range msg.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
				ID:   tc.Id,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}

		converted = append(converted, m)
	}

	return converted
}

func convertTools(tools []toolhandler.ToolSpec) []openai.Tool {
	converted := make([]openai.Tool, 0, len(tools))

	for _, spec := range tools {
		schema, _ := json.Marshal(spec.InputSchema)
		converted = append(converted, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  json.RawMessage(schema),
			},
		})
	}

	return converted
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &openAIGenerator{
		options: options,
	}

	client := openai.NewClient(options.ApiKey)

	g.client = client

	return g
}
