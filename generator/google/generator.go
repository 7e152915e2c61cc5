package google

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/w-h-a/expensebot/generator"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
	genaiopt "google.golang.org/api/option"
)

type googleGenerator struct {
	options generator.Options
	client  *genai.Client
}

func (g *googleGenerator) Generate(ctx context.Context, messages []generator.Message, tools []toolhandler.ToolSpec) (*generator.Response, error) {
	model := g.client.GenerativeModel(g.options.Model)

	for _, spec := range tools {
		model.Tools = append(model.Tools, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        spec.Name,
					Description: spec.Description,
					Parameters:  convertSchema(spec.InputSchema),
				},
			},
		})
	}

	contents, last := convertMessages(messages, model)
	if len(last) == 0 {
		return nil, fmt.Errorf("%w: transcript has no user turn", generator.ErrModelUnavailable)
	}

	chat := model.StartChat()
	chat.History = contents

	rsp, err := chat.SendMessage(ctx, last...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generator.ErrModelUnavailable, err)
	}

	if len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no response from Google", generator.ErrModelUnavailable)
	}

	response := &generator.Response{}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			b.WriteString(string(p))
		case genai.FunctionCall:
			args, _ := json.Marshal(p.Args)
			response.ToolCalls = append(response.ToolCalls, generator.ToolCall{
				// Gemini does not assign call ids; synthesize one so the
				// orchestrator's dedup contract still holds.
				Id:        uuid.New().String(),
				Name:      p.Name,
				Arguments: string(args),
			})
		}
	}
	response.Content = b.String()

	return response, nil
}

// convertMessages folds the transcript into genai chat history plus the parts
// of the final turn, which genai requires to be sent separately.
func convertMessages(messages []generator.Message, model *genai.GenerativeModel) ([]*genai.Content, []genai.Part) {
	callNames := map[string]string{}
	var contents []*genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case generator.RoleSystem:
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(msg.Content)},
			}
		case generator.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		case generator.RoleAssistant:
			var parts []genai.Part
			if len(msg.Content) > 0 {
				parts = append(parts, genai.Text(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				callNames[tc.Id] = tc.Name
				var args map[string]any
				if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
					args = map[string]any{}
				}
				parts = append(parts, genai.FunctionCall{Name: tc.Name, Args: args})
			}
			if len(parts) > 0 {
				contents = append(contents, &genai.Content{Role: "model", Parts: parts})
			}
		case generator.RoleTool:
			var payload map[string]any
			if err := json.Unmarshal([]byte(msg.Content), &payload); err != nil {
				payload = map[string]any{"content": msg.Content}
			}
			contents = append(contents, &genai.Content{
				Role: "user",
				Parts: []genai.Part{
					genai.FunctionResponse{Name: callNames[msg.ToolCallId], Response: payload},
				},
			})
		}
	}

	if len(contents) == 0 {
		return nil, nil
	}

	last := contents[len(contents)-1]
	if last.Role != "user" {
		return contents, nil
	}

	return contents[:len(contents)-1], last.Parts
}

func convertSchema(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}

	converted := &genai.Schema{}

	if t, ok := schema["type"].(string); ok {
		switch t {
		case "object":
			converted.Type = genai.TypeObject
		case "array":
			converted.Type = genai.TypeArray
		case "string":
			converted.Type = genai.TypeString
		case "number":
			converted.Type = genai.TypeNumber
		case "integer":
			converted.Type = genai.TypeInteger
		case "boolean":
			converted.Type = genai.TypeBoolean
		}
	}

	if desc, ok := schema["description"].(string); ok {
		converted.Description = desc
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		converted.Properties = map[string]*genai.Schema{}
		for name, raw := range props {
			if sub, ok := raw.(map[string]any); ok {
				converted.Properties[name] = convertSchema(sub)
			}
		}
	}

	if items, ok := schema["items"].(map[string]any); ok {
		converted.Items = convertSchema(items)
	}

	switch required := schema["required"].(type) {
	case []string:
		converted.Required = append(converted.Required, required...)
	case []any:
		for _, raw := range required {
			if name, ok := raw.(string); ok {
				converted.Required = append(converted.Required, name)
			}
		}
	}

	return converted
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &googleGenerator{
		options: options,
	}

	client, err := genai.NewClient(
		context.Background(),
		genaiopt.WithAPIKey(options.ApiKey),
	)
	if err != nil {
		panic(err)
	}

	g.client = client

	return g
}
