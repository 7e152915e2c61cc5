package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/w-h-a/expensebot/generator"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

// Result is the terminal state of one orchestration run. Success is false
// only when the iteration cap fired with tool calls still pending; the
// partial transcript is kept so callers can inspect what was attempted.
type Result struct {
	Success         bool
	FinalText       string
	Transcript      []generator.Message
	Iterations      int
	ToolCallsIssued int
}

// Orchestrator drives the model through zero or more tool invocations to a
// terminal answer. Each Run owns its own transcript and dedup state, so
// independent runs may execute concurrently.
type Orchestrator struct {
	options   Options
	generator generator.Generator
	catalog   *Catalog
}

// Specs lists the tools the orchestrator presents to the model.
func (o *Orchestrator) Specs() []toolhandler.ToolSpec {
	return o.catalog.ListSpecs()
}

// Run loops: ask the model for the next turn, execute any requested tools,
// fold the results back into the transcript, repeat. It terminates when the
// model answers without tool calls, or when MaxIterations loop bodies have
// executed with calls still pending (the circuit breaker). Only collaborator
// unavailability is returned as an error.
func (o *Orchestrator) Run(ctx context.Context, messages []generator.Message) (*Result, error) {
	transcript := append([]generator.Message(nil), messages...)
	processedCallIds := map[string]struct{}{}
	session := toolhandler.NewSession()

	iterations := 0
	toolCallsIssued := 0

	for iterations < o.options.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rsp, err := o.generator.Generate(ctx, transcript, o.catalog.ListSpecs())
		if err != nil {
			return nil, fmt.Errorf("generate turn %d: %w", iterations+1, err)
		}

		iterations++

		transcript = append(transcript, generator.Message{
			Role:      generator.RoleAssistant,
			Content:   rsp.Content,
			ToolCalls: rsp.ToolCalls,
		})

		if len(rsp.ToolCalls) == 0 {
			// A turn with neither text nor tool calls still terminates
			// successfully; the caller decides whether an empty answer is
			// acceptable.
			return &Result{
				Success:         true,
				FinalText:       rsp.Content,
				Transcript:      transcript,
				Iterations:      iterations,
				ToolCallsIssued: toolCallsIssued,
			}, nil
		}

		for _, call := range rsp.ToolCalls {
			if _, seen := processedCallIds[call.Id]; seen {
				slog.DebugContext(ctx, "skipping duplicate tool call", "id", call.Id, "tool", call.Name)
				continue
			}
			processedCallIds[call.Id] = struct{}{}
			toolCallsIssued++

			payload := o.catalog.Dispatch(ctx, call, session)
			transcript = append(transcript, generator.ToolMessage(call.Id, payload))
		}
	}

	slog.WarnContext(ctx, "iteration limit reached with tool calls pending", "iterations", iterations)

	return &Result{
		Success:         false,
		Transcript:      transcript,
		Iterations:      iterations,
		ToolCallsIssued: toolCallsIssued,
	}, nil
}

func New(g generator.Generator, toolHandlers []toolhandler.ToolHandler, opts ...Option) *Orchestrator {
	if g == nil {
		panic("generator is required")
	}

	return &Orchestrator{
		options:   NewOptions(opts...),
		generator: g,
		catalog:   NewCatalog(toolHandlers...),
	}
}
