package expensebot

import (
	"context"

	"github.com/w-h-a/expensebot/embedder"
	"github.com/w-h-a/expensebot/generator"
	"github.com/w-h-a/expensebot/internal/service/assistant"
	"github.com/w-h-a/expensebot/orchestrator"
	"github.com/w-h-a/expensebot/record"
	recordsearch "github.com/w-h-a/expensebot/record_search"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
	"github.com/w-h-a/expensebot/tool_handler/persist"
	"github.com/w-h-a/expensebot/tool_handler/records"
	"github.com/w-h-a/expensebot/tool_handler/similarity"
	vectorstore "github.com/w-h-a/expensebot/vector_store"
)

// Answer is the outcome of a single query.
type Answer = assistant.Answer

// MatchedRecord is a record surfaced by a structured search during a query.
type MatchedRecord = assistant.MatchedRecord

// Bot wires a generator, an embedder, and a record repository into a
// tool-calling assistant over the records.
type Bot struct {
	service *assistant.Service
}

// Initialize warms the vector index. It is optional; the first search
// initializes lazily.
func (b *Bot) Initialize(ctx context.Context) error {
	return b.service.Initialize(ctx)
}

func (b *Bot) Ask(ctx context.Context, query string, extraContext string) (*Answer, error) {
	return b.service.Ask(ctx, query, extraContext)
}

func (b *Bot) Service() *assistant.Service {
	return b.service
}

func New(
	g generator.Generator,
	e embedder.Embedder,
	repo record.Repository,
	opts ...Option,
) *Bot {
	options := NewOptions(opts...)

	store := vectorstore.New(repo, e)
	filter := recordsearch.New(repo)

	toolHandlers := []toolhandler.ToolHandler{
		similarity.NewToolHandler(store),
		records.NewToolHandler(filter),
		persist.NewToolHandler(persist.WithStore(options.RecordStore)),
	}
	toolHandlers = append(toolHandlers, options.ToolHandlers...)

	orch := orchestrator.New(
		g,
		toolHandlers,
		orchestrator.WithMaxIterations(options.MaxIterations),
	)

	service := assistant.New(
		g,
		orch,
		store,
		options.Moderator,
		options.SystemPrompt,
		options.Categories,
		options.Senders,
	)

	return &Bot{service: service}
}
