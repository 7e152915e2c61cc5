package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/w-h-a/expensebot/generator"
	"github.com/w-h-a/expensebot/moderation"
	"github.com/w-h-a/expensebot/orchestrator"
	vectorstore "github.com/w-h-a/expensebot/vector_store"
)

const defaultSystemPrompt = `You are an assistant specialized in analyzing transaction emails, expenses, and company policies.

You can help in two ways:
1. Semantic search (search_similar) for open-ended questions about record contents.
2. Structured search (search_records) for concrete lookups by sender, merchant, category, amount range, or date range.

When the user asks about spending by merchant, category, amount, or time period, use search_records for precise results. Always give specific, useful answers and include amounts when relevant. Answer in the language the user writes in.`

const noMatchesReply = "No puedo encontrar registros relevantes para responder a tu pregunta. Intenta con términos como 'comestibles', 'Amazon', 'suscripciones' o pregúntame sobre gastos específicos."

const (
	fallbackTopK          = 5
	fallbackMinSimilarity = 0.4
)

// ErrFlagged indicates the moderation pre-check rejected the query.
var ErrFlagged = errors.New("query rejected by moderation")

// MatchedRecord is the record detail surfaced to the caller when a structured
// search ran during orchestration.
type MatchedRecord struct {
	Id       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content,omitempty"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"`
}

type Answer struct {
	Success        bool
	Text           string
	MatchedRecords []MatchedRecord
	TotalAmount    *float64
	Iterations     int
	UsedFallback   bool
}

type SearchOptions struct {
	Categories []string `json:"categories"`
	Senders    []string `json:"senders"`
	Examples   []string `json:"examples"`
}

// Service composes the orchestrator with the caller-level policies the
// orchestrator itself stays agnostic of: the moderation pre-check and the
// vector-search fallback for questions the model answered without grounding.
type Service struct {
	generator    generator.Generator
	orchestrator Orchestrator
	store        *vectorstore.VectorStore
	moderator    moderation.Moderator
	systemPrompt string
	categories   []string
	senders      []string
}

// Orchestrator is the slice of the orchestration surface this service needs.
type Orchestrator interface {
	Run(ctx context.Context, messages []generator.Message) (*orchestrator.Result, error)
}

func (s *Service) Initialize(ctx context.Context) error {
	return s.store.Initialize(ctx)
}

// Ask answers one query. Moderation, when configured, runs strictly before
// orchestration. A flagged query returns ErrFlagged without reaching the model.
func (s *Service) Ask(ctx context.Context, query string, extraContext string) (*Answer, error) {
	if len(strings.TrimSpace(query)) == 0 {
		return nil, errors.New("query is required")
	}

	if s.moderator != nil {
		classification, err := s.moderator.Classify(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("moderation pre-check: %w", err)
		}
		if classification.Flagged {
			slog.WarnContext(ctx, "query flagged by moderation", "categories", classification.FlaggedCategories)
			return nil, fmt.Errorf("%w: %s", ErrFlagged, strings.Join(classification.FlaggedCategories, ", "))
		}
	}

	userContent := strings.TrimSpace(query)
	if len(strings.TrimSpace(extraContext)) > 0 {
		userContent = fmt.Sprintf("%s\n\nAdditional context:\n%s", userContent, strings.TrimSpace(extraContext))
	}

	result, err := s.orchestrator.Run(ctx, []generator.Message{
		generator.SystemMessage(s.systemPrompt),
		generator.UserMessage(userContent),
	})
	if err != nil {
		return nil, err
	}

	answer := &Answer{
		Success:    result.Success,
		Text:       result.FinalText,
		Iterations: result.Iterations,
	}
	answer.MatchedRecords, answer.TotalAmount = extractToolResults(result.Transcript)

	if result.Success && len(strings.TrimSpace(result.FinalText)) > 0 {
		return answer, nil
	}

	// The model produced no usable answer, either an empty terminal turn or
	// an exhausted tool loop. Ground a retry with vector search directly.
	return s.fallback(ctx, query, answer)
}

func (s *Service) fallback(ctx context.Context, query string, answer *Answer) (*Answer, error) {
	slog.DebugContext(ctx, "using fallback vector search", "query_len", len(query))

	answer.UsedFallback = true

	results, err := s.store.Search(ctx, query, fallbackTopK, fallbackMinSimilarity)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		answer.Success = true
		answer.Text = noMatchesReply
		return answer, nil
	}

	var sb bytes.Buffer
	sb.WriteString("Relevant records found:\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "\n---\nTitle: %s\nContent: %s\n", r.Record.Title, r.Record.Content)
	}
	fmt.Fprintf(&sb, "\nUser question: %s", query)

	rsp, err := s.generator.Generate(ctx, []generator.Message{
		generator.SystemMessage(s.systemPrompt),
		generator.UserMessage(sb.String()),
	}, nil)
	if err != nil {
		return nil, err
	}

	answer.Success = true
	answer.Text = rsp.Content

	return answer, nil
}

func (s *Service) SearchOptions() SearchOptions {
	return SearchOptions{
		Categories: s.categories,
		Senders:    s.senders,
		Examples: []string{
			"¿cuánto gasté en Netflix?",
			"¿qué compré en Amazon?",
			"muéstrame los gastos mayores a $50",
			"¿cuáles fueron mis suscripciones este mes?",
			"¿cuál es la política de viajes corporativos?",
		},
	}
}

// extractToolResults pulls structured-search payloads out of the transcript's
// tool turns so the caller sees matched records and totals without the core
// knowing which tool produced them.
func extractToolResults(transcript []generator.Message) ([]MatchedRecord, *float64) {
	var records []MatchedRecord
	var total *float64

	for _, msg := range transcript {
		if msg.Role != generator.RoleTool {
			continue
		}

		var payload struct {
			Success     bool            `json:"success"`
			Records     []MatchedRecord `json:"records"`
			TotalAmount *float64        `json:"total_amount"`
		}
		if err := json.Unmarshal([]byte(msg.Content), &payload); err != nil {
			continue
		}
		if !payload.Success || payload.TotalAmount == nil {
			continue
		}

		records = payload.Records
		total = payload.TotalAmount
	}

	return records, total
}

func New(
	g generator.Generator,
	orch Orchestrator,
	store *vectorstore.VectorStore,
	moderator moderation.Moderator,
	systemPrompt string,
	categories []string,
	senders []string,
) *Service {
	if g == nil {
		panic("generator is required")
	}

	if orch == nil {
		panic("orchestrator is required")
	}

	if store == nil {
		panic("vector store is required")
	}

	if len(strings.TrimSpace(systemPrompt)) == 0 {
		systemPrompt = defaultSystemPrompt
	}

	return &Service{
		generator:    g,
		orchestrator: orch,
		store:        store,
		moderator:    moderator,
		systemPrompt: systemPrompt,
		categories:   categories,
		senders:      senders,
	}
}
