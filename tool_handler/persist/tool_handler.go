package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/w-h-a/expensebot/record"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
)

// FinancialRecord is the payload shape the model must produce when it asks to
// persist a detected transaction.
type FinancialRecord struct {
	Id          string        `json:"id"`
	Confidence  float64       `json:"confidence"`
	Subject     string        `json:"subject"`
	Name        string        `json:"name"`
	Sender      Sender        `json:"sender"`
	Date        time.Time     `json:"date"`
	Body        string        `json:"body"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Amount      record.Amount `json:"amount"`
}

type Sender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store receives validated records. The default store only logs, matching a
// demo deployment with no durable backend.
type Store interface {
	SaveRecord(ctx context.Context, rec FinancialRecord) error
}

type logStore struct{}

func (s *logStore) SaveRecord(ctx context.Context, rec FinancialRecord) error {
	slog.InfoContext(ctx, "persisting financial record", "id", rec.Id, "subject", rec.Subject, "type", rec.Type, "amount", rec.Amount.Value, "currency", rec.Amount.Currency)
	return nil
}

type persistToolHandler struct {
	options toolhandler.Options
	store   Store
}

func (th *persistToolHandler) Spec() toolhandler.ToolSpec {
	return toolhandler.ToolSpec{
		Name:        "persist_record",
		Description: "Saves a detected financial transaction. Call at most once per record.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":         map[string]any{"type": "string", "description": "Id of the source record."},
				"confidence": map[string]any{"type": "number", "description": "Confidence the record is a financial transaction, 0 to 1."},
				"subject":    map[string]any{"type": "string", "description": "Subject of the source record."},
				"name":       map[string]any{"type": "string", "description": "Short name for the transaction."},
				"sender": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":  map[string]any{"type": "string"},
						"email": map[string]any{"type": "string"},
					},
					"required": []any{"name", "email"},
				},
				"date":        map[string]any{"type": "string", "description": "Transaction date, RFC 3339."},
				"body":        map[string]any{"type": "string", "description": "Source record body."},
				"description": map[string]any{"type": "string", "description": "Description of the transaction."},
				"type":        map[string]any{"type": "string", "enum": []any{"income", "expense"}},
				"amount": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"value":    map[string]any{"type": "number"},
						"currency": map[string]any{"type": "string"},
					},
					"required": []any{"value", "currency"},
				},
			},
			"required": []any{"id", "confidence", "subject", "sender", "date", "type", "amount"},
		},
	}
}

func (th *persistToolHandler) Invoke(ctx context.Context, req toolhandler.ToolRequest) (toolhandler.ToolResponse, error) {
	raw, err := json.Marshal(req.Arguments)
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	var rec FinancialRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return toolhandler.ToolResponse{}, fmt.Errorf("invalid record payload: %v", err)
	}

	if err := validate(rec); err != nil {
		return toolhandler.ToolResponse{}, err
	}

	if req.Session != nil && req.Session.Used("record:"+rec.Id) {
		return toolhandler.ToolResponse{}, fmt.Errorf("already processed in this session")
	}

	if err := th.store.SaveRecord(ctx, rec); err != nil {
		return toolhandler.ToolResponse{}, err
	}

	// Only a persisted record consumes the dedup key; a failed save leaves
	// the record eligible for a retry within the same run.
	if req.Session != nil {
		req.Session.FirstUse("record:" + rec.Id)
	}

	content, err := json.Marshal(map[string]any{
		"saved": true,
		"id":    rec.Id,
	})
	if err != nil {
		return toolhandler.ToolResponse{}, err
	}

	return toolhandler.ToolResponse{
		Content: string(content),
		Metadata: map[string]string{
			"tool": "persist_record",
		},
	}, nil
}

func validate(rec FinancialRecord) error {
	if len(strings.TrimSpace(rec.Id)) == 0 {
		return fmt.Errorf("record id is required")
	}

	if rec.Confidence < 0 || rec.Confidence > 1 {
		return fmt.Errorf("confidence must be between 0 and 1")
	}

	if len(strings.TrimSpace(rec.Subject)) == 0 {
		return fmt.Errorf("subject is required")
	}

	if len(strings.TrimSpace(rec.Sender.Name)) == 0 || len(strings.TrimSpace(rec.Sender.Email)) == 0 {
		return fmt.Errorf("sender name and email are required")
	}

	if rec.Date.IsZero() {
		return fmt.Errorf("date is required")
	}

	if rec.Type != "income" && rec.Type != "expense" {
		return fmt.Errorf("type must be 'income' or 'expense'")
	}

	if len(strings.TrimSpace(rec.Amount.Currency)) == 0 {
		return fmt.Errorf("amount currency is required")
	}

	return nil
}

func NewToolHandler(opts ...toolhandler.Option) toolhandler.ToolHandler {
	options := toolhandler.NewOptions(opts...)

	th := &persistToolHandler{
		options: options,
		store:   &logStore{},
	}

	if store, ok := StoreFrom(options.Context); ok {
		th.store = store
	}

	return th
}
