package recordsearch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/w-h-a/expensebot/record"
)

// DateRange bounds a filter to records whose timestamp falls inside it.
// A zero Start means no lower bound; a zero End means no upper bound.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Params are the structured search constraints. Every field is optional;
// an absent field constrains nothing, which is not the same as matching the
// empty value.
type Params struct {
	Sender          string     `json:"sender,omitempty"`
	SubjectContains string     `json:"subject_contains,omitempty"`
	Categories      []string   `json:"categories,omitempty"`
	MinAmount       *float64   `json:"min_amount,omitempty"`
	MaxAmount       *float64   `json:"max_amount,omitempty"`
	DateRange       *DateRange `json:"date_range,omitempty"`
}

// Match is a filtered record together with its best-effort extracted amount.
type Match struct {
	record.Record
	Amount float64 `json:"amount"`
}

type Result struct {
	Records     []Match `json:"records"`
	TotalAmount float64 `json:"total_amount"`
	Summary     string  `json:"summary"`
}

// Filter applies exact and range predicates over a record collection,
// independent of semantic similarity.
type Filter struct {
	repo record.Repository
}

// Filter narrows the collection one stage at a time: sender, then
// subject/category, then amount range, then date range. Records excluded by
// an earlier stage are never seen by a later one.
func (f *Filter) Filter(ctx context.Context, params Params) (*Result, error) {
	records, err := f.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if sender := strings.TrimSpace(params.Sender); len(sender) > 0 {
		records = keep(records, func(rec record.Record) bool {
			return containsFold(rec.Title, sender) || containsFold(rec.Content, sender)
		})
		slog.DebugContext(ctx, "filtered by sender", "sender", sender, "remaining", len(records))
	}

	if subject := strings.TrimSpace(params.SubjectContains); len(subject) > 0 {
		records = keep(records, func(rec record.Record) bool {
			return containsFold(rec.Title, subject) || containsFold(rec.Content, subject)
		})
		slog.DebugContext(ctx, "filtered by subject", "subject", subject, "remaining", len(records))
	}

	if len(params.Categories) > 0 {
		records = keep(records, func(rec record.Record) bool {
			for _, category := range params.Categories {
				if strings.EqualFold(strings.TrimSpace(category), rec.Category) {
					return true
				}
			}
			return false
		})
		slog.DebugContext(ctx, "filtered by categories", "categories", params.Categories, "remaining", len(records))
	}

	matches := make([]Match, 0, len(records))
	for _, rec := range records {
		matches = append(matches, Match{Record: rec, Amount: ExtractAmount(rec.Content)})
	}

	if params.MinAmount != nil {
		matches = keepMatches(matches, func(m Match) bool { return m.Amount >= *params.MinAmount })
		slog.DebugContext(ctx, "filtered by min amount", "min", *params.MinAmount, "remaining", len(matches))
	}

	if params.MaxAmount != nil {
		matches = keepMatches(matches, func(m Match) bool { return m.Amount <= *params.MaxAmount })
		slog.DebugContext(ctx, "filtered by max amount", "max", *params.MaxAmount, "remaining", len(matches))
	}

	if params.DateRange != nil {
		matches = keepMatches(matches, func(m Match) bool {
			if !params.DateRange.Start.IsZero() && m.Timestamp.Before(params.DateRange.Start) {
				return false
			}
			if !params.DateRange.End.IsZero() && m.Timestamp.After(params.DateRange.End) {
				return false
			}
			return true
		})
		slog.DebugContext(ctx, "filtered by date range", "remaining", len(matches))
	}

	var total float64
	for _, m := range matches {
		total += m.Amount
	}

	return &Result{
		Records:     matches,
		TotalAmount: total,
		Summary:     summarize(matches, params, total),
	}, nil
}

func keep(records []record.Record, pred func(record.Record) bool) []record.Record {
	kept := records[:0:0]
	for _, rec := range records {
		if pred(rec) {
			kept = append(kept, rec)
		}
	}
	return kept
}

func keepMatches(matches []Match, pred func(Match) bool) []Match {
	kept := matches[:0:0]
	for _, m := range matches {
		if pred(m) {
			kept = append(kept, m)
		}
	}
	return kept
}

func containsFold(haystack string, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func summarize(matches []Match, params Params, total float64) string {
	if len(matches) == 0 {
		return "No records matched the given search criteria."
	}

	var sb strings.Builder

	plural := "s"
	if len(matches) == 1 {
		plural = ""
	}
	fmt.Fprintf(&sb, "Found %d record%s matching the search", len(matches), plural)

	if total > 0 {
		fmt.Fprintf(&sb, " with a total of $%.2f", total)
	}
	sb.WriteString(".")

	var criteria []string
	if sender := strings.TrimSpace(params.Sender); len(sender) > 0 {
		criteria = append(criteria, fmt.Sprintf("sender: %s", sender))
	}
	if subject := strings.TrimSpace(params.SubjectContains); len(subject) > 0 {
		criteria = append(criteria, fmt.Sprintf("subject: %s", subject))
	}
	if len(params.Categories) > 0 {
		criteria = append(criteria, fmt.Sprintf("categories: %s", strings.Join(params.Categories, ", ")))
	}
	if params.MinAmount != nil {
		criteria = append(criteria, fmt.Sprintf("min amount: $%.2f", *params.MinAmount))
	}
	if params.MaxAmount != nil {
		criteria = append(criteria, fmt.Sprintf("max amount: $%.2f", *params.MaxAmount))
	}
	if params.DateRange != nil {
		criteria = append(criteria, "date range applied")
	}

	if len(criteria) > 0 {
		fmt.Fprintf(&sb, " Criteria applied: %s.", strings.Join(criteria, "; "))
	}

	return sb.String()
}

func New(repo record.Repository) *Filter {
	if repo == nil {
		panic("repository is required")
	}

	return &Filter{
		repo: repo,
	}
}
