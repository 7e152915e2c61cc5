package moderation

import "context"

// Classification is the moderation verdict for one text input.
type Classification struct {
	Flagged           bool               `json:"flagged"`
	FlaggedCategories []string           `json:"flagged_categories"`
	Scores            map[string]float64 `json:"scores"`
}

// Moderator classifies text as an independent pre/post step. It is never
// interleaved with tool-call turns.
type Moderator interface {
	Classify(ctx context.Context, text string) (*Classification, error)
}
