package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sashabaranov/go-openai"
	"github.com/w-h-a/expensebot/moderation"
)

type openAIModerator struct {
	options moderation.Options
	client  *openai.Client
}

func (m *openAIModerator) Classify(ctx context.Context, text string) (*moderation.Classification, error) {
	rsp, err := m.client.Moderations(ctx, openai.ModerationRequest{
		Input: text,
	})
	if err != nil {
		return nil, err
	}

	if len(rsp.Results) == 0 {
		return nil, fmt.Errorf("no moderation result from OpenAI")
	}

	result := rsp.Results[0]

	// The SDK exposes categories and scores as fixed structs; a JSON
	// round-trip flattens them into maps keyed by category name.
	flags := map[string]bool{}
	if raw, err := json.Marshal(result.Categories); err == nil {
		json.Unmarshal(raw, &flags)
	}

	scores := map[string]float64{}
	if raw, err := json.Marshal(result.CategoryScores); err == nil {
		json.Unmarshal(raw, &scores)
	}

	classification := &moderation.Classification{
		Flagged: result.Flagged,
		Scores:  scores,
	}

	for category, flagged := range flags {
		if flagged {
			classification.FlaggedCategories = append(classification.FlaggedCategories, category)
		}
	}
	sort.Strings(classification.FlaggedCategories)

	return classification, nil
}

func NewModerator(opts ...moderation.Option) moderation.Moderator {
	options := moderation.NewOptions(opts...)

	m := &openAIModerator{
		options: options,
	}

	client := openai.NewClient(options.ApiKey)

	m.client = client

	return m
}
