package expensebot

import (
	"github.com/w-h-a/expensebot/moderation"
	toolhandler "github.com/w-h-a/expensebot/tool_handler"
	"github.com/w-h-a/expensebot/tool_handler/persist"
)

type Option func(o *Options)

type Options struct {
	Moderator     moderation.Moderator
	SystemPrompt  string
	MaxIterations int
	Categories    []string
	Senders       []string
	ToolHandlers  []toolhandler.ToolHandler
	RecordStore   persist.Store
}

// WithModerator enables a moderation pre-check on every query.
func WithModerator(m moderation.Moderator) Option {
	return func(o *Options) {
		o.Moderator = m
	}
}

func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// WithCategories sets the category tags surfaced by the search options API.
func WithCategories(categories ...string) Option {
	return func(o *Options) {
		o.Categories = categories
	}
}

// WithSenders sets the sender names surfaced by the search options API.
func WithSenders(senders ...string) Option {
	return func(o *Options) {
		o.Senders = senders
	}
}

// WithToolHandlers registers additional tools beyond the built-in ones.
func WithToolHandlers(ths ...toolhandler.ToolHandler) Option {
	return func(o *Options) {
		o.ToolHandlers = append(o.ToolHandlers, ths...)
	}
}

// WithRecordStore sets the destination for records persisted by the
// persist_record tool.
func WithRecordStore(store persist.Store) Option {
	return func(o *Options) {
		o.RecordStore = store
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
