package orchestrator

import "context"

const defaultMaxIterations = 3

type Option func(*Options)

type Options struct {
	MaxIterations int
	Context       context.Context
}

func WithMaxIterations(max int) Option {
	return func(o *Options) {
		o.MaxIterations = max
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxIterations: defaultMaxIterations,
		Context:       context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.MaxIterations <= 0 {
		options.MaxIterations = defaultMaxIterations
	}
	return options
}
