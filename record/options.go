package record

import "context"

type Option func(*Options)

type Options struct {
	Location string
	Records  []Record
	Context  context.Context
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithRecords(records ...Record) Option {
	return func(o *Options) {
		o.Records = records
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
