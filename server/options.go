package server

import (
	"context"
	"net/http"
)

type Option func(o *Options)

type Options struct {
	Address string
	Handler http.Handler
	Context context.Context
}

func WithAddress(addr string) Option {
	return func(o *Options) {
		o.Address = addr
	}
}

func WithHandler(h http.Handler) Option {
	return func(o *Options) {
		o.Handler = h
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Address: ":8080",
		Context: context.Background(),
	}

	for _, fn := range opts {
		fn(&options)
	}

	return options
}
