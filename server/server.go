package server

import "context"

type Server interface {
	Options() Options
	Run() error
	Stop(ctx context.Context) error
}
