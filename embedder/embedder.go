package embedder

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the embedding collaborator could not be reached.
var ErrUnavailable = errors.New("embedding collaborator unavailable")

// Embedder converts text into a fixed-length vector. The dimensionality is
// constant for every call within one embedder's lifetime.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
