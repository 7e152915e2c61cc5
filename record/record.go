package record

import (
	"context"
	"time"
)

// Record is a retrievable unit of knowledge, either a policy document or a
// transaction-style email note. Collections are immutable after load.
type Record struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// Amount is a monetary value with its currency code.
type Amount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Repository is a read-only view over a record collection. Ingestion is a
// one-shot batch at construction time; no writer exists afterwards.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (Record, bool, error)
}

// EmbeddingStore is an optional capability a Repository may provide to cache
// embedding vectors alongside its records.
type EmbeddingStore interface {
	ListEmbeddings(ctx context.Context) (map[string][]float32, error)
	SaveEmbedding(ctx context.Context, id string, vector []float32) error
}
