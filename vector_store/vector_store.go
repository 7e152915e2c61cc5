package vectorstore

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/w-h-a/expensebot/embedder"
	"github.com/w-h-a/expensebot/record"
)

// Result pairs a record with its similarity score for one query.
type Result struct {
	Record record.Record `json:"record"`
	Score  float64       `json:"score"`
}

type embedded struct {
	record record.Record
	vector []float32
}

// VectorStore answers top-K nearest-neighbor queries over an immutable record
// collection. Embeddings are computed once, on the first Initialize (or the
// first Search, whichever comes first), and cached for the store's lifetime.
type VectorStore struct {
	repo        record.Repository
	embedder    embedder.Embedder
	items       []embedded
	initialized bool
	mtx         sync.Mutex
}

// Initialize embeds every record that does not yet have a cached vector.
// It is idempotent: calling it again after success is a no-op. Safe for
// concurrent use; only one embedding pass occurs.
func (s *VectorStore) Initialize(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.initialize(ctx)
}

func (s *VectorStore) initialize(ctx context.Context) error {
	if s.initialized {
		return nil
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	cached := map[string][]float32{}
	store, hasStore := s.repo.(record.EmbeddingStore)
	if hasStore {
		if cached, err = store.ListEmbeddings(ctx); err != nil {
			return err
		}
	}

	items := make([]embedded, 0, len(records))

	for _, rec := range records {
		vec, ok := cached[rec.Id]
		if !ok {
			if vec, err = s.embedder.Embed(ctx, rec.Content); err != nil {
				return err
			}
			if hasStore {
				if err := store.SaveEmbedding(ctx, rec.Id, vec); err != nil {
					return err
				}
			}
		}
		items = append(items, embedded{record: rec, vector: vec})
	}

	s.items = items
	s.initialized = true

	slog.InfoContext(ctx, "vector store initialized", "records", len(items))

	return nil
}

// Search embeds the query and returns the records scoring at least
// minSimilarity, best first, at most topK of them. Ties keep the records'
// original insertion order, so repeated calls return the same list.
func (s *VectorStore) Search(ctx context.Context, query string, topK int, minSimilarity float64) ([]Result, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := s.initialize(ctx); err != nil {
		return nil, err
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(s.items))
	for _, item := range s.items {
		score := CosineSimilarity(queryVec, item.vector)
		if score < minSimilarity {
			continue
		}
		results = append(results, Result{Record: item.record, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK >= 0 && len(results) > topK {
		results = results[:topK]
	}

	slog.DebugContext(ctx, "vector search completed", "query_len", len(query), "matches", len(results), "min_similarity", minSimilarity)

	return results, nil
}

func New(repo record.Repository, embedder embedder.Embedder) *VectorStore {
	if repo == nil {
		panic("repository is required")
	}

	if embedder == nil {
		panic("embedder is required")
	}

	return &VectorStore{
		repo:     repo,
		embedder: embedder,
		mtx:      sync.Mutex{},
	}
}
