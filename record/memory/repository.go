package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/w-h-a/expensebot/record"
)

type memoryRepository struct {
	options    record.Options
	records    []record.Record
	byId       map[string]int
	embeddings map[string][]float32
	mtx        sync.RWMutex
}

func (r *memoryRepository) List(ctx context.Context) ([]record.Record, error) {
	cpy := make([]record.Record, len(r.records))
	copy(cpy, r.records)
	return cpy, nil
}

func (r *memoryRepository) Get(ctx context.Context, id string) (record.Record, bool, error) {
	idx, ok := r.byId[id]
	if !ok {
		return record.Record{}, false, nil
	}
	return r.records[idx], true, nil
}

func (r *memoryRepository) ListEmbeddings(ctx context.Context) (map[string][]float32, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	cpy := make(map[string][]float32, len(r.embeddings))
	for id, vec := range r.embeddings {
		v := make([]float32, len(vec))
		copy(v, vec)
		cpy[id] = v
	}

	return cpy, nil
}

func (r *memoryRepository) SaveEmbedding(ctx context.Context, id string, vector []float32) error {
	if _, ok := r.byId[id]; !ok {
		return fmt.Errorf("unknown record: %s", id)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	cpy := make([]float32, len(vector))
	copy(cpy, vector)
	r.embeddings[id] = cpy

	return nil
}

func NewRepository(opts ...record.Option) record.Repository {
	options := record.NewOptions(opts...)

	r := &memoryRepository{
		options:    options,
		records:    make([]record.Record, 0, len(options.Records)),
		byId:       map[string]int{},
		embeddings: map[string][]float32{},
		mtx:        sync.RWMutex{},
	}

	for _, rec := range options.Records {
		if len(rec.Id) == 0 {
			rec.Id = uuid.New().String()
		}
		if _, ok := r.byId[rec.Id]; ok {
			panic(fmt.Sprintf("duplicate record id: %s", rec.Id))
		}
		r.byId[rec.Id] = len(r.records)
		r.records = append(r.records, rec)
	}

	return r
}
