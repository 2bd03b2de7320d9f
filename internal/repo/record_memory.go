package repo

import (
	"sync"

	"github.com/rogerio-castellano/listing-tracker/internal/models"
)

// InMemoryRecordRepository backs tests and local runs without Postgres.
type InMemoryRecordRepository struct {
	mu      sync.RWMutex
	records map[string]models.Product
	nextID  int
}

func NewInMemoryRecordRepository() *InMemoryRecordRepository {
	return &InMemoryRecordRepository{
		records: map[string]models.Product{},
		nextID:  1,
	}
}

func (r *InMemoryRecordRepository) Upsert(artikul string, p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.Artikul = artikul
	if existing, ok := r.records[artikul]; ok {
		p.ID = existing.ID
	} else {
		p.ID = r.nextID
		r.nextID++
	}
	r.records[artikul] = p
	return p, nil
}

func (r *InMemoryRecordRepository) GetByArtikul(artikul string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[artikul]
	if !ok {
		return models.Product{}, ErrRecordNotFound
	}
	return p, nil
}

func (r *InMemoryRecordRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = map[string]models.Product{}
	r.nextID = 1
}
