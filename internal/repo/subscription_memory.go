package repo

import "sync"

type InMemorySubscriptionRepository struct {
	mu       sync.Mutex
	artikuls []string
	present  map[string]bool
}

func NewInMemorySubscriptionRepository() *InMemorySubscriptionRepository {
	return &InMemorySubscriptionRepository{present: map[string]bool{}}
}

func (r *InMemorySubscriptionRepository) Subscribe(artikul string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.present[artikul] {
		return false, nil
	}
	r.present[artikul] = true
	r.artikuls = append(r.artikuls, artikul)
	return true, nil
}

func (r *InMemorySubscriptionRepository) GetAll() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.artikuls))
	copy(out, r.artikuls)
	return out, nil
}

func (r *InMemorySubscriptionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artikuls = nil
	r.present = map[string]bool{}
}
