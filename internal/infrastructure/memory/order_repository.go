package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/streamline-shop/streamline/internal/domain/order"
)

// OrderRepository is an append-only in-memory order log. List preserves append
// order; both reads and writes exchange clones so a logged order can never be
// mutated through a returned reference.
type OrderRepository struct {
	mu    sync.RWMutex
	log   []*domain.Order
	index map[string]*domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		index: make(map[string]*domain.Order),
	}
}

func (r *OrderRepository) Append(ctx context.Context, o *domain.Order) error {
	_ = ctx
	if o == nil || o.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[o.ID]; exists {
		return fmt.Errorf("order repository: duplicate id %s", o.ID)
	}

	stored := o.Clone()
	r.log = append(r.log, stored)
	r.index[o.ID] = stored
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0, len(r.log))
	for _, o := range r.log {
		out = append(out, o.Clone())
	}
	return out, nil
}
