package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/streamline-shop/streamline/internal/domain/catalog"
)

// CatalogRepository keeps all item state in process memory. One RWMutex guards
// the map; Deduct holds the write lock across its validation and commit passes,
// so overlapping submissions serialize and CRUD can never interleave between
// the two passes.
type CatalogRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Item
}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		items: make(map[string]*domain.Item),
	}
}

func (r *CatalogRepository) Get(ctx context.Context, id string) (*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneItem(item), nil
}

func (r *CatalogRepository) List(ctx context.Context) ([]*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneItem(item))
	}
	return out, nil
}

func (r *CatalogRepository) Insert(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil || item.ID == "" {
		return fmt.Errorf("catalog repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *CatalogRepository) Update(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil || item.ID == "" {
		return fmt.Errorf("catalog repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return domain.ErrNotFound
	}

	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id string) (*domain.Item, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	delete(r.items, id)
	return cloneItem(item), nil
}

// Deduct applies all demands or none. The write lock spans both passes, which
// is the mutual-exclusion scope that keeps concurrent submissions from
// double-spending the same units of stock.
func (r *CatalogRepository) Deduct(ctx context.Context, demands []domain.Demand) ([]*domain.Item, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	// Validation pass: every demand must clear before any stock moves. A
	// failure here leaves earlier, individually satisfiable demands untouched.
	// Demands are checked cumulatively so repeated lines for one item cannot
	// pass one by one and still overdraw it in the commit pass.
	need := make(map[string]int, len(demands))
	for _, d := range demands {
		item, ok := r.items[d.ItemID]
		if !ok {
			return nil, &domain.ItemNotFoundError{ItemID: d.ItemID}
		}
		if d.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		need[d.ItemID] += d.Quantity
		if err := item.CheckDemand(need[d.ItemID]); err != nil {
			return nil, err
		}
	}

	// Commit pass: sufficiency was established under the same lock, so the
	// deductions cannot fail on stock grounds.
	out := make([]*domain.Item, 0, len(demands))
	for _, d := range demands {
		item := r.items[d.ItemID]
		if err := item.Deduct(d.Quantity); err != nil {
			return nil, err
		}
		out = append(out, cloneItem(item))
	}
	return out, nil
}

func cloneItem(item *domain.Item) *domain.Item {
	if item == nil {
		return nil
	}
	clone := *item
	return &clone
}
