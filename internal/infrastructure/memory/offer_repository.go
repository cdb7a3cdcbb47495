package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/streamline-shop/streamline/internal/domain/offer"
)

// OfferRepository keeps promotional offers in process memory with the same
// keyed-collection semantics as the catalog: update never inserts, delete
// returns the removed record.
type OfferRepository struct {
	mu     sync.RWMutex
	offers map[string]*domain.Offer
}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{
		offers: make(map[string]*domain.Offer),
	}
}

func (r *OfferRepository) Get(ctx context.Context, id string) (*domain.Offer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneOffer(o), nil
}

func (r *OfferRepository) List(ctx context.Context) ([]*domain.Offer, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		out = append(out, cloneOffer(o))
	}
	return out, nil
}

func (r *OfferRepository) Insert(ctx context.Context, o *domain.Offer) error {
	_ = ctx
	if o == nil || o.ID == "" {
		return fmt.Errorf("offer repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.offers[o.ID] = cloneOffer(o)
	return nil
}

func (r *OfferRepository) Update(ctx context.Context, o *domain.Offer) error {
	_ = ctx
	if o == nil || o.ID == "" {
		return fmt.Errorf("offer repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.offers[o.ID]; !exists {
		return domain.ErrNotFound
	}

	r.offers[o.ID] = cloneOffer(o)
	return nil
}

func (r *OfferRepository) Delete(ctx context.Context, id string) (*domain.Offer, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	delete(r.offers, id)
	return cloneOffer(o), nil
}

func cloneOffer(o *domain.Offer) *domain.Offer {
	if o == nil {
		return nil
	}
	clone := *o
	return &clone
}
