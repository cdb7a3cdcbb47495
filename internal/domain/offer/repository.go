package offer

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, id string) (*Offer, error)
	List(ctx context.Context) ([]*Offer, error)
	Insert(ctx context.Context, o *Offer) error
	// Update fully replaces the stored record. It returns ErrNotFound when the
	// id is unknown; it never inserts.
	Update(ctx context.Context, o *Offer) error
	// Delete removes the record and returns it, or ErrNotFound.
	Delete(ctx context.Context, id string) (*Offer, error)
}
