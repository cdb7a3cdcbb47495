package catalog

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Insert(ctx context.Context, item *Item) error
	// Update fully replaces the stored record. It returns ErrNotFound when the
	// id is unknown; it never inserts.
	Update(ctx context.Context, item *Item) error
	// Delete removes the record and returns it, or ErrNotFound.
	Delete(ctx context.Context, id string) (*Item, error)
	// Deduct applies every demand or none of them. When any demand fails, it
	// returns *ItemNotFoundError or *InsufficientStockError and no stock moves,
	// including for demands that would have succeeded on their own. On success
	// it returns post-deduction snapshots in demand order.
	Deduct(ctx context.Context, demands []Demand) ([]*Item, error)
}
