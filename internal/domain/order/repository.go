package order

import "context"

// Repository is an append-only order log. Appended orders are immutable; there
// is no update or delete.
type Repository interface {
	Append(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
}
