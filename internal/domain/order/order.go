package order

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrNoLines         = errors.New("order: at least one line is required")
	ErrMissingItemID   = errors.New("order: line item id is required")
	ErrInvalidQuantity = errors.New("order: line quantity must be greater than zero")
)

// Line is one (item, quantity) pair inside an order. Lines exist only as part
// of a submitted order.
type Line struct {
	ItemID   string
	Quantity int
}

// Order is a finalized purchase. Subtotal, discount and total are
// client-computed and stored unchanged; applied offer ids are informational.
// Once appended to the log an order never changes.
type Order struct {
	ID            string
	Lines         []Line
	AppliedOffers []string
	Subtotal      float64
	Discount      float64
	Total         float64
	CreatedAt     time.Time
}

func New(id string, lines []Line, appliedOffers []string, subtotal, discount, total float64) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	for _, l := range lines {
		if l.ItemID == "" {
			return nil, ErrMissingItemID
		}
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	return &Order{
		ID:            id,
		Lines:         append([]Line(nil), lines...),
		AppliedOffers: append([]string(nil), appliedOffers...),
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Clone returns a deep copy so stored orders cannot be mutated through
// returned references.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	clone.AppliedOffers = append([]string(nil), o.AppliedOffers...)
	return &clone
}
