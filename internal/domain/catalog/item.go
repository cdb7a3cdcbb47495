package catalog

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound          = errors.New("catalog: item not found")
	ErrInvalidName       = errors.New("catalog: name is required")
	ErrInvalidPrice      = errors.New("catalog: price must be zero or greater")
	ErrInvalidStock      = errors.New("catalog: stock must be zero or greater")
	ErrInvalidQuantity   = errors.New("catalog: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
)

// Item is a sellable catalog entry. Stock is the number of units available
// for order submissions and never goes negative.
type Item struct {
	ID        string
	Name      string
	Category  string
	Price     float64
	Stock     int
	UpdatedAt time.Time
}

func NewItem(id, name, category string, price float64, stock int) (*Item, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	return &Item{
		ID:        id,
		Name:      name,
		Category:  category,
		Price:     price,
		Stock:     stock,
		UpdatedAt: time.Now().UTC(),
	}, nil
}

// Demand is one order line's claim against an item's stock.
type Demand struct {
	ItemID   string
	Quantity int
}

// CheckDemand reports whether the item can satisfy a demand without mutating it.
func (i *Item) CheckDemand(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > i.Stock {
		return &InsufficientStockError{ItemID: i.ID, Available: i.Stock, Requested: quantity}
	}
	return nil
}

// Deduct removes quantity units from stock after re-checking the demand.
func (i *Item) Deduct(quantity int) error {
	if err := i.CheckDemand(quantity); err != nil {
		return err
	}
	i.Stock -= quantity
	i.touch()
	return nil
}

func (i *Item) touch() {
	i.UpdatedAt = time.Now().UTC()
}

// ItemNotFoundError identifies the missing item of a failed submission.
type ItemNotFoundError struct {
	ItemID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("catalog: item %s not found", e.ItemID)
}

func (e *ItemNotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError carries the shortfall of a failed submission.
type InsufficientStockError struct {
	ItemID    string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("catalog: insufficient stock for item %s: available %d, requested %d",
		e.ItemID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
