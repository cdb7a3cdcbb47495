package catalog

import "time"

// LowStockEvent is emitted after a successful deduction leaves an item at or
// below the configured alert threshold. Advisory only; it never blocks an order.
type LowStockEvent struct {
	ItemID     string
	Name       string
	Remaining  int
	Threshold  int
	OccurredAt time.Time
}

func (LowStockEvent) EventName() string { return "catalog.low_stock" }

func NewLowStockEvent(item *Item, threshold int) LowStockEvent {
	return LowStockEvent{
		ItemID:     item.ID,
		Name:       item.Name,
		Remaining:  item.Stock,
		Threshold:  threshold,
		OccurredAt: time.Now().UTC(),
	}
}
