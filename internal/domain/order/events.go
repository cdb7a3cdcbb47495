package order

import "time"

// OrderPlacedEvent is emitted once an order has been committed to the log.
type OrderPlacedEvent struct {
	OrderID    string
	Lines      []Line
	Total      float64
	OccurredAt time.Time
}

func (OrderPlacedEvent) EventName() string { return "order.placed" }

func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:    o.ID,
		Lines:      append([]Line(nil), o.Lines...),
		Total:      o.Total,
		OccurredAt: time.Now().UTC(),
	}
}
