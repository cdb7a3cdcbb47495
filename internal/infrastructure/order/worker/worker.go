// Package worker audits finalized orders from the event bus.
package worker

import (
	"context"

	domorder "github.com/streamline-shop/streamline/internal/domain/order"
	"github.com/streamline-shop/streamline/internal/domain/outbox"
	"github.com/streamline-shop/streamline/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Worker struct {
	subscriber   outbox.Subscriber
	ordersPlaced prometheus.Counter
	orderRevenue prometheus.Observer
}

func New(subscriber outbox.Subscriber, ordersPlaced prometheus.Counter, orderRevenue prometheus.Observer) *Worker {
	return &Worker{
		subscriber:   subscriber,
		ordersPlaced: ordersPlaced,
		orderRevenue: orderRevenue,
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domorder.OrderPlacedEvent{}.EventName(), w.handleOrderPlaced)
}

func (w *Worker) handleOrderPlaced(ctx context.Context, e outbox.Event) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_worker"))
	evt, ok := e.(domorder.OrderPlacedEvent)
	if !ok {
		return nil
	}

	if w.ordersPlaced != nil {
		w.ordersPlaced.Inc()
	}
	if w.orderRevenue != nil {
		w.orderRevenue.Observe(evt.Total)
	}

	logger.Info("order_placed",
		zap.String("order_id", evt.OrderID),
		zap.Int("lines", len(evt.Lines)),
		zap.Float64("total", evt.Total),
	)
	return nil
}
