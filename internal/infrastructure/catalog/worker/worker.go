// Package worker surfaces low-stock alerts from the event bus.
package worker

import (
	"context"

	domcatalog "github.com/streamline-shop/streamline/internal/domain/catalog"
	"github.com/streamline-shop/streamline/internal/domain/outbox"
	"github.com/streamline-shop/streamline/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Worker struct {
	subscriber     outbox.Subscriber
	lowStockEvents prometheus.Counter
}

func New(subscriber outbox.Subscriber, lowStockEvents prometheus.Counter) *Worker {
	return &Worker{
		subscriber:     subscriber,
		lowStockEvents: lowStockEvents,
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domcatalog.LowStockEvent{}.EventName(), w.handleLowStock)
}

func (w *Worker) handleLowStock(ctx context.Context, e outbox.Event) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_worker"))
	evt, ok := e.(domcatalog.LowStockEvent)
	if !ok {
		return nil
	}

	if w.lowStockEvents != nil {
		w.lowStockEvents.Inc()
	}

	logger.Warn("item_low_stock",
		zap.String("item_id", evt.ItemID),
		zap.String("name", evt.Name),
		zap.Int("remaining", evt.Remaining),
		zap.Int("threshold", evt.Threshold),
	)
	return nil
}
