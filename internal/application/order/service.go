package order

import (
	"context"
	"fmt"

	domcatalog "github.com/streamline-shop/streamline/internal/domain/catalog"
	domain "github.com/streamline-shop/streamline/internal/domain/order"
	"github.com/streamline-shop/streamline/internal/domain/outbox"
	"github.com/streamline-shop/streamline/internal/pkg/logging"
	"go.uber.org/zap"
)

// Service is the order transaction engine. Submit validates every line against
// the catalog and either commits all stock decrements and appends the order to
// the log, or commits nothing.
type Service struct {
	catalog           domcatalog.Repository
	orders            domain.Repository
	idGenerator       IDGenerator
	publisher         outbox.Publisher
	lowStockThreshold int
}

func NewService(catalogRepo domcatalog.Repository, orderRepo domain.Repository, idGen IDGenerator, publisher outbox.Publisher, lowStockThreshold int) *Service {
	return &Service{
		catalog:           catalogRepo,
		orders:            orderRepo,
		idGenerator:       idGen,
		publisher:         publisher,
		lowStockThreshold: lowStockThreshold,
	}
}

type LineInput struct {
	ItemID   string
	Quantity int
}

type SubmitOrderInput struct {
	Lines         []LineInput
	AppliedOffers []string
	Subtotal      float64
	Discount      float64
	Total         float64
}

// Submit runs the two-phase order transaction.
//
// The catalog repository validates every line and applies every decrement
// under one lock, so a submission either consumes stock for all of its lines
// or none of them, and concurrent submissions cannot overdraw an item. Only
// after the deduction commits is the order finalized: server id, UTC
// timestamp, append to the log.
//
// Failure modes are exactly *catalog.ItemNotFoundError and
// *catalog.InsufficientStockError, plus input-shape errors raised before the
// catalog is touched. Subtotal, discount and total are recorded as supplied;
// the engine does not verify the client's arithmetic.
func (s *Service) Submit(ctx context.Context, input SubmitOrderInput) (*domain.Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "order_service"))

	if len(input.Lines) == 0 {
		return nil, domain.ErrNoLines
	}
	demands := make([]domcatalog.Demand, 0, len(input.Lines))
	lines := make([]domain.Line, 0, len(input.Lines))
	for _, l := range input.Lines {
		if l.ItemID == "" {
			return nil, domain.ErrMissingItemID
		}
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		demands = append(demands, domcatalog.Demand{ItemID: l.ItemID, Quantity: l.Quantity})
		lines = append(lines, domain.Line{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapshots, err := s.catalog.Deduct(ctx, demands)
	if err != nil {
		logger.Info("order_rejected", zap.Error(err))
		return nil, err
	}

	entity, err := domain.New(s.idGenerator.NewID(), lines, input.AppliedOffers,
		input.Subtotal, input.Discount, input.Total)
	if err != nil {
		// Lines were validated above, so construction cannot fail here.
		return nil, fmt.Errorf("order: construct: %w", err)
	}

	if err := s.orders.Append(ctx, entity); err != nil {
		logger.Error("order_append_failed", zap.String("order_id", entity.ID), zap.Error(err))
		return nil, fmt.Errorf("order: append: %w", err)
	}

	s.publishEvents(ctx, logger, entity, snapshots)

	logger.Info("order_submitted",
		zap.String("order_id", entity.ID),
		zap.Int("lines", len(entity.Lines)),
		zap.Float64("total", entity.Total),
	)
	return entity, nil
}

// publishEvents emits the audit and low-stock events for a committed order.
// Publishing is advisory: a full queue never rolls back the order.
func (s *Service) publishEvents(ctx context.Context, logger *zap.Logger, o *domain.Order, snapshots []*domcatalog.Item) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, domain.NewOrderPlacedEvent(o)); err != nil {
		logger.Warn("order_event_publish_failed", zap.String("order_id", o.ID), zap.Error(err))
	}
	if s.lowStockThreshold <= 0 {
		return
	}
	// Repeated lines for one item yield several snapshots; the last one holds
	// the final stock level.
	final := make(map[string]*domcatalog.Item, len(snapshots))
	for _, item := range snapshots {
		final[item.ID] = item
	}
	for _, item := range final {
		if item.Stock > s.lowStockThreshold {
			continue
		}
		if err := s.publisher.Publish(ctx, domcatalog.NewLowStockEvent(item, s.lowStockThreshold)); err != nil {
			logger.Warn("low_stock_event_publish_failed", zap.String("item_id", item.ID), zap.Error(err))
		}
	}
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.orders.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}
