package catalog

import (
	"context"
	"fmt"

	domain "github.com/streamline-shop/streamline/internal/domain/catalog"
	"github.com/streamline-shop/streamline/internal/pkg/logging"
	"go.uber.org/zap"
)

// IDGenerator supplies identifiers for newly created items.
type IDGenerator interface {
	NewID() string
}

// Service owns the item keyed-collection lifecycle: list, upsert, delete.
// Stock decrements happen only through the order service.
type Service struct {
	repo        domain.Repository
	idGenerator IDGenerator
}

func NewService(repo domain.Repository, idGen IDGenerator) *Service {
	return &Service{
		repo:        repo,
		idGenerator: idGen,
	}
}

type UpsertItemInput struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Stock    int
}

// Upsert creates the item under a fresh id when no id is supplied, or fully
// replaces the stored record when the id matches. An id that matches nothing
// is domain.ErrNotFound; it never creates a record under a client-chosen id.
func (s *Service) Upsert(ctx context.Context, input UpsertItemInput) (*domain.Item, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_service"))

	if input.ID == "" {
		entity, err := domain.NewItem(s.idGenerator.NewID(), input.Name, input.Category, input.Price, input.Stock)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Insert(ctx, entity); err != nil {
			logger.Error("item_insert_failed", zap.String("item_id", entity.ID), zap.Error(err))
			return nil, fmt.Errorf("catalog: insert: %w", err)
		}
		logger.Info("item_created", zap.String("item_id", entity.ID), zap.String("name", entity.Name))
		return entity, nil
	}

	entity, err := domain.NewItem(input.ID, input.Name, input.Category, input.Price, input.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, err
	}
	logger.Info("item_updated", zap.String("item_id", entity.ID))
	return entity, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Item, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) (*domain.Item, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "catalog_service"))

	if id == "" {
		return nil, domain.ErrNotFound
	}
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info("item_deleted", zap.String("item_id", id))
	return removed, nil
}
