package offer

import (
	"context"
	"fmt"

	domain "github.com/streamline-shop/streamline/internal/domain/offer"
	"github.com/streamline-shop/streamline/internal/pkg/logging"
	"go.uber.org/zap"
)

// IDGenerator supplies identifiers for newly created offers.
type IDGenerator interface {
	NewID() string
}

// Service owns the offer keyed-collection lifecycle. Offers are advisory: the
// order service never reads them.
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

type UpsertOfferInput struct {
	ID                 string
	Name               string
	Description        string
	Category           string
	DiscountPercentage float64
	MinQuantity        int
	ValidUntil         string
}

// Upsert creates under a fresh id when none is supplied, or fully replaces the
// matching record. Updating a record only replaces that record; the rest of
// the collection is untouched. An unknown id is domain.ErrNotFound.
func (s *Service) Upsert(ctx context.Context, input UpsertOfferInput) (*domain.Offer, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "offer_service"))

	if input.ID == "" {
		entity, err := domain.New(s.idGenerator.NewID(), input.Name, input.Description, input.Category,
			input.DiscountPercentage, input.MinQuantity, input.ValidUntil)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Insert(ctx, entity); err != nil {
			logger.Error("offer_insert_failed", zap.String("offer_id", entity.ID), zap.Error(err))
			return nil, fmt.Errorf("offer: insert: %w", err)
		}
		logger.Info("offer_created", zap.String("offer_id", entity.ID), zap.String("name", entity.Name))
		return entity, nil
	}

	entity, err := domain.New(input.ID, input.Name, input.Description, input.Category,
		input.DiscountPercentage, input.MinQuantity, input.ValidUntil)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, err
	}
	logger.Info("offer_updated", zap.String("offer_id", entity.ID))
	return entity, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.Offer, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Offer, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) (*domain.Offer, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "offer_service"))

	if id == "" {
		return nil, domain.ErrNotFound
	}
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info("offer_deleted", zap.String("offer_id", id))
	return removed, nil
}
