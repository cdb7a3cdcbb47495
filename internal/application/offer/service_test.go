package offer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domain "github.com/streamline-shop/streamline/internal/domain/offer"
	"github.com/streamline-shop/streamline/internal/infrastructure/memory"
)

type seqIDGenerator struct{ n int }

func (g *seqIDGenerator) NewID() string {
	g.n++
	return fmt.Sprintf("offer-%d", g.n)
}

func newService() *Service {
	return NewService(memory.NewOfferRepository(), &seqIDGenerator{})
}

func validInput() UpsertOfferInput {
	return UpsertOfferInput{
		Name:               "Summer Sale",
		Description:        "10% off tools",
		Category:           "tools",
		DiscountPercentage: 10,
		MinQuantity:        2,
		ValidUntil:         "2026-12-31",
	}
}

func TestOfferUpsertLifecycle(t *testing.T) {
	svc := newService()

	created, err := svc.Upsert(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("no id assigned")
	}

	update := validInput()
	update.ID = created.ID
	update.DiscountPercentage = 25
	updated, err := svc.Upsert(context.Background(), update)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DiscountPercentage != 25 {
		t.Fatalf("discount not updated: %+v", updated)
	}

	removed, err := svc.Delete(context.Background(), created.ID)
	if err != nil || removed.ID != created.ID {
		t.Fatalf("Delete: %+v, %v", removed, err)
	}
}

func TestOfferUpsertStaleID(t *testing.T) {
	svc := newService()

	input := validInput()
	input.ID = "never-assigned"
	if _, err := svc.Upsert(context.Background(), input); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestOfferUpsertValidation(t *testing.T) {
	svc := newService()

	input := validInput()
	input.DiscountPercentage = 101
	if _, err := svc.Upsert(context.Background(), input); !errors.Is(err, domain.ErrInvalidDiscount) {
		t.Fatalf("error = %v, want ErrInvalidDiscount", err)
	}

	input = validInput()
	input.MinQuantity = 0
	if _, err := svc.Upsert(context.Background(), input); !errors.Is(err, domain.ErrInvalidMinQuantity) {
		t.Fatalf("error = %v, want ErrInvalidMinQuantity", err)
	}
}
