package memory

import (
	"context"
	"errors"
	"testing"

	domain "github.com/streamline-shop/streamline/internal/domain/order"
)

func mustOrder(t *testing.T, id string, lines ...domain.Line) *domain.Order {
	t.Helper()
	if len(lines) == 0 {
		lines = []domain.Line{{ItemID: "x", Quantity: 1}}
	}
	o, err := domain.New(id, lines, []string{"off-1"}, 12.5, 2.5, 10)
	if err != nil {
		t.Fatalf("order.New: %v", err)
	}
	return o
}

func TestAppendAndGet(t *testing.T) {
	repo := NewOrderRepository()

	o := mustOrder(t, "o1", domain.Line{ItemID: "x", Quantity: 4})
	if err := repo.Append(context.Background(), o); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := repo.Get(context.Background(), "o1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Lines[0] != (domain.Line{ItemID: "x", Quantity: 4}) || got.Total != 10 {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestAppendRejectsDuplicateID(t *testing.T) {
	repo := NewOrderRepository()

	if err := repo.Append(context.Background(), mustOrder(t, "o1")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(context.Background(), mustOrder(t, "o1")); err == nil {
		t.Fatalf("duplicate Append succeeded")
	}
}

func TestLoggedOrderIsImmutable(t *testing.T) {
	repo := NewOrderRepository()

	original := mustOrder(t, "o1", domain.Line{ItemID: "x", Quantity: 2})
	if err := repo.Append(context.Background(), original); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// Mutating the appended value or any read result must not leak into the log.
	original.Lines[0].Quantity = 99
	first, _ := repo.Get(context.Background(), "o1")
	first.Lines[0].Quantity = 77
	first.AppliedOffers[0] = "changed"

	second, _ := repo.Get(context.Background(), "o1")
	if second.Lines[0].Quantity != 2 {
		t.Fatalf("log entry changed: %+v", second.Lines[0])
	}
	if second.AppliedOffers[0] != "off-1" {
		t.Fatalf("log entry offers changed: %v", second.AppliedOffers)
	}
}

func TestListPreservesAppendOrder(t *testing.T) {
	repo := NewOrderRepository()

	for _, id := range []string{"o1", "o2", "o3"} {
		if err := repo.Append(context.Background(), mustOrder(t, id)); err != nil {
			t.Fatalf("Append(%s): %v", id, err)
		}
	}

	orders, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("len = %d, want 3", len(orders))
	}
	for i, want := range []string{"o1", "o2", "o3"} {
		if orders[i].ID != want {
			t.Fatalf("orders[%d].ID = %s, want %s", i, orders[i].ID, want)
		}
	}
}
