package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/odyostore/backoffice/internal/domain"
	"github.com/odyostore/backoffice/internal/storage/memory"
)

func seedOrder(t *testing.T, repo domain.OrderRepository, id, userID string, createdAt time.Time) domain.Order {
	t.Helper()
	order := domain.Order{
		ID:              id,
		UserID:          userID,
		Items:           []domain.OrderItem{{ProductID: "product-1", Quantity: 1}},
		PaymentMethod:   domain.PaymentCreditCard,
		TotalPriceMinor: 1000,
		Status:          domain.OrderStatusPending,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order %s: %v", id, err)
	}
	return order
}

func TestOrderRepository_CreateGet(t *testing.T) {
	repo := memory.NewOrderRepository()
	created := seedOrder(t, repo, "order-1", "user-1", time.Now().UTC())

	got, err := repo.Get("order-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID || got.Status != domain.OrderStatusPending {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := repo.Get("missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderRepository_ListByUser_NewestFirst(t *testing.T) {
	repo := memory.NewOrderRepository()
	base := time.Now().UTC()
	seedOrder(t, repo, "order-old", "user-1", base.Add(-time.Hour))
	seedOrder(t, repo, "order-new", "user-1", base)
	seedOrder(t, repo, "order-other", "user-2", base)

	orders, err := repo.ListByUser("user-1")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("len = %d, want 2", len(orders))
	}
	if orders[0].ID != "order-new" || orders[1].ID != "order-old" {
		t.Fatalf("wrong ordering: %s, %s", orders[0].ID, orders[1].ID)
	}
}

func TestOrderRepository_SetStatus(t *testing.T) {
	repo := memory.NewOrderRepository()
	seedOrder(t, repo, "order-1", "user-1", time.Now().UTC())

	updatedAt := time.Now().UTC().Add(time.Minute)
	updated, err := repo.SetStatus("order-1", domain.OrderStatusShipped, updatedAt)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != domain.OrderStatusShipped {
		t.Fatalf("status = %s, want shipped", updated.Status)
	}
	if !updated.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("updatedAt not stamped")
	}

	if _, err := repo.SetStatus("missing", domain.OrderStatusShipped, updatedAt); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderRepository_SetShipping_OverwritesWholesale(t *testing.T) {
	repo := memory.NewOrderRepository()
	order := seedOrder(t, repo, "order-1", "user-1", time.Now().UTC())
	order.Shipping = domain.Shipping{Address: "Eski Adres"}

	shippedAt := time.Now().UTC()
	updated, err := repo.SetShipping("order-1", domain.Shipping{
		Company:        "Aras Kargo",
		TrackingNumber: "TR-1",
		ShippedAt:      &shippedAt,
	}, shippedAt)
	if err != nil {
		t.Fatalf("set shipping: %v", err)
	}

	// Запись перезаписывается целиком: адрес, не попавший в новую
	// запись, пропадает.
	if updated.Shipping.Address != "" {
		t.Fatalf("address should have been overwritten, got %q", updated.Shipping.Address)
	}
	if updated.Shipping.Company != "Aras Kargo" || updated.Shipping.TrackingNumber != "TR-1" {
		t.Fatalf("unexpected shipping: %+v", updated.Shipping)
	}
	if updated.Shipping.ShippedAt == nil {
		t.Fatal("shippedAt should be stamped")
	}
}

func TestOrderRepository_CopiesProtectFromMutation(t *testing.T) {
	repo := memory.NewOrderRepository()
	seedOrder(t, repo, "order-1", "user-1", time.Now().UTC())

	got, err := repo.Get("order-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Items[0].Quantity = 99

	again, err := repo.Get("order-1")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.Items[0].Quantity != 1 {
		t.Fatal("stored order mutated through a returned copy")
	}
}
