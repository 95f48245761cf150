package domain_test

import (
	"testing"
	"time"

	"github.com/odyostore/backoffice/internal/domain"
)

// helper для создания базового заказа с одной позицией.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:     "order-1",
		UserID: "user-1",
		Items: []domain.OrderItem{
			{ProductID: "product-1", Quantity: 2},
		},
		Shipping:        domain.Shipping{Address: "Bağdat Cd. 17, İstanbul"},
		PaymentMethod:   domain.PaymentCreditCard,
		TotalPriceMinor: 10000,
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestOrderValidateForCreate_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateForCreate(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateForCreate_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
	}{
		{
			name: "no user",
			mut: func(o *domain.Order) {
				o.UserID = ""
			},
		},
		{
			name: "no items",
			mut: func(o *domain.Order) {
				o.Items = nil
			},
		},
		{
			name: "item without product",
			mut: func(o *domain.Order) {
				o.Items[0].ProductID = ""
			},
		},
		{
			name: "qty below one",
			mut: func(o *domain.Order) {
				o.Items[0].Quantity = 0
			},
		},
		{
			name: "negative total",
			mut: func(o *domain.Order) {
				o.TotalPriceMinor = -1
			},
		},
		{
			name: "unknown payment method",
			mut: func(o *domain.Order) {
				o.PaymentMethod = "barter"
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			if len(order.ValidateForCreate()) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
		})
	}
}

func TestValidOrderStatus(t *testing.T) {
	valid := []domain.OrderStatus{
		domain.OrderStatusPending,
		domain.OrderStatusConfirmed,
		domain.OrderStatusInvoiced,
		domain.OrderStatusShipped,
		domain.OrderStatusDelivered,
		domain.OrderStatusCancelled,
	}
	for _, s := range valid {
		if !domain.ValidOrderStatus(s) {
			t.Errorf("status %q should be valid", s)
		}
	}

	for _, s := range []domain.OrderStatus{"", "paid", "PENDING", "bekliyor"} {
		if domain.ValidOrderStatus(s) {
			t.Errorf("status %q should be invalid", s)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []domain.Role{domain.RoleAdmin, domain.RoleCenter, domain.RoleSupplier} {
		if !domain.ValidRole(r) {
			t.Errorf("role %q should be valid", r)
		}
	}
	if domain.ValidRole("superuser") {
		t.Error("unknown role should be invalid")
	}
}
