package domain

import "testing"

func TestOrderStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},

		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusCancelled, false},
		{OrderStatusProcessing, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusCancelled, OrderStatusShipped, OrderStatusDelivered} {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}

	for _, s := range []OrderStatus{"", "approved", "rejected", "PENDING"} {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestInsufficientStockErrorNamesProduct(t *testing.T) {
	err := &InsufficientStockError{ProductID: "prod-123"}
	if got := err.Error(); got != "insufficient stock for product prod-123" {
		t.Errorf("unexpected error message: %s", got)
	}
}

func TestIllegalTransitionErrorNamesStates(t *testing.T) {
	err := &IllegalTransitionError{From: OrderStatusCancelled, To: OrderStatusProcessing}
	if got := err.Error(); got != "illegal order status transition from cancelled to processing" {
		t.Errorf("unexpected error message: %s", got)
	}
}
