package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mresende/storefront/internal/domain"
)

type stubService struct {
	order *domain.Order
	err   error
}

func (s *stubService) Checkout(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func newTestHandler(svc Service) *Handler {
	return NewHandler(svc, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleCheckout_Success(t *testing.T) {
	order := &domain.Order{
		ID:         "order-1",
		CustomerID: "customer-1",
		Total:      2200,
		Status:     domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductID: "prod-a", Quantity: 2, Size: "M", Price: 500},
			{ProductID: "prod-b", Quantity: 1, Size: "L", Price: 1200},
		},
	}
	handler := newTestHandler(&stubService{order: order})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("X-Customer-ID", "customer-1")
	rec := httptest.NewRecorder()

	handler.HandleCheckout(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var got domain.Order
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != "order-1" || got.Total != 2200 || got.Status != domain.OrderStatusPending {
		t.Errorf("unexpected order in response: %+v", got)
	}
	if len(got.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(got.Items))
	}
}

func TestHandleCheckout_MissingCustomer(t *testing.T) {
	handler := newTestHandler(&stubService{})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rec := httptest.NewRecorder()

	handler.HandleCheckout(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleCheckout_EmptyCart(t *testing.T) {
	handler := newTestHandler(&stubService{err: domain.ErrEmptyCart})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("X-Customer-ID", "customer-1")
	rec := httptest.NewRecorder()

	handler.HandleCheckout(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status 422, got %d", rec.Code)
	}
}

func TestHandleCheckout_InsufficientStock(t *testing.T) {
	handler := newTestHandler(&stubService{err: &domain.InsufficientStockError{ProductID: "prod-b"}})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("X-Customer-ID", "customer-1")
	rec := httptest.NewRecorder()

	handler.HandleCheckout(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["product_id"] != "prod-b" {
		t.Errorf("expected offending product 'prod-b', got %q", resp["product_id"])
	}
}

func TestHandleCheckout_PersistenceFailure(t *testing.T) {
	handler := newTestHandler(&stubService{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	req.Header.Set("X-Customer-ID", "customer-1")
	rec := httptest.NewRecorder()

	handler.HandleCheckout(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}
