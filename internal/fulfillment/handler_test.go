package fulfillment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mresende/storefront/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleOrderPlaced_SendsConfirmation(t *testing.T) {
	var sent map[string]string
	notifyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/send" {
			t.Errorf("expected /send, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
			t.Errorf("failed to decode email request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer notifyServer.Close()

	handler := NewHandler("http://unused", notifyServer.URL, notifyServer.Client(), discardLogger())

	event := domain.OrderPlacedEvent{
		OrderID:    "order-1",
		CustomerID: "customer-1",
		Total:      2200,
		Items:      []domain.OrderItem{{ProductID: "prod-a", Quantity: 2, Price: 500}},
	}
	payload, _ := json.Marshal(event)

	if err := handler.HandleOrderPlaced(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sent["to"] != "customer-1@example.com" {
		t.Errorf("unexpected recipient: %s", sent["to"])
	}
	if sent["subject"] != "Order Confirmation: order-1" {
		t.Errorf("unexpected subject: %s", sent["subject"])
	}
}

func TestHandleOrderPlaced_NotifyFailure(t *testing.T) {
	notifyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer notifyServer.Close()

	handler := NewHandler("http://unused", notifyServer.URL, notifyServer.Client(), discardLogger())

	payload, _ := json.Marshal(domain.OrderPlacedEvent{OrderID: "order-1"})

	if err := handler.HandleOrderPlaced(context.Background(), payload); err == nil {
		t.Fatal("expected error when notify service fails")
	}
}

func TestHandleShipment_TransitionsOrder(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	storefrontServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"order-1","status":"shipped"}`))
	}))
	defer storefrontServer.Close()

	handler := NewHandler(storefrontServer.URL, "http://unused", storefrontServer.Client(), discardLogger())

	payload, _ := json.Marshal(domain.ShipmentEvent{OrderID: "order-1", Event: domain.ShipmentEventShipped})

	if err := handler.HandleShipment(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/orders/order-1/status" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotBody["status"] != "shipped" {
		t.Errorf("expected status 'shipped', got %q", gotBody["status"])
	}
}

func TestHandleShipment_RejectedTransitionIsNotRetried(t *testing.T) {
	storefrontServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer storefrontServer.Close()

	handler := NewHandler(storefrontServer.URL, "http://unused", storefrontServer.Client(), discardLogger())

	payload, _ := json.Marshal(domain.ShipmentEvent{OrderID: "order-1", Event: domain.ShipmentEventDelivered})

	if err := handler.HandleShipment(context.Background(), payload); err != nil {
		t.Fatalf("expected rejected transition to be swallowed, got %v", err)
	}
}

func TestHandleShipment_UnknownEventSkipped(t *testing.T) {
	handler := NewHandler("http://unused", "http://unused", http.DefaultClient, discardLogger())

	payload, _ := json.Marshal(domain.ShipmentEvent{OrderID: "order-1", Event: "lost"})

	if err := handler.HandleShipment(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
