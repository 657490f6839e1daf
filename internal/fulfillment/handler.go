package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mresende/storefront/internal/domain"
)

// Handler reacts to order events. Order-placed events trigger a confirmation
// email through the notify service; shipment events from the carrier feed
// drive the shipped/delivered transitions through the storefront API so the
// lifecycle guard stays in one place.
type Handler struct {
	storefrontURL string
	notifyURL     string
	httpClient    *http.Client
	logger        *slog.Logger
}

func NewHandler(storefrontURL, notifyURL string, client *http.Client, logger *slog.Logger) *Handler {
	return &Handler{
		storefrontURL: storefrontURL,
		notifyURL:     notifyURL,
		httpClient:    client,
		logger:        logger,
	}
}

func (h *Handler) HandleOrderPlaced(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed event: %w", err)
	}

	h.logger.Info("processing order placed event", "order_id", event.OrderID, "customer_id", event.CustomerID)

	if err := h.sendConfirmation(ctx, event); err != nil {
		h.logger.Error("failed to send confirmation", "error", err, "order_id", event.OrderID)
		return fmt.Errorf("send confirmation: %w", err)
	}

	return nil
}

func (h *Handler) HandleShipment(ctx context.Context, payload []byte) error {
	var event domain.ShipmentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal shipment event: %w", err)
	}

	var status domain.OrderStatus
	switch event.Event {
	case domain.ShipmentEventShipped:
		status = domain.OrderStatusShipped
	case domain.ShipmentEventDelivered:
		status = domain.OrderStatusDelivered
	default:
		h.logger.Warn("unknown shipment event, skipping", "event", event.Event, "order_id", event.OrderID)
		return nil
	}

	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return fmt.Errorf("marshal status update: %w", err)
	}

	url := fmt.Sprintf("%s/orders/%s/status", h.storefrontURL, event.OrderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update order %s status: %w", event.OrderID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		h.logger.Info("order transitioned from shipment event", "order_id", event.OrderID, "status", status)
		return nil
	case http.StatusConflict, http.StatusNotFound:
		// Carrier feeds replay and deliver out of order; the storefront
		// already rejected the transition, so there is nothing to retry.
		h.logger.Warn("shipment event rejected by storefront", "order_id", event.OrderID,
			"status", status, "http_status", resp.StatusCode)
		return nil
	default:
		return fmt.Errorf("storefront returned status %d for order %s", resp.StatusCode, event.OrderID)
	}
}

func (h *Handler) sendConfirmation(ctx context.Context, event domain.OrderPlacedEvent) error {
	body := map[string]string{
		"to":      event.CustomerID + "@example.com",
		"subject": "Order Confirmation: " + event.OrderID,
		"body":    fmt.Sprintf("Your order %s with %d items has been placed and is awaiting review.", event.OrderID, len(event.Items)),
	}

	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.notifyURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify service returned status %d", resp.StatusCode)
	}

	return nil
}
