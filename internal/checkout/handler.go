package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mresende/storefront/internal/domain"
	"github.com/mresende/storefront/internal/messaging"
	"github.com/mresende/storefront/internal/telemetry"
)

type Service interface {
	Checkout(ctx context.Context, customerID string) (*domain.Order, error)
}

type Handler struct {
	service  Service
	producer *messaging.Producer
	metrics  *telemetry.CheckoutMetrics
	logger   *slog.Logger
}

func NewHandler(service Service, producer *messaging.Producer, metrics *telemetry.CheckoutMetrics, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		producer: producer,
		metrics:  metrics,
		logger:   logger,
	}
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeError(w, http.StatusBadRequest, "missing customer id")
		return
	}

	order, err := h.service.Checkout(r.Context(), customerID)
	if err != nil {
		h.handleCheckoutError(w, r, err, customerID)
		return
	}

	h.metrics.RecordAttempt(r.Context(), telemetry.CheckoutOutcomePlaced)

	if h.producer != nil {
		event := domain.OrderPlacedEvent{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Total:      order.Total,
			Items:      order.Items,
			Timestamp:  order.CreatedAt,
		}
		if err := h.producer.Publish(r.Context(), order.ID, event); err != nil {
			h.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	h.logger.Info("order placed", "order_id", order.ID, "customer_id", order.CustomerID, "total", order.Total)
	h.writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) handleCheckoutError(w http.ResponseWriter, r *http.Request, err error, customerID string) {
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		h.metrics.RecordAttempt(r.Context(), telemetry.CheckoutOutcomeEmptyCart)
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error": "cart is empty",
		})

	case errors.As(err, &stockErr):
		h.metrics.RecordAttempt(r.Context(), telemetry.CheckoutOutcomeInsufficientStock)
		h.logger.Info("checkout rejected, insufficient stock", "customer_id", customerID, "product_id", stockErr.ProductID)
		h.writeJSON(w, http.StatusConflict, map[string]string{
			"error":      "insufficient stock",
			"product_id": stockErr.ProductID,
		})

	default:
		h.metrics.RecordAttempt(r.Context(), telemetry.CheckoutOutcomeError)
		h.logger.Error("checkout failed", "error", err, "customer_id", customerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
