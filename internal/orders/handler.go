package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mresende/storefront/internal/domain"
)

type Handler struct {
	repo   *OrderRepository
	logger *slog.Logger
}

func NewHandler(repo *OrderRepository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("failed to get order", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, order)
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// HandleUpdateStatus is the fulfillment-facing transition endpoint
// (processing to shipped, shipped to delivered). Every change goes through
// the lifecycle guard; there is no unchecked status write.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.Status.IsValid() {
		h.writeError(w, http.StatusBadRequest, "unknown order status")
		return
	}

	h.transition(w, r, id, req.Status)
}

// HandleApprove moves a pending order to processing.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	h.transition(w, r, id, domain.OrderStatusProcessing)
}

// HandleReject moves a pending order to cancelled. Stock committed at
// checkout stays committed; there is no automatic restock.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	h.transition(w, r, id, domain.OrderStatusCancelled)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, id string, next domain.OrderStatus) {
	order, err := h.repo.Transition(r.Context(), id, next)
	if err != nil {
		var transitionErr *domain.IllegalTransitionError

		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "order not found")

		case errors.As(err, &transitionErr):
			h.logger.Info("order transition rejected", "order_id", id,
				"from", transitionErr.From, "to", transitionErr.To)
			h.writeJSON(w, http.StatusConflict, map[string]string{
				"error": "illegal transition",
				"from":  transitionErr.From.String(),
				"to":    transitionErr.To.String(),
			})

		default:
			h.logger.Error("failed to transition order", "error", err, "id", id, "to", next)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.logger.Info("order status updated", "order_id", order.ID, "status", order.Status)
	h.writeJSON(w, http.StatusOK, order)
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
