package cart

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mresende/storefront/internal/catalog"
	"github.com/mresende/storefront/internal/domain"
)

type Handler struct {
	repo     *CartRepository
	products *catalog.ProductRepository
	logger   *slog.Logger
}

func NewHandler(repo *CartRepository, products *catalog.ProductRepository, logger *slog.Logger) *Handler {
	return &Handler{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeError(w, http.StatusBadRequest, "missing customer id")
		return
	}

	lines, err := h.repo.ListForCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Error("failed to list cart", "error", err, "customer_id", customerID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if lines == nil {
		lines = []domain.CartLine{}
	}

	h.writeJSON(w, http.StatusOK, lines)
}

type upsertRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	customerID := r.Header.Get("X-Customer-ID")
	if customerID == "" {
		h.writeError(w, http.StatusBadRequest, "missing customer id")
		return
	}

	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.ProductID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}
	if req.Quantity < 1 {
		h.writeError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		h.logger.Error("failed to get product", "error", err, "product_id", req.ProductID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if product == nil || !product.Active {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	item := &domain.CartItem{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		Size:       req.Size,
		Quantity:   req.Quantity,
	}

	if err := h.repo.Upsert(r.Context(), item); err != nil {
		h.logger.Error("failed to upsert cart item", "error", err, "customer_id", customerID, "product_id", req.ProductID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("cart item upserted", "customer_id", customerID, "product_id", req.ProductID, "quantity", req.Quantity)
	h.writeJSON(w, http.StatusOK, item)
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing cart item id")
		return
	}

	if err := h.repo.Remove(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "cart item not found")
			return
		}
		h.logger.Error("failed to remove cart item", "error", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("cart item removed", "id", id)
	w.WriteHeader(http.StatusNoContent)
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
