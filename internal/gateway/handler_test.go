package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHandler(proxy *ServiceProxy) *Handler {
	return NewHandler(proxy, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleStorefront(t *testing.T) {
	t.Run("proxies GET /cart with customer header", func(t *testing.T) {
		storefrontServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/cart" {
				t.Errorf("expected /cart, got %s", r.URL.Path)
			}
			if r.Header.Get("X-Customer-ID") != "customer-1" {
				t.Errorf("expected customer header to be forwarded, got %q", r.Header.Get("X-Customer-ID"))
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`[]`))
		}))
		defer storefrontServer.Close()

		handler := newTestHandler(NewServiceProxy(storefrontServer.URL, storefrontServer.Client()))

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		req.Header.Set("X-Customer-ID", "customer-1")
		rec := httptest.NewRecorder()

		handler.HandleStorefront(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if rec.Header().Get("Content-Type") != "application/json" {
			t.Errorf("expected application/json, got %s", rec.Header().Get("Content-Type"))
		}
	})

	t.Run("proxies POST /checkout with body", func(t *testing.T) {
		storefrontServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"order-1"}`))
		}))
		defer storefrontServer.Close()

		handler := newTestHandler(NewServiceProxy(storefrontServer.URL, storefrontServer.Client()))

		req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(`{}`))
		req.Header.Set("X-Customer-ID", "customer-1")
		rec := httptest.NewRecorder()

		handler.HandleStorefront(rec, req)

		if rec.Code != http.StatusCreated {
			t.Errorf("expected status 201, got %d", rec.Code)
		}
	})

	t.Run("preserves downstream error status", func(t *testing.T) {
		storefrontServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":"insufficient stock","product_id":"prod-b"}`))
		}))
		defer storefrontServer.Close()

		handler := newTestHandler(NewServiceProxy(storefrontServer.URL, storefrontServer.Client()))

		req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
		rec := httptest.NewRecorder()

		handler.HandleStorefront(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", rec.Code)
		}

		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["product_id"] != "prod-b" {
			t.Errorf("expected offending product to survive the proxy, got %q", resp["product_id"])
		}
	})

	t.Run("returns 502 when storefront unavailable", func(t *testing.T) {
		handler := newTestHandler(NewServiceProxy("http://localhost:99999", &http.Client{}))

		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		rec := httptest.NewRecorder()

		handler.HandleStorefront(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected status 502, got %d", rec.Code)
		}
	})
}

func TestHandleAdmin(t *testing.T) {
	t.Run("forwards approve for admin caller", func(t *testing.T) {
		storefrontServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/admin/orders/order-1/approve" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"id":"order-1","status":"processing"}`))
		}))
		defer storefrontServer.Close()

		handler := newTestHandler(NewServiceProxy(storefrontServer.URL, storefrontServer.Client()))

		req := httptest.NewRequest(http.MethodPost, "/admin/orders/order-1/approve", nil)
		req.Header.Set("X-Admin", "true")
		rec := httptest.NewRecorder()

		handler.HandleAdmin(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
	})

	t.Run("rejects non-admin caller", func(t *testing.T) {
		storefrontServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("request should not reach the storefront")
		}))
		defer storefrontServer.Close()

		handler := newTestHandler(NewServiceProxy(storefrontServer.URL, storefrontServer.Client()))

		req := httptest.NewRequest(http.MethodPost, "/admin/orders/order-1/reject", nil)
		rec := httptest.NewRecorder()

		handler.HandleAdmin(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rec.Code)
		}
	})
}
