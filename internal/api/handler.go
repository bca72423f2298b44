package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lenspos/m/domain"
	"lenspos/m/internal/service"
	"lenspos/m/internal/store"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	svc *service.Service
}

// New constructs a Handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/customers", func(r chi.Router) {
		r.Post("/", h.createCustomer)
		r.Get("/", h.listCustomers)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/", h.listOrders)
		r.Get("/resolve", h.resolveOrder)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Post("/", h.addLens)
		r.Get("/", h.listLenses)
	})

	r.Route("/invoices", func(r chi.Router) {
		r.Post("/", h.createInvoice)
		r.Get("/{id}", h.getInvoice)
	})

	r.Post("/purchases", h.createPurchase)

	r.Get("/items/suggest", h.suggestItems)
	r.Get("/tax-options", h.taxOptions)

	r.Get("/reports/gst", h.gstSummary)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Customers

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := decodeJSON(r, &c); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.CreateCustomer(r.Context(), c)
	if err != nil {
		if errors.Is(err, service.ErrCustomerRequired) {
			respondError(w, http.StatusBadRequest, "name is required")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create customer")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// Orders

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var o domain.Order
	if err := decodeJSON(r, &o); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.CreateOrder(r.Context(), o)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create order")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context(), strings.TrimSpace(r.URL.Query().Get("status")))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) resolveOrder(w http.ResponseWriter, r *http.Request) {
	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if ref == "" {
		respondError(w, http.StatusBadRequest, "ref is required")
		return
	}
	order, err := h.svc.ResolveOrder(r.Context(), ref)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to resolve order")
		return
	}
	// sale_qty prefills the invoice line: a pair of lenses sells as one.
	respondJSON(w, http.StatusOK, map[string]any{
		"order":    order,
		"sale_qty": service.OrderQty(order),
	})
}

// Inventory

func (h *Handler) addLens(w http.ResponseWriter, r *http.Request) {
	var l domain.InventoryLens
	if err := decodeJSON(r, &l); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := h.svc.AddLens(r.Context(), l)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to add inventory")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handler) listLenses(w http.ResponseWriter, r *http.Request) {
	lenses, err := h.svc.ListLenses(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list inventory")
		return
	}
	respondJSON(w, http.StatusOK, lenses)
}

// Invoices

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req service.SaveInvoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.SaveInvoice(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerRequired):
			respondError(w, http.StatusBadRequest, "customer required")
		case errors.Is(err, service.ErrNoItems):
			respondError(w, http.StatusBadRequest, "no items")
		case errors.Is(err, service.ErrUnknownTaxOption):
			respondError(w, http.StatusBadRequest, "unknown tax option")
		default:
			respondError(w, http.StatusInternalServerError, "unable to save invoice")
		}
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, items, err := h.svc.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "invoice not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load invoice")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"invoice": inv, "items": items})
}

// Purchases

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var req service.SavePurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.SavePurchase(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSupplierRequired):
			respondError(w, http.StatusBadRequest, "supplier required")
		case errors.Is(err, service.ErrNoItems):
			respondError(w, http.StatusBadRequest, "no items")
		case errors.Is(err, service.ErrUnknownTaxOption):
			respondError(w, http.StatusBadRequest, "unknown tax option")
		default:
			respondError(w, http.StatusInternalServerError, "unable to save purchase")
		}
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// Catalog

func (h *Handler) suggestItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.SuggestItems(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to search items")
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *Handler) taxOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, domain.TaxOptions())
}

// Reports

func (h *Handler) gstSummary(w http.ResponseWriter, r *http.Request) {
	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if _, err := time.Parse("2006-01-02", startDate); err != nil {
		respondError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
		return
	}
	if _, err := time.Parse("2006-01-02", endDate); err != nil {
		respondError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
		return
	}
	summary, err := h.svc.GSTSummary(r.Context(), startDate, endDate)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build GST summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
