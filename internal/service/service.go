// Package service owns the invoice save flow, order resolution, inventory
// reconciliation and period reporting. All store access goes through the
// injected store.Store.
package service

import (
	"context"
	"errors"
	"strings"

	"lenspos/m/domain"
	"lenspos/m/internal/store"
)

// Validation errors surfaced to the caller; the invoice is not saved.
var (
	ErrCustomerRequired = errors.New("customer required")
	ErrNoItems          = errors.New("no items")
	ErrSupplierRequired = errors.New("supplier required")
	ErrUnknownTaxOption = errors.New("unknown tax option")
	ErrOrderNotFound    = errors.New("order not found")
)

type Service struct {
	repo store.Store
}

func New(repo store.Store) *Service {
	return &Service{repo: repo}
}

// CreateCustomer registers a customer after trimming the identity fields.
func (s *Service) CreateCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.Customer{}, ErrCustomerRequired
	}
	c.GSTNumber = strings.TrimSpace(c.GSTNumber)
	return s.repo.CreateCustomer(ctx, c)
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

// CreateOrder places a lens order; the store assigns the display id.
func (s *Service) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	return s.repo.CreateOrder(ctx, o)
}

func (s *Service) ListOrders(ctx context.Context, status string) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx, status)
}

func (s *Service) AddLens(ctx context.Context, l domain.InventoryLens) (domain.InventoryLens, error) {
	if l.Qty <= 0 {
		l.Qty = 1
	}
	return s.repo.CreateLens(ctx, l)
}

func (s *Service) ListLenses(ctx context.Context) ([]domain.InventoryLens, error) {
	return s.repo.ListLenses(ctx)
}

func (s *Service) GetInvoice(ctx context.Context, id string) (domain.Invoice, []domain.InvoiceItem, error) {
	return s.repo.GetInvoice(ctx, id)
}

// padDisplayID left-pads a numeric-looking reference to the three digits
// display ids are generated with. Staff often type "7" for order "007".
func padDisplayID(ref string) string {
	if len(ref) >= 3 {
		return ref
	}
	return strings.Repeat("0", 3-len(ref)) + ref
}

// ResolveOrder resolves a user-typed order reference to an order record.
// It tries the reference exactly as entered first, then the zero-padded
// form. Strict equality only; this is a lookup, not a search.
func (s *Service) ResolveOrder(ctx context.Context, ref string) (domain.Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Order{}, ErrOrderNotFound
	}
	order, err := s.repo.FindOrderByDisplayID(ctx, ref)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Order{}, err
	}
	if padded := padDisplayID(ref); padded != ref {
		order, err = s.repo.FindOrderByDisplayID(ctx, padded)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return domain.Order{}, err
		}
	}
	return domain.Order{}, ErrOrderNotFound
}

// OrderQty is the sale quantity an order represents. A pair of lenses counts
// once, so when both eyes carry a quantity the larger side wins; a completely
// blank order still counts as one.
func OrderQty(o domain.Order) int64 {
	switch {
	case o.RightQty > 0 && o.LeftQty > 0:
		if o.RightQty >= o.LeftQty {
			return o.RightQty
		}
		return o.LeftQty
	case o.RightQty > 0:
		return o.RightQty
	case o.LeftQty > 0:
		return o.LeftQty
	}
	return 1
}
