// Package store defines the persistence boundary of the POS. The service
// layer depends only on this interface so the backing store is swappable in
// tests.
package store

import (
	"context"
	"errors"

	"lenspos/m/domain"
)

// ErrNotFound is returned when a keyed lookup matches no record.
var ErrNotFound = errors.New("record not found")

type Store interface {
	CreateCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (domain.Customer, error)

	// CreateOrder assigns the storage key and the zero-padded display id.
	CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error)
	ListOrders(ctx context.Context, status string) ([]domain.Order, error)
	FindOrderByDisplayID(ctx context.Context, displayID string) (domain.Order, error)

	CreateLens(ctx context.Context, l domain.InventoryLens) (domain.InventoryLens, error)
	ListLenses(ctx context.Context) ([]domain.InventoryLens, error)
	FindLensesByOrderID(ctx context.Context, orderID string) ([]domain.InventoryLens, error)
	FindLensesByDisplayID(ctx context.Context, displayID string) ([]domain.InventoryLens, error)

	// ReconcileOrder marks the order DELIVERED and consumes one unit from
	// each listed lens record in a single transaction. It reports how many
	// records were actually consumed, and ErrNotFound when the order does
	// not exist.
	ReconcileOrder(ctx context.Context, orderID string, lensIDs []string) (int, error)

	// CreateInvoice persists the header and items in one transaction and
	// assigns the storage key and invoice number.
	CreateInvoice(ctx context.Context, inv domain.Invoice, items []domain.InvoiceItem) (domain.Invoice, []domain.InvoiceItem, error)
	GetInvoice(ctx context.Context, id string) (domain.Invoice, []domain.InvoiceItem, error)
	ListInvoicesBetween(ctx context.Context, startDate, endDate string) ([]domain.Invoice, error)

	CreatePurchase(ctx context.Context, p domain.Purchase, items []domain.PurchaseItem) (domain.Purchase, []domain.PurchaseItem, error)
	ListPurchasesBetween(ctx context.Context, startDate, endDate string) ([]domain.Purchase, error)

	SearchItems(ctx context.Context, query string) ([]domain.Item, error)
}
