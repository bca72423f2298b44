// Package sqlite implements store.Store over a sqlx SQLite handle.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lenspos/m/domain"
	"lenspos/m/internal/store"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func now() string {
	return time.Now().UTC().Format("2006-01-02 15:04:05")
}

// Customers

func (s *Store) CreateCustomer(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, phone, address, gst_number, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Phone, c.Address, c.GSTNumber, c.CreatedAt)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := s.db.SelectContext(ctx, &customers,
		`SELECT id, name, phone, address, gst_number, created_at FROM customers ORDER BY name`)
	return customers, err
}

func (s *Store) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	var c domain.Customer
	err := s.db.GetContext(ctx, &c,
		`SELECT id, name, phone, address, gst_number, created_at FROM customers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, store.ErrNotFound
	}
	return c, err
}

// Orders

const orderColumns = `id, display_id, customer_id, customer_name, brand, lens_type,
        right_sph, right_cyl, right_axis, right_add, right_qty,
        left_sph, left_cyl, left_axis, left_add, left_qty,
        status, notes, created_at`

func (s *Store) CreateOrder(ctx context.Context, o domain.Order) (domain.Order, error) {
	// MAX keeps the sequence monotonic even after rows are removed.
	var seq int64
	if err := s.db.GetContext(ctx, &seq,
		`SELECT COALESCE(MAX(CAST(display_id AS INTEGER)), 0) FROM orders`); err != nil {
		return domain.Order{}, fmt.Errorf("order sequence: %w", err)
	}
	o.ID = uuid.NewString()
	o.DisplayID = fmt.Sprintf("%03d", seq+1)
	if o.Status == "" {
		o.Status = domain.OrderPending
	}
	o.CreatedAt = now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (`+orderColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		o.ID, o.DisplayID, o.CustomerID, o.CustomerName, o.Brand, o.LensType,
		o.RightSph, o.RightCyl, o.RightAxis, o.RightAdd, o.RightQty,
		o.LeftSph, o.LeftCyl, o.LeftAxis, o.LeftAdd, o.LeftQty,
		o.Status, o.Notes, o.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

func (s *Store) ListOrders(ctx context.Context, status string) ([]domain.Order, error) {
	var orders []domain.Order
	if status != "" {
		err := s.db.SelectContext(ctx, &orders,
			`SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY created_at DESC`, status)
		return orders, err
	}
	err := s.db.SelectContext(ctx, &orders,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	return orders, err
}

func (s *Store) FindOrderByDisplayID(ctx context.Context, displayID string) (domain.Order, error) {
	var o domain.Order
	err := s.db.GetContext(ctx, &o,
		`SELECT `+orderColumns+` FROM orders WHERE display_id = $1 LIMIT 1`, displayID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, store.ErrNotFound
	}
	return o, err
}

// ReconcileOrder marks the order DELIVERED and consumes one unit from each
// listed lens record in one transaction. A lens with stock left is
// decremented; one at its last unit is removed outright.
func (s *Store) ReconcileOrder(ctx context.Context, orderID string, lensIDs []string) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin reconcile tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`, domain.OrderDelivered, orderID)
	if err != nil {
		return 0, fmt.Errorf("mark order delivered: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, store.ErrNotFound
	}

	consumed := 0
	for _, lensID := range lensIDs {
		res, err := tx.ExecContext(ctx,
			`UPDATE inventory_lenses SET qty = qty - 1 WHERE id = $1 AND qty > 1`, lensID)
		if err != nil {
			return 0, fmt.Errorf("decrement lens %s: %w", lensID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			consumed++
			continue
		}
		res, err = tx.ExecContext(ctx, `DELETE FROM inventory_lenses WHERE id = $1`, lensID)
		if err != nil {
			return 0, fmt.Errorf("delete lens %s: %w", lensID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			consumed++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit reconcile: %w", err)
	}
	return consumed, nil
}

// Inventory lenses

const lensColumns = `id, order_id, order_display_id, brand, lens_type, sph, cyl, axis, add_power, qty, created_at`

func (s *Store) CreateLens(ctx context.Context, l domain.InventoryLens) (domain.InventoryLens, error) {
	l.ID = uuid.NewString()
	l.CreatedAt = now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inventory_lenses (`+lensColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.OrderID, l.OrderDisplayID, l.Brand, l.LensType,
		l.Sph, l.Cyl, l.Axis, l.Add, l.Qty, l.CreatedAt)
	if err != nil {
		return domain.InventoryLens{}, fmt.Errorf("create lens: %w", err)
	}
	return l, nil
}

func (s *Store) ListLenses(ctx context.Context) ([]domain.InventoryLens, error) {
	var lenses []domain.InventoryLens
	err := s.db.SelectContext(ctx, &lenses,
		`SELECT `+lensColumns+` FROM inventory_lenses ORDER BY created_at DESC`)
	return lenses, err
}

func (s *Store) FindLensesByOrderID(ctx context.Context, orderID string) ([]domain.InventoryLens, error) {
	var lenses []domain.InventoryLens
	err := s.db.SelectContext(ctx, &lenses,
		`SELECT `+lensColumns+` FROM inventory_lenses WHERE order_id = $1`, orderID)
	return lenses, err
}

func (s *Store) FindLensesByDisplayID(ctx context.Context, displayID string) ([]domain.InventoryLens, error) {
	var lenses []domain.InventoryLens
	err := s.db.SelectContext(ctx, &lenses,
		`SELECT `+lensColumns+` FROM inventory_lenses WHERE order_display_id = $1`, displayID)
	return lenses, err
}

// Invoices

const invoiceColumns = `id, invoice_no, customer_id, customer_name, customer_phone, customer_gst,
        invoice_date, due_date, notes, discount_type, discount_value, tax_option_id, freight,
        subtotal, discount_amount, tax_amount, total_amount, amount_paid, balance_due,
        payment_status, created_at`

func (s *Store) CreateInvoice(ctx context.Context, inv domain.Invoice, items []domain.InvoiceItem) (domain.Invoice, []domain.InvoiceItem, error) {
	var seq int64
	if err := s.db.GetContext(ctx, &seq,
		`SELECT COALESCE(MAX(CAST(SUBSTR(invoice_no, 5) AS INTEGER)), 0) FROM invoices`); err != nil {
		return domain.Invoice{}, nil, fmt.Errorf("invoice sequence: %w", err)
	}
	inv.ID = uuid.NewString()
	inv.InvoiceNo = fmt.Sprintf("INV-%04d", seq+1)
	inv.CreatedAt = now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Invoice{}, nil, fmt.Errorf("begin invoice tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices (`+invoiceColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		inv.ID, inv.InvoiceNo, inv.CustomerID, inv.CustomerName, inv.CustomerPhone, inv.CustomerGST,
		inv.InvoiceDate, inv.DueDate, inv.Notes, inv.DiscountType, inv.DiscountValue, inv.TaxOptionID, inv.Freight,
		inv.Subtotal, inv.DiscountAmount, inv.TaxAmount, inv.TotalAmount, inv.AmountPaid, inv.BalanceDue,
		inv.PaymentStatus, inv.CreatedAt)
	if err != nil {
		return domain.Invoice{}, nil, fmt.Errorf("create invoice: %w", err)
	}

	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].InvoiceID = inv.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO invoice_items (id, invoice_id, item_name, sph, cyl, axis, add_power, qty, unit, unit_price, total, order_display_id)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			items[i].ID, items[i].InvoiceID, items[i].ItemName,
			items[i].Sph, items[i].Cyl, items[i].Axis, items[i].Add,
			items[i].Qty, items[i].Unit, items[i].UnitPrice, items[i].Total, items[i].OrderDisplayID)
		if err != nil {
			return domain.Invoice{}, nil, fmt.Errorf("create invoice item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Invoice{}, nil, fmt.Errorf("commit invoice: %w", err)
	}
	return inv, items, nil
}

func (s *Store) GetInvoice(ctx context.Context, id string) (domain.Invoice, []domain.InvoiceItem, error) {
	var inv domain.Invoice
	err := s.db.GetContext(ctx, &inv,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Invoice{}, nil, store.ErrNotFound
	}
	if err != nil {
		return domain.Invoice{}, nil, err
	}
	var items []domain.InvoiceItem
	err = s.db.SelectContext(ctx, &items,
		`SELECT id, invoice_id, item_name, sph, cyl, axis, add_power, qty, unit, unit_price, total, order_display_id
         FROM invoice_items WHERE invoice_id = $1`, id)
	return inv, items, err
}

func (s *Store) ListInvoicesBetween(ctx context.Context, startDate, endDate string) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := s.db.SelectContext(ctx, &invoices,
		`SELECT `+invoiceColumns+` FROM invoices
         WHERE DATE(invoice_date) >= $1 AND DATE(invoice_date) <= $2
         ORDER BY invoice_date`, startDate, endDate)
	return invoices, err
}

// Purchases

const purchaseColumns = `id, bill_no, supplier_name, supplier_gst, purchase_date, notes,
        discount_type, discount_value, tax_option_id, freight,
        subtotal, discount_amount, tax_amount, total_amount, amount_paid, balance_due,
        payment_status, created_at`

func (s *Store) CreatePurchase(ctx context.Context, p domain.Purchase, items []domain.PurchaseItem) (domain.Purchase, []domain.PurchaseItem, error) {
	// Supplier bill numbers are free-form; only generated PUR- numbers feed
	// the sequence, and CAST yields 0 for anything non-numeric after the
	// prefix.
	var seq int64
	if err := s.db.GetContext(ctx, &seq,
		`SELECT COALESCE(MAX(CAST(SUBSTR(bill_no, 5) AS INTEGER)), 0) FROM purchases`); err != nil {
		return domain.Purchase{}, nil, fmt.Errorf("purchase sequence: %w", err)
	}
	p.ID = uuid.NewString()
	if p.BillNo == "" {
		p.BillNo = fmt.Sprintf("PUR-%04d", seq+1)
	}
	p.CreatedAt = now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Purchase{}, nil, fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO purchases (`+purchaseColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		p.ID, p.BillNo, p.SupplierName, p.SupplierGST, p.PurchaseDate, p.Notes,
		p.DiscountType, p.DiscountValue, p.TaxOptionID, p.Freight,
		p.Subtotal, p.DiscountAmount, p.TaxAmount, p.TotalAmount, p.AmountPaid, p.BalanceDue,
		p.PaymentStatus, p.CreatedAt)
	if err != nil {
		return domain.Purchase{}, nil, fmt.Errorf("create purchase: %w", err)
	}

	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].PurchaseID = p.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO purchase_items (id, purchase_id, item_name, qty, unit, unit_price, item_discount_type, item_discount_value, total)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			items[i].ID, items[i].PurchaseID, items[i].ItemName, items[i].Qty, items[i].Unit,
			items[i].UnitPrice, items[i].ItemDiscountType, items[i].ItemDiscountValue, items[i].Total)
		if err != nil {
			return domain.Purchase{}, nil, fmt.Errorf("create purchase item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.Purchase{}, nil, fmt.Errorf("commit purchase: %w", err)
	}
	return p, items, nil
}

func (s *Store) ListPurchasesBetween(ctx context.Context, startDate, endDate string) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := s.db.SelectContext(ctx, &purchases,
		`SELECT `+purchaseColumns+` FROM purchases
         WHERE DATE(purchase_date) >= $1 AND DATE(purchase_date) <= $2
         ORDER BY purchase_date`, startDate, endDate)
	return purchases, err
}

// Item catalog

func (s *Store) SearchItems(ctx context.Context, query string) ([]domain.Item, error) {
	var items []domain.Item
	if query == "" {
		err := s.db.SelectContext(ctx, &items,
			`SELECT id, name, category, unit, price FROM items ORDER BY name LIMIT 25`)
		return items, err
	}
	like := "%" + query + "%"
	err := s.db.SelectContext(ctx, &items,
		`SELECT id, name, category, unit, price FROM items WHERE name LIKE $1 OR category LIKE $2 ORDER BY name LIMIT 25`, like, like)
	return items, err
}
