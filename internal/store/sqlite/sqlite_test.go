package sqlite_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"lenspos/m/domain"
	"lenspos/m/internal/migrations"
	"lenspos/m/internal/store"
	"lenspos/m/internal/store/sqlite"
)

func newTestStore(t *testing.T) (*sqlite.Store, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	migrations.Run(db)
	return sqlite.New(db), db
}

func TestReconcileOrderConsumesStockWithStatus(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	order, err := st.CreateOrder(ctx, domain.Order{CustomerName: "Walk-in", Status: domain.OrderReceived})
	require.NoError(t, err)
	multi, err := st.CreateLens(ctx, domain.InventoryLens{OrderID: order.ID, Qty: 3})
	require.NoError(t, err)
	single, err := st.CreateLens(ctx, domain.InventoryLens{OrderID: order.ID, Qty: 1})
	require.NoError(t, err)

	consumed, err := st.ReconcileOrder(ctx, order.ID, []string{multi.ID, single.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, consumed)

	var status string
	require.NoError(t, db.Get(&status, `SELECT status FROM orders WHERE id = $1`, order.ID))
	assert.Equal(t, domain.OrderDelivered, status)

	var qty int64
	require.NoError(t, db.Get(&qty, `SELECT qty FROM inventory_lenses WHERE id = $1`, multi.ID))
	assert.EqualValues(t, 2, qty)

	var remaining int
	require.NoError(t, db.Get(&remaining, `SELECT COUNT(*) FROM inventory_lenses WHERE id = $1`, single.ID))
	assert.Zero(t, remaining)
}

func TestReconcileOrderUnknownOrderLeavesStockAlone(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	lens, err := st.CreateLens(ctx, domain.InventoryLens{OrderID: "orphaned", Qty: 2})
	require.NoError(t, err)

	_, err = st.ReconcileOrder(ctx, "no-such-order", []string{lens.ID})
	assert.ErrorIs(t, err, store.ErrNotFound)

	var qty int64
	require.NoError(t, db.Get(&qty, `SELECT qty FROM inventory_lenses WHERE id = $1`, lens.ID))
	assert.EqualValues(t, 2, qty)
}

func TestOrderDisplayIDsSkipDeletedRows(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	first, err := st.CreateOrder(ctx, domain.Order{CustomerName: "A"})
	require.NoError(t, err)
	assert.Equal(t, "001", first.DisplayID)

	second, err := st.CreateOrder(ctx, domain.Order{CustomerName: "B"})
	require.NoError(t, err)
	assert.Equal(t, "002", second.DisplayID)

	// An id freed by deletion must not be handed out again.
	_, err = db.Exec(`DELETE FROM orders WHERE id = $1`, first.ID)
	require.NoError(t, err)

	third, err := st.CreateOrder(ctx, domain.Order{CustomerName: "C"})
	require.NoError(t, err)
	assert.Equal(t, "003", third.DisplayID)
}

func TestInvoiceNumbersSkipDeletedRows(t *testing.T) {
	st, db := newTestStore(t)
	ctx := context.Background()

	first, _, err := st.CreateInvoice(ctx, domain.Invoice{CustomerName: "A", InvoiceDate: "2026-08-01"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", first.InvoiceNo)

	second, _, err := st.CreateInvoice(ctx, domain.Invoice{CustomerName: "B", InvoiceDate: "2026-08-02"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", second.InvoiceNo)

	_, err = db.Exec(`DELETE FROM invoices WHERE id = $1`, first.ID)
	require.NoError(t, err)

	third, _, err := st.CreateInvoice(ctx, domain.Invoice{CustomerName: "C", InvoiceDate: "2026-08-03"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "INV-0003", third.InvoiceNo)
}
