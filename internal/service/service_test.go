package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"lenspos/m/domain"
	"lenspos/m/internal/migrations"
	"lenspos/m/internal/service"
	"lenspos/m/internal/store/sqlite"
)

func newTestEnv(t *testing.T) (*service.Service, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	migrations.Run(db)
	return service.New(sqlite.New(db)), db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func insertOrder(t *testing.T, db *sqlx.DB, displayID, status string, rightQty, leftQty int64) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO orders (id, display_id, customer_name, status, right_qty, left_qty) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, displayID, "Test Customer", status, rightQty, leftQty)
	require.NoError(t, err)
	return id
}

func insertLens(t *testing.T, db *sqlx.DB, orderID, orderDisplayID string, qty int64) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO inventory_lenses (id, order_id, order_display_id, qty) VALUES ($1, $2, $3, $4)`,
		id, orderID, orderDisplayID, qty)
	require.NoError(t, err)
	return id
}

func createCustomer(t *testing.T, svc *service.Service, name, gst string) domain.Customer {
	t.Helper()
	c, err := svc.CreateCustomer(context.Background(), domain.Customer{Name: name, GSTNumber: gst})
	require.NoError(t, err)
	return c
}

func orderStatus(t *testing.T, db *sqlx.DB, orderID string) string {
	t.Helper()
	var status string
	require.NoError(t, db.Get(&status, `SELECT status FROM orders WHERE id = $1`, orderID))
	return status
}

func lensQty(t *testing.T, db *sqlx.DB, lensID string) (int64, bool) {
	t.Helper()
	var qty int64
	err := db.Get(&qty, `SELECT qty FROM inventory_lenses WHERE id = $1`, lensID)
	if err != nil {
		return 0, false
	}
	return qty, true
}

func TestResolveOrderPaddedAndUnpadded(t *testing.T) {
	svc, db := newTestEnv(t)
	ctx := context.Background()
	id := insertOrder(t, db, "007", domain.OrderPlaced, 1, 1)

	byPadded, err := svc.ResolveOrder(ctx, "007")
	require.NoError(t, err)
	assert.Equal(t, id, byPadded.ID)

	byShort, err := svc.ResolveOrder(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, id, byShort.ID)

	_, err = svc.ResolveOrder(ctx, "999")
	assert.ErrorIs(t, err, service.ErrOrderNotFound)
}

func TestResolveOrderPrefersExactForm(t *testing.T) {
	svc, db := newTestEnv(t)
	ctx := context.Background()
	// Display ids are not guaranteed unique-format: "42" and "042" may both
	// exist. The form typed by staff wins.
	shortID := insertOrder(t, db, "42", domain.OrderPlaced, 1, 0)
	paddedID := insertOrder(t, db, "042", domain.OrderPlaced, 1, 0)

	got, err := svc.ResolveOrder(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, shortID, got.ID)

	got, err = svc.ResolveOrder(ctx, "042")
	require.NoError(t, err)
	assert.Equal(t, paddedID, got.ID)
}

func TestOrderQty(t *testing.T) {
	cases := []struct {
		right, left, want int64
	}{
		{2, 2, 2}, // a pair counts once
		{3, 1, 3}, // larger side wins
		{2, 0, 2},
		{0, 4, 4},
		{0, 0, 1}, // floor of one
	}
	for _, tc := range cases {
		got := service.OrderQty(domain.Order{RightQty: tc.right, LeftQty: tc.left})
		assert.Equal(t, tc.want, got, "right=%d left=%d", tc.right, tc.left)
	}
}

func TestReconcileDecrementsAndDeletes(t *testing.T) {
	svc, db := newTestEnv(t)
	ctx := context.Background()

	orderID := insertOrder(t, db, "010", domain.OrderReceived, 1, 1)
	multi := insertLens(t, db, orderID, "010", 3)
	single := insertLens(t, db, orderID, "010", 1)

	out := svc.Reconcile(ctx, "010")
	assert.Equal(t, service.ReconcileDelivered, out.Status)
	assert.Equal(t, 2, out.LensesConsumed)
	assert.Empty(t, out.Error)

	assert.Equal(t, domain.OrderDelivered, orderStatus(t, db, orderID))

	qty, exists := lensQty(t, db, multi)
	assert.True(t, exists)
	assert.Equal(t, int64(2), qty)

	_, exists = lensQty(t, db, single)
	assert.False(t, exists, "qty 1 lens should be deleted, not zeroed")
}

func TestReconcileSkipsNonDeductibleStatuses(t *testing.T) {
	svc, db := newTestEnv(t)
	ctx := context.Background()

	for _, status := range []string{domain.OrderPending, domain.OrderPlaced, domain.OrderCancelled, domain.OrderDeclined} {
		orderID := insertOrder(t, db, "9"+status[:2], status, 1, 0)
		lensID := insertLens(t, db, orderID, "", 2)

		out := svc.Reconcile(ctx, "9"+status[:2])
		assert.Equal(t, service.ReconcileSkipped, out.Status, status)

		assert.Equal(t, status, orderStatus(t, db, orderID), "status must be untouched for %s", status)
		qty, exists := lensQty(t, db, lensID)
		assert.True(t, exists)
		assert.Equal(t, int64(2), qty, "inventory must be untouched for %s", status)
	}
}

func TestReconcileMissingOrderIsNotAnError(t *testing.T) {
	svc, _ := newTestEnv(t)
	out := svc.Reconcile(context.Background(), "404")
	assert.Equal(t, service.ReconcileNotFound, out.Status)
	assert.Empty(t, out.Error)
}

func TestReconcileFallsBackToDisplayIDLink(t *testing.T) {
	svc, db := newTestEnv(t)
	ctx := context.Background()

	// Lens linked only by display id, order referenced by its short form.
	orderID := insertOrder(t, db, "004", domain.OrderDispatched, 1, 1)
	lensID := insertLens(t, db, "", "004", 1)

	out := svc.Reconcile(ctx, "4")
	assert.Equal(t, service.ReconcileDelivered, out.Status)
	assert.Equal(t, 1, out.LensesConsumed)
	assert.Equal(t, domain.OrderDelivered, orderStatus(t, db, orderID))

	_, exists := lensQty(t, db, lensID)
	assert.False(t, exists)
}

func TestSaveInvoiceValidation(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()

	_, err := svc.SaveInvoice(ctx, service.SaveInvoiceRequest{})
	assert.ErrorIs(t, err, service.ErrCustomerRequired)

	customer := createCustomer(t, svc, "Asha Traders", "")

	_, err = svc.SaveInvoice(ctx, service.SaveInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []service.LineInput{{ItemName: "Blank", UnitPrice: decimal.Zero, Qty: 1}},
	})
	assert.ErrorIs(t, err, service.ErrNoItems)

	_, err = svc.SaveInvoice(ctx, service.SaveInvoiceRequest{
		CustomerID:  customer.ID,
		TaxOptionID: "VAT_99",
		Items:       []service.LineInput{{ItemName: "Lens", UnitPrice: dec("100"), Qty: 1}},
	})
	assert.ErrorIs(t, err, service.ErrUnknownTaxOption)
}

func TestSaveInvoiceEndToEnd(t *testing.T) {
	svc, db := newTestEnv(t)
	ctx := context.Background()

	customer := createCustomer(t, svc, "Ravi Optics", "27ABCDE1234F1Z5")
	orderID := insertOrder(t, db, "003", domain.OrderReceived, 1, 1)
	lensID := insertLens(t, db, orderID, "003", 2)

	result, err := svc.SaveInvoice(ctx, service.SaveInvoiceRequest{
		CustomerID:    customer.ID,
		InvoiceDate:   "2026-08-20",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: dec("10"),
		TaxOptionID:   "CGST_SGST_12",
		Freight:       dec("50"),
		AmountPaid:    dec("500"),
		Items: []service.LineInput{
			{ItemName: "CR-39 Single Vision", Sph: "2", Cyl: "-0.5", Axis: "90", Qty: 2, UnitPrice: dec("500"), OrderRef: "3"},
			{ItemName: "", Qty: 1, UnitPrice: decimal.Zero}, // blank row, silently dropped
		},
	})
	require.NoError(t, err)

	inv := result.Invoice
	assert.Equal(t, "INV-0001", inv.InvoiceNo)
	assert.Equal(t, "1000.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "100.00", inv.DiscountAmount.StringFixed(2))
	assert.Equal(t, "108.00", inv.TaxAmount.StringFixed(2))
	assert.Equal(t, "1058.00", inv.TotalAmount.StringFixed(2))
	assert.Equal(t, "558.00", inv.BalanceDue.StringFixed(2))
	assert.Equal(t, domain.PaymentPartial, inv.PaymentStatus)
	assert.Equal(t, "27ABCDE1234F1Z5", inv.CustomerGST)

	// Blank row excluded; prescription renormalized at save time.
	require.Len(t, result.Items, 1)
	assert.Equal(t, "+2.00", result.Items[0].Sph)
	assert.Equal(t, "-0.50", result.Items[0].Cyl)
	assert.Equal(t, "90", result.Items[0].Axis)

	// Reconciliation ran for the referenced order.
	require.Len(t, result.Reconciliations, 1)
	assert.Equal(t, service.ReconcileDelivered, result.Reconciliations[0].Status)
	assert.Equal(t, domain.OrderDelivered, orderStatus(t, db, orderID))
	qty, exists := lensQty(t, db, lensID)
	assert.True(t, exists)
	assert.Equal(t, int64(1), qty)
}

func TestSaveInvoicePersistedBalanceIsUnclamped(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()
	customer := createCustomer(t, svc, "Walk In", "")

	result, err := svc.SaveInvoice(ctx, service.SaveInvoiceRequest{
		CustomerID: customer.ID,
		AmountPaid: dec("500"),
		Items:      []service.LineInput{{ItemName: "Cloth", Qty: 1, UnitPrice: dec("200")}},
	})
	require.NoError(t, err)

	// Stored balance goes negative on overpayment; only display clamps.
	assert.Equal(t, "-300.00", result.Invoice.BalanceDue.StringFixed(2))
	assert.Equal(t, domain.PaymentPaid, result.Invoice.PaymentStatus)
}

func TestSaveInvoiceSucceedsWhenReconciliationFindsNothing(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()
	customer := createCustomer(t, svc, "Walk In", "")

	result, err := svc.SaveInvoice(ctx, service.SaveInvoiceRequest{
		CustomerID: customer.ID,
		Items:      []service.LineInput{{ItemName: "Lens", Qty: 1, UnitPrice: dec("300"), OrderRef: "404"}},
	})
	require.NoError(t, err, "a dangling order reference must not fail the save")

	require.Len(t, result.Reconciliations, 1)
	assert.Equal(t, service.ReconcileNotFound, result.Reconciliations[0].Status)
}

func TestSavePurchasePerLineDiscount(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()

	result, err := svc.SavePurchase(ctx, service.SavePurchaseRequest{
		SupplierName: "Prime Lens Co",
		SupplierGST:  "29AAACP1234Q1Z1",
		PurchaseDate: "2026-08-21",
		TaxOptionID:  "IGST_18",
		Items: []service.PurchaseLineInput{
			{ItemName: "CR-39 Blanks", Qty: 10, UnitPrice: dec("100"), ItemDiscountType: domain.DiscountPercentage, ItemDiscountValue: dec("5")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "950.00", result.Purchase.Subtotal.StringFixed(2))
	assert.Equal(t, "171.00", result.Purchase.TaxAmount.StringFixed(2))
	assert.Equal(t, "1121.00", result.Purchase.TotalAmount.StringFixed(2))

	_, err = svc.SavePurchase(ctx, service.SavePurchaseRequest{})
	assert.ErrorIs(t, err, service.ErrSupplierRequired)
}

func TestGSTSummary(t *testing.T) {
	svc, _ := newTestEnv(t)
	ctx := context.Background()

	b2b := createCustomer(t, svc, "Ravi Optics", "27ABCDE1234F1Z5")
	b2c := createCustomer(t, svc, "Walk In", "")

	// B2B invoice on the range start, CGST/SGST 12%: tax 120.
	_, err := svc.SaveInvoice(ctx, service.SaveInvoiceRequest{
		CustomerID:  b2b.ID,
		InvoiceDate: "2026-08-01",
		TaxOptionID: "CGST_SGST_12",
		Items:       []service.LineInput{{ItemName: "Lens", Qty: 1, UnitPrice: dec("1000")}},
	})
	require.NoError(t, err)

	// B2C invoice on the range end, IGST 18%: tax 90.
	_, err = svc.SaveInvoice(ctx, service.SaveInvoiceRequest{
		CustomerID:  b2c.ID,
		InvoiceDate: "2026-08-31",
		TaxOptionID: "IGST_18",
		Items:       []service.LineInput{{ItemName: "Frame", Qty: 1, UnitPrice: dec("500")}},
	})
	require.NoError(t, err)

	// Outside the range, must not appear.
	_, err = svc.SaveInvoice(ctx, service.SaveInvoiceRequest{
		CustomerID:  b2c.ID,
		InvoiceDate: "2026-09-01",
		TaxOptionID: "IGST_18",
		Items:       []service.LineInput{{ItemName: "Frame", Qty: 1, UnitPrice: dec("500")}},
	})
	require.NoError(t, err)

	// Purchase with IGST 18%: input credit 180 exceeds the 90 outward IGST.
	_, err = svc.SavePurchase(ctx, service.SavePurchaseRequest{
		SupplierName: "Prime Lens Co",
		PurchaseDate: "2026-08-15",
		TaxOptionID:  "IGST_18",
		Items:        []service.PurchaseLineInput{{ItemName: "Blanks", Qty: 10, UnitPrice: dec("100")}},
	})
	require.NoError(t, err)

	summary, err := svc.GSTSummary(ctx, "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.InvoiceCount)
	assert.Equal(t, int64(1), summary.PurchaseCount)

	assert.Equal(t, int64(1), summary.B2B.Count)
	assert.Equal(t, "1120.00", summary.B2B.TotalAmount.StringFixed(2))
	assert.Equal(t, "120.00", summary.B2B.TaxAmount.StringFixed(2))

	assert.Equal(t, int64(1), summary.B2C.Count)
	assert.Equal(t, "590.00", summary.B2C.TotalAmount.StringFixed(2))
	assert.Equal(t, "90.00", summary.B2C.TaxAmount.StringFixed(2))

	// Partition sums equal the unpartitioned totals.
	assert.Equal(t, "1710.00", summary.TotalAmount.StringFixed(2))
	assert.Equal(t, "210.00", summary.TotalTax.StringFixed(2))

	// Split option halves exactly; IGST stays whole.
	assert.Equal(t, "60.00", summary.Outward.Central.StringFixed(2))
	assert.Equal(t, "60.00", summary.Outward.State.StringFixed(2))
	assert.Equal(t, "90.00", summary.Outward.Integrated.StringFixed(2))

	assert.Equal(t, "180.00", summary.InputCredit.Integrated.StringFixed(2))

	// Unused credit never reports negative liability.
	assert.Equal(t, "0.00", summary.Payable.Integrated.StringFixed(2))
	assert.Equal(t, "60.00", summary.Payable.Central.StringFixed(2))
	assert.Equal(t, "60.00", summary.Payable.State.StringFixed(2))
}
