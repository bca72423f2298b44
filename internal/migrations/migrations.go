package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the optical POS backend.
// Monetary columns are TEXT so decimal values round-trip without binary
// float drift.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            phone TEXT DEFAULT '',
            address TEXT DEFAULT '',
            gst_number TEXT DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            category TEXT DEFAULT '',
            unit TEXT DEFAULT '',
            price TEXT DEFAULT '0',
            UNIQUE(name)
        );`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            display_id TEXT NOT NULL,
            customer_id TEXT DEFAULT '',
            customer_name TEXT DEFAULT '',
            brand TEXT DEFAULT '',
            lens_type TEXT DEFAULT '',
            right_sph TEXT DEFAULT '',
            right_cyl TEXT DEFAULT '',
            right_axis TEXT DEFAULT '',
            right_add TEXT DEFAULT '',
            right_qty INTEGER DEFAULT 0,
            left_sph TEXT DEFAULT '',
            left_cyl TEXT DEFAULT '',
            left_axis TEXT DEFAULT '',
            left_add TEXT DEFAULT '',
            left_qty INTEGER DEFAULT 0,
            status TEXT NOT NULL,
            notes TEXT DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY(customer_id) REFERENCES customers(id)
        );`,
		`CREATE TABLE IF NOT EXISTS inventory_lenses (
            id TEXT PRIMARY KEY,
            order_id TEXT DEFAULT '',
            order_display_id TEXT DEFAULT '',
            brand TEXT DEFAULT '',
            lens_type TEXT DEFAULT '',
            sph TEXT DEFAULT '',
            cyl TEXT DEFAULT '',
            axis TEXT DEFAULT '',
            add_power TEXT DEFAULT '',
            qty INTEGER NOT NULL,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS invoices (
            id TEXT PRIMARY KEY,
            invoice_no TEXT NOT NULL,
            customer_id TEXT DEFAULT '',
            customer_name TEXT DEFAULT '',
            customer_phone TEXT DEFAULT '',
            customer_gst TEXT DEFAULT '',
            invoice_date TEXT NOT NULL,
            due_date TEXT DEFAULT '',
            notes TEXT DEFAULT '',
            discount_type TEXT DEFAULT '',
            discount_value TEXT DEFAULT '0',
            tax_option_id TEXT DEFAULT '',
            freight TEXT DEFAULT '0',
            subtotal TEXT DEFAULT '0',
            discount_amount TEXT DEFAULT '0',
            tax_amount TEXT DEFAULT '0',
            total_amount TEXT DEFAULT '0',
            amount_paid TEXT DEFAULT '0',
            balance_due TEXT DEFAULT '0',
            payment_status TEXT DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
            FOREIGN KEY(customer_id) REFERENCES customers(id)
        );`,
		`CREATE TABLE IF NOT EXISTS invoice_items (
            id TEXT PRIMARY KEY,
            invoice_id TEXT NOT NULL,
            item_name TEXT NOT NULL,
            sph TEXT DEFAULT '',
            cyl TEXT DEFAULT '',
            axis TEXT DEFAULT '',
            add_power TEXT DEFAULT '',
            qty INTEGER NOT NULL,
            unit TEXT DEFAULT '',
            unit_price TEXT DEFAULT '0',
            total TEXT DEFAULT '0',
            order_display_id TEXT DEFAULT '',
            FOREIGN KEY(invoice_id) REFERENCES invoices(id)
        );`,
		`CREATE TABLE IF NOT EXISTS purchases (
            id TEXT PRIMARY KEY,
            bill_no TEXT NOT NULL,
            supplier_name TEXT DEFAULT '',
            supplier_gst TEXT DEFAULT '',
            purchase_date TEXT NOT NULL,
            notes TEXT DEFAULT '',
            discount_type TEXT DEFAULT '',
            discount_value TEXT DEFAULT '0',
            tax_option_id TEXT DEFAULT '',
            freight TEXT DEFAULT '0',
            subtotal TEXT DEFAULT '0',
            discount_amount TEXT DEFAULT '0',
            tax_amount TEXT DEFAULT '0',
            total_amount TEXT DEFAULT '0',
            amount_paid TEXT DEFAULT '0',
            balance_due TEXT DEFAULT '0',
            payment_status TEXT DEFAULT '',
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS purchase_items (
            id TEXT PRIMARY KEY,
            purchase_id TEXT NOT NULL,
            item_name TEXT NOT NULL,
            qty INTEGER NOT NULL,
            unit TEXT DEFAULT '',
            unit_price TEXT DEFAULT '0',
            item_discount_type TEXT DEFAULT '',
            item_discount_value TEXT DEFAULT '0',
            total TEXT DEFAULT '0',
            FOREIGN KEY(purchase_id) REFERENCES purchases(id)
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
