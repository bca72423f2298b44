// Package database opens the shop's SQLite file.
package database

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Connect opens the POS database at the given DSN. A single open connection
// serializes writers, which the invoice and reconciliation transactions rely
// on.
func Connect(dsn string) *sqlx.DB {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database %s: %v", dsn, err)
	}
	db.SetMaxOpenConns(1)
	return db
}
