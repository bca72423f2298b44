package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"lenspos/m/internal/api"
	"lenspos/m/internal/config"
	"lenspos/m/internal/database"
	"lenspos/m/internal/migrations"
	"lenspos/m/internal/seed"
	"lenspos/m/internal/service"
	"lenspos/m/internal/store/sqlite"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.LoadCatalog(db, cfg.CatalogCSV)

	svc := service.New(sqlite.New(db))
	handler := api.New(svc)

	log.Printf("LensPOS server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
