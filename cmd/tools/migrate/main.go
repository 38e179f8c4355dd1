package main

import (
	"flag"
	"log"

	"github.com/noah-isme/backend-cetak/internal/app"
	"github.com/noah-isme/backend-cetak/internal/config"
	"github.com/noah-isme/backend-cetak/internal/db"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if !*down {
		if err := app.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		log.Println("schema is up to date")
		return
	}

	m, err := db.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()
	if err := m.Steps(-1); err != nil {
		log.Fatalf("migrate down: %v", err)
	}
	log.Println("rolled back one migration")
}
