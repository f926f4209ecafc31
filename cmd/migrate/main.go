package main

import (
	"flag"
	"log"

	"github.com/johnquangdev/telehealth-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/telehealth-assistant/pkg/config"
)

func main() {
	dir := flag.String("dir", database.MigrationsDir, "directory holding the sql-migrate files")
	down := flag.Bool("down", false, "roll back instead of applying")
	max := flag.Int("max", 0, "maximum number of migrations to run, 0 for all (down defaults to 1)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Database.Backend != "postgres" {
		log.Fatalf("Migrations only apply to the postgres backend, STORE_BACKEND=%s", cfg.Database.Backend)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	limit := *max
	if *down && limit == 0 {
		limit = 1
	}

	n, err := database.Migrate(db, *dir, *down, limit)
	if err != nil {
		log.Fatalf("❌ Migration failed after %d steps: %v", n, err)
	}

	direction := "Applied"
	if *down {
		direction = "Rolled back"
	}
	log.Printf("✅ %s %d migrations from %s", direction, n, *dir)
}
