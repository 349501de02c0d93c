package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"tavern_bot/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	apply := flag.Bool("apply", false, "apply pending migrations")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// without -apply just list what goose knows about
	if !*apply {
		if err := db.MigrationStatus(ctx, pool); err != nil {
			log.Fatalf("migration status: %v", err)
		}
		return
	}

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	version, err := db.MigrationVersion(ctx, pool)
	if err != nil {
		log.Fatalf("read version: %v", err)
	}
	fmt.Printf("schema at version %d\n", version)
}
