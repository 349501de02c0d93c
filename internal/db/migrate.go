package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

func prepare(pool *pgxpool.Pool) (*sql.DB, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("goose dialect: %w", err)
	}
	return stdlib.OpenDBFromPool(pool), nil
}

// Migrate applies every pending migration in order. Already-applied versions are skipped.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	sqlDB, err := prepare(pool)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// MigrationStatus logs the applied state of every migration through goose's logger.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) error {
	sqlDB, err := prepare(pool)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return goose.StatusContext(ctx, sqlDB, migrationsDir)
}

// MigrationVersion returns the latest applied version.
func MigrationVersion(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	sqlDB, err := prepare(pool)
	if err != nil {
		return 0, err
	}
	defer sqlDB.Close()

	return goose.GetDBVersionContext(ctx, sqlDB)
}
