package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Ledger       = (*UserRepository)(nil)
	_ Inventory    = (*InventoryRepository)(nil)
	_ BuffStore    = (*BuffRepository)(nil)
	_ Catalog      = (*ItemRepository)(nil)
	_ Memes        = (*MemeRepository)(nil)
	_ Transactions = (*TransactionRepository)(nil)
	_ Store        = (*PostgresStore)(nil)
)

// PostgresStore implements Store on a pgx pool.
type PostgresStore struct {
	pool            *pgxpool.Pool
	startingBalance int64
}

func NewPostgresStore(pool *pgxpool.Pool, startingBalance int64) *PostgresStore {
	return &PostgresStore{pool: pool, startingBalance: startingBalance}
}

func (s *PostgresStore) bind(db DBTX) Repos {
	return Repos{
		Users:        NewUserRepository(db, s.startingBalance),
		Inventory:    NewInventoryRepository(db),
		Buffs:        NewBuffRepository(db),
		Items:        NewItemRepository(db),
		Transactions: NewTransactionRepository(db),
	}
}

func (s *PostgresStore) Repos() Repos {
	return s.bind(s.pool)
}

func (s *PostgresStore) Memes() Memes {
	return NewMemeRepository(s.pool)
}

func (s *PostgresStore) WithinUserTx(ctx context.Context, userID string, fn func(ctx context.Context, r Repos) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO users (user_id, balance) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, s.startingBalance,
	); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}

	// Lock the user row so concurrent operations for the same user serialise.
	if _, err := tx.Exec(ctx, `SELECT 1 FROM users WHERE user_id = $1 FOR UPDATE`, userID); err != nil {
		return fmt.Errorf("lock user: %w", err)
	}

	if err := fn(ctx, s.bind(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
