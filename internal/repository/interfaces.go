package repository

import (
	"context"
	"time"

	"tavern_bot/internal/domain"
)

// Ledger stores per-user balances, activity counters and the check-in date.
type Ledger interface {
	// GetOrCreate returns the user, inserting a default row on first reference.
	GetOrCreate(ctx context.Context, userID string) (*domain.User, error)
	// AdjustBalance applies balance += delta with no floor; callers validate funds.
	AdjustBalance(ctx context.Context, userID string, delta int64) (int64, error)
	// Checkin sets the check-in day and credits reward, or fails with domain.ErrAlreadyCheckedIn.
	Checkin(ctx context.Context, userID, day string, reward int64) (int64, error)
	IncrementChatCount(ctx context.Context, userID string) error
	AddVoiceSeconds(ctx context.Context, userID string, seconds int64) error
	Ranking(ctx context.Context, kind domain.RankingKind, limit int) ([]domain.RankingEntry, error)
	Overview(ctx context.Context) (*domain.Overview, error)
}

// Inventory stores item quantities per (user, item). Rows never hold quantity 0.
type Inventory interface {
	Quantity(ctx context.Context, userID string, itemID int64) (int, error)
	Has(ctx context.Context, userID string, itemID int64) (bool, error)
	// Add upserts and returns the new quantity.
	Add(ctx context.Context, userID string, itemID int64, n int) (int, error)
	// Consume removes n units or fails with domain.ErrNotEnoughItems; returns what is left.
	Consume(ctx context.Context, userID string, itemID int64, n int) (int, error)
	List(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
}

// BuffStore is the raw per-(user, type) buff table. Merge and expiry rules live in service.Buffs.
type BuffStore interface {
	// Get returns nil without error when the user has no buff of that type.
	Get(ctx context.Context, userID string, t domain.BuffType) (*domain.Buff, error)
	// Put inserts or replaces the row for (b.UserID, b.Type).
	Put(ctx context.Context, b *domain.Buff) error
	Delete(ctx context.Context, userID string, t domain.BuffType) error
	DeleteExpired(ctx context.Context, userID string, now time.Time) (int64, error)
	List(ctx context.Context, userID string) ([]domain.Buff, error)
}

// Catalog is the read side of the shop.
type Catalog interface {
	// Get fails with domain.ErrItemNotFound for unknown ids, available or not.
	Get(ctx context.Context, itemID int64) (*domain.ShopItem, error)
	// List returns available items ordered by category and price; empty category means all.
	List(ctx context.Context, category domain.ItemCategory) ([]domain.ShopItem, error)
}

type Memes interface {
	Create(ctx context.Context, m *domain.Meme) error
	// GetByID fails with domain.ErrMemeNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Meme, error)
	ListByKeyword(ctx context.Context, keyword string) ([]domain.Meme, error)
	ListByName(ctx context.Context, name string) ([]domain.Meme, error)
	ListByCreator(ctx context.Context, userID string, limit int) ([]domain.Meme, error)
	Update(ctx context.Context, m *domain.Meme) error
	Delete(ctx context.Context, id int64) error
}

type Transactions interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	// ListByUser returns newest first; an empty txType matches every type.
	ListByUser(ctx context.Context, userID, txType string, limit int) ([]*domain.Transaction, error)
}

// Repos bundles the economy repositories bound to one connection or transaction.
type Repos struct {
	Users        Ledger
	Inventory    Inventory
	Buffs        BuffStore
	Items        Catalog
	Transactions Transactions
}

// Store is the persistence root.
type Store interface {
	// Repos returns repositories outside any transaction.
	Repos() Repos
	Memes() Memes
	// WithinUserTx runs fn in one transaction holding the user's row lock.
	// The user row is created first if missing. A non-nil error from fn rolls everything back.
	WithinUserTx(ctx context.Context, userID string, fn func(ctx context.Context, r Repos) error) error
	Ping(ctx context.Context) error
	Close()
}
