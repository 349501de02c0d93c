// Package memory is an in-process repository.Store used by tests and by STORE_DRIVER=memory.
// All state sits behind one mutex; WithinUserTx holds it for the whole callback and
// restores a snapshot when the callback fails.
package memory

import (
	"context"
	"sync"
	"time"

	"tavern_bot/internal/catalog"
	"tavern_bot/internal/domain"
	"tavern_bot/internal/repository"
)

type invKey struct {
	userID string
	itemID int64
}

type buffKey struct {
	userID string
	t      domain.BuffType
}

type state struct {
	users     map[string]*domain.User
	inventory map[invKey]int
	buffs     map[buffKey]domain.Buff
	items     map[int64]domain.ShopItem
	memes     map[int64]*domain.Meme
	txs       []*domain.Transaction
	memeSeq   int64
	txSeq     int64
}

func (s *state) clone() *state {
	c := &state{
		users:     make(map[string]*domain.User, len(s.users)),
		inventory: make(map[invKey]int, len(s.inventory)),
		buffs:     make(map[buffKey]domain.Buff, len(s.buffs)),
		items:     s.items,
		memes:     s.memes,
		txs:       append([]*domain.Transaction(nil), s.txs...),
		memeSeq:   s.memeSeq,
		txSeq:     s.txSeq,
	}
	for k, u := range s.users {
		cp := *u
		c.users[k] = &cp
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	for k, v := range s.buffs {
		c.buffs[k] = v
	}
	return c
}

// Store implements repository.Store in memory.
type Store struct {
	mu              sync.Mutex
	st              *state
	startingBalance int64
	now             func() time.Time
}

var _ repository.Store = (*Store)(nil)

// New returns a store seeded with catalog.Default().
func New(startingBalance int64) *Store {
	return NewWithItems(startingBalance, catalog.Default())
}

func NewWithItems(startingBalance int64, items []domain.ShopItem) *Store {
	st := &state{
		users:     map[string]*domain.User{},
		inventory: map[invKey]int{},
		buffs:     map[buffKey]domain.Buff{},
		items:     map[int64]domain.ShopItem{},
		memes:     map[int64]*domain.Meme{},
	}
	for _, it := range items {
		st.items[it.ID] = it
	}
	return &Store{st: st, startingBalance: startingBalance, now: time.Now}
}

// SetClock replaces the timestamp source for created_at fields.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) bind(inTx bool) repoSet {
	return repoSet{s: s, inTx: inTx}
}

func (s *Store) Repos() repository.Repos {
	return s.bind(false).asRepos()
}

func (s *Store) Memes() repository.Memes {
	return &memeRepo{s: s}
}

func (s *Store) WithinUserTx(ctx context.Context, userID string, fn func(ctx context.Context, r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	s.ensureUser(userID)

	if err := fn(ctx, s.bind(true).asRepos()); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() {}

// lock acquires the store mutex unless the caller already holds it inside WithinUserTx.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ensureUser must be called with the mutex held.
func (s *Store) ensureUser(userID string) *domain.User {
	u, ok := s.st.users[userID]
	if !ok {
		u = &domain.User{ID: userID, Balance: s.startingBalance, CreatedAt: s.now()}
		s.st.users[userID] = u
	}
	return u
}

// repoSet is the set of memory repositories sharing one lock mode.
type repoSet struct {
	s    *Store
	inTx bool
}

func (r repoSet) asRepos() repository.Repos {
	return repository.Repos{
		Users:        &ledger{r},
		Inventory:    &inventory{r},
		Buffs:        &buffs{r},
		Items:        &items{r},
		Transactions: &transactions{r},
	}
}
