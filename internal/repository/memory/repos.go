package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tavern_bot/internal/domain"
)

type ledger struct{ repoSet }

func (r *ledger) GetOrCreate(ctx context.Context, userID string) (*domain.User, error) {
	defer r.s.lock(r.inTx)()
	u := *r.s.ensureUser(userID)
	return &u, nil
}

func (r *ledger) AdjustBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	defer r.s.lock(r.inTx)()
	u := r.s.ensureUser(userID)
	u.Balance += delta
	return u.Balance, nil
}

func (r *ledger) Checkin(ctx context.Context, userID, day string, reward int64) (int64, error) {
	defer r.s.lock(r.inTx)()
	u := r.s.ensureUser(userID)
	if u.CheckedInOn(day) {
		return 0, domain.ErrAlreadyCheckedIn
	}
	d := day
	u.LastDailyCheckin = &d
	u.Balance += reward
	return u.Balance, nil
}

func (r *ledger) IncrementChatCount(ctx context.Context, userID string) error {
	defer r.s.lock(r.inTx)()
	r.s.ensureUser(userID).ChatCount++
	return nil
}

func (r *ledger) AddVoiceSeconds(ctx context.Context, userID string, seconds int64) error {
	defer r.s.lock(r.inTx)()
	r.s.ensureUser(userID).VoiceSeconds += seconds
	return nil
}

func (r *ledger) Ranking(ctx context.Context, kind domain.RankingKind, limit int) ([]domain.RankingEntry, error) {
	var value func(*domain.User) int64
	switch kind {
	case domain.RankingChat:
		value = func(u *domain.User) int64 { return u.ChatCount }
	case domain.RankingVoice:
		value = func(u *domain.User) int64 { return u.VoiceSeconds }
	default:
		return nil, fmt.Errorf("unknown ranking kind %q", kind)
	}

	defer r.s.lock(r.inTx)()
	var res []domain.RankingEntry
	for _, u := range r.s.st.users {
		if v := value(u); v > 0 {
			res = append(res, domain.RankingEntry{UserID: u.ID, Value: v})
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Value != res[j].Value {
			return res[i].Value > res[j].Value
		}
		return res[i].UserID < res[j].UserID
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	for i := range res {
		res[i].Rank = i + 1
	}
	return res, nil
}

func (r *ledger) Overview(ctx context.Context) (*domain.Overview, error) {
	defer r.s.lock(r.inTx)()
	o := &domain.Overview{
		TotalUsers: int64(len(r.s.st.users)),
		TotalMemes: int64(len(r.s.st.memes)),
	}
	for _, u := range r.s.st.users {
		o.TotalBalance += u.Balance
		o.TotalChatCount += u.ChatCount
		o.TotalVoiceTime += u.VoiceSeconds
	}
	return o, nil
}

type inventory struct{ repoSet }

func (r *inventory) Quantity(ctx context.Context, userID string, itemID int64) (int, error) {
	defer r.s.lock(r.inTx)()
	return r.s.st.inventory[invKey{userID, itemID}], nil
}

func (r *inventory) Has(ctx context.Context, userID string, itemID int64) (bool, error) {
	q, err := r.Quantity(ctx, userID, itemID)
	return q > 0, err
}

func (r *inventory) Add(ctx context.Context, userID string, itemID int64, n int) (int, error) {
	if n <= 0 {
		return 0, domain.ErrInvalidInput
	}
	defer r.s.lock(r.inTx)()
	k := invKey{userID, itemID}
	r.s.st.inventory[k] += n
	return r.s.st.inventory[k], nil
}

func (r *inventory) Consume(ctx context.Context, userID string, itemID int64, n int) (int, error) {
	if n <= 0 {
		return 0, domain.ErrInvalidInput
	}
	defer r.s.lock(r.inTx)()
	k := invKey{userID, itemID}
	q := r.s.st.inventory[k]
	if q < n {
		return 0, domain.ErrNotEnoughItems
	}
	left := q - n
	if left == 0 {
		delete(r.s.st.inventory, k)
	} else {
		r.s.st.inventory[k] = left
	}
	return left, nil
}

func (r *inventory) List(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	defer r.s.lock(r.inTx)()
	var res []domain.InventoryEntry
	for k, q := range r.s.st.inventory {
		if k.userID != userID || q <= 0 {
			continue
		}
		it, ok := r.s.st.items[k.itemID]
		if !ok {
			continue
		}
		res = append(res, domain.InventoryEntry{UserID: userID, ItemID: k.itemID, Quantity: q, Item: it})
	}
	sort.Slice(res, func(i, j int) bool {
		ci, cj := categoryRank(res[i].Item.Category), categoryRank(res[j].Item.Category)
		if ci != cj {
			return ci < cj
		}
		return res[i].Item.Name < res[j].Item.Name
	})
	return res, nil
}

func categoryRank(c domain.ItemCategory) int {
	for i, o := range domain.CategoryOrder {
		if o == c {
			return i
		}
	}
	return len(domain.CategoryOrder)
}

type buffs struct{ repoSet }

func (r *buffs) Get(ctx context.Context, userID string, t domain.BuffType) (*domain.Buff, error) {
	defer r.s.lock(r.inTx)()
	b, ok := r.s.st.buffs[buffKey{userID, t}]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *buffs) Put(ctx context.Context, b *domain.Buff) error {
	defer r.s.lock(r.inTx)()
	b.CreatedAt = r.s.now()
	r.s.st.buffs[buffKey{b.UserID, b.Type}] = *b
	return nil
}

func (r *buffs) Delete(ctx context.Context, userID string, t domain.BuffType) error {
	defer r.s.lock(r.inTx)()
	delete(r.s.st.buffs, buffKey{userID, t})
	return nil
}

func (r *buffs) DeleteExpired(ctx context.Context, userID string, now time.Time) (int64, error) {
	defer r.s.lock(r.inTx)()
	var n int64
	for k, b := range r.s.st.buffs {
		if k.userID == userID && b.Expired(now) {
			delete(r.s.st.buffs, k)
			n++
		}
	}
	return n, nil
}

func (r *buffs) List(ctx context.Context, userID string) ([]domain.Buff, error) {
	defer r.s.lock(r.inTx)()
	var res []domain.Buff
	for k, b := range r.s.st.buffs {
		if k.userID == userID {
			res = append(res, b)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Type < res[j].Type })
	return res, nil
}

type items struct{ repoSet }

func (r *items) Get(ctx context.Context, itemID int64) (*domain.ShopItem, error) {
	defer r.s.lock(r.inTx)()
	it, ok := r.s.st.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return &it, nil
}

func (r *items) List(ctx context.Context, category domain.ItemCategory) ([]domain.ShopItem, error) {
	defer r.s.lock(r.inTx)()
	var res []domain.ShopItem
	for _, it := range r.s.st.items {
		if !it.Available || (category != "" && it.Category != category) {
			continue
		}
		res = append(res, it)
	}
	sort.Slice(res, func(i, j int) bool {
		ci, cj := categoryRank(res[i].Category), categoryRank(res[j].Category)
		if ci != cj {
			return ci < cj
		}
		if res[i].Price != res[j].Price {
			return res[i].Price < res[j].Price
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

type transactions struct{ repoSet }

func (r *transactions) Create(ctx context.Context, tx *domain.Transaction) error {
	defer r.s.lock(r.inTx)()
	r.s.st.txSeq++
	tx.ID = r.s.st.txSeq
	tx.CreatedAt = r.s.now()
	cp := *tx
	r.s.st.txs = append(r.s.st.txs, &cp)
	return nil
}

func (r *transactions) ListByUser(ctx context.Context, userID, txType string, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	defer r.s.lock(r.inTx)()
	var res []*domain.Transaction
	for i := len(r.s.st.txs) - 1; i >= 0 && len(res) < limit; i-- {
		if t := r.s.st.txs[i]; t.UserID == userID && (txType == "" || t.Type == txType) {
			cp := *t
			res = append(res, &cp)
		}
	}
	return res, nil
}

type memeRepo struct {
	s *Store
}

func (r *memeRepo) Create(ctx context.Context, m *domain.Meme) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.st.memeSeq++
	m.ID = r.s.st.memeSeq
	m.CreatedAt = r.s.now()
	cp := *m
	r.s.st.memes[m.ID] = &cp
	return nil
}

func (r *memeRepo) GetByID(ctx context.Context, id int64) (*domain.Meme, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.st.memes[id]
	if !ok {
		return nil, domain.ErrMemeNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memeRepo) ListByKeyword(ctx context.Context, keyword string) ([]domain.Meme, error) {
	return r.filter(func(m *domain.Meme) bool { return m.Keyword == keyword }, 0, false), nil
}

func (r *memeRepo) ListByName(ctx context.Context, name string) ([]domain.Meme, error) {
	return r.filter(func(m *domain.Meme) bool { return m.Name != nil && *m.Name == name }, 0, false), nil
}

func (r *memeRepo) ListByCreator(ctx context.Context, userID string, limit int) ([]domain.Meme, error) {
	return r.filter(func(m *domain.Meme) bool { return m.CreatedBy == userID }, limit, true), nil
}

func (r *memeRepo) Update(ctx context.Context, m *domain.Meme) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.memes[m.ID]; !ok {
		return domain.ErrMemeNotFound
	}
	cp := *m
	r.s.st.memes[m.ID] = &cp
	return nil
}

func (r *memeRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.memes[id]; !ok {
		return domain.ErrMemeNotFound
	}
	delete(r.s.st.memes, id)
	return nil
}

func (r *memeRepo) filter(match func(*domain.Meme) bool, limit int, newestFirst bool) []domain.Meme {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []domain.Meme
	for _, m := range r.s.st.memes {
		if match(m) {
			res = append(res, *m)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if newestFirst {
			return res[i].ID > res[j].ID
		}
		return res[i].ID < res[j].ID
	})
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res
}
