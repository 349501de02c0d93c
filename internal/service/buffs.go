package service

import (
	"context"
	"time"

	"tavern_bot/internal/catalog"
	"tavern_bot/internal/domain"
	"tavern_bot/internal/repository"
)

const day = 24 * time.Hour

// Buffs applies the activation, merge and expiry rules on top of a BuffStore.
// It is stateless; callers pass the store bound to their transaction.
type Buffs struct {
	now func() time.Time
}

func NewBuffs(now func() time.Time) *Buffs {
	if now == nil {
		now = time.Now
	}
	return &Buffs{now: now}
}

// ActivateOneShot replaces any buff of type t with a one-shot buff.
// Callers check HasActive first when re-activation should be refused.
func (b *Buffs) ActivateOneShot(ctx context.Context, store repository.BuffStore, userID string, t domain.BuffType, itemID int64) error {
	return store.Put(ctx, &domain.Buff{UserID: userID, Type: t, ItemID: itemID, Multiplier: 1.0})
}

// ActivateDuration sets expiry to now+days. An unexpired buff of equal or higher
// multiplier keeps its multiplier and only has its expiry refreshed.
func (b *Buffs) ActivateDuration(ctx context.Context, store repository.BuffStore, userID string, t domain.BuffType, itemID int64, multiplier float64, days int) (*domain.Buff, error) {
	if multiplier < 1 || days < 1 {
		return nil, domain.ErrInvalidBuffRequest
	}
	now := b.now()
	expires := now.Add(time.Duration(days) * day)

	next := &domain.Buff{UserID: userID, Type: t, ItemID: itemID, Multiplier: multiplier, ExpiresAt: &expires}

	cur, err := store.Get(ctx, userID, t)
	if err != nil {
		return nil, err
	}
	if cur != nil && !cur.OneShot() && !cur.Expired(now) && cur.Multiplier >= multiplier {
		next.Multiplier = cur.Multiplier
	}

	if err := store.Put(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Active returns the live buff of type t, deleting it first if it has expired.
func (b *Buffs) Active(ctx context.Context, store repository.BuffStore, userID string, t domain.BuffType) (*domain.Buff, error) {
	cur, err := store.Get(ctx, userID, t)
	if err != nil || cur == nil {
		return nil, err
	}
	if cur.Expired(b.now()) {
		if err := store.Delete(ctx, userID, t); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return cur, nil
}

func (b *Buffs) HasActive(ctx context.Context, store repository.BuffStore, userID string, t domain.BuffType) (bool, error) {
	cur, err := b.Active(ctx, store, userID, t)
	return cur != nil, err
}

// ConsumeOneShot deletes and returns a one-shot buff. Duration buffs are
// returned untouched; nil means there was nothing active.
func (b *Buffs) ConsumeOneShot(ctx context.Context, store repository.BuffStore, userID string, t domain.BuffType) (*domain.Buff, error) {
	cur, err := b.Active(ctx, store, userID, t)
	if err != nil || cur == nil {
		return nil, err
	}
	if cur.OneShot() {
		if err := store.Delete(ctx, userID, t); err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// ListActive purges the user's expired buffs and annotates the rest for display.
func (b *Buffs) ListActive(ctx context.Context, store repository.BuffStore, items repository.Catalog, userID string) ([]domain.ActiveBuff, error) {
	now := b.now()
	if _, err := store.DeleteExpired(ctx, userID, now); err != nil {
		return nil, err
	}
	list, err := store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.ActiveBuff, 0, len(list))
	for _, buff := range list {
		ab := domain.ActiveBuff{Buff: buff, RemainingDays: domain.RemainingDays(&buff, now)}
		if it, err := items.Get(ctx, buff.ItemID); err == nil {
			ab.Name, ab.Emoji = it.Name, it.Emoji
		} else {
			ab.Name = catalog.BuffDescriptions[buff.Type]
		}
		res = append(res, ab)
	}
	return res, nil
}
