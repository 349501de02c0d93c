package service

import (
	"context"
	"testing"
	"time"

	"tavern_bot/internal/catalog"
	"tavern_bot/internal/domain"
	"tavern_bot/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateDurationHigherPotencyReplaces(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBuffs(clock.Now)
	store := memory.New(1000).Repos().Buffs

	_, err := b.ActivateDuration(ctx, store, "u1", domain.BuffDailyBoost, catalog.ItemHouseStew, 1.25, 1)
	require.NoError(t, err)
	clock.Advance(time.Hour)
	got, err := b.ActivateDuration(ctx, store, "u1", domain.BuffDailyBoost, catalog.ItemFineStew, 1.5, 1)
	require.NoError(t, err)

	assert.Equal(t, 1.5, got.Multiplier)
	assert.Equal(t, clock.Now().Add(24*time.Hour), *got.ExpiresAt)
}

func TestActivateDurationWeakerKeepsPotencyRefreshesExpiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBuffs(clock.Now)
	store := memory.New(1000).Repos().Buffs

	_, err := b.ActivateDuration(ctx, store, "u1", domain.BuffDailyBoost, catalog.ItemFineStew, 1.5, 1)
	require.NoError(t, err)
	clock.Advance(6 * time.Hour)
	_, err = b.ActivateDuration(ctx, store, "u1", domain.BuffDailyBoost, catalog.ItemHouseStew, 1.25, 1)
	require.NoError(t, err)

	cur, err := store.Get(ctx, "u1", domain.BuffDailyBoost)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cur.Multiplier)
	assert.Equal(t, clock.Now().Add(24*time.Hour), *cur.ExpiresAt)
	assert.Equal(t, catalog.ItemHouseStew, cur.ItemID)
}

func TestActivateDurationAfterExpiryTakesNewPotency(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBuffs(clock.Now)
	store := memory.New(1000).Repos().Buffs

	_, err := b.ActivateDuration(ctx, store, "u1", domain.BuffDailyBoost, 0, 2.0, 1)
	require.NoError(t, err)
	clock.Advance(48 * time.Hour)
	got, err := b.ActivateDuration(ctx, store, "u1", domain.BuffDailyBoost, 0, 1.25, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.25, got.Multiplier)
}

func TestActivateDurationValidation(t *testing.T) {
	b := NewBuffs(nil)
	store := memory.New(1000).Repos().Buffs

	_, err := b.ActivateDuration(context.Background(), store, "u1", domain.BuffDailyBoost, 0, 0.5, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidBuffRequest)
	_, err = b.ActivateDuration(context.Background(), store, "u1", domain.BuffDailyBoost, 0, 1.5, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidBuffRequest)
}

func TestHasActiveExpiresLazily(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBuffs(clock.Now)
	store := memory.New(1000).Repos().Buffs

	_, err := b.ActivateDuration(ctx, store, "u1", domain.BuffDailyBoost, 0, 1.5, 1)
	require.NoError(t, err)

	ok, err := b.HasActive(ctx, store, "u1", domain.BuffDailyBoost)
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Advance(25 * time.Hour)
	ok, err = b.HasActive(ctx, store, "u1", domain.BuffDailyBoost)
	require.NoError(t, err)
	assert.False(t, ok)

	raw, err := store.Get(ctx, "u1", domain.BuffDailyBoost)
	require.NoError(t, err)
	assert.Nil(t, raw, "expired row is deleted")
}

func TestConsumeOneShot(t *testing.T) {
	ctx := context.Background()
	b := NewBuffs(nil)
	store := memory.New(1000).Repos().Buffs

	require.NoError(t, b.ActivateOneShot(ctx, store, "u1", domain.BuffLuckyBeer, catalog.ItemLuckyBeer))
	got, err := b.ConsumeOneShot(ctx, store, "u1", domain.BuffLuckyBeer)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.OneShot())

	got, err = b.ConsumeOneShot(ctx, store, "u1", domain.BuffLuckyBeer)
	require.NoError(t, err)
	assert.Nil(t, got)

	// duration buffs are reported but kept
	_, err = b.ActivateDuration(ctx, store, "u1", domain.BuffDailyBoost, 0, 1.5, 1)
	require.NoError(t, err)
	got, err = b.ConsumeOneShot(ctx, store, "u1", domain.BuffDailyBoost)
	require.NoError(t, err)
	require.NotNil(t, got)
	ok, err := b.HasActive(ctx, store, "u1", domain.BuffDailyBoost)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListActiveAnnotates(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBuffs(clock.Now)
	repos := memory.New(1000).Repos()

	_, err := b.ActivateDuration(ctx, repos.Buffs, "u1", domain.BuffDailyBoost, catalog.ItemFineStew, 1.5, 3)
	require.NoError(t, err)
	require.NoError(t, b.ActivateOneShot(ctx, repos.Buffs, "u1", domain.BuffLuckyBeer, catalog.ItemLuckyBeer))
	clock.Advance(30 * time.Hour)

	list, err := b.ListActive(ctx, repos.Buffs, repos.Items, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	byType := map[domain.BuffType]domain.ActiveBuff{}
	for _, ab := range list {
		byType[ab.Type] = ab
	}
	assert.Equal(t, 2, byType[domain.BuffDailyBoost].RemainingDays)
	assert.Equal(t, "Fine Tavern Stew", byType[domain.BuffDailyBoost].Name)
	assert.Equal(t, 0, byType[domain.BuffLuckyBeer].RemainingDays)
	assert.Equal(t, "🍺", byType[domain.BuffLuckyBeer].Emoji)

	clock.Advance(72 * time.Hour)
	list, err = b.ListActive(ctx, repos.Buffs, repos.Items, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.BuffLuckyBeer, list[0].Type)
}
