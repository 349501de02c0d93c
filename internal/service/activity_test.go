package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tavern_bot/internal/cache"
	"tavern_bot/internal/domain"
	"tavern_bot/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProfiles struct {
	calls int
	fail  bool
}

func (s *stubProfiles) LookupProfile(ctx context.Context, userID string) (*domain.DiscordProfile, error) {
	s.calls++
	if s.fail {
		return nil, errors.New("discord down")
	}
	return &domain.DiscordProfile{ID: userID, Username: "user-" + userID, DisplayName: "User " + userID}, nil
}

func TestVoiceSessionCredited(t *testing.T) {
	ctx := context.Background()
	store := memory.New(1000)
	c := cache.NewMemoryCache(0)
	defer c.Close()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewActivityService(store, c, clock.Now)

	require.NoError(t, s.VoiceJoin(ctx, "u1"))
	clock.Advance(90 * time.Second)
	// rejoin while already tracked keeps the original start
	require.NoError(t, s.VoiceJoin(ctx, "u1"))
	clock.Advance(30 * time.Second)

	d, err := s.VoiceLeave(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	u, err := store.Repos().Users.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(120), u.VoiceSeconds)

	d, err = s.VoiceLeave(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, d, "leave without join credits nothing")
}

func TestLongVoiceSessionIsCapped(t *testing.T) {
	ctx := context.Background()
	store := memory.New(1000)
	c := cache.NewMemoryCache(0)
	defer c.Close()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewActivityService(store, c, clock.Now)

	require.NoError(t, s.VoiceJoin(ctx, "u1"))
	clock.Advance(30 * time.Hour)

	d, err := s.VoiceLeave(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, maxVoiceSession, d)

	u, err := store.Repos().Users.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(maxVoiceSession/time.Second), u.VoiceSeconds)
}

func TestStaleVoiceJoinRestarts(t *testing.T) {
	ctx := context.Background()
	store := memory.New(1000)
	c := cache.NewMemoryCache(0)
	defer c.Close()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := NewActivityService(store, c, clock.Now)

	// the leave for this join never arrives
	require.NoError(t, s.VoiceJoin(ctx, "u1"))
	clock.Advance(3 * 24 * time.Hour)

	require.NoError(t, s.VoiceJoin(ctx, "u1"))
	clock.Advance(time.Hour)

	d, err := s.VoiceLeave(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)
}

func TestRankingEnrichedAndClamped(t *testing.T) {
	ctx := context.Background()
	store := memory.New(1000)
	c := cache.NewMemoryCache(0)
	defer c.Close()
	s := NewActivityService(store, c, nil)
	profiles := &stubProfiles{}
	s.SetProfileLookup(profiles)

	require.NoError(t, s.RecordMessage(ctx, "a"))
	require.NoError(t, s.RecordMessage(ctx, "a"))
	require.NoError(t, s.RecordMessage(ctx, "b"))

	top, err := s.Ranking(ctx, domain.RankingChat, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].UserID)
	require.NotNil(t, top[0].Profile)
	assert.Equal(t, "User a", top[0].Profile.DisplayName)

	_, err = s.Ranking(ctx, domain.RankingChat, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, profiles.calls, "profiles are cached")

	_, err = s.Ranking(ctx, "gold", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, DefaultRankingLimit, ClampLimit(0))
	assert.Equal(t, MaxRankingLimit, ClampLimit(500))
	assert.Equal(t, 7, ClampLimit(7))
}

func TestRankingSurvivesProfileFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.New(1000)
	c := cache.NewMemoryCache(0)
	defer c.Close()
	s := NewActivityService(store, c, nil)
	s.SetProfileLookup(&stubProfiles{fail: true})

	require.NoError(t, s.RecordMessage(ctx, "a"))
	top, err := s.Ranking(ctx, domain.RankingChat, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Nil(t, top[0].Profile)
}
