package service

import (
	"context"
	"strings"
	"testing"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func newMemeService() *MemeService {
	return NewMemeService(memory.New(1000).Memes())
}

func TestMemeSaveAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newMemeService()

	m, err := s.Save(ctx, " hello ", "hi there", "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", m.Keyword)
	assert.Nil(t, m.Name)

	_, err = s.Save(ctx, "hello", "second", "u2", "bob")
	require.NoError(t, err)

	list, err := s.ByKeyword(ctx, "hello")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = s.ByKeyword(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrMemeNotFound)

	_, err = s.Save(ctx, "", "x", "u1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMemeRandomByName(t *testing.T) {
	ctx := context.Background()
	s := newMemeService()
	s.pick = func(n int) int { return n - 1 }

	_, err := s.Save(ctx, "a", "first", "u1", "bob")
	require.NoError(t, err)
	last, err := s.Save(ctx, "b", "second", "u1", "bob")
	require.NoError(t, err)

	got, total, err := s.RandomByName(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, last.ID, got.ID)

	_, _, err = s.RandomByName(ctx, "alice")
	assert.ErrorIs(t, err, domain.ErrNoMemesByName)
}

func TestMemeEdit(t *testing.T) {
	ctx := context.Background()
	s := newMemeService()
	m, err := s.Save(ctx, "kw", "content", "u1", "bob")
	require.NoError(t, err)

	_, _, err = s.Edit(ctx, m.ID, "u1", domain.MemeEdit{})
	assert.ErrorIs(t, err, domain.ErrNothingToUpdate)

	before, after, err := s.Edit(ctx, m.ID, "u1", domain.MemeEdit{Content: strp("new content")})
	require.NoError(t, err)
	assert.Equal(t, "content", before.Content)
	assert.Equal(t, "new content", after.Content)
	assert.Equal(t, "kw", after.Keyword)
	require.NotNil(t, after.Name)

	_, after, err = s.Edit(ctx, m.ID, "u1", domain.MemeEdit{Name: strp("")})
	require.NoError(t, err)
	assert.Nil(t, after.Name)

	_, _, err = s.Edit(ctx, 999, "u1", domain.MemeEdit{Content: strp("x")})
	assert.ErrorIs(t, err, domain.ErrMemeNotFound)
}

func TestMemeEditValidatesLikeSave(t *testing.T) {
	ctx := context.Background()
	s := newMemeService()
	m, err := s.Save(ctx, "kw", "content", "u1", "")
	require.NoError(t, err)

	_, _, err = s.Edit(ctx, m.ID, "u1", domain.MemeEdit{Content: strp(strings.Repeat("a", MaxContentLen+1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = s.Edit(ctx, m.ID, "u1", domain.MemeEdit{Keyword: strp(strings.Repeat("k", MaxKeywordLen+1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = s.Edit(ctx, m.ID, "u1", domain.MemeEdit{Keyword: strp("   ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = s.Edit(ctx, m.ID, "u1", domain.MemeEdit{Content: strp(" \t\n ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := s.ByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "kw", stored.Keyword)
	assert.Equal(t, "content", stored.Content)

	_, after, err := s.Edit(ctx, m.ID, "u1", domain.MemeEdit{Keyword: strp("  other  "), Content: strp(" padded ")})
	require.NoError(t, err)
	assert.Equal(t, "other", after.Keyword)
	assert.Equal(t, "padded", after.Content)
}

func TestMemeNonOwnerCannotChange(t *testing.T) {
	ctx := context.Background()
	s := newMemeService()
	m, err := s.Save(ctx, "kw", "content", "owner", "")
	require.NoError(t, err)

	_, _, err = s.Edit(ctx, m.ID, "intruder", domain.MemeEdit{Content: strp("hacked")})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = s.Delete(ctx, m.ID, "intruder")
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	got, err := s.ByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "content", got.Content)

	deleted, err := s.Delete(ctx, m.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, m.ID, deleted.ID)
	_, err = s.ByID(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrMemeNotFound)
}

func TestMemeListByCreatorNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newMemeService()
	for _, kw := range []string{"a", "b", "c"} {
		_, err := s.Save(ctx, kw, "x", "u1", "")
		require.NoError(t, err)
	}
	_, err := s.Save(ctx, "z", "x", "u2", "")
	require.NoError(t, err)

	list, err := s.ListByCreator(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Keyword)

	empty, err := s.ListByCreator(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
