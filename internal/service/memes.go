package service

import (
	"context"
	"math/rand"
	"strings"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/repository"
)

const (
	MaxKeywordLen = 100
	MaxContentLen = 2000
	MyMemesLimit  = 50
)

type MemeService struct {
	memes repository.Memes
	pick  func(n int) int
}

func NewMemeService(memes repository.Memes) *MemeService {
	return &MemeService{memes: memes, pick: rand.Intn}
}

// Save archives content under keyword. An empty name is stored as no name.
func (s *MemeService) Save(ctx context.Context, keyword, content, createdBy, name string) (*domain.Meme, error) {
	keyword = strings.TrimSpace(keyword)
	content = strings.TrimSpace(content)
	if err := validateMeme(keyword, content); err != nil {
		return nil, err
	}

	m := &domain.Meme{Keyword: keyword, Content: content, CreatedBy: createdBy}
	if n := strings.TrimSpace(name); n != "" {
		m.Name = &n
	}
	if err := s.memes.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// ByKeyword returns every entry saved under keyword, oldest first.
func (s *MemeService) ByKeyword(ctx context.Context, keyword string) ([]domain.Meme, error) {
	list, err := s.memes.ListByKeyword(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrMemeNotFound.Withf("Nothing is saved under %q.", keyword)
	}
	return list, nil
}

// RandomByName picks one entry saved for a person.
func (s *MemeService) RandomByName(ctx context.Context, name string) (*domain.Meme, int, error) {
	list, err := s.memes.ListByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, 0, err
	}
	if len(list) == 0 {
		return nil, 0, domain.ErrNoMemesByName.Withf("Nothing is saved for %q.", name)
	}
	m := list[s.pick(len(list))]
	return &m, len(list), nil
}

func (s *MemeService) ByID(ctx context.Context, id int64) (*domain.Meme, error) {
	return s.memes.GetByID(ctx, id)
}

// Edit applies the non-empty fields of e. A non-nil empty Name clears the name.
// It returns the entry before and after the change.
func (s *MemeService) Edit(ctx context.Context, id int64, userID string, e domain.MemeEdit) (before, after *domain.Meme, err error) {
	if e.Empty() {
		return nil, nil, domain.ErrNothingToUpdate
	}
	before, err = s.owned(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}

	next := *before
	if e.Content != nil && *e.Content != "" {
		next.Content = strings.TrimSpace(*e.Content)
	}
	if e.Keyword != nil && *e.Keyword != "" {
		next.Keyword = strings.TrimSpace(*e.Keyword)
	}
	if e.Name != nil {
		if n := strings.TrimSpace(*e.Name); n == "" {
			next.Name = nil
		} else {
			next.Name = &n
		}
	}
	if err := validateMeme(next.Keyword, next.Content); err != nil {
		return nil, nil, err
	}

	if err := s.memes.Update(ctx, &next); err != nil {
		return nil, nil, err
	}
	return before, &next, nil
}

// Delete removes an entry the user saved and returns it.
func (s *MemeService) Delete(ctx context.Context, id int64, userID string) (*domain.Meme, error) {
	m, err := s.owned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if err := s.memes.Delete(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemeService) ListByCreator(ctx context.Context, userID string) ([]domain.Meme, error) {
	list, err := s.memes.ListByCreator(ctx, userID, MyMemesLimit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.Meme{}
	}
	return list, nil
}

// validateMeme checks already trimmed keyword and content.
func validateMeme(keyword, content string) error {
	if keyword == "" || content == "" {
		return domain.ErrInvalidInput.Withf("Keyword and content are required.")
	}
	if len(keyword) > MaxKeywordLen || len(content) > MaxContentLen {
		return domain.ErrInvalidInput.Withf("Keyword must be at most %d and content at most %d characters.", MaxKeywordLen, MaxContentLen)
	}
	return nil
}

func (s *MemeService) owned(ctx context.Context, id int64, userID string) (*domain.Meme, error) {
	m, err := s.memes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.CreatedBy != userID {
		return nil, domain.ErrNotOwner
	}
	return m, nil
}
