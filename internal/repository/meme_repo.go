package repository

import (
	"context"
	"errors"

	"tavern_bot/internal/domain"

	"github.com/jackc/pgx/v5"
)

type MemeRepository struct {
	db DBTX
}

func NewMemeRepository(db DBTX) *MemeRepository {
	return &MemeRepository{db: db}
}

const memeColumns = `id, keyword, name, content, created_by, created_at`

func (r *MemeRepository) Create(ctx context.Context, m *domain.Meme) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO memes (keyword, name, content, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		m.Keyword, m.Name, m.Content, m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *MemeRepository) GetByID(ctx context.Context, id int64) (*domain.Meme, error) {
	var m domain.Meme
	err := r.db.QueryRow(ctx, `SELECT `+memeColumns+` FROM memes WHERE id = $1`, id).
		Scan(&m.ID, &m.Keyword, &m.Name, &m.Content, &m.CreatedBy, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMemeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemeRepository) ListByKeyword(ctx context.Context, keyword string) ([]domain.Meme, error) {
	return r.list(ctx, `SELECT `+memeColumns+` FROM memes WHERE keyword = $1 ORDER BY id`, keyword)
}

func (r *MemeRepository) ListByName(ctx context.Context, name string) ([]domain.Meme, error) {
	return r.list(ctx, `SELECT `+memeColumns+` FROM memes WHERE name = $1 ORDER BY id`, name)
}

func (r *MemeRepository) ListByCreator(ctx context.Context, userID string, limit int) ([]domain.Meme, error) {
	return r.list(ctx,
		`SELECT `+memeColumns+` FROM memes WHERE created_by = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		userID, limit,
	)
}

func (r *MemeRepository) Update(ctx context.Context, m *domain.Meme) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE memes SET keyword = $2, name = $3, content = $4 WHERE id = $1`,
		m.ID, m.Keyword, m.Name, m.Content,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemeNotFound
	}
	return nil
}

func (r *MemeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM memes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMemeNotFound
	}
	return nil
}

func (r *MemeRepository) list(ctx context.Context, sql string, args ...any) ([]domain.Meme, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Meme
	for rows.Next() {
		var m domain.Meme
		if err := rows.Scan(&m.ID, &m.Keyword, &m.Name, &m.Content, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}
