package repository

import (
	"context"
	"errors"
	"time"

	"tavern_bot/internal/domain"

	"github.com/jackc/pgx/v5"
)

type BuffRepository struct {
	db DBTX
}

func NewBuffRepository(db DBTX) *BuffRepository {
	return &BuffRepository{db: db}
}

const buffColumns = `user_id, buff_type, item_id, multiplier, expires_at, created_at`

func (r *BuffRepository) Get(ctx context.Context, userID string, t domain.BuffType) (*domain.Buff, error) {
	var b domain.Buff
	err := r.db.QueryRow(ctx,
		`SELECT `+buffColumns+` FROM user_buffs WHERE user_id = $1 AND buff_type = $2`,
		userID, t,
	).Scan(&b.UserID, &b.Type, &b.ItemID, &b.Multiplier, &b.ExpiresAt, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BuffRepository) Put(ctx context.Context, b *domain.Buff) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO user_buffs (user_id, buff_type, item_id, multiplier, expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, buff_type) DO UPDATE
		 SET item_id = EXCLUDED.item_id, multiplier = EXCLUDED.multiplier,
		     expires_at = EXCLUDED.expires_at, created_at = NOW()
		 RETURNING created_at`,
		b.UserID, b.Type, b.ItemID, b.Multiplier, b.ExpiresAt,
	).Scan(&b.CreatedAt)
}

func (r *BuffRepository) Delete(ctx context.Context, userID string, t domain.BuffType) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_buffs WHERE user_id = $1 AND buff_type = $2`, userID, t)
	return err
}

func (r *BuffRepository) DeleteExpired(ctx context.Context, userID string, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM user_buffs WHERE user_id = $1 AND expires_at IS NOT NULL AND expires_at < $2`,
		userID, now,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *BuffRepository) List(ctx context.Context, userID string) ([]domain.Buff, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+buffColumns+` FROM user_buffs WHERE user_id = $1 ORDER BY buff_type`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Buff
	for rows.Next() {
		var b domain.Buff
		if err := rows.Scan(&b.UserID, &b.Type, &b.ItemID, &b.Multiplier, &b.ExpiresAt, &b.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}
