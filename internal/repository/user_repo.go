package repository

import (
	"context"
	"errors"
	"fmt"

	"tavern_bot/internal/domain"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db              DBTX
	startingBalance int64
}

func NewUserRepository(db DBTX, startingBalance int64) *UserRepository {
	return &UserRepository{db: db, startingBalance: startingBalance}
}

func (r *UserRepository) GetOrCreate(ctx context.Context, userID string) (*domain.User, error) {
	if _, err := r.db.Exec(ctx,
		`INSERT INTO users (user_id, balance) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`,
		userID, r.startingBalance,
	); err != nil {
		return nil, err
	}

	var u domain.User
	err := r.db.QueryRow(ctx,
		`SELECT user_id, balance, chat_count, voice_time, daily_check, created_at
		 FROM users
		 WHERE user_id = $1`,
		userID,
	).Scan(&u.ID, &u.Balance, &u.ChatCount, &u.VoiceSeconds, &u.LastDailyCheckin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AdjustBalance creates the user when missing so the delta is applied to the starting balance.
func (r *UserRepository) AdjustBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (user_id, balance) VALUES ($1, $2 + $3)
		 ON CONFLICT (user_id) DO UPDATE SET balance = users.balance + $3
		 RETURNING balance`,
		userID, r.startingBalance, delta,
	).Scan(&balance)
	return balance, err
}

func (r *UserRepository) Checkin(ctx context.Context, userID, day string, reward int64) (int64, error) {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return 0, err
	}

	var balance int64
	err := r.db.QueryRow(ctx,
		`UPDATE users
		 SET daily_check = $2, balance = balance + $3
		 WHERE user_id = $1 AND daily_check IS DISTINCT FROM $2
		 RETURNING balance`,
		userID, day, reward,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrAlreadyCheckedIn
	}
	return balance, err
}

func (r *UserRepository) IncrementChatCount(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (user_id, balance, chat_count) VALUES ($1, $2, 1)
		 ON CONFLICT (user_id) DO UPDATE SET chat_count = users.chat_count + 1`,
		userID, r.startingBalance,
	)
	return err
}

func (r *UserRepository) AddVoiceSeconds(ctx context.Context, userID string, seconds int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (user_id, balance, voice_time) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET voice_time = users.voice_time + $3`,
		userID, r.startingBalance, seconds,
	)
	return err
}

var rankingColumns = map[domain.RankingKind]string{
	domain.RankingChat:  "chat_count",
	domain.RankingVoice: "voice_time",
}

// Ranking lists users with a non-zero counter, highest first.
func (r *UserRepository) Ranking(ctx context.Context, kind domain.RankingKind, limit int) ([]domain.RankingEntry, error) {
	col, ok := rankingColumns[kind]
	if !ok {
		return nil, fmt.Errorf("unknown ranking kind %q", kind)
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, `+col+`
		 FROM users
		 WHERE `+col+` > 0
		 ORDER BY `+col+` DESC, user_id
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.RankingEntry
	rank := 1
	for rows.Next() {
		e := domain.RankingEntry{Rank: rank}
		if err := rows.Scan(&e.UserID, &e.Value); err != nil {
			return nil, err
		}
		res = append(res, e)
		rank++
	}
	return res, rows.Err()
}

func (r *UserRepository) Overview(ctx context.Context) (*domain.Overview, error) {
	var o domain.Overview
	err := r.db.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM users),
		   (SELECT COUNT(*) FROM memes),
		   (SELECT COALESCE(SUM(balance), 0) FROM users),
		   (SELECT COALESCE(SUM(chat_count), 0) FROM users),
		   (SELECT COALESCE(SUM(voice_time), 0) FROM users)`,
	).Scan(&o.TotalUsers, &o.TotalMemes, &o.TotalBalance, &o.TotalChatCount, &o.TotalVoiceTime)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
