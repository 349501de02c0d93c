package repository

import (
	"context"
	"errors"

	"tavern_bot/internal/domain"

	"github.com/jackc/pgx/v5"
)

type ItemRepository struct {
	db DBTX
}

func NewItemRepository(db DBTX) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, name, description, price, emoji, category, consumable, available`

func (r *ItemRepository) Get(ctx context.Context, itemID int64) (*domain.ShopItem, error) {
	var it domain.ShopItem
	err := r.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM shop_items WHERE id = $1`, itemID,
	).Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Emoji, &it.Category, &it.Consumable, &it.Available)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ItemRepository) List(ctx context.Context, category domain.ItemCategory) ([]domain.ShopItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+`
		 FROM shop_items
		 WHERE available AND ($1::text = '' OR category = $1::text)
		 ORDER BY CASE category WHEN 'title' THEN 0 WHEN 'consumable' THEN 1 ELSE 2 END, price, id`,
		string(category),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.ShopItem
	for rows.Next() {
		var it domain.ShopItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Emoji, &it.Category, &it.Consumable, &it.Available); err != nil {
			return nil, err
		}
		res = append(res, it)
	}
	return res, rows.Err()
}
