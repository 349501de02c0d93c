package repository

import (
	"context"
	"errors"

	"tavern_bot/internal/domain"

	"github.com/jackc/pgx/v5"
)

type InventoryRepository struct {
	db DBTX
}

func NewInventoryRepository(db DBTX) *InventoryRepository {
	return &InventoryRepository{db: db}
}

func (r *InventoryRepository) Quantity(ctx context.Context, userID string, itemID int64) (int, error) {
	var q int
	err := r.db.QueryRow(ctx,
		`SELECT quantity FROM user_inventory WHERE user_id = $1 AND item_id = $2`,
		userID, itemID,
	).Scan(&q)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return q, err
}

func (r *InventoryRepository) Has(ctx context.Context, userID string, itemID int64) (bool, error) {
	q, err := r.Quantity(ctx, userID, itemID)
	return q > 0, err
}

func (r *InventoryRepository) Add(ctx context.Context, userID string, itemID int64, n int) (int, error) {
	if n <= 0 {
		return 0, domain.ErrInvalidInput
	}
	var q int
	err := r.db.QueryRow(ctx,
		`INSERT INTO user_inventory (user_id, item_id, quantity) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, item_id) DO UPDATE SET quantity = user_inventory.quantity + $3
		 RETURNING quantity`,
		userID, itemID, n,
	).Scan(&q)
	return q, err
}

func (r *InventoryRepository) Consume(ctx context.Context, userID string, itemID int64, n int) (int, error) {
	if n <= 0 {
		return 0, domain.ErrInvalidInput
	}
	var left int
	err := r.db.QueryRow(ctx,
		`UPDATE user_inventory SET quantity = quantity - $3
		 WHERE user_id = $1 AND item_id = $2 AND quantity >= $3
		 RETURNING quantity`,
		userID, itemID, n,
	).Scan(&left)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrNotEnoughItems
	}
	if err != nil {
		return 0, err
	}

	if left == 0 {
		if _, err := r.db.Exec(ctx,
			`DELETE FROM user_inventory WHERE user_id = $1 AND item_id = $2 AND quantity = 0`,
			userID, itemID,
		); err != nil {
			return 0, err
		}
	}
	return left, nil
}

// List joins the inventory with item data, ordered by category then name.
func (r *InventoryRepository) List(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ui.user_id, ui.item_id, ui.quantity,
		        si.id, si.name, si.description, si.price, si.emoji, si.category, si.consumable, si.available
		 FROM user_inventory ui
		 JOIN shop_items si ON si.id = ui.item_id
		 WHERE ui.user_id = $1 AND ui.quantity > 0
		 ORDER BY CASE si.category WHEN 'title' THEN 0 WHEN 'consumable' THEN 1 ELSE 2 END, si.name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		it := &e.Item
		if err := rows.Scan(&e.UserID, &e.ItemID, &e.Quantity,
			&it.ID, &it.Name, &it.Description, &it.Price, &it.Emoji, &it.Category, &it.Consumable, &it.Available); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
