package domain

// ItemCategory groups shop items for display.
type ItemCategory string

const (
	CategoryTitle       ItemCategory = "title"
	CategoryConsumable  ItemCategory = "consumable"
	CategoryCollectible ItemCategory = "collectible"
)

// CategoryOrder is the display order used by the shop and inventory.
var CategoryOrder = []ItemCategory{CategoryTitle, CategoryConsumable, CategoryCollectible}

func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryTitle, CategoryConsumable, CategoryCollectible:
		return true
	}
	return false
}

type ShopItem struct {
	ID          int64        `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	Description string       `db:"description" json:"description"`
	Price       int64        `db:"price" json:"price"`
	Emoji       string       `db:"emoji" json:"emoji"`
	Category    ItemCategory `db:"category" json:"category"`
	Consumable  bool         `db:"consumable" json:"consumable"`
	Available   bool         `db:"available" json:"available"`
}

// InventoryEntry is a (user, item) quantity joined with the item definition.
// Unique items never exceed quantity 1; rows at quantity 0 do not exist.
type InventoryEntry struct {
	UserID   string   `json:"user_id"`
	ItemID   int64    `json:"item_id"`
	Quantity int      `json:"quantity"`
	Item     ShopItem `json:"item"`
}
