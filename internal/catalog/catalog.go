// Package catalog holds the shop's fixed item ids and the effect tables keyed by them.
// The rows themselves live in the database and are created by migrations; Default mirrors
// the migrated state for the in-memory store.
package catalog

import "tavern_bot/internal/domain"

const (
	ItemRookieHero     int64 = 1
	ItemSeasonedRanger int64 = 2
	ItemLegendaryHero  int64 = 3
	ItemRegularGuest   int64 = 4
	ItemLuckyBeer      int64 = 5
	ItemLegacyStew     int64 = 6
	ItemVIPKey         int64 = 7
	ItemGoldenDice     int64 = 8
	ItemHouseStew      int64 = 9
	ItemFineStew       int64 = 10
	ItemLegendaryStew  int64 = 11
)

// StewMultipliers maps check-in boost items to their reward multiplier.
var StewMultipliers = map[int64]float64{
	ItemHouseStew:     1.25,
	ItemFineStew:      1.5,
	ItemLegendaryStew: 2.0,
}

// StewPriority lists boost items strongest first.
var StewPriority = []int64{ItemLegendaryStew, ItemFineStew, ItemHouseStew}

// OneShotBuffs maps usable items to the buff they activate.
var OneShotBuffs = map[int64]domain.BuffType{
	ItemLuckyBeer: domain.BuffLuckyBeer,
}

var BuffDescriptions = map[domain.BuffType]string{
	domain.BuffLuckyBeer:  "+10% win chance on your next gamble",
	domain.BuffDailyBoost: "check-in reward multiplier",
}

// IsStew reports whether the item is consumed automatically at check-in.
func IsStew(itemID int64) bool {
	_, ok := StewMultipliers[itemID]
	return ok
}

// Default is the catalog after all migrations have run.
func Default() []domain.ShopItem {
	return []domain.ShopItem{
		{ID: ItemRookieHero, Name: "Rookie Hero", Description: "Title of a hero new to the tavern.", Price: 5000, Emoji: "🌱", Category: domain.CategoryTitle, Available: true},
		{ID: ItemSeasonedRanger, Name: "Seasoned Adventurer", Description: "Title of an adventurer who has seen countless quests.", Price: 25000, Emoji: "⚔️", Category: domain.CategoryTitle, Available: true},
		{ID: ItemLegendaryHero, Name: "Legendary Hero", Description: "Title of a hero whose name is known across the continent.", Price: 100000, Emoji: "👑", Category: domain.CategoryTitle, Available: true},
		{ID: ItemRegularGuest, Name: "Tavern Regular", Description: "Title of a regular recognised by the innkeeper.", Price: 50000, Emoji: "🏠", Category: domain.CategoryTitle, Available: true},
		{ID: ItemLuckyBeer, Name: "Lucky Beer", Description: "Luck follows you into your next gamble. (+10% win chance)", Price: 3000, Emoji: "🍺", Category: domain.CategoryConsumable, Consumable: true, Available: true},
		{ID: ItemLegacyStew, Name: "House Special Stew", Description: "(legacy) Doubles your next check-in reward.", Price: 8000, Emoji: "🍲", Category: domain.CategoryConsumable, Consumable: true, Available: false},
		{ID: ItemVIPKey, Name: "Tavern VIP Key", Description: "Opens the tavern's special room.", Price: 30000, Emoji: "🔑", Category: domain.CategoryCollectible, Available: true},
		{ID: ItemGoldenDice, Name: "Golden Dice", Description: "Dice once used by a legendary gambler.", Price: 50000, Emoji: "🎲", Category: domain.CategoryCollectible, Available: true},
		{ID: ItemHouseStew, Name: "House Special Stew", Description: "Check-in reward x1.25. (single use)", Price: 5000, Emoji: "🍲", Category: domain.CategoryConsumable, Consumable: true, Available: true},
		{ID: ItemFineStew, Name: "Fine Tavern Stew", Description: "Check-in reward x1.5. (single use)", Price: 12000, Emoji: "🥘", Category: domain.CategoryConsumable, Consumable: true, Available: true},
		{ID: ItemLegendaryStew, Name: "Legendary Tavern Stew", Description: "Check-in reward x2. (single use)", Price: 25000, Emoji: "🫕", Category: domain.CategoryConsumable, Consumable: true, Available: true},
	}
}
