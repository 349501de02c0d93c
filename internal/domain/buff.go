package domain

import (
	"math"
	"time"
)

type BuffType string

const (
	// one-shot: +10 points of gamble win chance on the next gamble
	BuffLuckyBeer BuffType = "lucky_beer"
	// duration: check-in reward multiplier
	BuffDailyBoost BuffType = "daily_boost"
)

// Buff is a user's active effect. At most one per (user, type).
// ExpiresAt nil means one-shot, consumed by the next qualifying action.
type Buff struct {
	UserID     string     `db:"user_id" json:"user_id"`
	Type       BuffType   `db:"buff_type" json:"buff_type"`
	ItemID     int64      `db:"item_id" json:"item_id"`
	Multiplier float64    `db:"multiplier" json:"multiplier"`
	ExpiresAt  *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

func (b *Buff) OneShot() bool {
	return b.ExpiresAt == nil
}

// Expired reports whether a duration buff has passed its expiry at now.
func (b *Buff) Expired(now time.Time) bool {
	return b.ExpiresAt != nil && now.After(*b.ExpiresAt)
}

// ActiveBuff is a Buff annotated for display.
type ActiveBuff struct {
	Buff
	RemainingDays int    `json:"remainingDays,omitempty"`
	Name          string `json:"name,omitempty"`
	Emoji         string `json:"emoji,omitempty"`
}

// RemainingDays rounds the time left up to whole days; 0 for one-shot buffs.
func RemainingDays(b *Buff, now time.Time) int {
	if b.ExpiresAt == nil {
		return 0
	}
	left := b.ExpiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}
