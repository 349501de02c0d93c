package domain

import "time"

// User is a Discord member's economy row. Created lazily, never deleted.
type User struct {
	ID               string    `db:"user_id" json:"user_id"`
	Balance          int64     `db:"balance" json:"balance"`
	ChatCount        int64     `db:"chat_count" json:"chat_count"`
	VoiceSeconds     int64     `db:"voice_time" json:"voice_time"`
	LastDailyCheckin *string   `db:"daily_check" json:"daily_check"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// CheckedInOn reports whether the user already checked in on day (YYYY-MM-DD).
func (u *User) CheckedInOn(day string) bool {
	return u.LastDailyCheckin != nil && *u.LastDailyCheckin == day
}

// RankingKind selects the counter used for leaderboards.
type RankingKind string

const (
	RankingChat  RankingKind = "chat"
	RankingVoice RankingKind = "voice"
)

type RankingEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Value  int64  `json:"value"`
}

// Overview is the server-wide totals block shown on the dashboard.
type Overview struct {
	TotalUsers     int64 `json:"totalUsers"`
	TotalMemes     int64 `json:"totalMemes"`
	TotalBalance   int64 `json:"totalBalance"`
	TotalChatCount int64 `json:"totalChatCount"`
	TotalVoiceTime int64 `json:"totalVoiceTime"`
}

// DiscordProfile is the public part of a Discord account used to decorate rankings.
type DiscordProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
}
