package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

type voiceChange int

const (
	voiceNone voiceChange = iota
	voiceJoined
	voiceLeft
)

// voiceTransition classifies a voice state update. Moving between channels
// keeps the session running.
func voiceTransition(before, after string) voiceChange {
	switch {
	case before == "" && after != "":
		return voiceJoined
	case before != "" && after == "":
		return voiceLeft
	}
	return voiceNone
}

func (b *Bot) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.activity.RecordMessage(ctx, m.Author.ID); err != nil {
		b.log.Error("record message", "user_id", m.Author.ID, "error", err)
	}
}

func (b *Bot) onVoiceStateUpdate(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.VoiceState == nil || (v.Member != nil && v.Member.User != nil && v.Member.User.Bot) {
		return
	}
	before := ""
	if v.BeforeUpdate != nil {
		before = v.BeforeUpdate.ChannelID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch voiceTransition(before, v.ChannelID) {
	case voiceJoined:
		if err := b.activity.VoiceJoin(ctx, v.UserID); err != nil {
			b.log.Error("voice join", "user_id", v.UserID, "error", err)
		}
	case voiceLeft:
		d, err := b.activity.VoiceLeave(ctx, v.UserID)
		if err != nil {
			b.log.Error("voice leave", "user_id", v.UserID, "error", err)
			return
		}
		b.log.Debug("voice session credited", "user_id", v.UserID, "duration", d)
	}
}
