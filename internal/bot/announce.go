package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

func releaseEmbed(previous, current string) *discordgo.MessageEmbed {
	e := embed(colorBlue, "📦 The tavern has been renovated",
		"A new version of the bot is now serving drinks.",
		field("Before", "`"+previous+"`", true),
		field("Now", "`"+current+"`", true),
	)
	e.Timestamp = time.Now().Format(time.RFC3339)
	return e
}

// announceRelease posts to the update channel when the running version differs
// from the one announced last.
func (b *Bot) announceRelease() {
	defer b.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	prev, changed, err := b.opts.Releases.Observe(ctx, b.opts.Version)
	if err != nil {
		b.log.Warn("release check failed", "error", err)
		return
	}
	if !changed {
		return
	}

	b.log.Info("new release detected", "from", prev, "to", b.opts.Version)
	_, err = b.session.ChannelMessageSendEmbed(b.opts.UpdateChannelID, releaseEmbed(prev, b.opts.Version), discordgo.WithContext(ctx))
	if err != nil {
		b.log.Error("release announcement failed", "channel_id", b.opts.UpdateChannelID, "error", err)
	}
}
