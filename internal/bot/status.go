package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

type presence struct {
	kind discordgo.ActivityType
	text string
}

// innkeeper-themed presence lines, rotated in order
var presences = []presence{
	{discordgo.ActivityTypeGame, "Running the tavern"},
	{discordgo.ActivityTypeGame, "Tallying unpaid room bills"},
	{discordgo.ActivityTypeGame, "Cleaning the guest rooms"},
	{discordgo.ActivityTypeWatching, "for a free room"},
	{discordgo.ActivityTypeWatching, "suspicious monsters"},
	{discordgo.ActivityTypeListening, "heroes' orders"},
	{discordgo.ActivityTypeListening, "adventure stories"},
}

func (b *Bot) setPresence(i int) {
	p := presences[i%len(presences)]
	err := b.session.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status:     string(discordgo.StatusOnline),
		Activities: []*discordgo.Activity{{Name: p.text, Type: p.kind}},
	})
	if err != nil {
		b.log.Warn("update status", "error", err)
	}
}

func (b *Bot) rotateStatus() {
	defer b.wg.Done()

	i := 0
	b.setPresence(i)
	if b.statusInterval <= 0 {
		return
	}

	ticker := time.NewTicker(b.statusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-b.stopCh:
			return
		case <-ticker.C:
			i++
			b.setPresence(i)
		}
	}
}
