package bot

import (
	"fmt"
	"strings"
	"time"

	"tavern_bot/internal/domain"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	colorRed    = 0xE74C3C
	colorGreen  = 0x2ECC71
	colorGold   = 0xF1C40F
	colorBlue   = 0x3498DB
	colorPink   = 0xE91E63
	colorPurple = 0x9B59B6

	maxEmbedFields = 25
	previewLen     = 200
)

var printer = message.NewPrinter(language.English)

func coins(n int64) string {
	return printer.Sprintf("%d coins", n)
}

func signedCoins(n int64) string {
	if n > 0 {
		return "+" + coins(n)
	}
	return coins(n)
}

// voiceTime renders seconds as "1h 05m".
func voiceTime(secs int64) string {
	d := time.Duration(secs) * time.Second
	h := int64(d.Hours())
	m := int64(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

func multiplier(m float64) string {
	return "x" + strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", m), "0"), ".")
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen]) + "..."
}

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

func embed(color int, title, description string, fields ...*discordgo.MessageEmbedField) *discordgo.MessageEmbed {
	if len(fields) > maxEmbedFields {
		fields = fields[:maxEmbedFields]
	}
	return &discordgo.MessageEmbed{
		Color:       color,
		Title:       title,
		Description: description,
		Fields:      fields,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// failure renders a typed failure as a private red embed.
func failure(title, msg string) *Reply {
	return &Reply{Embed: embed(colorRed, "❌ "+title, msg), Ephemeral: true}
}

// notice is used for guidance that is not an error, such as stews at /use.
func notice(msg string) *Reply {
	return &Reply{Embed: embed(colorBlue, "ℹ️ Note", msg), Ephemeral: true}
}

func categoryLabel(c domain.ItemCategory) string {
	switch c {
	case domain.CategoryTitle:
		return "🏷️ Titles"
	case domain.CategoryConsumable:
		return "🍽️ Consumables"
	case domain.CategoryCollectible:
		return "💎 Collectibles"
	}
	return string(c)
}

func memeName(m *domain.Meme) string {
	if m.Name == nil {
		return "-"
	}
	return *m.Name
}
