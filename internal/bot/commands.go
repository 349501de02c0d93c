package bot

import (
	"tavern_bot/internal/domain"
	"tavern_bot/internal/service"
	"tavern_bot/internal/stats"

	"github.com/bwmarrin/discordgo"
)

const (
	cmdBalance   = "balance"
	cmdCheckin   = "checkin"
	cmdGamble    = "gamble"
	cmdShop      = "shop"
	cmdBuy       = "buy"
	cmdUse       = "use"
	cmdInventory = "inventory"
	cmdSave      = "save"
	cmdLoad      = "load"
	cmdDig       = "dig"
	cmdEdit      = "edit"
	cmdDelete    = "delete"
	cmdStats     = "stats"
)

func floatPtr(v float64) *float64 { return &v }

// Definitions is the slash command set registered with Discord.
func Definitions() []*discordgo.ApplicationCommand {
	gameChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(stats.Games()))
	for _, g := range stats.Games() {
		gameChoices = append(gameChoices, &discordgo.ApplicationCommandOptionChoice{Name: g.Name, Value: g.Key})
	}
	categoryChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.CategoryOrder))
	for _, c := range domain.CategoryOrder {
		categoryChoices = append(categoryChoices, &discordgo.ApplicationCommandOptionChoice{Name: categoryLabel(c), Value: string(c)})
	}

	return []*discordgo.ApplicationCommand{
		{Name: cmdBalance, Description: "Show your balance and activity."},
		{Name: cmdCheckin, Description: "Daily check-in for 5,000 coins. Stews in your bag boost it."},
		{
			Name:        cmdGamble,
			Description: "Roll a d100! 51+ wins double, 100 is a jackpot.",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Coins to bet (0 bets everything)",
				Required:    true,
				MinValue:    floatPtr(0),
			}},
		},
		{
			Name:        cmdShop,
			Description: "Browse the tavern shop.",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "Only show one category",
				Choices:     categoryChoices,
			}},
		},
		{
			Name:        cmdBuy,
			Description: "Buy an item from the shop.",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "item",
				Description: "Item number (see /shop)",
				Required:    true,
				MinValue:    floatPtr(1),
			}},
		},
		{
			Name:        cmdUse,
			Description: "Use a consumable to activate its effect.",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "item",
				Description: "Item number (see /inventory)",
				Required:    true,
				MinValue:    floatPtr(1),
			}},
		},
		{Name: cmdInventory, Description: "Show your items and active effects."},
		{
			Name:        cmdSave,
			Description: "Archive a quote under a keyword.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "keyword", Description: "Keyword to find it again", Required: true, MaxLength: service.MaxKeywordLen},
				{Type: discordgo.ApplicationCommandOptionString, Name: "content", Description: "What to save", Required: true, MaxLength: service.MaxContentLen},
				{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Who it is about"},
			},
		},
		{
			Name:        cmdLoad,
			Description: "Load quotes saved under a keyword.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "keyword", Description: "Keyword used when saving", Required: true},
			},
		},
		{
			Name:        cmdDig,
			Description: "Dig up a random quote about someone.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Whose past to dig up", Required: true},
			},
		},
		{
			Name:        cmdEdit,
			Description: "Edit a quote you saved.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "Quote ID", Required: true, MinValue: floatPtr(1)},
				{Type: discordgo.ApplicationCommandOptionString, Name: "content", Description: "New content", MaxLength: service.MaxContentLen},
				{Type: discordgo.ApplicationCommandOptionString, Name: "keyword", Description: "New keyword", MaxLength: service.MaxKeywordLen},
				{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "New name"},
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "clear_name", Description: "Remove the name"},
			},
		},
		{
			Name:        cmdDelete,
			Description: "Delete a quote you saved.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "Quote ID", Required: true, MinValue: floatPtr(1)},
			},
		},
		{
			Name:        cmdStats,
			Description: "Get stats site links for a player.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "game", Description: "Game", Required: true, Choices: gameChoices},
				{Type: discordgo.ApplicationCommandOptionString, Name: "nickname", Description: "In-game name (LoL: name#tag)", Required: true},
			},
		},
	}
}

// RegisterCommands replaces the application's commands. An empty guildID registers globally.
func RegisterCommands(s *discordgo.Session, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	return s.ApplicationCommandBulkOverwrite(appID, guildID, Definitions())
}
