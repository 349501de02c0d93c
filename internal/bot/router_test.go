package bot

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"tavern_bot/internal/catalog"
	"tavern_bot/internal/game"
	"tavern_bot/internal/repository/memory"
	"tavern_bot/internal/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	store  *memory.Store
	roller *game.FixedRoller
	router *Router
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	now := func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	store := memory.New(1000)
	store.SetClock(now)
	roller := &game.FixedRoller{Rolls: []int{1}}
	econ := service.NewEconomyService(store, service.EconomyOptions{DailyReward: 5000, Roller: roller, Now: now})
	return &routerFixture{
		store:  store,
		roller: roller,
		router: NewRouter(econ, service.NewMemeService(store.Memes())),
	}
}

func intOpt(name string, v int64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(v)}
}

func strOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: v}
}

func boolOpt(name string, v bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: v}
}

func (f *routerFixture) run(userID, command string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *Reply {
	req := Request{Name: command, UserID: userID, DisplayName: "Guest " + userID, Options: map[string]*discordgo.ApplicationCommandInteractionDataOption{}}
	for _, o := range opts {
		req.Options[o.Name] = o
	}
	return f.router.Handle(context.Background(), req)
}

func fieldValue(e *discordgo.MessageEmbed, name string) string {
	for _, f := range e.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func TestCheckinReplies(t *testing.T) {
	f := newRouterFixture(t)

	r := f.run("u1", cmdCheckin)
	require.False(t, r.Ephemeral)
	assert.Equal(t, "✅ Checked in!", r.Embed.Title)
	assert.Equal(t, "+5,000 coins", fieldValue(r.Embed, "Reward"))
	assert.Equal(t, "6,000 coins", fieldValue(r.Embed, "Balance"))

	again := f.run("u1", cmdCheckin)
	assert.True(t, again.Ephemeral)
	assert.Equal(t, colorRed, again.Embed.Color)
	assert.Equal(t, "❌ Check-in failed", again.Embed.Title)
	assert.Equal(t, "You already checked in today!", again.Embed.Description)
}

func TestBuyNeedsCheckinFunds(t *testing.T) {
	f := newRouterFixture(t)

	// 1000 starting balance cannot afford the 5000 stew
	r := f.run("u1", cmdBuy, intOpt("item", catalog.ItemHouseStew))
	assert.True(t, r.Ephemeral)
	assert.Equal(t, "❌ Purchase failed", r.Embed.Title)

	require.False(t, f.run("u1", cmdCheckin).Ephemeral)
	r = f.run("u1", cmdBuy, intOpt("item", catalog.ItemHouseStew))
	require.False(t, r.Ephemeral, r.Embed.Description)
	assert.Equal(t, "1", fieldValue(r.Embed, "In your bag"))
}

func TestGambleReplies(t *testing.T) {
	f := newRouterFixture(t)

	f.roller.Rolls = []int{100}
	r := f.run("u1", cmdGamble, intOpt("amount", 100))
	assert.Equal(t, "🎲 Gamble: 🎰 JACKPOT!!!", r.Embed.Title)
	assert.Equal(t, "+500 coins", fieldValue(r.Embed, "Payout"))
	assert.Equal(t, "1,400 coins", fieldValue(r.Embed, "Balance"))
	assert.Equal(t, "51+: x2 | 100: x5 jackpot", r.Embed.Footer.Text)

	f.roller.Rolls = []int{10}
	r = f.run("u1", cmdGamble, intOpt("amount", 0))
	assert.Equal(t, "🎲 Gamble: 💀 Lost...", r.Embed.Title)
	assert.Equal(t, "1,400 coins", fieldValue(r.Embed, "Bet"))
	assert.Equal(t, "-1,400 coins", fieldValue(r.Embed, "Lost"))

	r = f.run("u1", cmdGamble, intOpt("amount", 10))
	assert.True(t, r.Ephemeral)
	assert.Equal(t, "You have no balance. Check in to earn some!", r.Embed.Description)
}

func TestUseStewIsANotice(t *testing.T) {
	f := newRouterFixture(t)

	r := f.run("u1", cmdUse, intOpt("item", catalog.ItemFineStew))
	assert.True(t, r.Ephemeral)
	assert.Equal(t, colorBlue, r.Embed.Color)
	assert.Contains(t, r.Embed.Description, "check-in")

	r = f.run("u1", cmdUse, intOpt("item", catalog.ItemVIPKey))
	assert.Equal(t, "❌ Use failed", r.Embed.Title)
}

func TestShopAndInventory(t *testing.T) {
	f := newRouterFixture(t)

	r := f.run("u1", cmdShop)
	require.NotEmpty(t, r.Embed.Fields)
	assert.Contains(t, r.Embed.Fields[0].Name, "Titles")

	r = f.run("u1", cmdShop, strOpt("category", "weapons"))
	assert.True(t, r.Ephemeral)

	require.False(t, f.run("u1", cmdCheckin).Ephemeral)
	require.False(t, f.run("u1", cmdBuy, intOpt("item", catalog.ItemLuckyBeer)).Ephemeral)
	require.False(t, f.run("u1", cmdUse, intOpt("item", catalog.ItemLuckyBeer)).Ephemeral)

	r = f.run("u1", cmdInventory)
	assert.Contains(t, r.Embed.Description, "Your bag is empty")
	assert.Contains(t, fieldValue(r.Embed, "✨ Active effects"), "Lucky Beer")
}

func TestMemeCommands(t *testing.T) {
	f := newRouterFixture(t)

	r := f.run("author", cmdSave, strOpt("keyword", "oops"), strOpt("content", "fell off the stool"), strOpt("name", "Bob"))
	require.False(t, r.Ephemeral)
	id := fieldValue(r.Embed, "ID")
	require.NotEmpty(t, id)

	r = f.run("someone", cmdLoad, strOpt("keyword", "oops"))
	assert.Equal(t, "Found 1.", r.Embed.Description)
	assert.Equal(t, "fell off the stool", r.Embed.Fields[0].Value)

	r = f.run("someone", cmdDig, strOpt("name", "Bob"))
	assert.Equal(t, "fell off the stool", r.Embed.Description)

	r = f.run("someone", cmdDig, strOpt("name", "Alice"))
	assert.True(t, r.Ephemeral)
	assert.Contains(t, r.Embed.Description, "/save")

	var n int64
	_, err := fmt.Sscan(id, &n)
	require.NoError(t, err)

	r = f.run("someone", cmdEdit, intOpt("id", n), strOpt("content", "hijacked"))
	assert.Equal(t, "❌ Edit failed", r.Embed.Title)

	r = f.run("author", cmdEdit, intOpt("id", n))
	assert.Equal(t, "Give at least one of content, keyword or name.", r.Embed.Description)

	r = f.run("author", cmdEdit, intOpt("id", n), boolOpt("clear_name", true))
	require.False(t, r.Ephemeral)
	assert.Equal(t, "Bob → -", fieldValue(r.Embed, "Name"))

	r = f.run("someone", cmdDelete, intOpt("id", n))
	assert.Equal(t, "❌ Delete failed", r.Embed.Title)

	r = f.run("author", cmdDelete, intOpt("id", n))
	assert.Equal(t, "🗑️ Deleted", r.Embed.Title)

	r = f.run("someone", cmdLoad, strOpt("keyword", "oops"))
	assert.True(t, r.Ephemeral)
}

func TestEditRejectsOversizedContent(t *testing.T) {
	f := newRouterFixture(t)

	r := f.run("author", cmdSave, strOpt("keyword", "kw"), strOpt("content", "short"))
	var n int64
	_, err := fmt.Sscan(fieldValue(r.Embed, "ID"), &n)
	require.NoError(t, err)

	r = f.run("author", cmdEdit, intOpt("id", n), strOpt("content", strings.Repeat("x", service.MaxContentLen+1)))
	assert.True(t, r.Ephemeral)

	r = f.run("someone", cmdLoad, strOpt("keyword", "kw"))
	assert.Equal(t, "short", r.Embed.Fields[0].Value)
}

func TestMemeOptionsAreCapped(t *testing.T) {
	caps := map[string]int{"keyword": service.MaxKeywordLen, "content": service.MaxContentLen}
	for _, d := range Definitions() {
		if d.Name != cmdSave && d.Name != cmdEdit {
			continue
		}
		for _, o := range d.Options {
			if max, ok := caps[o.Name]; ok {
				assert.Equal(t, max, o.MaxLength, "%s %s", d.Name, o.Name)
			}
		}
	}
}

func TestStatsCommand(t *testing.T) {
	f := newRouterFixture(t)

	r := f.run("u1", cmdStats, strOpt("game", "lol"), strOpt("nickname", "Hide on bush#KR1"))
	assert.Contains(t, r.Embed.Description, "https://www.op.gg/summoners/kr/Hide%20on%20bush-KR1")

	r = f.run("u1", cmdStats, strOpt("game", "tetris"), strOpt("nickname", "x"))
	assert.True(t, r.Ephemeral)
}

func TestUnknownCommand(t *testing.T) {
	f := newRouterFixture(t)
	r := f.run("u1", "dance")
	assert.True(t, r.Ephemeral)
}

func TestDefinitionsCoverRouter(t *testing.T) {
	f := newRouterFixture(t)
	defs := Definitions()
	seen := map[string]bool{}
	for _, d := range defs {
		assert.False(t, seen[d.Name], "duplicate %s", d.Name)
		seen[d.Name] = true
		_, ok := f.router.handlers[d.Name]
		assert.True(t, ok, "no handler for %s", d.Name)
	}
	assert.Len(t, defs, len(f.router.handlers))
}

func TestVoiceTransition(t *testing.T) {
	assert.Equal(t, voiceJoined, voiceTransition("", "c1"))
	assert.Equal(t, voiceLeft, voiceTransition("c1", ""))
	assert.Equal(t, voiceNone, voiceTransition("c1", "c2"))
	assert.Equal(t, voiceNone, voiceTransition("", ""))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567 coins", coins(1234567))
	assert.Equal(t, "+5 coins", signedCoins(5))
	assert.Equal(t, "45m", voiceTime(45*60))
	assert.Equal(t, "2h 05m", voiceTime(2*3600+5*60))
	assert.Equal(t, "x1.25", multiplier(1.25))
	assert.Equal(t, "x1.5", multiplier(1.5))
	assert.Equal(t, "x2", multiplier(2))
}
