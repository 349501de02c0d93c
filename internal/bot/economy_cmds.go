package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tavern_bot/internal/catalog"
	"tavern_bot/internal/domain"
	"tavern_bot/internal/game"

	"github.com/bwmarrin/discordgo"
)

func (r *Router) balance(ctx context.Context, req Request) (*Reply, error) {
	p, err := r.economy.Profile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	checkin := "Not yet, use /checkin"
	if p.CheckedInToday {
		checkin = "Done ✅"
	}
	e := embed(colorGold, "💰 "+req.DisplayName+"'s wallet", "",
		field("Balance", coins(p.User.Balance), true),
		field("Messages", printer.Sprintf("%d", p.User.ChatCount), true),
		field("Voice time", voiceTime(p.User.VoiceSeconds), true),
		field("Today's check-in", checkin, false),
	)
	e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: req.AvatarURL}
	return &Reply{Embed: e}, nil
}

func (r *Router) checkin(ctx context.Context, req Request) (*Reply, error) {
	res, err := r.economy.DailyCheckin(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	boosted := res.Multiplier > 1
	desc := fmt.Sprintf("**%s** checked in!", req.DisplayName)
	switch {
	case res.Stew != nil:
		desc += fmt.Sprintf("\n%s **%s** used! (%s)", res.Stew.Emoji, res.Stew.Name, multiplier(res.Multiplier))
	case res.BoostBuff != nil:
		desc += fmt.Sprintf("\n✨ Daily boost active! (%s)", multiplier(res.Multiplier))
	}

	title, color := "✅ Checked in!", colorGreen
	reward := signedCoins(res.Reward)
	if boosted {
		title, color = "✨ Special check-in!", colorGold
		reward += " (" + multiplier(res.Multiplier) + "!)"
	}

	e := embed(color, title, desc,
		field("Reward", reward, true),
		field("Balance", coins(res.NewBalance), true),
	)
	e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: req.AvatarURL}
	return &Reply{Embed: e}, nil
}

func (r *Router) gamble(ctx context.Context, req Request) (*Reply, error) {
	amount, ok := req.Int("amount")
	if !ok {
		return nil, domain.ErrInvalidBet
	}
	res, err := r.economy.Gamble(ctx, req.UserID, amount)
	if err != nil {
		return nil, err
	}

	var result string
	color := colorRed
	switch {
	case res.Jackpot:
		result, color = "🎰 JACKPOT!!!", colorGold
	case res.Won && res.LuckyBeer:
		result, color = "🍀 Lucky win!", colorGreen
	case res.Won:
		result, color = "🎉 Win!", colorGreen
	default:
		result = "💀 Lost..."
	}

	desc := fmt.Sprintf("Roll: **%d**", res.Roll)
	if res.LuckyBeer {
		desc += "\n🍺 Lucky Beer applied! (+10% win chance)"
	}

	outcome := field("Lost", signedCoins(res.Net), true)
	if res.Won {
		outcome = field("Payout", "+"+coins(res.Payout()), true)
	}

	e := embed(color, "🎲 Gamble: "+result, desc,
		field("Bet", coins(res.Bet), true),
		outcome,
		field("Balance", coins(res.NewBalance), true),
	)
	e.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d+: x2 | %d: x%d jackpot", res.Threshold, game.JackpotRoll, game.JackpotNetMultiplier+1),
	}
	return &Reply{Embed: e}, nil
}

func (r *Router) shop(ctx context.Context, req Request) (*Reply, error) {
	category, _ := req.String("category")
	items, err := r.economy.Shop(ctx, domain.ItemCategory(category))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return notice("Nothing is for sale right now."), nil
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(items))
	var last domain.ItemCategory
	for _, it := range items {
		name := fmt.Sprintf("`#%d` %s %s: %s", it.ID, it.Emoji, it.Name, coins(it.Price))
		if it.Category != last {
			name = categoryLabel(it.Category) + "\n" + name
			last = it.Category
		}
		fields = append(fields, field(name, it.Description, false))
	}

	e := embed(colorPurple, "🏪 Tavern Shop", "Buy with `/buy item:<number>`.", fields...)
	return &Reply{Embed: e}, nil
}

func (r *Router) buy(ctx context.Context, req Request) (*Reply, error) {
	itemID, ok := req.Int("item")
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	res, err := r.economy.Purchase(ctx, req.UserID, itemID)
	if err != nil {
		return nil, err
	}

	fields := []*discordgo.MessageEmbedField{
		field("Price", coins(res.Item.Price), true),
		field("Balance", coins(res.NewBalance), true),
	}
	if res.Item.Consumable {
		fields = append(fields, field("In your bag", fmt.Sprintf("%d", res.Quantity), true))
	}
	e := embed(colorGreen, "🛒 Purchase complete",
		fmt.Sprintf("**%s** bought %s **%s**!", req.DisplayName, res.Item.Emoji, res.Item.Name), fields...)
	return &Reply{Embed: e}, nil
}

func (r *Router) use(ctx context.Context, req Request) (*Reply, error) {
	itemID, ok := req.Int("item")
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	res, err := r.economy.ActivateItem(ctx, req.UserID, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrAutoUsed) {
			return notice(err.Error() + "\nThe strongest stew in your bag is used at each check-in."), nil
		}
		return nil, err
	}

	e := embed(colorGreen, fmt.Sprintf("%s %s used!", res.Item.Emoji, res.Item.Name),
		fmt.Sprintf("**%s** used **%s**!", req.DisplayName, res.Item.Name),
		field("Effect", res.Description, true),
		field("Left", fmt.Sprintf("%d", res.Remaining), true),
	)
	e.Footer = &discordgo.MessageEmbedFooter{Text: "The effect applies automatically next time."}
	return &Reply{Embed: e}, nil
}

func (r *Router) inventory(ctx context.Context, req Request) (*Reply, error) {
	p, err := r.economy.Profile(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	var fields []*discordgo.MessageEmbedField
	byCategory := make(map[domain.ItemCategory][]string)
	for _, e := range p.Inventory {
		line := fmt.Sprintf("`#%d` %s %s", e.ItemID, e.Item.Emoji, e.Item.Name)
		if e.Item.Consumable {
			line += fmt.Sprintf(" x%d", e.Quantity)
		}
		byCategory[e.Item.Category] = append(byCategory[e.Item.Category], line)
	}
	for _, c := range domain.CategoryOrder {
		if lines := byCategory[c]; len(lines) > 0 {
			fields = append(fields, field(categoryLabel(c), strings.Join(lines, "\n"), false))
		}
	}

	if len(p.Buffs) > 0 {
		lines := make([]string, 0, len(p.Buffs))
		for _, b := range p.Buffs {
			line := strings.TrimSpace(b.Emoji + " " + b.Name)
			if b.OneShot() {
				line += ": " + catalog.BuffDescriptions[b.Type]
			} else {
				line += fmt.Sprintf(": %s check-in, %d day(s) left", multiplier(b.Multiplier), b.RemainingDays)
			}
			lines = append(lines, line)
		}
		fields = append(fields, field("✨ Active effects", strings.Join(lines, "\n"), false))
	}

	desc := "Balance: **" + coins(p.User.Balance) + "**"
	if len(p.Inventory) == 0 {
		desc += "\nYour bag is empty. Visit `/shop`!"
	}
	e := embed(colorBlue, "🎒 "+req.DisplayName+"'s inventory", desc, fields...)
	return &Reply{Embed: e}, nil
}
