package bot

import (
	"context"
	"fmt"
	"strings"

	"tavern_bot/internal/domain"
	"tavern_bot/internal/stats"

	"github.com/bwmarrin/discordgo"
)

func (r *Router) save(ctx context.Context, req Request) (*Reply, error) {
	keyword, _ := req.String("keyword")
	content, _ := req.String("content")
	name, _ := req.String("name")

	m, err := r.memes.Save(ctx, keyword, content, req.UserID, name)
	if err != nil {
		return nil, err
	}
	e := embed(colorGreen, "📝 Saved", preview(m.Content),
		field("ID", fmt.Sprintf("%d", m.ID), true),
		field("Keyword", m.Keyword, true),
		field("Name", memeName(m), true),
	)
	return &Reply{Embed: e}, nil
}

func (r *Router) load(ctx context.Context, req Request) (*Reply, error) {
	keyword, _ := req.String("keyword")
	list, err := r.memes.ByKeyword(ctx, keyword)
	if err != nil {
		return nil, err
	}

	const shown = 5
	fields := make([]*discordgo.MessageEmbedField, 0, shown)
	for i := range list {
		if i == shown {
			break
		}
		m := &list[i]
		name := fmt.Sprintf("ID: %d", m.ID)
		if m.Name != nil {
			name += " (" + *m.Name + ")"
		}
		fields = append(fields, field(name, preview(m.Content), false))
	}

	e := embed(colorBlue, fmt.Sprintf("📖 Results for %q", keyword), fmt.Sprintf("Found %d.", len(list)), fields...)
	if len(list) > shown {
		e.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("and %d more...", len(list)-shown)}
	}
	return &Reply{Embed: e}, nil
}

func (r *Router) dig(ctx context.Context, req Request) (*Reply, error) {
	name, _ := req.String("name")
	m, total, err := r.memes.RandomByName(ctx, name)
	if err != nil {
		if de, ok := domain.AsError(err); ok {
			return nil, de.Withf("%s\nAdd one with `/save`!", de.Message)
		}
		return nil, err
	}

	e := embed(colorPink, "😈 "+strings.TrimSpace(name)+"'s dark past", m.Content,
		field("ID", fmt.Sprintf("%d", m.ID), true),
		field("Keyword", m.Keyword, true),
	)
	e.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("1 of %d | saved %s", total, m.CreatedAt.Format("2006-01-02"))}
	return &Reply{Embed: e}, nil
}

func (r *Router) edit(ctx context.Context, req Request) (*Reply, error) {
	id, _ := req.Int("id")

	var e domain.MemeEdit
	if v, ok := req.String("content"); ok {
		e.Content = &v
	}
	if v, ok := req.String("keyword"); ok {
		e.Keyword = &v
	}
	if v, ok := req.String("name"); ok {
		e.Name = &v
	}
	if req.Bool("clear_name") {
		empty := ""
		e.Name = &empty
	}

	before, after, err := r.memes.Edit(ctx, id, req.UserID, e)
	if err != nil {
		return nil, err
	}

	var changes []*discordgo.MessageEmbedField
	if before.Content != after.Content {
		changes = append(changes, field("Content", preview(before.Content)+"\n→ "+preview(after.Content), false))
	}
	if before.Keyword != after.Keyword {
		changes = append(changes, field("Keyword", before.Keyword+" → "+after.Keyword, false))
	}
	if memeName(before) != memeName(after) {
		changes = append(changes, field("Name", memeName(before)+" → "+memeName(after), false))
	}

	emb := embed(colorGreen, "✏️ Edited", fmt.Sprintf("Entry #%d updated.", after.ID), changes...)
	return &Reply{Embed: emb}, nil
}

func (r *Router) delete(ctx context.Context, req Request) (*Reply, error) {
	id, _ := req.Int("id")
	m, err := r.memes.Delete(ctx, id, req.UserID)
	if err != nil {
		return nil, err
	}
	e := embed(colorGreen, "🗑️ Deleted", preview(m.Content),
		field("ID", fmt.Sprintf("%d", m.ID), true),
		field("Keyword", m.Keyword, true),
	)
	return &Reply{Embed: e, Ephemeral: true}, nil
}

func (r *Router) stats(_ context.Context, req Request) (*Reply, error) {
	key, _ := req.String("game")
	nick, _ := req.String("nickname")

	g, sites, err := stats.Lookup(key, nick)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(sites))
	for _, s := range sites {
		lines = append(lines, fmt.Sprintf("🔗 [%s](%s)", s.Name, s.URL))
	}
	e := embed(colorBlue, fmt.Sprintf("%s %s: %s", g.Emoji, g.Name, strings.TrimSpace(nick)), strings.Join(lines, "\n"))
	return &Reply{Embed: e}, nil
}
