// Package stats builds profile links on third-party stats sites.
package stats

import (
	"net/url"
	"strings"

	"tavern_bot/internal/domain"
)

type Site struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Game struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	sites []siteTemplate
}

type siteTemplate struct {
	name  string
	build func(nick string) string
}

func esc(s string) string {
	return url.PathEscape(s)
}

var games = []Game{
	{Key: "lol", Name: "League of Legends", Emoji: "🎮", sites: []siteTemplate{
		{"OP.GG", func(n string) string {
			return "https://www.op.gg/summoners/kr/" + esc(strings.Replace(n, "#", "-", 1))
		}},
		{"FOW.KR", func(n string) string {
			name, _, _ := strings.Cut(n, "#")
			return "https://fow.kr/find/" + esc(name)
		}},
	}},
	{Key: "valorant", Name: "Valorant", Emoji: "🔫", sites: []siteTemplate{
		{"Dak.gg", func(n string) string { return "https://dak.gg/valorant/profile/" + esc(n) }},
		{"Tracker.gg", func(n string) string { return "https://tracker.gg/valorant/profile/riot/" + esc(n) }},
	}},
	{Key: "overwatch", Name: "Overwatch", Emoji: "🦸", sites: []siteTemplate{
		{"Overbuff", func(n string) string { return "https://www.overbuff.com/players/" + esc(n) }},
	}},
	{Key: "pubg", Name: "PUBG: Battlegrounds", Emoji: "🍳", sites: []siteTemplate{
		{"Dak.gg", func(n string) string { return "https://dak.gg/pubg/profile/" + esc(n) }},
		{"PUBG.OP.GG", func(n string) string { return "https://pubg.op.gg/user/" + esc(n) }},
	}},
	{Key: "maple", Name: "MapleStory", Emoji: "🍁", sites: []siteTemplate{
		{"Maple.gg", func(n string) string { return "https://maple.gg/u/" + esc(n) }},
	}},
}

// Games lists the supported games in display order.
func Games() []Game {
	return games
}

// Lookup returns the game with its site links for nickname.
func Lookup(gameKey, nickname string) (*Game, []Site, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return nil, nil, domain.ErrInvalidInput.Withf("Enter a nickname to search.")
	}
	for i := range games {
		g := &games[i]
		if g.Key != gameKey {
			continue
		}
		links := make([]Site, 0, len(g.sites))
		for _, s := range g.sites {
			links = append(links, Site{Name: s.name, URL: s.build(nickname)})
		}
		return g, links, nil
	}
	return nil, nil, domain.ErrUnknownGame
}
