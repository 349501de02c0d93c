package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Request is the part of a slash command interaction the router needs.
type Request struct {
	Name        string
	UserID      string
	DisplayName string
	AvatarURL   string
	Options     map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// Reply is rendered as a single embed.
type Reply struct {
	Embed     *discordgo.MessageEmbed
	Ephemeral bool
}

func requestFrom(i *discordgo.InteractionCreate) Request {
	data := i.ApplicationCommandData()
	req := Request{Name: data.Name, Options: make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))}
	for _, o := range data.Options {
		req.Options[o.Name] = o
	}

	user := i.User
	nick := ""
	if i.Member != nil {
		user = i.Member.User
		nick = i.Member.Nick
	}
	if user != nil {
		req.UserID = user.ID
		req.AvatarURL = user.AvatarURL("")
		switch {
		case nick != "":
			req.DisplayName = nick
		case user.GlobalName != "":
			req.DisplayName = user.GlobalName
		default:
			req.DisplayName = user.Username
		}
	}
	return req
}

func (r Request) Int(name string) (int64, bool) {
	o, ok := r.Options[name]
	if !ok || o.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return o.IntValue(), true
}

func (r Request) String(name string) (string, bool) {
	o, ok := r.Options[name]
	if !ok || o.Type != discordgo.ApplicationCommandOptionString {
		return "", false
	}
	return o.StringValue(), true
}

func (r Request) Bool(name string) bool {
	o, ok := r.Options[name]
	if !ok || o.Type != discordgo.ApplicationCommandOptionBoolean {
		return false
	}
	return o.BoolValue()
}
