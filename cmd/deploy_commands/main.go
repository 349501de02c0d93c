package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"tavern_bot/internal/bot"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
)

// deploy_commands overwrites the slash command set without starting the bot.
func main() {
	guild := flag.String("guild", "", "guild id (defaults to GUILD_ID; empty registers globally)")
	flag.Parse()

	_ = godotenv.Load()
	token := os.Getenv("DISCORD_TOKEN")
	appID := os.Getenv("CLIENT_ID")
	if token == "" || appID == "" {
		log.Fatal("DISCORD_TOKEN and CLIENT_ID must be set")
	}
	if *guild == "" {
		*guild = os.Getenv("GUILD_ID")
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("create session: %v", err)
	}

	cmds, err := bot.RegisterCommands(s, appID, *guild)
	if err != nil {
		log.Fatalf("register commands: %v", err)
	}
	for _, c := range cmds {
		fmt.Printf("/%s (%s)\n", c.Name, c.ID)
	}
	scope := "globally"
	if *guild != "" {
		scope = "in guild " + *guild
	}
	log.Printf("registered %d commands %s", len(cmds), scope)
}
