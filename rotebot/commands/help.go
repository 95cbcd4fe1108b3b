package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/kiyotakas/rotebot/rotebot/config"
)

var Help = discord.SlashCommandCreate{
	Name:        "help",
	Description: "📖 Show all available commands",
}

func HelpHandler() handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		embed := discord.NewEmbedBuilder().
			SetTitle("📖 ROTE Bot Commands").
			SetColor(config.InfoColor).
			AddField("/register", "Create your account and receive your starting PPT", false).
			AddField("/profile", "View your currency balances and collection size", false).
			AddField("/spin", "Spend PPT on gacha spins for character cards", false).
			AddField("/collection", "Browse the cards you own", false).
			AddField("/find", "Look up a character card by name", false).
			AddField("/inject", "Top up your PPT balance", false).
			SetFooter("Rare ✨ • Uncommon 🌟 • Common ⚪", "").
			Build()

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{embed},
		})
	}
}
