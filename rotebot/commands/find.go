package commands

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/kiyotakas/rotebot/rotebot"
	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/utils"
)

var Find = discord.SlashCommandCreate{
	Name:        "find",
	Description: "🔍 Look up a character card by name",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Character name to search for",
			Required:    true,
		},
	},
}

func FindHandler(b *rotebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		query := e.SlashCommandInteractionData().String("name")
		cards, err := b.Catalog.Search(ctx, query)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Search failed. Please try again later.")
		}
		if len(cards) == 0 {
			return utils.EH.CreateError(e, "No Results",
				fmt.Sprintf("No character matches `%s`.", query))
		}

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				card := cards[page]
				embed.Embed = utils.CreateCharacterEmbed(e.User(), card, nil)
				embed.SetFooter(fmt.Sprintf("Result %d/%d", page+1, len(cards)), "")
			},
			Pages:      len(cards),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
