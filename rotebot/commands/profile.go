package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/kiyotakas/rotebot/rotebot"
	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/utils"
)

var Profile = discord.SlashCommandCreate{
	Name:        "profile",
	Description: "👤 View your profile and currency balances",
}

func ProfileHandler(b *rotebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		userID := e.User().ID.String()
		user, err := b.UserRepository.GetByDiscordID(ctx, userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.EH.CreateError(e, "Not Registered",
					"You need to register first! Use /register to get started.")
			}
			return utils.EH.CreateErrorEmbed(e, "Failed to load your profile. Please try again later.")
		}

		cardCount, err := b.UserCardRepository.CountByUserID(ctx, userID)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your profile. Please try again later.")
		}

		embed := discord.NewEmbedBuilder().
			SetTitle("Your Profile").
			SetColor(config.InfoColor).
			SetAuthor(e.User().Username, "", e.User().EffectiveAvatarURL()).
			AddField("Name", user.Username, false).
			AddField("PPT", utils.FormatNumber(user.PPT), true).
			AddField("Black Tokens", fmt.Sprintf("%d", user.BlackTokens), true).
			AddField("FTPS", fmt.Sprintf("%d", user.FTPS), true).
			AddField("Cards Collected", fmt.Sprintf("%d", cardCount), true).
			Build()

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{embed},
		})
	}
}
