package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/kiyotakas/rotebot/rotebot"
	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/gacha"
	"github.com/kiyotakas/rotebot/rotebot/utils"
)

var Inject = discord.SlashCommandCreate{
	Name:        "inject",
	Description: "💉 Inject PPT into your account",
}

func InjectHandler(b *rotebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		userID := e.User().ID.String()
		// Credit succeeds silently on unknown users, so check first.
		if _, err := b.Account.Balance(ctx, userID); err != nil {
			if errors.Is(err, gacha.ErrNotRegistered) {
				return utils.EH.CreateError(e, "Not Registered",
					"You need to register first! Use /register to get started.")
			}
			return utils.EH.CreateErrorEmbed(e, "Failed to inject PPT. Please try again later.")
		}

		amount := b.Cfg.Game.InjectAmount
		if err := b.Account.Credit(ctx, userID, amount); err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to inject PPT. Please try again later.")
		}

		return utils.EH.CreateSuccessEmbed(e,
			fmt.Sprintf("💉 Injected **%s** PPT into your account!", utils.FormatNumber(amount)))
	}
}
