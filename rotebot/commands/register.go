package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/kiyotakas/rotebot/rotebot"
	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/kiyotakas/rotebot/rotebot/utils"
)

var Register = discord.SlashCommandCreate{
	Name:        "register",
	Description: "📝 Register as a new user and receive your starting PPT",
}

func RegisterHandler(b *rotebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		userID := e.User().ID.String()
		username := e.User().Username

		_, err := b.UserRepository.GetByDiscordID(ctx, userID)
		if err == nil {
			return e.CreateMessage(discord.MessageCreate{
				Embeds: []discord.Embed{{
					Title:       "Already Registered!",
					Description: "You are already registered in the system.",
					Color:       config.WarningColor,
				}},
			})
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return utils.EH.CreateErrorEmbed(e, "Failed to check registration. Please try again later.")
		}

		user := &models.User{
			DiscordID:   userID,
			Username:    username,
			PPT:         b.Cfg.Game.InitialPPT,
			BlackTokens: b.Cfg.Game.InitialBlackTokens,
			FTPS:        0,
		}
		if err := b.UserRepository.Create(ctx, user); err != nil {
			slog.Error("Failed to create user",
				slog.String("type", "db"),
				slog.String("discord_id", userID),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to register. Please try again later.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "Registration Successful!",
				Description: fmt.Sprintf("Welcome %s! You've been registered with %s PPT and %d Black Tokens.",
					username, utils.FormatNumber(user.PPT), user.BlackTokens),
				Color: config.SuccessColor,
			}},
		})
	}
}
