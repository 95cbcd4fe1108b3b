package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/kiyotakas/rotebot/rotebot"
	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/kiyotakas/rotebot/rotebot/gacha"
	"github.com/kiyotakas/rotebot/rotebot/utils"
)

var Collection = discord.SlashCommandCreate{
	Name:        "collection",
	Description: "📦 Browse your card collection",
}

func CollectionHandler(b *rotebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		userID := e.User().ID.String()
		if _, err := b.UserRepository.GetByDiscordID(ctx, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.EH.CreateError(e, "Not Registered",
					"You need to register first! Use /register to get started.")
			}
			return utils.EH.CreateErrorEmbed(e, "Failed to load your collection. Please try again later.")
		}

		owned, err := b.UserCardRepository.GetAllByUserID(ctx, userID)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your collection. Please try again later.")
		}
		if len(owned) == 0 {
			return utils.EH.CreateInfoEmbed(e,
				"You don't own any cards yet. Use /spin to draw some!")
		}

		pages, err := collectionPages(ctx, e.User(), owned, b.Catalog.GetByName)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your collection. Please try again later.")
		}

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.Embed = pages[page]
				embed.SetFooter(fmt.Sprintf("Card %d/%d • %s's Collection", page+1, len(pages), e.User().Username), "")
			},
			Pages:      len(pages),
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

// collectionPages builds one embed per owned card, showing the user's
// progressed stats over the template's. Cards whose template has gone
// missing from the catalog render a placeholder page instead of hiding.
func collectionPages(ctx context.Context, user discord.User, owned []*models.UserCard,
	lookup func(context.Context, string) (*models.Card, error)) ([]discord.Embed, error) {
	pages := make([]discord.Embed, 0, len(owned))
	for _, card := range owned {
		tmpl, err := lookup(ctx, card.CardName)
		if err != nil {
			if errors.Is(err, gacha.ErrCardNotFound) {
				pages = append(pages, utils.CreateMissingCardEmbed(card.CardName))
				continue
			}
			return nil, err
		}
		pages = append(pages, utils.CreateCharacterEmbed(user, tmpl, card))
	}
	return pages, nil
}
