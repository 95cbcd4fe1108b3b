package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/kiyotakas/rotebot/rotebot"
	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/gacha"
	"github.com/kiyotakas/rotebot/rotebot/utils"
)

var Spin = discord.SlashCommandCreate{
	Name:        "spin",
	Description: "🎰 Spin the gacha for character cards",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "Number of spins (default: 1)",
			Required:    false,
			MinValue:    &[]int{1}[0],
			MaxValue:    &[]int{config.MaxSpinsPerCommand}[0],
		},
	},
}

func SpinHandler(b *rotebot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		amount := 1
		if amountOpt, ok := e.SlashCommandInteractionData().OptInt("amount"); ok {
			amount = amountOpt
		}

		userID := e.User().ID.String()
		sess, err := b.SpinManager.Request(ctx, userID, amount)
		if err != nil {
			switch {
			case errors.Is(err, gacha.ErrInvalidSpinCount):
				return utils.EH.CreateError(e, "Invalid Amount",
					fmt.Sprintf("You can spin between 1 and %d times per command.", b.SpinManager.MaxSpins()))
			case errors.Is(err, gacha.ErrNotRegistered):
				return utils.EH.CreateError(e, "Not Registered",
					"You need to register first! Use /register to get started.")
			case errors.Is(err, gacha.ErrInsufficientFunds):
				return utils.EH.CreateError(e, "Insufficient PPT",
					fmt.Sprintf("You need %s PPT for %d spin(s).",
						utils.FormatNumber(int64(amount)*b.SpinManager.UnitCost()), amount))
			case errors.Is(err, gacha.ErrSessionBusy):
				return utils.EH.CreateError(e, "Spin In Progress",
					"Finish or cancel your current spin before starting a new one.")
			default:
				return utils.EH.CreateErrorEmbed(e, "Failed to start a spin. Please try again later.")
			}
		}

		embed := discord.NewEmbedBuilder().
			SetTitle("🎰 Confirm Spin").
			SetDescription(fmt.Sprintf("You are about to spin **%d** time(s).", sess.Count())).
			SetColor(config.InfoColor).
			AddField("Your PPT", utils.FormatNumber(sess.BalanceAtRequest()), true).
			AddField("Cost", utils.FormatNumber(sess.TotalCost()), true).
			AddField("Remaining", utils.FormatNumber(sess.BalanceAtRequest()-sess.TotalCost()), true).
			SetFooter(fmt.Sprintf("Expires in %d seconds", int(config.SpinConfirmTimeout/time.Second)), "").
			Build()

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{embed},
			Components: []discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewPrimaryButton("🎰 Spin!", "/spin/"+sess.ID()+"/confirm"),
					discord.NewDangerButton("❌ Cancel", "/spin/"+sess.ID()+"/cancel"),
				),
			},
		})
	}
}

func SpinComponentHandler(b *rotebot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		data, ok := e.Data.(discord.ButtonInteractionData)
		if !ok {
			return fmt.Errorf("invalid interaction type")
		}

		rest := strings.TrimPrefix(data.CustomID(), "/spin/")
		idx := strings.LastIndex(rest, "/")
		if idx < 0 {
			return fmt.Errorf("malformed spin custom id: %s", data.CustomID())
		}
		sessionID, action := rest[:idx], rest[idx+1:]

		sess, found := b.SpinManager.Get(sessionID)
		if !found {
			return e.UpdateMessage(spinResolvedUpdate("This spin has expired.", config.WarningColor))
		}

		userID := e.User().ID.String()
		switch action {
		case "cancel":
			if err := sess.Cancel(userID); err != nil {
				return spinActionError(e, err)
			}
			return e.UpdateMessage(spinResolvedUpdate("Spin cancelled. No PPT was spent.", config.WarningColor))
		case "confirm":
			return runSpin(e, b, sess)
		default:
			return fmt.Errorf("unknown spin action: %s", action)
		}
	}
}

// runSpin owns the interaction from confirmation to the final report: the
// confirm message becomes a progress display, then the summary, with the
// per-draw card embeds following as followup messages.
func runSpin(e *handler.ComponentEvent, b *rotebot.Bot, sess *gacha.Session) error {
	userID := e.User().ID.String()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if sess.Owner() != userID {
		return utils.EH.CreateEphemeralError(e, "Only the user who started this spin can respond to it.")
	}

	// Acknowledge before the live balance read so a slow store cannot
	// outlive the interaction's response window.
	if err := e.DeferUpdateMessage(); err != nil {
		return err
	}

	if err := sess.Confirm(ctx, userID); err != nil {
		switch {
		case errors.Is(err, gacha.ErrSessionResolved):
			_, uerr := e.UpdateInteractionResponse(spinResolvedUpdate(
				"This spin has already been resolved.", config.WarningColor))
			return uerr
		case errors.Is(err, gacha.ErrInsufficientFunds):
			_, uerr := e.UpdateInteractionResponse(spinResolvedUpdate(
				"Your PPT balance changed and no longer covers this spin. No PPT was spent.", config.ErrorColor))
			return uerr
		default:
			_, uerr := e.UpdateInteractionResponse(spinResolvedUpdate(
				"Failed to process your spin. No PPT was spent.", config.ErrorColor))
			return uerr
		}
	}

	_, _ = e.UpdateInteractionResponse(spinProgressUpdate(0, sess.Count()))

	report, err := sess.Run(ctx, func(done, total int) {
		if done%config.SpinProgressEvery != 0 || done == total {
			return
		}
		_, _ = e.UpdateInteractionResponse(spinProgressUpdate(done, total))
	})
	if err != nil {
		_, uerr := e.UpdateInteractionResponse(spinResolvedUpdate(
			"Something went wrong during your spin. No PPT was spent.", config.ErrorColor))
		return uerr
	}

	summary := discord.NewEmbedBuilder().
		SetTitle("🎰 Spin Results").
		SetColor(config.SuccessColor).
		AddField("Spins", fmt.Sprintf("%d", report.Requested), true).
		AddField("Total Cost", utils.FormatNumber(report.TotalCost), true).
		AddField("Remaining PPT", formatRemaining(report.RemainingBalance), true).
		Build()
	if _, err := e.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds:     &[]discord.Embed{summary},
		Components: &[]discord.ContainerComponent{},
	}); err != nil {
		return err
	}

	// Discord caps embeds at 10 per message.
	var batch []discord.Embed
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		_, err := e.CreateFollowupMessage(discord.MessageCreate{Embeds: batch})
		batch = nil
		return err
	}
	for _, result := range report.Results {
		if result.Missing {
			batch = append(batch, utils.CreateMissingCardEmbed(result.CardName))
		} else {
			batch = append(batch, utils.CreateCharacterEmbed(e.User(), result.Template, result.Card))
		}
		if len(batch) == 10 {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func spinActionError(e *handler.ComponentEvent, err error) error {
	switch {
	case errors.Is(err, gacha.ErrNotSessionOwner):
		return utils.EH.CreateEphemeralError(e, "Only the user who started this spin can respond to it.")
	case errors.Is(err, gacha.ErrSessionResolved):
		return utils.EH.CreateEphemeralError(e, "This spin has already been resolved.")
	default:
		return e.UpdateMessage(spinResolvedUpdate(
			"Failed to process your spin. No PPT was spent.", config.ErrorColor))
	}
}

func spinResolvedUpdate(message string, color int) discord.MessageUpdate {
	return discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Description: message,
			Color:       color,
		}},
		Components: &[]discord.ContainerComponent{},
	}
}

func spinProgressUpdate(done, total int) discord.MessageUpdate {
	embed := discord.NewEmbedBuilder().
		SetTitle("🎰 Spinning...").
		SetDescription(fmt.Sprintf("Spin %d/%d", done, total)).
		SetColor(config.InfoColor).
		Build()
	return discord.MessageUpdate{
		Embeds:     &[]discord.Embed{embed},
		Components: &[]discord.ContainerComponent{},
	}
}

func formatRemaining(balance int64) string {
	if balance < 0 {
		return "unknown"
	}
	return utils.FormatNumber(balance)
}
