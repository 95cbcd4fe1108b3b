package utils

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"

	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/kiyotakas/rotebot/rotebot/gacha"
)

// StarDisplay renders the star row for a card's progression tier.
func StarDisplay(star int) string {
	if star < 1 {
		star = 1
	}
	return strings.Repeat("⭐", star)
}

// FormatSupportBonus applies the display-only rewrite: below four stars
// a bonus of at least four space-separated tokens shows the placeholder
// percentage instead of its real first token. Stored data is untouched.
func FormatSupportBonus(bonus string, star int) string {
	if bonus == "" || star >= config.SupportBonusMaxStar {
		return bonus
	}
	parts := strings.Split(bonus, " ")
	if len(parts) < config.SupportBonusMinTokens {
		return bonus
	}
	parts[0] = config.SupportBonusPlaceholder
	return strings.Join(parts, " ")
}

// CreateCharacterEmbed builds the card display embed. When owned is nil
// the template's base stats are shown; otherwise the user's progressed
// stats and star level take over.
func CreateCharacterEmbed(user discord.User, tmpl *models.Card, owned *models.UserCard) discord.Embed {
	resolve := tmpl.Resolve
	mental := tmpl.Mental
	physical := tmpl.Physical
	social := tmpl.Social
	initiative := tmpl.Initiative
	supportBonus := tmpl.SupportBonus
	tags := tmpl.Tags
	star := tmpl.Star

	if owned != nil {
		resolve = owned.Resolve
		mental = owned.Mental
		physical = owned.Physical
		social = owned.Social
		initiative = owned.Initiative
		supportBonus = owned.SupportBonus
		tags = owned.Tags
		star = owned.Star
	}
	if star < 1 {
		star = 1
	}

	marker := gacha.Classify(tmpl.Name).Marker()

	builder := discord.NewEmbedBuilder().
		SetTitle(fmt.Sprintf("%s %s %s", marker, tmpl.Name, StarDisplay(star))).
		SetColor(config.InfoColor).
		SetAuthor(user.Username, "", user.EffectiveAvatarURL()).
		AddField("Character Info",
			fmt.Sprintf("**Personality:** %s\n**Moves:** %s", tmpl.Personality, tmpl.Moves),
			false).
		AddField("Stats",
			fmt.Sprintf("**Resolve:** %d\n**Mental:** %d\n**Physical:** %d\n**Social:** %d\n**Initiative:** %d",
				resolve, mental, physical, social, initiative),
			true)

	if tmpl.ImageURL != "" {
		builder.SetImage(tmpl.ImageURL)
	}

	if formatted := FormatSupportBonus(supportBonus, star); formatted != "" {
		builder.AddField("Support Bonus", formatted, false)
	}

	if len(tags) > 0 {
		builder.SetFooter(fmt.Sprintf("Tags: %s", strings.Join(tags, ", ")), "")
	}

	return builder.Build()
}

// CreateMissingCardEmbed marks a draw whose character has no catalog
// template. The spin stays consumed; the report says why it is empty.
func CreateMissingCardEmbed(cardName string) discord.Embed {
	return discord.NewEmbedBuilder().
		SetTitle("Unknown Character").
		SetDescription(fmt.Sprintf("Could not find data for %s", cardName)).
		SetColor(config.WarningColor).
		Build()
}
