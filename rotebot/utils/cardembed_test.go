package utils

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiyotakas/rotebot/rotebot/database/models"
)

func TestStarDisplay(t *testing.T) {
	assert.Equal(t, "⭐", StarDisplay(1))
	assert.Equal(t, "⭐⭐⭐", StarDisplay(3))
	assert.Equal(t, "⭐", StarDisplay(0), "star floors at 1 for display")
}

func TestFormatSupportBonus(t *testing.T) {
	tests := []struct {
		name  string
		bonus string
		star  int
		want  string
	}{
		{
			name:  "long bonus below four stars gets placeholder",
			bonus: "+8% damage to all allies",
			star:  2,
			want:  "+16% damage to all allies",
		},
		{
			name:  "four stars shows real value",
			bonus: "+8% damage to all allies",
			star:  4,
			want:  "+8% damage to all allies",
		},
		{
			name:  "five stars shows real value",
			bonus: "+8% damage to all allies",
			star:  5,
			want:  "+8% damage to all allies",
		},
		{
			name:  "short bonus untouched",
			bonus: "+8% damage boost",
			star:  1,
			want:  "+8% damage boost",
		},
		{
			name:  "empty bonus untouched",
			bonus: "",
			star:  1,
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSupportBonus(tt.bonus, tt.star))
		})
	}
}

func embedField(t *testing.T, embed discord.Embed, name string) *discord.EmbedField {
	t.Helper()
	for i := range embed.Fields {
		if embed.Fields[i].Name == name {
			return &embed.Fields[i]
		}
	}
	return nil
}

func TestCreateCharacterEmbedTemplateStats(t *testing.T) {
	tmpl := &models.Card{
		Name:        "Karuizawa Kei",
		Personality: "Outgoing",
		Moves:       "Support",
		ImageURL:    "https://example.com/kei.png",
		Mental:      30,
		Star:        1,
		Tags:        []string{"class-d"},
	}

	embed := CreateCharacterEmbed(discord.User{}, tmpl, nil)

	assert.Contains(t, embed.Title, "Karuizawa Kei")
	assert.Contains(t, embed.Title, "⭐")
	require.NotNil(t, embed.Image)
	assert.Equal(t, tmpl.ImageURL, embed.Image.URL)

	stats := embedField(t, embed, "Stats")
	require.NotNil(t, stats)
	assert.Contains(t, stats.Value, "**Mental:** 30")

	require.NotNil(t, embed.Footer)
	assert.Contains(t, embed.Footer.Text, "class-d")
}

func TestCreateCharacterEmbedOwnedStatsOverride(t *testing.T) {
	tmpl := &models.Card{Name: "Karuizawa Kei", Mental: 30, Star: 1}
	owned := &models.UserCard{
		UserID:   "u1",
		CardName: "Karuizawa Kei",
		Mental:   70,
		Star:     3,
	}

	embed := CreateCharacterEmbed(discord.User{}, tmpl, owned)

	stats := embedField(t, embed, "Stats")
	require.NotNil(t, stats)
	assert.Contains(t, stats.Value, "**Mental:** 70")
	assert.Contains(t, embed.Title, "⭐⭐⭐")
}

func TestCreateCharacterEmbedSupportBonusRewrite(t *testing.T) {
	tmpl := &models.Card{
		Name:         "Karuizawa Kei",
		Star:         2,
		SupportBonus: "+8% healing to front row",
	}

	embed := CreateCharacterEmbed(discord.User{}, tmpl, nil)

	bonus := embedField(t, embed, "Support Bonus")
	require.NotNil(t, bonus)
	assert.Contains(t, bonus.Value, "+16%")
	assert.NotContains(t, bonus.Value, "+8%")
}

func TestCreateMissingCardEmbed(t *testing.T) {
	embed := CreateMissingCardEmbed("Ghost Character")
	assert.Contains(t, embed.Description, "Ghost Character")
}
