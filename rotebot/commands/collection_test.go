package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/kiyotakas/rotebot/rotebot/gacha"
)

func collectionLookup(templates map[string]*models.Card) func(context.Context, string) (*models.Card, error) {
	return func(_ context.Context, name string) (*models.Card, error) {
		tmpl, ok := templates[name]
		if !ok {
			return nil, gacha.ErrCardNotFound
		}
		return tmpl, nil
	}
}

func embedField(t *testing.T, embed discord.Embed, name string) string {
	t.Helper()
	for _, f := range embed.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	t.Fatalf("embed has no field %q", name)
	return ""
}

func TestCollectionPagesShowProgressedStats(t *testing.T) {
	templates := map[string]*models.Card{
		"Horikita suzune": {
			Name:       "Horikita suzune",
			Resolve:    20,
			Mental:     50,
			Physical:   30,
			Social:     10,
			Initiative: 40,
			Star:       1,
		},
	}
	owned := []*models.UserCard{{
		UserID:     "1",
		CardName:   "Horikita suzune",
		Resolve:    40,
		Mental:     70,
		Physical:   50,
		Social:     30,
		Initiative: 60,
		Star:       4,
	}}

	pages, err := collectionPages(context.Background(), discord.User{Username: "kiyo"}, owned, collectionLookup(templates))
	require.NoError(t, err)
	require.Len(t, pages, 1)

	stats := embedField(t, pages[0], "Stats")
	assert.Contains(t, stats, "**Mental:** 70")
	assert.Contains(t, stats, "**Resolve:** 40")
	assert.NotContains(t, stats, "**Mental:** 50")
	assert.Contains(t, pages[0].Title, "⭐⭐⭐⭐")
}

func TestCollectionPagesMissingTemplate(t *testing.T) {
	owned := []*models.UserCard{
		{UserID: "1", CardName: "Ghost Character", Star: 2},
	}

	pages, err := collectionPages(context.Background(), discord.User{Username: "kiyo"}, owned, collectionLookup(nil))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Unknown Character", pages[0].Title)
}

func TestCollectionPagesStoreFailure(t *testing.T) {
	errDown := errors.New("store down")
	lookup := func(context.Context, string) (*models.Card, error) {
		return nil, errDown
	}
	owned := []*models.UserCard{
		{UserID: "1", CardName: "Horikita suzune", Star: 1},
	}

	_, err := collectionPages(context.Background(), discord.User{Username: "kiyo"}, owned, lookup)
	require.ErrorIs(t, err, errDown)
}
