package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/kiyotakas/rotebot/rotebot/gacha"
)

type fakeCardRepo struct {
	cards    []*models.Card
	fail     bool
	getCalls int
}

var errRepoDown = errors.New("repo down")


func (r *fakeCardRepo) GetByName(_ context.Context, name string) (*models.Card, error) {
	r.getCalls++
	if r.fail {
		return nil, errRepoDown
	}
	for _, c := range r.cards {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeCardRepo) GetAll(context.Context) ([]*models.Card, error) {
	if r.fail {
		return nil, errRepoDown
	}
	return r.cards, nil
}

func (r *fakeCardRepo) Search(_ context.Context, term string) ([]*models.Card, error) {
	if r.fail {
		return nil, errRepoDown
	}
	var out []*models.Card
	for _, c := range r.cards {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func rosterRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: []*models.Card{
		{Name: "Ayanokoji kiyotaka"},
		{Name: "Horikita suzune"},
		{Name: "Karuizawa Kei"},
	}}
}

func TestGetByNameCaseInsensitive(t *testing.T) {
	catalog := NewCatalog(rosterRepo())
	ctx := context.Background()

	card, err := catalog.GetByName(ctx, "karuizawa kei")
	require.NoError(t, err)
	assert.Equal(t, "Karuizawa Kei", card.Name)
}

func TestGetByNameMiss(t *testing.T) {
	catalog := NewCatalog(rosterRepo())
	_, err := catalog.GetByName(context.Background(), "Nobody")
	require.ErrorIs(t, err, gacha.ErrCardNotFound)
}

func TestGetByNameCachesHits(t *testing.T) {
	repo := rosterRepo()
	catalog := NewCatalog(repo)
	ctx := context.Background()

	_, err := catalog.GetByName(ctx, "Horikita suzune")
	require.NoError(t, err)
	_, err = catalog.GetByName(ctx, "HORIKITA SUZUNE")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.getCalls, "second lookup must come from cache")
}

func TestGetByNameStoreOutage(t *testing.T) {
	repo := rosterRepo()
	repo.fail = true
	catalog := NewCatalog(repo)

	_, err := catalog.GetByName(context.Background(), "Karuizawa Kei")
	require.ErrorIs(t, err, gacha.ErrStoreUnavailable)
}

func TestSearchSubstring(t *testing.T) {
	catalog := NewCatalog(rosterRepo())
	cards, err := catalog.Search(context.Background(), "suzu")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Horikita suzune", cards[0].Name)
}

func TestSearchFuzzyFallback(t *testing.T) {
	catalog := NewCatalog(rosterRepo())
	// Not a substring of any name; fuzzy should still land on Ayanokoji.
	cards, err := catalog.Search(context.Background(), "aynkoji")
	require.NoError(t, err)
	require.NotEmpty(t, cards)
	assert.Equal(t, "Ayanokoji kiyotaka", cards[0].Name)
}

func TestSearchNoMatchIsEmpty(t *testing.T) {
	catalog := NewCatalog(rosterRepo())
	cards, err := catalog.Search(context.Background(), "zzzzqqqq")
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestSearchBlankTerm(t *testing.T) {
	catalog := NewCatalog(rosterRepo())
	cards, err := catalog.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, cards)
}
