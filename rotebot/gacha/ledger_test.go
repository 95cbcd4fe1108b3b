package gacha

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/database/models"
)

func testTemplate() *models.Card {
	return &models.Card{
		Name:         "Horikita suzune",
		Resolve:      40,
		Mental:       50,
		Physical:     30,
		Social:       20,
		Initiative:   60,
		Star:         1,
		SupportBonus: "Analysis boost",
		Tags:         []string{"class-d"},
	}
}

func TestAdvanceFirstAcquisition(t *testing.T) {
	tmpl := testTemplate()
	got, outcome := Advance(nil, tmpl, "u1")

	assert.Equal(t, OutcomeNew, outcome)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, tmpl.Name, got.CardName)
	assert.Equal(t, tmpl.Mental, got.Mental)
	assert.Equal(t, tmpl.Star, got.Star)
	assert.Equal(t, tmpl.Tags, got.Tags)
}

func TestAdvanceZeroStarTemplateClampsToBase(t *testing.T) {
	tmpl := testTemplate()
	tmpl.Star = 0
	got, _ := Advance(nil, tmpl, "u1")
	assert.Equal(t, config.BaseStar, got.Star)
}

func TestAdvanceDuplicateUpgrades(t *testing.T) {
	owned := &models.UserCard{
		UserID:     "u1",
		CardName:   "Horikita suzune",
		Resolve:    40,
		Mental:     50,
		Physical:   30,
		Social:     20,
		Initiative: 60,
		Star:       3,
	}
	got, outcome := Advance(owned, testTemplate(), "u1")

	assert.Equal(t, OutcomeUpgraded, outcome)
	assert.Equal(t, 4, got.Star)
	assert.Equal(t, int64(70), got.Mental)
	assert.Equal(t, int64(60), got.Resolve)
	assert.Equal(t, int64(50), got.Physical)
	assert.Equal(t, int64(40), got.Social)
	assert.Equal(t, int64(80), got.Initiative)
	// Input must stay untouched.
	assert.Equal(t, 3, owned.Star)
	assert.Equal(t, int64(50), owned.Mental)
}

func TestAdvanceMaxStarIsNoOp(t *testing.T) {
	owned := &models.UserCard{
		UserID:   "u1",
		CardName: "Horikita suzune",
		Mental:   90,
		Star:     config.MaxStar,
	}
	got, outcome := Advance(owned, testTemplate(), "u1")

	assert.Equal(t, OutcomeMaxed, outcome)
	assert.Equal(t, config.MaxStar, got.Star)
	assert.Equal(t, int64(90), got.Mental)
}

func TestAdvanceNeverExceedsMaxStar(t *testing.T) {
	owned, _ := Advance(nil, testTemplate(), "u1")
	for i := 0; i < 20; i++ {
		owned, _ = Advance(owned, testTemplate(), "u1")
		require.LessOrEqual(t, owned.Star, config.MaxStar)
		require.GreaterOrEqual(t, owned.Star, config.BaseStar)
	}
	assert.Equal(t, config.MaxStar, owned.Star)
}

func TestApplyAcquisitionPersists(t *testing.T) {
	repo := newFakeUserCardRepo()
	ledger := NewLedger(repo)
	ctx := context.Background()

	card, outcome, err := ledger.ApplyAcquisition(ctx, "u1", testTemplate())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNew, outcome)
	assert.Equal(t, 1, card.Star)

	card, outcome, err = ledger.ApplyAcquisition(ctx, "u1", testTemplate())
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpgraded, outcome)
	assert.Equal(t, 2, card.Star)

	stored, err := repo.GetByUserAndCard(ctx, "u1", "Horikita suzune")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Star)
	assert.Equal(t, int64(70), stored.Mental)
}

func TestApplyAcquisitionStoreOutage(t *testing.T) {
	repo := newFakeUserCardRepo()
	repo.fail = true
	ledger := NewLedger(repo)

	_, _, err := ledger.ApplyAcquisition(context.Background(), "u1", testTemplate())
	require.ErrorIs(t, err, ErrStoreUnavailable)
}
