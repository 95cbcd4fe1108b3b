package gacha

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiyotakas/rotebot/rotebot/database/models"
)

func TestAuthorize(t *testing.T) {
	assert.True(t, Authorize(10000, 10000))
	assert.True(t, Authorize(10001, 10000))
	assert.False(t, Authorize(9999, 10000))
	assert.True(t, Authorize(0, 0))
}

func TestBalanceUnknownUser(t *testing.T) {
	account := NewAccount(newFakeUserRepo())
	_, err := account.Balance(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotRegistered)
}

func TestDebitRefusesOverdraw(t *testing.T) {
	repo := newFakeUserRepo()
	require.NoError(t, repo.Create(context.Background(), &models.User{DiscordID: "u1", PPT: 1000}))
	account := NewAccount(repo)
	ctx := context.Background()

	err := account.Debit(ctx, "u1", 2000)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	balance, err := account.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance, "failed debit must not touch the balance")

	require.NoError(t, account.Debit(ctx, "u1", 1000))
	balance, err = account.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestCreditAndDebitRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	require.NoError(t, repo.Create(context.Background(), &models.User{DiscordID: "u1", PPT: 0}))
	account := NewAccount(repo)
	ctx := context.Background()

	require.NoError(t, account.Credit(ctx, "u1", 100000))
	require.NoError(t, account.Debit(ctx, "u1", 10000))

	balance, err := account.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(90000), balance)
}

func TestAccountStoreOutage(t *testing.T) {
	repo := newFakeUserRepo()
	repo.fail = true
	account := NewAccount(repo)
	ctx := context.Background()

	_, err := account.Balance(ctx, "u1")
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.ErrorIs(t, account.Debit(ctx, "u1", 1), ErrStoreUnavailable)
	require.ErrorIs(t, account.Credit(ctx, "u1", 1), ErrStoreUnavailable)
}
