package gacha

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kiyotakas/rotebot/rotebot/database/repositories"
)

// Account owns the balance invariants for the spendable currency.
type Account struct {
	users repositories.UserRepository
}

func NewAccount(users repositories.UserRepository) *Account {
	return &Account{users: users}
}

// Authorize is the pure affordability check. It mutates nothing; a
// session re-runs it at confirm time because the balance may have moved
// since the request was rendered.
func Authorize(balance, amount int64) bool {
	return balance >= amount
}

// Balance reads the current PPT balance. An unknown user maps to
// ErrNotRegistered rather than leaking the driver's no-rows error.
func (a *Account) Balance(ctx context.Context, userID string) (int64, error) {
	balance, err := a.users.GetBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotRegistered
		}
		return 0, wrapStore("balance read", err)
	}
	return balance, nil
}

// Debit atomically subtracts amount, refusing to drive the balance
// negative. The session state machine guarantees at most one call per
// confirmed session.
func (a *Account) Debit(ctx context.Context, userID string, amount int64) error {
	debited, err := a.users.DebitBalance(ctx, userID, amount)
	if err != nil {
		return wrapStore("debit", err)
	}
	if !debited {
		return ErrInsufficientFunds
	}
	return nil
}

// Credit adds to the balance unconditionally (registration grants,
// test injections).
func (a *Account) Credit(ctx context.Context, userID string, amount int64) error {
	if err := a.users.AddBalance(ctx, userID, amount); err != nil {
		return wrapStore("credit", err)
	}
	return nil
}
