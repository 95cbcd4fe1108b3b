package gacha

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/kiyotakas/rotebot/rotebot/database/models"
)

// In-memory stand-ins for the Postgres repositories, with the same
// atomicity semantics the SQL versions guarantee.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	fail  bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

var errFakeDown = errors.New("store down")

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errFakeDown
	}
	cp := *user
	r.users[user.DiscordID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByDiscordID(_ context.Context, discordID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errFakeDown
	}
	u, ok := r.users[discordID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetBalance(_ context.Context, discordID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return 0, errFakeDown
	}
	u, ok := r.users[discordID]
	if !ok {
		return 0, sql.ErrNoRows
	}
	return u.PPT, nil
}

func (r *fakeUserRepo) AddBalance(_ context.Context, discordID string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errFakeDown
	}
	u, ok := r.users[discordID]
	if !ok {
		return sql.ErrNoRows
	}
	u.PPT += delta
	return nil
}

func (r *fakeUserRepo) DebitBalance(_ context.Context, discordID string, amount int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return false, errFakeDown
	}
	u, ok := r.users[discordID]
	if !ok || u.PPT < amount {
		return false, nil
	}
	u.PPT -= amount
	return true, nil
}

type fakeUserCardRepo struct {
	mu    sync.Mutex
	cards map[string]*models.UserCard
	fail  bool
}

func newFakeUserCardRepo() *fakeUserCardRepo {
	return &fakeUserCardRepo{cards: make(map[string]*models.UserCard)}
}

func cardKey(userID, cardName string) string {
	return userID + "/" + cardName
}

func (r *fakeUserCardRepo) GetByUserAndCard(_ context.Context, userID, cardName string) (*models.UserCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errFakeDown
	}
	c, ok := r.cards[cardKey(userID, cardName)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (r *fakeUserCardRepo) GetAllByUserID(_ context.Context, userID string) ([]*models.UserCard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errFakeDown
	}
	var out []*models.UserCard
	for _, c := range r.cards {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserCardRepo) CountByUserID(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return 0, errFakeDown
	}
	n := 0
	for _, c := range r.cards {
		if c.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserCardRepo) Upsert(_ context.Context, card *models.UserCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errFakeDown
	}
	cp := *card
	r.cards[cardKey(card.UserID, card.CardName)] = &cp
	return nil
}

type fakeCatalog struct {
	mu    sync.Mutex
	cards map[string]*models.Card
	fail  bool
}

func newFakeCatalog(cards ...*models.Card) *fakeCatalog {
	c := &fakeCatalog{cards: make(map[string]*models.Card)}
	for _, card := range cards {
		c.cards[card.Name] = card
	}
	return c
}

func (c *fakeCatalog) GetByName(_ context.Context, name string) (*models.Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, wrapStore("catalog read", errFakeDown)
	}
	card, ok := c.cards[name]
	if !ok {
		return nil, ErrCardNotFound
	}
	cp := *card
	return &cp, nil
}
