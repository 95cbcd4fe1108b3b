package repositories

import (
	"context"
	"time"

	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/uptrace/bun"
)

type UserCardRepository interface {
	GetByUserAndCard(ctx context.Context, userID, cardName string) (*models.UserCard, error)
	GetAllByUserID(ctx context.Context, userID string) ([]*models.UserCard, error)
	CountByUserID(ctx context.Context, userID string) (int, error)
	Upsert(ctx context.Context, card *models.UserCard) error
}

type userCardRepository struct {
	db *bun.DB
}

func NewUserCardRepository(db *bun.DB) UserCardRepository {
	return &userCardRepository{db: db}
}

func (r *userCardRepository) GetByUserAndCard(ctx context.Context, userID, cardName string) (*models.UserCard, error) {
	userCard := new(models.UserCard)
	err := r.db.NewSelect().
		Model(userCard).
		Where("user_id = ? AND card_name = ?", userID, cardName).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return userCard, nil
}

func (r *userCardRepository) GetAllByUserID(ctx context.Context, userID string) ([]*models.UserCard, error) {
	var userCards []*models.UserCard
	err := r.db.NewSelect().
		Model(&userCards).
		Where("user_id = ?", userID).
		Order("obtained ASC").
		Scan(ctx)
	return userCards, err
}

func (r *userCardRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	return r.db.NewSelect().
		Model((*models.UserCard)(nil)).
		Where("user_id = ?", userID).
		Count(ctx)
}

// Upsert writes one owned card keyed by (user_id, card_name). The write
// touches only that row, never the rest of the user's collection.
func (r *userCardRepository) Upsert(ctx context.Context, card *models.UserCard) error {
	now := time.Now()
	if card.CreatedAt.IsZero() {
		card.CreatedAt = now
	}
	if card.Obtained.IsZero() {
		card.Obtained = now
	}
	card.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(card).
		On("CONFLICT (user_id, card_name) DO UPDATE").
		Set("resolve = EXCLUDED.resolve").
		Set("mental = EXCLUDED.mental").
		Set("physical = EXCLUDED.physical").
		Set("social = EXCLUDED.social").
		Set("initiative = EXCLUDED.initiative").
		Set("star = EXCLUDED.star").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
