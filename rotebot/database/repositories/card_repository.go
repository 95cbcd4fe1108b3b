package repositories

import (
	"context"
	"log/slog"

	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/uptrace/bun"
)

type CardRepository interface {
	GetByName(ctx context.Context, name string) (*models.Card, error)
	GetAll(ctx context.Context) ([]*models.Card, error)
	Search(ctx context.Context, term string) ([]*models.Card, error)
}

type cardRepository struct {
	db *bun.DB
}

func NewCardRepository(db *bun.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) GetByName(ctx context.Context, name string) (*models.Card, error) {
	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("lower(name) = lower(?)", name).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Order("name ASC").
		Scan(ctx)
	return cards, err
}

func (r *cardRepository) Search(ctx context.Context, term string) ([]*models.Card, error) {
	slog.Debug("CardRepository.Search called",
		slog.String("type", "db"),
		slog.String("operation", "Search"),
		slog.String("term", term))

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("name ILIKE ?", "%"+term+"%").
		Order("name ASC").
		Scan(ctx)
	return cards, err
}
