package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	GetBalance(ctx context.Context, discordID string) (int64, error)
	AddBalance(ctx context.Context, discordID string, delta int64) error
	DebitBalance(ctx context.Context, discordID string, amount int64) (bool, error)
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Scan(ctx)

	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("Database error when getting user",
				slog.String("type", "db"),
				slog.String("operation", "GetByDiscordID"),
				slog.String("discord_id", discordID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetBalance(ctx context.Context, discordID string) (int64, error) {
	var user models.User
	err := r.db.NewSelect().
		Model(&user).
		Column("ppt").
		Where("discord_id = ?", discordID).
		Scan(ctx)
	if err != nil {
		return 0, err
	}
	return user.PPT, nil
}

func (r *userRepository) AddBalance(ctx context.Context, discordID string, delta int64) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("ppt = ppt + ?", delta).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	return err
}

// DebitBalance subtracts amount only when the balance covers it, as a
// single conditional update. Returns false when the guard rejected the
// debit, so the balance can never go negative.
func (r *userRepository) DebitBalance(ctx context.Context, discordID string, amount int64) (bool, error) {
	if amount < 0 {
		return false, fmt.Errorf("debit amount must be non-negative, got %d", amount)
	}
	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("ppt = ppt - ?", amount).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID).
		Where("ppt >= ?", amount).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
