package migration

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/kiyotakas/rotebot/rotebot/database/models"
)

// Migrator copies the legacy MongoDB deployment (a `cards` collection of
// character templates and a `students` collection holding users with an
// embedded card map) into the relational schema.
type Migrator struct {
	pgDB      *bun.DB
	mongoDB   *mongo.Database
	batchSize int
}

func NewMigrator(pgDB *bun.DB, client *mongo.Client, dbName string) *Migrator {
	return &Migrator{
		pgDB:      pgDB,
		mongoDB:   client.Database(dbName),
		batchSize: 500,
	}
}

// SetBatchSize overrides the default batch size for inserts.
func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// Legacy document shapes. Field names match the deployed Mongo data, not
// anything in this codebase.
type mongoCard struct {
	ID           int64  `bson:"_id"`
	Name         string `bson:"character_name"`
	Personality  string `bson:"character_personality"`
	Moves        string `bson:"character_moves"`
	ImageURL     string `bson:"character_url_image"`
	Star         int    `bson:"character_star"`
	Resolve      int64  `bson:"character_resolve"`
	Mental       int64  `bson:"character_mental"`
	Physical     int64  `bson:"character_physical"`
	Social       int64  `bson:"character_social"`
	Initiative   int64  `bson:"character_initiative"`
	SupportBonus string `bson:"character_support_bonus"`
	Tags         string `bson:"character_tags"`
}

type mongoOwnedCard struct {
	Mental       int64  `bson:"Mental"`
	Physical     int64  `bson:"Physical"`
	Social       int64  `bson:"Social"`
	Resolve      int64  `bson:"Resolve"`
	Initiative   int64  `bson:"Initiative"`
	SupportBonus string `bson:"Support_Bonus"`
	Tags         string `bson:"Tags"`
	Star         int    `bson:"Star"`
}

type mongoStudent struct {
	ID          int64                     `bson:"_id"`
	Name        string                    `bson:"name"`
	PPT         int64                     `bson:"ppt"`
	BlackTokens int64                     `bson:"black_token"`
	FTPS        int64                     `bson:"ftps"`
	Collection  map[string]mongoOwnedCard `bson:"collection"`
}

// MigrateAll loads both legacy collections concurrently, then inserts
// cards before users so collection entries never reference a template
// that has not landed yet.
func (m *Migrator) MigrateAll(ctx context.Context) error {
	start := time.Now()
	slog.Info("Starting legacy Mongo migration",
		slog.String("type", "db"),
		slog.String("database", m.mongoDB.Name()))

	var cards []mongoCard
	var students []mongoStudent

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cards, err = loadAll[mongoCard](gctx, m.mongoDB.Collection("cards"))
		if err != nil {
			return fmt.Errorf("failed to load cards: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		students, err = loadAll[mongoStudent](gctx, m.mongoDB.Collection("students"))
		if err != nil {
			return fmt.Errorf("failed to load students: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Loaded legacy collections",
		slog.String("type", "db"),
		slog.Int("cards", len(cards)),
		slog.Int("students", len(students)))

	if err := m.migrateCards(ctx, cards); err != nil {
		return err
	}
	if err := m.migrateStudents(ctx, students); err != nil {
		return err
	}

	slog.Info("Legacy migration completed",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(start)))
	return nil
}

func loadAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []T
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			slog.Warn("Skipping undecodable document",
				slog.String("type", "db"),
				slog.String("collection", coll.Name()),
				slog.Any("error", err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, cur.Err()
}

func (m *Migrator) migrateCards(ctx context.Context, mongoCards []mongoCard) error {
	var batch []*models.Card
	now := time.Now()
	seen := make(map[string]bool)
	skipped := 0

	for _, mc := range mongoCards {
		if mc.Name == "" || seen[mc.Name] {
			skipped++
			continue
		}
		seen[mc.Name] = true

		batch = append(batch, &models.Card{
			Name:         mc.Name,
			Personality:  mc.Personality,
			Moves:        mc.Moves,
			ImageURL:     mc.ImageURL,
			Resolve:      mc.Resolve,
			Mental:       mc.Mental,
			Physical:     mc.Physical,
			Social:       mc.Social,
			Initiative:   mc.Initiative,
			Star:         mc.Star,
			SupportBonus: mc.SupportBonus,
			Tags:         splitTags(mc.Tags),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if len(batch) >= m.batchSize {
			if err := m.insertCards(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := m.insertCards(ctx, batch); err != nil {
			return err
		}
	}

	slog.Info("Card migration completed",
		slog.String("type", "db"),
		slog.Int("imported", len(seen)),
		slog.Int("skipped", skipped))
	return nil
}

func (m *Migrator) insertCards(ctx context.Context, cards []*models.Card) error {
	_, err := m.pgDB.NewInsert().
		Model(&cards).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert cards batch: %w", err)
	}
	return nil
}

func (m *Migrator) migrateStudents(ctx context.Context, students []mongoStudent) error {
	var users []*models.User
	var userCards []*models.UserCard
	now := time.Now()
	seen := make(map[string]bool)

	for _, ms := range students {
		discordID := fmt.Sprintf("%d", ms.ID)
		if seen[discordID] {
			slog.Warn("Duplicate student id, keeping first occurrence",
				slog.String("type", "db"),
				slog.String("discord_id", discordID))
			continue
		}
		seen[discordID] = true

		users = append(users, &models.User{
			DiscordID:   discordID,
			Username:    ms.Name,
			PPT:         ms.PPT,
			BlackTokens: ms.BlackTokens,
			FTPS:        ms.FTPS,
			CreatedAt:   now,
			UpdatedAt:   now,
		})

		for name, owned := range ms.Collection {
			userCards = append(userCards, &models.UserCard{
				UserID:       discordID,
				CardName:     name,
				Resolve:      owned.Resolve,
				Mental:       owned.Mental,
				Physical:     owned.Physical,
				Social:       owned.Social,
				Initiative:   owned.Initiative,
				Star:         owned.Star,
				SupportBonus: owned.SupportBonus,
				Tags:         splitTags(owned.Tags),
				Obtained:     now,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}
	}

	for i := 0; i < len(users); i += m.batchSize {
		end := min(i+m.batchSize, len(users))
		if err := m.insertUsers(ctx, users[i:end]); err != nil {
			return err
		}
	}
	for i := 0; i < len(userCards); i += m.batchSize {
		end := min(i+m.batchSize, len(userCards))
		if err := m.insertUserCards(ctx, userCards[i:end]); err != nil {
			return err
		}
	}

	slog.Info("Student migration completed",
		slog.String("type", "db"),
		slog.Int("users", len(users)),
		slog.Int("user_cards", len(userCards)))
	return nil
}

func (m *Migrator) insertUsers(ctx context.Context, users []*models.User) error {
	_, err := m.pgDB.NewInsert().
		Model(&users).
		On("CONFLICT (discord_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("ppt = EXCLUDED.ppt").
		Set("black_tokens = EXCLUDED.black_tokens").
		Set("ftps = EXCLUDED.ftps").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert users batch: %w", err)
	}
	return nil
}

func (m *Migrator) insertUserCards(ctx context.Context, userCards []*models.UserCard) error {
	_, err := m.pgDB.NewInsert().
		Model(&userCards).
		On("CONFLICT (user_id, card_name) DO UPDATE").
		Set("resolve = EXCLUDED.resolve").
		Set("mental = EXCLUDED.mental").
		Set("physical = EXCLUDED.physical").
		Set("social = EXCLUDED.social").
		Set("initiative = EXCLUDED.initiative").
		Set("star = EXCLUDED.star").
		Set("support_bonus = EXCLUDED.support_bonus").
		Set("tags = EXCLUDED.tags").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to insert user cards batch: %w", err)
	}
	return nil
}

// splitTags turns the legacy comma-separated tag string into a slice.
func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
