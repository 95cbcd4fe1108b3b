package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"

	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/kiyotakas/rotebot/rotebot/database/repositories"
	"github.com/kiyotakas/rotebot/rotebot/gacha"
)

// cardSource implements fuzzy.Source over a card slice.
type cardSource []*models.Card

func (s cardSource) String(i int) string { return s[i].Name }
func (s cardSource) Len() int            { return len(s) }

// Catalog is the read-only template lookup. Templates are immutable, so
// exact-name hits are cached in an LRU keyed by lowercased name.
type Catalog struct {
	cards repositories.CardRepository
	cache *lru.Cache
}

func NewCatalog(cards repositories.CardRepository) *Catalog {
	cache, _ := lru.New(config.CatalogCacheSize)
	return &Catalog{cards: cards, cache: cache}
}

// GetByName resolves a template by exact (case-insensitive) name.
// Returns gacha.ErrCardNotFound on a miss; store failures propagate
// wrapped as store-unavailable.
func (c *Catalog) GetByName(ctx context.Context, name string) (*models.Card, error) {
	key := strings.ToLower(name)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*models.Card), nil
	}

	card, err := c.cards.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gacha.ErrCardNotFound
		}
		return nil, fmt.Errorf("catalog lookup for %q: %w", name, errors.Join(gacha.ErrStoreUnavailable, err))
	}

	c.cache.Add(key, card)
	return card, nil
}

// Search finds templates by case-insensitive substring, falling back to
// fuzzy matching over the whole catalog when the substring scan comes up
// empty. No match is an empty slice, not an error.
func (c *Catalog) Search(ctx context.Context, term string) ([]*models.Card, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	cards, err := c.cards.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("catalog search for %q: %w", term, errors.Join(gacha.ErrStoreUnavailable, err))
	}
	if len(cards) > 0 {
		return cards, nil
	}

	// Substring found nothing; try fuzzy so typos still land.
	all, err := c.cards.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog search for %q: %w", term, errors.Join(gacha.ErrStoreUnavailable, err))
	}

	matches := fuzzy.FindFrom(strings.ToLower(term), cardSource(all))
	results := make([]*models.Card, 0, len(matches))
	for _, match := range matches {
		results = append(results, all[match.Index])
	}

	slog.Debug("Catalog fuzzy search",
		slog.String("type", "db"),
		slog.String("term", term),
		slog.Int("matches", len(results)))
	return results, nil
}
