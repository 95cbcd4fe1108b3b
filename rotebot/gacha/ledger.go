package gacha

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/database/models"
	"github.com/kiyotakas/rotebot/rotebot/database/repositories"
)

type AcquisitionOutcome int

const (
	// OutcomeNew: first acquisition, stats initialized from the template.
	OutcomeNew AcquisitionOutcome = iota
	// OutcomeUpgraded: star +1 and each stat +StatIncrement.
	OutcomeUpgraded
	// OutcomeMaxed: card already at MaxStar; stats and star untouched.
	// The draw still happened and still counts toward the debit.
	OutcomeMaxed
)

func (o AcquisitionOutcome) String() string {
	switch o {
	case OutcomeNew:
		return "new"
	case OutcomeUpgraded:
		return "upgraded"
	default:
		return "maxed"
	}
}

// Advance computes the owned-card state after one acquisition. Pure: the
// input card is not mutated and persistence is the caller's problem.
func Advance(owned *models.UserCard, tmpl *models.Card, userID string) (*models.UserCard, AcquisitionOutcome) {
	if owned == nil {
		star := tmpl.Star
		if star < config.BaseStar {
			star = config.BaseStar
		}
		return &models.UserCard{
			UserID:       userID,
			CardName:     tmpl.Name,
			Resolve:      tmpl.Resolve,
			Mental:       tmpl.Mental,
			Physical:     tmpl.Physical,
			Social:       tmpl.Social,
			Initiative:   tmpl.Initiative,
			Star:         star,
			SupportBonus: tmpl.SupportBonus,
			Tags:         append([]string(nil), tmpl.Tags...),
		}, OutcomeNew
	}

	next := *owned
	next.Tags = append([]string(nil), owned.Tags...)

	if owned.Star >= config.MaxStar {
		return &next, OutcomeMaxed
	}

	next.Star = owned.Star + 1
	next.Resolve += config.StatIncrement
	next.Mental += config.StatIncrement
	next.Physical += config.StatIncrement
	next.Social += config.StatIncrement
	next.Initiative += config.StatIncrement
	return &next, OutcomeUpgraded
}

// Ledger owns the mutation rules for a user's owned-card rows.
type Ledger struct {
	userCards repositories.UserCardRepository
}

func NewLedger(userCards repositories.UserCardRepository) *Ledger {
	return &Ledger{userCards: userCards}
}

// ApplyAcquisition reads the current owned card (absent on first draw),
// advances it, and persists the result as a single per-card upsert.
func (l *Ledger) ApplyAcquisition(ctx context.Context, userID string, tmpl *models.Card) (*models.UserCard, AcquisitionOutcome, error) {
	owned, err := l.userCards.GetByUserAndCard(ctx, userID, tmpl.Name)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, 0, wrapStore("collection read", err)
		}
		owned = nil
	}

	next, outcome := Advance(owned, tmpl, userID)
	if err := l.userCards.Upsert(ctx, next); err != nil {
		return nil, 0, wrapStore("collection write", err)
	}

	slog.Debug("Acquisition applied",
		slog.String("type", "db"),
		slog.String("user_id", userID),
		slog.String("card", tmpl.Name),
		slog.String("outcome", outcome.String()),
		slog.Int("star", next.Star))
	return next, outcome, nil
}
