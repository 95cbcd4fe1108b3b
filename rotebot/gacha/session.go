package gacha

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kiyotakas/rotebot/rotebot/config"
	"github.com/kiyotakas/rotebot/rotebot/database/models"
)

type SessionState int

const (
	StateAwaitingConfirmation SessionState = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateExpired
	StateFailed
)

func (s SessionState) String() string {
	switch s {
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateExpired:
		return "expired"
	default:
		return "failed"
	}
}

func (s SessionState) Terminal() bool {
	return s != StateAwaitingConfirmation && s != StateRunning
}

// DrawResult is one entry of a session's report, in draw order.
type DrawResult struct {
	Index    int
	CardName string
	Rarity   Rarity

	// Template and Card are nil when Missing: the drawn name had no
	// catalog entry. The draw still counts toward the batch and the debit.
	Template *models.Card
	Card     *models.UserCard
	Outcome  AcquisitionOutcome
	Missing  bool
}

// Report summarizes a finished (or aborted) session run.
type Report struct {
	Results          []DrawResult
	Requested        int
	Succeeded        int
	TotalCost        int64
	RemainingBalance int64
}

// Catalog is the template-lookup capability the session needs. A miss is
// ErrCardNotFound; anything else is treated as a store outage.
type Catalog interface {
	GetByName(ctx context.Context, name string) (*models.Card, error)
}

// ProgressFunc receives per-draw progress for interactive reporting. It
// is called outside any session lock and must not block for long.
type ProgressFunc func(done, total int)

type Config struct {
	UnitCost       int64
	MaxSpins       int
	ConfirmTimeout time.Duration
}

func (c *Config) applyDefaults() {
	if c.UnitCost <= 0 {
		c.UnitCost = config.SpinCost
	}
	if c.MaxSpins <= 0 {
		c.MaxSpins = config.MaxSpinsPerCommand
	}
	if c.ConfirmTimeout <= 0 {
		c.ConfirmTimeout = config.SpinConfirmTimeout
	}
}

// Manager creates spin sessions and enforces one live session per user,
// so a second session can never authorize against a balance an in-flight
// one has not debited yet.
type Manager struct {
	cfg     Config
	engine  *Engine
	pool    []string
	catalog Catalog
	ledger  *Ledger
	account *Account

	sessions sync.Map // session id → *Session
	active   sync.Map // user id → *Session
}

func NewManager(cfg Config, engine *Engine, pool []string, catalog Catalog, ledger *Ledger, account *Account) *Manager {
	cfg.applyDefaults()
	return &Manager{
		cfg:     cfg,
		engine:  engine,
		pool:    pool,
		catalog: catalog,
		ledger:  ledger,
		account: account,
	}
}

func (m *Manager) UnitCost() int64 { return m.cfg.UnitCost }
func (m *Manager) MaxSpins() int   { return m.cfg.MaxSpins }

// Request validates the spin and opens a session awaiting confirmation.
// Invalid counts and unaffordable batches reject without creating anything.
func (m *Manager) Request(ctx context.Context, userID string, count int) (*Session, error) {
	if count < 1 || count > m.cfg.MaxSpins {
		return nil, ErrInvalidSpinCount
	}

	balance, err := m.account.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !Authorize(balance, int64(count)*m.cfg.UnitCost) {
		return nil, ErrInsufficientFunds
	}

	s := &Session{
		id:               fmt.Sprintf("%s-%d", userID, time.Now().UnixNano()),
		userID:           userID,
		count:            count,
		unitCost:         m.cfg.UnitCost,
		createdAt:        time.Now(),
		balanceAtRequest: balance,
		state:            StateAwaitingConfirmation,
		mgr:              m,
	}

	if _, loaded := m.active.LoadOrStore(userID, s); loaded {
		return nil, ErrSessionBusy
	}
	m.sessions.Store(s.id, s)
	s.timer = time.AfterFunc(m.cfg.ConfirmTimeout, s.expire)

	slog.Debug("Spin session opened",
		slog.String("type", "cmd"),
		slog.String("session_id", s.id),
		slog.String("user_id", userID),
		slog.Int("count", count))
	return s, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	v, ok := m.sessions.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

func (m *Manager) release(s *Session) {
	m.active.CompareAndDelete(s.userID, s)
	m.sessions.Delete(s.id)
}

// Session is one user-confirmed multi-draw transaction. All transitions
// go through the mutex; the first terminal transition wins and later
// attempts surface ErrSessionResolved.
type Session struct {
	id               string
	userID           string
	count            int
	unitCost         int64
	createdAt        time.Time
	balanceAtRequest int64

	mgr   *Manager
	timer *time.Timer

	mu        sync.Mutex
	state     SessionState
	results   []DrawResult
	executing bool
	debited   bool
}

func (s *Session) ID() string              { return s.id }
func (s *Session) Owner() string           { return s.userID }
func (s *Session) Count() int              { return s.count }
func (s *Session) TotalCost() int64        { return int64(s.count) * s.unitCost }
func (s *Session) BalanceAtRequest() int64 { return s.balanceAtRequest }

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Confirm re-validates affordability against the live balance (not the
// one rendered at request time) and moves the session to Running. Only
// the requester may confirm.
func (s *Session) Confirm(ctx context.Context, actorID string) error {
	if actorID != s.userID {
		return ErrNotSessionOwner
	}

	s.mu.Lock()
	if s.state != StateAwaitingConfirmation {
		s.mu.Unlock()
		return ErrSessionResolved
	}
	// Claim the session before the balance check so a racing cancel or
	// timeout cannot slip in between check and transition.
	s.state = StateRunning
	s.mu.Unlock()
	s.timer.Stop()

	balance, err := s.mgr.account.Balance(ctx, s.userID)
	if err != nil {
		s.fail()
		return err
	}
	if !Authorize(balance, s.TotalCost()) {
		s.fail()
		return ErrInsufficientFunds
	}
	return nil
}

// Cancel resolves the session without any ledger mutation or debit.
func (s *Session) Cancel(actorID string) error {
	if actorID != s.userID {
		return ErrNotSessionOwner
	}

	s.mu.Lock()
	if s.state != StateAwaitingConfirmation {
		s.mu.Unlock()
		return ErrSessionResolved
	}
	s.state = StateCancelled
	s.mu.Unlock()

	s.timer.Stop()
	s.mgr.release(s)
	return nil
}

func (s *Session) expire() {
	s.mu.Lock()
	if s.state != StateAwaitingConfirmation {
		s.mu.Unlock()
		return
	}
	s.state = StateExpired
	s.mu.Unlock()

	s.mgr.release(s)
	slog.Debug("Spin session expired",
		slog.String("type", "cmd"),
		slog.String("session_id", s.id),
		slog.String("user_id", s.userID))
}

func (s *Session) fail() {
	s.mu.Lock()
	s.state = StateFailed
	s.mu.Unlock()
	s.mgr.release(s)
}

// Run executes the confirmed batch: draw → catalog lookup → acquisition,
// strictly in order, then one debit. A catalog miss is recorded and the
// loop continues; a store outage aborts before any debit. The debited
// flag guarantees at most one successful debit per session even if a
// caller retries after an ambiguous failure.
func (s *Session) Run(ctx context.Context, progress ProgressFunc) (*Report, error) {
	// The executing flag is consumed exactly once, so a second Run on the
	// same confirmed session cannot repeat the draw loop.
	s.mu.Lock()
	if s.state != StateRunning || s.executing {
		s.mu.Unlock()
		return nil, ErrSessionNotRunning
	}
	s.executing = true
	s.mu.Unlock()

	for i := 0; i < s.count; i++ {
		name, err := s.mgr.engine.Draw(s.mgr.pool)
		if err != nil {
			s.fail()
			return s.snapshotReport(0), err
		}

		result := DrawResult{Index: i, CardName: name, Rarity: Classify(name)}

		tmpl, err := s.mgr.catalog.GetByName(ctx, name)
		switch {
		case errors.Is(err, ErrCardNotFound):
			// Missing template: the spin is consumed, the report says so.
			result.Missing = true
		case err != nil:
			s.fail()
			return s.snapshotReport(0), err
		default:
			card, outcome, err := s.mgr.ledger.ApplyAcquisition(ctx, s.userID, tmpl)
			if err != nil {
				s.fail()
				return s.snapshotReport(0), err
			}
			result.Template = tmpl
			result.Card = card
			result.Outcome = outcome
		}

		s.mu.Lock()
		s.results = append(s.results, result)
		s.mu.Unlock()

		if progress != nil {
			progress(i+1, s.count)
		}
	}

	s.mu.Lock()
	alreadyDebited := s.debited
	s.debited = true
	s.mu.Unlock()

	if !alreadyDebited {
		if err := s.mgr.account.Debit(ctx, s.userID, s.TotalCost()); err != nil {
			if errors.Is(err, ErrInsufficientFunds) {
				// Nothing was taken; allow a retry to debit.
				s.mu.Lock()
				s.debited = false
				s.mu.Unlock()
			}
			s.fail()
			return s.snapshotReport(0), err
		}
	}

	remaining, err := s.mgr.account.Balance(ctx, s.userID)
	if err != nil {
		// The batch is already paid for; report with an unknown balance
		// rather than failing the whole session.
		slog.Warn("Failed to read balance for spin report",
			slog.String("type", "db"),
			slog.String("user_id", s.userID),
			slog.Any("error", err))
		remaining = -1
	}

	s.mu.Lock()
	s.state = StateCompleted
	s.mu.Unlock()
	s.mgr.release(s)

	slog.Info("Spin session completed",
		slog.String("type", "cmd"),
		slog.String("session_id", s.id),
		slog.String("user_id", s.userID),
		slog.Int("count", s.count),
		slog.Int64("total_cost", s.TotalCost()))
	return s.snapshotReport(remaining), nil
}

func (s *Session) snapshotReport(remaining int64) *Report {
	s.mu.Lock()
	results := append([]DrawResult(nil), s.results...)
	s.mu.Unlock()

	succeeded := 0
	for _, r := range results {
		if !r.Missing {
			succeeded++
		}
	}
	return &Report{
		Results:          results,
		Requested:        s.count,
		Succeeded:        succeeded,
		TotalCost:        s.TotalCost(),
		RemainingBalance: remaining,
	}
}
