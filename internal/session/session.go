package session

import (
	"errors"
	"sync"
	"time"

	"doublejump/internal/betbook"
	"doublejump/internal/history"
	"doublejump/internal/ledger"
	"doublejump/internal/leaderboard"
	"doublejump/internal/roundclock"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrDuplicatePlayer = errors.New("player already registered")

type Config struct {
	RoundInterval   time.Duration
	StartingBalance decimal.Decimal
	HistorySize     int
}

func DefaultConfig() Config {
	return Config{
		RoundInterval:   7 * time.Second,
		StartingBalance: decimal.NewFromInt(10),
		HistorySize:     10,
	}
}

// Session is the single authoritative owner of all game state. Clock
// ticks and player requests all run under one mutex, so a bet racing a
// tick is resolved by whichever acquires the lock first.
type Session struct {
	mu     sync.Mutex
	ledger *ledger.Store
	book   *betbook.Book
	global *history.Log
	clock  *roundclock.Clock
	pusher Pusher

	// Open round. Empty roundID means no round has started yet; the
	// outcome is fixed when the round opens and hidden until settlement.
	roundID string
	outcome bool

	flip func() (bool, error)
}

func New(cfg Config, pusher Pusher) *Session {
	return &Session{
		ledger: ledger.NewStore(cfg.StartingBalance),
		book:   betbook.NewBook(),
		global: history.NewLog(cfg.HistorySize),
		clock:  roundclock.New(cfg.RoundInterval),
		pusher: pusher,
		flip:   fairCoin,
	}
}

// Start launches the round clock. The first round opens on the first
// tick, one full interval after Start.
func (s *Session) Start() {
	s.clock.Start(s.onTick)
}

// Stop halts the round clock; no further rounds open or settle.
func (s *Session) Stop() {
	s.clock.Stop()
}

// Join registers a new player under the given connection handle, seeds
// their ledger entry and announces the roster change.
func (s *Session) Join(connID string, nickname string) (*PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger.Get(connID) != nil {
		return nil, ErrDuplicatePlayer
	}
	s.ledger.Add(connID, nickname)
	log.WithFields(log.Fields{"player_id": connID, "nickname": nickname}).Info("player joined")

	// The joiner gets the full snapshot as the reply; everyone else
	// learns about the roster change here.
	s.broadcastGameStateExcept(connID)
	s.broadcastLeaderboard()
	return s.playerState(connID), nil
}

// Leave removes the player and forfeits any open bet. Idempotent.
func (s *Session) Leave(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ledger.Remove(connID) {
		return
	}
	s.book.Remove(connID)
	log.WithField("player_id", connID).Info("player left")

	s.broadcastGameState()
	s.broadcastLeaderboard()
}

// Snapshot returns the player's current full state, for resync.
func (s *Session) Snapshot(connID string) (*PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger.Get(connID) == nil {
		return nil, ledger.ErrPlayerNotFound
	}
	return s.playerState(connID), nil
}

// PlaceBet commits the player's full balance to the open round. The
// balance drops to 0 immediately; it stays 0 until settlement.
func (s *Session) PlaceBet(connID string) (*BetReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.ledger.Get(connID)
	if p == nil {
		return nil, ledger.ErrPlayerNotFound
	}
	if s.book.Has(connID) {
		return nil, betbook.ErrDuplicateBet
	}
	stake, err := s.ledger.DeductToZero(connID)
	if err != nil {
		return nil, err
	}
	if err := s.book.Place(connID, stake); err != nil {
		s.ledger.Credit(connID, stake)
		return nil, err
	}
	log.WithFields(log.Fields{
		"player_id": connID,
		"nickname":  p.Nickname,
		"amount":    stake,
	}).Info("bet placed")

	s.broadcastGameState()
	return &BetReceipt{
		RoundID:           s.roundID,
		TimeToNextRoundMs: s.clock.Remaining().Milliseconds(),
		OpenBetCount:      s.book.Count(),
		NewBalance:        decimal.Zero,
	}, nil
}

// playerState builds the full snapshot for one player. Callers hold s.mu.
func (s *Session) playerState(connID string) *PlayerState {
	p := s.ledger.Get(connID)
	return &PlayerState{
		Nickname:          p.Nickname,
		Balance:           p.Balance,
		Stats:             p.Stats,
		History:           p.History,
		RoundID:           s.roundID,
		TimeToNextRoundMs: s.clock.Remaining().Milliseconds(),
		OpenBetCount:      s.book.Count(),
		GlobalHistory:     s.global.Entries(),
	}
}

// broadcastGameState pushes a personalized view of the open round to
// every registered player. Callers hold s.mu.
func (s *Session) broadcastGameState() {
	s.broadcastGameStateExcept("")
}

func (s *Session) broadcastGameStateExcept(exceptID string) {
	remaining := s.clock.Remaining().Milliseconds()
	betCount := s.book.Count()
	global := s.global.Entries()
	for _, p := range s.ledger.List() {
		if p.ID == exceptID {
			continue
		}
		s.pusher.Push(p.ID, EventGameState, GameState{
			RoundID:           s.roundID,
			TimeToNextRoundMs: remaining,
			OpenBetCount:      betCount,
			Balance:           p.Balance,
			Stats:             p.Stats,
			GlobalHistory:     global,
		})
	}
}

// broadcastLeaderboard recomputes the board and pushes it to everyone.
// Callers hold s.mu.
func (s *Session) broadcastLeaderboard() {
	board := leaderboard.Compute(s.ledger.List())
	for _, p := range s.ledger.List() {
		s.pusher.Push(p.ID, EventLeaderboard, board)
	}
}
