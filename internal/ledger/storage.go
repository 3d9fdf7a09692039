package ledger

import (
	"errors"
	"sync"

	"doublejump/internal/history"

	"github.com/shopspring/decimal"
)

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// Store keeps every connected player's balance, stats and personal
// history. List returns players in join order, which the leaderboard
// relies on for tie-breaking.
type Store struct {
	mu       sync.Mutex
	players  map[string]*Player
	order    []string
	starting decimal.Decimal
}

func NewStore(startingBalance decimal.Decimal) *Store {
	return &Store{
		players:  make(map[string]*Player),
		starting: startingBalance,
	}
}

// Add seeds a new player with the starting balance.
func (s *Store) Add(id string, nickname string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &Player{ID: id, Nickname: nickname, Balance: s.starting}
	s.players[id] = p
	s.order = append(s.order, id)
	return p
}

func (s *Store) Get(id string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[id]
}

// List returns all players in join order.
func (s *Store) List() []*Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Player, 0, len(s.players))
	for _, id := range s.order {
		list = append(list, s.players[id])
	}
	return list
}

func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.players[id]; !exists {
		return false
	}
	delete(s.players, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// Credit replaces the player's balance with amount.
func (s *Store) Credit(id string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, exists := s.players[id]
	if !exists {
		return ErrPlayerNotFound
	}
	p.Balance = amount
	return nil
}

// Zero sets the player's balance to 0.
func (s *Store) Zero(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, exists := s.players[id]
	if !exists {
		return ErrPlayerNotFound
	}
	p.Balance = decimal.Zero
	return nil
}

// DeductToZero commits the player's full balance as a stake: the balance
// drops to 0 and the pre-deduction amount is returned.
func (s *Store) DeductToZero(id string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, exists := s.players[id]
	if !exists {
		return decimal.Zero, ErrPlayerNotFound
	}
	if p.Balance.IsZero() {
		return decimal.Zero, ErrInsufficientFunds
	}
	stake := p.Balance
	p.Balance = decimal.Zero
	return stake, nil
}

func (s *Store) RecordWin(id string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, exists := s.players[id]; exists {
		p.Stats.Wins++
		return p
	}
	return nil
}

func (s *Store) RecordLoss(id string) *Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, exists := s.players[id]; exists {
		p.Stats.Losses++
		return p
	}
	return nil
}

// AppendHistory prepends a settled round to the player's own history.
func (s *Store) AppendHistory(id string, e history.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, exists := s.players[id]; exists {
		p.History = append([]history.Entry{e}, p.History...)
	}
}
