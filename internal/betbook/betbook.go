package betbook

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrDuplicateBet = errors.New("bet already placed this round")

// Bet is a committed all-in stake for the currently open round.
type Bet struct {
	PlayerID string
	Amount   decimal.Decimal
}

// Book holds the open bets of the current round, keyed by player.
// Drain empties it exactly once per round, at settlement.
type Book struct {
	mu    sync.Mutex
	bets  map[string]decimal.Decimal
	order []string
}

func NewBook() *Book {
	return &Book{
		bets: make(map[string]decimal.Decimal),
	}
}

// Place records the player's stake for the open round.
func (b *Book) Place(playerID string, amount decimal.Decimal) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.bets[playerID]; exists {
		return ErrDuplicateBet
	}
	b.bets[playerID] = amount
	b.order = append(b.order, playerID)
	return nil
}

func (b *Book) Has(playerID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, exists := b.bets[playerID]
	return exists
}

// Remove discards a player's open bet, if any. Used when a player
// disconnects mid-round; the stake is forfeited, not refunded.
func (b *Book) Remove(playerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.bets[playerID]; !exists {
		return
	}
	delete(b.bets, playerID)
	for i, id := range b.order {
		if id == playerID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *Book) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.bets)
}

// Drain returns all open bets in placement order and empties the book.
func (b *Book) Drain() []Bet {
	b.mu.Lock()
	defer b.mu.Unlock()
	drained := make([]Bet, 0, len(b.bets))
	for _, id := range b.order {
		drained = append(drained, Bet{PlayerID: id, Amount: b.bets[id]})
	}
	b.bets = make(map[string]decimal.Decimal)
	b.order = nil
	return drained
}
