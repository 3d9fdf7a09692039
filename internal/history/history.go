package history

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one settled bet: a single player's result for a single round.
type Entry struct {
	RoundID    string          `json:"roundId"`
	Timestamp  time.Time       `json:"timestamp"`
	Nickname   string          `json:"playerNickname"`
	BetAmount  decimal.Decimal `json:"betAmount"`
	Win        bool            `json:"win"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// Log is a bounded, newest-first record of settled bets.
type Log struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

func NewLog(max int) *Log {
	return &Log{max: max}
}

// Append prepends the entry and truncates the log to its maximum size.
func (l *Log) Append(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]Entry{e}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
