package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"doublejump/internal/history"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var two = decimal.NewFromInt(2)

// newRoundID returns 128 bits of crypto randomness, hex-encoded.
func newRoundID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// fairCoin draws a uniform outcome, independent of all history.
func fairCoin() (bool, error) {
	var b [1]byte
	if _, err := rand.Read(b[:]); err != nil {
		return false, err
	}
	return b[0]&1 == 1, nil
}

// onTick resolves the closing round and opens the next one. It is the
// clock's callback and must not fail: an empty book is a defined no-op,
// and the round advances regardless.
func (s *Session) onTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roundID != "" {
		s.settle()
	}
	s.openRound()
	s.broadcastGameState()
}

// settle drains the book and applies the outcome fixed when the closing
// round opened. Every drained bet resolves against that same outcome.
// Callers hold s.mu.
func (s *Session) settle() {
	bets := s.book.Drain()
	if len(bets) == 0 {
		return
	}
	log.WithFields(log.Fields{"round_id": s.roundID, "bets": len(bets)}).Info("settling round")

	settled := false
	for _, bet := range bets {
		p := s.ledger.Get(bet.PlayerID)
		if p == nil {
			continue
		}

		if s.outcome {
			s.ledger.Credit(bet.PlayerID, bet.Amount.Mul(two))
			s.ledger.RecordWin(bet.PlayerID)
		} else {
			s.ledger.Zero(bet.PlayerID)
			s.ledger.RecordLoss(bet.PlayerID)
		}
		settled = true

		entry := history.Entry{
			RoundID:    s.roundID,
			Timestamp:  time.Now(),
			Nickname:   p.Nickname,
			BetAmount:  bet.Amount,
			Win:        s.outcome,
			NewBalance: p.Balance,
		}
		s.global.Append(entry)
		s.ledger.AppendHistory(bet.PlayerID, entry)

		log.WithFields(log.Fields{
			"round_id":    s.roundID,
			"nickname":    p.Nickname,
			"bet":         bet.Amount,
			"win":         s.outcome,
			"new_balance": p.Balance,
		}).Info("bet settled")

		s.pusher.Push(bet.PlayerID, EventRoundResult, RoundResult{
			RoundID:       s.roundID,
			Win:           s.outcome,
			NewBalance:    p.Balance,
			Stats:         p.Stats,
			GlobalHistory: s.global.Entries(),
		})
	}

	if settled {
		s.broadcastLeaderboard()
	}
}

// openRound fixes the next round's identity and outcome. The outcome is
// decided now and revealed only when the round settles. Callers hold s.mu.
func (s *Session) openRound() {
	id, err := newRoundID()
	if err != nil {
		log.WithError(err).Error("round id generation failed, keeping current round")
		return
	}
	outcome, err := s.flip()
	if err != nil {
		log.WithError(err).Error("coin flip failed, keeping current round")
		return
	}

	s.roundID = id
	s.outcome = outcome
	log.WithField("round_id", id).Info("round opened")
}
