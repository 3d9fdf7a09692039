package session

import (
	"doublejump/internal/history"
	"doublejump/internal/ledger"

	"github.com/shopspring/decimal"
)

// Event names used for outbound pushes.
const (
	EventGameState   = "gameState"
	EventRoundResult = "roundResult"
	EventLeaderboard = "leaderboard"
	EventBetPlaced   = "betPlaced"
	EventError       = "error"
)

// Pusher delivers an event to a single connection. Implementations must
// not block; delivery is fire-and-forget.
type Pusher interface {
	Push(connID string, event string, data any)
}

// GameState is the per-player view of the open round, broadcast on
// every round transition and roster change.
type GameState struct {
	RoundID           string          `json:"roundId"`
	TimeToNextRoundMs int64           `json:"timeToNextRoundMs"`
	OpenBetCount      int             `json:"openBetCount"`
	Balance           decimal.Decimal `json:"balance"`
	Stats             ledger.Stats    `json:"stats"`
	GlobalHistory     []history.Entry `json:"gameHistory"`
}

// PlayerState is the full snapshot returned on register and resync.
type PlayerState struct {
	Nickname          string          `json:"nickname"`
	Balance           decimal.Decimal `json:"balance"`
	Stats             ledger.Stats    `json:"stats"`
	History           []history.Entry `json:"history"`
	RoundID           string          `json:"roundId"`
	TimeToNextRoundMs int64           `json:"timeToNextRoundMs"`
	OpenBetCount      int             `json:"openBetCount"`
	GlobalHistory     []history.Entry `json:"gameHistory"`
}

// RoundResult is pushed to each player whose bet was just settled.
type RoundResult struct {
	RoundID       string          `json:"roundId"`
	Win           bool            `json:"win"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	Stats         ledger.Stats    `json:"stats"`
	GlobalHistory []history.Entry `json:"gameHistory"`
}

// BetReceipt is the synchronous reply to a successful bet placement.
type BetReceipt struct {
	RoundID           string          `json:"roundId"`
	TimeToNextRoundMs int64           `json:"timeToNextRoundMs"`
	OpenBetCount      int             `json:"openBetCount"`
	NewBalance        decimal.Decimal `json:"newBalance"`
}

// ErrorMessage is the structured error sent to a failed request's caller.
type ErrorMessage struct {
	Message string `json:"message"`
}
