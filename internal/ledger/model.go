package ledger

import (
	"doublejump/internal/history"

	"github.com/shopspring/decimal"
)

type Stats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// Player holds one connected player's account. The ID is the opaque
// per-connection session handle issued by the transport layer.
type Player struct {
	ID       string
	Nickname string
	Balance  decimal.Decimal
	Stats    Stats
	History  []history.Entry // this player's settled rounds, newest first
}
