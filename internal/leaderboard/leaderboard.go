package leaderboard

import (
	"sort"

	"doublejump/internal/ledger"
)

// Size is the maximum number of entries on the board.
const Size = 10

type Entry struct {
	Nickname string  `json:"nickname"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	WinRate  float64 `json:"winRate"`
}

// Compute derives the top players by win rate from a roster snapshot.
// Ties keep the roster's join order; players with no games rank at 0.
func Compute(players []*ledger.Player) []Entry {
	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		e := Entry{
			Nickname: p.Nickname,
			Wins:     p.Stats.Wins,
			Losses:   p.Stats.Losses,
		}
		if played := p.Stats.Wins + p.Stats.Losses; played > 0 {
			e.WinRate = float64(p.Stats.Wins) / float64(played)
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].WinRate > entries[j].WinRate
	})

	if len(entries) > Size {
		entries = entries[:Size]
	}
	return entries
}
