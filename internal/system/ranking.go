package system

import (
	"sort"
	"time"

	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/world"
)

// RankingSystem keeps a leaderboard of all players, refreshed every interval
// ticks (Phase 3).
type RankingSystem struct {
	world    *world.State
	interval int
	elapsed  int
	board    []RankEntry
}

// RankEntry is one leaderboard row.
type RankEntry struct {
	Place int
	Name  string
	Level int
	Exp   int
	Dead  bool
}

func NewRankingSystem(ws *world.State, intervalTicks int) *RankingSystem {
	if intervalTicks < 1 {
		intervalTicks = 1
	}
	return &RankingSystem{world: ws, interval: intervalTicks}
}

func (s *RankingSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RankingSystem) Update(_ time.Duration) {
	s.elapsed++
	if s.elapsed < s.interval {
		return
	}
	s.elapsed = 0
	s.Recalculate()
}

// Recalculate rebuilds the leaderboard immediately.
func (s *RankingSystem) Recalculate() {
	players := append([]*world.Combatant(nil), s.world.Players()...)
	sort.SliceStable(players, func(i, j int) bool {
		return RankLess(players[i], players[j])
	})
	board := make([]RankEntry, len(players))
	for i, p := range players {
		board[i] = RankEntry{Place: i + 1, Name: p.Name, Level: p.Level, Exp: p.Exp, Dead: p.Dead}
	}
	s.board = board
}

// Leaderboard returns the last computed ranking, best first.
func (s *RankingSystem) Leaderboard() []RankEntry {
	return s.board
}

// RankLess orders players best first by level, then exp, then MaxHP, ATK,
// DEF and SPD, all descending, and finally by name ascending.
func RankLess(a, b *world.Combatant) bool {
	keys := [...][2]int{
		{a.Level, b.Level},
		{a.Exp, b.Exp},
		{a.Stats.MaxHP, b.Stats.MaxHP},
		{a.Stats.ATK, b.Stats.ATK},
		{a.Stats.DEF, b.Stats.DEF},
		{a.Stats.SPD, b.Stats.SPD},
	}
	for _, k := range keys {
		if k[0] != k[1] {
			return k[0] > k[1]
		}
	}
	return a.Name < b.Name
}
