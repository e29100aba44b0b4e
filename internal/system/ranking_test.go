package system

import (
	"reflect"
	"testing"

	"github.com/l1jgo/skirmish/internal/world"
)

func TestRankLess(t *testing.T) {
	mk := func(name string, level, exp, maxHP, atk int) *world.Combatant {
		c := world.NewPlayer(0, name)
		c.Level, c.Exp = level, exp
		c.Stats.MaxHP, c.Stats.ATK = maxHP, atk
		return c
	}
	cases := []struct {
		name string
		a, b *world.Combatant
		want bool
	}{
		{"higher level first", mk("a", 3, 0, 10, 2), mk("b", 2, 15, 10, 2), true},
		{"lower level after", mk("a", 1, 9, 10, 2), mk("b", 2, 0, 10, 2), false},
		{"exp breaks level tie", mk("a", 2, 5, 10, 2), mk("b", 2, 4, 10, 2), true},
		{"max hp next", mk("a", 2, 5, 9, 2), mk("b", 2, 5, 12, 2), false},
		{"atk next", mk("a", 2, 5, 10, 4), mk("b", 2, 5, 10, 3), true},
		{"name last", mk("Ann", 1, 0, 10, 2), mk("Bob", 1, 0, 10, 2), true},
		{"equal is not less", mk("Ann", 1, 0, 10, 2), mk("Ann", 1, 0, 10, 2), false},
	}
	for _, tc := range cases {
		if got := RankLess(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: RankLess = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRankingLeaderboard(t *testing.T) {
	ws := world.NewState()
	a := ws.NewPlayer("Maron")
	b := ws.NewPlayer("Davion")
	c := ws.NewPlayer("Aria")
	a.Level = 2
	b.Exp = 7
	c.Dead = true

	rs := NewRankingSystem(ws, 2)
	rs.Update(0)
	if rs.Leaderboard() != nil {
		t.Fatal("recalculated before the interval")
	}
	rs.Update(0)

	var names []string
	for _, e := range rs.Leaderboard() {
		names = append(names, e.Name)
	}
	if !reflect.DeepEqual(names, []string{"Maron", "Davion", "Aria"}) {
		t.Fatalf("board = %v", names)
	}
	board := rs.Leaderboard()
	if board[0].Place != 1 || board[2].Place != 3 || !board[2].Dead {
		t.Fatalf("board = %+v", board)
	}
}
