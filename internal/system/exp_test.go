package system

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/l1jgo/skirmish/internal/world"
)

func TestGainExp(t *testing.T) {
	cases := []struct {
		name       string
		level, exp int
		gain       int
		wantLevel  int
		wantExp    int
		wantLevels []int
	}{
		{"below threshold", 1, 0, 5, 1, 5, nil},
		{"exact threshold", 1, 0, 10, 2, 0, []int{2}},
		{"carry remainder", 1, 9, 3, 2, 2, []int{2}},
		{"multi level", 1, 0, 35, 3, 5, []int{2, 3}},
		{"higher level threshold", 3, 25, 5, 4, 0, []int{4}},
		{"zero gain", 2, 4, 0, 2, 4, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := world.NewPlayer(1, "P")
			p.Level, p.Exp = tc.level, tc.exp
			before := p.Stats
			got := GainExp(p, tc.gain)
			if p.Level != tc.wantLevel || p.Exp != tc.wantExp {
				t.Fatalf("level %d exp %d, want level %d exp %d", p.Level, p.Exp, tc.wantLevel, tc.wantExp)
			}
			if !reflect.DeepEqual(got, tc.wantLevels) {
				t.Fatalf("levels = %v, want %v", got, tc.wantLevels)
			}
			if p.Exp >= ExpToNext(p.Level) {
				t.Fatalf("exp %d not below threshold %d", p.Exp, ExpToNext(p.Level))
			}
			if p.Stats != before {
				t.Fatal("GainExp changed stats")
			}
		})
	}
}

func TestLevelUpRollsEveryStat(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		p := world.NewPlayer(1, "P")
		p.Stats.HP = 4
		LevelUp(p, nil, rng)
		if p.Level != 2 {
			t.Fatalf("level = %d", p.Level)
		}
		gains := []int{p.Stats.MaxHP - 10, p.Stats.ATK - 2, p.Stats.DEF - 2, p.Stats.SPD - 2}
		for _, g := range gains {
			if g < 1 || g > 3 {
				t.Fatalf("gain %d outside the roll table (%v)", g, gains)
			}
		}
		if p.Stats.HP != p.Stats.MaxHP {
			t.Fatalf("HP %d not refilled to %d", p.Stats.HP, p.Stats.MaxHP)
		}
	}
}

func TestLevelUpUsesGivenRolls(t *testing.T) {
	p := world.NewPlayer(1, "P")
	LevelUp(p, []int{3}, rand.New(rand.NewSource(1)))
	want := world.Stats{HP: 13, MaxHP: 13, ATK: 5, DEF: 5, SPD: 5}
	if p.Stats != want {
		t.Fatalf("stats = %+v, want %+v", p.Stats, want)
	}
}

func TestLevelUpDeterministicForSeed(t *testing.T) {
	a, b := world.NewPlayer(1, "A"), world.NewPlayer(2, "B")
	LevelUp(a, DefaultStatRolls, rand.New(rand.NewSource(99)))
	LevelUp(b, DefaultStatRolls, rand.New(rand.NewSource(99)))
	if a.Stats != b.Stats {
		t.Fatalf("same seed, different stats: %+v vs %+v", a.Stats, b.Stats)
	}
}
