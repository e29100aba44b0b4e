package system

import (
	"testing"

	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/world"
)

var slimeTmpl = &data.MonsterTemplate{Key: "slime", Name: "Slime", HP: 5, ATK: 1, DEF: 1, SPD: 1, Exp: 2}

func TestApplyDamageClamps(t *testing.T) {
	for points := -2; points <= 12; points++ {
		s := world.NewStats(5, 0, 0, 0)
		dealt := ApplyDamage(&s, points)
		want := min(max(points, 0), 5)
		if dealt != want {
			t.Errorf("points %d: dealt %d, want %d", points, dealt, want)
		}
		if s.HP != 5-want {
			t.Errorf("points %d: HP %d, want %d", points, s.HP, 5-want)
		}
		if !s.Valid() {
			t.Errorf("points %d: stats invalid %+v", points, s)
		}
	}
}

func TestHealCapsAtMax(t *testing.T) {
	s := world.NewStats(10, 0, 0, 0)
	s.HP = 3
	Heal(&s, 5)
	if s.HP != 8 {
		t.Fatalf("HP = %d, want 8", s.HP)
	}
	Heal(&s, 100)
	if s.HP != 10 {
		t.Fatalf("HP = %d, want 10", s.HP)
	}
	Heal(&s, -4)
	if s.HP != 10 {
		t.Fatalf("negative heal changed HP to %d", s.HP)
	}
}

func TestCalcDamage(t *testing.T) {
	cases := []struct{ atk, def, want int }{
		{6, 1, 5},
		{3, 2, 1},
		{2, 2, 1},
		{1, 5, 1},
		{0, 0, 1},
	}
	for _, tc := range cases {
		if got := CalcDamage(tc.atk, tc.def); got != tc.want {
			t.Errorf("CalcDamage(%d, %d) = %d, want %d", tc.atk, tc.def, got, tc.want)
		}
	}
}

func TestAttackKillsAndRecordsVictim(t *testing.T) {
	p := world.NewPlayer(1, "P")
	p.Stats.ATK = 6
	m := world.NewMonster(2, slimeTmpl)

	if dealt := Attack(p, m); dealt != 5 {
		t.Fatalf("dealt %d, want 5", dealt)
	}
	if !m.Dead || m.Stats.HP != 0 {
		t.Fatalf("slime not dead: %+v", m.Stats)
	}
	if p.LastKilled != m {
		t.Fatal("LastKilled not set")
	}
	if dealt := Attack(p, m); dealt != 0 {
		t.Fatalf("attacking a corpse dealt %d", dealt)
	}
	if !m.Dead || m.Stats.HP != 0 {
		t.Fatal("second attack changed the corpse")
	}
}

func TestAttackOverkillClampsToRemainingHP(t *testing.T) {
	p := world.NewPlayer(1, "P")
	p.Stats.ATK = 50
	m := world.NewMonster(2, slimeTmpl)
	m.Stats.HP = 2
	if dealt := Attack(p, m); dealt != 2 {
		t.Fatalf("dealt %d, want 2", dealt)
	}
}

func TestAttackWeakAttackerStillHits(t *testing.T) {
	m := world.NewMonster(1, slimeTmpl)
	p := world.NewPlayer(2, "P")
	if dealt := Attack(m, p); dealt != 1 {
		t.Fatalf("dealt %d, want 1", dealt)
	}
	if p.Stats.HP != 9 || p.Dead {
		t.Fatalf("player = %+v dead=%v", p.Stats, p.Dead)
	}
	if m.LastKilled != nil {
		t.Fatal("LastKilled set without a kill")
	}
}
