package system

import (
	"testing"

	"github.com/l1jgo/skirmish/internal/core/event"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/handler"
	"github.com/l1jgo/skirmish/internal/world"
	"go.uber.org/zap"
)

func TestCleanupDropsResolvedKeepsBroken(t *testing.T) {
	ws := world.NewState()
	loc := ws.AddLocation("Winterfell", "Castle")
	done := loc.AddBattle(nil, nil)
	done.Reported = true
	broken := loc.AddBattle(nil, nil)
	broken.Reported, broken.Broken = true, true
	open := loc.AddBattle([]*world.Combatant{ws.NewPlayer("P")}, []*world.Combatant{ws.SpawnMonster(slimeTmpl)})

	NewCleanupSystem(ws, zap.NewNop()).Update(0)

	if len(loc.Battles) != 2 || loc.Battles[0] != broken || loc.Battles[1] != open {
		t.Fatalf("battles = %v", loc.Battles)
	}
}

// TestFullTick runs a whole battle through the runner, phase by phase.
func TestFullTick(t *testing.T) {
	ws := world.NewState()
	bus := event.NewBus()
	loc := ws.AddLocation("Winterfell", "Castle")
	p := ws.NewPlayer("Davion")
	p.Stats.ATK = 6
	slime := ws.SpawnMonster(slimeTmpl)
	b := loc.AddBattle([]*world.Combatant{p}, []*world.Combatant{slime})

	battles := NewBattleSystem(ws, bus, zap.NewNop())
	battles.SetProvider(world.KindPlayer, handler.NewScriptedProvider("attack 0"))
	battles.SetProvider(world.KindMonster, FirstTargetPolicy{})
	w := &fakeLog{}
	var seen []any
	bus.SubscribeAll(func(ev any) { seen = append(seen, ev) })

	r := coresys.NewRunner()
	r.Register(NewCleanupSystem(ws, zap.NewNop()))
	r.Register(NewPersistenceSystem(bus, w, zap.NewNop(), 1))
	r.Register(NewEventDispatchSystem(bus))
	r.Register(battles)

	if ws.CombatantCount() != 2 {
		t.Fatalf("count = %d", ws.CombatantCount())
	}
	r.Tick(0)

	if len(seen) != 5 {
		t.Fatalf("dispatched %d events in the same tick, want 5", len(seen))
	}
	if len(w.all()) != 5 {
		t.Fatalf("persisted %d entries, want 5", len(w.all()))
	}
	if len(loc.Battles) != 0 {
		t.Fatal("resolved battle not discarded")
	}
	if _, ok := ws.Combatant(slime.ID); ok {
		t.Fatal("dead slime still registered")
	}
	if ws.CombatantCount() != 1 {
		t.Fatalf("count = %d, want 1", ws.CombatantCount())
	}
	if !b.Reported {
		t.Fatal("battle not reported")
	}
}
