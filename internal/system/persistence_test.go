package system

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/l1jgo/skirmish/internal/core/event"
	"github.com/l1jgo/skirmish/internal/persist"
	"go.uber.org/zap"
)

type fakeLog struct {
	fail    bool
	batches [][]persist.BattleLogEntry
}

func (f *fakeLog) WriteBatch(_ context.Context, entries []persist.BattleLogEntry) error {
	if f.fail {
		return errors.New("db down")
	}
	f.batches = append(f.batches, append([]persist.BattleLogEntry(nil), entries...))
	return nil
}

func (f *fakeLog) all() []persist.BattleLogEntry {
	var out []persist.BattleLogEntry
	for _, b := range f.batches {
		out = append(out, b...)
	}
	return out
}

func TestPersistenceRecordsBattleInOrder(t *testing.T) {
	bus := event.NewBus()
	w := &fakeLog{}
	ps := NewPersistenceSystem(bus, w, zap.NewNop(), 1)
	id := uuid.New()

	event.Emit(bus, event.DamageDealt{BattleID: id, Round: 1, AttackerName: "P", TargetName: "Slime", Amount: 5})
	event.Emit(bus, event.CombatantKilled{BattleID: id, Round: 1, KillerName: "P", VictimName: "Slime"})
	event.Emit(bus, event.ExperienceAwarded{BattleID: id, Round: 1, PlayerName: "P", Amount: 2, Total: 2})
	event.Emit(bus, "not a battle event")
	event.Emit(bus, event.BattleResolved{BattleID: id, Round: 1, WinningSide: 1})
	bus.Flush()

	if ps.Pending() != 4 {
		t.Fatalf("Pending = %d, want 4", ps.Pending())
	}
	ps.Update(0)
	if ps.Pending() != 0 {
		t.Fatalf("Pending after flush = %d", ps.Pending())
	}

	got := w.all()
	kinds := []string{"damage", "killed", "exp", "resolved"}
	if len(got) != len(kinds) {
		t.Fatalf("wrote %d entries, want %d", len(got), len(kinds))
	}
	for i, e := range got {
		if e.Kind != kinds[i] || e.Seq != i+1 || e.BattleID != id {
			t.Errorf("entry %d = %+v", i, e)
		}
	}
	if got[0].Amount != 5 || got[0].Target != "Slime" {
		t.Errorf("damage entry = %+v", got[0])
	}
}

func TestPersistenceSeqPerBattle(t *testing.T) {
	bus := event.NewBus()
	w := &fakeLog{}
	ps := NewPersistenceSystem(bus, w, zap.NewNop(), 1)
	a, b := uuid.New(), uuid.New()

	event.Emit(bus, event.RoundCompleted{BattleID: a, Round: 1})
	event.Emit(bus, event.RoundCompleted{BattleID: b, Round: 1})
	event.Emit(bus, event.RoundCompleted{BattleID: a, Round: 2})
	bus.Flush()
	if err := ps.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := w.all()
	want := []struct {
		id  uuid.UUID
		seq int
	}{{a, 1}, {b, 1}, {a, 2}}
	for i, e := range got {
		if e.BattleID != want[i].id || e.Seq != want[i].seq {
			t.Errorf("entry %d: battle %s seq %d", i, e.BattleID, e.Seq)
		}
	}
}

func TestPersistenceKeepsEntriesOnFailure(t *testing.T) {
	bus := event.NewBus()
	w := &fakeLog{fail: true}
	ps := NewPersistenceSystem(bus, w, zap.NewNop(), 2)
	id := uuid.New()

	event.Emit(bus, event.TurnForfeited{BattleID: id, Round: 1, CombatantName: "P", Reason: "no legal target"})
	bus.Flush()

	ps.Update(0)
	if len(w.batches) != 0 {
		t.Fatal("flushed before the interval elapsed")
	}
	ps.Update(0)
	if ps.Pending() != 1 {
		t.Fatalf("Pending = %d after failed flush, want 1", ps.Pending())
	}

	w.fail = false
	if err := ps.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	got := w.all()
	if len(got) != 1 || got[0].Kind != "forfeit" || got[0].Detail != "no legal target" {
		t.Fatalf("entries = %+v", got)
	}
}

func TestPersistenceBufferIsBounded(t *testing.T) {
	bus := event.NewBus()
	ps := NewPersistenceSystem(bus, &fakeLog{fail: true}, zap.NewNop(), 1)
	id := uuid.New()
	for i := 0; i < maxPendingEntries+5; i++ {
		event.Emit(bus, event.RoundCompleted{BattleID: id, Round: i + 1})
	}
	bus.Flush()
	if ps.Pending() != maxPendingEntries {
		t.Fatalf("Pending = %d, want %d", ps.Pending(), maxPendingEntries)
	}
	if ps.pending[0].Round != 6 {
		t.Fatalf("oldest kept round = %d, want 6", ps.pending[0].Round)
	}
}

func TestPersistenceDropCountResetsAfterFlush(t *testing.T) {
	bus := event.NewBus()
	w := &fakeLog{fail: true}
	ps := NewPersistenceSystem(bus, w, zap.NewNop(), 1)
	id := uuid.New()
	overflow := func() {
		for i := 0; i < maxPendingEntries+3; i++ {
			event.Emit(bus, event.RoundCompleted{BattleID: id, Round: i + 1})
		}
		bus.Flush()
	}

	overflow()
	if ps.dropped != 3 {
		t.Fatalf("dropped = %d, want 3", ps.dropped)
	}
	w.fail = false
	if err := ps.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if ps.dropped != 0 {
		t.Fatalf("dropped = %d after flush, want 0", ps.dropped)
	}

	w.fail = true
	overflow()
	if ps.dropped != 3 {
		t.Fatalf("second overflow dropped = %d, want 3", ps.dropped)
	}
}
