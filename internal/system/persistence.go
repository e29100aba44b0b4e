package system

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/l1jgo/skirmish/internal/core/event"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/persist"
	"go.uber.org/zap"
)

// BattleLogWriter stores battle log entries. *persist.BattleLogRepo
// implements it.
type BattleLogWriter interface {
	WriteBatch(ctx context.Context, entries []persist.BattleLogEntry) error
}

// maxPendingEntries bounds the buffer while the store is unreachable; the
// oldest entries are dropped beyond it.
const maxPendingEntries = 10000

// PersistenceSystem records every battle event and flushes the buffer to the
// battle log every interval ticks (Phase 4). A failed flush keeps the entries
// for the next attempt.
type PersistenceSystem struct {
	writer    BattleLogWriter
	log       *zap.Logger
	pending   []persist.BattleLogEntry
	seq       map[uuid.UUID]int
	tickCount int
	interval  int
	dropped   int
}

func NewPersistenceSystem(bus *event.Bus, writer BattleLogWriter, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	if intervalTicks < 1 {
		intervalTicks = 1
	}
	s := &PersistenceSystem{
		writer:   writer,
		log:      log,
		pending:  make([]persist.BattleLogEntry, 0, 64),
		seq:      make(map[uuid.UUID]int),
		interval: intervalTicks,
	}
	bus.SubscribeAll(s.record)
	return s
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	if err := s.Flush(); err != nil {
		s.log.Error("battle log flush failed", zap.Int("pending", len(s.pending)), zap.Error(err))
	}
}

// Pending returns the number of buffered entries.
func (s *PersistenceSystem) Pending() int { return len(s.pending) }

// Flush writes the buffered entries now. Called on shutdown as well.
func (s *PersistenceSystem) Flush() error {
	if len(s.pending) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.writer.WriteBatch(ctx, s.pending); err != nil {
		return fmt.Errorf("write %d entries: %w", len(s.pending), err)
	}
	s.log.Debug("battle log flushed", zap.Int("entries", len(s.pending)))
	if s.dropped > 0 {
		s.log.Warn("battle log entries dropped while the buffer was full", zap.Int("dropped", s.dropped))
		s.dropped = 0
	}
	s.pending = s.pending[:0]
	return nil
}

func (s *PersistenceSystem) record(ev any) {
	e, ok := logEntryFor(ev)
	if !ok {
		return
	}
	s.seq[e.BattleID]++
	e.Seq = s.seq[e.BattleID]
	if _, done := ev.(event.BattleResolved); done {
		delete(s.seq, e.BattleID)
	}
	if len(s.pending) >= maxPendingEntries {
		s.pending = append(s.pending[:0], s.pending[1:]...)
		s.dropped++
		if s.dropped == 1 {
			s.log.Warn("battle log buffer full, dropping oldest entries")
		}
	}
	s.pending = append(s.pending, e)
}

// logEntryFor maps a bus event to a battle log row.
func logEntryFor(ev any) (persist.BattleLogEntry, bool) {
	switch e := ev.(type) {
	case event.DamageDealt:
		return persist.BattleLogEntry{BattleID: e.BattleID, Round: e.Round, Kind: "damage",
			Actor: e.AttackerName, Target: e.TargetName, Amount: e.Amount,
			Detail: fmt.Sprintf("hp=%d", e.TargetHP)}, true
	case event.CombatantKilled:
		return persist.BattleLogEntry{BattleID: e.BattleID, Round: e.Round, Kind: "killed",
			Actor: e.KillerName, Target: e.VictimName}, true
	case event.ExperienceAwarded:
		return persist.BattleLogEntry{BattleID: e.BattleID, Round: e.Round, Kind: "exp",
			Actor: e.PlayerName, Amount: e.Amount,
			Detail: fmt.Sprintf("total=%d", e.Total)}, true
	case event.LevelUp:
		return persist.BattleLogEntry{BattleID: e.BattleID, Round: e.Round, Kind: "level_up",
			Actor: e.PlayerName, Amount: e.NewLevel}, true
	case event.TurnForfeited:
		return persist.BattleLogEntry{BattleID: e.BattleID, Round: e.Round, Kind: "forfeit",
			Actor: e.CombatantName, Detail: e.Reason}, true
	case event.ItemUsed:
		return persist.BattleLogEntry{BattleID: e.BattleID, Round: e.Round, Kind: "item",
			Actor: e.UserName, Target: e.TargetName,
			Detail: fmt.Sprintf("%s hp=%d", e.ItemName, e.TargetHP)}, true
	case event.RoundCompleted:
		return persist.BattleLogEntry{BattleID: e.BattleID, Round: e.Round, Kind: "round"}, true
	case event.BattleResolved:
		return persist.BattleLogEntry{BattleID: e.BattleID, Round: e.Round, Kind: "resolved",
			Amount: e.WinningSide}, true
	}
	return persist.BattleLogEntry{}, false
}
