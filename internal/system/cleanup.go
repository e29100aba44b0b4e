package system

import (
	"time"

	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem discards resolved battles and flushes the combatants released
// during the tick (Phase 5). A broken battle is kept so it can be inspected,
// but it is never advanced again.
type CleanupSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewCleanupSystem(ws *world.State, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: ws, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	for _, loc := range s.world.Locations() {
		removed := loc.RemoveBattles(func(b *world.Battle) bool {
			return b.Reported && !b.Broken
		})
		for _, b := range removed {
			s.log.Debug("battle discarded",
				zap.String("battle", b.ID.String()),
				zap.String("location", loc.String()))
		}
	}
	if n := s.world.FlushReleased(); n > 0 {
		s.log.Debug("released combatants", zap.Int("count", n))
	}
}
