package system

import (
	"github.com/l1jgo/skirmish/internal/core/ecs"
	"github.com/l1jgo/skirmish/internal/core/event"
	"github.com/l1jgo/skirmish/internal/world"
	"go.uber.org/zap"
)

// handleDeath takes a freshly killed combatant off its side and credits the
// killer. Dead monsters are released at the end of the tick; dead players
// stay on the roster. Only a player killing a monster earns exp. killer is
// nil when the victim died by its own hand (a harmful consumable).
func (s *BattleSystem) handleDeath(b *world.Battle, round int, killer, victim *world.Combatant, side int) {
	b.Remove(side, victim)
	if victim.IsMonster() {
		s.world.Release(victim)
	}

	var killerID ecs.EntityID
	killerName := ""
	if killer != nil {
		killerID, killerName = killer.ID, killer.Name
	}
	s.log.Info("combatant killed",
		zap.String("battle", b.ID.String()),
		zap.String("killer", killerName),
		zap.String("victim", victim.Name))
	s.emit(event.CombatantKilled{
		BattleID:   b.ID,
		Round:      round,
		KillerID:   killerID,
		KillerName: killerName,
		VictimID:   victim.ID,
		VictimName: victim.Name,
	})

	if killer != nil && killer.IsPlayer() && victim.IsMonster() {
		s.awardExp(b, round, killer, victim.Exp)
	}
}

// awardExp credits exp and reports every level crossed.
func (s *BattleSystem) awardExp(b *world.Battle, round int, p *world.Combatant, amount int) {
	if amount <= 0 {
		return
	}
	levels := GainExp(p, amount)
	s.emit(event.ExperienceAwarded{
		BattleID:   b.ID,
		Round:      round,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Amount:     amount,
		Total:      p.Exp,
	})
	for _, lv := range levels {
		if s.growthRNG != nil {
			RollStats(p, s.growthRolls, s.growthRNG)
		}
		s.log.Info("player levelled up",
			zap.String("player", p.Name),
			zap.Int("level", lv),
			zap.Int("exp", p.Exp),
			zap.Stringer("stats", p.Stats))
		s.emit(event.LevelUp{
			BattleID:   b.ID,
			Round:      round,
			PlayerID:   p.ID,
			PlayerName: p.Name,
			NewLevel:   lv,
		})
	}
}
