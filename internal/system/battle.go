package system

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/l1jgo/skirmish/internal/core/event"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/world"
	"go.uber.org/zap"
)

// BattleSystem resolves one round of every active battle per tick (Phase 1).
// Variant behaviour is a policy table keyed by combatant kind: players get a
// prompt-style provider whose answers are memoised for Repeat, monsters get
// a target-picking policy with no memo.
type BattleSystem struct {
	world     *world.State
	bus       *event.Bus
	log       *zap.Logger
	providers map[world.Kind]ActionProvider
	effects   EffectResolver

	// stat growth on level-up; nil rng means disabled
	growthRolls []int
	growthRNG   *rand.Rand

	liveEvents bool
}

func NewBattleSystem(ws *world.State, bus *event.Bus, log *zap.Logger) *BattleSystem {
	return &BattleSystem{
		world:     ws,
		bus:       bus,
		log:       log,
		providers: make(map[world.Kind]ActionProvider, 2),
	}
}

func (s *BattleSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// SetProvider installs the action provider for one combatant kind.
func (s *BattleSystem) SetProvider(kind world.Kind, p ActionProvider) {
	s.providers[kind] = p
}

// SetEffects installs the consumable effect resolver (normally the Lua engine).
func (s *BattleSystem) SetEffects(e EffectResolver) {
	s.effects = e
}

// EnableStatGrowth makes every level reached in battle also roll stat gains
// from rolls. Off by default: exp only moves the level.
func (s *BattleSystem) EnableStatGrowth(rolls []int, rng *rand.Rand) {
	s.growthRolls = rolls
	s.growthRNG = rng
}

// SetLiveEvents makes every turn's events reach subscribers before the next
// combatant acts, so a console prompt follows the narration of the turns
// before it. Otherwise events are delivered once per round by
// EventDispatchSystem.
func (s *BattleSystem) SetLiveEvents(on bool) {
	s.liveEvents = on
}

func (s *BattleSystem) Update(_ time.Duration) {
	s.world.EachBattle(func(b *world.Battle) {
		if b.Broken {
			return
		}
		if b.Resolved() {
			s.reportResolved(b)
			return
		}
		if err := s.AdvanceTurn(b); err != nil {
			b.Broken = true
			s.log.Error("battle round aborted",
				zap.String("battle", b.ID.String()),
				zap.Int("round", b.Round+1),
				zap.Error(err))
		}
	})
}

// TurnOrder lists side 1 then side 2, sorted by SPD descending. The sort is
// stable, so equal speeds keep side 1 before side 2 and insertion order
// within a side.
func TurnOrder(b *world.Battle) []*world.Combatant {
	order := b.Participants()
	sort.SliceStable(order, func(i, j int) bool {
		return turnOrderLess(order[i], order[j])
	})
	return order
}

// turnOrderLess is the turn order key: faster acts first. Nothing else
// breaks ties; the stable sort keeps the original order for equal speeds.
func turnOrderLess(a, b *world.Combatant) bool {
	return a.Stats.SPD > b.Stats.SPD
}

// AdvanceTurn resolves exactly one full round. Every live combatant acts
// once in turn order; combatants killed earlier in the round are skipped and
// removed from their side as soon as they die, so later turns in the same
// round see the shrunken side. Combatants that died in another battle are
// dropped before the round starts. Forfeited turns are reported as events and
// do not stop the round. An engine invariant violation aborts the round and
// is returned wrapped in ErrInvariant.
func (s *BattleSystem) AdvanceTurn(b *world.Battle) error {
	if n := b.PruneDead(); n > 0 {
		s.log.Debug("dropped combatants killed elsewhere",
			zap.String("battle", b.ID.String()),
			zap.Int("count", n))
	}
	if err := checkInvariants(b); err != nil {
		return err
	}
	if b.Resolved() {
		s.reportResolved(b)
		return nil
	}
	round := b.Round + 1
	for _, c := range TurnOrder(b) {
		if c.Dead {
			continue
		}
		err := s.takeTurn(b, round, c)
		switch {
		case err == nil:
		case errors.Is(err, ErrForfeit):
			s.forfeit(b, round, c, err)
		default:
			return err
		}
		if s.liveEvents && s.bus != nil {
			s.bus.Flush()
		}
	}
	b.Round = round
	if err := checkInvariants(b); err != nil {
		return err
	}
	s.emit(event.RoundCompleted{BattleID: b.ID, Round: round})
	if b.Resolved() {
		s.reportResolved(b)
	}
	return nil
}

func (s *BattleSystem) takeTurn(b *world.Battle, round int, c *world.Combatant) error {
	otherSide := b.OpposingSide(c)
	opponents := b.Side(otherSide)
	if len(opponents) == 0 {
		return ErrNoTarget
	}
	action, err := s.chooseAction(b, c, opponents)
	if err != nil {
		return err
	}
	switch action.Kind {
	case world.ActionAttack:
		return s.executeAttack(b, round, c, otherSide, action.Index)
	case world.ActionUseItem:
		return s.executeUseItem(b, round, c, action.Index)
	default:
		return ErrUnknownAction
	}
}

// chooseAction asks the kind's provider for an action. For players an empty
// or Repeat answer reuses the memoised action, and whichever action is used
// becomes the new memo.
func (s *BattleSystem) chooseAction(b *world.Battle, c *world.Combatant, opponents []*world.Combatant) (world.Action, error) {
	p := s.providers[c.Kind]
	if p == nil {
		return world.Action{}, fmt.Errorf("%w: no provider for %s", ErrProvider, c.Kind)
	}
	action, err := p.RequestAction(c, opponents)
	if err != nil {
		if errors.Is(err, ErrForfeit) {
			return world.Action{}, err
		}
		return world.Action{}, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	if !c.IsPlayer() {
		return action, nil
	}
	if action.Kind == world.ActionRepeat || action.Kind == world.ActionNone {
		prev, ok := b.LastTurns[c.ID]
		if !ok {
			return world.Action{}, ErrNoMemo
		}
		action = prev
	}
	b.LastTurns[c.ID] = action
	return action, nil
}

func (s *BattleSystem) executeAttack(b *world.Battle, round int, c *world.Combatant, otherSide, index int) error {
	opponents := b.Side(otherSide)
	if index < 0 || index >= len(opponents) {
		return fmt.Errorf("attack %d of %d: %w", index, len(opponents), ErrTargetOutOfRange)
	}
	target := opponents[index]
	if target.Dead {
		return fmt.Errorf("attack %s: %w", target.Name, ErrTargetDead)
	}
	dealt := Attack(c, target)
	s.emit(event.DamageDealt{
		BattleID:     b.ID,
		Round:        round,
		AttackerID:   c.ID,
		AttackerName: c.Name,
		TargetID:     target.ID,
		TargetName:   target.Name,
		Amount:       dealt,
		TargetHP:     target.Stats.HP,
	})
	if target.Dead {
		s.handleDeath(b, round, c, target, otherSide)
	}
	return nil
}

func (s *BattleSystem) executeUseItem(b *world.Battle, round int, c *world.Combatant, index int) error {
	if index < 0 || index >= len(c.Inventory) {
		return fmt.Errorf("use slot %d of %d: %w", index, len(c.Inventory), ErrNoItem)
	}
	item := c.Inventory[index]
	if err := UseItem(c, item, s.effects); err != nil {
		return err
	}
	c.TakeItem(index)
	s.emit(event.ItemUsed{
		BattleID:   b.ID,
		Round:      round,
		UserID:     c.ID,
		UserName:   c.Name,
		ItemName:   item.Name,
		TargetName: c.Name,
		TargetHP:   c.Stats.HP,
	})
	if c.Dead {
		s.handleDeath(b, round, nil, c, b.SideOf(c))
	}
	return nil
}

func (s *BattleSystem) forfeit(b *world.Battle, round int, c *world.Combatant, reason error) {
	s.log.Debug("turn forfeited",
		zap.String("battle", b.ID.String()),
		zap.String("combatant", c.Name),
		zap.Error(reason))
	s.emit(event.TurnForfeited{
		BattleID:      b.ID,
		Round:         round,
		CombatantID:   c.ID,
		CombatantName: c.Name,
		Reason:        reason.Error(),
	})
}

func (s *BattleSystem) reportResolved(b *world.Battle) {
	if b.Reported {
		return
	}
	b.Reported = true
	winner := b.Winner()
	s.log.Info("battle resolved",
		zap.String("battle", b.ID.String()),
		zap.String("desc", b.String()),
		zap.Int("rounds", b.Round),
		zap.Int("winner", winner))
	s.emit(event.BattleResolved{BattleID: b.ID, Round: b.Round, WinningSide: winner})
}

func (s *BattleSystem) emit(ev any) {
	if s.bus == nil {
		return
	}
	event.Emit(s.bus, ev)
}

// checkInvariants verifies that no side holds a dead combatant and every
// stat bundle is in range.
func checkInvariants(b *world.Battle) error {
	for n := 1; n <= 2; n++ {
		for _, c := range b.Side(n) {
			if c.Dead {
				return fmt.Errorf("%w: dead %s still on side %d", ErrInvariant, c.Name, n)
			}
			if !c.Stats.Valid() {
				return fmt.Errorf("%w: %s has stats out of range (%s, max %d)", ErrInvariant, c.Name, c.Stats, c.Stats.MaxHP)
			}
		}
	}
	return nil
}
