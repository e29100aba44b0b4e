package system

import (
	"math/rand"

	"github.com/l1jgo/skirmish/internal/world"
)

// ActionProvider supplies the action a combatant takes on its turn.
// opponents is the live opposing side at the moment of the request; an
// Attack index refers to a position in it. Implementations may block (a
// human at a prompt) but are never called concurrently for one battle.
type ActionProvider interface {
	RequestAction(c *world.Combatant, opponents []*world.Combatant) (world.Action, error)
}

// ProviderFunc adapts a function to ActionProvider.
type ProviderFunc func(c *world.Combatant, opponents []*world.Combatant) (world.Action, error)

func (f ProviderFunc) RequestAction(c *world.Combatant, opponents []*world.Combatant) (world.Action, error) {
	return f(c, opponents)
}

// RandomTargetPolicy attacks a uniformly random opponent. It is the monster
// behaviour.
type RandomTargetPolicy struct {
	rng *rand.Rand
}

func NewRandomTargetPolicy(rng *rand.Rand) *RandomTargetPolicy {
	return &RandomTargetPolicy{rng: rng}
}

func (p *RandomTargetPolicy) RequestAction(_ *world.Combatant, opponents []*world.Combatant) (world.Action, error) {
	if len(opponents) == 0 {
		return world.Action{}, ErrNoTarget
	}
	return world.Attack(p.rng.Intn(len(opponents))), nil
}

// FirstTargetPolicy always attacks the first opponent. Used for unattended
// players.
type FirstTargetPolicy struct{}

func (FirstTargetPolicy) RequestAction(_ *world.Combatant, opponents []*world.Combatant) (world.Action, error) {
	if len(opponents) == 0 {
		return world.Action{}, ErrNoTarget
	}
	return world.Attack(0), nil
}

// WeakestTargetPolicy attacks the opponent with the least HP, first one on
// ties.
type WeakestTargetPolicy struct{}

func (WeakestTargetPolicy) RequestAction(_ *world.Combatant, opponents []*world.Combatant) (world.Action, error) {
	if len(opponents) == 0 {
		return world.Action{}, ErrNoTarget
	}
	best := 0
	for i, o := range opponents {
		if o.Stats.HP < opponents[best].Stats.HP {
			best = i
		}
	}
	return world.Attack(best), nil
}
