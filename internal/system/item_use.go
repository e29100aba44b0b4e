package system

import (
	"fmt"

	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/scripting"
	"github.com/l1jgo/skirmish/internal/world"
)

// EffectResolver turns a consumable's effect name and argument into stat
// deltas. *scripting.Engine implements it.
type EffectResolver interface {
	ItemEffect(name string, ctx scripting.EffectContext) (scripting.EffectResult, bool)
}

// builtinEffects covers the effects the engine knows without scripts.
type builtinEffects struct{}

func (builtinEffects) ItemEffect(name string, ctx scripting.EffectContext) (scripting.EffectResult, bool) {
	switch name {
	case data.EffectHeal:
		return scripting.EffectResult{HP: ctx.Arg}, true
	}
	return scripting.EffectResult{}, false
}

// UseItem applies a consumable's effect to target. Effects are resolved by
// effects first and the built-in table second. Positive HP deltas heal up to
// MaxHP; negative ones are damage and can kill.
func UseItem(target *world.Combatant, item *data.ItemInfo, effects EffectResolver) error {
	if !item.IsConsumable() {
		return fmt.Errorf("use %s: %w", item, ErrNotUsable)
	}
	if target.Dead {
		return fmt.Errorf("use %s on %s: %w", item, target.Name, ErrTargetDead)
	}
	ctx := scripting.EffectContext{
		Arg:   item.EffectArg,
		HP:    target.Stats.HP,
		MaxHP: target.Stats.MaxHP,
		ATK:   target.Stats.ATK,
		DEF:   target.Stats.DEF,
		SPD:   target.Stats.SPD,
	}
	var (
		res scripting.EffectResult
		ok  bool
	)
	if effects != nil {
		res, ok = effects.ItemEffect(item.Effect, ctx)
	}
	if !ok {
		res, ok = builtinEffects{}.ItemEffect(item.Effect, ctx)
	}
	if !ok {
		return fmt.Errorf("use %s: effect %q: %w", item, item.Effect, ErrNotUsable)
	}
	applyEffect(target, res)
	return nil
}

func applyEffect(c *world.Combatant, res scripting.EffectResult) {
	s := &c.Stats
	s.MaxHP = max(s.MaxHP+res.MaxHP, 0)
	s.ATK = max(s.ATK+res.ATK, 0)
	s.DEF = max(s.DEF+res.DEF, 0)
	s.SPD = max(s.SPD+res.SPD, 0)
	if s.HP > s.MaxHP {
		s.HP = s.MaxHP
	}
	switch {
	case res.HP > 0:
		Heal(s, res.HP)
	case res.HP < 0:
		ApplyDamage(s, -res.HP)
	}
	if s.HP == 0 {
		c.Dead = true
	}
}
