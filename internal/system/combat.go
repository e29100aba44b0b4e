package system

import "github.com/l1jgo/skirmish/internal/world"

// ApplyDamage removes up to points HP and returns the damage actually dealt.
// Lethal damage is clamped to the remaining HP and leaves HP at 0; setting
// the death flag is the caller's job. Negative points deal nothing.
func ApplyDamage(s *world.Stats, points int) int {
	if points <= 0 {
		return 0
	}
	if points >= s.HP {
		dealt := s.HP
		s.HP = 0
		return dealt
	}
	s.HP -= points
	return points
}

// Heal restores up to points HP without exceeding MaxHP.
func Heal(s *world.Stats, points int) {
	if points <= 0 {
		return
	}
	s.HP = min(s.HP+points, s.MaxHP)
}

// CalcDamage is the raw hit: ATK minus DEF, never below 1 so that every
// hit makes progress.
func CalcDamage(atk, def int) int {
	dmg := atk - def
	if dmg <= 0 {
		dmg = 1
	}
	return dmg
}

// Attack hits target for CalcDamage(attacker.ATK, target.DEF) and returns the
// damage dealt after clamping. A hit that empties the target's HP marks it
// dead and records it as the attacker's LastKilled. An already dead target
// takes nothing.
func Attack(attacker, target *world.Combatant) int {
	if target.Dead {
		return 0
	}
	dealt := ApplyDamage(&target.Stats, CalcDamage(attacker.Stats.ATK, target.Stats.DEF))
	if target.Stats.HP == 0 {
		target.Dead = true
		attacker.LastKilled = target
	}
	return dealt
}
