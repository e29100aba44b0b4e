package system

import (
	"math/rand"

	"github.com/l1jgo/skirmish/internal/world"
)

// DefaultStatRolls is the weighted pool a level-up draws each stat gain
// from when no script supplies one.
var DefaultStatRolls = []int{1, 1, 2, 2, 2, 3}

// ExpToNext returns the exp a player at level needs to advance.
func ExpToNext(level int) int {
	return level * 10
}

// GainExp adds exp to a player and advances its level for every threshold
// crossed, carrying the remainder. It returns each level reached, in order.
// Stat gains are not rolled here; that is LevelUp's job.
func GainExp(p *world.Combatant, amount int) []int {
	if amount <= 0 {
		return nil
	}
	p.Exp += amount
	var reached []int
	for p.Exp >= ExpToNext(p.Level) {
		p.Exp -= ExpToNext(p.Level)
		p.Level++
		reached = append(reached, p.Level)
	}
	return reached
}

// LevelUp advances a player one level, raises MaxHP, ATK, DEF and SPD by a
// draw from rolls each, and refills HP. An empty rolls uses DefaultStatRolls.
func LevelUp(p *world.Combatant, rolls []int, rng *rand.Rand) {
	p.Level++
	RollStats(p, rolls, rng)
}

// RollStats applies one level's worth of stat gains without touching the
// level. Battles use it when stat growth is enabled, after GainExp has
// already moved the level.
func RollStats(p *world.Combatant, rolls []int, rng *rand.Rand) {
	if len(rolls) == 0 {
		rolls = DefaultStatRolls
	}
	draw := func() int { return rolls[rng.Intn(len(rolls))] }

	p.Stats.MaxHP += draw()
	p.Stats.ATK += draw()
	p.Stats.DEF += draw()
	p.Stats.SPD += draw()
	p.Stats.HP = p.Stats.MaxHP
}
