package world

import "fmt"

// Stats is the mutable attribute bundle of a combatant. All values are
// non-negative and 0 <= HP <= MaxHP once a mutation settles.
type Stats struct {
	HP    int
	MaxHP int
	ATK   int
	DEF   int
	SPD   int
}

// NewStats starts a combatant at full health.
func NewStats(hp, atk, def, spd int) Stats {
	return Stats{HP: hp, MaxHP: hp, ATK: atk, DEF: def, SPD: spd}
}

func (s Stats) String() string {
	return fmt.Sprintf("HP: %d, ATK: %d, DEF: %d, SPD: %d", s.HP, s.ATK, s.DEF, s.SPD)
}

// Valid reports whether the bundle satisfies the stat invariants.
func (s Stats) Valid() bool {
	return s.HP >= 0 && s.HP <= s.MaxHP && s.ATK >= 0 && s.DEF >= 0 && s.SPD >= 0
}
