package world

import (
	"strings"

	"github.com/google/uuid"
	"github.com/l1jgo/skirmish/internal/core/ecs"
)

// Battle holds the two opposing sides of one encounter. The battle owns only
// the side slices; the combatants belong to the world and outlive it.
type Battle struct {
	ID       uuid.UUID
	Side1    []*Combatant
	Side2    []*Combatant
	Location *Location // back reference, may be nil

	// LastTurns memoises the last action each player used, for Repeat.
	LastTurns map[ecs.EntityID]Action

	Round    int  // completed rounds
	Broken   bool // a round aborted on an engine invariant; the battle is frozen
	Reported bool // BattleResolved has been emitted
}

// NewBattle copies both side slices so later mutations never leak back into
// the caller's slices.
func NewBattle(side1, side2 []*Combatant, loc *Location) *Battle {
	b := &Battle{
		ID:        uuid.New(),
		Side1:     make([]*Combatant, len(side1)),
		Side2:     make([]*Combatant, len(side2)),
		Location:  loc,
		LastTurns: make(map[ecs.EntityID]Action),
	}
	copy(b.Side1, side1)
	copy(b.Side2, side2)
	return b
}

// Side returns side 1 or 2; any other number yields nil.
func (b *Battle) Side(n int) []*Combatant {
	switch n {
	case 1:
		return b.Side1
	case 2:
		return b.Side2
	}
	return nil
}

// SideOf returns 1 or 2 for the side containing c, or 0.
func (b *Battle) SideOf(c *Combatant) int {
	if indexOf(b.Side1, c) >= 0 {
		return 1
	}
	if indexOf(b.Side2, c) >= 0 {
		return 2
	}
	return 0
}

// OpposingSide returns the number of the side NOT containing c. A combatant
// found on neither side (already removed) faces side 2.
func (b *Battle) OpposingSide(c *Combatant) int {
	if indexOf(b.Side2, c) >= 0 {
		return 1
	}
	return 2
}

// Remove deletes c from the given side, preserving the order of the rest.
func (b *Battle) Remove(side int, c *Combatant) bool {
	var s *[]*Combatant
	switch side {
	case 1:
		s = &b.Side1
	case 2:
		s = &b.Side2
	default:
		return false
	}
	i := indexOf(*s, c)
	if i < 0 {
		return false
	}
	*s = append((*s)[:i], (*s)[i+1:]...)
	return true
}

// PruneDead removes combatants that died outside this battle (a shared
// combatant killed in another battle) and returns how many were dropped.
func (b *Battle) PruneDead() int {
	n := 0
	for _, s := range []*[]*Combatant{&b.Side1, &b.Side2} {
		kept := (*s)[:0]
		for _, c := range *s {
			if c.Dead {
				n++
				continue
			}
			kept = append(kept, c)
		}
		for i := len(kept); i < len(*s); i++ {
			(*s)[i] = nil
		}
		*s = kept
	}
	return n
}

// Resolved reports whether either side has been eliminated.
func (b *Battle) Resolved() bool {
	return len(b.Side1) == 0 || len(b.Side2) == 0
}

// Winner returns the surviving side once resolved, 0 otherwise.
func (b *Battle) Winner() int {
	switch {
	case len(b.Side1) > 0 && len(b.Side2) == 0:
		return 1
	case len(b.Side2) > 0 && len(b.Side1) == 0:
		return 2
	}
	return 0
}

// Participants returns side 1 followed by side 2 in a fresh slice.
func (b *Battle) Participants() []*Combatant {
	out := make([]*Combatant, 0, len(b.Side1)+len(b.Side2))
	out = append(out, b.Side1...)
	return append(out, b.Side2...)
}

// MemberStatus is the read-only view of one live combatant.
type MemberStatus struct {
	Name string
	HP   int
}

// Snapshot is the per-side status an observer sees after a turn or round.
type Snapshot struct {
	Round int
	Side1 []MemberStatus
	Side2 []MemberStatus
}

// Snapshot captures {name, HP} for every live member of each side.
func (b *Battle) Snapshot() Snapshot {
	return Snapshot{
		Round: b.Round,
		Side1: statusOf(b.Side1),
		Side2: statusOf(b.Side2),
	}
}

func (b *Battle) String() string {
	var sb strings.Builder
	sb.WriteString(joinNames(b.Side1))
	sb.WriteString(" battling ")
	sb.WriteString(joinNames(b.Side2))
	if b.Location != nil {
		sb.WriteString(" at ")
		sb.WriteString(b.Location.String())
	}
	return sb.String()
}

func statusOf(side []*Combatant) []MemberStatus {
	out := make([]MemberStatus, 0, len(side))
	for _, c := range side {
		if c.Dead {
			continue
		}
		out = append(out, MemberStatus{Name: c.Name, HP: c.Stats.HP})
	}
	return out
}

func joinNames(side []*Combatant) string {
	names := make([]string, len(side))
	for i, c := range side {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func indexOf(side []*Combatant, c *Combatant) int {
	for i, x := range side {
		if x == c {
			return i
		}
	}
	return -1
}
