package world

// Location is a named place that hosts battles, e.g. "Castle of Winterfell".
type Location struct {
	Name    string
	Type    string
	Battles []*Battle
}

func NewLocation(name, typ string) *Location {
	return &Location{Name: name, Type: typ, Battles: make([]*Battle, 0, 4)}
}

func (l *Location) String() string {
	return l.Type + " of " + l.Name
}

// AddBattle starts a new battle here between the two sides.
func (l *Location) AddBattle(side1, side2 []*Combatant) *Battle {
	b := NewBattle(side1, side2, l)
	l.Battles = append(l.Battles, b)
	return b
}

// RemoveBattles drops every battle for which done returns true and returns
// the removed ones in their original order.
func (l *Location) RemoveBattles(done func(*Battle) bool) []*Battle {
	var removed []*Battle
	kept := l.Battles[:0]
	for _, b := range l.Battles {
		if done(b) {
			removed = append(removed, b)
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(l.Battles); i++ {
		l.Battles[i] = nil
	}
	l.Battles = kept
	return removed
}
