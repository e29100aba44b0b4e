package world

import (
	"github.com/l1jgo/skirmish/internal/core/ecs"
	"github.com/l1jgo/skirmish/internal/data"
)

// State is the game: every combatant ever created, the players, and the
// locations hosting battles. Accessed only from the game loop goroutine.
type State struct {
	ecs        *ecs.World
	combatants *ecs.PtrComponentStore[Combatant]
	players    []*Combatant
	locations  []*Location
}

func NewState() *State {
	w := ecs.NewWorld()
	store := ecs.NewPtrComponentStore[Combatant]()
	w.Registry().Register(store)
	return &State{
		ecs:        w,
		combatants: store,
		players:    make([]*Combatant, 0, 4),
		locations:  make([]*Location, 0, 4),
	}
}

// NewPlayer creates a level 1 player and adds it to the roster.
func (s *State) NewPlayer(name string) *Combatant {
	p := NewPlayer(s.ecs.CreateEntity(), name)
	s.combatants.Set(p.ID, p)
	s.players = append(s.players, p)
	return p
}

// SpawnMonster creates a monster from a template.
func (s *State) SpawnMonster(tmpl *data.MonsterTemplate) *Combatant {
	m := NewMonster(s.ecs.CreateEntity(), tmpl)
	s.combatants.Set(m.ID, m)
	return m
}

// Combatant looks a live combatant up by ID.
func (s *State) Combatant(id ecs.EntityID) (*Combatant, bool) {
	if !s.ecs.Alive(id) {
		return nil, false
	}
	return s.combatants.Get(id)
}

// CombatantCount returns how many combatants are still registered.
func (s *State) CombatantCount() int { return s.combatants.Len() }

// Players returns the player roster in creation order.
func (s *State) Players() []*Combatant { return s.players }

func (s *State) AddLocation(name, typ string) *Location {
	l := NewLocation(name, typ)
	s.locations = append(s.locations, l)
	return l
}

func (s *State) Locations() []*Location { return s.locations }

// EachBattle visits every battle of every location, in location order.
func (s *State) EachBattle(fn func(*Battle)) {
	for _, l := range s.locations {
		for _, b := range l.Battles {
			fn(b)
		}
	}
}

// BattleCount returns the number of battles across all locations.
func (s *State) BattleCount() int {
	n := 0
	for _, l := range s.locations {
		n += len(l.Battles)
	}
	return n
}

// Release queues a combatant for removal at the end of the tick. Players
// stay on the roster as dead records; only their registry entry goes.
func (s *State) Release(c *Combatant) {
	s.ecs.MarkForDestruction(c.ID)
}

// FlushReleased destroys queued combatants and returns how many were removed.
func (s *State) FlushReleased() int {
	return s.ecs.FlushDestroyQueue()
}
