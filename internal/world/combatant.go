package world

import (
	"strconv"

	"github.com/l1jgo/skirmish/internal/core/ecs"
	"github.com/l1jgo/skirmish/internal/data"
)

// Kind tags the combatant variant. Behaviour that differs per variant is
// selected by this tag (see system.BattleSystem), not by embedding.
type Kind int

const (
	KindPlayer  Kind = 1
	KindMonster Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// Base stats of a freshly created player: HP 10, ATK 2, DEF 2, SPD 2.
const (
	playerBaseHP  = 10
	playerBaseATK = 2
	playerBaseDEF = 2
	playerBaseSPD = 2
)

// Combatant is a battle participant. Accessed only from the game loop
// goroutine; no locks.
type Combatant struct {
	ID    ecs.EntityID
	Kind  Kind
	Name  string // display only, not unique
	Stats Stats

	Dead       bool       // monotonic: never reset once set
	LastKilled *Combatant // last victim of this combatant; informational only

	Equip Equipment

	// Player: accumulated exp toward the next level.
	// Monster: fixed reward granted to the killer.
	Exp   int
	Level int // players start at 1; monsters stay 0

	Inventory []*data.ItemInfo // consumables usable as an action (players)
}

// NewPlayer builds a level 1 player with base stats. The ID is assigned by
// the caller (normally State.NewPlayer).
func NewPlayer(id ecs.EntityID, name string) *Combatant {
	return &Combatant{
		ID:        id,
		Kind:      KindPlayer,
		Name:      name,
		Stats:     NewStats(playerBaseHP, playerBaseATK, playerBaseDEF, playerBaseSPD),
		Level:     1,
		Inventory: make([]*data.ItemInfo, 0, 4),
	}
}

// NewMonster builds a monster from a template.
func NewMonster(id ecs.EntityID, tmpl *data.MonsterTemplate) *Combatant {
	return &Combatant{
		ID:    id,
		Kind:  KindMonster,
		Name:  tmpl.Name,
		Stats: NewStats(tmpl.HP, tmpl.ATK, tmpl.DEF, tmpl.SPD),
		Exp:   tmpl.Exp,
	}
}

func (c *Combatant) IsPlayer() bool  { return c.Kind == KindPlayer }
func (c *Combatant) IsMonster() bool { return c.Kind == KindMonster }

// Label is the one-line display name: players carry their level.
func (c *Combatant) Label() string {
	if c.IsPlayer() {
		return c.Name + " Lv." + strconv.Itoa(c.Level)
	}
	return c.Name
}

func (c *Combatant) String() string {
	return c.Label() + "\n" + c.Stats.String()
}

// AddItem appends a consumable to the inventory.
func (c *Combatant) AddItem(item *data.ItemInfo) {
	c.Inventory = append(c.Inventory, item)
}

// TakeItem removes and returns the inventory entry at index, or nil when the
// index is out of range.
func (c *Combatant) TakeItem(index int) *data.ItemInfo {
	if index < 0 || index >= len(c.Inventory) {
		return nil
	}
	item := c.Inventory[index]
	c.Inventory = append(c.Inventory[:index], c.Inventory[index+1:]...)
	return item
}
