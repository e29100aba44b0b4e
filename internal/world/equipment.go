package world

import "github.com/l1jgo/skirmish/internal/data"

// EquipSlot identifies an equipment slot on a combatant.
type EquipSlot int

const (
	SlotNone  EquipSlot = 0
	SlotHand  EquipSlot = 1
	SlotHelm  EquipSlot = 2
	SlotArmor EquipSlot = 3
	SlotBoots EquipSlot = 4
	SlotRing  EquipSlot = 5
	SlotMax   EquipSlot = 6
)

var slotNames = [SlotMax]string{"", "Hand", "Helm", "Armor", "Boots", "Ring"}

func (s EquipSlot) String() string {
	if s <= SlotNone || s >= SlotMax {
		return "None"
	}
	return slotNames[s]
}

// SlotFromName maps an item's slot string (from YAML) to an EquipSlot.
func SlotFromName(name string) EquipSlot {
	for i := SlotHand; i < SlotMax; i++ {
		if slotNames[i] == name {
			return i
		}
	}
	return SlotNone
}

// Equipment tracks what a combatant currently has equipped, one item per
// slot (nil = empty).
type Equipment struct {
	Slots [SlotMax]*data.ItemInfo
}

// Get returns the item in a slot, or nil.
func (e *Equipment) Get(slot EquipSlot) *data.ItemInfo {
	if slot <= SlotNone || slot >= SlotMax {
		return nil
	}
	return e.Slots[slot]
}

// Set places an item in a slot (or nil to clear) and returns the previous
// occupant.
func (e *Equipment) Set(slot EquipSlot, item *data.ItemInfo) *data.ItemInfo {
	if slot <= SlotNone || slot >= SlotMax {
		return nil
	}
	prev := e.Slots[slot]
	e.Slots[slot] = item
	return prev
}

// Weapon returns the currently equipped weapon, or nil.
func (e *Equipment) Weapon() *data.ItemInfo {
	return e.Slots[SlotHand]
}

// EquipStats holds the cumulative stat bonuses from all equipped items.
type EquipStats struct {
	ATK int
}

// Bonuses sums the contributions of every equipped item. Only weapons
// contribute.
func (e *Equipment) Bonuses() EquipStats {
	var b EquipStats
	for _, it := range e.Slots {
		if it.IsWeapon() {
			b.ATK += it.Strength
		}
	}
	return b
}
