package system

import (
	"errors"
	"fmt"

	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/world"
)

var (
	ErrNotEquippable = errors.New("item cannot be equipped")
	ErrUnknownSlot   = errors.New("unknown equipment slot")
)

// Equip puts item into its slot and returns the previous occupant (nil if
// the slot was empty). The new weapon's strength is added to ATK and the
// replaced weapon's strength retracted; non-weapon items carry no delta.
// Both deltas are additive, so equip/replace/re-equip cycles never drift
// unless an effect drove ATK to 0 in between.
func Equip(c *world.Combatant, item *data.ItemInfo) (*data.ItemInfo, error) {
	if !item.IsEquipment() {
		return nil, fmt.Errorf("equip %s: %w", item, ErrNotEquippable)
	}
	slot := world.SlotFromName(item.Slot)
	if slot == world.SlotNone {
		return nil, fmt.Errorf("equip %s to %q: %w", item, item.Slot, ErrUnknownSlot)
	}
	prev := c.Equip.Set(slot, item)
	if item.IsWeapon() {
		c.Stats.ATK += item.Strength
	}
	retract(c, prev)
	return prev, nil
}

// Unequip clears a slot, retracting the occupant's contribution, and
// returns what was removed.
func Unequip(c *world.Combatant, slot world.EquipSlot) *data.ItemInfo {
	prev := c.Equip.Set(slot, nil)
	retract(c, prev)
	return prev
}

// retract removes a weapon's contribution. ATK stops at 0: an effect may
// already have drained the stat below the weapon's share.
func retract(c *world.Combatant, prev *data.ItemInfo) {
	if prev.IsWeapon() {
		c.Stats.ATK = max(c.Stats.ATK-prev.Strength, 0)
	}
}
