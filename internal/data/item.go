package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ItemCategory distinguishes weapon/armor/consumable for game logic.
type ItemCategory int

const (
	CategoryConsumable ItemCategory = 0
	CategoryWeapon     ItemCategory = 1
	CategoryArmor      ItemCategory = 2
)

func (c ItemCategory) String() string {
	switch c {
	case CategoryWeapon:
		return "Weapon"
	case CategoryArmor:
		return "Equipment"
	default:
		return "Consumable"
	}
}

// WeaponSlot is the slot every weapon occupies.
const WeaponSlot = "Hand"

// Built-in consumable effects.
const (
	EffectHeal = "heal"
)

// ItemInfo is an immutable item descriptor. Fields that don't apply to a
// category are zero-valued.
type ItemInfo struct {
	Name     string
	Category ItemCategory

	// Equipment
	Slot     string // "Hand" for weapons; armor slot name otherwise
	Kind     string // weapon kind: Sword, Mace, …
	Material string // weapon material prefix: Iron, Steel, …
	Strength int    // ATK bonus while equipped (weapons only)

	// Consumable
	Effect    string
	EffectArg int
}

func (i *ItemInfo) IsWeapon() bool     { return i != nil && i.Category == CategoryWeapon }
func (i *ItemInfo) IsEquipment() bool  { return i != nil && i.Category != CategoryConsumable }
func (i *ItemInfo) IsConsumable() bool { return i != nil && i.Category == CategoryConsumable }

func (i *ItemInfo) String() string { return i.Name }

// NewWeapon builds a weapon descriptor. A non-empty material prefixes the
// name: NewWeapon("Mace", 4, "Iron") is an "Iron Mace".
func NewWeapon(kind string, strength int, material string) *ItemInfo {
	name := kind
	if material != "" {
		name = material + " " + kind
	}
	return &ItemInfo{
		Name:     name,
		Category: CategoryWeapon,
		Slot:     WeaponSlot,
		Kind:     kind,
		Material: material,
		Strength: strength,
	}
}

// NewSword is a plain 2-strength sword.
func NewSword() *ItemInfo { return NewWeapon("Sword", 2, "") }

// NewPotion builds a healing potion. A non-empty size prefixes the name.
func NewPotion(points int, size string) *ItemInfo {
	name := "Potion"
	if size != "" {
		name = size + " Potion"
	}
	return &ItemInfo{
		Name:      name,
		Category:  CategoryConsumable,
		Effect:    EffectHeal,
		EffectArg: points,
	}
}

// NewArmor builds a slot-occupying item with no stat contribution.
func NewArmor(name, slot string) *ItemInfo {
	return &ItemInfo{Name: name, Category: CategoryArmor, Slot: slot}
}

type weaponEntry struct {
	Kind     string `yaml:"kind"`
	Material string `yaml:"material"`
	Strength int    `yaml:"strength"`
}

type armorEntry struct {
	Name string `yaml:"name"`
	Slot string `yaml:"slot"`
}

type consumableEntry struct {
	Name      string `yaml:"name"`
	Effect    string `yaml:"effect"`
	EffectArg int    `yaml:"effect_arg"`
}

type itemListFile struct {
	Weapons     []weaponEntry     `yaml:"weapons"`
	Armors      []armorEntry      `yaml:"armors"`
	Consumables []consumableEntry `yaml:"consumables"`
}

// ItemTable holds all item descriptors indexed by display name.
type ItemTable struct {
	items map[string]*ItemInfo
}

// Get returns an item by name, or nil if not found.
func (t *ItemTable) Get(name string) *ItemInfo {
	return t.items[name]
}

// Count returns total loaded items.
func (t *ItemTable) Count() int {
	return len(t.items)
}

// Names returns the item names in sorted order.
func (t *ItemTable) Names() []string {
	names := make([]string, 0, len(t.items))
	for n := range t.items {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadItemTable loads the item catalog from a YAML file. An empty path loads
// the built-in catalog.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := readTable(path, "yaml/item_list.yaml")
	if err != nil {
		return nil, fmt.Errorf("read item_list: %w", err)
	}
	return parseItemTable(raw)
}

func parseItemTable(raw []byte) (*ItemTable, error) {
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse item_list: %w", err)
	}
	t := &ItemTable{items: make(map[string]*ItemInfo, len(f.Weapons)+len(f.Armors)+len(f.Consumables))}
	add := func(it *ItemInfo) error {
		if it.Name == "" {
			return fmt.Errorf("parse item_list: item with empty name")
		}
		if _, dup := t.items[it.Name]; dup {
			return fmt.Errorf("parse item_list: duplicate item %q", it.Name)
		}
		t.items[it.Name] = it
		return nil
	}
	for _, w := range f.Weapons {
		if w.Strength < 0 {
			return nil, fmt.Errorf("parse item_list: weapon %q has negative strength", w.Kind)
		}
		if err := add(NewWeapon(w.Kind, w.Strength, w.Material)); err != nil {
			return nil, err
		}
	}
	for _, a := range f.Armors {
		if a.Slot == "" || a.Slot == WeaponSlot {
			return nil, fmt.Errorf("parse item_list: armor %q has invalid slot %q", a.Name, a.Slot)
		}
		if err := add(NewArmor(a.Name, a.Slot)); err != nil {
			return nil, err
		}
	}
	for _, c := range f.Consumables {
		if c.Effect == "" {
			return nil, fmt.Errorf("parse item_list: consumable %q has no effect", c.Name)
		}
		if err := add(&ItemInfo{
			Name:      c.Name,
			Category:  CategoryConsumable,
			Effect:    c.Effect,
			EffectArg: c.EffectArg,
		}); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// readTable reads path from disk, or the embedded default when path is empty.
func readTable(path, builtin string) ([]byte, error) {
	if path == "" {
		return defaults.ReadFile(builtin)
	}
	return os.ReadFile(path)
}
