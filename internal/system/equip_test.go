package system

import (
	"errors"
	"testing"

	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/world"
)

func TestEquipReplaceRetractsPreviousWeapon(t *testing.T) {
	p := world.NewPlayer(1, "P")
	base := p.Stats.ATK
	sword := data.NewSword()
	mace := data.NewWeapon("Mace", 4, "Iron")

	steps := []struct {
		item     *data.ItemInfo
		wantPrev *data.ItemInfo
		wantATK  int
	}{
		{sword, nil, base + 2},
		{mace, sword, base + 4},
		{sword, mace, base + 2},
		{sword, sword, base + 2},
	}
	for i, st := range steps {
		prev, err := Equip(p, st.item)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if prev != st.wantPrev {
			t.Fatalf("step %d: prev = %v, want %v", i, prev, st.wantPrev)
		}
		if p.Stats.ATK != st.wantATK {
			t.Fatalf("step %d: ATK = %d, want %d", i, p.Stats.ATK, st.wantATK)
		}
		if p.Stats.ATK != base+p.Equip.Bonuses().ATK {
			t.Fatalf("step %d: ATK %d drifted from base+bonuses %d", i, p.Stats.ATK, base+p.Equip.Bonuses().ATK)
		}
	}

	if got := Unequip(p, world.SlotHand); got != sword {
		t.Fatalf("Unequip returned %v", got)
	}
	if p.Stats.ATK != base {
		t.Fatalf("ATK after unequip = %d, want %d", p.Stats.ATK, base)
	}
	if got := Unequip(p, world.SlotHand); got != nil || p.Stats.ATK != base {
		t.Fatal("unequipping an empty slot changed something")
	}
}

func TestEquipArmorHasNoDelta(t *testing.T) {
	p := world.NewPlayer(1, "P")
	base := p.Stats.ATK
	if _, err := Equip(p, data.NewArmor("Leather Cap", "Helm")); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	if p.Stats.ATK != base {
		t.Fatalf("ATK = %d, want %d", p.Stats.ATK, base)
	}
	if p.Equip.Get(world.SlotHelm) == nil {
		t.Fatal("helm not equipped")
	}
}

func TestEquipRejects(t *testing.T) {
	p := world.NewPlayer(1, "P")
	if _, err := Equip(p, data.NewPotion(5, "")); !errors.Is(err, ErrNotEquippable) {
		t.Fatalf("potion: err = %v", err)
	}
	if _, err := Equip(p, data.NewArmor("Cape", "Back")); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("cape: err = %v", err)
	}
	if p.Stats.ATK != 2 {
		t.Fatalf("ATK changed to %d", p.Stats.ATK)
	}
}

func TestRetractAfterDrainKeepsATKNonNegative(t *testing.T) {
	p := world.NewPlayer(1, "P")
	if _, err := Equip(p, data.NewWeapon("Mace", 4, "Iron")); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	curse := &data.ItemInfo{Name: "Curse", Category: data.CategoryConsumable, Effect: "drain"}
	if err := UseItem(p, curse, fakeEffects{"drain": {ATK: -100}}); err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	if p.Stats.ATK != 0 {
		t.Fatalf("ATK after drain = %d, want 0", p.Stats.ATK)
	}

	Unequip(p, world.SlotHand)
	if p.Stats.ATK != 0 || !p.Stats.Valid() {
		t.Fatalf("ATK after unequip = %d valid=%v", p.Stats.ATK, p.Stats.Valid())
	}

	if _, err := Equip(p, data.NewSword()); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	if _, err := Equip(p, data.NewWeapon("Mace", 4, "Iron")); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	if p.Stats.ATK != 4 || !p.Stats.Valid() {
		t.Fatalf("ATK after swap = %d, want 4", p.Stats.ATK)
	}
}
