package builders

import (
	"github.com/KirkDiggler/rpg-items/internal/entities"
)

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// Weapon creates a proficient martial melee weapon dealing 1d8 slashing
func Weapon(id, name string) *entities.Item {
	return &entities.Item{
		ID:   id,
		Name: name,
		Type: entities.KindWeapon,
		System: &entities.WeaponData{
			PhysicalData: entities.PhysicalData{Quantity: 1},
			ActivatedData: entities.ActivatedData{
				Activation: entities.Activation{Type: "action", Cost: 1},
			},
			ActionData: entities.ActionData{
				ActionType: "mwak",
				Damage: entities.Damage{
					Parts: []entities.DamagePart{{Formula: "1d8 + @mod", Type: "slashing"}},
				},
			},
			WeaponType: "martialM",
			Proficient: Ptr(true),
		},
	}
}

// Ammunition creates a stack of ammunition
func Ammunition(id, name string, quantity int) *entities.Item {
	return Consumable(id, name, "ammo", quantity)
}

// Consumable creates a stack of consumables of the given type
func Consumable(id, name, consumableType string, quantity int) *entities.Item {
	return &entities.Item{
		ID:   id,
		Name: name,
		Type: entities.KindConsumable,
		System: &entities.ConsumableData{
			PhysicalData:   entities.PhysicalData{Quantity: quantity},
			ConsumableType: consumableType,
		},
	}
}

// Spell creates a prepared spell of the given level
func Spell(id, name string, level int) *entities.Item {
	return &entities.Item{
		ID:   id,
		Name: name,
		Type: entities.KindSpell,
		System: &entities.SpellData{
			ActivatedData: entities.ActivatedData{
				Activation: entities.Activation{Type: "action", Cost: 1},
			},
			Level:       level,
			School:      "evo",
			Preparation: entities.Preparation{Mode: "prepared", Prepared: true},
		},
	}
}

// Feat creates a feature with no activation
func Feat(id, name string) *entities.Item {
	return &entities.Item{
		ID:     id,
		Name:   name,
		Type:   entities.KindFeat,
		System: &entities.FeatData{},
	}
}

// Class creates a class item
func Class(id, identifier, hitDice string, levels, used int) *entities.Item {
	return &entities.Item{
		ID:   id,
		Name: identifier,
		Type: entities.KindClass,
		System: &entities.ClassData{
			Identifier:  identifier,
			Levels:      levels,
			HitDice:     hitDice,
			HitDiceUsed: used,
		},
	}
}

// Subclass creates a subclass linked to a class identifier
func Subclass(id, identifier, classIdentifier string) *entities.Item {
	return &entities.Item{
		ID:   id,
		Name: identifier,
		Type: entities.KindSubclass,
		System: &entities.SubclassData{
			Identifier:      identifier,
			ClassIdentifier: classIdentifier,
		},
	}
}
