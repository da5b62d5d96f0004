// Package entities defines items, actors and the derived data the engine
// computes for them. Entities are plain data; rules live in internal/engine.
package entities

// Kind is the item type discriminator
type Kind string

// Item kinds
const (
	KindWeapon     Kind = "weapon"
	KindSpell      Kind = "spell"
	KindEquipment  Kind = "equipment"
	KindFeat       Kind = "feat"
	KindConsumable Kind = "consumable"
	KindTool       Kind = "tool"
	KindLoot       Kind = "loot"
	KindClass      Kind = "class"
	KindSubclass   Kind = "subclass"
	KindBackground Kind = "background"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the kind is one of the known item kinds
func (k Kind) IsValid() bool {
	switch k {
	case KindWeapon, KindSpell, KindEquipment, KindFeat, KindConsumable,
		KindTool, KindLoot, KindClass, KindSubclass, KindBackground:
		return true
	default:
		return false
	}
}

// AllKinds returns every item kind
func AllKinds() []Kind {
	return []Kind{
		KindWeapon,
		KindSpell,
		KindEquipment,
		KindFeat,
		KindConsumable,
		KindTool,
		KindLoot,
		KindClass,
		KindSubclass,
		KindBackground,
	}
}

func kindNames() []string {
	kinds := AllKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// NewSystemData returns an empty payload for the kind, or nil if the kind is
// unknown
func NewSystemData(k Kind) SystemData {
	switch k {
	case KindWeapon:
		return &WeaponData{}
	case KindSpell:
		return &SpellData{}
	case KindEquipment:
		return &EquipmentData{}
	case KindFeat:
		return &FeatData{}
	case KindConsumable:
		return &ConsumableData{}
	case KindTool:
		return &ToolData{}
	case KindLoot:
		return &LootData{}
	case KindClass:
		return &ClassData{}
	case KindSubclass:
		return &SubclassData{}
	case KindBackground:
		return &BackgroundData{}
	default:
		return nil
	}
}

// ActorType distinguishes player characters from monsters
type ActorType string

// Actor types
const (
	ActorCharacter ActorType = "character"
	ActorNPC       ActorType = "npc"
)
