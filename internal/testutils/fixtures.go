package testutils

import (
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/testutils/builders"
)

// Fixture ids
const (
	WizardID = "wizard-test-001"
	ArcherID = "archer-test-001"

	MagicMissileID = "magic-missile"
	LongbowID      = "longbow"
	ArrowsID       = "arrows"

	// ArrowCount is the size of the archer's quiver
	ArrowCount = 20
)

// CreateTestWizard creates a level 1 wizard with Intelligence 16, one of two
// first level slots left and Magic Missile prepared
func CreateTestWizard() *entities.Actor {
	spell := builders.Spell(MagicMissileID, "Magic Missile", 1)
	spell.System.(*entities.SpellData).Damage.Parts = []entities.DamagePart{{Formula: "3d4 + 3", Type: "force"}}

	return builders.NewActorBuilder().
		WithID(WizardID).
		WithAbility("int", 16).
		WithSpellcasting("int").
		WithSpellSlots("spell1", 1, 2).
		WithItems(spell, builders.Class("wizard", "wizard", "d6", 1, 0)).
		Build()
}

// CreateTestArcher creates an archer with Dexterity 16, a longbow that fires
// arrows and a full quiver
func CreateTestArcher() *entities.Actor {
	bow := builders.Weapon(LongbowID, "Longbow")
	sys := bow.System.(*entities.WeaponData)
	sys.WeaponType = "martialR"
	sys.ActionType = "rwak"
	sys.Damage.Parts = []entities.DamagePart{{Formula: "1d8 + @mod", Type: "piercing"}}
	sys.Consume = entities.Consume{Type: "ammo", Target: ArrowsID, Amount: 1}

	return builders.NewActorBuilder().
		WithID(ArcherID).
		WithAbility("dex", 16).
		WithItems(bow, builders.Ammunition(ArrowsID, "Arrows", ArrowCount)).
		Build()
}
