package engine

import (
	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/formula"
)

// PrepareActorInput contains the actor to prepare along with its items
type PrepareActorInput struct {
	Actor *entities.Actor
}

// PrepareActorOutput returns the prepared actor
type PrepareActorOutput struct {
	Actor    *entities.Actor
	Warnings []entities.Warning
}

// PrepareItemInput contains an item and its owner. Actor is nil for an item
// nobody owns.
type PrepareItemInput struct {
	Item  *entities.Item
	Actor *entities.Actor
}

// PrepareItemOutput returns the derived data, also set on the item
type PrepareItemOutput struct {
	Derived *entities.Derived
}

// UsageConfigInput contains the item and any caller overrides
type UsageConfigInput struct {
	Item      *entities.Item
	Overrides *usage.Overrides
}

// UsageConfigOutput returns the merged configuration
type UsageConfigOutput struct {
	Config *usage.Config
}

// ResolveUsageInput contains what to resolve. A nil Config uses the item's
// defaults with Overrides applied.
type ResolveUsageInput struct {
	Item      *entities.Item
	Actor     *entities.Actor
	Config    *usage.Config
	Overrides *usage.Overrides
}

// ResolveUsageOutput returns either the consumption or why the use was
// refused
type ResolveUsageOutput struct {
	Config      *usage.Config
	Consumption *usage.Consumption
	Failure     *usage.Failure
}

// ResolveAmmunitionInput contains the weapon being fired
type ResolveAmmunitionInput struct {
	Item  *entities.Item
	Actor *entities.Actor
}

// AttackRollInput contains the attacking item
type AttackRollInput struct {
	Item  *entities.Item
	Actor *entities.Actor
}

// AttackRollOutput is the d20 roll for an attack
type AttackRollOutput struct {
	// Formula is "1d20" followed by the unreplaced bonus terms
	Formula           string
	Data              formula.Data
	CriticalThreshold int
}

// DamagePartsInput selects the damage to roll
type DamagePartsInput struct {
	Item      *entities.Item
	Actor     *entities.Actor
	Versatile bool

	// SpellLevel is the slot level a spell is cast at, 0 for its base level
	SpellLevel int
}

// DamagePartsOutput returns the scaled damage parts
type DamagePartsOutput struct {
	Parts   []entities.DamagePart
	Formula string
	Data    formula.Data
	Healing bool
}
