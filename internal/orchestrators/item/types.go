package item

import (
	"context"

	"github.com/KirkDiggler/rpg-items/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
)

// Prompter asks the user how an item should be used
type Prompter interface {
	// PromptUsage returns the confirmed configuration, nil when the user
	// cancelled
	PromptUsage(ctx context.Context, item *entities.Item, cfg *usage.Config) (*usage.Config, error)
}

// UseInput contains the data needed to use an item
type UseInput struct {
	ActorID   string
	ItemID    string
	Overrides *usage.Overrides

	// FastForward skips the prompt and uses the configuration as built
	FastForward bool
}

// UseOutput contains the result of using an item
type UseOutput struct {
	UsageID     string
	Item        *entities.Item
	Config      *usage.Config
	Consumption *usage.Consumption

	// Cancelled is set when the prompt was dismissed; nothing was changed
	Cancelled bool

	// DeletedItem is set when the last of the stack was used up
	DeletedItem bool
}

// AttackInput contains the data needed to roll an attack
type AttackInput struct {
	ActorID      string
	ItemID       string
	Advantage    bool
	Disadvantage bool
}

// AttackOutput contains the attack roll
type AttackOutput struct {
	Roll *rpgtoolkit.RollResult

	// Consumption is the ammunition fired, nil when none was
	Consumption *usage.Consumption
}

// DamageInput contains the data needed to roll damage
type DamageInput struct {
	ActorID  string
	ItemID   string
	Critical bool

	// Versatile uses the two-handed damage of a versatile weapon
	Versatile bool

	// SpellLevel is the slot a spell is cast from, 0 for its own level
	SpellLevel int
}

// DamageOutput contains the damage roll
type DamageOutput struct {
	Roll    *rpgtoolkit.RollResult
	Parts   []entities.DamagePart
	Healing bool
}

// UsePayload is handed to the use hooks. Pre-use observers may change
// Config; pre-consume observers see the resolved Consumption.
type UsePayload struct {
	UsageID     string
	Actor       *entities.Actor
	Item        *entities.Item
	Config      *usage.Config
	Consumption *usage.Consumption
}

// RollPayload is handed to the attack and damage hooks. Pre-roll observers
// may change Formula or Options; post-roll observers see Result.
type RollPayload struct {
	Actor   *entities.Actor
	Item    *entities.Item
	Formula string
	Options *rpgtoolkit.RollOptions
	Result  *rpgtoolkit.RollResult
}
