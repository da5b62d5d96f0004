// Package usage resolves what one use of an item consumes.
//
// Resolution reads the item, its owner and the owner's other items and
// returns update buckets for the persistence layer to apply together. Every
// check runs before anything is returned so a failed use changes nothing.
package usage

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/rpg-items/internal/config"
	"github.com/KirkDiggler/rpg-items/internal/entities"
)

// SlotPact is the slot level of pact magic
const SlotPact = "pact"

// Config selects which consumption steps apply to one use
type Config struct {
	ConsumeQuantity bool `json:"consumeQuantity" yaml:"consumeQuantity"`
	ConsumeRecharge bool `json:"consumeRecharge" yaml:"consumeRecharge"`
	ConsumeResource bool `json:"consumeResource" yaml:"consumeResource"`
	ConsumeUsage    bool `json:"consumeUsage" yaml:"consumeUsage"`

	ConsumeSpellSlot bool `json:"consumeSpellSlot" yaml:"consumeSpellSlot"`
	// SlotLevel is "pact", "spellN" or a bare level number
	SlotLevel string `json:"slotLevel,omitempty" yaml:"slotLevel,omitempty"`

	CreateMeasuredTemplate bool `json:"createMeasuredTemplate" yaml:"createMeasuredTemplate"`

	// ResourceAmount replaces consume.amount when set
	ResourceAmount *int `json:"resourceAmount,omitempty" yaml:"resourceAmount,omitempty"`
}

// Overrides are caller choices applied on top of the item defaults. Nil
// fields keep the default.
type Overrides struct {
	ConsumeQuantity        *bool   `json:"consumeQuantity,omitempty" yaml:"consumeQuantity,omitempty"`
	ConsumeRecharge        *bool   `json:"consumeRecharge,omitempty" yaml:"consumeRecharge,omitempty"`
	ConsumeResource        *bool   `json:"consumeResource,omitempty" yaml:"consumeResource,omitempty"`
	ConsumeUsage           *bool   `json:"consumeUsage,omitempty" yaml:"consumeUsage,omitempty"`
	ConsumeSpellSlot       *bool   `json:"consumeSpellSlot,omitempty" yaml:"consumeSpellSlot,omitempty"`
	SlotLevel              *string `json:"slotLevel,omitempty" yaml:"slotLevel,omitempty"`
	CreateMeasuredTemplate *bool   `json:"createMeasuredTemplate,omitempty" yaml:"createMeasuredTemplate,omitempty"`
	ResourceAmount         *int    `json:"resourceAmount,omitempty" yaml:"resourceAmount,omitempty"`
}

// DefaultConfig builds the configuration an item uses when the caller
// changes nothing
func DefaultConfig(item *entities.Item, rules *config.Rules) *Config {
	cfg := &Config{}

	act := item.Activated()
	if act == nil {
		return cfg
	}

	cfg.ConsumeQuantity = act.Uses.AutoDestroy
	cfg.ConsumeRecharge = act.Recharge.Value > 0
	cfg.ConsumeResource = act.Consume.Type != "" && act.Consume.Target != "" &&
		!(item.HasAttack() && act.Consume.Type == "ammo")
	cfg.ConsumeUsage = act.Uses.Per != "" && UsesMax(item) > 0
	cfg.CreateMeasuredTemplate = act.Target.ShouldPrompt() && rules.IsAreaTarget(act.Target.Type)

	if spell, ok := item.System.(*entities.SpellData); ok && spell.Level > 0 &&
		rules.ConsumesSpellSlot(spell.Preparation.Mode) {
		cfg.ConsumeSpellSlot = true
		cfg.SlotLevel = fmt.Sprintf("spell%d", spell.Level)
		if spell.Preparation.Mode == SlotPact {
			cfg.SlotLevel = SlotPact
		}
	}

	return cfg
}

// Merge returns a copy of c with the overrides applied
func (c *Config) Merge(o *Overrides) *Config {
	out := *c
	if o == nil {
		return &out
	}

	setBool(&out.ConsumeQuantity, o.ConsumeQuantity)
	setBool(&out.ConsumeRecharge, o.ConsumeRecharge)
	setBool(&out.ConsumeResource, o.ConsumeResource)
	setBool(&out.ConsumeUsage, o.ConsumeUsage)
	setBool(&out.ConsumeSpellSlot, o.ConsumeSpellSlot)
	setBool(&out.CreateMeasuredTemplate, o.CreateMeasuredTemplate)
	if o.SlotLevel != nil {
		out.SlotLevel = *o.SlotLevel
	}
	if o.ResourceAmount != nil {
		amount := *o.ResourceAmount
		out.ResourceAmount = &amount
	}
	return &out
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// ConsumesAnything reports whether any step would spend something
func (c *Config) ConsumesAnything() bool {
	return c.ConsumeQuantity || c.ConsumeRecharge || c.ConsumeResource ||
		c.ConsumeUsage || c.ConsumeSpellSlot
}

// SlotKey normalizes the slot level to a spell pool key. A bare number
// becomes "spellN".
func (c *Config) SlotKey() string {
	if n, err := strconv.Atoi(c.SlotLevel); err == nil {
		return fmt.Sprintf("spell%d", n)
	}
	return c.SlotLevel
}

// UsesMax is the prepared maximum uses of an item, falling back to a plain
// number stored on the item when it has not been prepared
func UsesMax(item *entities.Item) int {
	if item.Derived != nil && item.Derived.UsesMax != nil {
		return *item.Derived.UsesMax
	}
	act := item.Activated()
	if act == nil {
		return 0
	}
	if n, ok := act.Uses.Max.Number(); ok {
		return int(n)
	}
	return 0
}
