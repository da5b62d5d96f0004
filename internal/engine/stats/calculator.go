// Package stats derives the combat numbers and labels of an item from its
// stored data and its owner.
//
// Every function here is pure apart from warnings appended to the actor:
// formulas that reference missing data or fail to evaluate are reported on
// the actor instead of failing preparation.
package stats

import (
	"fmt"
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-items/internal/config"
	"github.com/KirkDiggler/rpg-items/internal/engine/advancement"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/formula"
)

// Config contains the dependencies of a Calculator
type Config struct {
	Rules     *config.Rules
	Evaluator formula.Evaluator
}

// Validate checks that all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.Evaluator == nil {
		vb.RequiredField("Evaluator")
	}
	return vb.Build()
}

// Calculator computes derived item data
type Calculator struct {
	rules     *config.Rules
	evaluator formula.Evaluator
}

// New creates a calculator
func New(cfg *Config) (*Calculator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Calculator{
		rules:     cfg.Rules,
		evaluator: cfg.Evaluator,
	}, nil
}

// Prepare computes the derived data of an item. actor is nil for an item
// nobody owns, which gets the reduced set: no ability or proficiency terms,
// no save DC unless it is flat, no critical threshold and no formula
// evaluation.
func (c *Calculator) Prepare(item *entities.Item, actor *entities.Actor) *entities.Derived {
	d := &entities.Derived{}

	d.Ability = c.AbilityFor(item, actor)
	d.Proficient = c.Proficient(item)
	d.Advancement = advancement.Build(&advancement.BuildInput{
		ItemKind:  item.Type.String(),
		Raw:       item.Advancement,
		MaxLevel:  c.rules.MaxLevel,
		SortOrder: c.rules.AdvancementOrder,
	})

	data := c.RollData(item, actor)

	if act := item.Activated(); act != nil {
		d.UsesMax = c.resolveFormula(act.Uses.Max, "uses", item, actor, data)
		d.DurationValue = c.resolveFormula(act.Duration.Value, "duration", item, actor, data)
		c.activationLabels(&d.Labels, act, d.DurationValue)
	}

	if item.HasAttack() {
		attack := c.AttackFormula(item, actor)
		d.AttackFormula = attack.Formula
		d.Labels.Modifier = attack.Modifier
		d.Labels.ToHit = attack.ToHit
		d.CriticalThreshold = c.CriticalThreshold(item, actor)
	}

	if item.HasSave() {
		d.SaveDC = c.SaveDC(item, actor)
		if d.SaveDC != nil {
			d.Labels.Save = fmt.Sprintf("DC %d %s", *d.SaveDC, c.rules.AbilityLabel(item.Action().Save.Ability))
		}
	}

	if item.HasDamage() {
		d.DerivedDamage = c.DamageLabels(item, actor)
		formulas := make([]string, len(d.DerivedDamage))
		types := make([]string, 0, len(d.DerivedDamage))
		for i, dmg := range d.DerivedDamage {
			formulas[i] = dmg.Formula
			if l := c.rules.DamageLabel(dmg.DamageType); l != "" {
				types = append(types, l)
			}
		}
		d.Labels.Damage = strings.Join(formulas, " + ")
		d.Labels.DamageType = strings.Join(types, ", ")
	}

	if spell, ok := item.System.(*entities.SpellData); ok {
		d.Labels.School = c.rules.SchoolLabel(spell.School)
		d.Labels.Level = levelLabel(spell.Level)
	}

	if actor != nil {
		d.ClassLink = classLink(item, actor)
	}

	return d
}

// AbilityFor returns the ability used by the item, "" when none applies
func (c *Calculator) AbilityFor(item *entities.Item, actor *entities.Actor) string {
	if act := item.Action(); act != nil && act.Ability != "" {
		if act.Ability == "none" {
			return ""
		}
		return act.Ability
	}

	switch s := item.System.(type) {
	case *entities.SpellData:
		return c.spellcasting(actor)
	case *entities.ToolData:
		return c.rules.ToolAbility
	case *entities.ConsumableData:
		if s.ConsumableType == "scroll" {
			return c.spellcasting(actor)
		}
	case *entities.WeaponData:
		if s.HasProperty("fin") {
			if mod(actor, "dex") >= mod(actor, "str") {
				return "dex"
			}
			return "str"
		}
		if c.rules.IsRangedWeapon(s.WeaponType) {
			return "dex"
		}
	}

	act := item.Action()
	if act == nil {
		return ""
	}
	ability := c.rules.AttackAbilities[act.ActionType]
	if ability == config.SpellcastingAbility {
		return c.spellcasting(actor)
	}
	return ability
}

func (c *Calculator) spellcasting(actor *entities.Actor) string {
	if actor != nil && actor.System.Attributes.Spellcasting != "" {
		return actor.System.Attributes.Spellcasting
	}
	return c.rules.DefaultSpellcastingAbility
}

func mod(actor *entities.Actor, ability string) int {
	if actor == nil {
		return 0
	}
	return actor.Mod(ability)
}

// Proficient reports whether the owner adds proficiency. Weapons and
// consumables need an explicit flag; everything else is proficient unless
// it says otherwise.
func (c *Calculator) Proficient(item *entities.Item) bool {
	return c.proficiencyMultiplier(item) > 0
}

func (c *Calculator) proficiencyMultiplier(item *entities.Item) float64 {
	switch s := item.System.(type) {
	case *entities.WeaponData:
		return boolMultiplier(s.Proficient, false)
	case *entities.ConsumableData:
		return boolMultiplier(s.Proficient, false)
	case *entities.EquipmentData:
		return boolMultiplier(s.Proficient, true)
	case *entities.ToolData:
		if s.Proficient == nil {
			return 1
		}
		return *s.Proficient
	default:
		return 1
	}
}

func boolMultiplier(flag *bool, def bool) float64 {
	v := def
	if flag != nil {
		v = *flag
	}
	if v {
		return 1
	}
	return 0
}

// RollData is the flattened data the item's formulas are evaluated
// against: the owner's data, the item's system data under "item.", the
// ability modifier as "mod" and the item's proficiency bonus as "prof".
func (c *Calculator) RollData(item *entities.Item, actor *entities.Actor) formula.Data {
	data := formula.Data{}
	if actor != nil {
		data = actor.RollData()
	}
	for k, v := range entities.Flatten(item.System) {
		data["item."+k] = v
	}
	if actor == nil {
		return data
	}

	if ability := c.AbilityFor(item, actor); ability != "" {
		data["mod"] = float64(actor.Mod(ability))
	}
	data["prof"] = math.Floor(float64(actor.System.Attributes.Prof) * c.proficiencyMultiplier(item))
	return data
}

// resolveFormula turns a uses or duration value into a number. Plain numbers
// parse directly; formulas are only evaluated for owned items.
func (c *Calculator) resolveFormula(
	value entities.Formula,
	field string,
	item *entities.Item,
	actor *entities.Actor,
	data formula.Data,
) *int {
	if value.IsEmpty() {
		return nil
	}
	if n, ok := value.Number(); ok {
		v := int(n)
		return &v
	}
	if actor == nil {
		return nil
	}

	res, err := c.evaluator.Evaluate(string(value), data)
	if err != nil {
		actor.AddWarning(entities.Warning{
			Kind:    entities.WarningFormulaError,
			Level:   "error",
			Message: fmt.Sprintf("failed to evaluate %s formula %q of %s: %v", field, value, item.Name, err),
			Link:    item.ID,
		})
		return nil
	}
	for _, ref := range res.Missing {
		actor.AddWarning(entities.Warning{
			Kind:    entities.WarningMissingReference,
			Level:   "warning",
			Message: fmt.Sprintf("the %s formula of %s references @%s which was not found", field, item.Name, ref),
			Link:    item.ID,
		})
	}

	v := int(res.Value)
	return &v
}

func classLink(item *entities.Item, actor *entities.Actor) string {
	var linked *entities.Item
	switch item.Type {
	case entities.KindClass:
		linked = actor.LinkedSubclass(item)
	case entities.KindSubclass:
		linked = actor.LinkedClass(item)
	}
	if linked == nil {
		return ""
	}
	return linked.ID
}
