// Package config holds the rules tables consulted by the item engine.
//
// A Rules value is built once (Defaults, optionally overlaid by a YAML file and
// environment variables through Load) and then passed to every component that
// needs it. Components treat it as read-only; nothing in the engine writes to it.
package config

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// Rules is the immutable configuration shared by the engine components
type Rules struct {
	// MaxLevel is the highest character level advancement buckets are built for
	MaxLevel int `yaml:"max_level" env:"MAX_LEVEL"`

	// DefaultCriticalThreshold applies when neither item nor actor lowers it
	DefaultCriticalThreshold int `yaml:"default_critical_threshold" env:"CRITICAL_THRESHOLD"`

	// DefaultSpellcastingAbility is used for spells when the actor has none
	DefaultSpellcastingAbility string `yaml:"default_spellcasting_ability" env:"SPELLCASTING_ABILITY"`

	// ToolAbility is the ability tools fall back to when none is declared
	ToolAbility string `yaml:"tool_ability" env:"TOOL_ABILITY"`

	// RangedWeaponTypes default to dexterity
	RangedWeaponTypes []string `yaml:"ranged_weapon_types"`

	// AttackAbilities maps an attack action type to its ability. The
	// "spellcasting" value is resolved against the actor.
	AttackAbilities map[string]string `yaml:"attack_abilities"`

	// SlotPreparationModes lists spell preparation modes that spend a slot
	SlotPreparationModes []string `yaml:"slot_preparation_modes"`

	// AreaTargetTypes are target types that place a measured template
	AreaTargetTypes []string `yaml:"area_target_types"`

	// AdvancementOrder is the per-kind sort order used inside level buckets
	AdvancementOrder map[string]int `yaml:"advancement_order"`

	Abilities        map[string]string `yaml:"abilities"`
	DamageTypes      map[string]string `yaml:"damage_types"`
	HealingTypes     map[string]string `yaml:"healing_types"`
	ConsumptionTypes map[string]string `yaml:"consumption_types"`
	ActivationTypes  map[string]string `yaml:"activation_types"`
	SpellSchools     map[string]string `yaml:"spell_schools"`
	DistanceUnits    map[string]string `yaml:"distance_units"`
}

// SpellcastingAbility is the placeholder in AttackAbilities resolved to the
// actor's spellcasting ability.
const SpellcastingAbility = "spellcasting"

// Validate ensures the tables are usable
func (r *Rules) Validate() error {
	if r == nil {
		return errors.InvalidArgument("rules are required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("MaxLevel", r.MaxLevel, 1, 100, vb)
	errors.ValidateRange("DefaultCriticalThreshold", r.DefaultCriticalThreshold, 1, 20, vb)
	if len(r.Abilities) == 0 {
		vb.RequiredField("Abilities")
	}
	if r.DefaultSpellcastingAbility != "" {
		if _, ok := r.Abilities[r.DefaultSpellcastingAbility]; !ok {
			vb.Fieldf("DefaultSpellcastingAbility", "unknown ability %q", r.DefaultSpellcastingAbility)
		}
	}
	if r.ToolAbility != "" {
		if _, ok := r.Abilities[r.ToolAbility]; !ok {
			vb.Fieldf("ToolAbility", "unknown ability %q", r.ToolAbility)
		}
	}

	return vb.Build()
}

// IsRangedWeapon reports whether the weapon type defaults to dexterity
func (r *Rules) IsRangedWeapon(weaponType string) bool {
	return slices.Contains(r.RangedWeaponTypes, weaponType)
}

// ConsumesSpellSlot reports whether a preparation mode spends a spell slot
func (r *Rules) ConsumesSpellSlot(mode string) bool {
	return slices.Contains(r.SlotPreparationModes, mode)
}

// IsAreaTarget reports whether a target type places a template
func (r *Rules) IsAreaTarget(targetType string) bool {
	return slices.Contains(r.AreaTargetTypes, targetType)
}

// AdvancementSortOrder returns the configured order for an advancement kind.
// Unknown kinds sort after every known one.
func (r *Rules) AdvancementSortOrder(kind string) int {
	if order, ok := r.AdvancementOrder[kind]; ok {
		return order
	}
	return 9999
}

// AbilityLabel returns the display label for an ability key
func (r *Rules) AbilityLabel(key string) string {
	return label(r.Abilities, key)
}

// DamageLabel returns the display label for a damage or healing type
func (r *Rules) DamageLabel(key string) string {
	if l, ok := r.DamageTypes[key]; ok {
		return l
	}
	if l, ok := r.HealingTypes[key]; ok {
		return l
	}
	return title(key)
}

// ConsumptionLabel returns the display label for a consumption type
func (r *Rules) ConsumptionLabel(key string) string {
	return label(r.ConsumptionTypes, key)
}

// ActivationLabel returns the display label for an activation type
func (r *Rules) ActivationLabel(key string) string {
	return label(r.ActivationTypes, key)
}

// SchoolLabel returns the display label for a spell school
func (r *Rules) SchoolLabel(key string) string {
	return label(r.SpellSchools, key)
}

// UnitLabel returns the display label for a distance unit
func (r *Rules) UnitLabel(key string) string {
	return label(r.DistanceUnits, key)
}

func label(table map[string]string, key string) string {
	if l, ok := table[key]; ok {
		return l
	}
	return title(key)
}

// title turns an unmapped key like "hit_dice" into "Hit Dice". Casers keep
// state, so each call gets its own.
func title(key string) string {
	if key == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}
