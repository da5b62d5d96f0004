package config

// Defaults returns the standard fifth edition tables
func Defaults() *Rules {
	return &Rules{
		MaxLevel:                   20,
		DefaultCriticalThreshold:   20,
		DefaultSpellcastingAbility: "int",
		ToolAbility:                "int",
		RangedWeaponTypes:          []string{"simpleR", "martialR"},
		AttackAbilities: map[string]string{
			"mwak": "str",
			"rwak": "dex",
			"msak": SpellcastingAbility,
			"rsak": SpellcastingAbility,
		},
		SlotPreparationModes: []string{"prepared", "always", "pact"},
		AreaTargetTypes:      []string{"cone", "cube", "cylinder", "line", "radius", "sphere", "square", "wall"},
		AdvancementOrder: map[string]int{
			"HitPoints":               10,
			"AbilityScoreImprovement": 20,
			"Size":                    25,
			"Trait":                   30,
			"ItemGrant":               40,
			"Subclass":                45,
			"ItemChoice":              50,
			"ScaleValue":              60,
		},
		Abilities: map[string]string{
			"str": "Strength",
			"dex": "Dexterity",
			"con": "Constitution",
			"int": "Intelligence",
			"wis": "Wisdom",
			"cha": "Charisma",
		},
		DamageTypes: map[string]string{
			"acid":        "Acid",
			"bludgeoning": "Bludgeoning",
			"cold":        "Cold",
			"fire":        "Fire",
			"force":       "Force",
			"lightning":   "Lightning",
			"necrotic":    "Necrotic",
			"piercing":    "Piercing",
			"poison":      "Poison",
			"psychic":     "Psychic",
			"radiant":     "Radiant",
			"slashing":    "Slashing",
			"thunder":     "Thunder",
		},
		HealingTypes: map[string]string{
			"healing": "Healing",
			"temphp":  "Healing (Temporary)",
		},
		ConsumptionTypes: map[string]string{
			"ammo":      "Ammunition",
			"attribute": "Attribute",
			"hitDice":   "Hit Dice",
			"material":  "Material",
			"charges":   "Item Uses",
		},
		ActivationTypes: map[string]string{
			"action":    "Action",
			"bonus":     "Bonus Action",
			"reaction":  "Reaction",
			"minute":    "Minute",
			"hour":      "Hour",
			"day":       "Day",
			"special":   "Special",
			"legendary": "Legendary Action",
			"lair":      "Lair Action",
		},
		SpellSchools: map[string]string{
			"abj": "Abjuration",
			"con": "Conjuration",
			"div": "Divination",
			"enc": "Enchantment",
			"evo": "Evocation",
			"ill": "Illusion",
			"nec": "Necromancy",
			"trs": "Transmutation",
		},
		DistanceUnits: map[string]string{
			"ft":    "Feet",
			"mi":    "Miles",
			"m":     "Meters",
			"km":    "Kilometers",
			"self":  "Self",
			"touch": "Touch",
			"spec":  "Special",
			"any":   "Any",
		},
	}
}
