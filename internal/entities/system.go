package entities

import (
	"regexp"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// SystemData is the kind specific payload of an item. Blocks shared between
// kinds are exposed through the accessors on Item.
type SystemData interface {
	Validate() error
}

type physicalCarrier interface{ Physical() *PhysicalData }

type activatedCarrier interface{ Activated() *ActivatedData }

type actionCarrier interface{ Action() *ActionData }

type systemValidator interface {
	validate(vb *errors.ValidationBuilder)
}

func validateSystem(s systemValidator) error {
	vb := errors.NewValidationBuilder()
	s.validate(vb)
	return vb.Build()
}

// WeaponTypes are the recognised weapon categories
var WeaponTypes = []string{"simpleM", "simpleR", "martialM", "martialR", "natural", "improv", "siege"}

// WeaponData is the payload of a weapon
type WeaponData struct {
	PhysicalData
	ActivatedData
	ActionData
	WeaponType string          `json:"weaponType,omitempty"`
	Properties map[string]bool `json:"properties,omitempty"`
	Proficient *bool           `json:"proficient,omitempty"`
}

// HasProperty reports whether a weapon property such as "fin" is set
func (w *WeaponData) HasProperty(key string) bool {
	return w.Properties[key]
}

// Validate checks the weapon payload
func (w *WeaponData) Validate() error { return validateSystem(w) }

func (w *WeaponData) validate(vb *errors.ValidationBuilder) {
	w.PhysicalData.validate(vb)
	w.ActivatedData.validate(vb)
	w.ActionData.validate(vb)
	errors.ValidateEnum("system.weaponType", w.WeaponType, WeaponTypes, vb)
}

// Preparation of a spell
type Preparation struct {
	Mode     string `json:"mode,omitempty"`
	Prepared bool   `json:"prepared,omitempty"`
}

// SpellScaling describes how a spell grows with level
type SpellScaling struct {
	// Mode is "none", "cantrip" or "level"
	Mode    string `json:"mode,omitempty"`
	Formula string `json:"formula,omitempty"`
}

// PreparationModes are the recognised spell preparation modes
var PreparationModes = []string{"prepared", "always", "pact", "atwill", "innate"}

// SpellData is the payload of a spell
type SpellData struct {
	ActivatedData
	ActionData
	Level       int          `json:"level"`
	School      string       `json:"school,omitempty"`
	Preparation Preparation  `json:"preparation"`
	Scaling     SpellScaling `json:"scaling"`
}

// Validate checks the spell payload
func (s *SpellData) Validate() error { return validateSystem(s) }

func (s *SpellData) validate(vb *errors.ValidationBuilder) {
	s.ActivatedData.validate(vb)
	s.ActionData.validate(vb)
	errors.ValidateRange("system.level", s.Level, 0, 9, vb)
	errors.ValidateEnum("system.preparation.mode", s.Preparation.Mode, PreparationModes, vb)
	errors.ValidateEnum("system.scaling.mode", s.Scaling.Mode, []string{"none", "cantrip", "level"}, vb)
}

// Armor worn or wielded
type Armor struct {
	Type  string `json:"type,omitempty"`
	Value int    `json:"value,omitempty"`
	Dex   *int   `json:"dex,omitempty"`
}

// EquipmentData is the payload of armor, shields and wondrous items
type EquipmentData struct {
	PhysicalData
	ActivatedData
	ActionData
	Armor      Armor `json:"armor"`
	Proficient *bool `json:"proficient,omitempty"`
}

// Validate checks the equipment payload
func (e *EquipmentData) Validate() error { return validateSystem(e) }

func (e *EquipmentData) validate(vb *errors.ValidationBuilder) {
	e.PhysicalData.validate(vb)
	e.ActivatedData.validate(vb)
	e.ActionData.validate(vb)
	errors.ValidateMin("system.armor.value", e.Armor.Value, 0, vb)
}

// FeatType classifies a feature
type FeatType struct {
	Value   string `json:"value,omitempty"`
	Subtype string `json:"subtype,omitempty"`
}

// FeatData is the payload of a class feature, racial trait or feat
type FeatData struct {
	ActivatedData
	ActionData
	Type         FeatType `json:"type"`
	Requirements string   `json:"requirements,omitempty"`
}

// Validate checks the feat payload
func (f *FeatData) Validate() error { return validateSystem(f) }

func (f *FeatData) validate(vb *errors.ValidationBuilder) {
	f.ActivatedData.validate(vb)
	f.ActionData.validate(vb)
}

// ConsumableTypes are the recognised consumable categories
var ConsumableTypes = []string{"ammo", "potion", "poison", "food", "scroll", "wand", "rod", "trinket"}

// ConsumableData is the payload of potions, scrolls, ammunition and the like
type ConsumableData struct {
	PhysicalData
	ActivatedData
	ActionData
	ConsumableType string `json:"consumableType,omitempty"`
	Proficient     *bool  `json:"proficient,omitempty"`
}

// Validate checks the consumable payload
func (c *ConsumableData) Validate() error { return validateSystem(c) }

func (c *ConsumableData) validate(vb *errors.ValidationBuilder) {
	c.PhysicalData.validate(vb)
	c.ActivatedData.validate(vb)
	c.ActionData.validate(vb)
	errors.ValidateEnum("system.consumableType", c.ConsumableType, ConsumableTypes, vb)
}

// ToolData is the payload of a tool or instrument
type ToolData struct {
	PhysicalData
	ActivatedData
	ActionData
	ToolType string `json:"toolType,omitempty"`

	// Proficient is a proficiency multiplier: 0, 0.5, 1 or 2
	Proficient *float64 `json:"proficient,omitempty"`
	Bonus      string   `json:"bonus,omitempty"`
}

// Validate checks the tool payload
func (t *ToolData) Validate() error { return validateSystem(t) }

func (t *ToolData) validate(vb *errors.ValidationBuilder) {
	t.PhysicalData.validate(vb)
	t.ActivatedData.validate(vb)
	t.ActionData.validate(vb)
	if t.Proficient != nil && (*t.Proficient < 0 || *t.Proficient > 2) {
		vb.Field("system.proficient", "must be between 0 and 2")
	}
}

// LootData is the payload of treasure and trade goods
type LootData struct {
	PhysicalData
}

// Validate checks the loot payload
func (l *LootData) Validate() error { return validateSystem(l) }

func (l *LootData) validate(vb *errors.ValidationBuilder) {
	l.PhysicalData.validate(vb)
}

// Spellcasting progression of a class or subclass
type Spellcasting struct {
	Progression string `json:"progression,omitempty"`
	Ability     string `json:"ability,omitempty"`
}

var hitDieRe = regexp.MustCompile(`^d\d+$`)

// ClassData is the payload of a class
type ClassData struct {
	Identifier   string       `json:"identifier,omitempty"`
	Levels       int          `json:"levels"`
	HitDice      string       `json:"hitDice"`
	HitDiceUsed  int          `json:"hitDiceUsed"`
	Spellcasting Spellcasting `json:"spellcasting"`
}

// Validate checks the class payload
func (c *ClassData) Validate() error { return validateSystem(c) }

func (c *ClassData) validate(vb *errors.ValidationBuilder) {
	errors.ValidateMin("system.levels", c.Levels, 1, vb)
	if !hitDieRe.MatchString(c.HitDice) {
		vb.Fieldf("system.hitDice", "must be a die denomination like d8, got %q", c.HitDice)
	}
	errors.ValidateRange("system.hitDiceUsed", c.HitDiceUsed, 0, max(c.Levels, 0), vb)
}

// SubclassData is the payload of a subclass
type SubclassData struct {
	Identifier      string       `json:"identifier,omitempty"`
	ClassIdentifier string       `json:"classIdentifier"`
	Spellcasting    Spellcasting `json:"spellcasting"`
}

// Validate checks the subclass payload
func (s *SubclassData) Validate() error { return validateSystem(s) }

func (s *SubclassData) validate(vb *errors.ValidationBuilder) {
	if s.ClassIdentifier == "" {
		vb.RequiredField("system.classIdentifier")
	}
}

// BackgroundData is the payload of a background
type BackgroundData struct {
	Identifier string `json:"identifier,omitempty"`
}

// Validate checks the background payload. Backgrounds carry no rules data.
func (b *BackgroundData) Validate() error { return nil }
