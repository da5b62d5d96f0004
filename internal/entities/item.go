package entities

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-items/internal/engine/advancement"
	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// Item is a weapon, spell, feature or any other document an actor owns.
// System holds the kind specific payload chosen by Type.
type Item struct {
	ID          string            `json:"_id"`
	Name        string            `json:"name"`
	Type        Kind              `json:"type"`
	System      SystemData        `json:"system"`
	Advancement []json.RawMessage `json:"advancement,omitempty"`

	// Derived is rebuilt on every preparation pass and never persisted
	Derived *Derived `json:"-"`
}

// UnmarshalJSON decodes the payload into the variant named by "type"
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          string            `json:"_id"`
		Name        string            `json:"name"`
		Type        Kind              `json:"type"`
		System      json.RawMessage   `json:"system"`
		Advancement []json.RawMessage `json:"advancement"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode item")
	}

	system := NewSystemData(raw.Type)
	if system == nil {
		return errors.InvalidArgumentf("unknown item type %q", raw.Type)
	}
	if len(raw.System) > 0 && string(raw.System) != "null" {
		if err := json.Unmarshal(raw.System, system); err != nil {
			return errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to decode item system data").
				WithMeta("item_id", raw.ID)
		}
	}

	*i = Item{
		ID:          raw.ID,
		Name:        raw.Name,
		Type:        raw.Type,
		System:      system,
		Advancement: raw.Advancement,
	}
	return nil
}

// Validate checks the item and its payload
func (i *Item) Validate() error {
	vb := errors.NewValidationBuilder()
	if i.ID == "" {
		vb.RequiredField("_id")
	}
	if i.Name == "" {
		vb.RequiredField("name")
	}
	if i.Type == "" {
		vb.RequiredField("type")
	}
	errors.ValidateEnum("type", i.Type.String(), kindNames(), vb)

	switch s := i.System.(type) {
	case nil:
		vb.RequiredField("system")
	case systemValidator:
		s.validate(vb)
	}

	return vb.Build()
}

// Physical returns the inventory block, or nil for kinds without one
func (i *Item) Physical() *PhysicalData {
	if c, ok := i.System.(physicalCarrier); ok {
		return c.Physical()
	}
	return nil
}

// Activated returns the activation block, or nil for kinds that can't be used
func (i *Item) Activated() *ActivatedData {
	if c, ok := i.System.(activatedCarrier); ok {
		return c.Activated()
	}
	return nil
}

// Action returns the action block, or nil for kinds that never attack
func (i *Item) Action() *ActionData {
	if c, ok := i.System.(actionCarrier); ok {
		return c.Action()
	}
	return nil
}

// HasAttack reports whether using the item makes an attack roll
func (i *Item) HasAttack() bool {
	a := i.Action()
	return a != nil && a.HasAttack()
}

// HasDamage reports whether the item rolls damage or healing
func (i *Item) HasDamage() bool {
	a := i.Action()
	return a != nil && a.HasDamage()
}

// HasSave reports whether the item forces a saving throw
func (i *Item) HasSave() bool {
	a := i.Action()
	return a != nil && a.HasSave()
}

// Quantity returns the stack size, 0 for kinds without one
func (i *Item) Quantity() int {
	if p := i.Physical(); p != nil {
		return p.Quantity
	}
	return 0
}

// Identifier is the stable slug used to link classes and subclasses. It
// falls back to the slugged name.
func (i *Item) Identifier() string {
	var id string
	switch s := i.System.(type) {
	case *ClassData:
		id = s.Identifier
	case *SubclassData:
		id = s.Identifier
	case *BackgroundData:
		id = s.Identifier
	}
	if id != "" {
		return id
	}
	return Slug(i.Name)
}

// Slug lowercases a name and joins its words with dashes
func Slug(name string) string {
	return strings.Join(strings.Fields(cases.Lower(language.English).String(name)), "-")
}

// Derived holds values computed from the item and its owner. It is replaced
// wholesale by each preparation pass.
type Derived struct {
	Labels Labels

	// Ability is the ability key used for attacks and checks, "" when unknown
	Ability    string
	Proficient bool

	// AttackFormula is the simplified to-hit bonus without the d20
	AttackFormula     string
	SaveDC            *int
	CriticalThreshold *int
	UsesMax           *int
	DurationValue     *int
	DerivedDamage     []DamageLabel
	Advancement       *advancement.Index

	// ClassLink is the id of the linked class (for a subclass) or subclass
	// (for a class) among the owner's items
	ClassLink string
}

// Labels are display strings
type Labels struct {
	Modifier   string
	ToHit      string
	Save       string
	Damage     string
	DamageType string
	Activation string
	Range      string
	Target     string
	Duration   string
	Recharge   string
	School     string
	Level      string
}

// DamageLabel is a display only rendering of one damage part
type DamageLabel struct {
	Formula    string
	DamageType string
	Label      string
}
