package entities

import (
	"encoding/json"
	"strconv"

	"github.com/KirkDiggler/rpg-items/internal/formula"
)

// Actor owns items. The engine reads actors and never writes them; changes
// flow back through usage update buckets.
type Actor struct {
	ID     string      `json:"_id"`
	Name   string      `json:"name"`
	Type   ActorType   `json:"type"`
	System ActorSystem `json:"system"`
	Flags  ActorFlags  `json:"flags"`
	Items  []*Item     `json:"items,omitempty"`

	// Warnings collects formula problems found while preparing owned items
	Warnings []Warning `json:"-"`
}

// ActorSystem is the rules data of an actor
type ActorSystem struct {
	Abilities  map[string]*Ability      `json:"abilities"`
	Attributes Attributes               `json:"attributes"`
	Details    Details                  `json:"details"`
	Spells     map[string]*SpellSlots   `json:"spells,omitempty"`
	Bonuses    map[string]*Bonus        `json:"bonuses,omitempty"`
	Resources  map[string]*ResourcePool `json:"resources,omitempty"`
	Currency   map[string]int           `json:"currency,omitempty"`
}

// Ability score with its prepared modifier and save DC
type Ability struct {
	Value int `json:"value"`
	Mod   int `json:"mod"`
	DC    int `json:"dc"`
}

// HitPoints of an actor
type HitPoints struct {
	Value int `json:"value"`
	Max   int `json:"max"`
	Temp  int `json:"temp,omitempty"`
}

// Attributes are derived and tracked actor attributes
type Attributes struct {
	Prof         int       `json:"prof"`
	SpellDC      int       `json:"spelldc"`
	Spellcasting string    `json:"spellcasting,omitempty"`
	HP           HitPoints `json:"hp"`
}

// Details about the actor. Level is the total class level of a character;
// SpellLevel is the caster level of an npc.
type Details struct {
	Level      int     `json:"level"`
	SpellLevel int     `json:"spellLevel,omitempty"`
	CR         float64 `json:"cr,omitempty"`
}

// SpellSlots is one spell slot pool
type SpellSlots struct {
	Value int `json:"value"`
	Max   int `json:"max"`
	Level int `json:"level,omitempty"`
}

// Bonus formulas applied to every item of an action type
type Bonus struct {
	Attack string `json:"attack,omitempty"`
	Damage string `json:"damage,omitempty"`
}

// ResourcePool is a named counter such as ki points
type ResourcePool struct {
	Label string `json:"label,omitempty"`
	Value int    `json:"value"`
	Max   int    `json:"max"`
}

// ActorFlags are optional rule modifiers
type ActorFlags struct {
	WeaponCriticalThreshold *int `json:"weaponCriticalThreshold,omitempty"`
	SpellCriticalThreshold  *int `json:"spellCriticalThreshold,omitempty"`
}

// Prepare derives ability modifiers, proficiency, level and DCs from the
// stored scores and owned classes. Warnings from a previous pass are cleared.
func (a *Actor) Prepare() {
	a.Warnings = nil

	if a.Type == ActorCharacter {
		level := 0
		for _, cls := range a.Classes() {
			level += cls.System.(*ClassData).Levels
		}
		a.System.Details.Level = level
		a.System.Attributes.Prof = (max(level, 1) + 7) / 4
	} else if a.System.Details.CR > 0 || a.System.Attributes.Prof == 0 {
		cr := int(a.System.Details.CR)
		a.System.Attributes.Prof = (max(cr, 1) + 7) / 4
	}

	for _, ability := range a.System.Abilities {
		if ability == nil {
			continue
		}
		ability.Mod = floorDiv(ability.Value-10, 2)
		ability.DC = 8 + a.System.Attributes.Prof + ability.Mod
	}

	if sc, ok := a.System.Abilities[a.System.Attributes.Spellcasting]; ok && sc != nil {
		a.System.Attributes.SpellDC = sc.DC
	} else {
		a.System.Attributes.SpellDC = 8 + a.System.Attributes.Prof
	}
}

// Mod returns the prepared modifier for an ability, 0 if unknown
func (a *Actor) Mod(ability string) int {
	if s, ok := a.System.Abilities[ability]; ok && s != nil {
		return s.Mod
	}
	return 0
}

// ItemByID finds an owned item
func (a *Actor) ItemByID(id string) *Item {
	for _, item := range a.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// Classes returns owned class items in document order
func (a *Actor) Classes() []*Item {
	var classes []*Item
	for _, item := range a.Items {
		if _, ok := item.System.(*ClassData); ok {
			classes = append(classes, item)
		}
	}
	return classes
}

// LinkedClass returns the class a subclass belongs to
func (a *Actor) LinkedClass(subclass *Item) *Item {
	sub, ok := subclass.System.(*SubclassData)
	if !ok {
		return nil
	}
	for _, cls := range a.Classes() {
		if cls.Identifier() == sub.ClassIdentifier {
			return cls
		}
	}
	return nil
}

// LinkedSubclass returns the subclass chosen for a class
func (a *Actor) LinkedSubclass(class *Item) *Item {
	if _, ok := class.System.(*ClassData); !ok {
		return nil
	}
	identifier := class.Identifier()
	for _, item := range a.Items {
		if sub, ok := item.System.(*SubclassData); ok && sub.ClassIdentifier == identifier {
			return item
		}
	}
	return nil
}

// AddWarning records a preparation warning
func (a *Actor) AddWarning(w Warning) {
	a.Warnings = append(a.Warnings, w)
}

// Attribute reads a numeric value from the system data by dotted path, e.g.
// "resources.primary.value"
func (a *Actor) Attribute(path string) (float64, bool) {
	v, ok := a.systemData()[path]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// RollData is the flattened data formulas are evaluated against. Besides the
// system paths it exposes "prof" and "classes.<identifier>.levels".
func (a *Actor) RollData() formula.Data {
	data := a.systemData()
	data["prof"] = float64(a.System.Attributes.Prof)
	for _, cls := range a.Classes() {
		c := cls.System.(*ClassData)
		prefix := "classes." + cls.Identifier() + "."
		data[prefix+"levels"] = float64(c.Levels)
		data[prefix+"hitDice"] = c.HitDice
		if sub := a.LinkedSubclass(cls); sub != nil {
			data[prefix+"subclass"] = sub.Identifier()
		}
	}
	return data
}

func (a *Actor) systemData() formula.Data {
	return Flatten(a.System)
}

// Flatten encodes v as JSON and flattens it into dotted paths
func Flatten(v any) formula.Data {
	out := formula.Data{}
	b, err := json.Marshal(v)
	if err != nil {
		return out
	}
	var tree any
	if err := json.Unmarshal(b, &tree); err != nil {
		return out
	}
	flattenInto("", tree, out)
	return out
}

func flattenInto(prefix string, v any, out formula.Data) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			flattenInto(join(prefix, k), child, out)
		}
	case []any:
		for i, child := range t {
			flattenInto(join(prefix, strconv.Itoa(i)), child, out)
		}
	case nil:
	default:
		if prefix != "" {
			out[prefix] = t
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
