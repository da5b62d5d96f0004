package entities

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// Formula is a stored value that may be a plain number or a roll formula.
// Numbers in documents decode into their decimal text.
type Formula string

// UnmarshalJSON accepts a string, a number or null
func (f *Formula) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Formula(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "formula must be a string or a number")
	}
	*f = Formula(n.String())
	return nil
}

// Number returns the value when it is a plain number
func (f Formula) Number() (float64, bool) {
	s := strings.TrimSpace(string(f))
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsEmpty reports whether no value is stored
func (f Formula) IsEmpty() bool {
	return strings.TrimSpace(string(f)) == ""
}

// PhysicalData is carried by items that exist in an inventory
type PhysicalData struct {
	Quantity   int     `json:"quantity"`
	Weight     float64 `json:"weight,omitempty"`
	Price      float64 `json:"price,omitempty"`
	Equipped   bool    `json:"equipped,omitempty"`
	Attunement int     `json:"attunement,omitempty"`
}

// Physical exposes the block through SystemData
func (p *PhysicalData) Physical() *PhysicalData {
	return p
}

func (p *PhysicalData) validate(vb *errors.ValidationBuilder) {
	errors.ValidateMin("system.quantity", p.Quantity, 0, vb)
	if p.Weight < 0 {
		vb.Field("system.weight", "must not be negative")
	}
	errors.ValidateRange("system.attunement", p.Attunement, 0, 2, vb)
}

// Activation describes the action economy cost of using an item
type Activation struct {
	Type      string `json:"type,omitempty"`
	Cost      int    `json:"cost,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// Duration of the effect
type Duration struct {
	Value Formula `json:"value,omitempty"`
	Units string  `json:"units,omitempty"`
}

// Target describes what the item affects
type Target struct {
	Value float64 `json:"value,omitempty"`
	Width float64 `json:"width,omitempty"`
	Units string  `json:"units,omitempty"`
	Type  string  `json:"type,omitempty"`

	// Prompt defaults to true when absent
	Prompt *bool `json:"prompt,omitempty"`
}

// ShouldPrompt reports whether a measured template should be placed
func (t Target) ShouldPrompt() bool {
	return t.Prompt == nil || *t.Prompt
}

// Range of the item
type Range struct {
	Value *float64 `json:"value,omitempty"`
	Long  *float64 `json:"long,omitempty"`
	Units string   `json:"units,omitempty"`
}

// Uses are the limited charges an item has
type Uses struct {
	Value       int     `json:"value"`
	Max         Formula `json:"max,omitempty"`
	Per         string  `json:"per,omitempty"`
	Recovery    string  `json:"recovery,omitempty"`
	Prompt      *bool   `json:"prompt,omitempty"`
	AutoDestroy bool    `json:"autoDestroy,omitempty"`
}

// Consume links the item to a resource spent on every use
type Consume struct {
	Type   string `json:"type,omitempty"`
	Target string `json:"target,omitempty"`
	Amount int    `json:"amount,omitempty"`
	Scale  bool   `json:"scale,omitempty"`
}

// Recharge is the d6 recharge mechanic
type Recharge struct {
	Value   int  `json:"value,omitempty"`
	Charged bool `json:"charged,omitempty"`
}

// ActivatedData is carried by items that can be used
type ActivatedData struct {
	Activation Activation `json:"activation"`
	Duration   Duration   `json:"duration"`
	Target     Target     `json:"target"`
	Range      Range      `json:"range"`
	Uses       Uses       `json:"uses"`
	Consume    Consume    `json:"consume"`
	Recharge   Recharge   `json:"recharge"`
}

// Activated exposes the block through SystemData
func (a *ActivatedData) Activated() *ActivatedData {
	return a
}

// ConsumptionTypes are the linked resource kinds
var ConsumptionTypes = []string{"ammo", "attribute", "hitDice", "material", "charges"}

func (a *ActivatedData) validate(vb *errors.ValidationBuilder) {
	errors.ValidateMin("system.activation.cost", a.Activation.Cost, 0, vb)
	errors.ValidateMin("system.uses.value", a.Uses.Value, 0, vb)
	errors.ValidateEnum("system.consume.type", a.Consume.Type, ConsumptionTypes, vb)
	errors.ValidateRange("system.recharge.value", a.Recharge.Value, 0, 6, vb)
	if a.Uses.Per != "" && a.Uses.Max.IsEmpty() {
		vb.Field("system.uses.max", "is required when uses recover")
	}
}

// Critical hit overrides
type Critical struct {
	Threshold *int   `json:"threshold,omitempty"`
	Damage    string `json:"damage,omitempty"`
}

// DamagePart is one [formula, type] pair
type DamagePart struct {
	Formula string
	Type    string
}

// UnmarshalJSON decodes the stored [formula, type] pair
func (d *DamagePart) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.Wrap(err, "damage part must be a [formula, type] pair")
	}
	*d = DamagePart{}
	if len(pair) > 0 {
		d.Formula = pair[0]
	}
	if len(pair) > 1 {
		d.Type = pair[1]
	}
	return nil
}

// MarshalJSON encodes the part as a [formula, type] pair
func (d DamagePart) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{d.Formula, d.Type})
}

// Damage rolled on a hit
type Damage struct {
	Parts     []DamagePart `json:"parts,omitempty"`
	Versatile string       `json:"versatile,omitempty"`
}

// Save describes the saving throw an item forces
type Save struct {
	Ability string `json:"ability,omitempty"`
	DC      *int   `json:"dc,omitempty"`

	// Scaling is "spell", "flat" or an ability key
	Scaling string `json:"scaling,omitempty"`
}

// ActionData is carried by items that attack, heal or force saves
type ActionData struct {
	// Ability is the explicit ability, "" to infer one and "none" for none
	Ability     string   `json:"ability,omitempty"`
	ActionType  string   `json:"actionType,omitempty"`
	AttackBonus string   `json:"attackBonus,omitempty"`
	Critical    Critical `json:"critical"`
	Damage      Damage   `json:"damage"`
	Formula     string   `json:"formula,omitempty"`
	Save        Save     `json:"save"`
}

// Action exposes the block through SystemData
func (a *ActionData) Action() *ActionData {
	return a
}

// ActionTypes are the recognised action types
var ActionTypes = []string{"mwak", "rwak", "msak", "rsak", "save", "heal", "abil", "util", "other"}

// HasAttack reports whether the action type makes an attack roll
func (a *ActionData) HasAttack() bool {
	switch a.ActionType {
	case "mwak", "rwak", "msak", "rsak":
		return true
	default:
		return false
	}
}

// HasDamage reports whether there is at least one damage part
func (a *ActionData) HasDamage() bool {
	return len(a.Damage.Parts) > 0
}

// HasSave reports whether the item forces a saving throw
func (a *ActionData) HasSave() bool {
	return a.Save.Ability != ""
}

// IsHealing reports whether the damage parts restore hit points
func (a *ActionData) IsHealing() bool {
	return a.ActionType == "heal"
}

func (a *ActionData) validate(vb *errors.ValidationBuilder) {
	errors.ValidateEnum("system.actionType", a.ActionType, ActionTypes, vb)
	if a.Critical.Threshold != nil {
		errors.ValidateRange("system.critical.threshold", *a.Critical.Threshold, 1, 20, vb)
	}
	for _, part := range a.Damage.Parts {
		if strings.TrimSpace(part.Formula) == "" {
			vb.Field("system.damage.parts", "formula is required")
			break
		}
	}
	if a.Save.Scaling == "flat" && a.Save.DC == nil {
		vb.Field("system.save.dc", "is required for flat scaling")
	}
}
