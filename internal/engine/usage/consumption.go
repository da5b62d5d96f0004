package usage

import (
	"fmt"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// Updates are document changes keyed by dotted path, e.g. "system.uses.value"
type Updates map[string]any

// ResourceUpdate changes one of the owner's other items
type ResourceUpdate struct {
	ID      string  `json:"_id"`
	Updates Updates `json:"updates"`
}

// Resource kinds recorded on a consumption
const (
	ResourceRecharge  = "recharge"
	ResourceAttribute = "attribute"
	ResourceAmmo      = "ammo"
	ResourceMaterial  = "material"
	ResourceHitDice   = "hitDice"
	ResourceCharges   = "charges"
	ResourceSpellSlot = "spellSlot"
	ResourceUses      = "uses"
	ResourceQuantity  = "quantity"
)

// Resource is one thing a use spends
type Resource struct {
	Kind      string `json:"kind"`
	Target    string `json:"target"`
	Amount    int    `json:"amount"`
	Remaining int    `json:"remaining"`
}

// Consumption is everything one use changes. The three buckets must be
// applied together.
type Consumption struct {
	ItemID  string `json:"itemId"`
	ActorID string `json:"actorId"`

	ActorUpdates    Updates          `json:"actorUpdates"`
	ItemUpdates     Updates          `json:"itemUpdates"`
	ResourceUpdates []ResourceUpdate `json:"resourceUpdates"`

	Resources []Resource `json:"resources"`

	// DeleteItem is set when the last of an auto-destroying stack is used
	DeleteItem bool `json:"deleteItem,omitempty"`
}

// IsEmpty reports whether nothing changes
func (c *Consumption) IsEmpty() bool {
	return len(c.ActorUpdates) == 0 && len(c.ItemUpdates) == 0 &&
		len(c.ResourceUpdates) == 0 && !c.DeleteItem
}

// Reason explains why a use was refused
type Reason string

// Failure reasons
const (
	ReasonRechargeNotCharged   Reason = "recharge-not-charged"
	ReasonNoResourceTarget     Reason = "no-resource-target"
	ReasonResourceNotFound     Reason = "resource-not-found"
	ReasonInsufficientResource Reason = "insufficient-resource"
	ReasonNoSpellSlots         Reason = "no-spell-slots"
	ReasonNoUsesRemaining      Reason = "no-uses-remaining"
)

// Failure is a refused use. Nothing was consumed.
type Failure struct {
	Reason       Reason `json:"reason"`
	ResourceKind string `json:"resourceKind,omitempty"`
	Message      string `json:"message"`
}

func fail(reason Reason, kind, format string, args ...any) *Failure {
	return &Failure{
		Reason:       reason,
		ResourceKind: kind,
		Message:      fmt.Sprintf(format, args...),
	}
}

func (f *Failure) Error() string {
	return f.Message
}

// ToError converts the failure to a FAILED_PRECONDITION error
func (f *Failure) ToError() error {
	return errors.FailedPrecondition(f.Message).
		WithMeta("reason", string(f.Reason)).
		WithMeta("resource_kind", f.ResourceKind)
}
