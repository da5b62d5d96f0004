package rpgtoolkit

import (
	"context"
	stderrors "errors"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// HookPoint names an extension point in the item workflow
type HookPoint string

// Hook points
const (
	HookPreUse         HookPoint = "item.pre_use"
	HookPreConsume     HookPoint = "item.pre_consume"
	HookPostUse        HookPoint = "item.post_use"
	HookPreRollAttack  HookPoint = "item.pre_roll_attack"
	HookPostRollAttack HookPoint = "item.post_roll_attack"
	HookPreRollDamage  HookPoint = "item.pre_roll_damage"
	HookPostRollDamage HookPoint = "item.post_roll_damage"
)

// ErrVeto is returned by an observer to cancel the operation
var ErrVeto = stderrors.New("vetoed by hook")

// HookContext is handed to observers. Payload is the operation's input or
// result and may be modified by pre hooks.
type HookContext struct {
	Point   HookPoint
	Source  core.Entity
	Target  core.Entity
	Payload any
}

// Observer is called synchronously at a hook point
type Observer func(ctx context.Context, hc *HookContext) error

//go:generate mockgen -destination=mock/mock_hooks.go -package=rpgtoolkitmock github.com/KirkDiggler/rpg-items/internal/engine/rpgtoolkit Hooks

// Hooks fires hook points
type Hooks interface {
	// On registers an observer and returns its subscription id. Observers
	// with a higher priority run first.
	On(point HookPoint, priority int, fn Observer) string
	Off(id string) error
	Fire(ctx context.Context, hc *HookContext) error
}

type dispatchKey struct{}

// dispatch is the state of one Fire call, carried through the bus on the
// context so observers of the same call can see a veto
type dispatch struct {
	hc  *HookContext
	err error
}

// HookBus implements Hooks over an rpg-toolkit event bus
type HookBus struct {
	bus events.EventBus
}

// NewHookBus creates hooks on top of an event bus. A nil bus gets a private
// one.
func NewHookBus(bus events.EventBus) *HookBus {
	if bus == nil {
		bus = events.NewBus()
	}
	return &HookBus{bus: bus}
}

var _ Hooks = (*HookBus)(nil)

// On implements Hooks
func (h *HookBus) On(point HookPoint, priority int, fn Observer) string {
	return h.bus.SubscribeFunc(string(point), priority, func(ctx context.Context, _ events.Event) error {
		d, ok := ctx.Value(dispatchKey{}).(*dispatch)
		if !ok || d.err != nil {
			return nil
		}
		if err := fn(ctx, d.hc); err != nil {
			d.err = err
			return err
		}
		return nil
	})
}

// Off implements Hooks
func (h *HookBus) Off(id string) error {
	if err := h.bus.Unsubscribe(id); err != nil {
		return errors.Wrapf(err, "failed to remove hook %s", id)
	}
	return nil
}

// Fire runs the observers of a hook point. A veto returns an Aborted error;
// any other observer error is returned as is. Observers after the first
// failure are skipped.
func (h *HookBus) Fire(ctx context.Context, hc *HookContext) error {
	d := &dispatch{hc: hc}
	event := events.NewGameEvent(string(hc.Point), hc.Source, hc.Target)
	busErr := h.bus.Publish(context.WithValue(ctx, dispatchKey{}, d), event)

	switch {
	case d.err != nil && stderrors.Is(d.err, ErrVeto):
		return errors.Abortedf("%s vetoed", hc.Point).WithMeta("hook", string(hc.Point))
	case d.err != nil:
		return d.err
	case busErr != nil:
		return errors.Wrapf(busErr, "failed to fire %s", hc.Point)
	}
	return nil
}
