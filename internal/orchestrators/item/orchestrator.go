// Package item implements the item orchestrator: using items and rolling
// their attacks and damage against a stored actor
package item

//go:generate mockgen -destination=mock/mock_service.go -package=itemmock github.com/KirkDiggler/rpg-items/internal/orchestrators/item Service,Prompter

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-items/internal/engine"
	"github.com/KirkDiggler/rpg-items/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/notify"
	"github.com/KirkDiggler/rpg-items/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-items/internal/repositories/documents"
)

// Service defines the interface for item operations
type Service interface {
	// Use spends what the item consumes and commits it
	Use(ctx context.Context, input *UseInput) (*UseOutput, error)

	// Rolls
	RollAttack(ctx context.Context, input *AttackInput) (*AttackOutput, error)
	RollDamage(ctx context.Context, input *DamageInput) (*DamageOutput, error)
}

// Config holds the dependencies for the item orchestrator
type Config struct {
	Engine      engine.Engine
	Repository  documents.Repository
	Roller      rpgtoolkit.RollEngine
	Hooks       rpgtoolkit.Hooks
	Notifier    notify.Notifier
	IDGenerator idgen.Generator

	// Prompter is optional; without one every use is fast-forwarded
	Prompter Prompter
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Hooks == nil {
		vb.RequiredField("Hooks")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	engine   engine.Engine
	repo     documents.Repository
	roller   rpgtoolkit.RollEngine
	hooks    rpgtoolkit.Hooks
	notifier notify.Notifier
	prompter Prompter
	idGen    idgen.Generator
}

// NewOrchestrator creates a new item orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		engine:   cfg.Engine,
		repo:     cfg.Repository,
		roller:   cfg.Roller,
		hooks:    cfg.Hooks,
		notifier: cfg.Notifier,
		prompter: cfg.Prompter,
		idGen:    cfg.IDGenerator,
	}, nil
}

// Use runs one use of an item: configure, confirm, resolve, commit. A
// failed resolution is reported to the user and returned as a
// FailedPrecondition carrying the reason; nothing is written.
func (o *orchestrator) Use(ctx context.Context, input *UseInput) (*UseOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	usageID := o.idGen.Generate()
	logger := slog.With(
		"usage_id", usageID,
		"actor_id", input.ActorID,
		"item_id", input.ItemID)

	actor, item, err := o.load(ctx, input.ActorID, input.ItemID)
	if err != nil {
		return nil, err
	}

	cfgOut, err := o.engine.UsageConfig(ctx, &engine.UsageConfigInput{
		Item:      item,
		Overrides: input.Overrides,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build usage config")
	}
	cfg := cfgOut.Config

	if o.prompter != nil && !input.FastForward && cfg.ConsumesAnything() {
		cfg, err = o.prompter.PromptUsage(ctx, item, cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to prompt for usage")
		}
		if cfg == nil {
			logger.InfoContext(ctx, "Item use cancelled")
			return &UseOutput{UsageID: usageID, Item: item, Cancelled: true}, nil
		}
	}

	payload := &UsePayload{UsageID: usageID, Actor: actor, Item: item, Config: cfg}
	if err := o.fire(ctx, rpgtoolkit.HookPreUse, actor, item, payload); err != nil {
		logger.InfoContext(ctx, "Item use stopped by hook", "hook", rpgtoolkit.HookPreUse, "error", err)
		return nil, err
	}

	resolved, err := o.engine.ResolveUsage(ctx, &engine.ResolveUsageInput{
		Item:   item,
		Actor:  actor,
		Config: payload.Config,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve usage")
	}
	if resolved.Failure != nil {
		logger.InfoContext(ctx, "Item use failed", "reason", resolved.Failure.Reason)
		o.warn(ctx, item, resolved.Failure)
		return nil, resolved.Failure.ToError()
	}

	payload.Config = resolved.Config
	payload.Consumption = resolved.Consumption
	if err := o.fire(ctx, rpgtoolkit.HookPreConsume, actor, item, payload); err != nil {
		logger.InfoContext(ctx, "Item use stopped by hook", "hook", rpgtoolkit.HookPreConsume, "error", err)
		return nil, err
	}

	deleted, err := o.commit(ctx, payload.Consumption)
	if err != nil {
		return nil, err
	}

	if err := o.fire(ctx, rpgtoolkit.HookPostUse, actor, item, payload); err != nil {
		// Already committed; post hooks only observe
		logger.WarnContext(ctx, "Post-use hook failed", "error", err)
	}

	logger.InfoContext(ctx, "Item used",
		"resources", len(payload.Consumption.Resources),
		"deleted", deleted)

	return &UseOutput{
		UsageID:     usageID,
		Item:        item,
		Config:      payload.Config,
		Consumption: payload.Consumption,
		DeletedItem: deleted,
	}, nil
}

// RollAttack fires the ammunition the item uses, then rolls d20 plus the
// item's to-hit bonus. The ammunition is spent even when the roll misses.
func (o *orchestrator) RollAttack(ctx context.Context, input *AttackInput) (*AttackOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	actor, item, err := o.load(ctx, input.ActorID, input.ItemID)
	if err != nil {
		return nil, err
	}

	attack, err := o.engine.AttackRoll(ctx, &engine.AttackRollInput{Item: item, Actor: actor})
	if err != nil {
		return nil, err
	}

	payload := &RollPayload{
		Actor:   actor,
		Item:    item,
		Formula: attack.Formula,
		Options: &rpgtoolkit.RollOptions{
			Advantage:         input.Advantage,
			Disadvantage:      input.Disadvantage,
			CriticalThreshold: attack.CriticalThreshold,
		},
	}
	if err := o.fire(ctx, rpgtoolkit.HookPreRollAttack, actor, item, payload); err != nil {
		return nil, err
	}

	ammo, err := o.engine.ResolveAmmunition(ctx, &engine.ResolveAmmunitionInput{Item: item, Actor: actor})
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve ammunition")
	}
	if ammo.Failure != nil {
		o.warn(ctx, item, ammo.Failure)
		return nil, ammo.Failure.ToError()
	}

	output := &AttackOutput{}
	if ammo.Consumption != nil && !ammo.Consumption.IsEmpty() {
		if _, err := o.commit(ctx, ammo.Consumption); err != nil {
			return nil, err
		}
		output.Consumption = ammo.Consumption
	}

	output.Roll, err = o.roller.Roll(ctx, payload.Formula, attack.Data, payload.Options)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll attack of %s", item.Name)
	}

	payload.Result = output.Roll
	if err := o.fire(ctx, rpgtoolkit.HookPostRollAttack, actor, item, payload); err != nil {
		slog.WarnContext(ctx, "Post-attack hook failed", "item_id", item.ID, "error", err)
	}

	slog.InfoContext(ctx, "Attack rolled",
		"actor_id", actor.ID,
		"item_id", item.ID,
		"formula", output.Roll.Formula,
		"total", output.Roll.Total,
		"critical", output.Roll.IsCritical)

	return output, nil
}

// RollDamage rolls the item's damage. A critical hit doubles the dice.
func (o *orchestrator) RollDamage(ctx context.Context, input *DamageInput) (*DamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	actor, item, err := o.load(ctx, input.ActorID, input.ItemID)
	if err != nil {
		return nil, err
	}

	damage, err := o.engine.DamageParts(ctx, &engine.DamagePartsInput{
		Item:       item,
		Actor:      actor,
		Versatile:  input.Versatile,
		SpellLevel: input.SpellLevel,
	})
	if err != nil {
		return nil, err
	}

	payload := &RollPayload{
		Actor:   actor,
		Item:    item,
		Formula: damage.Formula,
		Options: &rpgtoolkit.RollOptions{Critical: input.Critical && !damage.Healing},
	}
	if err := o.fire(ctx, rpgtoolkit.HookPreRollDamage, actor, item, payload); err != nil {
		return nil, err
	}

	roll, err := o.roller.Roll(ctx, payload.Formula, damage.Data, payload.Options)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll damage of %s", item.Name)
	}

	payload.Result = roll
	if err := o.fire(ctx, rpgtoolkit.HookPostRollDamage, actor, item, payload); err != nil {
		slog.WarnContext(ctx, "Post-damage hook failed", "item_id", item.ID, "error", err)
	}

	return &DamageOutput{
		Roll:    roll,
		Parts:   damage.Parts,
		Healing: damage.Healing,
	}, nil
}

// load reads the actor, prepares it and finds the item
func (o *orchestrator) load(ctx context.Context, actorID, itemID string) (*entities.Actor, *entities.Item, error) {
	vb := errors.NewValidationBuilder()
	if actorID == "" {
		vb.RequiredField("ActorID")
	}
	if itemID == "" {
		vb.RequiredField("ItemID")
	}
	if err := vb.Build(); err != nil {
		return nil, nil, err
	}

	got, err := o.repo.GetActor(ctx, documents.GetActorInput{ID: actorID})
	if err != nil {
		return nil, nil, err
	}

	prepared, err := o.engine.PrepareActor(ctx, &engine.PrepareActorInput{Actor: got.Actor})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to prepare actor")
	}
	actor := prepared.Actor

	item := actor.ItemByID(itemID)
	if item == nil {
		return nil, nil, errors.NotFoundf("item %s not found on actor %s", itemID, actorID)
	}
	return actor, item, nil
}

func (o *orchestrator) commit(ctx context.Context, c *usage.Consumption) (bool, error) {
	if c == nil || c.IsEmpty() {
		return false, nil
	}

	out, err := o.repo.ApplyUsage(ctx, documents.ApplyUsageInput{Consumption: c})
	if err != nil {
		return false, errors.Wrap(err, "failed to apply usage")
	}
	return out.DeletedItem, nil
}

func (o *orchestrator) fire(ctx context.Context, point rpgtoolkit.HookPoint, actor *entities.Actor, item *entities.Item, payload any) error {
	return o.hooks.Fire(ctx, &rpgtoolkit.HookContext{
		Point:   point,
		Source:  rpgtoolkit.WrapActor(actor),
		Target:  rpgtoolkit.WrapItem(item),
		Payload: payload,
	})
}

func (o *orchestrator) warn(ctx context.Context, item *entities.Item, f *usage.Failure) {
	err := o.notifier.Notify(ctx, notify.Notification{
		Kind:    string(f.Reason),
		Level:   notify.LevelWarning,
		Message: f.Message,
		Link:    item.ID,
	})
	if err != nil {
		slog.WarnContext(ctx, "Failed to deliver notification", "item_id", item.ID, "error", err)
	}
}
