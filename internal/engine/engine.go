package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-items/internal/config"
	"github.com/KirkDiggler/rpg-items/internal/engine/scaling"
	"github.com/KirkDiggler/rpg-items/internal/engine/stats"
	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/formula"
)

type engine struct {
	rules    *config.Rules
	calc     *stats.Calculator
	resolver usage.Resolver
}

// Config contains the dependencies of the engine
type Config struct {
	Rules     *config.Rules
	Evaluator formula.Evaluator

	// Resolver is optional; the rules based resolver is used when nil
	Resolver usage.Resolver
}

// Validate checks that all required dependencies are provided
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Rules == nil {
		vb.RequiredField("Rules")
	}
	if cfg.Evaluator == nil {
		vb.RequiredField("Evaluator")
	}
	return vb.Build()
}

// New creates an engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	calc, err := stats.New(&stats.Config{Rules: cfg.Rules, Evaluator: cfg.Evaluator})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create calculator")
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver, err = usage.NewResolver(&usage.ResolverConfig{Rules: cfg.Rules})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create resolver")
		}
	}

	return &engine{
		rules:    cfg.Rules,
		calc:     calc,
		resolver: resolver,
	}, nil
}

func (e *engine) PrepareActor(ctx context.Context, input *PrepareActorInput) (*PrepareActorOutput, error) {
	if input == nil || input.Actor == nil {
		return nil, errors.InvalidArgument("actor is required")
	}

	actor := input.Actor
	actor.Prepare()
	for _, item := range actor.Items {
		item.Derived = e.calc.Prepare(item, actor)
	}

	if len(actor.Warnings) > 0 {
		slog.DebugContext(ctx, "Actor prepared with warnings",
			"actor_id", actor.ID,
			"warnings", len(actor.Warnings))
	}

	return &PrepareActorOutput{
		Actor:    actor,
		Warnings: actor.Warnings,
	}, nil
}

func (e *engine) PrepareItem(_ context.Context, input *PrepareItemInput) (*PrepareItemOutput, error) {
	if input == nil || input.Item == nil {
		return nil, errors.InvalidArgument("item is required")
	}

	input.Item.Derived = e.calc.Prepare(input.Item, input.Actor)
	return &PrepareItemOutput{Derived: input.Item.Derived}, nil
}

func (e *engine) UsageConfig(_ context.Context, input *UsageConfigInput) (*UsageConfigOutput, error) {
	if input == nil || input.Item == nil {
		return nil, errors.InvalidArgument("item is required")
	}

	return &UsageConfigOutput{
		Config: usage.DefaultConfig(input.Item, e.rules).Merge(input.Overrides),
	}, nil
}

func (e *engine) ResolveUsage(ctx context.Context, input *ResolveUsageInput) (*ResolveUsageOutput, error) {
	if err := validateOwned(input.GetItem(), input.GetActor()); err != nil {
		return nil, err
	}

	cfg := input.Config
	if cfg == nil {
		out, err := e.UsageConfig(ctx, &UsageConfigInput{Item: input.Item, Overrides: input.Overrides})
		if err != nil {
			return nil, err
		}
		cfg = out.Config
	}

	consumption, failure := e.resolver.Resolve(input.Item, input.Actor, cfg)
	return &ResolveUsageOutput{
		Config:      cfg,
		Consumption: consumption,
		Failure:     failure,
	}, nil
}

func (e *engine) ResolveAmmunition(_ context.Context, input *ResolveAmmunitionInput) (*ResolveUsageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateOwned(input.Item, input.Actor); err != nil {
		return nil, err
	}

	consumption, failure := e.resolver.ResolveAmmunition(input.Item, input.Actor)
	return &ResolveUsageOutput{
		Consumption: consumption,
		Failure:     failure,
	}, nil
}

func (e *engine) AttackRoll(_ context.Context, input *AttackRollInput) (*AttackRollOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateOwned(input.Item, input.Actor); err != nil {
		return nil, err
	}
	if !input.Item.HasAttack() {
		return nil, errors.FailedPreconditionf("%s has no attack roll", input.Item.Name)
	}

	attack := e.calc.AttackFormula(input.Item, input.Actor)
	terms := append([]string{"1d20"}, attack.Parts...)

	threshold := e.rules.DefaultCriticalThreshold
	if crit := e.calc.CriticalThreshold(input.Item, input.Actor); crit != nil {
		threshold = *crit
	}

	return &AttackRollOutput{
		Formula:           strings.Join(terms, " + "),
		Data:              attack.Data,
		CriticalThreshold: threshold,
	}, nil
}

// DamageParts builds the damage to roll. Versatile damage replaces the first
// part; the owner's damage bonus is added as its own part; cantrips scale
// with the caster level and leveled spells with the slot they are cast from.
func (e *engine) DamageParts(_ context.Context, input *DamagePartsInput) (*DamagePartsOutput, error) {
	if input == nil || input.Item == nil {
		return nil, errors.InvalidArgument("item is required")
	}

	item := input.Item
	act := item.Action()
	if act == nil || !act.HasDamage() {
		return nil, errors.FailedPreconditionf("%s has no damage", item.Name)
	}

	parts := make([]entities.DamagePart, len(act.Damage.Parts))
	copy(parts, act.Damage.Parts)
	if input.Versatile && act.Damage.Versatile != "" {
		parts[0].Formula = act.Damage.Versatile
	}

	formulas := make([]string, len(parts))
	for i, p := range parts {
		formulas[i] = p.Formula
	}

	if spell, ok := item.System.(*entities.SpellData); ok {
		scaled, err := e.scaleSpell(spell, formulas, input)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to scale damage of %s", item.Name)
		}
		for i := range parts {
			parts[i].Formula = scaled[i]
		}
	}

	if input.Actor != nil {
		if bonus, ok := input.Actor.System.Bonuses[act.ActionType]; ok && bonus != nil && strings.TrimSpace(bonus.Damage) != "" {
			parts = append(parts, entities.DamagePart{Formula: strings.TrimSpace(bonus.Damage)})
		}
	}

	joined := make([]string, len(parts))
	for i, p := range parts {
		joined[i] = p.Formula
	}

	return &DamagePartsOutput{
		Parts:   parts,
		Formula: strings.Join(joined, " + "),
		Data:    e.calc.RollData(item, input.Actor),
		Healing: act.IsHealing(),
	}, nil
}

func (e *engine) scaleSpell(spell *entities.SpellData, formulas []string, input *DamagePartsInput) ([]string, error) {
	switch spell.Scaling.Mode {
	case "cantrip":
		return scaling.ScaleCantrip(formulas, spell.Scaling.Formula, scaling.CasterLevel(input.Actor))
	case "level":
		if input.SpellLevel <= spell.Level {
			return formulas, nil
		}
		return scaling.ScaleSpell(formulas, spell.Level, input.SpellLevel, spell.Scaling.Formula)
	default:
		return formulas, nil
	}
}

func validateOwned(item *entities.Item, actor *entities.Actor) error {
	vb := errors.NewValidationBuilder()
	if item == nil {
		vb.RequiredField("Item")
	}
	if actor == nil {
		vb.RequiredField("Actor")
	}
	return vb.Build()
}

// GetItem returns the item, nil safe
func (i *ResolveUsageInput) GetItem() *entities.Item {
	if i == nil {
		return nil
	}
	return i.Item
}

// GetActor returns the actor, nil safe
func (i *ResolveUsageInput) GetActor() *entities.Actor {
	if i == nil {
		return nil
	}
	return i.Actor
}
