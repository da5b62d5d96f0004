package usage

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-items/internal/config"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
)

//go:generate mockgen -destination=mock/mock_resolver.go -package=usagemock github.com/KirkDiggler/rpg-items/internal/engine/usage Resolver

// Resolver computes the consumption of one use
type Resolver interface {
	Resolve(item *entities.Item, actor *entities.Actor, cfg *Config) (*Consumption, *Failure)
	ResolveAmmunition(item *entities.Item, actor *entities.Actor) (*Consumption, *Failure)
}

// ResolverConfig contains the dependencies of a resolver
type ResolverConfig struct {
	Rules *config.Rules
}

// Validate checks that all required dependencies are provided
func (c *ResolverConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	return vb.Build()
}

type resolver struct {
	rules *config.Rules
}

// NewResolver creates a resolver
func NewResolver(cfg *ResolverConfig) (Resolver, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &resolver{rules: cfg.Rules}, nil
}

// Resolve runs recharge, linked resource, spell slot and uses in that order.
// The first failing step aborts with no buckets.
func (r *resolver) Resolve(item *entities.Item, actor *entities.Actor, cfg *Config) (*Consumption, *Failure) {
	if cfg == nil {
		cfg = DefaultConfig(item, r.rules)
	}
	c := newConsumption(item, actor)

	act := item.Activated()
	if act == nil {
		return c, nil
	}

	if cfg.ConsumeRecharge {
		if f := consumeRecharge(c, item, act); f != nil {
			return nil, f
		}
	}
	if cfg.ConsumeResource {
		if f := consumeResource(c, item, actor, act, cfg.ResourceAmount); f != nil {
			return nil, f
		}
	}
	if cfg.ConsumeSpellSlot {
		if f := consumeSpellSlot(c, actor, cfg.SlotKey()); f != nil {
			return nil, f
		}
	}
	if cfg.ConsumeUsage || cfg.ConsumeQuantity {
		if f := consumeUses(c, item, act, cfg); f != nil {
			return nil, f
		}
	}

	return c, nil
}

// ResolveAmmunition spends only the ammunition an attack fires. Items that
// don't fire ammunition resolve to an empty consumption.
func (r *resolver) ResolveAmmunition(item *entities.Item, actor *entities.Actor) (*Consumption, *Failure) {
	c := newConsumption(item, actor)
	act := item.Activated()
	if act == nil || act.Consume.Type != ResourceAmmo || act.Consume.Target == "" {
		return c, nil
	}
	if f := consumeResource(c, item, actor, act, nil); f != nil {
		return nil, f
	}
	return c, nil
}

func newConsumption(item *entities.Item, actor *entities.Actor) *Consumption {
	c := &Consumption{
		ItemID:       item.ID,
		ActorUpdates: Updates{},
		ItemUpdates:  Updates{},
	}
	if actor != nil {
		c.ActorID = actor.ID
	}
	return c
}

func consumeRecharge(c *Consumption, item *entities.Item, act *entities.ActivatedData) *Failure {
	if !act.Recharge.Charged {
		return fail(ReasonRechargeNotCharged, ResourceRecharge, "%s is not charged", item.Name)
	}
	c.ItemUpdates["system.recharge.charged"] = false
	c.Resources = append(c.Resources, Resource{Kind: ResourceRecharge, Target: item.ID, Amount: 1})
	return nil
}

// consumeResource spends the resource linked through consume. Quantities
// are read first and every bucket is written only once the remaining amount
// is known to be non-negative.
func consumeResource(
	c *Consumption,
	item *entities.Item,
	actor *entities.Actor,
	act *entities.ActivatedData,
	override *int,
) *Failure {
	consume := act.Consume
	if consume.Type == "" {
		return nil
	}
	amount := consume.Amount
	if override != nil {
		amount = *override
	}

	if consume.Target == "" || actor == nil {
		return fail(ReasonNoResourceTarget, consume.Type, "%s has no resource to consume", item.Name)
	}

	var (
		quantity int
		source   *entities.Item
		classes  []*entities.Item
	)

	switch consume.Type {
	case ResourceAttribute:
		v, ok := actor.Attribute(consume.Target)
		if !ok {
			return notFound(item, consume)
		}
		quantity = int(v)
	case ResourceAmmo, ResourceMaterial:
		source = actor.ItemByID(consume.Target)
		if source == nil {
			return notFound(item, consume)
		}
		quantity = source.Quantity()
	case ResourceHitDice:
		classes = hitDiceClasses(actor, consume.Target)
		for _, cls := range classes {
			sys := cls.System.(*entities.ClassData)
			quantity += sys.Levels - sys.HitDiceUsed
		}
	case ResourceCharges:
		source = actor.ItemByID(consume.Target)
		if source == nil {
			return notFound(item, consume)
		}
		quantity, amount = charges(source, amount)
	default:
		return fail(ReasonNoResourceTarget, consume.Type, "%s consumes an unknown resource type %q", item.Name, consume.Type)
	}

	remaining := quantity - amount
	if remaining < 0 {
		return fail(ReasonInsufficientResource, consume.Type,
			"not enough %s remaining to use %s: %d needed, %d available",
			resourceName(consume, source), item.Name, amount, quantity)
	}

	switch consume.Type {
	case ResourceAttribute:
		c.ActorUpdates["system."+consume.Target] = remaining
	case ResourceAmmo, ResourceMaterial:
		c.ResourceUpdates = append(c.ResourceUpdates, ResourceUpdate{
			ID:      source.ID,
			Updates: Updates{"system.quantity": remaining},
		})
	case ResourceHitDice:
		spendHitDice(c, classes, amount)
	case ResourceCharges:
		updates := Updates{"system.uses.value": remaining}
		if !usesCharges(source) {
			updates = Updates{"system.recharge.charged": false}
		}
		c.ResourceUpdates = append(c.ResourceUpdates, ResourceUpdate{ID: source.ID, Updates: updates})
	}

	c.Resources = append(c.Resources, Resource{
		Kind:      consume.Type,
		Target:    consume.Target,
		Amount:    amount,
		Remaining: remaining,
	})
	return nil
}

func notFound(item *entities.Item, consume entities.Consume) *Failure {
	return fail(ReasonResourceNotFound, consume.Type,
		"%s consumes %s %q which could not be found", item.Name, consume.Type, consume.Target)
}

func resourceName(consume entities.Consume, source *entities.Item) string {
	if source != nil {
		return source.Name
	}
	return consume.Target
}

// charges reads a sibling's limited uses, or its recharge flag as a single
// charge when it has no limited uses
func charges(source *entities.Item, amount int) (int, int) {
	act := source.Activated()
	if act == nil {
		return 0, amount
	}
	if usesCharges(source) {
		return act.Uses.Value, amount
	}
	if act.Recharge.Value > 0 {
		if act.Recharge.Charged {
			return 1, 1
		}
		return 0, 1
	}
	return 0, amount
}

func usesCharges(source *entities.Item) bool {
	act := source.Activated()
	return act != nil && act.Uses.Per != "" && !act.Uses.Max.IsEmpty()
}

// hitDiceClasses selects the classes hit dice are spent from. "smallest"
// and "largest" take every class ordered by die size; any other target
// keeps the classes with that die in actor order.
func hitDiceClasses(actor *entities.Actor, target string) []*entities.Item {
	classes := actor.Classes()
	switch target {
	case "smallest", "largest":
		dir := 1
		if target == "largest" {
			dir = -1
		}
		// stable, so classes sharing a die keep actor order either way
		sorted := slices.Clone(classes)
		slices.SortStableFunc(sorted, func(a, b *entities.Item) int {
			return dir * compareDie(a.System.(*entities.ClassData).HitDice, b.System.(*entities.ClassData).HitDice)
		})
		return sorted
	default:
		var filtered []*entities.Item
		for _, cls := range classes {
			if cls.System.(*entities.ClassData).HitDice == target {
				filtered = append(filtered, cls)
			}
		}
		return filtered
	}
}

// compareDie orders dice like "d6" < "d10" by face count
func compareDie(a, b string) int {
	fa, errA := strconv.Atoi(strings.TrimPrefix(a, "d"))
	fb, errB := strconv.Atoi(strings.TrimPrefix(b, "d"))
	if errA != nil || errB != nil {
		return cmp.Compare(a, b)
	}
	return cmp.Compare(fa, fb)
}

// spendHitDice spreads amount over the classes in order. A negative amount
// restores used dice.
func spendHitDice(c *Consumption, classes []*entities.Item, amount int) {
	toConsume := amount
	for _, cls := range classes {
		if toConsume == 0 {
			break
		}
		sys := cls.System.(*entities.ClassData)

		available := -sys.HitDiceUsed
		if toConsume > 0 {
			available += sys.Levels
		}

		var delta int
		if toConsume > 0 {
			delta = min(toConsume, available)
		} else {
			delta = max(toConsume, available)
		}
		if delta == 0 {
			continue
		}

		c.ResourceUpdates = append(c.ResourceUpdates, ResourceUpdate{
			ID:      cls.ID,
			Updates: Updates{"system.hitDiceUsed": sys.HitDiceUsed + delta},
		})
		toConsume -= delta
	}
}

func consumeSpellSlot(c *Consumption, actor *entities.Actor, level string) *Failure {
	var slots *entities.SpellSlots
	if actor != nil {
		slots = actor.System.Spells[level]
	}
	if slots == nil || slots.Value <= 0 {
		return fail(ReasonNoSpellSlots, ResourceSpellSlot, "no %s spell slots remaining", slotLabel(level))
	}

	remaining := max(slots.Value-1, 0)
	c.ActorUpdates["system.spells."+level+".value"] = remaining
	c.Resources = append(c.Resources, Resource{
		Kind:      ResourceSpellSlot,
		Target:    level,
		Amount:    1,
		Remaining: remaining,
	})
	return nil
}

func slotLabel(level string) string {
	if level == SlotPact {
		return "pact magic"
	}
	if n, ok := strings.CutPrefix(level, "spell"); ok {
		return "level " + n
	}
	return level
}

// consumeUses spends one limited use. When the item has none left, or the
// last one was just spent, one of the stack is used instead and the uses
// refill for the next.
func consumeUses(c *Consumption, item *entities.Item, act *entities.ActivatedData, cfg *Config) *Failure {
	usesMax := UsesMax(item)
	spentUse := false
	remainingUses := act.Uses.Value

	if cfg.ConsumeUsage && act.Uses.Value >= 1 {
		remainingUses = act.Uses.Value - 1
		c.ItemUpdates["system.uses.value"] = remainingUses
		c.Resources = append(c.Resources, Resource{
			Kind:      ResourceUses,
			Target:    item.ID,
			Amount:    1,
			Remaining: remainingUses,
		})
		spentUse = true
	}

	quantity := item.Quantity()
	if cfg.ConsumeQuantity && (!spentUse || remainingUses == 0) && quantity >= 1 {
		remaining := quantity - 1
		c.ItemUpdates["system.quantity"] = remaining
		if usesMax > 0 {
			c.ItemUpdates["system.uses.value"] = usesMax
		}
		c.Resources = append(c.Resources, Resource{
			Kind:      ResourceQuantity,
			Target:    item.ID,
			Amount:    1,
			Remaining: remaining,
		})
		if remaining == 0 && act.Uses.AutoDestroy {
			c.DeleteItem = true
		}
		return nil
	}

	if !spentUse {
		kind := ResourceUses
		if !cfg.ConsumeUsage {
			kind = ResourceQuantity
		}
		return fail(ReasonNoUsesRemaining, kind, "%s has no uses remaining", item.Name)
	}
	return nil
}
