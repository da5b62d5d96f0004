package stats

import (
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/formula"
)

// Attack is the composed to-hit bonus of an item
type Attack struct {
	// Parts are the unreplaced terms in order
	Parts []string
	Data  formula.Data

	// Formula is the simplified bonus, Modifier the same or "0"
	Formula  string
	Modifier string
	ToHit    string
}

// AttackFormula composes the to-hit bonus: the item's own bonus, then for
// owned items the ability modifier, proficiency, the owner's bonus for the
// action type and the bonus of ammunition that would be consumed.
func (c *Calculator) AttackFormula(item *entities.Item, actor *entities.Actor) *Attack {
	act := item.Action()
	attack := &Attack{Data: c.RollData(item, actor)}
	if act == nil {
		return attack
	}

	if ab := strings.TrimSpace(act.AttackBonus); ab != "" {
		attack.Parts = append(attack.Parts, ab)
	}

	if actor != nil {
		if c.AbilityFor(item, actor) != "" {
			attack.Parts = append(attack.Parts, "@mod")
		}
		if c.Proficient(item) {
			attack.Parts = append(attack.Parts, "@prof")
		}
		if bonus, ok := actor.System.Bonuses[act.ActionType]; ok && bonus != nil && strings.TrimSpace(bonus.Attack) != "" {
			attack.Parts = append(attack.Parts, strings.TrimSpace(bonus.Attack))
		}
		if ammo := c.consumableAmmo(item, actor); ammo != nil {
			attack.Parts = append(attack.Parts, "@ammo")
			attack.Data["ammo"] = strings.TrimSpace(ammo.Action().AttackBonus)
		}
	}

	joined := strings.Join(attack.Parts, " + ")
	if actor != nil {
		joined, _ = formula.Replace(joined, attack.Data)
	}

	simplified, err := c.evaluator.Simplify(joined)
	if err != nil {
		simplified = joined
	}
	attack.Formula = simplified
	attack.Modifier = simplified
	if attack.Modifier == "" {
		attack.Modifier = "0"
	}
	attack.ToHit = signed(attack.Modifier)
	return attack
}

func signed(f string) string {
	if strings.HasPrefix(f, "+") || strings.HasPrefix(f, "-") {
		return f
	}
	return "+ " + f
}

// AmmoFor returns the sibling item the item consumes as ammunition
func AmmoFor(item *entities.Item, actor *entities.Actor) *entities.Item {
	act := item.Activated()
	if actor == nil || act == nil || act.Consume.Type != "ammo" {
		return nil
	}
	return actor.ItemByID(act.Consume.Target)
}

// consumableAmmo returns the ammunition when its attack bonus applies: it is
// a consumable of type ammo, enough of it remains for one use and it has a
// bonus to add
func (c *Calculator) consumableAmmo(item *entities.Item, actor *entities.Actor) *entities.Item {
	ammo := AmmoFor(item, actor)
	if ammo == nil {
		return nil
	}
	cons, ok := ammo.System.(*entities.ConsumableData)
	if !ok || cons.ConsumableType != "ammo" {
		return nil
	}
	amount := item.Activated().Consume.Amount
	if cons.Quantity <= 0 || cons.Quantity-amount < 0 {
		return nil
	}
	if strings.TrimSpace(cons.AttackBonus) == "" {
		return nil
	}
	return ammo
}

// SaveDC returns the DC of the item's saving throw. Spell scaling uses the
// owner's spell DC and ability scaling that ability's DC, so both need an
// owner; flat scaling uses the stored DC.
func (c *Calculator) SaveDC(item *entities.Item, actor *entities.Actor) *int {
	act := item.Action()
	if act == nil || !act.HasSave() {
		return nil
	}

	switch act.Save.Scaling {
	case "flat", "":
		if act.Save.DC == nil {
			return nil
		}
		dc := *act.Save.DC
		return &dc
	case "spell":
		if actor == nil {
			return nil
		}
		dc := actor.System.Attributes.SpellDC
		return &dc
	default:
		if actor == nil {
			return nil
		}
		ability, ok := actor.System.Abilities[act.Save.Scaling]
		if !ok || ability == nil {
			return nil
		}
		dc := ability.DC
		return &dc
	}
}

// CriticalThreshold returns the lowest natural roll that crits: the smallest
// of the item's threshold, the owner's weapon or spell threshold (default
// from the rules) and the threshold of any ammunition the item consumes
func (c *Calculator) CriticalThreshold(item *entities.Item, actor *entities.Actor) *int {
	act := item.Action()
	if actor == nil || act == nil || !act.HasAttack() {
		return nil
	}

	itemThreshold := math.MaxInt
	if act.Critical.Threshold != nil {
		itemThreshold = *act.Critical.Threshold
	}

	ammoThreshold := math.MaxInt
	if ammo := AmmoFor(item, actor); ammo != nil {
		if ammoAct := ammo.Action(); ammoAct != nil && ammoAct.Critical.Threshold != nil {
			ammoThreshold = *ammoAct.Critical.Threshold
		}
	}

	var actorThreshold *int
	switch item.Type {
	case entities.KindWeapon:
		actorThreshold = actor.Flags.WeaponCriticalThreshold
	case entities.KindSpell:
		actorThreshold = actor.Flags.SpellCriticalThreshold
	}

	ownerThreshold := c.rules.DefaultCriticalThreshold
	if actorThreshold != nil {
		ownerThreshold = *actorThreshold
	}

	threshold := min(itemThreshold, ammoThreshold, ownerThreshold)
	return &threshold
}
