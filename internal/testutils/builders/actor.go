// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-items/internal/entities"
)

// ActorBuilder provides a fluent interface for building test actors
type ActorBuilder struct {
	actor *entities.Actor
}

// NewActorBuilder creates a character with every ability at 10 and no items
func NewActorBuilder() *ActorBuilder {
	abilities := make(map[string]*entities.Ability)
	for _, key := range []string{"str", "dex", "con", "int", "wis", "cha"} {
		abilities[key] = &entities.Ability{Value: 10}
	}

	return &ActorBuilder{
		actor: &entities.Actor{
			ID:   "actor-test-1",
			Name: "Test Hero",
			Type: entities.ActorCharacter,
			System: entities.ActorSystem{
				Abilities: abilities,
				Attributes: entities.Attributes{
					HP: entities.HitPoints{Value: 10, Max: 10},
				},
				Spells:    make(map[string]*entities.SpellSlots),
				Bonuses:   make(map[string]*entities.Bonus),
				Resources: make(map[string]*entities.ResourcePool),
			},
		},
	}
}

// WithID sets the actor ID
func (b *ActorBuilder) WithID(id string) *ActorBuilder {
	b.actor.ID = id
	return b
}

// AsNPC makes the actor a monster with a challenge rating and caster level
func (b *ActorBuilder) AsNPC(cr float64, spellLevel int) *ActorBuilder {
	b.actor.Type = entities.ActorNPC
	b.actor.System.Details.CR = cr
	b.actor.System.Details.SpellLevel = spellLevel
	return b
}

// WithAbility sets an ability score
func (b *ActorBuilder) WithAbility(key string, value int) *ActorBuilder {
	b.actor.System.Abilities[key] = &entities.Ability{Value: value}
	return b
}

// WithSpellcasting sets the spellcasting ability
func (b *ActorBuilder) WithSpellcasting(key string) *ActorBuilder {
	b.actor.System.Attributes.Spellcasting = key
	return b
}

// WithSpellSlots sets a slot pool such as "spell1" or "pact"
func (b *ActorBuilder) WithSpellSlots(key string, value, maxValue int) *ActorBuilder {
	b.actor.System.Spells[key] = &entities.SpellSlots{Value: value, Max: maxValue}
	return b
}

// WithBonus sets the global bonuses for an action type
func (b *ActorBuilder) WithBonus(actionType, attack, damage string) *ActorBuilder {
	b.actor.System.Bonuses[actionType] = &entities.Bonus{Attack: attack, Damage: damage}
	return b
}

// WithResource sets a named resource pool
func (b *ActorBuilder) WithResource(key string, value, maxValue int) *ActorBuilder {
	b.actor.System.Resources[key] = &entities.ResourcePool{Value: value, Max: maxValue}
	return b
}

// WithHP sets current and maximum hit points
func (b *ActorBuilder) WithHP(value, maxValue int) *ActorBuilder {
	b.actor.System.Attributes.HP = entities.HitPoints{Value: value, Max: maxValue}
	return b
}

// WithWeaponCriticalThreshold sets the owner's weapon critical flag
func (b *ActorBuilder) WithWeaponCriticalThreshold(n int) *ActorBuilder {
	b.actor.Flags.WeaponCriticalThreshold = &n
	return b
}

// WithSpellCriticalThreshold sets the owner's spell critical flag
func (b *ActorBuilder) WithSpellCriticalThreshold(n int) *ActorBuilder {
	b.actor.Flags.SpellCriticalThreshold = &n
	return b
}

// WithItems adds owned items
func (b *ActorBuilder) WithItems(items ...*entities.Item) *ActorBuilder {
	b.actor.Items = append(b.actor.Items, items...)
	return b
}

// Build prepares and returns the actor
func (b *ActorBuilder) Build() *entities.Actor {
	b.actor.Prepare()
	return b.actor
}
