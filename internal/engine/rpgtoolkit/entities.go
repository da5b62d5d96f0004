package rpgtoolkit

import "github.com/KirkDiggler/rpg-items/internal/entities"

// ItemEntity wraps entities.Item to implement core.Entity
type ItemEntity struct {
	*entities.Item
}

// GetID returns the item's ID
func (i *ItemEntity) GetID() string {
	return i.ID
}

// GetType returns the entity type for rpg-toolkit
func (i *ItemEntity) GetType() string {
	return "item"
}

// ActorEntity wraps entities.Actor to implement core.Entity
type ActorEntity struct {
	*entities.Actor
}

// GetID returns the actor's ID
func (a *ActorEntity) GetID() string {
	return a.ID
}

// GetType returns the actor type, "character" or "npc"
func (a *ActorEntity) GetType() string {
	if a.Type == "" {
		return string(entities.ActorCharacter)
	}
	return string(a.Type)
}

// WrapItem converts an item to an ItemEntity
func WrapItem(item *entities.Item) *ItemEntity {
	return &ItemEntity{Item: item}
}

// WrapActor converts an actor to an ActorEntity
func WrapActor(actor *entities.Actor) *ActorEntity {
	return &ActorEntity{Actor: actor}
}
