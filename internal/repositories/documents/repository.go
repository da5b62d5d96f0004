// Package documents stores actors and their items and applies the update
// buckets of a resolved use.
package documents

//go:generate mockgen -destination=mock/mock_repository.go -package=documentsmock github.com/KirkDiggler/rpg-items/internal/repositories/documents Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
)

// Repository defines the interface for actor and item persistence
type Repository interface {
	// GetActor retrieves an actor with its items in stored order
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the actor doesn't exist
	GetActor(ctx context.Context, input GetActorInput) (*GetActorOutput, error)

	// PutActor creates or replaces an actor and all of its items
	// Returns errors.InvalidArgument for validation failures
	PutActor(ctx context.Context, input PutActorInput) (*PutActorOutput, error)

	// PutItem creates or replaces one item of an existing actor
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the actor doesn't exist
	PutItem(ctx context.Context, input PutItemInput) (*PutItemOutput, error)

	// ApplyUsage applies the actor, item and sibling updates of a use in one
	// transaction. Either every bucket is applied or none is.
	// Returns errors.InvalidArgument for an empty consumption
	// Returns errors.NotFound if the actor or a touched item doesn't exist
	// Returns errors.Aborted if concurrent writes kept the transaction from committing
	ApplyUsage(ctx context.Context, input ApplyUsageInput) (*ApplyUsageOutput, error)
}

// GetActorInput defines the input for getting an actor
type GetActorInput struct {
	ID string
}

// GetActorOutput defines the output for getting an actor
type GetActorOutput struct {
	Actor *entities.Actor
}

// PutActorInput defines the input for storing an actor
type PutActorInput struct {
	Actor *entities.Actor
}

// PutActorOutput defines the output for storing an actor
type PutActorOutput struct {
	Actor *entities.Actor
}

// PutItemInput defines the input for storing an item
type PutItemInput struct {
	ActorID string
	Item    *entities.Item
}

// PutItemOutput defines the output for storing an item
type PutItemOutput struct {
	Item *entities.Item
}

// ApplyUsageInput defines the input for committing a use
type ApplyUsageInput struct {
	Consumption *usage.Consumption
}

// ApplyUsageOutput defines the output for committing a use
type ApplyUsageOutput struct {
	// DeletedItem is set when the used item was removed
	DeletedItem bool
}
