// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/repositories/documents"
	documentsmock "github.com/KirkDiggler/rpg-items/internal/repositories/documents/mock"
)

// ExpectActorGet sets up a mock expectation for reading an actor from the repository
func ExpectActorGet(ctx context.Context, mockRepo *documentsmock.MockRepository, actor *entities.Actor) *gomock.Call {
	return mockRepo.EXPECT().
		GetActor(ctx, documents.GetActorInput{ID: actor.ID}).
		Return(&documents.GetActorOutput{Actor: actor}, nil)
}

// ExpectActorGetError sets up a mock expectation for a failed actor read
func ExpectActorGetError(ctx context.Context, mockRepo *documentsmock.MockRepository, actorID string, err error) *gomock.Call {
	return mockRepo.EXPECT().
		GetActor(ctx, documents.GetActorInput{ID: actorID}).
		Return(nil, err)
}

// ExpectApplyUsage sets up a mock expectation for committing a use. check,
// when set, sees the consumption before the commit succeeds.
func ExpectApplyUsage(
	ctx context.Context, mockRepo *documentsmock.MockRepository,
	deleted bool, check func(c *usage.Consumption),
) *gomock.Call {
	return mockRepo.EXPECT().
		ApplyUsage(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input documents.ApplyUsageInput) (*documents.ApplyUsageOutput, error) {
			if check != nil {
				check(input.Consumption)
			}
			return &documents.ApplyUsageOutput{DeletedItem: deleted}, nil
		})
}
