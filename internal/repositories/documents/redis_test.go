package documents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/testutils"
	"github.com/KirkDiggler/rpg-items/internal/testutils/builders"
)

func TestRedisKeysShareHashTag(t *testing.T) {
	assert.Equal(t, "actor:{hero}", actorKey("hero"))
	assert.Equal(t, "actor:{hero}:items", itemListKey("hero"))
	assert.Equal(t, "actor:{hero}:item:bow", itemKey("hero", "bow"))
}

func TestNewRedisValidation(t *testing.T) {
	_, err := NewRedis(nil)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewRedis(&RedisConfig{})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRedisGetActorSkipsMissingItem(t *testing.T) {
	client, mr, cleanup := testutils.CreateTestRedisServer(t)
	defer cleanup()

	repo, err := NewRedis(&RedisConfig{Client: client})
	require.NoError(t, err)

	ctx := context.Background()
	actor := builders.NewActorBuilder().
		WithID("hero").
		WithItems(builders.Weapon("sword", "Longsword"), builders.Feat("rage", "Rage")).
		Build()
	_, err = repo.PutActor(ctx, PutActorInput{Actor: actor})
	require.NoError(t, err)

	mr.Del(itemKey("hero", "sword"))

	out, err := repo.GetActor(ctx, GetActorInput{ID: "hero"})
	require.NoError(t, err)
	require.Len(t, out.Actor.Items, 1)
	assert.Equal(t, "rage", out.Actor.Items[0].ID)
}
