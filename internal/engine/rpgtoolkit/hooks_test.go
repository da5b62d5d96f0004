package rpgtoolkit

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
)

func fire(t *testing.T, hooks *HookBus, point HookPoint, payload any) error {
	t.Helper()
	return hooks.Fire(context.Background(), &HookContext{
		Point:   point,
		Source:  WrapActor(&entities.Actor{ID: "actor-1"}),
		Target:  WrapItem(&entities.Item{ID: "item-1"}),
		Payload: payload,
	})
}

func TestHookObserverSeesPayload(t *testing.T) {
	hooks := NewHookBus(nil)

	var seen any
	hooks.On(HookPreUse, 0, func(_ context.Context, hc *HookContext) error {
		seen = hc.Payload
		assert.Equal(t, "item-1", hc.Target.GetID())
		return nil
	})

	require.NoError(t, fire(t, hooks, HookPreUse, "payload"))
	assert.Equal(t, "payload", seen)
}

func TestHookOnlyMatchingPoint(t *testing.T) {
	hooks := NewHookBus(nil)

	called := false
	hooks.On(HookPostUse, 0, func(context.Context, *HookContext) error {
		called = true
		return nil
	})

	require.NoError(t, fire(t, hooks, HookPreUse, nil))
	assert.False(t, called)
}

func TestHookVeto(t *testing.T) {
	hooks := NewHookBus(nil)
	hooks.On(HookPreConsume, 0, func(context.Context, *HookContext) error {
		return ErrVeto
	})

	err := fire(t, hooks, HookPreConsume, nil)
	require.Error(t, err)
	assert.True(t, errors.IsAborted(err))
	assert.Equal(t, "item.pre_consume", errors.GetMeta(err)["hook"])
}

func TestHookErrorPassesThrough(t *testing.T) {
	hooks := NewHookBus(nil)
	boom := stderrors.New("boom")
	hooks.On(HookPreRollAttack, 0, func(context.Context, *HookContext) error {
		return boom
	})

	err := fire(t, hooks, HookPreRollAttack, nil)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.IsAborted(err))
}

func TestHookObserversAfterFailureSkipped(t *testing.T) {
	hooks := NewHookBus(nil)

	calls := 0
	observer := func(context.Context, *HookContext) error {
		calls++
		return ErrVeto
	}
	hooks.On(HookPreUse, 10, observer)
	hooks.On(HookPreUse, 5, observer)

	require.Error(t, fire(t, hooks, HookPreUse, nil))
	assert.Equal(t, 1, calls)
}

func TestHookOff(t *testing.T) {
	hooks := NewHookBus(nil)

	called := false
	id := hooks.On(HookPostUse, 0, func(context.Context, *HookContext) error {
		called = true
		return nil
	})
	require.NoError(t, hooks.Off(id))

	require.NoError(t, fire(t, hooks, HookPostUse, nil))
	assert.False(t, called)
}
