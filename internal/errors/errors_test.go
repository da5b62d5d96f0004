package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

func TestWrapPreservesCodeAndMeta(t *testing.T) {
	base := errors.FailedPrecondition("no spell slots").WithMeta("resource_kind", "spellSlot")

	wrapped := errors.Wrap(base, "failed to use item")

	require.NotNil(t, wrapped)
	assert.Equal(t, errors.CodeFailedPrecondition, wrapped.Code)
	assert.Equal(t, "spellSlot", wrapped.Meta["resource_kind"])
	assert.True(t, errors.IsFailedPrecondition(wrapped))
	assert.True(t, stderrors.Is(wrapped, errors.FailedPrecondition("")))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, "ignored"))
	assert.Nil(t, errors.WrapWithCode(nil, errors.CodeInternal, "ignored"))
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	err := errors.Wrap(stderrors.New("boom"), "commit failed")

	assert.Equal(t, errors.CodeInternal, errors.GetCode(err))
	assert.False(t, errors.GetCode(err).Recoverable())
	assert.Contains(t, err.Error(), "boom")
}

func TestWrapWithCodeCopiesMeta(t *testing.T) {
	base := errors.NotFound("ammo not found").WithMeta("item_id", "arrows")

	err := errors.WrapWithCode(base, errors.CodeAborted, "attack aborted")
	err.WithMeta("extra", true)

	assert.Equal(t, errors.CodeAborted, err.Code)
	assert.Equal(t, "arrows", err.Meta["item_id"])
	assert.NotContains(t, base.Meta, "extra")
}

func TestGetCodeNil(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Nil(t, errors.GetMeta(nil))
}

func TestValidationBuilder(t *testing.T) {
	t.Run("no errors builds nil", func(t *testing.T) {
		vb := errors.NewValidationBuilder()
		errors.ValidateEnum("type", "weapon", []string{"weapon", "spell"}, vb)
		errors.ValidateRange("level", 3, 0, 9, vb)
		assert.NoError(t, vb.Build())
	})

	t.Run("collects every field in stable order", func(t *testing.T) {
		vb := errors.NewValidationBuilder()
		vb.RequiredField("id")
		errors.ValidateEnum("type", "wand", []string{"weapon", "spell"}, vb)
		errors.ValidateMin("quantity", -1, 0, vb)

		err := vb.Build()
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
		assert.Equal(t,
			"INVALID_ARGUMENT: validation failed: id: is required; quantity: must be at least 0; type: must be one of: weapon, spell",
			err.Error())

		fields, ok := errors.GetMeta(err)["validation_errors"].(map[string][]string)
		require.True(t, ok)
		assert.Len(t, fields, 3)
	})
}
