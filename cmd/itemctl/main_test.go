package main

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-items/internal/engine/usage"
	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/orchestrators/item"
	itemmock "github.com/KirkDiggler/rpg-items/internal/orchestrators/item/mock"
	"github.com/KirkDiggler/rpg-items/internal/repositories/documents"
	"github.com/KirkDiggler/rpg-items/internal/testutils/builders"
)

func readScenario(t *testing.T) *scenario {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "party.yaml"))
	require.NoError(t, err)
	s, err := decodeScenario(data)
	require.NoError(t, err)
	return s
}

func TestDecodeScenario(t *testing.T) {
	s := readScenario(t)
	require.Len(t, s.Actors, 1)

	archer := s.Actors[0]
	assert.Equal(t, "archer", archer.ID)
	assert.Equal(t, 16, archer.System.Abilities["dex"].Value)
	require.Len(t, archer.Items, 3)

	bow, ok := archer.ItemByID("bow").System.(*entities.WeaponData)
	require.True(t, ok, "weapon variant chosen from type")
	assert.Equal(t, "arrows", bow.Consume.Target)
	require.Len(t, bow.Damage.Parts, 1)
	assert.Equal(t, "1d8 + @mod", bow.Damage.Parts[0].Formula)
	assert.Equal(t, "piercing", bow.Damage.Parts[0].Type)

	class := archer.ItemByID("ranger")
	require.Len(t, class.Advancement, 1)
	assert.JSONEq(t, `{"_id":"hp","type":"HitPoints","value":{"1":"max","2":6}}`, string(class.Advancement[0]))
}

func TestDecodeScenarioErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
		msg  string
	}{
		{name: "bad yaml", yaml: "actors: [", msg: "failed to parse scenario"},
		{name: "missing id", yaml: "actors:\n  - name: Nobody\n", msg: "actor 0 has no _id"},
		{name: "unknown item type", yaml: "actors:\n  - _id: a\n    items:\n      - _id: x\n        type: spaceship\n", msg: "failed to decode scenario"},
		{
			name: "invalid class",
			yaml: "actors:\n  - _id: a\n    items:\n      - _id: fighter\n        name: Fighter\n        type: class\n        system: {levels: 0, hitDice: d10}\n",
			msg:  "actor a item fighter",
		},
		{name: "empty item", yaml: "actors:\n  - _id: a\n    items:\n      - null\n", msg: "actor a item 0 is empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeScenario([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadScenario(t *testing.T) {
	repo, err := documents.OpenSQLite(&documents.SQLiteConfig{Path: filepath.Join(t.TempDir(), "items.db")})
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	var out bytes.Buffer
	require.NoError(t, loadScenario(context.Background(), repo, readScenario(t), &out))
	assert.Equal(t, "Loaded Wren (archer) with 3 items\n", out.String())

	got, err := repo.GetActor(context.Background(), documents.GetActorInput{ID: "archer"})
	require.NoError(t, err)
	assert.Equal(t, 20, got.Actor.ItemByID("arrows").Quantity())
}

func TestTerminalPrompter(t *testing.T) {
	spell := builders.Spell("fireball", "Fireball", 3)
	defaults := &usage.Config{ConsumeSpellSlot: true, SlotLevel: "spell3", CreateMeasuredTemplate: true}

	testCases := []struct {
		name      string
		input     string
		expected  *usage.Config
		cancelled bool
	}{
		{
			name:     "accept defaults",
			input:    "\n\n\n",
			expected: defaults,
		},
		{
			name:     "end of input accepts defaults",
			input:    "",
			expected: defaults,
		},
		{
			name:     "upcast without template",
			input:    "y\nn\nspell5\n",
			expected: &usage.Config{ConsumeSpellSlot: true, SlotLevel: "spell5"},
		},
		{
			name:     "skip the slot",
			input:    "n\ny\n",
			expected: &usage.Config{SlotLevel: "spell3", CreateMeasuredTemplate: true},
		},
		{
			name:      "cancel",
			input:     "q\n",
			cancelled: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			p := newTerminalPrompter(bufio.NewReader(strings.NewReader(tc.input)), &out)

			cfg, err := p.PromptUsage(context.Background(), spell, defaults)
			require.NoError(t, err)
			assert.Contains(t, out.String(), "Using Fireball")
			if tc.cancelled {
				assert.Nil(t, cfg)
				return
			}
			assert.Equal(t, tc.expected, cfg)
		})
	}

	assert.Equal(t, "spell3", defaults.SlotLevel, "defaults are not modified")
}

func TestOverridesFromFlags(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "use"}
		cmd.Flags().Bool("consume-slot", false, "")
		cmd.Flags().Bool("consume-resource", false, "")
		cmd.Flags().Bool("consume-quantity", false, "")
		cmd.Flags().Bool("consume-recharge", false, "")
		cmd.Flags().Bool("consume-uses", false, "")
		cmd.Flags().Bool("template", false, "")
		cmd.Flags().String("slot", "", "")
		cmd.Flags().Int("amount", 0, "")
		return cmd
	}

	t.Run("untouched flags stay unset", func(t *testing.T) {
		o, err := overridesFromFlags(newCmd())
		require.NoError(t, err)
		assert.Equal(t, &usage.Overrides{}, o)
	})

	t.Run("explicit values", func(t *testing.T) {
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Parse([]string{"--consume-slot=false", "--slot", "pact", "--amount", "-1"}))

		o, err := overridesFromFlags(cmd)
		require.NoError(t, err)
		require.NotNil(t, o.ConsumeSpellSlot)
		assert.False(t, *o.ConsumeSpellSlot)
		assert.Equal(t, "pact", *o.SlotLevel)
		assert.Equal(t, -1, *o.ResourceAmount)
		assert.Nil(t, o.ConsumeResource)
	})
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, setupLogging("debug"))
	assert.Error(t, setupLogging("loud"))
}

func TestRunUse(t *testing.T) {
	ctx := context.Background()
	input := &item.UseInput{ActorID: "archer", ItemID: "potion", FastForward: true}

	t.Run("prints the consumption", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		items := itemmock.NewMockService(ctrl)
		items.EXPECT().Use(ctx, input).Return(&item.UseOutput{
			UsageID:     "use_1",
			Config:      &usage.Config{ConsumeQuantity: true},
			Consumption: &usage.Consumption{ItemID: "potion", ActorID: "archer", DeleteItem: true},
			DeletedItem: true,
		}, nil)

		var out bytes.Buffer
		require.NoError(t, runUse(ctx, items, input, &out))
		assert.Contains(t, out.String(), `"usageId": "use_1"`)
		assert.Contains(t, out.String(), `"deleted": true`)
		assert.Contains(t, out.String(), `"consumeQuantity": true`)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		items := itemmock.NewMockService(ctrl)
		items.EXPECT().Use(ctx, input).Return(&item.UseOutput{Cancelled: true}, nil)

		var out bytes.Buffer
		require.NoError(t, runUse(ctx, items, input, &out))
		assert.Equal(t, "Cancelled\n", out.String())
	})

	t.Run("failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		items := itemmock.NewMockService(ctrl)
		items.EXPECT().Use(ctx, input).Return(nil, errors.FailedPrecondition("Potion has no uses remaining"))

		var out bytes.Buffer
		err := runUse(ctx, items, input, &out)
		require.Error(t, err)
		assert.True(t, errors.IsFailedPrecondition(err))
		assert.Empty(t, out.String())
	})
}
