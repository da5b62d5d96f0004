package advancement_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-items/internal/config"
	"github.com/KirkDiggler/rpg-items/internal/engine/advancement"
)

func raw(t *testing.T, docs ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		require.True(t, json.Valid([]byte(d)), d)
		out[i] = json.RawMessage(d)
	}
	return out
}

func build(t *testing.T, kind string, docs ...string) *advancement.Index {
	t.Helper()
	return advancement.Build(&advancement.BuildInput{
		ItemKind:  kind,
		Raw:       raw(t, docs...),
		MaxLevel:  20,
		SortOrder: config.Defaults().AdvancementOrder,
	})
}

func ids(advs []*advancement.Advancement) []string {
	out := make([]string, len(advs))
	for i, a := range advs {
		out[i] = a.ID
	}
	return out
}

func TestBucketsByLevel(t *testing.T) {
	idx := build(t, "feat",
		`{"_id": "grant", "type": "ItemGrant", "levels": [3, 5]}`,
		`{"_id": "choice", "type": "ItemChoice"}`,
	)

	assert.Equal(t, []string{"grant"}, ids(idx.ByLevel[3]))
	assert.Equal(t, []string{"grant"}, ids(idx.ByLevel[5]))
	for level, bucket := range idx.ByLevel {
		if level == 3 || level == 5 {
			continue
		}
		assert.Empty(t, bucket, "level %d", level)
	}

	assert.Equal(t, []string{"choice"}, ids(idx.NeedingConfiguration))
	assert.Equal(t, []int{3, 5}, idx.Levels("grant"))
	assert.Nil(t, idx.Levels("missing"))
}

func TestBucketRangeByItemKind(t *testing.T) {
	class := build(t, "class")
	_, hasZero := class.ByLevel[0]
	assert.False(t, hasZero)
	assert.Len(t, class.ByLevel, 20)

	feat := build(t, "feat", `{"_id": "zero", "type": "Trait", "level": 0}`)
	assert.Len(t, feat.ByLevel, 21)
	assert.Equal(t, []string{"zero"}, ids(feat.ByLevel[0]))
}

func TestOutOfRangeLevelsDropped(t *testing.T) {
	idx := build(t, "class", `{"_id": "late", "type": "ItemGrant", "level": 25}`)

	assert.Contains(t, idx.ByID, "late")
	assert.Empty(t, idx.NeedingConfiguration)
	assert.Empty(t, idx.Levels("late"))
	for _, bucket := range idx.ByLevel {
		assert.Empty(t, bucket)
	}
}

func TestMalformedEntriesSkipped(t *testing.T) {
	idx := build(t, "class",
		`{"_id": "ok", "type": "ItemGrant", "level": 1}`,
		`{"type": "ItemGrant", "level": 1}`,
		`{"_id": "legacy", "type": "Homebrew", "level": 1}`,
		`["not", "an", "object"]`,
	)

	assert.Len(t, idx.ByID, 1)
	assert.Equal(t, []string{"ok"}, ids(idx.ByLevel[1]))
}

func TestHitPointsAndScaleValueLevels(t *testing.T) {
	idx := build(t, "class",
		`{"_id": "hp", "type": "HitPoints"}`,
		`{"_id": "dice", "type": "ScaleValue", "configuration": {"scale": {"1": {"value": 2}, "5": {"value": 3}}}}`,
	)

	assert.Len(t, idx.Levels("hp"), 20)
	assert.Equal(t, []int{1, 5}, idx.Levels("dice"))
	assert.Equal(t, []string{"hp", "dice"}, ids(idx.ByLevel[5]))
}

func TestSortWithinLevel(t *testing.T) {
	idx := build(t, "class",
		`{"_id": "scale", "type": "ScaleValue", "configuration": {"scale": {"1": {}}}}`,
		`{"_id": "grant-b", "type": "ItemGrant", "title": "Beta", "level": 1}`,
		`{"_id": "grant-a", "type": "ItemGrant", "title": "Alpha", "level": 1}`,
		`{"_id": "hp", "type": "HitPoints"}`,
		`{"_id": "grant-a2", "type": "ItemGrant", "title": "Alpha", "level": 1}`,
	)

	assert.Equal(t,
		[]string{"hp", "grant-a", "grant-a2", "grant-b", "scale"},
		ids(idx.ByLevel[1]),
		"kind order first, then title, ties keep insertion order",
	)
	assert.Equal(t, []string{"grant-b", "grant-a", "grant-a2"}, ids(idx.ByKind["ItemGrant"]))
}

func TestForLevelRange(t *testing.T) {
	idx := build(t, "class",
		`{"_id": "a", "type": "ItemGrant", "levels": [2, 3]}`,
		`{"_id": "b", "type": "Subclass", "level": 3}`,
		`{"_id": "c", "type": "ItemGrant", "level": 6}`,
	)

	assert.Equal(t, []string{"a", "b"}, ids(idx.ForLevelRange(0, 4)))
	assert.Equal(t, []string{"c"}, ids(idx.ForLevelRange(5, 30)))
}
