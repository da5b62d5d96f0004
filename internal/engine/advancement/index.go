package advancement

import (
	"encoding/json"
	"slices"
	"strings"
)

// UnknownSortOrder sorts kinds missing from the order table after all others
const UnknownSortOrder = 9999

// BuildInput contains the data needed to index an item's advancements
type BuildInput struct {
	// ItemKind is the owning item's type; classes and subclasses have no
	// level 0 bucket
	ItemKind string
	Raw      []json.RawMessage
	MaxLevel int

	// SortOrder is the per kind order used inside level buckets
	SortOrder map[string]int
}

// Index is the lookup structure over one item's advancements
type Index struct {
	ByID                 map[string]*Advancement
	ByLevel              map[int][]*Advancement
	ByKind               map[string][]*Advancement
	NeedingConfiguration []*Advancement

	minLevel int
	maxLevel int
}

// MinLevel returns the lowest level with a bucket
func MinLevel(itemKind string) int {
	if itemKind == "class" || itemKind == "subclass" {
		return 1
	}
	return 0
}

// Build indexes the raw records in order. Levels outside the bucket range are
// dropped from ByLevel but the advancement is still reachable by id and kind.
func Build(input *BuildInput) *Index {
	idx := &Index{
		ByID:     make(map[string]*Advancement),
		ByLevel:  make(map[int][]*Advancement),
		ByKind:   make(map[string][]*Advancement),
		minLevel: MinLevel(input.ItemKind),
		maxLevel: input.MaxLevel,
	}
	for l := idx.minLevel; l <= idx.maxLevel; l++ {
		idx.ByLevel[l] = []*Advancement{}
	}

	for _, raw := range input.Raw {
		a, ok := Decode(raw, input.MaxLevel)
		if !ok {
			continue
		}

		idx.ByID[a.ID] = a
		idx.ByKind[a.Type] = append(idx.ByKind[a.Type], a)

		if len(a.levels) == 0 {
			idx.NeedingConfiguration = append(idx.NeedingConfiguration, a)
			continue
		}
		for _, level := range a.levels {
			if bucket, ok := idx.ByLevel[level]; ok {
				idx.ByLevel[level] = append(bucket, a)
			}
		}
	}

	for level, bucket := range idx.ByLevel {
		slices.SortStableFunc(bucket, func(lhs, rhs *Advancement) int {
			return strings.Compare(
				lhs.SortKey(sortOrder(input.SortOrder, lhs.Type)),
				rhs.SortKey(sortOrder(input.SortOrder, rhs.Type)),
			)
		})
		idx.ByLevel[level] = bucket
	}

	return idx
}

func sortOrder(orders map[string]int, kind string) int {
	if order, ok := orders[kind]; ok {
		return order
	}
	return UnknownSortOrder
}

// Levels returns the bucketed levels of an advancement in ascending order
func (idx *Index) Levels(id string) []int {
	a, ok := idx.ByID[id]
	if !ok {
		return nil
	}
	var levels []int
	for _, l := range a.levels {
		if l >= idx.minLevel && l <= idx.maxLevel {
			levels = append(levels, l)
		}
	}
	return levels
}

// ForLevelRange returns the advancements applying anywhere in [from, to], each
// once, in level then bucket order
func (idx *Index) ForLevelRange(from, to int) []*Advancement {
	from = max(from, idx.minLevel)
	to = min(to, idx.maxLevel)

	var out []*Advancement
	seen := make(map[string]bool)
	for l := from; l <= to; l++ {
		for _, a := range idx.ByLevel[l] {
			if seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			out = append(out, a)
		}
	}
	return out
}
