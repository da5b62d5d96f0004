// Package advancement indexes the leveling rules attached to an item.
//
// Raw records come straight from stored documents and may contain stale or
// foreign entries. Anything that doesn't decode into a recognised advancement
// is skipped with a debug log; it is never an error.
package advancement

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Advancement kinds
const (
	KindHitPoints               = "HitPoints"
	KindAbilityScoreImprovement = "AbilityScoreImprovement"
	KindSize                    = "Size"
	KindTrait                   = "Trait"
	KindItemGrant               = "ItemGrant"
	KindSubclass                = "Subclass"
	KindItemChoice              = "ItemChoice"
	KindScaleValue              = "ScaleValue"
)

var defaultTitles = map[string]string{
	KindHitPoints:               "Hit Points",
	KindAbilityScoreImprovement: "Ability Score Improvement",
	KindSize:                    "Size",
	KindTrait:                   "Traits",
	KindItemGrant:               "Grant Items",
	KindSubclass:                "Subclass",
	KindItemChoice:              "Choose Items",
	KindScaleValue:              "Scale Value",
}

// IsKnownKind reports whether kind is a recognised advancement kind
func IsKnownKind(kind string) bool {
	_, ok := defaultTitles[kind]
	return ok
}

// Advancement is one decoded leveling rule
type Advancement struct {
	ID            string          `json:"_id"`
	Type          string          `json:"type"`
	Title         string          `json:"title,omitempty"`
	Level         *int            `json:"level,omitempty"`
	Levels        []int           `json:"levels,omitempty"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
	Value         json.RawMessage `json:"value,omitempty"`

	levels []int
}

// AppliedLevels returns the levels the advancement applies at. Empty means
// it still needs configuration.
func (a *Advancement) AppliedLevels() []int {
	return a.levels
}

// DisplayTitle returns the title or the default title for the kind
func (a *Advancement) DisplayTitle() string {
	if a.Title != "" {
		return a.Title
	}
	return defaultTitles[a.Type]
}

// SortKey is the string the advancement sorts by inside a level bucket
func (a *Advancement) SortKey(order int) string {
	return fmt.Sprintf("%04d %s", order, a.DisplayTitle())
}

type configuration struct {
	Levels []int                      `json:"levels"`
	Scale  map[string]json.RawMessage `json:"scale"`
}

// resolveLevels works out the applicable levels for the kind
func (a *Advancement) resolveLevels(maxLevel int) {
	var cfg configuration
	if len(a.Configuration) > 0 {
		// a bad configuration block only means no configured levels
		_ = json.Unmarshal(a.Configuration, &cfg)
	}

	switch {
	case a.Type == KindHitPoints:
		a.levels = make([]int, 0, maxLevel)
		for l := 1; l <= maxLevel; l++ {
			a.levels = append(a.levels, l)
		}
	case a.Type == KindScaleValue:
		for key := range cfg.Scale {
			if l, err := strconv.Atoi(key); err == nil {
				a.levels = append(a.levels, l)
			}
		}
		slices.Sort(a.levels)
	case len(a.Levels) > 0:
		a.levels = slices.Clone(a.Levels)
	case a.Level != nil:
		a.levels = []int{*a.Level}
	default:
		a.levels = slices.Clone(cfg.Levels)
	}

	slices.Sort(a.levels)
	a.levels = slices.Compact(a.levels)
}

// Decode parses a raw record. ok is false when the record is not a valid
// advancement.
func Decode(raw json.RawMessage, maxLevel int) (*Advancement, bool) {
	var a Advancement
	if err := json.Unmarshal(raw, &a); err != nil {
		slog.Debug("skipping undecodable advancement", "error", err)
		return nil, false
	}
	if strings.TrimSpace(a.ID) == "" {
		slog.Debug("skipping advancement without id", "type", a.Type)
		return nil, false
	}
	if !IsKnownKind(a.Type) {
		slog.Debug("skipping advancement of unknown type", "id", a.ID, "type", a.Type)
		return nil, false
	}

	a.resolveLevels(maxLevel)
	return &a, true
}
