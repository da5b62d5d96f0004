// Package scaling adds extra damage to spells cast by higher level casters or
// from higher level slots.
package scaling

import (
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-items/internal/entities"
	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/formula"
)

// Scale adds formula to the damage parts times times. When the scaled formula
// is a single dice term like the leading die of the first part the counts are
// summed ("1d8" and "2d8" make "3d8"); otherwise it is appended to the first
// part. The input slice is never modified.
func Scale(parts []string, scaling string, times int) ([]string, error) {
	out := slices.Clone(parts)
	if times <= 0 || strings.TrimSpace(scaling) == "" {
		return out, nil
	}

	scaled, err := formula.Parse(scaling)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse scaling formula")
	}
	scaled.MultiplyDice(times)

	if len(out) == 0 {
		return []string{scaled.String()}, nil
	}

	if die, ok := scaled.SingleDie(); ok {
		if merged, ok := merge(out[0], die); ok {
			out[0] = merged
			return out, nil
		}
	}

	out[0] = out[0] + " + " + scaled.String()
	return out, nil
}

func merge(part string, die formula.Die) (string, bool) {
	expr, err := formula.Parse(part)
	if err != nil {
		return "", false
	}
	primary, lead, ok := expr.LeadingDie()
	if !ok || !lead.SameKind(die) {
		return "", false
	}
	lead.Number += die.Number
	primary.SetDie(lead)
	return expr.String(), true
}

// CantripAddCount is how many times a cantrip scales at a caster level:
// once at 5th, twice at 11th and three times at 17th
func CantripAddCount(level int) int {
	if level < 0 {
		return 0
	}
	return (level + 1) / 6
}

// ScaleCantrip scales cantrip damage for the caster level. Without a scaling
// formula the whole base damage is added again.
func ScaleCantrip(parts []string, scaling string, level int) ([]string, error) {
	add := CantripAddCount(level)
	if add == 0 {
		return slices.Clone(parts), nil
	}
	if strings.TrimSpace(scaling) == "" {
		scaling = strings.Join(parts, " + ")
	}
	return Scale(parts, scaling, add)
}

// ScaleSpell scales spell damage once per slot level above the base level
func ScaleSpell(parts []string, baseLevel, castLevel int, scaling string) ([]string, error) {
	return Scale(parts, scaling, max(castLevel-baseLevel, 0))
}

// CasterLevel is the level cantrips scale with: the total class level of a
// character or the spellcasting level of an npc
func CasterLevel(actor *entities.Actor) int {
	if actor == nil {
		return 0
	}
	if actor.Type == entities.ActorNPC {
		return actor.System.Details.SpellLevel
	}
	return actor.System.Details.Level
}
