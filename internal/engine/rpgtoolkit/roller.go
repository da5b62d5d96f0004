// Package rpgtoolkit connects the item engine to rpg-toolkit: dice rolling
// through dice.Roller, hook points through events.EventBus and core.Entity
// wrappers for items and actors.
package rpgtoolkit

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/formula"
)

//go:generate mockgen -destination=mock/mock_roll_engine.go -package=rpgtoolkitmock github.com/KirkDiggler/rpg-items/internal/engine/rpgtoolkit RollEngine

// RollEngine rolls formulas
type RollEngine interface {
	Roll(ctx context.Context, formula string, data formula.Data, opts *RollOptions) (*RollResult, error)
}

// RollOptions change how a formula is rolled
type RollOptions struct {
	Advantage    bool
	Disadvantage bool

	// CriticalThreshold is the lowest natural d20 that crits; 0 means 20
	CriticalThreshold int

	// Critical doubles the number of every dice term
	Critical bool
}

// TermResult is the outcome of one dice term
type TermResult struct {
	Die     string
	Results []int
	Kept    []int
	Total   int
}

// RollResult is the outcome of a roll
type RollResult struct {
	// Formula is the formula that was rolled after replacement and options
	Formula    string
	Total      int
	IsCritical bool
	IsFumble   bool
	Terms      []*TermResult
}

// RollerConfig contains the dependencies of a Roller
type RollerConfig struct {
	DiceRoller dice.Roller
	Evaluator  formula.Evaluator
}

// Validate checks that all required dependencies are provided
func (c *RollerConfig) Validate() error {
	if c.DiceRoller == nil {
		return errors.InvalidArgument("dice roller is required")
	}
	if c.Evaluator == nil {
		return errors.InvalidArgument("evaluator is required")
	}
	return nil
}

// Roller is the RollEngine backed by an rpg-toolkit dice roller
type Roller struct {
	dice      dice.Roller
	evaluator formula.Evaluator
}

// NewRoller creates a roller
func NewRoller(cfg *RollerConfig) (*Roller, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Roller{
		dice:      cfg.DiceRoller,
		evaluator: cfg.Evaluator,
	}, nil
}

var _ RollEngine = (*Roller)(nil)

// Roll replaces references, rolls every dice term and totals the result.
// Advantage and disadvantage turn the leading d20 into 2d20kh or 2d20kl and
// cancel each other out.
func (r *Roller) Roll(ctx context.Context, f string, data formula.Data, opts *RollOptions) (*RollResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "roll canceled")
	}
	if opts == nil {
		opts = &RollOptions{}
	}

	replaced, _ := formula.Replace(f, data)
	expr, err := formula.Parse(replaced)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse roll formula").
			WithMeta("formula", f)
	}

	if opts.Critical {
		expr.MultiplyDice(2)
	}
	if d20, die, ok := expr.LeadingDie(); ok && die.Faces == 20 && die.Number == 1 && die.Modifiers == "" {
		switch {
		case opts.Advantage && !opts.Disadvantage:
			d20.SetDie(formula.Die{Number: 2, Faces: 20, Modifiers: "kh"})
		case opts.Disadvantage && !opts.Advantage:
			d20.SetDie(formula.Die{Number: 2, Faces: 20, Modifiers: "kl"})
		}
	}

	result := &RollResult{Formula: expr.String()}

	var rollErr error
	firstD20 := true
	expr.EachDice(func(p *formula.Primary, die formula.Die) {
		if rollErr != nil {
			return
		}
		term, err := r.rollTerm(die)
		if err != nil {
			rollErr = err
			return
		}
		result.Terms = append(result.Terms, term)

		if die.Faces == 20 && firstD20 && len(term.Kept) > 0 {
			firstD20 = false
			threshold := opts.CriticalThreshold
			if threshold <= 0 {
				threshold = 20
			}
			natural := term.Kept[0]
			result.IsCritical = natural >= threshold
			result.IsFumble = natural == 1
		}

		total := float64(term.Total)
		p.Dice = nil
		p.Number = &total
	})
	if rollErr != nil {
		return nil, rollErr
	}

	res, err := r.evaluator.Evaluate(expr.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to total roll")
	}
	result.Total = int(res.Value)

	return result, nil
}

func (r *Roller) rollTerm(die formula.Die) (*TermResult, error) {
	term := &TermResult{Die: die.String()}
	if die.Number <= 0 {
		return term, nil
	}

	results, err := r.dice.RollN(die.Number, die.Faces)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", die)
	}
	term.Results = results
	term.Kept = applyModifiers(results, die.Modifiers)
	for _, v := range term.Kept {
		term.Total += v
	}
	return term, nil
}

// applyModifiers supports keep/drop highest/lowest and min/max clamps.
// Other modifiers are rolled as plain dice.
func applyModifiers(results []int, modifiers string) []int {
	kept := slices.Clone(results)
	for _, m := range splitModifiers(modifiers) {
		switch m.op {
		case "kh", "k":
			kept = keep(kept, m.count(1), true)
		case "kl":
			kept = keep(kept, m.count(1), false)
		case "dh":
			kept = keep(kept, len(kept)-m.count(1), false)
		case "dl":
			kept = keep(kept, len(kept)-m.count(1), true)
		case "min":
			for i, v := range kept {
				kept[i] = max(v, m.count(1))
			}
		case "max":
			for i, v := range kept {
				kept[i] = min(v, m.count(v))
			}
		}
	}
	return kept
}

// keep returns the n highest (or lowest) results in roll order
func keep(results []int, n int, highest bool) []int {
	n = max(0, min(n, len(results)))
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if highest {
			return results[b] - results[a]
		}
		return results[a] - results[b]
	})
	chosen := order[:n]
	slices.Sort(chosen)

	out := make([]int, 0, n)
	for _, i := range chosen {
		out = append(out, results[i])
	}
	return out
}

type modifier struct {
	op  string
	arg string
}

func (m modifier) count(def int) int {
	if m.arg == "" {
		return def
	}
	n, err := strconv.Atoi(m.arg)
	if err != nil {
		return def
	}
	return n
}

func splitModifiers(s string) []modifier {
	var mods []modifier
	for s != "" {
		i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
		if i < 0 {
			mods = append(mods, modifier{op: s})
			break
		}
		op := s[:i]
		rest := s[i:]
		j := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
		if j < 0 {
			j = len(rest)
		}
		mods = append(mods, modifier{op: op, arg: rest[:j]})
		s = rest[j:]
	}
	return mods
}
