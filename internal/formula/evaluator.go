package formula

import (
	"math"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

//go:generate mockgen -destination=mock/mock_evaluator.go -package=formulamock github.com/KirkDiggler/rpg-items/internal/formula Evaluator

// Evaluator resolves formulas against roll data
type Evaluator interface {
	// Evaluate replaces references and folds the formula into a number. It
	// fails for formulas that roll dice.
	Evaluate(formula string, data Data) (*Result, error)

	// Simplify folds the deterministic terms of a formula into one constant
	// and keeps dice terms as written. References must already be replaced.
	Simplify(formula string) (string, error)
}

// Result of a deterministic evaluation
type Result struct {
	Value float64

	// Missing lists references that had no data and were read as 0
	Missing []string
}

// CELEvaluator folds arithmetic through a CEL program. Programs are cached
// by source so repeated preparation passes don't recompile.
type CELEvaluator struct {
	env      *cel.Env
	programs sync.Map
}

// NewEvaluator creates a CEL environment with the math functions formulas
// may call: floor, ceil, round, trunc, abs, min, max and fmod.
func NewEvaluator() (*CELEvaluator, error) {
	env, err := cel.NewEnv(
		unaryMath("floor", math.Floor),
		unaryMath("ceil", math.Ceil),
		unaryMath("round", func(v float64) float64 { return math.Floor(v + 0.5) }),
		unaryMath("trunc", math.Trunc),
		unaryMath("abs", math.Abs),
		binaryMath("min", math.Min),
		binaryMath("max", math.Max),
		binaryMath("fmod", math.Mod),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create CEL environment")
	}

	return &CELEvaluator{env: env}, nil
}

func unaryMath(name string, fn func(float64) float64) cel.EnvOption {
	return cel.Function(name,
		cel.Overload(name+"_double",
			[]*cel.Type{cel.DoubleType},
			cel.DoubleType,
			cel.UnaryBinding(func(val ref.Val) ref.Val {
				return types.Double(fn(float64(val.(types.Double))))
			}),
		),
	)
}

func binaryMath(name string, fn func(float64, float64) float64) cel.EnvOption {
	return cel.Function(name,
		cel.Overload(name+"_double_double",
			[]*cel.Type{cel.DoubleType, cel.DoubleType},
			cel.DoubleType,
			cel.BinaryBinding(func(lhs, rhs ref.Val) ref.Val {
				return types.Double(fn(float64(lhs.(types.Double)), float64(rhs.(types.Double))))
			}),
		),
	)
}

// Evaluate implements Evaluator
func (e *CELEvaluator) Evaluate(formula string, data Data) (*Result, error) {
	replaced, missing := Replace(formula, data)

	expr, err := Parse(replaced)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse formula").
			WithMeta("formula", formula)
	}
	if expr.HasDice() {
		return nil, errors.InvalidArgumentf("formula %q rolls dice", formula)
	}

	value, err := e.eval(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to evaluate %q", formula)
	}

	return &Result{Value: value, Missing: missing}, nil
}

func (e *CELEvaluator) eval(expr *Expr) (float64, error) {
	src, err := celSource(expr)
	if err != nil {
		return 0, err
	}

	prg, err := e.program(src)
	if err != nil {
		return 0, err
	}

	out, _, err := prg.Eval(map[string]any{})
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeInvalidArgument, "CEL eval error")
	}

	var value float64
	switch v := out.Value().(type) {
	case float64:
		value = v
	case int64:
		value = float64(v)
	default:
		return 0, errors.InvalidArgumentf("formula evaluated to %T", v)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.InvalidArgument("formula does not evaluate to a finite number")
	}
	return value, nil
}

func (e *CELEvaluator) program(src string) (cel.Program, error) {
	if cached, ok := e.programs.Load(src); ok {
		return cached.(cel.Program), nil
	}

	ast, issues := e.env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, errors.WrapWithCode(issues.Err(), errors.CodeInvalidArgument, "CEL compile error")
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "CEL program error")
	}

	e.programs.Store(src, prg)
	return prg, nil
}

// celSource renders a dice free expression as CEL. Every number becomes a
// double literal so integer and fractional terms mix freely.
func celSource(expr *Expr) (string, error) {
	var sb strings.Builder
	if err := writeExpr(&sb, expr); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeExpr(sb *strings.Builder, e *Expr) error {
	if err := writeProduct(sb, e.Head); err != nil {
		return err
	}
	for _, t := range e.Tail {
		sb.WriteString(" " + t.Op + " ")
		if err := writeProduct(sb, t.Product); err != nil {
			return err
		}
	}
	return nil
}

func writeProduct(sb *strings.Builder, p *Product) error {
	// fmod is a call, so the operands to its left are accumulated first
	var acc strings.Builder
	if err := writeUnary(&acc, p.Head); err != nil {
		return err
	}
	for _, t := range p.Tail {
		var rhs strings.Builder
		if err := writeUnary(&rhs, t.Unary); err != nil {
			return err
		}
		if t.Op == "%" {
			s := "fmod(" + acc.String() + ", " + rhs.String() + ")"
			acc.Reset()
			acc.WriteString(s)
			continue
		}
		acc.WriteString(" " + t.Op + " " + rhs.String())
	}
	sb.WriteString(acc.String())
	return nil
}

func writeUnary(sb *strings.Builder, u *Unary) error {
	if u.Neg {
		sb.WriteString("-")
	}
	return writePrimary(sb, u.Primary)
}

func writePrimary(sb *strings.Builder, p *Primary) error {
	switch {
	case p.Number != nil:
		s := FormatNumber(*p.Number)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		sb.WriteString(s)
	case p.Group != nil:
		sb.WriteString("(")
		if err := writeExpr(sb, p.Group); err != nil {
			return err
		}
		sb.WriteString(")")
	case p.Call != nil:
		return writeCall(sb, p.Call)
	case p.Dice != nil:
		return errors.InvalidArgumentf("dice term %s cannot be evaluated", *p.Dice)
	case p.Ref != nil:
		return errors.InvalidArgumentf("unresolved reference %s", *p.Ref)
	}
	return nil
}

func writeCall(sb *strings.Builder, c *Call) error {
	name := strings.ToLower(c.Name)
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		var arg strings.Builder
		if err := writeExpr(&arg, a); err != nil {
			return err
		}
		args[i] = arg.String()
	}

	// min and max take any number of arguments; CEL overloads take two
	if (name == "min" || name == "max") && len(args) > 2 {
		folded := args[len(args)-1]
		for i := len(args) - 2; i >= 0; i-- {
			folded = name + "(" + args[i] + ", " + folded + ")"
		}
		sb.WriteString(folded)
		return nil
	}

	sb.WriteString(name + "(" + strings.Join(args, ", ") + ")")
	return nil
}
