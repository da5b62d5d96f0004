package formula

import (
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

// Simplify implements Evaluator. Dice terms and terms with unresolved
// references keep their place; everything else is summed into one constant
// written last, so "1d20 + 2 + 3" becomes "1d20 + 5". Simplifying an already
// simplified formula returns it unchanged.
func (e *CELEvaluator) Simplify(formula string) (string, error) {
	if strings.TrimSpace(formula) == "" {
		return "", nil
	}

	expr, err := Parse(formula)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse formula").
			WithMeta("formula", formula)
	}

	var (
		kept     []string
		constant float64
	)
	for _, term := range expr.terms() {
		if term.product.symbolic() {
			neg := term.neg != term.product.Head.Neg
			kept = append(kept, sign(neg, len(kept) == 0)+term.product.unsigned())
			continue
		}

		v, err := e.eval(&Expr{Head: term.product})
		if err != nil {
			return "", err
		}
		if term.neg {
			v = -v
		}
		constant += v
	}

	constant = math.Round(constant*1e6) / 1e6
	if constant == 0 {
		constant = 0
	}

	if len(kept) == 0 {
		return FormatNumber(constant), nil
	}

	out := strings.Join(kept, "")
	switch {
	case constant > 0:
		out += " + " + FormatNumber(constant)
	case constant < 0:
		out += " - " + FormatNumber(-constant)
	}
	return out, nil
}

func sign(neg, first bool) string {
	switch {
	case first && neg:
		return "-"
	case first:
		return ""
	case neg:
		return " - "
	default:
		return " + "
	}
}

// symbolic reports whether the product can't be folded into a number
func (p *Product) symbolic() bool {
	found := false
	p.walk(func(pr *Primary) {
		if pr.Dice != nil || pr.Ref != nil {
			found = true
		}
	})
	return found
}

// unsigned renders the product without the negation of its first factor
func (p *Product) unsigned() string {
	var sb strings.Builder
	sb.WriteString(p.Head.Primary.String())
	for _, t := range p.Tail {
		sb.WriteString(" " + t.Op + " " + t.Unary.String())
	}
	return sb.String()
}
