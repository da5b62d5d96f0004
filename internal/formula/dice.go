package formula

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-items/internal/errors"
)

var dieRe = regexp.MustCompile(`^(\d*)[dD](\d+)(.*)$`)

// Die is a parsed dice term such as "2d6kh"
type Die struct {
	Number    int
	Faces     int
	Modifiers string
}

// ParseDie parses a dice token
func ParseDie(s string) (Die, error) {
	m := dieRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Die{}, errors.InvalidArgumentf("%q is not a dice term", s)
	}
	number := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Die{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "bad dice count")
		}
		number = n
	}
	faces, err := strconv.Atoi(m[2])
	if err != nil {
		return Die{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "bad die size")
	}
	return Die{Number: number, Faces: faces, Modifiers: m[3]}, nil
}

// String renders the die in "NdF" form
func (d Die) String() string {
	return strconv.Itoa(d.Number) + "d" + strconv.Itoa(d.Faces) + d.Modifiers
}

// SameKind reports whether two dice differ only in count
func (d Die) SameKind(other Die) bool {
	return d.Faces == other.Faces && d.Modifiers == other.Modifiers
}

// MultiplyDice multiplies the count of every dice term by n
func (e *Expr) MultiplyDice(n int) {
	e.walk(func(p *Primary) {
		if p.Dice == nil {
			return
		}
		d, err := ParseDie(*p.Dice)
		if err != nil {
			return
		}
		d.Number *= n
		s := d.String()
		p.Dice = &s
	})
}

// LeadingDie returns the first top level term when it is a bare,
// non negated dice term
func (e *Expr) LeadingDie() (*Primary, Die, bool) {
	u := e.Head.Head
	if u.Neg || u.Primary.Dice == nil {
		return nil, Die{}, false
	}
	d, err := ParseDie(*u.Primary.Dice)
	if err != nil {
		return nil, Die{}, false
	}
	return u.Primary, d, true
}

// SingleDie returns the die when the whole expression is one dice term
func (e *Expr) SingleDie() (Die, bool) {
	if len(e.Tail) > 0 || len(e.Head.Tail) > 0 {
		return Die{}, false
	}
	_, d, ok := e.LeadingDie()
	return d, ok
}

// SetDie replaces the dice token of a primary
func (p *Primary) SetDie(d Die) {
	s := d.String()
	p.Dice = &s
}

// DiceTerms returns every dice term in the expression in order
func (e *Expr) DiceTerms() []Die {
	var dice []Die
	e.walk(func(p *Primary) {
		if p.Dice == nil {
			return
		}
		if d, err := ParseDie(*p.Dice); err == nil {
			dice = append(dice, d)
		}
	})
	return dice
}

// EachDice calls fn for every dice term in order. fn may rewrite the primary,
// for example to replace the dice with their rolled total.
func (e *Expr) EachDice(fn func(p *Primary, d Die)) {
	e.walk(func(p *Primary) {
		if p.Dice == nil {
			return
		}
		if d, err := ParseDie(*p.Dice); err == nil {
			fn(p, d)
		}
	})
}
