package formula

import (
	"strconv"
	"strings"
)

// Expr is a sum of products: "1d8 + @mod - 1"
type Expr struct {
	Head *Product     `parser:"@@"`
	Tail []*OpProduct `parser:"@@*"`
}

// OpProduct is an additive operator and its right hand side
type OpProduct struct {
	Op      string   `parser:"@(\"+\" | \"-\")"`
	Product *Product `parser:"@@"`
}

// Product is a chain of multiplicative operations
type Product struct {
	Head *Unary     `parser:"@@"`
	Tail []*OpUnary `parser:"@@*"`
}

// OpUnary is a multiplicative operator and its right hand side
type OpUnary struct {
	Op    string `parser:"@(\"*\" | \"/\" | \"%\")"`
	Unary *Unary `parser:"@@"`
}

// Unary is an optionally negated primary
type Unary struct {
	Neg     bool     `parser:"@\"-\"?"`
	Primary *Primary `parser:"@@"`
}

// Primary is a single term with an optional [flavor] annotation
type Primary struct {
	Dice   *string  `parser:"(  @Dice"`
	Number *float64 `parser:" | @Number"`
	Ref    *string  `parser:" | @Ref"`
	Call   *Call    `parser:" | @@"`
	Group  *Expr    `parser:" | \"(\" @@ \")\" )"`
	Flavor string   `parser:"@Flavor?"`
}

// Call is a math function such as floor(@level / 2)
type Call struct {
	Name string  `parser:"@Ident \"(\""`
	Args []*Expr `parser:"( @@ ( \",\" @@ )* )? \")\""`
}

// String renders the expression with normalized spacing
func (e *Expr) String() string {
	var sb strings.Builder
	sb.WriteString(e.Head.String())
	for _, t := range e.Tail {
		sb.WriteString(" ")
		sb.WriteString(t.Op)
		sb.WriteString(" ")
		sb.WriteString(t.Product.String())
	}
	return sb.String()
}

func (p *Product) String() string {
	var sb strings.Builder
	sb.WriteString(p.Head.String())
	for _, t := range p.Tail {
		sb.WriteString(" ")
		sb.WriteString(t.Op)
		sb.WriteString(" ")
		sb.WriteString(t.Unary.String())
	}
	return sb.String()
}

func (u *Unary) String() string {
	if u.Neg {
		return "-" + u.Primary.String()
	}
	return u.Primary.String()
}

func (p *Primary) String() string {
	var s string
	switch {
	case p.Dice != nil:
		s = *p.Dice
	case p.Number != nil:
		s = FormatNumber(*p.Number)
	case p.Ref != nil:
		s = *p.Ref
	case p.Call != nil:
		args := make([]string, len(p.Call.Args))
		for i, a := range p.Call.Args {
			args[i] = a.String()
		}
		s = p.Call.Name + "(" + strings.Join(args, ", ") + ")"
	case p.Group != nil:
		s = "(" + p.Group.String() + ")"
	}
	return s + p.Flavor
}

// HasDice reports whether any term rolls dice
func (e *Expr) HasDice() bool {
	found := false
	e.walk(func(p *Primary) {
		if p.Dice != nil {
			found = true
		}
	})
	return found
}

// Refs returns the @references in the expression without the leading "@"
func (e *Expr) Refs() []string {
	var refs []string
	e.walk(func(p *Primary) {
		if p.Ref != nil {
			refs = append(refs, strings.TrimPrefix(*p.Ref, "@"))
		}
	})
	return refs
}

func (e *Expr) walk(fn func(*Primary)) {
	e.Head.walk(fn)
	for _, t := range e.Tail {
		t.Product.walk(fn)
	}
}

func (p *Product) walk(fn func(*Primary)) {
	p.Head.Primary.walk(fn)
	for _, t := range p.Tail {
		t.Unary.Primary.walk(fn)
	}
}

func (p *Primary) walk(fn func(*Primary)) {
	fn(p)
	switch {
	case p.Call != nil:
		for _, a := range p.Call.Args {
			a.walk(fn)
		}
	case p.Group != nil:
		p.Group.walk(fn)
	}
}

// terms splits the top level sum into signed products
func (e *Expr) terms() []signedProduct {
	terms := []signedProduct{{neg: false, product: e.Head}}
	for _, t := range e.Tail {
		terms = append(terms, signedProduct{neg: t.Op == "-", product: t.Product})
	}
	return terms
}

type signedProduct struct {
	neg     bool
	product *Product
}

// FormatNumber renders a number without a trailing ".0" for integers
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
