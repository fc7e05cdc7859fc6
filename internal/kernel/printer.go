package kernel

import "strings"

// precedence levels for the deterministic infix pretty-printer: Add is
// loosest, then Mul, then Pow, then function application/atoms.
const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

// Print renders id as a deterministic, unambiguous infix string: fixed
// precedence + < * < ^ < function application, canonical-order children,
// and parenthesization wherever a child's precedence is looser than its
// parent's. A coefficient of -1 arising from canonicalization prints
// literally as "(-1) * expr" rather than as a unary minus (spec.md §4.2).
// A negative literal binds like a sum and a fraction n/d binds like a
// product, so either is parenthesized as a factor or exponent where needed.
func (s *Store) Print(id ExprId) string {
	var b strings.Builder
	s.print(&b, id, 0)
	return b.String()
}

func (s *Store) print(b *strings.Builder, id ExprId, parentPrec int) {
	n := s.Node(id)
	switch n.Op {
	case OpInteger:
		own := precAtom
		if n.IntVal < 0 {
			own = precAdd
		}
		wrap(b, parentPrec, own, func() { writeIntDecimal(b, n.IntVal) })
	case OpRational:
		own := precMul
		if n.RatVal.Numer < 0 {
			own = precAdd
		}
		wrap(b, parentPrec, own, func() {
			writeIntDecimal(b, n.RatVal.Numer)
			b.WriteByte('/')
			writeIntDecimal(b, n.RatVal.Denom)
		})
	case OpSymbol:
		b.WriteString(n.Name)
	case OpAdd:
		wrap(b, parentPrec, precAdd, func() {
			for i, c := range n.Children {
				if i > 0 {
					b.WriteString(" + ")
				}
				s.print(b, c, precAdd)
			}
		})
	case OpMul:
		wrap(b, parentPrec, precMul, func() {
			for i, c := range n.Children {
				if i > 0 {
					b.WriteString(" * ")
				}
				s.print(b, c, precMul)
			}
		})
	case OpPow:
		wrap(b, parentPrec, precPow, func() {
			s.print(b, n.Children[0], precPow+1)
			b.WriteByte('^')
			s.print(b, n.Children[1], precPow+1)
		})
	case OpFunction:
		b.WriteString(n.Name)
		b.WriteByte('(')
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			s.print(b, c, precAdd)
		}
		b.WriteByte(')')
	case OpPiecewise:
		b.WriteString("piecewise(")
		pairs := s.PiecewisePairs(id)
		for i, p := range pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('(')
			s.print(b, p[0], precAdd)
			b.WriteString(" => ")
			s.print(b, p[1], precAdd)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	default:
		b.WriteString("?")
	}
}

// wrap parenthesizes body() when the child's own precedence is looser
// than what the parent context requires.
func wrap(b *strings.Builder, parentPrec, ownPrec int, body func()) {
	needsParens := ownPrec < parentPrec
	if needsParens {
		b.WriteByte('(')
	}
	body()
	if needsParens {
		b.WriteByte(')')
	}
}

func writeIntDecimal(b *strings.Builder, v int64) {
	if v < 0 {
		b.WriteByte('-')
		v = -v
	}
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	b.Write(digits[i:])
}
