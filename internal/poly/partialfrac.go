package poly

import "symmetrica/internal/rational"

// Term is one summand of a partial fraction decomposition: either
// A / (x - Root)^Power (when Power > 0 and Remainder is the zero
// polynomial) or, for the final unfactored leftover, RemainderNumerator /
// Remainder (Numerator/Root/Power unused, Remainder nonzero).
type Term struct {
	Numerator          rational.Q
	Root               rational.Q
	Power              int
	Remainder          Polynomial
	RemainderNumerator Polynomial
}

// Decompose returns num/den as a sum of partial-fraction Terms plus a
// (possibly zero) polynomial whole part from polynomial long division, per
// spec.md §4.4: distinct rational roots of den each contribute A_i/(x-r_i),
// repeated roots contribute one term per power up to their multiplicity,
// and whatever of den does not factor over Q is left as a single
// unfactored term num'/den'.
func Decompose(num, den Polynomial) (whole Polynomial, terms []Term, err error) {
	whole, rem, err := DivRem(num, den)
	if err != nil {
		return Polynomial{}, nil, err
	}
	roots, irreducible := Factor(den)

	if len(roots) == 0 {
		if rem.IsZero() {
			return whole, nil, nil
		}
		return whole, []Term{{Remainder: den, RemainderNumerator: rem, Power: 0}}, nil
	}

	// Build the full set of linear factors (x-r_i)^{k_i} and solve for each
	// numerator A_i via the cover-up method: evaluate rem / (den / (x-r_i)^{k_i})
	// at x = r_i after deflating the other factors out, one power at a time
	// by successive deflation (works cleanly for simple roots; for repeated
	// roots the highest power's numerator is solved by cover-up and the
	// remaining powers by successive subtraction).
	remaining := rem
	denomFactor := den
	for _, rf := range roots {
		for k := rf.Multiplicity; k >= 1; k-- {
			lf := linearFactor(rf.Root)
			powFactor := lf
			for i := 1; i < k; i++ {
				powFactor, err = Mul(powFactor, lf)
				if err != nil {
					return Polynomial{}, nil, err
				}
			}
			cofactor, _, err := DivRem(denomFactor, powFactor)
			if err != nil {
				return Polynomial{}, nil, err
			}
			coVal, err := Eval(cofactor, rf.Root)
			if err != nil {
				return Polynomial{}, nil, err
			}
			numVal, err := Eval(remaining, rf.Root)
			if err != nil {
				return Polynomial{}, nil, err
			}
			if rational.IsZero(coVal) {
				continue
			}
			a, err := rational.Div(numVal, coVal)
			if err != nil {
				return Polynomial{}, nil, err
			}
			terms = append(terms, Term{Numerator: a, Root: rf.Root, Power: k})

			// Subtract a * cofactor / powFactor's contribution from remaining
			// before moving to the next lower power of the same root: remaining
			// -= a * cofactor, then remaining will be divided by lf once more
			// as denomFactor deflates.
			scaled, err := ScaleQ(a, cofactor)
			if err != nil {
				return Polynomial{}, nil, err
			}
			remaining, err = Sub(remaining, scaled)
			if err != nil {
				return Polynomial{}, nil, err
			}
			denomFactor, _, err = DivRem(denomFactor, lf)
			if err != nil {
				return Polynomial{}, nil, err
			}
			remaining, _, err = DivRem(remaining, lf)
			if err != nil {
				return Polynomial{}, nil, err
			}
		}
	}

	if !irreducible.IsZero() && irreducible.Degree() >= 1 {
		terms = append(terms, Term{Remainder: irreducible, RemainderNumerator: remaining})
	}

	return whole, terms, nil
}
