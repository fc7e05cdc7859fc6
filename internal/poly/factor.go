package poly

import "symmetrica/internal/rational"

// RootFactor pairs a rational root with its multiplicity.
type RootFactor struct {
	Root         rational.Q
	Multiplicity int
}

// Factor extracts every rational root of p via the Rational Root Theorem
// (candidates p/q with p | constant term, q | leading coefficient, after
// clearing denominators), deflating by synthetic division on each hit,
// and returns the roots found plus whatever irreducible remainder is left
// (remainder.Degree() == 0 means p factored completely over Q).
func Factor(p Polynomial) ([]RootFactor, Polynomial) {
	var roots []RootFactor
	remaining := p
	for remaining.Degree() >= 1 {
		root, ok := findRationalRoot(remaining)
		if !ok {
			break
		}
		mult := 0
		for {
			q, r, err := DivRem(remaining, linearFactor(root))
			if err != nil || !r.IsZero() {
				break
			}
			remaining = q
			mult++
		}
		roots = append(roots, RootFactor{Root: root, Multiplicity: mult})
	}
	return roots, remaining
}

// linearFactor builds the monic polynomial (x - root).
func linearFactor(root rational.Q) Polynomial {
	return FromCoeffs([]rational.Q{rational.Neg(root), rational.One})
}

// findRationalRoot searches the Rational Root Theorem candidate set for a
// root of p, after clearing coefficient denominators to an integer
// polynomial.
func findRationalRoot(p Polynomial) (rational.Q, bool) {
	ip, scale := clearDenominators(p)
	if len(ip) < 2 {
		return rational.Zero, false
	}
	c0 := ip[0]
	cn := ip[len(ip)-1]
	if c0 == 0 {
		return rational.Zero, true
	}
	for _, pp := range divisors(absInt(c0)) {
		for _, qq := range divisors(absInt(cn)) {
			for _, sign := range []int64{1, -1} {
				cand, err := rational.Make(sign*pp, qq)
				if err != nil {
					continue
				}
				v, err := Eval(p, cand)
				if err != nil {
					continue
				}
				if rational.IsZero(v) {
					return cand, true
				}
			}
		}
	}
	_ = scale
	return rational.Zero, false
}

// clearDenominators scales p by the LCM of its coefficient denominators,
// returning the resulting integer coefficients (as int64) and the scale
// factor used.
func clearDenominators(p Polynomial) ([]int64, int64) {
	var denomLCM int64 = 1
	for _, c := range p.Coeffs {
		denomLCM = lcm(denomLCM, rational.Denom(c))
	}
	out := make([]int64, len(p.Coeffs))
	for i, c := range p.Coeffs {
		scaled, err := rational.Mul(c, rational.OfInt(denomLCM))
		if err != nil {
			continue
		}
		out[i] = rational.Numer(scaled)
	}
	return out, denomLCM
}

func absInt(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// divisors returns every positive divisor of n (1 if n == 0, to keep the
// candidate search bounded rather than degenerate).
func divisors(n int64) []int64 {
	if n == 0 {
		return []int64{1}
	}
	var ds []int64
	for i := int64(1); i*i <= n; i++ {
		if n%i == 0 {
			ds = append(ds, i)
			if i != n/i {
				ds = append(ds, n/i)
			}
		}
	}
	return ds
}
