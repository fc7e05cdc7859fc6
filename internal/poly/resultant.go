package poly

import "symmetrica/internal/rational"

// Resultant computes Res(a, b) as the determinant of the Sylvester matrix
// of a and b — the definitional formula (spec.md §4.4), computed here by
// exact Gaussian elimination over Q rather than a polynomial remainder
// sequence, which keeps the sign/scaling bookkeeping trivially correct.
func Resultant(a, b Polynomial) (rational.Q, error) {
	m, n := a.Degree(), b.Degree()
	if m < 0 || n < 0 {
		return rational.Zero, nil
	}
	size := m + n
	if size == 0 {
		return rational.One, nil
	}
	mat := sylvesterMatrix(a, b, m, n)
	return determinant(mat, size)
}

// sylvesterMatrix builds the (m+n) x (m+n) Sylvester matrix: n shifted
// copies of a's coefficients (high-to-low) followed by m shifted copies
// of b's coefficients (high-to-low).
func sylvesterMatrix(a, b Polynomial, m, n int) [][]rational.Q {
	size := m + n
	mat := make([][]rational.Q, size)
	for i := range mat {
		mat[i] = make([]rational.Q, size)
	}
	aHigh := coeffsHighToLow(a, m)
	bHigh := coeffsHighToLow(b, n)
	for r := 0; r < n; r++ {
		for j, c := range aHigh {
			mat[r][r+j] = c
		}
	}
	for r := 0; r < m; r++ {
		for j, c := range bHigh {
			mat[n+r][r+j] = c
		}
	}
	return mat
}

func coeffsHighToLow(p Polynomial, deg int) []rational.Q {
	out := make([]rational.Q, deg+1)
	for i := 0; i <= deg; i++ {
		out[i] = p.Coeff(deg - i)
	}
	return out
}

// determinant computes det(mat) via Gaussian elimination with partial
// pivoting over the exact field Q.
func determinant(mat [][]rational.Q, size int) (rational.Q, error) {
	// work on a copy
	m := make([][]rational.Q, size)
	for i := range mat {
		m[i] = append([]rational.Q(nil), mat[i]...)
	}

	det := rational.One
	for col := 0; col < size; col++ {
		pivot := -1
		for r := col; r < size; r++ {
			if !rational.IsZero(m[r][col]) {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			return rational.Zero, nil
		}
		if pivot != col {
			m[pivot], m[col] = m[col], m[pivot]
			det = rational.Neg(det)
		}
		var err error
		det, err = rational.Mul(det, m[col][col])
		if err != nil {
			return rational.Zero, err
		}
		for r := col + 1; r < size; r++ {
			if rational.IsZero(m[r][col]) {
				continue
			}
			factor, err := rational.Div(m[r][col], m[col][col])
			if err != nil {
				return rational.Zero, err
			}
			for c := col; c < size; c++ {
				term, err := rational.Mul(factor, m[col][c])
				if err != nil {
					return rational.Zero, err
				}
				v, err := rational.Sub(m[r][c], term)
				if err != nil {
					return rational.Zero, err
				}
				m[r][c] = v
			}
		}
	}
	return det, nil
}

// Discriminant computes disc(a) = (-1)^(n(n-1)/2) * lc(a)^-1 * Res(a, a').
func Discriminant(a Polynomial) (rational.Q, error) {
	n := a.Degree()
	if n <= 0 {
		return rational.Zero, nil
	}
	deriv := Diff(a)
	res, err := Resultant(a, deriv)
	if err != nil {
		return rational.Zero, err
	}
	lcInv, err := rational.Inv(a.LeadingCoeff())
	if err != nil {
		return rational.Zero, err
	}
	v, err := rational.Mul(res, lcInv)
	if err != nil {
		return rational.Zero, err
	}
	if (int64(n)*int64(n-1)/2)%2 == 1 {
		v = rational.Neg(v)
	}
	return v, nil
}
