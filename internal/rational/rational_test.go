package rational

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symmetrica/internal/errkinds"
)

func TestMakeNormalizes(t *testing.T) {
	q, err := Make(4, 8)
	require.NoError(t, err)
	assert.Equal(t, Q{1, 2}, q)

	q, err = Make(-4, -8)
	require.NoError(t, err)
	assert.Equal(t, Q{1, 2}, q)

	q, err = Make(4, -8)
	require.NoError(t, err)
	assert.Equal(t, Q{-1, 2}, q)
}

func TestMakeZeroDenominator(t *testing.T) {
	_, err := Make(1, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errkinds.DomainError)
}

func TestArithmetic(t *testing.T) {
	half, err := Make(1, 2)
	require.NoError(t, err)
	third, err := Make(1, 3)
	require.NoError(t, err)

	sum, err := Add(half, third)
	require.NoError(t, err)
	assert.Equal(t, Q{5, 6}, sum)

	diff, err := Sub(half, third)
	require.NoError(t, err)
	assert.Equal(t, Q{1, 6}, diff)

	prod, err := Mul(half, third)
	require.NoError(t, err)
	assert.Equal(t, Q{1, 6}, prod)

	quot, err := Div(half, third)
	require.NoError(t, err)
	assert.Equal(t, Q{3, 2}, quot)
}

func TestDivByZero(t *testing.T) {
	_, err := Div(One, Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, errkinds.DomainError)
}

func TestInvZero(t *testing.T) {
	_, err := Inv(Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, errkinds.DomainError)
}

func TestPowInt(t *testing.T) {
	two := OfInt(2)
	p, err := PowInt(two, 10)
	require.NoError(t, err)
	assert.Equal(t, OfInt(1024), p)

	p, err = PowInt(two, -2)
	require.NoError(t, err)
	assert.Equal(t, Q{1, 4}, p)

	_, err = PowInt(Zero, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errkinds.DomainError)
}

func TestCmp(t *testing.T) {
	half, _ := Make(1, 2)
	third, _ := Make(1, 3)
	assert.Equal(t, 1, Cmp(half, third))
	assert.Equal(t, -1, Cmp(third, half))
	assert.Equal(t, 0, Cmp(half, half))
}

func TestOverflowDetected(t *testing.T) {
	huge := OfInt(1 << 62)
	_, err := Mul(huge, huge)
	require.Error(t, err)
	assert.ErrorIs(t, err, errkinds.NumericOverflow)
}

func TestIsPerfectSquare(t *testing.T) {
	q, ok := IsPerfectSquare(OfInt(9))
	assert.True(t, ok)
	assert.Equal(t, OfInt(3), q)

	quarter, _ := Make(1, 4)
	q, ok = IsPerfectSquare(quarter)
	assert.True(t, ok)
	assert.Equal(t, Q{1, 2}, q)

	_, ok = IsPerfectSquare(OfInt(2))
	assert.False(t, ok)

	_, ok = IsPerfectSquare(OfInt(-4))
	assert.False(t, ok)
}

func TestStringForm(t *testing.T) {
	assert.Equal(t, "3", OfInt(3).String())
	half, _ := Make(1, 2)
	assert.Equal(t, "1/2", half.String())
}
