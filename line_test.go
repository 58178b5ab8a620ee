package gctrace

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineLookup(t *testing.T) {
	ln := Line{
		Number:  4,
		Code:    1,
		HasCode: true,
		Params:  []Param{{'X', 1.0}, {'F', 100.0}, {'X', 2.5}, {'G', 90.0}},
	}

	x, ok := ln.Lookup('X')
	assert.True(t, ok)
	assert.Equal(t, 2.5, x)
	assert.True(t, ln.Has('F'))
	assert.False(t, ln.Has('Y'))
	_, ok = ln.Lookup('Z')
	assert.False(t, ok)

	assert.True(t, ln.hasInteger('G', 90))
	assert.False(t, ln.hasInteger('G', 1))
	assert.Equal(t, "N4 G1 X1 F100 X2.5 G90", ln.String())
}

func TestLineGNumbers(t *testing.T) {
	cases := []struct {
		ln   Line
		nums []int
	}{
		{ln: Line{}, nums: nil},
		{ln: Line{Params: []Param{{'X', 1.0}}}, nums: nil},
		{ln: Line{Code: 0, HasCode: true}, nums: []int{0}},
		{
			ln: Line{Code: 90, HasCode: true,
				Params: []Param{{'G', 59.1}, {'G', 1.0}, {'M', 3.0}, {'G', 17.0}}},
			nums: []int{90, 1, 17},
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.nums, c.ln.GNumbers(), c.ln.String())
	}
}

func TestAsInteger(t *testing.T) {
	n, ok := asInteger(30.0)
	assert.True(t, ok)
	assert.Equal(t, 30, n)

	for _, v := range []float64{0.5, math.Inf(1), math.NaN(), 1e12} {
		_, ok := asInteger(v)
		assert.False(t, ok, "asInteger(%g)", v)
	}
}

func TestPosition(t *testing.T) {
	a := Position{X: 1.0, Y: 2.0, Z: 3.0}
	b := Position{X: -1.0, Y: 0.5, Z: 2.0}

	assert.Equal(t, Position{X: 0.0, Y: 2.5, Z: 5.0}, a.Add(b))
	assert.Equal(t, Position{X: 2.0, Y: 1.5, Z: 1.0}, a.Sub(b))
	assert.Equal(t, Position{X: 2.0, Y: 4.0, Z: 6.0}, a.Scale(2.0))
	assert.Equal(t, 6.0, a.Dot(b))
	assert.Equal(t, Position{Z: 1.0}, Position{X: 1.0}.Cross(Position{Y: 1.0}))
	assert.Equal(t, 5.0, Position{X: 3.0, Z: 4.0}.Length())
	assert.Equal(t, Position{X: 0.0, Y: 1.25, Z: 2.5}, a.Lerp(b, 0.5))
	assert.Equal(t, "{x: 1, y: 2, z: 3}", a.String())

	assertNear(t, Position{Y: 1.0}, Position{X: 1.0}.Rotate(Position{Z: 1.0}, math.Pi/2))
	assertNear(t, Position{Y: -1.0, Z: 4.0},
		Position{X: 1.0, Z: 4.0}.Rotate(Position{Z: -1.0}, math.Pi/2))
}
