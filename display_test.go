package gctrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayApply(t *testing.T) {
	pos := Position{X: 1.0, Y: 2.0, Z: 3.0}
	cases := []struct {
		d    Display
		want Position
	}{
		{d: Display{}, want: pos},
		{d: Display{Scale: 1.0, Axes: AxesProgram}, want: pos},
		{d: Display{Scale: 2.0, Axes: AxesProgram}, want: Position{X: 2.0, Y: 4.0, Z: 6.0}},
		{d: Display{Scale: 1.0, Axes: AxesYUp}, want: Position{X: 1.0, Y: 3.0, Z: 2.0}},
		{d: Display{Scale: 0.5, Axes: AxesYUp}, want: Position{X: 0.5, Y: 1.5, Z: 1.0}},
		{d: Display{Scale: 1.0, Axes: "sideways"}, want: pos},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, c.d.Apply(pos), "%+v", c.d)
	}
}
