package gctrace

import (
	"fmt"
	"math"
)

// Position is a point, or a vector between points, in program coordinates.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (pos Position) String() string {
	return fmt.Sprintf("{x: %g, y: %g, z: %g}", pos.X, pos.Y, pos.Z)
}

var (
	zeroPosition = Position{0.0, 0.0, 0.0}
)

func (pos Position) Add(o Position) Position {
	return Position{pos.X + o.X, pos.Y + o.Y, pos.Z + o.Z}
}

func (pos Position) Sub(o Position) Position {
	return Position{pos.X - o.X, pos.Y - o.Y, pos.Z - o.Z}
}

func (pos Position) Scale(f float64) Position {
	return Position{pos.X * f, pos.Y * f, pos.Z * f}
}

func (pos Position) Dot(o Position) float64 {
	return pos.X*o.X + pos.Y*o.Y + pos.Z*o.Z
}

func (pos Position) Cross(o Position) Position {
	return Position{
		X: pos.Y*o.Z - pos.Z*o.Y,
		Y: pos.Z*o.X - pos.X*o.Z,
		Z: pos.X*o.Y - pos.Y*o.X,
	}
}

func (pos Position) Length() float64 {
	return math.Sqrt(pos.Dot(pos))
}

// Lerp returns the point a fraction t of the way from pos to o.
func (pos Position) Lerp(o Position, t float64) Position {
	return Position{
		X: pos.X + (o.X-pos.X)*t,
		Y: pos.Y + (o.Y-pos.Y)*t,
		Z: pos.Z + (o.Z-pos.Z)*t,
	}
}

// Rotate rotates pos about the unit vector axis by angle radians; positive
// angles are counter-clockwise when looking down the axis toward the origin.
func (pos Position) Rotate(axis Position, angle float64) Position {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return pos.Scale(cos).
		Add(axis.Cross(pos).Scale(sin)).
		Add(axis.Scale(axis.Dot(pos) * (1.0 - cos)))
}
