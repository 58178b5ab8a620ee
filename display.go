package gctrace

// AxisMap names a consumer's axis convention.
type AxisMap string

const (
	// AxesProgram keeps the program's right-handed, Z up axes.
	AxesProgram AxisMap = "program"

	// AxesYUp maps program Z to display Y and program Y to display Z, as
	// left-handed, Y up scene graphs expect.
	AxesYUp AxisMap = "y-up"
)

var axisMaps = map[AxisMap]func(pos Position) Position{
	AxesProgram: func(pos Position) Position {
		return pos
	},
	AxesYUp: func(pos Position) Position {
		return Position{X: pos.X, Y: pos.Z, Z: pos.Y}
	},
}

// Display converts program coordinates into a consumer's coordinates. It is
// applied to samples at the output boundary only.
type Display struct {
	Scale float64 `yaml:"scale"`
	Axes  AxisMap `yaml:"axes"`
}

func (d Display) Apply(pos Position) Position {
	fn, ok := axisMaps[d.Axes]
	if !ok {
		fn = axisMaps[AxesProgram]
	}
	scale := d.Scale
	if scale == 0.0 {
		scale = 1.0
	}
	return fn(pos).Scale(scale)
}
