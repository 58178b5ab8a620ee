package gctrace

import (
	"fmt"

	"github.com/kpango/glg"
)

// Motion is a fully resolved move: where it starts, where it ends and how the
// tool gets there.
type Motion struct {
	Line   int
	Kind   MotionKind
	Start  Position
	Target Position
	Feed   float64  // units per minute
	Center Position // arcs only: offset of the center from Start
	Plane  Plane    // arcs only: plane selected when the line was resolved
}

func (m *Motion) Clockwise() bool {
	return m.Kind == ArcCW
}

// CenterPosition returns the absolute arc center.
func (m *Motion) CenterPosition() Position {
	return m.Start.Add(m.Center)
}

func (m *Motion) String() string {
	if m.Kind.IsArc() {
		return fmt.Sprintf("%s %s -> %s center %s feed %g", m.Kind, m.Start, m.Target,
			m.CenterPosition(), m.Feed)
	}
	return fmt.Sprintf("%s %s -> %s feed %g", m.Kind, m.Start, m.Target, m.Feed)
}

// Motion codes that name moves this package does not execute.
var unsupportedMotions = map[int]string{
	5:  "cubic spline",
	33: "spindle synchronized motion",
	38: "straight probe",
	73: "drilling cycle with chip breaking",
	76: "threading cycle",
	81: "drilling cycle",
	82: "drilling cycle with dwell",
	83: "peck drilling cycle",
	84: "tapping cycle",
	85: "boring cycle",
	86: "boring cycle with spindle stop",
	87: "back boring cycle",
	88: "boring cycle with manual retract",
	89: "boring cycle with dwell",
}

// Resolve applies the modal codes on ln to ms and returns the move the line
// asks for. It returns nil and no error when the line performs no motion. The
// current position in ms is never changed; the caller moves it once the
// returned motion has been completed.
func Resolve(ln Line, ms *ModalState, log *glg.Glg) (*Motion, error) {
	if log == nil {
		log = glg.Get()
	}

	var kind MotionKind
	var found bool
	unsupported := -1
	for _, num := range ln.GNumbers() {
		switch num {
		case 0, 1, 2, 3:
			if !found {
				kind = MotionKind(num)
				found = true
			}
		case 17: // G17: XY plane selection
			ms.SelectPlane(XYPlane)
		case 18: // G18: ZX plane selection
			ms.SelectPlane(ZXPlane)
		case 19: // G19: YZ plane selection
			ms.SelectPlane(YZPlane)
		case 21: // G21: millimeters
			log.Debugf("line %d: G21: units are millimeters", ln.Number)
		case 54: // G54: work coordinate system one
			log.Debugf("line %d: G54: using machine coordinates as work coordinates", ln.Number)
		case 80: // G80: cancel motion mode
			ms.cancelMotion()
		case 90: // G90: absolute distance mode
			ms.SetDistanceMode(Absolute)
		case 91: // G91: incremental distance mode
			ms.SetDistanceMode(Relative)
		default:
			if _, ok := unsupportedMotions[num]; ok && unsupported < 0 {
				unsupported = num
			}
		}
	}

	if unsupported >= 0 {
		return nil, &LineError{
			Line: ln.Number,
			Err: fmt.Errorf("%w: G%d (%s)", ErrUnsupportedMotion, unsupported,
				unsupportedMotions[unsupported]),
		}
	}

	if f, ok := ln.Lookup('F'); ok {
		ms.SetFeedRate(f)
	}

	if !found {
		// Without a motion code, only axis words move the tool, using the
		// modal motion command.
		if !hasAxisWords(ln) {
			return nil, nil
		}
		kind, found = ms.Motion()
		if !found {
			return nil, nil
		}
	}

	target := ms.Position()
	if x, ok := ln.Lookup('X'); ok {
		target.X = ms.toProgramX(x)
	}
	if y, ok := ln.Lookup('Y'); ok {
		target.Y = ms.toProgramY(y)
	}
	if z, ok := ln.Lookup('Z'); ok {
		target.Z = ms.toProgramZ(z)
	}

	m := Motion{
		Line:   ln.Number,
		Kind:   kind,
		Start:  ms.Position(),
		Target: target,
		Feed:   ms.FeedRate(),
		Plane:  ms.Plane(),
	}
	if kind.IsArc() {
		// Missing offsets are zero.
		m.Center.X, _ = ln.Lookup('I')
		m.Center.Y, _ = ln.Lookup('J')
		m.Center.Z, _ = ln.Lookup('K')
	}

	ms.SetMotion(kind)
	return &m, nil
}

func hasAxisWords(ln Line) bool {
	for _, p := range ln.Params {
		switch p.Letter {
		case 'X', 'Y', 'Z', 'I', 'J', 'K':
			return true
		}
	}
	return false
}
