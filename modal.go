package gctrace

import (
	"fmt"
)

type DistanceMode byte

const (
	Absolute DistanceMode = iota // G90
	Relative                     // G91
)

func (dm DistanceMode) String() string {
	switch dm {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	}
	return fmt.Sprintf("DistanceMode(%d)", dm)
}

type Plane byte

const (
	XYPlane Plane = iota // G17
	ZXPlane              // G18
	YZPlane              // G19
)

func (pl Plane) String() string {
	switch pl {
	case XYPlane:
		return "XY"
	case ZXPlane:
		return "ZX"
	case YZPlane:
		return "YZ"
	}
	return fmt.Sprintf("Plane(%d)", pl)
}

// Normal returns the unit axis perpendicular to the plane; counter-clockwise
// arcs turn positively about it.
func (pl Plane) Normal() Position {
	switch pl {
	case XYPlane:
		return Position{Z: 1.0}
	case ZXPlane:
		return Position{Y: 1.0}
	case YZPlane:
		return Position{X: 1.0}
	default:
		panic(fmt.Sprintf("unexpected plane: %d", pl))
	}
}

type MotionKind byte

const (
	Rapid  MotionKind = iota // G0
	Linear                   // G1
	ArcCW                    // G2
	ArcCCW                   // G3
)

func (mk MotionKind) String() string {
	switch mk {
	case Rapid:
		return "rapid"
	case Linear:
		return "linear"
	case ArcCW:
		return "clockwise arc"
	case ArcCCW:
		return "counter-clockwise arc"
	}
	return fmt.Sprintf("MotionKind(%d)", mk)
}

func (mk MotionKind) IsArc() bool {
	return mk == ArcCW || mk == ArcCCW
}

// ModalState is the interpretation context carried from line to line. It is
// owned by a single Interpreter.
type ModalState struct {
	distance  DistanceMode
	plane     Plane
	motion    MotionKind
	hasMotion bool
	feed      float64 // units per minute
	pos       Position
}

func NewModalState(pos Position, feed float64) *ModalState {
	return &ModalState{
		distance: Absolute,
		plane:    XYPlane,
		feed:     feed,
		pos:      pos,
	}
}

func (ms *ModalState) DistanceMode() DistanceMode {
	return ms.distance
}

func (ms *ModalState) Plane() Plane {
	return ms.plane
}

// Motion returns the modal motion command and whether one has been set.
func (ms *ModalState) Motion() (MotionKind, bool) {
	return ms.motion, ms.hasMotion
}

func (ms *ModalState) FeedRate() float64 {
	return ms.feed
}

// Position is the endpoint of the last completed move.
func (ms *ModalState) Position() Position {
	return ms.pos
}

func (ms *ModalState) SetDistanceMode(dm DistanceMode) {
	ms.distance = dm
}

func (ms *ModalState) SelectPlane(pl Plane) {
	ms.plane = pl
}

func (ms *ModalState) SetFeedRate(feed float64) {
	ms.feed = feed
}

func (ms *ModalState) SetMotion(mk MotionKind) {
	ms.motion = mk
	ms.hasMotion = true
}

func (ms *ModalState) cancelMotion() {
	ms.hasMotion = false
}

func (ms *ModalState) setPosition(pos Position) {
	ms.pos = pos
}

// toProgramX and friends resolve an axis word against the distance mode.
func (ms *ModalState) toProgramX(x float64) float64 {
	if ms.distance == Absolute {
		return x
	}
	// relative
	return ms.pos.X + x
}

func (ms *ModalState) toProgramY(y float64) float64 {
	if ms.distance == Absolute {
		return y
	}
	// relative
	return ms.pos.Y + y
}

func (ms *ModalState) toProgramZ(z float64) float64 {
	if ms.distance == Absolute {
		return z
	}
	// relative
	return ms.pos.Z + z
}
