package gctrace

import (
	"math"
)

type arcPath struct {
	center Position
	radial Position // in-plane vector from center to start
	offset Position // out-of-plane part of start - center
	lift   Position // out-of-plane part of target - start
	axis   Position // rotation axis; the plane normal, negated for clockwise arcs
	target Position
	radius float64
	sweep  float64 // radians, in (0, 2*pi]
}

// inPlane removes the component of v along the unit normal.
func inPlane(v, normal Position) Position {
	return v.Sub(normal.Scale(v.Dot(normal)))
}

// SweepAngle returns the angle in radians an arc from start to target turns
// through about center. Clockwise arcs are measured about the negated normal.
// Non-positive angles have a full turn added, so the result is always in
// (0, 2*pi]: an arc that ends where it starts is a full circle, and arcs of
// more than one turn are not expressible.
func SweepAngle(start, target, center, normal Position, clockwise bool) float64 {
	if clockwise {
		normal = normal.Scale(-1.0)
	}

	from := inPlane(start.Sub(center), normal)
	to := inPlane(target.Sub(center), normal)
	angle := math.Atan2(normal.Dot(from.Cross(to)), from.Dot(to))
	if angle <= 0.0 {
		angle += math.Pi * 2
	}
	return angle
}

func newArcPath(m *Motion, epsilon float64) (*arcPath, error) {
	normal := m.Plane.Normal()
	center := m.CenterPosition()

	radial := inPlane(m.Start.Sub(center), normal)
	radius := radial.Length()
	if radius < epsilon {
		return nil, ErrDegenerateArc
	}

	axis := normal
	if m.Clockwise() {
		axis = normal.Scale(-1.0)
	}

	return &arcPath{
		center: center,
		radial: radial,
		offset: m.Start.Sub(center).Sub(radial),
		lift:   normal.Scale(m.Target.Sub(m.Start).Dot(normal)),
		axis:   axis,
		target: m.Target,
		radius: radius,
		sweep:  SweepAngle(m.Start, m.Target, center, normal, m.Clockwise()),
	}, nil
}

func (ap *arcPath) at(t float64) Position {
	if t >= 1.0 {
		return ap.target
	}
	return ap.center.
		Add(ap.radial.Rotate(ap.axis, ap.sweep*t)).
		Add(ap.offset).
		Add(ap.lift.Scale(t))
}

func (ap *arcPath) length() float64 {
	return ap.sweep * ap.radius
}
