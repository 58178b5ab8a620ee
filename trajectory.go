package gctrace

import (
	"iter"
	"math"
	"time"
)

// PoseSample is the tool position a fraction of the way through a move.
type PoseSample struct {
	Fraction float64
	Position Position
}

type path interface {
	at(t float64) Position
	length() float64
}

type linePath struct {
	start, target Position
}

func (lp linePath) at(t float64) Position {
	if t >= 1.0 {
		return lp.target
	} else if t <= 0.0 {
		return lp.start
	}
	return lp.start.Lerp(lp.target, t)
}

func (lp linePath) length() float64 {
	return lp.target.Sub(lp.start).Length()
}

// Trajectory is a time parameterized move. It has no clock of its own:
// callers ask for the pose at an elapsed time or at a fraction of the move.
type Trajectory struct {
	motion   *Motion
	path     path
	seconds  float64
	duration time.Duration
}

const (
	defaultArcEpsilon = 1e-9
)

// NewTrajectory prepares m for sampling. It fails with ErrInvalidFeedRate or
// ErrDegenerateArc, wrapped in a *LineError, if m cannot be executed.
func NewTrajectory(m *Motion) (*Trajectory, error) {
	return newTrajectory(m, defaultArcEpsilon)
}

func newTrajectory(m *Motion, arcEpsilon float64) (*Trajectory, error) {
	if !(m.Feed > 0.0) || math.IsInf(m.Feed, 1) {
		return nil, &LineError{Line: m.Line, Err: ErrInvalidFeedRate}
	}

	var p path
	if m.Kind.IsArc() {
		ap, err := newArcPath(m, arcEpsilon)
		if err != nil {
			return nil, &LineError{Line: m.Line, Err: err}
		}
		p = ap
	} else {
		p = linePath{start: m.Start, target: m.Target}
	}

	seconds := p.length() / (m.Feed / 60.0)
	return &Trajectory{
		motion:   m,
		path:     p,
		seconds:  seconds,
		duration: toDuration(seconds),
	}, nil
}

// toDuration rounds up to a whole nanosecond so that advancing a move by its
// Duration always completes it.
func toDuration(seconds float64) time.Duration {
	ns := math.Ceil(seconds * float64(time.Second))
	if ns >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}

func (tr *Trajectory) Motion() *Motion {
	return tr.motion
}

// Duration is how long the move takes at its feed rate.
func (tr *Trajectory) Duration() time.Duration {
	return tr.duration
}

// Length is the distance traveled along the path, not counting helical lift.
func (tr *Trajectory) Length() float64 {
	return tr.path.length()
}

// At returns the pose at fraction t of the move; t is clamped to [0, 1] and
// the pose at 1 is exactly the target.
func (tr *Trajectory) At(t float64) PoseSample {
	if t >= 1.0 {
		return PoseSample{Fraction: 1.0, Position: tr.motion.Target}
	} else if t <= 0.0 {
		return PoseSample{Fraction: 0.0, Position: tr.motion.Start}
	}
	return PoseSample{Fraction: t, Position: tr.path.at(t)}
}

// Sample returns the pose once elapsed time has passed since the move started.
func (tr *Trajectory) Sample(elapsed time.Duration) PoseSample {
	if elapsed >= tr.duration {
		return tr.At(1.0)
	}
	return tr.At(elapsed.Seconds() / tr.seconds)
}

// Stream returns a new stream over the move, starting at its beginning.
func (tr *Trajectory) Stream() *PoseStream {
	return &PoseStream{tr: tr}
}

// Poses yields samples at fractions 0, step, 2*step, and so on, always ending
// with the sample at exactly 1.
func (tr *Trajectory) Poses(step float64) iter.Seq[PoseSample] {
	return func(yield func(PoseSample) bool) {
		if step > 0.0 {
			for n := 0; ; n += 1 {
				t := float64(n) * step
				if t >= 1.0 {
					break
				}
				if !yield(tr.At(t)) {
					return
				}
			}
		}
		yield(tr.At(1.0))
	}
}

// PoseStream walks a trajectory forward as the caller's clock ticks. Once it
// has returned the target it is done and stays done.
type PoseStream struct {
	tr      *Trajectory
	elapsed time.Duration
	done    bool
}

// Advance moves the stream forward by dt and returns the pose reached and
// whether the move is complete.
func (ps *PoseStream) Advance(dt time.Duration) (PoseSample, bool) {
	if ps.done {
		return ps.tr.At(1.0), true
	}

	if dt > 0 {
		ps.elapsed += dt
	}
	s := ps.tr.Sample(ps.elapsed)
	if s.Fraction >= 1.0 {
		ps.done = true
	}
	return s, ps.done
}

func (ps *PoseStream) Elapsed() time.Duration {
	return ps.elapsed
}

func (ps *PoseStream) Done() bool {
	return ps.done
}
