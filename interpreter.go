package gctrace

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kpango/glg"
)

type Status byte

const (
	Executed  Status = iota // The line was honored.
	Skipped                 // The line asked for something unsupported.
	Failed                  // The line's move could not be executed.
	Abandoned               // The line's move was started but never completed.
)

func (st Status) String() string {
	switch st {
	case Executed:
		return "executed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	case Abandoned:
		return "abandoned"
	}
	return fmt.Sprintf("Status(%d)", st)
}

// Result reports what became of one program line.
type Result struct {
	Line   int
	Status Status
	Err    error
}

// Recorder receives every pose sampled while Run drives a program.
type Recorder interface {
	Pose(m *Motion, s PoseSample) error
}

type RecorderFunc func(m *Motion, s PoseSample) error

func (fn RecorderFunc) Pose(m *Motion, s PoseSample) error {
	return fn(m, s)
}

type Option func(in *Interpreter)

func WithLogger(log *glg.Glg) Option {
	return func(in *Interpreter) {
		in.log = log
	}
}

// Interpreter runs program lines one move at a time. Moves never overlap: the
// current position only changes when a move's pose stream reaches its
// target.
type Interpreter struct {
	cfg     Config
	state   *ModalState
	log     *glg.Glg
	lines   []Line
	ldx     int
	move    *Move
	halted  bool
	results []Result
}

func NewInterpreter(cfg Config, opts ...Option) *Interpreter {
	if cfg.ArcEpsilon <= 0.0 {
		cfg.ArcEpsilon = defaultArcEpsilon
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultConfig().Tick
	}

	in := &Interpreter{
		cfg:   cfg,
		state: NewModalState(cfg.InitialPosition, cfg.FeedRate),
		log:   glg.Get(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Load sets the program to run. Modal state and the current position carry
// over from any previous program.
func (in *Interpreter) Load(lines []Line) {
	in.abandon()
	in.lines = lines
	in.ldx = 0
	in.halted = false
	in.results = nil
}

func (in *Interpreter) State() *ModalState {
	return in.state
}

func (in *Interpreter) Position() Position {
	return in.state.Position()
}

// Halted reports whether the program ended with M2 or M30.
func (in *Interpreter) Halted() bool {
	return in.halted
}

// Results returns the outcome of every line processed so far, in order.
func (in *Interpreter) Results() []Result {
	return append([]Result(nil), in.results...)
}

func (in *Interpreter) report(num int, st Status, err error) {
	in.results = append(in.results, Result{Line: num, Status: st, Err: err})
}

func (in *Interpreter) abandon() {
	if in.move == nil {
		return
	}
	in.log.Warnf("line %d: move abandoned at %s", in.move.Motion.Line, in.state.Position())
	in.report(in.move.Motion.Line, Abandoned, nil)
	in.move = nil
}

// Next resolves lines until one of them moves the tool and returns that move;
// it returns io.EOF at the end of the program. A move returned earlier that
// has not been driven to completion is abandoned, and the current position
// stays where it was.
func (in *Interpreter) Next() (*Move, error) {
	in.abandon()

	for !in.halted && in.ldx < len(in.lines) {
		ln := in.lines[in.ldx]
		in.ldx += 1

		if ln.hasInteger('M', 2) || ln.hasInteger('M', 30) {
			in.log.Infof("line %d: end of program", ln.Number)
			in.halted = true
		}

		m, err := Resolve(ln, in.state, in.log)
		if err != nil {
			in.log.Warnf("line %d: skipped: %s", ln.Number, err)
			in.report(ln.Number, Skipped, err)
			continue
		} else if m == nil {
			in.report(ln.Number, Executed, nil)
			continue
		}

		if m.Kind == Rapid && in.cfg.RapidFeedRate > 0.0 {
			m.Feed = in.cfg.RapidFeedRate
		}
		tr, err := newTrajectory(m, in.cfg.ArcEpsilon)
		if err != nil {
			in.log.Errorf("line %d: %s failed: %s", ln.Number, m.Kind, err)
			in.report(ln.Number, Failed, err)
			continue
		}

		in.move = &Move{
			Motion: m,
			in:     in,
			tr:     tr,
			stream: tr.Stream(),
		}
		return in.move, nil
	}

	return nil, io.EOF
}

// Run drives lines to the end, advancing each move by the configured tick
// and passing every sample, starting and ending poses included, to rec. It
// stops early if ctx is done or rec returns an error.
func (in *Interpreter) Run(ctx context.Context, lines []Line, rec Recorder) ([]Result, error) {
	in.Load(lines)

	for {
		mv, err := in.Next()
		if err == io.EOF {
			return in.Results(), nil
		} else if err != nil {
			return in.Results(), err
		}

		dt := time.Duration(0)
		for {
			err = ctx.Err()
			if err != nil {
				in.abandon()
				return in.Results(), err
			}

			s, done := mv.Advance(dt)
			err = rec.Pose(mv.Motion, s)
			if err != nil {
				in.abandon()
				return in.Results(), err
			}
			if done {
				break
			}
			dt = in.cfg.Tick
		}
	}
}

// Evaluate parses program text from s and runs it.
func (in *Interpreter) Evaluate(ctx context.Context, s io.ByteScanner,
	rec Recorder) ([]Result, error) {

	p := Parser{Scanner: s}
	var lines []Line
	for {
		ln, err := p.Parse()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		lines = append(lines, ln)
	}

	return in.Run(ctx, lines, rec)
}

// Move is one line's motion in flight.
type Move struct {
	Motion *Motion

	in     *Interpreter
	tr     *Trajectory
	stream *PoseStream
}

func (mv *Move) Trajectory() *Trajectory {
	return mv.tr
}

func (mv *Move) Duration() time.Duration {
	return mv.tr.Duration()
}

// Advance moves the tool forward by dt. When the move completes, the
// interpreter's current position becomes the move's target.
func (mv *Move) Advance(dt time.Duration) (PoseSample, bool) {
	s, done := mv.stream.Advance(dt)
	if done && mv.in.move == mv {
		mv.in.state.setPosition(mv.Motion.Target)
		mv.in.report(mv.Motion.Line, Executed, nil)
		mv.in.move = nil
	}
	return s, done
}

func (mv *Move) Done() bool {
	return mv.stream.Done()
}
