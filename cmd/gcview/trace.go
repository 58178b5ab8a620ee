package main

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/leftmike/gctrace"
)

type sample struct {
	Line     int              `yaml:"line"`
	Kind     string           `yaml:"kind"`
	Fraction float64          `yaml:"f"`
	Time     float64          `yaml:"t"` // seconds since the program started
	Pos      gctrace.Position `yaml:"pt"`
}

type lineResult struct {
	Line   int    `yaml:"line"`
	Status string `yaml:"status"`
	Error  string `yaml:"error,omitempty"`
}

type trace struct {
	Source   string       `yaml:"source"`
	Duration float64      `yaml:"duration"`
	Samples  []sample     `yaml:"samples"`
	Results  []lineResult `yaml:"results"`
}

// recorder keeps every sample, mapped through the display, with the time it
// was reached. Run starts each move with a zero tick and then advances by
// tick.
type recorder struct {
	display gctrace.Display
	tick    time.Duration
	motion  *gctrace.Motion
	elapsed time.Duration
	samples []sample
}

func kindName(kind gctrace.MotionKind) string {
	switch kind {
	case gctrace.Rapid:
		return "rapid"
	case gctrace.Linear:
		return "linear"
	default:
		return "arc"
	}
}

func (r *recorder) Pose(m *gctrace.Motion, s gctrace.PoseSample) error {
	if m == r.motion {
		r.elapsed += r.tick
	}
	r.motion = m

	r.samples = append(r.samples, sample{
		Line:     m.Line,
		Kind:     kindName(m.Kind),
		Fraction: s.Fraction,
		Time:     r.elapsed.Seconds(),
		Pos:      r.display.Apply(s.Position),
	})
	return nil
}

func newTrace(source string, r *recorder, results []gctrace.Result) *trace {
	tr := trace{
		Source:   source,
		Duration: r.elapsed.Seconds(),
		Samples:  r.samples,
	}
	for _, res := range results {
		lr := lineResult{Line: res.Line, Status: res.Status.String()}
		if res.Err != nil {
			lr.Error = res.Err.Error()
		}
		tr.Results = append(tr.Results, lr)
	}
	return &tr
}

func (tr *trace) bounds() (gctrace.Position, gctrace.Position) {
	if len(tr.Samples) == 0 {
		return gctrace.Position{}, gctrace.Position{}
	}

	minPos := tr.Samples[0].Pos
	maxPos := tr.Samples[0].Pos
	for _, s := range tr.Samples[1:] {
		minPos.X = math.Min(minPos.X, s.Pos.X)
		minPos.Y = math.Min(minPos.Y, s.Pos.Y)
		minPos.Z = math.Min(minPos.Z, s.Pos.Z)
		maxPos.X = math.Max(maxPos.X, s.Pos.X)
		maxPos.Y = math.Max(maxPos.Y, s.Pos.Y)
		maxPos.Z = math.Max(maxPos.Z, s.Pos.Z)
	}
	return minPos, maxPos
}

func jsPoint(pos gctrace.Position) string {
	return fmt.Sprintf("{x: %g, y: %g, z: %g}", pos.X, pos.Y, pos.Z)
}

func (tr *trace) writeHTML(w io.Writer) error {
	minPos, maxPos := tr.bounds()
	extent := maxPos.Sub(minPos)
	zoom := 30.0
	if size := math.Max(extent.X, math.Max(extent.Y, extent.Z)); size > 0.0 {
		zoom = 400.0 / size
	}

	settings := fmt.Sprintf("  minPos: %s,\n  maxPos: %s,\n  duration: %g,\n  zoom: %g,",
		jsPoint(minPos), jsPoint(maxPos), tr.Duration, zoom)

	var sb strings.Builder
	for _, s := range tr.Samples {
		fmt.Fprintf(&sb, "  {line: %d, kind: %q, f: %g, t: %g, pt: %s},\n", s.Line, s.Kind,
			s.Fraction, s.Time, jsPoint(s.Pos))
	}

	_, err := fmt.Fprintf(w, indexHTML, html.EscapeString(tr.Source), settings, sb.String())
	return err
}

func (tr *trace) writeYAML(w io.Writer) error {
	data, err := yaml.Marshal(tr)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
