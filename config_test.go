package gctrace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = ParseConfig([]byte(`
initial_position:
  x: 1.5
  z: 10
feed_rate: 600
rapid_feed_rate: 3000
arc_epsilon: 0.001
tick: 25ms
display:
  scale: 2
  axes: y-up
`))
	require.NoError(t, err)
	assert.Equal(t, Config{
		InitialPosition: Position{X: 1.5, Z: 10.0},
		FeedRate:        600.0,
		RapidFeedRate:   3000.0,
		ArcEpsilon:      0.001,
		Tick:            25 * time.Millisecond,
		Display:         Display{Scale: 2.0, Axes: AxesYUp},
	}, cfg)

	cfg, err = ParseConfig([]byte("feed_rate: 100\n"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.FeedRate)
	assert.Equal(t, 10*time.Millisecond, cfg.Tick)
	assert.Equal(t, AxesProgram, cfg.Display.Axes)
}

func TestParseConfigErrors(t *testing.T) {
	cases := []struct {
		s     string
		valid bool
	}{
		{s: "feed_rat: 100\n"},
		{s: "display:\n  color: red\n"},
		{s: "feed_rate: fast\n"},
		{s: "feed_rate: -1\n", valid: true},
		{s: "rapid_feed_rate: -1\n", valid: true},
		{s: "arc_epsilon: 0\n", valid: true},
		{s: "tick: 0s\n", valid: true},
		{s: "display:\n  scale: 0\n", valid: true},
		{s: "display:\n  axes: sideways\n", valid: true},
	}

	for _, c := range cases {
		_, err := ParseConfig([]byte(c.s))
		require.Error(t, err, c.s)
		assert.Equal(t, c.valid, errors.Is(err, ErrConfigValidation), "%s: %s", c.s, err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GCTRACE_FEED", "450")
	t.Cleanup(func() {
		os.Unsetenv("GCTRACE_SCALE")
	})

	err := os.WriteFile(".env", []byte("GCTRACE_SCALE=4\n"), 0644)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gctrace.yaml")
	err = os.WriteFile(path,
		[]byte("feed_rate: ${GCTRACE_FEED}\ndisplay:\n  scale: ${GCTRACE_SCALE}\n"), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 450.0, cfg.FeedRate)
	assert.Equal(t, 4.0, cfg.Display.Scale)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
