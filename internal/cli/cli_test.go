package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubelayers/internal/anim"
	"github.com/SeamusWaldron/cubelayers/internal/config"
	"github.com/SeamusWaldron/cubelayers/internal/cube"
	"github.com/SeamusWaldron/cubelayers/internal/journal"
	"github.com/SeamusWaldron/cubelayers/internal/layer"
	"github.com/SeamusWaldron/cubelayers/internal/state"
)

// run executes the root command with args against a fresh config dir and
// returns what it printed.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config-dir", dir))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	configDir, journalPath, noJournal, notes, verbose = "", "", false, "", false
	turnReverse, turnList, turnLayers = false, false, false
	demoScramble, demoLayers, demoFast = "scramble", "", false
	journalLimit, journalLast, journalJSON, journalKind = 10, false, false, ""
	for _, c := range []string{"journal", "no-journal", "notes", "verbose"} {
		if f := rootCmd.PersistentFlags().Lookup(c); f != nil {
			f.Changed = false
		}
	}
}

func TestTurnCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, out string, err error)
	}{
		{
			name: "sequence and inverse ends solved",
			args: []string{"turn", "R U", "u r"},
			check: func(t *testing.T, out string, err error) {
				require.NoError(t, err)
				assert.Contains(t, out, "R U u r")
				assert.Contains(t, out, "solved")
			},
		},
		{
			name: "named algorithm with reverse",
			args: []string{"turn", "commutator", "--reverse", "--layers"},
			check: func(t *testing.T, out string, err error) {
				require.NoError(t, err)
				assert.Contains(t, out, "scrambled")
				assert.Contains(t, out, "Replayed 4 moves in reverse.")
				assert.Contains(t, out, "bay\n(empty)")
			},
		},
		{
			name: "list algorithms",
			args: []string{"turn", "--list"},
			check: func(t *testing.T, out string, err error) {
				require.NoError(t, err)
				assert.Contains(t, out, "commutator")
				assert.Contains(t, out, "R U r u")
			},
		},
		{
			name: "unknown move",
			args: []string{"turn", "R Q"},
			check: func(t *testing.T, out string, err error) {
				assert.Error(t, err)
			},
		},
		{
			name: "no moves",
			args: []string{"turn"},
			check: func(t *testing.T, out string, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, t.TempDir(), tt.args...)
			tt.check(t, out, err)
		})
	}
}

func TestDemoAndJournal(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "demo", "--fast", "--notes", "from test")
	require.NoError(t, err)
	assert.Contains(t, out, "Starting 2-layer puzzle solve...")
	assert.Contains(t, out, "2D puzzle solve finished.")
	assert.Contains(t, out, "Demo moves:")

	out, err = run(t, dir, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Recent sessions (showing 1)")
	assert.Contains(t, out, "from test")

	out, err = run(t, dir, "journal", "show", "--last", "--json")
	require.NoError(t, err)
	var sum journal.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 1, sum.Demos)
	assert.Positive(t, sum.Turns)
	assert.Positive(t, sum.DemoMoves)

	out, err = run(t, dir, "journal", "events", "--last", "--kind", "demo")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "demo"))

	_, err = run(t, dir, "journal", "delete", sum.SessionID)
	require.NoError(t, err)
	_, err = run(t, dir, "journal", "delete", sum.SessionID)
	assert.ErrorIs(t, err, journal.ErrNotFound)
	out, err = run(t, dir, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded yet")
}

func TestDemoRejectsOneLayer(t *testing.T) {
	out, err := run(t, t.TempDir(), "demo", "--fast", "--layers", "top", "--no-journal")
	assert.Error(t, err)
	assert.Contains(t, out, "Please select exactly two layers to solve.")
}

func TestJournalDisabled(t *testing.T) {
	_, err := run(t, t.TempDir(), "journal", "list", "--no-journal")
	assert.ErrorContains(t, err, "disabled")
}

func TestParseLayers(t *testing.T) {
	keys, err := parseLayers([]string{"Top", " bottom ", "hold"})
	require.NoError(t, err)
	assert.Equal(t, []layer.Key{layer.Top, layer.Bottom, layer.Holding}, keys)

	_, err = parseLayers([]string{"side"})
	assert.ErrorIs(t, err, layer.ErrUnknownLayer)
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	_, _, err := newLogger(&config.Config{LogLevel: "loud"}, false)
	assert.ErrorIs(t, err, config.ErrInvalid)

	log, closeLog, err := newLogger(&config.Config{Dir: t.TempDir(), LogLevel: "debug", LogFile: "cubelayers.log"}, true)
	require.NoError(t, err)
	defer closeLog()
	log.Debug("hello")
}

func TestCells(t *testing.T) {
	s := state.New()
	require.NoError(t, s.MoveToHolding(cube.UF))

	top := layer.Project(s, layer.Top)
	assert.Equal(t, 9, cellCount(top))
	assert.Equal(t, cube.ULB, cellAt(top, 0))
	assert.Equal(t, cube.URF, cellAt(top, 8))
	assert.Equal(t, cube.ID(""), cellAt(top, 7), "UF is held")

	bay := layer.Project(s, layer.Holding)
	assert.Equal(t, 2, cellCount(bay))
	assert.Equal(t, cube.UF, cellAt(bay, 0))
	assert.Equal(t, cube.ID(""), cellAt(bay, 1))

	text := plainLayer(top)
	assert.Equal(t, "ULB UB  URB \nUL  U   UR  \nULF .   URF \n", text)
	assert.Equal(t, "UF  \n", plainLayer(bay))
}

func TestDescribeFrame(t *testing.T) {
	turnFrame := anim.Frame{Transition: anim.Turn(time.Second, cube.Y, cube.Positive, nil), Progress: 0.5}
	assert.Equal(t, "turn y +45°", describeFrame(turnFrame))

	swap := anim.Frame{Transition: anim.Swap(time.Second, true, cube.UF, cube.UB), Phase: 1, Progress: 0.25}
	assert.Equal(t, "swap slide  25%", describeFrame(swap))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m3.0s", formatDuration(123*time.Second))
}
