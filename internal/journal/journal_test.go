package journal

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Journal {
	t.Helper()
	j, err := OpenJournal(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestMigrationsApplied(t *testing.T) {
	j := openTest(t)
	v, err := j.db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)

	// Re-running is a no-op.
	require.NoError(t, j.db.MigrateUp())
}

func TestJournal(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, j *Journal)
	}{
		{
			name: "events round trip in time order",
			check: func(t *testing.T, j *Journal) {
				require.NoError(t, j.Start("s1", "", "test"))
				require.NoError(t, j.Append(Event{SessionID: "s1", TsMs: 2000, Kind: KindSwap, Cubie: "UF", Target: "DB"}))
				require.NoError(t, j.Append(Event{SessionID: "s1", TsMs: 1000, Kind: KindTurn, Token: "R", Moves: 1}))

				events, err := j.Events("s1")
				require.NoError(t, err)
				require.Len(t, events, 2)
				assert.Equal(t, KindTurn, events[0].Kind)
				assert.Equal(t, "R", events[0].Token)
				assert.Equal(t, "", events[0].Cubie)
				assert.Equal(t, "DB", events[1].Target)
			},
		},
		{
			name: "append stamps missing time",
			check: func(t *testing.T, j *Journal) {
				at := time.UnixMilli(123456)
				j.now = func() time.Time { return at }
				require.NoError(t, j.Start("s2", "", ""))
				require.NoError(t, j.Append(Event{SessionID: "s2", Kind: KindReset}))
				events, err := j.Events("s2")
				require.NoError(t, err)
				require.Len(t, events, 1)
				assert.Equal(t, int64(123456), events[0].TsMs)
			},
		},
		{
			name: "events need a session",
			check: func(t *testing.T, j *Journal) {
				assert.Error(t, j.Append(Event{SessionID: "missing", Kind: KindTurn}))
			},
		},
		{
			name: "end records duration",
			check: func(t *testing.T, j *Journal) {
				require.NoError(t, j.Start("s3", "notes", ""))
				require.NoError(t, j.End("s3"))
				s, err := j.Sessions().Get("s3")
				require.NoError(t, err)
				require.NotNil(t, s.EndedAt)
				require.NotNil(t, s.DurationMs)
				require.NotNil(t, s.Notes)
				assert.Equal(t, "notes", *s.Notes)
				assert.Nil(t, s.AppVersion)
			},
		},
		{
			name: "unknown session",
			check: func(t *testing.T, j *Journal) {
				_, err := j.Summary("nope")
				assert.ErrorIs(t, err, ErrNotFound)
				assert.ErrorIs(t, j.End("nope"), ErrNotFound)
			},
		},
		{
			name: "list newest first",
			check: func(t *testing.T, j *Journal) {
				for _, id := range []string{"a", "b", "c"} {
					require.NoError(t, j.Start(id, "", ""))
					time.Sleep(2 * time.Millisecond)
				}
				got, err := j.List(2)
				require.NoError(t, err)
				require.Len(t, got, 2)
				assert.Equal(t, "c", got[0].SessionID)
				assert.Equal(t, "b", got[1].SessionID)
			},
		},
		{
			name: "delete removes the session and its events",
			check: func(t *testing.T, j *Journal) {
				require.NoError(t, j.Start("gone", "", ""))
				require.NoError(t, j.Append(Event{SessionID: "gone", Kind: KindTurn, Token: "U", Moves: 1}))
				require.NoError(t, j.Append(Event{SessionID: "gone", Kind: KindReset}))
				require.NoError(t, j.Start("kept", "", ""))
				require.NoError(t, j.Append(Event{SessionID: "kept", Kind: KindTurn, Token: "R", Moves: 1}))

				require.NoError(t, j.Sessions().Delete("gone"))
				n, err := j.EventCount("gone")
				require.NoError(t, err)
				assert.Zero(t, n)
				n, err = j.EventCount("kept")
				require.NoError(t, err)
				assert.Equal(t, 1, n)
			},
		},
		{
			name: "delete or end of unknown session",
			check: func(t *testing.T, j *Journal) {
				assert.ErrorIs(t, j.Sessions().Delete("nobody"), ErrNotFound)
				assert.ErrorIs(t, j.End("nobody"), ErrNotFound)
			},
		},
		{
			name: "failed transaction rolls back",
			check: func(t *testing.T, j *Journal) {
				boom := errors.New("boom")
				err := j.db.Transaction(func(tx *sql.Tx) error {
					if _, err := tx.Exec(`INSERT INTO sessions (session_id, started_at) VALUES ('tx', '2026-01-01T00:00:00.000000000Z')`); err != nil {
						return err
					}
					return boom
				})
				assert.ErrorIs(t, err, boom)
				_, err = j.Sessions().Get("tx")
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
		{
			name: "generated id",
			check: func(t *testing.T, j *Journal) {
				id, err := j.Sessions().Create("", "", "")
				require.NoError(t, err)
				assert.Len(t, id, 36)
				require.NoError(t, j.Sessions().Delete(id))
				_, err = j.Sessions().Get(id)
				assert.ErrorIs(t, err, ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, openTest(t))
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Session{SessionID: "x", StartedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	events := []Event{
		{Kind: KindTurn, TsMs: 0},
		{Kind: KindTurn, TsMs: 500},
		{Kind: KindTurn, TsMs: 3000},
		{Kind: KindSwap, TsMs: 3500},
		{Kind: KindHolding, TsMs: 3600},
		{Kind: KindReplay, TsMs: 4000, Moves: 3, Solved: true},
		{Kind: KindDemo, TsMs: 5000, Moves: 40, Solved: true},
	}
	sum := Summarize(s, events)
	assert.Equal(t, 3, sum.Turns)
	assert.Equal(t, 1, sum.Swaps)
	assert.Equal(t, 1, sum.ToHolding)
	assert.Equal(t, 3, sum.ReplayedTurns)
	assert.Equal(t, 40, sum.DemoMoves)
	assert.Equal(t, 1, sum.Solves)
	assert.Equal(t, int64(5000), sum.DurationMs)
	assert.Equal(t, int64(2500), sum.LongestPauseMs)
	assert.Equal(t, 1, sum.PauseCountOver1500)
	assert.InDelta(t, 1500.0, sum.AvgTurnGapMs, 1e-9)
	assert.InDelta(t, 0.6, sum.TPS, 1e-9)
	assert.Equal(t, "2024-01-01 10:00:00", sum.StartedAt)
}

func TestSummarizeCountsSolvedTransitions(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   int
	}{
		{"no events", nil, 0},
		{"reset of a solved cube", []Event{{Kind: KindReset, Solved: true}}, 0},
		{"reset of a scrambled cube", []Event{
			{Kind: KindTurn},
			{Kind: KindReset, Solved: true},
		}, 0},
		{"demo after a scramble", []Event{
			{Kind: KindTurn},
			{Kind: KindDemo, Solved: true},
		}, 0},
		{"turn back to solved", []Event{
			{Kind: KindTurn},
			{Kind: KindTurn, Solved: true},
		}, 1},
		{"swap back to solved then replay", []Event{
			{Kind: KindTurn},
			{Kind: KindTurn, Solved: true},
			{Kind: KindTurn},
			{Kind: KindHolding},
			{Kind: KindSwap},
			{Kind: KindReplay, Solved: true},
		}, 2},
		{"solved after a reset", []Event{
			{Kind: KindTurn},
			{Kind: KindReset, Solved: true},
			{Kind: KindTurn},
			{Kind: KindTurn, Solved: true},
		}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Summarize(Session{SessionID: "x"}, tt.events)
			assert.Equal(t, tt.want, sum.Solves)
		})
	}
}
