package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubelayers/internal/journal"
)

var (
	journalLimit int
	journalLast  bool
	journalJSON  bool
	journalKind  string
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect recorded sessions",
	Long:  `Commands for listing and summarising the sessions recorded in the journal.`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	RunE:  runJournalList,
}

var journalShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Summarise a session",
	Long: `Display statistics for a session: turns, swaps, replays, demo runs
and the pacing of the turns.

Use --last to show the most recent session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJournalShow,
}

var journalEventsCmd = &cobra.Command{
	Use:   "events [session-id]",
	Short: "Print the events of a session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalEvents,
}

var journalDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its events",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDelete,
}

func init() {
	rootCmd.AddCommand(journalCmd)

	journalCmd.AddCommand(journalListCmd)
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 10, "Number of sessions to show")

	journalCmd.AddCommand(journalShowCmd)
	journalShowCmd.Flags().BoolVar(&journalLast, "last", false, "Show the most recent session")
	journalShowCmd.Flags().BoolVar(&journalJSON, "json", false, "Output JSON")

	journalCmd.AddCommand(journalEventsCmd)
	journalEventsCmd.Flags().BoolVar(&journalLast, "last", false, "Use the most recent session")
	journalEventsCmd.Flags().StringVar(&journalKind, "kind", "", "Only events of this kind")

	journalCmd.AddCommand(journalDeleteCmd)
}

// withJournal opens the configured journal for the duration of fn.
func withJournal(cmd *cobra.Command, fn func(j *journal.Journal) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Journal == "" {
		return fmt.Errorf("journaling is disabled")
	}
	j, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer j.Close()
	return fn(j)
}

func runJournalList(cmd *cobra.Command, args []string) error {
	return withJournal(cmd, func(j *journal.Journal) error {
		sessions, err := j.List(journalLimit)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintln(out, "No sessions recorded yet")
			return nil
		}
		writeSessions(out, sessions, func(id string) int {
			n, _ := j.EventCount(id)
			return n
		})
		return nil
	})
}

// writeSessions prints the session table. count returns the number of
// events recorded for a session.
func writeSessions(w io.Writer, sessions []journal.Session, count func(string) int) {
	fmt.Fprintf(w, "Recent sessions (showing %d):\n\n", len(sessions))
	fmt.Fprintf(w, "%-36s  %-20s  %-10s  %-6s  %s\n", "ID", "Started", "Duration", "Events", "Notes")
	fmt.Fprintln(w, "------------------------------------  --------------------  ----------  ------  -----")

	for _, s := range sessions {
		duration := "-"
		if s.DurationMs != nil {
			duration = formatDuration(time.Duration(*s.DurationMs) * time.Millisecond)
		}

		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
			if len(notes) > 30 {
				notes = notes[:27] + "..."
			}
		}
		if s.EndedAt == nil {
			notes += " (active)"
		}

		fmt.Fprintf(w, "%-36s  %-20s  %-10s  %-6d  %s\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			count(s.SessionID),
			notes,
		)
	}
}

// resolveSession picks the session named by args, or the latest one.
func resolveSession(j *journal.Journal, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !journalLast {
		return "", fmt.Errorf("specify a session id or --last")
	}
	sessions, err := j.List(1)
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return "", fmt.Errorf("no sessions found")
	}
	return sessions[0].SessionID, nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	return withJournal(cmd, func(j *journal.Journal) error {
		id, err := resolveSession(j, args)
		if err != nil {
			return err
		}
		sum, err := j.Summary(id)
		if errors.Is(err, journal.ErrNotFound) {
			return fmt.Errorf("session %q not found", id)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if journalJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		}
		writeSummary(out, sum)
		return nil
	})
}

func writeSummary(w io.Writer, s journal.Summary) {
	fmt.Fprintf(w, "Session:   %s\n", s.SessionID)
	fmt.Fprintf(w, "Started:   %s\n", s.StartedAt)
	if s.EndedAt != "" {
		fmt.Fprintf(w, "Ended:     %s\n", s.EndedAt)
	}
	fmt.Fprintf(w, "Duration:  %s\n\n", formatDuration(time.Duration(s.DurationMs)*time.Millisecond))

	fmt.Fprintf(w, "Turns:     %d (%.2f TPS)\n", s.Turns, s.TPS)
	fmt.Fprintf(w, "Swaps:     %d\n", s.Swaps)
	fmt.Fprintf(w, "To bay:    %d\n", s.ToHolding)
	fmt.Fprintf(w, "Resets:    %d\n", s.Resets)
	fmt.Fprintf(w, "Replays:   %d (%d turns)\n", s.Replays, s.ReplayedTurns)
	fmt.Fprintf(w, "Demos:     %d (%d moves)\n", s.Demos, s.DemoMoves)
	fmt.Fprintf(w, "Solved:    %d times\n\n", s.Solves)

	fmt.Fprintf(w, "Avg gap:       %.0fms\n", s.AvgTurnGapMs)
	fmt.Fprintf(w, "Longest pause: %dms\n", s.LongestPauseMs)
	fmt.Fprintf(w, "Pauses >1.5s:  %d\n", s.PauseCountOver1500)
}

func runJournalEvents(cmd *cobra.Command, args []string) error {
	return withJournal(cmd, func(j *journal.Journal) error {
		id, err := resolveSession(j, args)
		if err != nil {
			return err
		}
		var events []journal.Event
		if journalKind != "" {
			events, err = j.EventsOfKind(id, journalKind)
		} else {
			events, err = j.Events(id)
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No events")
			return nil
		}
		start := events[0].TsMs
		for _, e := range events {
			fmt.Fprintf(out, "%8dms  %-8s %-3s %-4s %-4s %s\n", e.TsMs-start, e.Kind, e.Token, e.Cubie, e.Target, e.Detail)
		}
		return nil
	})
}

func runJournalDelete(cmd *cobra.Command, args []string) error {
	return withJournal(cmd, func(j *journal.Journal) error {
		if err := j.Sessions().Delete(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
		return nil
	})
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
